package notify

import (
	"context"
	"sort"
	"sync"
	"time"

	"signalflow/internal/model"
	"signalflow/pkg/logger"

	"go.uber.org/multierr"
)

// UserStore 读取策略归属用户，dao.UserDao实现
type UserStore interface {
	UserGetByID(ctx context.Context, id uint64) (*model.User, error)
}

// SubscriberStore 读取活跃订阅者，dao.SubscriberDao实现
type SubscriberStore interface {
	SubscriberListActiveByUser(ctx context.Context, userID uint64) ([]model.ChatSubscriber, error)
}

// RoundResult 一轮fan-out的统计，写入事件debug
type RoundResult struct {
	SuccessCount int  `json:"successCount"`
	FailureCount int  `json:"failureCount"`
	Skipped      bool `json:"skipped,omitempty"`
}

// Fanout 推送编排：收件人收集与并发broadcast
type Fanout struct {
	sender ChatSender
	users  UserStore
	subs   SubscriberStore
}

func NewFanout(sender ChatSender, users UserStore, subs SubscriberStore) *Fanout {
	return &Fanout{sender: sender, users: users, subs: subs}
}

// Recipients 收件人集合：策略直配chat（telegram开启时）∪ 归属用户的活跃订阅者
// 订阅者只在归属用户套餐有效时收集
func (f *Fanout) Recipients(ctx context.Context, strategy *model.Strategy) ([]int64, error) {
	set := make(map[int64]struct{})
	if strategy.TelegramEnabled && strategy.TelegramChatID != 0 {
		set[strategy.TelegramChatID] = struct{}{}
	}

	owner, err := f.users.UserGetByID(ctx, strategy.UserID)
	if err != nil {
		return flatten(set), err
	}
	if owner.PlanActive(time.Now()) {
		subs, err := f.subs.SubscriberListActiveByUser(ctx, strategy.UserID)
		if err != nil {
			return flatten(set), err
		}
		for _, sub := range subs {
			if sub.ChatID != 0 {
				set[sub.ChatID] = struct{}{}
			}
		}
	}
	return flatten(set), nil
}

// Owner 返回策略归属用户（用于信号邮件），套餐无效时返回nil
func (f *Fanout) Owner(ctx context.Context, strategy *model.Strategy) (*model.User, error) {
	owner, err := f.users.UserGetByID(ctx, strategy.UserID)
	if err != nil {
		return nil, err
	}
	if !owner.PlanActive(time.Now()) {
		return nil, nil
	}
	return owner, nil
}

// Broadcast 并发推送到所有收件人，逐个统计成败，绝不因单个失败中止
func (f *Fanout) Broadcast(ctx context.Context, recipients []int64, text string) RoundResult {
	if f.sender == nil || len(recipients) == 0 {
		return RoundResult{Skipped: true}
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs error
	)
	result := RoundResult{}
	for _, chatID := range recipients {
		wg.Add(1)
		go func(chatID int64) {
			defer wg.Done()
			err := f.sender.SendText(ctx, chatID, text)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.FailureCount++
				errs = multierr.Append(errs, err)
				return
			}
			result.SuccessCount++
		}(chatID)
	}
	wg.Wait()

	if errs != nil {
		logger.Warnf("notification round finished with failures: ok=%d failed=%d errs=%v",
			result.SuccessCount, result.FailureCount, errs)
	}
	return result
}

func flatten(set map[int64]struct{}) []int64 {
	out := make([]int64, 0, len(set))
	for chatID := range set {
		out = append(out, chatID)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
