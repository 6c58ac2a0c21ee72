package telegram

import (
	"context"
	"strings"
	"sync"
	"time"

	"signalflow/internal/model"
	"signalflow/pkg/logger"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	pollTimeoutSeconds = 25
	pollRetryDelay     = 3 * time.Second
)

const (
	helpText         = "Welcome! To start alerts, send:\n/start <key>\nTo stop: /stop"
	missingKeyText   = "Key missing. Use:\n/start <key>"
	invalidKeyText   = "Invalid key. Copy the webhook key from your strategy settings."
	planInactiveText = "Your plan is inactive. Please renew your plan to receive alerts."
	subscribedText   = "Subscribed successfully. Your alerts are now started."
	stoppedText      = "Alerts stopped. You can start again with /start <key>."
)

// StrategyStore 通过webhook key定位策略，dao.StrategyDao实现
type StrategyStore interface {
	StrategyGetByKey(ctx context.Context, webhookKey string) (*model.Strategy, error)
}

// UserStore 读取策略归属用户
type UserStore interface {
	UserGetByID(ctx context.Context, id uint64) (*model.User, error)
}

// SubscriberStore 订阅关系读写
type SubscriberStore interface {
	SubscriberUpsert(ctx context.Context, sub *model.ChatSubscriber) error
	SubscriberDeactivate(ctx context.Context, chatID int64) error
}

// Status 轮询状态快照，GET /api/v1/telegram/status 返回
type Status struct {
	Enabled      bool   `json:"enabled"`
	Active       bool   `json:"active"`
	LastPollAt   string `json:"lastPollAt"`
	LastError    string `json:"lastError"`
	LastUpdateID int    `json:"lastUpdateId"`
}

// Updater 长轮询bot命令，维护chat订阅关系
type Updater struct {
	bot        *tgbotapi.BotAPI
	strategies StrategyStore
	users      UserStore
	subs       SubscriberStore
	enabled    bool

	mu           sync.Mutex
	active       bool
	lastPollAt   time.Time
	lastError    string
	lastUpdateID int

	cancel context.CancelFunc
	done   chan struct{}
}

func NewUpdater(bot *tgbotapi.BotAPI, enabled bool, strategies StrategyStore, users UserStore, subs SubscriberStore) *Updater {
	return &Updater{
		bot:        bot,
		strategies: strategies,
		users:      users,
		subs:       subs,
		enabled:    enabled,
	}
}

// Start 启动轮询协程，未开启或重复调用时为空操作
func (u *Updater) Start() {
	u.mu.Lock()
	defer u.mu.Unlock()
	if !u.enabled || u.bot == nil || u.active {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	u.cancel = cancel
	u.done = make(chan struct{})
	u.active = true
	go u.loop(ctx)
}

// Stop 停止轮询并等待协程退出
func (u *Updater) Stop() {
	u.mu.Lock()
	if !u.active {
		u.mu.Unlock()
		return
	}
	cancel, done := u.cancel, u.done
	u.mu.Unlock()

	cancel()
	<-done

	u.mu.Lock()
	u.active = false
	u.mu.Unlock()
}

func (u *Updater) Status() Status {
	u.mu.Lock()
	defer u.mu.Unlock()
	st := Status{
		Enabled:      u.enabled,
		Active:       u.active,
		LastError:    u.lastError,
		LastUpdateID: u.lastUpdateID,
	}
	if !u.lastPollAt.IsZero() {
		st.LastPollAt = u.lastPollAt.Format(time.RFC3339)
	}
	return st
}

func (u *Updater) loop(ctx context.Context) {
	defer close(u.done)

	// 轮询之前清掉可能残留的webhook注册，两种投递方式互斥
	if _, err := u.bot.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
		logger.Warnf("telegram delete webhook failed: %v", err)
	}

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		if err := u.pollOnce(ctx); err != nil {
			u.setError(err.Error())
			select {
			case <-ctx.Done():
				return
			case <-time.After(pollRetryDelay):
			}
			continue
		}
		u.setError("")
	}
}

func (u *Updater) pollOnce(ctx context.Context) error {
	u.mu.Lock()
	offset := u.lastUpdateID + 1
	u.mu.Unlock()

	updates, err := u.bot.GetUpdates(tgbotapi.UpdateConfig{
		Offset:  offset,
		Timeout: pollTimeoutSeconds,
	})

	u.mu.Lock()
	u.lastPollAt = time.Now()
	u.mu.Unlock()

	if err != nil {
		return err
	}
	for _, update := range updates {
		u.mu.Lock()
		if update.UpdateID > u.lastUpdateID {
			u.lastUpdateID = update.UpdateID
		}
		u.mu.Unlock()
		u.handleUpdate(ctx, update)
	}
	return nil
}

func (u *Updater) setError(msg string) {
	u.mu.Lock()
	u.lastError = msg
	u.mu.Unlock()
}

func extractMessage(update tgbotapi.Update) *tgbotapi.Message {
	switch {
	case update.Message != nil:
		return update.Message
	case update.EditedMessage != nil:
		return update.EditedMessage
	case update.ChannelPost != nil:
		return update.ChannelPost
	case update.EditedChannelPost != nil:
		return update.EditedChannelPost
	}
	return nil
}

// handleUpdate 处理单条更新，单条失败不影响后续
func (u *Updater) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := extractMessage(update)
	if msg == nil || msg.Chat == nil || msg.Chat.ID == 0 {
		return
	}
	text := strings.TrimSpace(msg.Text)
	chatID := msg.Chat.ID

	switch {
	case text == "/start":
		u.reply(chatID, helpText)
	case strings.HasPrefix(text, "/start "):
		key := strings.TrimSpace(strings.TrimPrefix(text, "/start "))
		u.subscribe(ctx, chatID, msg.Chat.UserName, key)
	case text == "/stop" || strings.HasPrefix(text, "/stop "):
		if err := u.subs.SubscriberDeactivate(ctx, chatID); err != nil {
			logger.Errorf("telegram unsubscribe failed: chat=%d err=%v", chatID, err)
			return
		}
		u.reply(chatID, stoppedText)
	}
}

// subscribe 用策略的webhook key把chat绑定到策略归属用户
func (u *Updater) subscribe(ctx context.Context, chatID int64, username, key string) {
	if key == "" {
		u.reply(chatID, missingKeyText)
		return
	}
	strategy, err := u.strategies.StrategyGetByKey(ctx, key)
	if err != nil {
		logger.Errorf("telegram subscribe lookup failed: chat=%d err=%v", chatID, err)
		return
	}
	if strategy == nil {
		u.reply(chatID, invalidKeyText)
		return
	}
	owner, err := u.users.UserGetByID(ctx, strategy.UserID)
	if err != nil {
		logger.Errorf("telegram subscribe owner lookup failed: chat=%d err=%v", chatID, err)
		return
	}
	if owner == nil || !owner.PlanActive(time.Now()) {
		u.reply(chatID, planInactiveText)
		return
	}
	err = u.subs.SubscriberUpsert(ctx, &model.ChatSubscriber{
		ChatID:       chatID,
		UserID:       owner.ID,
		Username:     username,
		Active:       true,
		SubscribedAt: time.Now(),
	})
	if err != nil {
		logger.Errorf("telegram subscribe upsert failed: chat=%d err=%v", chatID, err)
		return
	}
	u.reply(chatID, subscribedText)
}

func (u *Updater) reply(chatID int64, text string) {
	if _, err := u.bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		logger.Warnf("telegram reply failed: chat=%d err=%v", chatID, err)
	}
}
