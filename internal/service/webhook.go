package service

import (
	"context"
	"time"

	"signalflow/internal/autotrade"
	"signalflow/internal/model"
	"signalflow/internal/notify"
	"signalflow/pkg/logger"
	"signalflow/pkg/mail"

	"github.com/goccy/go-json"
	"gorm.io/datatypes"
)

// EventStore 事件debug回写，dao.EventDao实现
type EventStore interface {
	EventUpdateDebug(ctx context.Context, eventID string, debug datatypes.JSON, processedAt time.Time) error
}

// SignalMailer 信号邮件发送，pkg/mail.Sender实现，未配置时为nil
type SignalMailer interface {
	SendSignal(to string, data mail.SignalEmail) error
}

// TradeRunner 自动下单入口，autotrade.Executor实现
type TradeRunner interface {
	Run(ctx context.Context, strategy *model.Strategy, payload autotrade.Payload, receivedAt time.Time) *autotrade.Result
}

// WebhookService 事件入库后的后台流水线：
// 收件人收集 → 告警推送 → 自动下单 → 成交摘要推送 + 信号邮件 → debug回写
type WebhookService struct {
	events   EventStore
	fanout   *notify.Fanout
	executor TradeRunner
	mailer   SignalMailer
}

func NewWebhookService(events EventStore, fanout *notify.Fanout, executor TradeRunner, mailer SignalMailer) *WebhookService {
	return &WebhookService{
		events:   events,
		fanout:   fanout,
		executor: executor,
		mailer:   mailer,
	}
}

// Process 处理一个已入库的事件，任何一环失败都不影响其他环节
func (s *WebhookService) Process(ctx context.Context, strategy *model.Strategy, event *model.WebhookEvent, payload autotrade.Payload) {
	receivedAt := event.ReceivedAt

	recipients, err := s.fanout.Recipients(ctx, strategy)
	if err != nil {
		logger.Errorf("recipient collection failed: event=%s err=%v", event.EventID, err)
	}

	telegramDebug := map[string]interface{}{
		"enabled":    strategy.TelegramEnabled,
		"recipients": len(recipients),
	}
	mayaDebug := map[string]interface{}{
		"enabled": strategy.Enabled,
	}
	debug := map[string]interface{}{
		"provider":   event.Provider,
		"receivedAt": receivedAt.Format(time.RFC3339),
		"telegram":   telegramDebug,
		"marketMaya": mayaDebug,
	}

	// 信号邮件独立于推送轮次，先行并发
	mailDone := s.sendSignalMail(ctx, strategy, payload, receivedAt)

	alertText := notify.FormatAlertMessage(strategy.Name, payload, receivedAt)
	telegramDebug["alert"] = s.fanout.Broadcast(ctx, recipients, alertText)

	var tradeResult *autotrade.Result
	if !strategy.Enabled {
		mayaDebug["skipped"] = true
		mayaDebug["reason"] = "Strategy disabled"
	} else {
		tradeResult = s.executor.Run(ctx, strategy, payload, receivedAt)
		mayaDebug["execute"] = tradeResult.Execute
		mayaDebug["ok"] = tradeResult.Ok
		mayaDebug["skipped"] = tradeResult.Skipped
		mayaDebug["total"] = tradeResult.Total
		mayaDebug["successCount"] = tradeResult.SuccessCount
		mayaDebug["failureCount"] = tradeResult.FailureCount
		if tradeResult.Error != "" {
			mayaDebug["error"] = tradeResult.Error
		}
		if tradeResult.Trades != nil {
			mayaDebug["trades"] = tradeResult.Trades
		}
	}

	if len(recipients) > 0 && tradeResult != nil {
		summaryText := notify.FormatTradeSummary(strategy.Name, receivedAt, tradeResult)
		telegramDebug["summary"] = s.fanout.Broadcast(ctx, recipients, summaryText)
	}

	<-mailDone

	s.writeDebug(ctx, event.EventID, debug)
}

// sendSignalMail 向策略归属用户发信号邮件，套餐无效或未配置SMTP时跳过
func (s *WebhookService) sendSignalMail(ctx context.Context, strategy *model.Strategy, payload autotrade.Payload, receivedAt time.Time) <-chan struct{} {
	done := make(chan struct{})
	if s.mailer == nil {
		close(done)
		return done
	}
	go func() {
		defer close(done)
		owner, err := s.fanout.Owner(ctx, strategy)
		if err != nil {
			logger.Errorf("signal mail owner lookup failed: strategy=%d err=%v", strategy.ID, err)
			return
		}
		if owner == nil || owner.Email == "" {
			return
		}
		err = s.mailer.SendSignal(owner.Email, mail.SignalEmail{
			Name:         owner.Name,
			StrategyName: strategy.Name,
			AlertName:    autotrade.ReadString(payload, "alert_name", "alertName"),
			ScanName:     autotrade.ReadString(payload, "scan_name", "scanName"),
			Stocks:       autotrade.ReadString(payload, "stocks", "Stocks"),
			ReceivedAt:   receivedAt.Format(time.RFC3339),
		})
		if err != nil {
			logger.Warnf("signal mail failed: strategy=%d to=%s err=%v", strategy.ID, owner.Email, err)
		}
	}()
	return done
}

func (s *WebhookService) writeDebug(ctx context.Context, eventID string, debug map[string]interface{}) {
	raw, err := json.Marshal(debug)
	if err != nil {
		logger.Errorf("debug marshal failed: event=%s err=%v", eventID, err)
		return
	}
	if err := s.events.EventUpdateDebug(ctx, eventID, datatypes.JSON(raw), time.Now()); err != nil {
		logger.Errorf("debug update failed: event=%s err=%v", eventID, err)
	}
}
