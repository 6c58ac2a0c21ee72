package main

import (
	"signalflow/conf"
	"signalflow/internal/autotrade"
	"signalflow/internal/dao"
	eventhandler "signalflow/internal/handler/event"
	tghandler "signalflow/internal/handler/telegram"
	tradehandler "signalflow/internal/handler/trade"
	webhookhandler "signalflow/internal/handler/webhook"
	"signalflow/internal/marketmaya"
	"signalflow/internal/notify"
	"signalflow/internal/router"
	"signalflow/internal/service"
	"signalflow/internal/telegram"
	"signalflow/pkg/logger"
	"signalflow/pkg/mail"

	"gorm.io/gorm"
)

// InitRouter 组装全部依赖，返回路由和shutdown清理函数
func InitRouter(db *gorm.DB) (Router, func()) {
	appCfg := conf.AppConfig

	strategyDao := dao.NewStrategyDao(db)
	eventDao := dao.NewEventDao(db)
	tradeDao := dao.NewTradeDao(db)
	userDao := dao.NewUserDao(db)
	subscriberDao := dao.NewSubscriberDao(db)

	// telegram未配置时服务降级运行，只推不出去，不影响接收和下单
	var sender notify.ChatSender
	var updater *telegram.Updater
	if appCfg.Telegram.BotToken != "" {
		tgSender, err := notify.NewTelegramSender(appCfg.Telegram.BotToken)
		if err != nil {
			logger.Warnf("telegram sender init failed: %v", err)
		} else {
			sender = tgSender
			updater = telegram.NewUpdater(
				tgSender.Bot(),
				appCfg.Telegram.SyncMode == "polling",
				strategyDao, userDao, subscriberDao,
			)
			updater.Start()
		}
	}

	var mailer service.SignalMailer
	if smtp, err := mail.NewSender(&appCfg.Email); err != nil {
		logger.Warnf("smtp sender init failed: %v", err)
	} else {
		mailer = smtp
	}

	fanout := notify.NewFanout(sender, userDao, subscriberDao)
	broker := marketmaya.NewClient(appCfg.Maya)
	executor := autotrade.NewExecutor(tradeDao, broker, appCfg.Maya.Token)
	pipeline := service.NewWebhookService(eventDao, fanout, executor, mailer)

	wh := webhookhandler.NewHandler(strategyDao, eventDao, pipeline, appCfg.Webhook.Token)
	eh := eventhandler.NewHandler(eventDao)
	th := tradehandler.NewHandler(tradeDao)
	tgh := tghandler.NewHandler(updater)

	cleanup := func() {
		if updater != nil {
			updater.Stop()
		}
	}
	return router.NewApiRouter(wh, eh, th, tgh), cleanup
}
