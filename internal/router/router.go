package router

import (
	"signalflow/internal/handler/event"
	"signalflow/internal/handler/ping"
	"signalflow/internal/handler/telegram"
	"signalflow/internal/handler/trade"
	"signalflow/internal/handler/webhook"
	"signalflow/internal/middleware"

	"github.com/gin-gonic/gin"
)

type ApiRouter struct {
	webhookHandler  *webhook.Handler
	eventHandler    *event.Handler
	tradeHandler    *trade.Handler
	telegramHandler *telegram.Handler
}

func NewApiRouter(wh *webhook.Handler, eh *event.Handler, th *trade.Handler, tgh *telegram.Handler) *ApiRouter {
	return &ApiRouter{
		webhookHandler:  wh,
		eventHandler:    eh,
		tradeHandler:    th,
		telegramHandler: tgh,
	}
}

func (api *ApiRouter) Load(g *gin.Engine) {
	g.Use(middleware.RequestId(), middleware.Logger, middleware.NoCache(), middleware.Options(), middleware.Secure(), gin.Recovery())

	g.GET("/ping", ping.Ping())

	base := g.Group("/api/v1")

	// webhook入口不挂防抖：信号源重试是正常行为
	wh := base.Group("/webhook")
	{
		wh.POST("/chartink", api.webhookHandler.Chartink())
	}

	authed := base.Group("", middleware.AuthToken(), middleware.AntiDuplicateMiddleware())
	{
		authed.GET("/events", api.eventHandler.EventGetList())
		authed.GET("/trades", api.tradeHandler.TradeGetList())
		authed.GET("/telegram/status", api.telegramHandler.Status())
	}
}
