package telegram

import (
	tgsync "signalflow/internal/telegram"
	"signalflow/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	updater *tgsync.Updater
}

func NewHandler(updater *tgsync.Updater) *Handler {
	return &Handler{updater: updater}
}

// Status 订阅同步组件的运行状态
func (h *Handler) Status() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if h.updater == nil {
			response.JSON(ctx, nil, tgsync.Status{})
			return
		}
		response.JSON(ctx, nil, h.updater.Status())
	}
}
