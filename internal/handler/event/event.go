package event

import (
	"signalflow/internal/consts"
	"signalflow/internal/dao"
	"signalflow/internal/model"
	"signalflow/pkg/errors"
	"signalflow/pkg/errors/ecode"
	"signalflow/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	defaultLimit = 50
	maxLimit     = 200
)

type Handler struct {
	events *dao.EventDao
}

func NewHandler(events *dao.EventDao) *Handler {
	return &Handler{events: events}
}

// EventGetList 查询当前用户的信号事件，倒序，带debug
func (h *Handler) EventGetList() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req model.EventListReq
		if err := ctx.ShouldBindQuery(&req); err != nil {
			response.JSON(ctx, errors.WithCode(ecode.ValidateErr, err.Error()), nil)
			return
		}
		userID := ctx.GetUint64(consts.UserID)
		list, err := h.events.EventGetList(ctx, userID, req.StrategyID, clampLimit(req.Limit))
		if err != nil {
			response.JSON(ctx, errors.Wrap(err, ecode.Unknown, "事件查询失败"), nil)
			return
		}
		response.JSON(ctx, nil, list)
	}
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultLimit
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}
