package trade

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
	trades *dao.TradeDao
}

func NewHandler(trades *dao.TradeDao) *Handler {
	return &Handler{trades: trades}
}

// TradeGetList 查询当前用户的下单审计记录
func (h *Handler) TradeGetList() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req model.TradeListReq
		if err := ctx.ShouldBindQuery(&req); err != nil {
			response.JSON(ctx, errors.WithCode(ecode.ValidateErr, err.Error()), nil)
			return
		}
		userID := ctx.GetUint64(consts.UserID)
		list, err := h.trades.TradeGetList(ctx, userID, req.StrategyID, clampLimit(req.Limit))
		if err != nil {
			response.JSON(ctx, errors.Wrap(err, ecode.Unknown, "下单记录查询失败"), nil)
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
