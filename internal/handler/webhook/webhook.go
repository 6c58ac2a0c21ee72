package webhook

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"signalflow/internal/autotrade"
	"signalflow/internal/consts"
	"signalflow/internal/model"
	"signalflow/internal/webhook"
	"signalflow/pkg/errors"
	"signalflow/pkg/errors/ecode"
	"signalflow/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const maxBodySize = 1 << 20

type StrategyStore interface {
	StrategyGetByKey(ctx context.Context, key string) (*model.Strategy, error)
}

type EventStore interface {
	EventInsert(ctx context.Context, event *model.WebhookEvent) error
}

type Pipeline interface {
	Process(ctx context.Context, strategy *model.Strategy, event *model.WebhookEvent, payload autotrade.Payload)
}

type Handler struct {
	strategies StrategyStore
	events     EventStore
	pipeline   Pipeline
	// 全局共享令牌，为空时不校验
	webhookToken string
}

func NewHandler(strategies StrategyStore, events EventStore, pipeline Pipeline, webhookToken string) *Handler {
	return &Handler{
		strategies:   strategies,
		events:       events,
		pipeline:     pipeline,
		webhookToken: webhookToken,
	}
}

// Chartink 信号入口：校验→入库→立即响应，重活全部丢给后台协程
func (h *Handler) Chartink() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if h.webhookToken != "" {
			provided := ctx.GetHeader(consts.WebhookTokenHeader)
			if provided == "" {
				provided = ctx.Query(consts.WebhookTokenQuery)
			}
			if provided != h.webhookToken {
				response.JSON(ctx, errors.WithCode(ecode.RequireAuthErr, "Unauthorized"), nil)
				return
			}
		}

		key := ctx.GetHeader(consts.StrategyKeyHeader)
		if key == "" {
			key = ctx.Query(consts.StrategyKeyQuery)
		}
		if key == "" {
			response.JSON(ctx, errors.WithCode(ecode.ValidateErr, "Strategy key is required"), nil)
			return
		}

		strategy, err := h.strategies.StrategyGetByKey(ctx, key)
		if err != nil {
			response.JSON(ctx, errors.Wrap(err, ecode.Unknown, "策略查询失败"), nil)
			return
		}
		if strategy == nil {
			response.JSON(ctx, errors.WithCode(ecode.NotFoundErr, "Strategy not found"), nil)
			return
		}

		rawPayload, err := parseBody(ctx)
		if err != nil {
			response.JSON(ctx, err, nil)
			return
		}
		payload := webhook.Normalize(rawPayload)
		receivedAt := time.Now()

		payloadJSON, err := json.Marshal(payload)
		if err != nil {
			response.JSON(ctx, errors.Wrap(err, ecode.ValidateErr, "Invalid payload"), nil)
			return
		}
		headersJSON, _ := json.Marshal(webhook.SanitizeHeaders(ctx.Request.Header))

		event := &model.WebhookEvent{
			EventID:      uuid.NewString(),
			Provider:     consts.ProviderChartink,
			ReceivedAt:   receivedAt,
			UserID:       strategy.UserID,
			StrategyID:   strategy.ID,
			StrategyName: strategy.Name,
			Headers:      datatypes.JSON(headersJSON),
			Payload:      datatypes.JSON(payloadJSON),
		}
		if err := h.events.EventInsert(ctx, event); err != nil {
			response.JSON(ctx, errors.Wrap(err, ecode.Unknown, "事件入库失败"), nil)
			return
		}

		ctx.JSON(http.StatusOK, gin.H{
			"ok":         true,
			"id":         event.EventID,
			"receivedAt": receivedAt.Format(time.RFC3339),
		})

		// 响应已经发出，后台流水线用独立context，不随请求取消
		signal, _ := payload.(map[string]interface{})
		go h.pipeline.Process(context.Background(), strategy, event, autotrade.Payload(signal))
	}
}

// parseBody 兼容JSON和表单两种信号体，其他类型尽力按JSON解析
func parseBody(ctx *gin.Context) (interface{}, error) {
	raw, err := io.ReadAll(io.LimitReader(ctx.Request.Body, maxBodySize+1))
	if err != nil {
		return nil, errors.Wrap(err, ecode.Unknown, "读取请求体失败")
	}
	if len(raw) > maxBodySize {
		return nil, errors.WithCode(ecode.ValidateErr, "Payload too large")
	}
	if len(raw) == 0 {
		return map[string]interface{}{}, nil
	}

	contentType := ctx.ContentType()
	switch {
	case strings.Contains(contentType, "application/json"):
		var payload interface{}
		if err := json.Unmarshal(raw, &payload); err != nil {
			return nil, errors.WithCode(ecode.ValidateErr, "Invalid JSON body")
		}
		return payload, nil
	case strings.Contains(contentType, "application/x-www-form-urlencoded"):
		values, err := url.ParseQuery(string(raw))
		if err != nil {
			return nil, errors.WithCode(ecode.ValidateErr, "Invalid form body")
		}
		return formToMap(values), nil
	default:
		var payload interface{}
		if err := json.Unmarshal(raw, &payload); err != nil {
			return map[string]interface{}{"raw": string(raw)}, nil
		}
		return payload, nil
	}
}

func formToMap(values url.Values) map[string]interface{} {
	m := make(map[string]interface{}, len(values))
	for key, vals := range values {
		if len(vals) == 1 {
			m[key] = vals[0]
		} else {
			m[key] = vals
		}
	}
	return m
}
