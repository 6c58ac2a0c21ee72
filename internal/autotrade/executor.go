package autotrade

import (
	"context"
	"fmt"
	"time"

	"signalflow/internal/marketmaya"
	"signalflow/internal/model"
	"signalflow/pkg/logger"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// TradeStore 下单审计记录的存取，dao.TradeDao实现
type TradeStore interface {
	TradeInsert(ctx context.Context, record *model.TradeRecord) error
	TradeCountInRange(ctx context.Context, strategyID uint64, start, end time.Time, execute bool) (int64, error)
}

// BrokerClient 券商下单接口，marketmaya.Client实现
type BrokerClient interface {
	CustomTrade(ctx context.Context, token string, params map[string]interface{}, execute bool, baseURLOverride string) marketmaya.TradeResult
}

// TradeOutcome 单个标的的下单结果
type TradeOutcome struct {
	Symbol     string `json:"symbol"`
	SymbolCode string `json:"symbolCode"`
	Ok         bool   `json:"ok"`
	DryRun     bool   `json:"dryRun"`
	Error      string `json:"error,omitempty"`
	Params     Params `json:"params"`
}

// Result 一次信号触发的下单汇总
type Result struct {
	Ok           bool           `json:"ok"`
	Skipped      bool           `json:"skipped"`
	Execute      bool           `json:"execute"`
	Error        string         `json:"error,omitempty"`
	Total        int            `json:"total"`
	SuccessCount int            `json:"successCount"`
	FailureCount int            `json:"failureCount"`
	Trades       []TradeOutcome `json:"trades"`
}

// Executor 串行处理每个标的：派生→校验→下单→落审计记录
// 串行是有意的：前一个标的的记录要先落库，限额统计才是准的
type Executor struct {
	trades       TradeStore
	broker       BrokerClient
	defaultToken string
	now          func() time.Time
}

func NewExecutor(trades TradeStore, broker BrokerClient, defaultToken string) *Executor {
	return &Executor{
		trades:       trades,
		broker:       broker,
		defaultToken: defaultToken,
		now:          time.Now,
	}
}

// Run 执行一次信号的自动下单，闸门不通过时整体跳过
func (e *Executor) Run(ctx context.Context, strategy *model.Strategy, payload Payload, receivedAt time.Time) *Result {
	cfg := &strategy.Maya
	execute := strategy.Execute()

	token := strategy.ResolveToken(e.defaultToken)
	if token == "" {
		return &Result{
			Skipped: true,
			Execute: execute,
			Error:   "Market Maya token is not configured (strategy or config)",
		}
	}

	// 闸门一：交易时间窗
	if cfg.TradeWindowStart != "" || cfg.TradeWindowEnd != "" {
		if allowed, reason := WithinTradeWindow(receivedAt, cfg.TradeWindowStart, cfg.TradeWindowEnd); !allowed {
			return &Result{
				Skipped: true,
				Execute: execute,
				Error:   reason,
				Trades:  []TradeOutcome{},
			}
		}
	}

	// 闸门二：每日限额，只对真实下单计数
	remaining := -1
	if cfg.DailyTradeLimit > 0 && execute {
		start, end := dayRange(receivedAt)
		used, err := e.trades.TradeCountInRange(ctx, strategy.ID, start, end, true)
		if err != nil {
			return &Result{
				Skipped: true,
				Execute: execute,
				Error:   fmt.Sprintf("Daily trade count failed: %v", err),
				Trades:  []TradeOutcome{},
			}
		}
		remaining = cfg.DailyTradeLimit - int(used)
		if remaining <= 0 {
			return &Result{
				Skipped: true,
				Execute: execute,
				Error:   fmt.Sprintf("Daily trade limit reached (%d)", cfg.DailyTradeLimit),
				Trades:  []TradeOutcome{},
			}
		}
	}

	targets := CapTargets(ExtractTargets(payload, cfg), cfg.MaxSymbols)
	if remaining >= 0 && len(targets) > remaining {
		targets = targets[:remaining]
	}
	if len(targets) == 0 {
		return &Result{
			Skipped: true,
			Execute: execute,
			Error:   "No symbol found in webhook payload (symbol/symbol_code/stocks)",
		}
	}

	trades := make([]TradeOutcome, 0, len(targets))
	for _, target := range targets {
		params := BuildParams(cfg, payload, target)

		if why := ValidateMinimum(params); why != "" {
			outcome := TradeOutcome{
				Symbol:     target.Symbol,
				SymbolCode: target.SymbolCode,
				Ok:         false,
				DryRun:     !execute,
				Error:      "Auto trade skipped: " + why,
				Params:     params,
			}
			trades = append(trades, outcome)
			e.persist(ctx, strategy, receivedAt, execute, outcome, outcome)
			continue
		}

		result := e.broker.CustomTrade(ctx, token, params, execute, strategy.MayaBaseURL)
		outcome := TradeOutcome{
			Symbol:     target.Symbol,
			SymbolCode: target.SymbolCode,
			Ok:         result.Ok,
			DryRun:     result.DryRun,
			Error:      result.Error,
			Params:     params,
		}
		if !result.Ok && outcome.Error == "" {
			outcome.Error = "Market Maya request failed"
		}
		trades = append(trades, outcome)
		e.persist(ctx, strategy, receivedAt, execute, outcome, result)
	}

	successCount := 0
	for _, t := range trades {
		if t.Ok {
			successCount++
		}
	}

	return &Result{
		Ok:           successCount == len(trades),
		Skipped:      false,
		Execute:      execute,
		Total:        len(trades),
		SuccessCount: successCount,
		FailureCount: len(trades) - successCount,
		Trades:       trades,
	}
}

// 审计记录逐条独立落库，失败只记日志，不影响后续标的
func (e *Executor) persist(ctx context.Context, strategy *model.Strategy, receivedAt time.Time, execute bool, outcome TradeOutcome, response interface{}) {
	record := &model.TradeRecord{
		TradeID:      uuid.NewString(),
		UserID:       strategy.UserID,
		StrategyID:   strategy.ID,
		StrategyName: strategy.Name,
		ReceivedAt:   receivedAt,
		CreatedAt:    e.now(),
		Execute:      execute,
		Symbol:       outcome.Symbol,
		SymbolCode:   outcome.SymbolCode,
		Params:       marshalJSON(outcome.Params),
		Response:     marshalJSON(response),
		Ok:           outcome.Ok,
		Error:        outcome.Error,
	}
	if err := e.trades.TradeInsert(ctx, record); err != nil {
		logger.Errorf("trade record insert failed: strategy=%d symbol=%s%s err=%v",
			strategy.ID, outcome.Symbol, outcome.SymbolCode, err)
	}
}

func marshalJSON(v interface{}) datatypes.JSON {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return datatypes.JSON(raw)
}
