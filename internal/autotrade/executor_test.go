package autotrade

import (
	"context"
	"strings"
	"testing"
	"time"

	"signalflow/internal/marketmaya"
	"signalflow/internal/model"
)

type fakeTradeStore struct {
	records  []*model.TradeRecord
	count    int64
	countErr error
}

func (f *fakeTradeStore) TradeInsert(_ context.Context, record *model.TradeRecord) error {
	f.records = append(f.records, record)
	return nil
}

func (f *fakeTradeStore) TradeCountInRange(_ context.Context, _ uint64, _, _ time.Time, _ bool) (int64, error) {
	return f.count, f.countErr
}

type fakeBroker struct {
	calls  []map[string]interface{}
	result marketmaya.TradeResult
}

func (f *fakeBroker) CustomTrade(_ context.Context, _ string, params map[string]interface{}, _ bool, _ string) marketmaya.TradeResult {
	f.calls = append(f.calls, params)
	return f.result
}

func liveStrategy() *model.Strategy {
	return &model.Strategy{
		ID:      7,
		UserID:  3,
		Name:    "breakout",
		Enabled: true,
		Maya: model.MayaConfig{
			Token:            "tok",
			CallTypeFallback: "buy",
		},
	}
}

func TestExecutorRunDispatchesAllTargets(t *testing.T) {
	store := &fakeTradeStore{}
	broker := &fakeBroker{result: marketmaya.TradeResult{Ok: true, Status: 200}}
	e := NewExecutor(store, broker, "")

	result := e.Run(context.Background(), liveStrategy(),
		Payload{"stocks": "RELIANCE,TCS", "action": "buy"}, time.Now())

	// 默认模式只取第一个符号
	if result.Total != 1 || result.SuccessCount != 1 || result.FailureCount != 0 {
		t.Fatalf("result = %+v", result)
	}
	if !result.Ok || result.Skipped {
		t.Errorf("result should be ok and not skipped: %+v", result)
	}
	if len(broker.calls) != 1 {
		t.Fatalf("broker calls = %d, want 1", len(broker.calls))
	}
	if len(store.records) != 1 {
		t.Fatalf("records = %d, want 1", len(store.records))
	}
	rec := store.records[0]
	if rec.Symbol != "RELIANCE" || !rec.Ok || !rec.Execute {
		t.Errorf("record = %+v", rec)
	}
	if rec.TradeID == "" {
		t.Errorf("record should carry a trade id")
	}
}

func TestExecutorRunValidationFailureSkipsBroker(t *testing.T) {
	store := &fakeTradeStore{}
	broker := &fakeBroker{result: marketmaya.TradeResult{Ok: true}}
	e := NewExecutor(store, broker, "")

	s := liveStrategy()
	s.Maya.CallTypeFallback = "" // payload也没有call_type，校验必挂

	result := e.Run(context.Background(), s, Payload{"stocks": "RELIANCE"}, time.Now())

	if len(broker.calls) != 0 {
		t.Fatalf("broker should not be called, got %d calls", len(broker.calls))
	}
	if result.FailureCount != 1 || result.Ok {
		t.Errorf("result = %+v", result)
	}
	if len(store.records) != 1 {
		t.Fatalf("failed validation should still be recorded")
	}
	if !strings.HasPrefix(store.records[0].Error, "Auto trade skipped: ") {
		t.Errorf("record error = %q", store.records[0].Error)
	}
}

func TestExecutorRunMissingToken(t *testing.T) {
	store := &fakeTradeStore{}
	broker := &fakeBroker{}
	e := NewExecutor(store, broker, "")

	s := liveStrategy()
	s.Maya.Token = ""

	result := e.Run(context.Background(), s, Payload{"stocks": "TCS"}, time.Now())

	if !result.Skipped {
		t.Fatalf("missing token should skip: %+v", result)
	}
	if result.Error != "Market Maya token is not configured (strategy or config)" {
		t.Errorf("error = %q", result.Error)
	}
	if len(broker.calls) != 0 || len(store.records) != 0 {
		t.Errorf("nothing should be dispatched or recorded")
	}
}

func TestExecutorRunTradeWindowClosed(t *testing.T) {
	store := &fakeTradeStore{}
	broker := &fakeBroker{}
	e := NewExecutor(store, broker, "")

	s := liveStrategy()
	s.Maya.TradeWindowStart = "09:15"
	s.Maya.TradeWindowEnd = "15:30"
	night := time.Date(2026, 8, 28, 20, 0, 0, 0, time.Local)

	result := e.Run(context.Background(), s, Payload{"stocks": "TCS", "action": "buy"}, night)

	if !result.Skipped || result.Error != "Trade window closed (09:15-15:30)" {
		t.Errorf("result = %+v", result)
	}
	if len(broker.calls) != 0 {
		t.Errorf("broker should not be called outside the window")
	}
}

func TestExecutorRunDailyLimit(t *testing.T) {
	t.Run("额度用尽整体跳过", func(t *testing.T) {
		store := &fakeTradeStore{count: 3}
		broker := &fakeBroker{}
		e := NewExecutor(store, broker, "")

		s := liveStrategy()
		s.Maya.DailyTradeLimit = 3

		result := e.Run(context.Background(), s, Payload{"stocks": "TCS", "action": "buy"}, time.Now())
		if !result.Skipped || result.Error != "Daily trade limit reached (3)" {
			t.Errorf("result = %+v", result)
		}
	})

	t.Run("剩余额度截断标的", func(t *testing.T) {
		store := &fakeTradeStore{count: 2}
		broker := &fakeBroker{result: marketmaya.TradeResult{Ok: true}}
		e := NewExecutor(store, broker, "")

		s := liveStrategy()
		s.Maya.DailyTradeLimit = 3
		s.Maya.SymbolMode = "stocksAll"

		result := e.Run(context.Background(), s,
			Payload{"stocks": "A,B,C,D", "action": "buy"}, time.Now())
		if result.Total != 1 {
			t.Errorf("total = %d, want 1 (remaining quota)", result.Total)
		}
	})

	t.Run("dry-run不检查额度", func(t *testing.T) {
		store := &fakeTradeStore{count: 100}
		broker := &fakeBroker{result: marketmaya.TradeResult{Ok: true, DryRun: true}}
		e := NewExecutor(store, broker, "")

		s := liveStrategy()
		s.Maya.DailyTradeLimit = 3
		s.Maya.DryRun = true

		result := e.Run(context.Background(), s, Payload{"stocks": "TCS", "action": "buy"}, time.Now())
		if result.Skipped {
			t.Errorf("dry-run should ignore the daily limit: %+v", result)
		}
		if result.Execute {
			t.Errorf("dry-run result should not be marked execute")
		}
	})
}

func TestExecutorRunNoTargets(t *testing.T) {
	store := &fakeTradeStore{}
	broker := &fakeBroker{}
	e := NewExecutor(store, broker, "")

	result := e.Run(context.Background(), liveStrategy(), Payload{"action": "buy"}, time.Now())

	if !result.Skipped {
		t.Fatalf("no targets should skip: %+v", result)
	}
	if result.Error != "No symbol found in webhook payload (symbol/symbol_code/stocks)" {
		t.Errorf("error = %q", result.Error)
	}
}

func TestExecutorRunBrokerFailure(t *testing.T) {
	store := &fakeTradeStore{}
	broker := &fakeBroker{result: marketmaya.TradeResult{Ok: false, Status: 400, Error: "Invalid token"}}
	e := NewExecutor(store, broker, "fallback-token")

	s := liveStrategy()
	s.Maya.Token = ""

	result := e.Run(context.Background(), s, Payload{"stocks": "TCS", "action": "buy"}, time.Now())

	if result.Ok || result.FailureCount != 1 {
		t.Errorf("result = %+v", result)
	}
	if result.Trades[0].Error != "Invalid token" {
		t.Errorf("trade error = %q", result.Trades[0].Error)
	}
	if !store.records[0].Execute || store.records[0].Ok {
		t.Errorf("record = %+v", store.records[0])
	}
}
