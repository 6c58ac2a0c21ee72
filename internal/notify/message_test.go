package notify

import (
	"strings"
	"testing"
	"time"

	"signalflow/internal/autotrade"
)

var atTime = time.Date(2026, 8, 28, 10, 15, 0, 0, time.UTC)

func TestFormatAlertMessage(t *testing.T) {
	payload := autotrade.Payload{
		"alert_name":   "Breakout",
		"scan_name":    "Intraday",
		"triggered_at": "10:15 am",
		"stocks":       "RELIANCE,TCS, INFY",
	}
	msg := FormatAlertMessage("my-strategy", payload, atTime)

	for _, want := range []string{
		"ALERT: Breakout",
		"Strategy: my-strategy",
		"Scan: Intraday",
		"Triggered: 10:15 am",
		"Stocks: 3",
		"Received: 2026-08-28T10:15:00Z",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q:\n%s", want, msg)
		}
	}
}

func TestFormatAlertMessageDefaults(t *testing.T) {
	msg := FormatAlertMessage("s", autotrade.Payload{}, atTime)
	if !strings.Contains(msg, "ALERT: Alert") || !strings.Contains(msg, "Scan: Chartink") {
		t.Errorf("defaults missing:\n%s", msg)
	}
	if strings.Contains(msg, "Triggered:") || strings.Contains(msg, "Stocks:") {
		t.Errorf("optional lines should be absent:\n%s", msg)
	}
}

func TestFormatTradeSummary(t *testing.T) {
	t.Run("skipped带原因", func(t *testing.T) {
		result := &autotrade.Result{Skipped: true, Execute: true, Error: "Trade window closed (09:15-15:30)"}
		msg := FormatTradeSummary("s", atTime, result)
		for _, want := range []string{"Mode: LIVE", "Status: SKIPPED", "Reason: Trade window closed (09:15-15:30)"} {
			if !strings.Contains(msg, want) {
				t.Errorf("missing %q:\n%s", want, msg)
			}
		}
	})

	t.Run("正常汇总", func(t *testing.T) {
		result := &autotrade.Result{
			Execute:      false,
			Total:        2,
			SuccessCount: 1,
			FailureCount: 1,
			Trades: []autotrade.TradeOutcome{
				{Symbol: "TCS", Ok: true},
				{SymbolCode: "NIFTY24AUGFUT", Ok: false, Error: "Invalid token"},
			},
		}
		msg := FormatTradeSummary("s", atTime, result)
		for _, want := range []string{
			"Mode: DRY-RUN",
			"Symbols: TCS, NIFTY24AUGFUT",
			"Result: 1 ok / 1 failed",
			"Error: Invalid token",
		} {
			if !strings.Contains(msg, want) {
				t.Errorf("missing %q:\n%s", want, msg)
			}
		}
	})

	t.Run("超过10个符号折叠", func(t *testing.T) {
		result := &autotrade.Result{Execute: true, Total: 12, SuccessCount: 12}
		for i := 0; i < 12; i++ {
			result.Trades = append(result.Trades, autotrade.TradeOutcome{
				Symbol: "S" + strings.Repeat("X", i+1), Ok: true,
			})
		}
		msg := FormatTradeSummary("s", atTime, result)
		if !strings.Contains(msg, "+2 more") {
			t.Errorf("missing overflow marker:\n%s", msg)
		}
	})
}
