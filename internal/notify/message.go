package notify

import (
	"fmt"
	"strings"
	"time"

	"signalflow/internal/autotrade"
)

// 通知文案拼装，纯函数

// FormatAlertMessage 信号到达时推送的第一条消息
func FormatAlertMessage(strategyName string, payload autotrade.Payload, receivedAt time.Time) string {
	alertName := autotrade.ReadString(payload, "alert_name", "alertName")
	if alertName == "" {
		alertName = "Alert"
	}
	scanName := autotrade.ReadString(payload, "scan_name", "scanName")
	if scanName == "" {
		scanName = "Chartink"
	}
	triggeredAt := autotrade.ReadString(payload, "triggered_at", "triggeredAt")
	stocks := autotrade.ReadString(payload, "stocks")

	lines := []string{
		"ALERT: " + alertName,
		"Strategy: " + strategyName,
		"Scan: " + scanName,
	}
	if triggeredAt != "" {
		lines = append(lines, "Triggered: "+triggeredAt)
	}
	if stocks != "" {
		count := 0
		for _, s := range strings.Split(stocks, ",") {
			if strings.TrimSpace(s) != "" {
				count++
			}
		}
		if count > 0 {
			lines = append(lines, fmt.Sprintf("Stocks: %d", count))
		}
	}
	lines = append(lines, "Received: "+receivedAt.Format(time.RFC3339))
	return strings.Join(lines, "\n")
}

// FormatTradeSummary 下单完成后推送的纯文本汇总
// 最多列10个样本符号，超出部分计数；失败时带上第一条错误
func FormatTradeSummary(strategyName string, receivedAt time.Time, result *autotrade.Result) string {
	mode := "DRY-RUN"
	if result.Execute {
		mode = "LIVE"
	}
	lines := []string{
		"TRADE: " + strategyName,
		"Mode: " + mode,
	}

	if result.Skipped {
		lines = append(lines, "Status: SKIPPED")
		if result.Error != "" {
			lines = append(lines, "Reason: "+result.Error)
		}
		lines = append(lines, "Received: "+receivedAt.Format(time.RFC3339))
		return strings.Join(lines, "\n")
	}

	unique := make([]string, 0, len(result.Trades))
	seen := make(map[string]struct{}, len(result.Trades))
	for _, t := range result.Trades {
		name := t.Symbol
		if name == "" {
			name = t.SymbolCode
		}
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		unique = append(unique, name)
	}
	if len(unique) > 0 {
		shown := unique
		more := ""
		if len(unique) > 10 {
			shown = unique[:10]
			more = fmt.Sprintf(" +%d more", len(unique)-10)
		}
		lines = append(lines, "Symbols: "+strings.Join(shown, ", ")+more)
	}

	lines = append(lines, fmt.Sprintf("Result: %d ok / %d failed", result.SuccessCount, result.FailureCount))
	if result.FailureCount > 0 {
		for _, t := range result.Trades {
			if !t.Ok && t.Error != "" {
				lines = append(lines, "Error: "+t.Error)
				break
			}
		}
	}

	lines = append(lines, "Received: "+receivedAt.Format(time.RFC3339))
	return strings.Join(lines, "\n")
}
