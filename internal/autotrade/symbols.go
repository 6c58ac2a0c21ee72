package autotrade

import (
	"strings"

	"signalflow/internal/consts"
	"signalflow/internal/model"
)

const (
	defaultMaxSymbols = 5
	maxSymbolsCeiling = 25
)

// Target 一个待下单的标的：纯符号或完整符号码，二选一
// 符号码表示完全确定的合约，跳过基于segment的字段派生
type Target struct {
	Symbol     string
	SymbolCode string
}

func clampMaxSymbols(value int) int {
	if value <= 0 {
		return defaultMaxSymbols
	}
	if value > maxSymbolsCeiling {
		return maxSymbolsCeiling
	}
	return value
}

// ExtractTargets 按策略配置的提取模式从payload解析标的列表
// symbol_code优先且独占；其余模式从符号字段逗号分隔解析
func ExtractTargets(payload Payload, cfg *model.MayaConfig) []Target {
	if code := readFirstString(payload, "symbol_code", "symbolCode"); code != "" {
		return []Target{{SymbolCode: code}}
	}

	mode := strings.TrimSpace(cfg.SymbolMode)
	if mode == "" {
		mode = consts.SymbolModeStocksFirst
	}

	if mode == consts.SymbolModePayload {
		key := strings.TrimSpace(cfg.SymbolKey)
		if key == "" {
			key = "symbol"
		}
		raw := readFirstString(payload, key, "symbol", "Symbol")
		return plainTargets(upperAll(splitSymbols(raw)))
	}

	symbols := upperAll(splitSymbols(readFirstString(payload, "stocks", "Stocks")))
	if mode != consts.SymbolModeStocksAll && len(symbols) > 1 {
		symbols = symbols[:1]
	}
	return plainTargets(symbols)
}

// CapTargets 截断到maxSymbols，symbol_code目标不受限制
func CapTargets(targets []Target, maxSymbols int) []Target {
	if len(targets) == 1 && targets[0].SymbolCode != "" {
		return targets
	}
	limit := clampMaxSymbols(maxSymbols)
	if len(targets) > limit {
		return targets[:limit]
	}
	return targets
}

func upperAll(symbols []string) []string {
	for i, s := range symbols {
		symbols[i] = strings.ToUpper(s)
	}
	return symbols
}

func plainTargets(symbols []string) []Target {
	targets := make([]Target, 0, len(symbols))
	for _, s := range symbols {
		targets = append(targets, Target{Symbol: s})
	}
	return targets
}
