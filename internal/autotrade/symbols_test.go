package autotrade

import (
	"reflect"
	"testing"

	"signalflow/internal/consts"
	"signalflow/internal/model"
)

func TestExtractTargets(t *testing.T) {
	tests := []struct {
		name    string
		payload Payload
		cfg     model.MayaConfig
		want    []Target
	}{
		{
			name:    "symbol_code独占",
			payload: Payload{"symbol_code": "NIFTY24AUGFUT", "stocks": "RELIANCE,TCS"},
			want:    []Target{{SymbolCode: "NIFTY24AUGFUT"}},
		},
		{
			name:    "默认模式取stocks第一个",
			payload: Payload{"stocks": "reliance, tcs, infy"},
			want:    []Target{{Symbol: "RELIANCE"}},
		},
		{
			name:    "stocksAll保留全部",
			payload: Payload{"stocks": "reliance, tcs, infy"},
			cfg:     model.MayaConfig{SymbolMode: consts.SymbolModeStocksAll},
			want:    []Target{{Symbol: "RELIANCE"}, {Symbol: "TCS"}, {Symbol: "INFY"}},
		},
		{
			name:    "payloadSymbol按配置键取值",
			payload: Payload{"ticker": "hdfcbank", "stocks": "RELIANCE"},
			cfg:     model.MayaConfig{SymbolMode: consts.SymbolModePayload, SymbolKey: "ticker"},
			want:    []Target{{Symbol: "HDFCBANK"}},
		},
		{
			name:    "payloadSymbol回退到symbol字段",
			payload: Payload{"symbol": "tcs"},
			cfg:     model.MayaConfig{SymbolMode: consts.SymbolModePayload},
			want:    []Target{{Symbol: "TCS"}},
		},
		{
			name:    "空payload无标的",
			payload: Payload{},
			want:    []Target{},
		},
		{
			name:    "空白项被丢弃",
			payload: Payload{"stocks": " , tcs , "},
			cfg:     model.MayaConfig{SymbolMode: consts.SymbolModeStocksAll},
			want:    []Target{{Symbol: "TCS"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractTargets(tt.payload, &tt.cfg)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractTargets() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCapTargets(t *testing.T) {
	many := make([]Target, 30)
	for i := range many {
		many[i] = Target{Symbol: "S"}
	}

	tests := []struct {
		name       string
		targets    []Target
		maxSymbols int
		wantLen    int
	}{
		{name: "默认上限5", targets: many, maxSymbols: 0, wantLen: 5},
		{name: "配置上限生效", targets: many, maxSymbols: 3, wantLen: 3},
		{name: "硬顶25", targets: many, maxSymbols: 100, wantLen: 25},
		{name: "不足上限不截断", targets: many[:2], maxSymbols: 10, wantLen: 2},
		{
			name:       "symbol_code不受限",
			targets:    []Target{{SymbolCode: "NIFTY24AUGFUT"}},
			maxSymbols: 0,
			wantLen:    1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CapTargets(tt.targets, tt.maxSymbols)
			if len(got) != tt.wantLen {
				t.Errorf("CapTargets() len = %d, want %d", len(got), tt.wantLen)
			}
		})
	}
}
