package autotrade

import (
	"strings"

	"github.com/spf13/cast"
)

// Payload 规整后的信号内容
type Payload map[string]interface{}

// 读取payload字段，空串视为缺失
func readPayloadValue(payload Payload, key string) (interface{}, bool) {
	if payload == nil || key == "" {
		return nil, false
	}
	value, ok := payload[key]
	if !ok || value == nil {
		return nil, false
	}
	if s, isStr := value.(string); isStr {
		trimmed := strings.TrimSpace(s)
		if trimmed == "" {
			return nil, false
		}
		return trimmed, true
	}
	return value, true
}

// 按优先级读取第一个存在的字段
func readFirstPayloadValue(payload Payload, keys ...string) (interface{}, bool) {
	for _, key := range keys {
		if value, ok := readPayloadValue(payload, key); ok {
			return value, true
		}
	}
	return nil, false
}

// ReadString 按优先级读取第一个存在字段的字符串值
func ReadString(payload Payload, keys ...string) string {
	return readFirstString(payload, keys...)
}

func readFirstString(payload Payload, keys ...string) string {
	value, ok := readFirstPayloadValue(payload, keys...)
	if !ok {
		return ""
	}
	return strings.TrimSpace(cast.ToString(value))
}

func readFirstUpper(payload Payload, keys ...string) string {
	return strings.ToUpper(readFirstString(payload, keys...))
}

func toUpper(value string) string {
	return strings.ToUpper(strings.TrimSpace(value))
}

// truthy 宽松的布尔判断："true"/"1"/"yes" 都算真
func truthy(value interface{}) bool {
	if value == nil {
		return false
	}
	if b, ok := value.(bool); ok {
		return b
	}
	switch strings.ToLower(strings.TrimSpace(cast.ToString(value))) {
	case "true", "1", "yes":
		return true
	}
	return false
}

// 逗号分隔的符号列表，去空白
func splitSymbols(value string) []string {
	raw := strings.TrimSpace(value)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	symbols := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			symbols = append(symbols, s)
		}
	}
	return symbols
}
