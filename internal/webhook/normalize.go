package webhook

import (
	"net/http"
	"strings"
)

// 直接信号键，有任何一个就认为payload已经是顶层信号
var directSignalKeys = []string{"stocks", "symbol", "symbol_code", "alert_name", "scan_name"}

// Normalize 规整信号payload的形状
// 有的提供方会把信号包一层 {payload: {...}}，这里解开一层
// 非对象或已经是直接信号的原样返回，不产生错误
func Normalize(payload interface{}) interface{} {
	m, ok := payload.(map[string]interface{})
	if !ok {
		return payload
	}

	for _, key := range directSignalKeys {
		if _, exists := m[key]; exists {
			return m
		}
	}

	if wrapped, ok := m["payload"].(map[string]interface{}); ok {
		return wrapped
	}

	return m
}

// SanitizeHeaders 去除凭证类请求头后保留一份快照
func SanitizeHeaders(headers http.Header) map[string]string {
	clean := make(map[string]string, len(headers))
	for key, values := range headers {
		switch strings.ToLower(key) {
		case "authorization", "cookie":
			continue
		}
		if len(values) > 0 {
			clean[key] = values[0]
		}
	}
	return clean
}
