package webhook

import (
	"net/http"
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		payload interface{}
		want    interface{}
	}{
		{
			name:    "直接信号原样返回",
			payload: map[string]interface{}{"stocks": "RELIANCE,TCS", "extra": "x"},
			want:    map[string]interface{}{"stocks": "RELIANCE,TCS", "extra": "x"},
		},
		{
			name: "解开一层payload包装",
			payload: map[string]interface{}{
				"payload": map[string]interface{}{"symbol": "TCS"},
			},
			want: map[string]interface{}{"symbol": "TCS"},
		},
		{
			name: "有直接信号键时不解包装",
			payload: map[string]interface{}{
				"alert_name": "Breakout",
				"payload":    map[string]interface{}{"symbol": "TCS"},
			},
			want: map[string]interface{}{
				"alert_name": "Breakout",
				"payload":    map[string]interface{}{"symbol": "TCS"},
			},
		},
		{
			name: "只解一层",
			payload: map[string]interface{}{
				"payload": map[string]interface{}{
					"payload": map[string]interface{}{"symbol": "TCS"},
				},
			},
			want: map[string]interface{}{
				"payload": map[string]interface{}{"symbol": "TCS"},
			},
		},
		{
			name:    "非对象原样返回",
			payload: "raw text",
			want:    "raw text",
		},
		{
			name:    "数组原样返回",
			payload: []interface{}{"a", "b"},
			want:    []interface{}{"a", "b"},
		},
		{
			name: "payload包装值不是对象时原样返回",
			payload: map[string]interface{}{
				"payload": "not an object",
			},
			want: map[string]interface{}{
				"payload": "not an object",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.payload)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Normalize() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSanitizeHeaders(t *testing.T) {
	headers := http.Header{}
	headers.Set("Content-Type", "application/json")
	headers.Set("Authorization", "Bearer secret")
	headers.Set("Cookie", "session=abc")
	headers.Set("X-Strategy-Key", "k1")

	clean := SanitizeHeaders(headers)

	if _, ok := clean["Authorization"]; ok {
		t.Errorf("Authorization should be stripped")
	}
	if _, ok := clean["Cookie"]; ok {
		t.Errorf("Cookie should be stripped")
	}
	if clean["Content-Type"] != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", clean["Content-Type"])
	}
	if clean["X-Strategy-Key"] != "k1" {
		t.Errorf("X-Strategy-Key = %q, want k1", clean["X-Strategy-Key"])
	}
}
