package marketmaya

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"signalflow/conf"

	"github.com/goccy/go-json"
	"github.com/spf13/cast"
)

// Market Maya 券商接口客户端
// 接口形式为GET + 扁平query参数，返回JSON

const (
	DefaultBaseURL = "https://restapi.marketmaya.com"

	defaultTimeout = 15 * time.Second
	maxTimeout     = 60 * time.Second

	customTradePath = "/custom-trade"
)

type Client struct {
	httpClient *http.Client
	baseURL    string
}

func NewClient(cfg conf.MayaConfig) *Client {
	timeout := defaultTimeout
	if cfg.TimeoutMs > 0 {
		timeout = time.Duration(cfg.TimeoutMs) * time.Millisecond
		if timeout > maxTimeout {
			timeout = maxTimeout
		}
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    normalizeBaseURL(cfg.BaseURL),
	}
}

// PreviewRequest dry-run时返回的"将要发出的请求"
type PreviewRequest struct {
	BaseURL         string            `json:"baseUrl"`
	Path            string            `json:"path"`
	TokenConfigured bool              `json:"tokenConfigured"`
	Params          map[string]string `json:"params"`
}

// TradeResult 一次下单调用的结果，dry-run时只有Request
type TradeResult struct {
	Ok      bool            `json:"ok"`
	DryRun  bool            `json:"dryRun"`
	Status  int             `json:"status,omitempty"`
	Error   string          `json:"error,omitempty"`
	Request *PreviewRequest `json:"request,omitempty"`
	Payload interface{}     `json:"payload,omitempty"`
}

// CustomTrade 下单。execute=false时不触网，返回请求预览
func (c *Client) CustomTrade(ctx context.Context, token string, params map[string]interface{}, execute bool, baseURLOverride string) TradeResult {
	token = strings.TrimSpace(token)
	if token == "" {
		return TradeResult{Ok: false, DryRun: true, Error: "Market Maya token is not set"}
	}

	baseURL := c.resolveBaseURL(baseURLOverride)
	cleaned := CleanParams(params)

	if !execute {
		return TradeResult{
			Ok:     true,
			DryRun: true,
			Request: &PreviewRequest{
				BaseURL:         baseURL,
				Path:            customTradePath,
				TokenConfigured: true,
				Params:          cleaned,
			},
		}
	}

	status, payload, err := c.getJSON(ctx, buildURL(baseURL, customTradePath, token, cleaned))
	if err != nil {
		return TradeResult{Ok: false, DryRun: false, Error: err.Error()}
	}
	if status < 200 || status > 299 {
		return TradeResult{
			Ok:      false,
			DryRun:  false,
			Status:  status,
			Error:   extractErrorMessage(payload),
			Payload: payload,
		}
	}
	return TradeResult{Ok: true, DryRun: false, Status: status, Payload: payload}
}

func (c *Client) resolveBaseURL(override string) string {
	if u := normalizeBaseURL(override); u != "" {
		return u
	}
	if c.baseURL != "" {
		return c.baseURL
	}
	return DefaultBaseURL
}

func (c *Client) getJSON(ctx context.Context, reqURL string) (int, interface{}, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, err
	}

	if strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
		var payload interface{}
		if err := json.Unmarshal(body, &payload); err == nil {
			return resp.StatusCode, payload, nil
		}
	}
	return resp.StatusCode, string(body), nil
}

func buildURL(baseURL, path, token string, params map[string]string) string {
	query := url.Values{}
	query.Set("token", token)
	for key, value := range params {
		query.Set(key, value)
	}
	return baseURL + path + "?" + query.Encode()
}

func normalizeBaseURL(value string) string {
	trimmed := strings.TrimSpace(value)
	return strings.TrimSuffix(trimmed, "/")
}

// CleanParams 把参数集整理成可上线路的扁平字符串表：
// 字符串去空白、空值丢弃、布尔只在为真时保留、数字转字符串
func CleanParams(params map[string]interface{}) map[string]string {
	cleaned := make(map[string]string, len(params))
	for key, value := range params {
		if value == nil {
			continue
		}
		if b, ok := value.(bool); ok {
			if b {
				cleaned[key] = "true"
			}
			continue
		}
		s := strings.TrimSpace(cast.ToString(value))
		if s == "" || s == "NaN" {
			continue
		}
		cleaned[key] = s
	}
	return cleaned
}

// 从常见的响应形状里提取人类可读的错误信息
func extractErrorMessage(payload interface{}) string {
	const fallback = "Market Maya request failed"
	if payload == nil {
		return fallback
	}
	if s, ok := payload.(string); ok && strings.TrimSpace(s) != "" {
		return s
	}
	obj, ok := payload.(map[string]interface{})
	if !ok {
		return fmt.Sprintf("%v", payload)
	}
	for _, key := range []string{"message", "error", "description", "msg", "detail"} {
		if value, ok := obj[key].(string); ok && strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
	}
	if raw, err := json.Marshal(obj); err == nil {
		return string(raw)
	}
	return fallback
}
