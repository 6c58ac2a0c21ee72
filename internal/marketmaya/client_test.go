package marketmaya

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"signalflow/conf"
)

func TestCustomTradeDryRun(t *testing.T) {
	// dry-run绝不触网：server一旦收到请求立即失败
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("dry-run must not hit the network")
	}))
	defer server.Close()

	c := NewClient(conf.MayaConfig{BaseURL: server.URL})
	result := c.CustomTrade(context.Background(), "tok",
		map[string]interface{}{"symbol": "TCS", "call_type": "BUY"}, false, "")

	if !result.Ok || !result.DryRun {
		t.Fatalf("result = %+v", result)
	}
	if result.Request == nil {
		t.Fatalf("dry-run should return the would-be request")
	}
	if result.Request.BaseURL != server.URL || result.Request.Path != "/custom-trade" {
		t.Errorf("request = %+v", result.Request)
	}
	if !result.Request.TokenConfigured {
		t.Errorf("token should be marked configured")
	}
	if result.Request.Params["symbol"] != "TCS" {
		t.Errorf("params = %v", result.Request.Params)
	}
}

func TestCustomTradeLive(t *testing.T) {
	var gotQuery map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","order_id":"123"}`))
	}))
	defer server.Close()

	c := NewClient(conf.MayaConfig{BaseURL: server.URL})
	result := c.CustomTrade(context.Background(), "tok",
		map[string]interface{}{"symbol": "TCS", "call_type": "BUY", "qty_value": 5}, true, "")

	if !result.Ok || result.DryRun || result.Status != 200 {
		t.Fatalf("result = %+v", result)
	}
	if gotQuery["token"][0] != "tok" {
		t.Errorf("token query = %v", gotQuery["token"])
	}
	if gotQuery["symbol"][0] != "TCS" || gotQuery["qty_value"][0] != "5" {
		t.Errorf("query = %v", gotQuery)
	}
	payload, ok := result.Payload.(map[string]interface{})
	if !ok || payload["order_id"] != "123" {
		t.Errorf("payload = %v", result.Payload)
	}
}

func TestCustomTradeErrorExtraction(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"Invalid token"}`))
	}))
	defer server.Close()

	c := NewClient(conf.MayaConfig{BaseURL: server.URL})
	result := c.CustomTrade(context.Background(), "bad",
		map[string]interface{}{"symbol": "TCS"}, true, "")

	if result.Ok {
		t.Fatalf("non-2xx should fail: %+v", result)
	}
	if result.Error != "Invalid token" {
		t.Errorf("error = %q", result.Error)
	}
	if result.Status != 400 {
		t.Errorf("status = %d", result.Status)
	}
}

func TestCustomTradeMissingToken(t *testing.T) {
	c := NewClient(conf.MayaConfig{})
	result := c.CustomTrade(context.Background(), "  ", map[string]interface{}{}, true, "")
	if result.Ok || result.Error != "Market Maya token is not set" {
		t.Errorf("result = %+v", result)
	}
}

func TestCustomTradeBaseURLOverride(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	// client配置指向一个不存在的地址，override必须生效
	c := NewClient(conf.MayaConfig{BaseURL: "http://127.0.0.1:1"})
	result := c.CustomTrade(context.Background(), "tok",
		map[string]interface{}{"symbol": "TCS"}, true, server.URL+"/")

	if !result.Ok {
		t.Fatalf("override base url should be used: %+v", result)
	}
}

func TestCleanParams(t *testing.T) {
	got := CleanParams(map[string]interface{}{
		"symbol":      " TCS ",
		"empty":       "   ",
		"nil":         nil,
		"true_flag":   true,
		"false_flag":  false,
		"number":      12.5,
		"int":         3,
		"nan":         "NaN",
		"zero_string": "0",
	})
	want := map[string]string{
		"symbol":      "TCS",
		"true_flag":   "true",
		"number":      "12.5",
		"int":         "3",
		"zero_string": "0",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CleanParams() = %v, want %v", got, want)
	}
}
