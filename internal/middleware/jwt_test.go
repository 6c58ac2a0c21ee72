package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"signalflow/conf"
	"signalflow/internal/consts"
	"signalflow/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/protected", AuthToken(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetUint64(consts.UserID)})
	})
	return engine
}

func getProtected(engine *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestAuthToken(t *testing.T) {
	conf.AppConfig.AppName = "signalflow"
	conf.AppConfig.Jwt.Secret = "test-secret"
	engine := newAuthRouter()

	valid, err := jwt.GenToken(jwt.BuildClaims(time.Now().Add(time.Hour), 42), conf.AppConfig.Jwt.Secret)
	if err != nil {
		t.Fatalf("GenToken: %v", err)
	}
	expired, err := jwt.GenToken(jwt.BuildClaims(time.Now().Add(-time.Hour), 42), conf.AppConfig.Jwt.Secret)
	if err != nil {
		t.Fatalf("GenToken: %v", err)
	}
	wrongSecret, err := jwt.GenToken(jwt.BuildClaims(time.Now().Add(time.Hour), 42), "other-secret")
	if err != nil {
		t.Fatalf("GenToken: %v", err)
	}

	tests := []struct {
		name          string
		authorization string
		status        int
	}{
		{name: "有效token", authorization: "Bearer " + valid, status: http.StatusOK},
		{name: "缺少请求头", authorization: "", status: http.StatusUnauthorized},
		{name: "不是Bearer格式", authorization: "Token " + valid, status: http.StatusUnauthorized},
		{name: "已过期", authorization: "Bearer " + expired, status: http.StatusUnauthorized},
		{name: "密钥不匹配", authorization: "Bearer " + wrongSecret, status: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := getProtected(engine, tt.authorization)
			if w.Code != tt.status {
				t.Errorf("status = %d, want %d, body %s", w.Code, tt.status, w.Body.String())
			}
		})
	}
}

func TestAuthTokenSetsUserID(t *testing.T) {
	conf.AppConfig.AppName = "signalflow"
	conf.AppConfig.Jwt.Secret = "test-secret"
	engine := newAuthRouter()

	token, err := jwt.GenToken(jwt.BuildClaims(time.Now().Add(time.Hour), 42), conf.AppConfig.Jwt.Secret)
	if err != nil {
		t.Fatalf("GenToken: %v", err)
	}
	w := getProtected(engine, "Bearer "+token)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var resp struct {
		UserID uint64 `json:"user_id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("响应体解析失败: %v", err)
	}
	if resp.UserID != 42 {
		t.Errorf("user_id = %d, want 42", resp.UserID)
	}
}
