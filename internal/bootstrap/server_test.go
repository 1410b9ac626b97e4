package bootstrap

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Domenick1991/airport/config"
	"github.com/Domenick1991/airport/internal/auth"
	"github.com/Domenick1991/airport/internal/logger"
	"github.com/Domenick1991/airport/internal/service/catalog"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func testConfig() *config.Config {
	return &config.Config{
		Logging:  config.LoggingConfig{Level: "info"},
		Security: config.SecurityConfig{RateLimitPerMinute: 60, RateLimitBurst: 1},
	}
}

func testServices() Services {
	return Services{
		Catalog: catalog.NewCatalogService(nil, nil, nil, nil, nil, logger.NewNop()),
		Tokens:  auth.NewJWTManager("secret", time.Hour),
	}
}

func TestNewRouter_Health(t *testing.T) {
	router := NewRouter(testConfig(), testServices(), logger.NewNop())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))
}

func TestNewRouter_KeepsRequestID(t *testing.T) {
	router := NewRouter(testConfig(), testServices(), logger.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(requestIDHeader, "req-42")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "req-42", w.Header().Get(requestIDHeader))
}

func TestNewRouter_AnonymousCatalogRead(t *testing.T) {
	router := NewRouter(testConfig(), testServices(), logger.NewNop())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/airports", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestNewRouter_InvalidToken(t *testing.T) {
	router := NewRouter(testConfig(), testServices(), logger.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/airports", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestNewRouter_RateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.Security.RateLimitEnabled = true
	router := NewRouter(cfg, testServices(), logger.NewNop())

	first := httptest.NewRecorder()
	router.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/health", nil))
	second := httptest.NewRecorder()
	router.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

func TestRecoveryMiddleware(t *testing.T) {
	router := NewRouter(testConfig(), testServices(), logger.NewNop())
	router.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestNewRouter_RateLimitPerClient(t *testing.T) {
	cfg := testConfig()
	cfg.Security.RateLimitEnabled = true
	router := NewRouter(cfg, testServices(), logger.NewNop())

	request := func(addr string) int {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.RemoteAddr = addr
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, request("10.0.0.1:1000"))
	assert.Equal(t, http.StatusTooManyRequests, request("10.0.0.1:1001"))
	assert.Equal(t, http.StatusOK, request("10.0.0.2:1000"))
}

func TestClientLimiters_DropIdleClients(t *testing.T) {
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	limiters := newClientLimiters(rate.Limit(1)/60, 1, time.Minute)
	limiters.now = func() time.Time { return now }

	assert.True(t, limiters.allow("10.0.0.1"))
	assert.False(t, limiters.allow("10.0.0.1"))

	now = now.Add(2 * time.Minute)
	assert.True(t, limiters.allow("10.0.0.2"))
	assert.NotContains(t, limiters.clients, "10.0.0.1")
	assert.Contains(t, limiters.clients, "10.0.0.2")
}
