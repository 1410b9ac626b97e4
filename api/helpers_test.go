package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Domenick1991/airport/internal/auth"
	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

var (
	staffUser = &domain.User{ID: 1, Email: "admin@example.com", IsStaff: true}
	aliceUser = &domain.User{ID: 2, Email: "alice@example.com"}
	bobUser   = &domain.User{ID: 3, Email: "bob@example.com"}
)

type registrar interface {
	Register(router *gin.RouterGroup)
}

func newTestRouter(path string, handler registrar) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(IdentityMiddleware(auth.NewJWTManager(testSecret, time.Hour), logger.NewNop()))
	handler.Register(router.Group(path))
	return router
}

func bearer(t *testing.T, user *domain.User) string {
	t.Helper()
	token, _, err := auth.NewJWTManager(testSecret, time.Hour).GenerateToken(user)
	require.NoError(t, err)
	return "Bearer " + token
}

func perform(t *testing.T, router http.Handler, method, path string, user *domain.User, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if user != nil {
		req.Header.Set("Authorization", bearer(t, user))
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeErrors(t *testing.T, w *httptest.ResponseRecorder) map[string][]string {
	t.Helper()
	var resp validationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Errors
}
