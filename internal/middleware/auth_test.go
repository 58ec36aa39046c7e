package middleware

import (
	"context"
	"errors"
	"eventhub_backend/internal/model"
	"eventhub_backend/internal/util"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const secret = "middleware-secret"

type mockChecker struct {
	mock.Mock
}

func (m *mockChecker) IsRevoked(ctx context.Context, jti string) (bool, error) {
	args := m.Called(ctx, jti)
	return args.Bool(0), args.Error(1)
}

func token(t *testing.T, typ string) (string, *util.Claims) {
	t.Helper()
	user := &model.User{UUIDBase: model.UUIDBase{ID: "u1"}, Username: "ada", Type: typ}
	tok, err := util.GenerateJWT(user, secret, "eventhub", time.Hour)
	require.NoError(t, err)
	claims, err := util.ParseJWT(tok, secret)
	require.NoError(t, err)
	return tok, claims
}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers = append(handlers, func(c *gin.Context) {
		claims := util.GetUserFromContext(c)
		if claims == nil {
			c.String(http.StatusOK, "anonymous")
			return
		}
		c.String(http.StatusOK, claims.UserID)
	})
	r.GET("/", handlers...)
	return r
}

func do(r *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	tok, claims := token(t, model.AccountUser)

	checker := &mockChecker{}
	checker.On("IsRevoked", mock.Anything, claims.ID).Return(false, nil)

	r := newRouter(AuthMiddleware(secret, checker))

	w := do(r, "Bearer "+tok)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u1", w.Body.String())

	assert.Equal(t, http.StatusUnauthorized, do(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, "Bearer garbage").Code)

	checker.AssertExpectations(t)
}

func TestAuthMiddlewareRejectsRevokedToken(t *testing.T) {
	tok, claims := token(t, model.AccountUser)

	checker := &mockChecker{}
	checker.On("IsRevoked", mock.Anything, claims.ID).Return(true, nil)

	r := newRouter(AuthMiddleware(secret, checker))
	assert.Equal(t, http.StatusUnauthorized, do(r, "Bearer "+tok).Code)
}

func TestAuthMiddlewareFailsClosed(t *testing.T) {
	tok, _ := token(t, model.AccountUser)

	checker := &mockChecker{}
	checker.On("IsRevoked", mock.Anything, mock.Anything).Return(false, errors.New("redis down"))

	r := newRouter(AuthMiddleware(secret, checker))
	assert.Equal(t, http.StatusServiceUnavailable, do(r, "Bearer "+tok).Code)
}

func TestTryAuthMiddleware(t *testing.T) {
	tok, _ := token(t, model.AccountUser)
	r := newRouter(TryAuthMiddleware(secret, nil))

	assert.Equal(t, "u1", do(r, "Bearer "+tok).Body.String())
	assert.Equal(t, "anonymous", do(r, "").Body.String())
	assert.Equal(t, "anonymous", do(r, "Bearer garbage").Body.String())
}

func TestHostOnly(t *testing.T) {
	hostTok, _ := token(t, model.AccountHost)
	userTok, _ := token(t, model.AccountUser)

	r := newRouter(AuthMiddleware(secret, nil), HostOnly())

	assert.Equal(t, http.StatusOK, do(r, "Bearer "+hostTok).Code)
	assert.Equal(t, http.StatusForbidden, do(r, "Bearer "+userTok).Code)
}
