package app

import (
	"eventhub_backend/internal/config"
	"eventhub_backend/internal/model"
	"eventhub_backend/internal/util"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

const testSecret = "router-test-secret"

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: "0", Mode: gin.TestMode},
		JWT:    config.JWTConfig{Secret: testSecret, ExpireTime: time.Hour, Issuer: "eventhub"},
		CORS:   config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
	}
}

// offlineApp builds the router over a dry-run database, enough for every
// path that is rejected before reaching storage.
func offlineApp(t *testing.T) *App {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       "eventhub:eventhub@tcp(127.0.0.1:3306)/eventhub?parseTime=true",
		SkipInitializeWithVersion: true,
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	require.NoError(t, err)
	return New(testConfig(), db, nil)
}

func bearer(t *testing.T, userType string) string {
	t.Helper()
	user := &model.User{UUIDBase: model.UUIDBase{ID: "u-" + userType}, Username: "u" + userType, Type: userType}
	tok, err := util.GenerateJWT(user, testSecret, "eventhub", time.Hour)
	require.NoError(t, err)
	return "Bearer " + tok
}

func serve(a *App, method, target, auth, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)
	return w
}

func TestRouteTable(t *testing.T) {
	a := offlineApp(t)

	registered := map[string]bool{}
	for _, r := range a.Router.Routes() {
		registered[r.Method+" "+r.Path] = true
	}

	expected := []string{
		"POST /register", "PUT /register", "GET /users", "POST /users", "POST /login",
		"GET /third-party-auth", "GET /profile", "PUT /profile", "PUT /edit-password",
		"GET /session", "POST /validate/email", "POST /host", "POST /logout",

		"POST /event", "GET /event", "GET /events", "POST /events", "GET /host/Event",
		"POST /host/Event", "PUT /host/Event", "POST /host/events", "POST /search", "GET /location",

		"POST /purchase", "GET /purchases", "POST /favourites", "DELETE /favourites", "GET /favourites",
		"POST /follow", "DELETE /follow", "POST /friends", "PUT /friends", "GET /friends",
		"POST /posts", "GET /posts", "GET /posts/:id", "POST /comments", "GET /comments",
		"POST /reactions", "POST /reviews", "GET /reviews", "POST /stories", "GET /stories",

		"GET /health", "GET /metrics", "GET /swagger/*any",
	}
	for _, route := range expected {
		assert.True(t, registered[route], "missing route %s", route)
	}
}

func TestAuthGuards(t *testing.T) {
	a := offlineApp(t)

	tests := []struct {
		name   string
		method string
		target string
		auth   string
		want   int
	}{
		{"create event anonymous", http.MethodPost, "/host/Event", "", http.StatusUnauthorized},
		{"create event as user", http.MethodPost, "/host/Event", bearer(t, model.AccountUser), http.StatusForbidden},
		{"analytics as user", http.MethodPost, "/host", bearer(t, model.AccountUser), http.StatusForbidden},
		{"purchase anonymous", http.MethodPost, "/purchase", "", http.StatusUnauthorized},
		{"edit password with garbage token", http.MethodPut, "/edit-password", "Bearer nope", http.StatusUnauthorized},
		{"own profile anonymous", http.MethodGet, "/profile", "", http.StatusUnauthorized},
		{"stories anonymous", http.MethodGet, "/stories", "", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(a, tt.method, tt.target, tt.auth, "{}")
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestRequestValidationBeforeStorage(t *testing.T) {
	a := offlineApp(t)

	assert.Equal(t, http.StatusBadRequest, serve(a, http.MethodGet, "/location?lat=0&lon=0", "", "").Code)
	assert.Equal(t, http.StatusBadRequest, serve(a, http.MethodGet, "/location?lat=91&lon=0&distance=5", "", "").Code)
	assert.Equal(t, http.StatusBadRequest, serve(a, http.MethodGet, "/location?lat=0&lon=0&distance=0", "", "").Code)
	assert.Equal(t, http.StatusBadRequest, serve(a, http.MethodPost, "/register", "", `{"username":"ada"}`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(a, http.MethodGet, "/third-party-auth?provider=google", "", "").Code)

	w := serve(a, http.MethodGet, "/session", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authenticated":false`)
}

func TestOperationalRoutes(t *testing.T) {
	a := offlineApp(t)

	w := serve(a, http.MethodGet, "/swagger/doc.json", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"/location"`)

	w = serve(a, http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}

func TestApplyConfig(t *testing.T) {
	a := offlineApp(t)

	var seen *config.Config
	a.RegisterConfigCallback(func(cfg *config.Config) { seen = cfg })

	cfg := testConfig()
	cfg.RateLimit = config.RateLimitConfig{MaxRequests: 1, WindowMinutes: 1}
	a.applyConfig(cfg)

	assert.Same(t, cfg, seen)
	assert.Equal(t, http.StatusBadRequest, serve(a, http.MethodGet, "/location", "", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(a, http.MethodGet, "/location", "", "").Code)
}
