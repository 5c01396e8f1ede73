package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"brixium.backend/pkg/jwt"
	"brixium.backend/pkg/logger"
	pkgredis "brixium.backend/pkg/redis"
	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSessionKey = "0000000000000000000000000000000000000000000000000000000000000000"

func init() {
	gin.SetMode(gin.TestMode)
}

// withMiniRedis points pkg/redis at a fresh miniredis for the test
func withMiniRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	pkgredis.SetClient(client)
	t.Cleanup(func() {
		pkgredis.SetClient(nil)
		_ = client.Close()
	})
	return mr
}

func whoAmI(c *gin.Context) {
	id, _ := GetUserID(c)
	role, _ := GetUserRole(c)
	email, _ := GetUserEmail(c)
	c.JSON(http.StatusOK, gin.H{
		"id":      id,
		"role":    role,
		"email":   email,
		"session": GetSessionID(c),
		"actor":   c.Request.Context().Value(logger.ActorIDKey),
	})
}

func doRequest(r http.Handler, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestAuthMiddleware_Bearer(t *testing.T) {
	svc := jwt.NewJWTService("secret", "brixium", time.Minute, time.Hour)
	pair, err := svc.GenerateTokenPair("user-001", "alice@example.com", "user")
	require.NoError(t, err)

	r := gin.New()
	r.GET("/me", AuthMiddleware(svc, nil), whoAmI)

	w := doRequest(r, http.MethodGet, "/me", map[string]string{AuthorizationHeader: BearerPrefix + pair.AccessToken})
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "user-001", body["id"])
	assert.Equal(t, "user", body["role"])
	assert.Equal(t, "alice@example.com", body["email"])
	assert.Equal(t, "user-001", body["actor"])
	assert.Equal(t, "", body["session"])
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	svc := jwt.NewJWTService("secret", "brixium", time.Minute, time.Hour)
	expired := jwt.NewJWTService("secret", "brixium", -time.Minute, time.Hour)
	pair, err := svc.GenerateTokenPair("user-001", "alice@example.com", "user")
	require.NoError(t, err)
	stale, err := expired.GenerateTokenPair("user-001", "alice@example.com", "user")
	require.NoError(t, err)

	r := gin.New()
	r.GET("/me", AuthMiddleware(svc, nil), whoAmI)

	cases := []struct {
		name    string
		headers map[string]string
		code    string
	}{
		{"missing header", nil, "UNAUTHORIZED"},
		{"not bearer", map[string]string{AuthorizationHeader: "Basic abc"}, "UNAUTHORIZED"},
		{"garbage token", map[string]string{AuthorizationHeader: BearerPrefix + "abc"}, "UNAUTHORIZED"},
		{"refresh token", map[string]string{AuthorizationHeader: BearerPrefix + pair.RefreshToken}, "UNAUTHORIZED"},
		{"expired token", map[string]string{AuthorizationHeader: BearerPrefix + stale.AccessToken}, "TOKEN_EXPIRED"},
		{"session without store", map[string]string{SessionHeader: "sess-1"}, "UNAUTHORIZED"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(r, http.MethodGet, "/me", tc.headers)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, tc.code, decodeBody(t, w)["code"])
		})
	}
}

func TestAuthMiddleware_Session(t *testing.T) {
	withMiniRedis(t)
	sessions, err := pkgredis.NewSessionStore(testSessionKey)
	require.NoError(t, err)
	require.NoError(t, sessions.CreateSession(context.Background(), "sess-abc", &pkgredis.SessionData{
		UserID: "admin-001",
		Email:  "admin@brixium.com",
		Role:   "admin",
	}, time.Hour))

	svc := jwt.NewJWTService("secret", "brixium", time.Minute, time.Hour)
	r := gin.New()
	r.GET("/me", AuthMiddleware(svc, sessions), RequireAdmin(), whoAmI)

	w := doRequest(r, http.MethodGet, "/me", map[string]string{SessionHeader: "sess-abc"})
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "admin-001", body["id"])
	assert.Equal(t, "sess-abc", body["session"])

	w = doRequest(r, http.MethodGet, "/me", map[string]string{SessionHeader: "sess-missing"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "session expired or unknown")
}

func TestRequireRole(t *testing.T) {
	r := gin.New()
	r.GET("/anon", RequireAdmin(), whoAmI)
	r.GET("/user", func(c *gin.Context) { c.Set(UserRoleKey, "user") }, RequireAdmin(), whoAmI)
	r.GET("/admin", func(c *gin.Context) { c.Set(UserRoleKey, "admin") }, RequireCustomer(), whoAmI)
	r.GET("/ok", func(c *gin.Context) { c.Set(UserRoleKey, "user") }, RequireCustomer(), whoAmI)

	assert.Equal(t, http.StatusUnauthorized, doRequest(r, http.MethodGet, "/anon", nil).Code)
	assert.Equal(t, http.StatusForbidden, doRequest(r, http.MethodGet, "/user", nil).Code)
	assert.Equal(t, http.StatusForbidden, doRequest(r, http.MethodGet, "/admin", nil).Code)
	assert.Equal(t, http.StatusOK, doRequest(r, http.MethodGet, "/ok", nil).Code)
}

func TestRequestIDMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware(), LoggerMiddleware())
	r.GET("/x", func(c *gin.Context) {
		c.String(http.StatusOK, "%v", c.Request.Context().Value(logger.RequestIDKey))
	})

	w := doRequest(r, http.MethodGet, "/x", map[string]string{RequestIDHeader: "req-42"})
	assert.Equal(t, "req-42", w.Body.String())
	assert.Equal(t, "req-42", w.Header().Get(RequestIDHeader))

	w = doRequest(r, http.MethodGet, "/x", nil)
	assert.NotEmpty(t, w.Body.String())
	assert.Equal(t, w.Body.String(), w.Header().Get(RequestIDHeader))

	assert.Equal(t, http.StatusNotFound, doRequest(r, http.MethodGet, "/nowhere", nil).Code)
}

func TestCORSMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"http://localhost:3000/"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := doRequest(r, http.MethodGet, "/x", map[string]string{"Origin": "http://localhost:3000"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	w = doRequest(r, http.MethodGet, "/x", map[string]string{"Origin": "http://evil.test"})
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	w = doRequest(r, http.MethodOptions, "/x", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func idempotentRouter(calls *int, status int) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set(UserIDKey, "user-001") })
	r.POST("/transfers", IdempotencyMiddleware(time.Hour), func(c *gin.Context) {
		*calls++
		c.JSON(status, gin.H{"call": *calls})
	})
	return r
}

func TestIdempotencyMiddleware_Replay(t *testing.T) {
	mr := withMiniRedis(t)
	calls := 0
	r := idempotentRouter(&calls, http.StatusCreated)
	headers := map[string]string{IdempotencyHeader: "key-1"}

	first := doRequest(r, http.MethodPost, "/transfers", headers)
	require.Equal(t, http.StatusCreated, first.Code)

	second := doRequest(r, http.MethodPost, "/transfers", headers)
	assert.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, "true", second.Header().Get("X-Idempotency-Hit"))
	assert.JSONEq(t, first.Body.String(), second.Body.String())
	assert.Equal(t, 1, calls)

	doRequest(r, http.MethodPost, "/transfers", map[string]string{IdempotencyHeader: "key-2"})
	doRequest(r, http.MethodPost, "/transfers", nil)
	assert.Equal(t, 3, calls)

	assert.True(t, mr.Exists("idempotency:user-001:key-1"))
	assert.InDelta(t, time.Hour.Seconds(), mr.TTL("idempotency:user-001:key-1").Seconds(), 1)
}

func TestIdempotencyMiddleware_FailureIsRetryable(t *testing.T) {
	mr := withMiniRedis(t)
	calls := 0
	r := idempotentRouter(&calls, http.StatusUnprocessableEntity)
	headers := map[string]string{IdempotencyHeader: "key-1"}

	doRequest(r, http.MethodPost, "/transfers", headers)
	doRequest(r, http.MethodPost, "/transfers", headers)
	assert.Equal(t, 2, calls)
	assert.False(t, mr.Exists("idempotency:user-001:key-1"))
}

func TestIdempotencyMiddleware_InProgress(t *testing.T) {
	mr := withMiniRedis(t)
	require.NoError(t, mr.Set("idempotency:user-001:key-1", processingMarker))
	calls := 0
	r := idempotentRouter(&calls, http.StatusCreated)

	w := doRequest(r, http.MethodPost, "/transfers", map[string]string{IdempotencyHeader: "key-1"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "IDEMPOTENCY_CONFLICT")
	assert.Zero(t, calls)
}

func TestIdempotencyMiddleware_Degrades(t *testing.T) {
	calls := 0
	r := idempotentRouter(&calls, http.StatusCreated)
	headers := map[string]string{IdempotencyHeader: "key-1"}

	// no redis configured
	doRequest(r, http.MethodPost, "/transfers", headers)
	doRequest(r, http.MethodPost, "/transfers", headers)
	assert.Equal(t, 2, calls)

	origEnabled, origGet := redisEnabled, redisGet
	t.Cleanup(func() { redisEnabled, redisGet = origEnabled, origGet })
	redisEnabled = func() bool { return true }
	redisGet = func(context.Context, string) (string, error) { return "", errors.New("connection refused") }

	w := doRequest(r, http.MethodPost, "/transfers", headers)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 3, calls)
	assert.False(t, strings.Contains(w.Header().Get("X-Idempotency-Hit"), "true"))
}
