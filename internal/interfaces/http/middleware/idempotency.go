package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	domainerrors "brixium.backend/internal/domain/errors"
	"brixium.backend/internal/interfaces/http/response"
	"brixium.backend/pkg/logger"
	"brixium.backend/pkg/redis"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	IdempotencyHeader = "Idempotency-Key"
	// LockDuration is the time we hold the lock while processing
	LockDuration = 30 * time.Second

	processingMarker = "processing"
)

var (
	redisEnabled = redis.Enabled
	redisGet     = redis.Get
	redisSet     = redis.Set
	redisSetNX   = redis.SetNX
	redisDel     = redis.Del
)

// storedResponse is what gets replayed for a repeated key
type storedResponse struct {
	Status int             `json:"status"`
	Body   json.RawMessage `json:"body"`
}

type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func errInProgress() error {
	return domainerrors.NewAppError(http.StatusConflict, "IDEMPOTENCY_CONFLICT", "request already in progress", domainerrors.ErrAlreadyExists)
}

func idempotencyKey(userID, key string) string {
	return fmt.Sprintf("idempotency:%s:%s", userID, key)
}

// IdempotencyMiddleware replays the stored response when a money-moving request
// is retried with the same Idempotency-Key. It is a no-op without Redis.
func IdempotencyMiddleware(retention time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyHeader)
		if key == "" || !redisEnabled() {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		userID, _ := GetUserID(c)
		storageKey := idempotencyKey(userID, key)

		val, err := redisGet(ctx, storageKey)
		switch {
		case err == nil && val == processingMarker:
			response.Abort(c, errInProgress())
			return
		case err == nil:
			var stored storedResponse
			if jsonErr := json.Unmarshal([]byte(val), &stored); jsonErr != nil {
				logger.Warn(ctx, "discarding unreadable idempotency record", zap.String("key", storageKey), zap.Error(jsonErr))
				_ = redisDel(ctx, storageKey)
				break
			}
			c.Header("X-Idempotency-Hit", "true")
			c.Data(stored.Status, "application/json; charset=utf-8", stored.Body)
			c.Abort()
			return
		case !errors.Is(err, redis.Nil):
			logger.Warn(ctx, "idempotency lookup failed, processing without it", zap.Error(err))
			c.Next()
			return
		}

		acquired, err := redisSetNX(ctx, storageKey, processingMarker, LockDuration)
		if err != nil || !acquired {
			response.Abort(c, errInProgress())
			return
		}

		w := &responseWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = w

		c.Next()

		status := c.Writer.Status()
		if status < 200 || status >= 300 {
			// failed attempts may be retried with the same key
			_ = redisDel(ctx, storageKey)
			return
		}
		body := w.body.Bytes()
		if len(body) == 0 {
			body = nil
		}
		payload, err := json.Marshal(storedResponse{Status: status, Body: body})
		if err == nil {
			err = redisSet(ctx, storageKey, string(payload), retention)
		}
		if err != nil {
			logger.Warn(ctx, "failed to store idempotent response", zap.String("key", storageKey), zap.Error(err))
			_ = redisDel(ctx, storageKey)
		}
	}
}
