package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/shopkeeper-api/internal/domain/entity"
	"github.com/sangkips/shopkeeper-api/internal/domain/repository"
	"github.com/sangkips/shopkeeper-api/internal/infrastructure/logger"
	"github.com/sangkips/shopkeeper-api/internal/presentation/http/dto/response"
	"github.com/sangkips/shopkeeper-api/pkg/apperror"
	"go.uber.org/zap"
)

// IdempotencyKeyHeader is the HTTP header for idempotency keys
const IdempotencyKeyHeader = "Idempotency-Key"

// IdempotencyConfig holds configuration for the idempotency middleware
type IdempotencyConfig struct {
	Repo repository.IdempotencyRepository
	TTL  time.Duration
	Now  func() time.Time
}

// responseWriter wraps gin.ResponseWriter to capture the response body
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency replays the stored response when a client retries a bill or
// payment with the same Idempotency-Key. Reusing a key with a different body
// is rejected. Only successful responses are stored, so a failed attempt can
// be retried with the same key.
func Idempotency(config IdempotencyConfig) gin.HandlerFunc {
	if config.TTL <= 0 {
		config.TTL = 24 * time.Hour
	}
	if config.Now == nil {
		config.Now = time.Now
	}

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost && c.Request.Method != http.MethodPut && c.Request.Method != http.MethodPatch {
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}

		userIDValue, ok := c.Get(ContextUserID)
		if !ok {
			c.Next()
			return
		}
		userID := fmt.Sprint(userIDValue)

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			response.AbortWithError(c, apperror.NewBadRequestError("Could not read request body"))
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))
		sum := sha256.Sum256(body)
		hash := hex.EncodeToString(sum[:])

		log := logger.GetGinLogger(c)
		ctx := c.Request.Context()

		existing, err := config.Repo.GetByKey(ctx, key, userID)
		if err != nil {
			log.Warn("Idempotency lookup failed", zap.Error(err))
			c.Next()
			return
		}

		if existing != nil && !existing.IsExpired(config.Now()) {
			if existing.RequestHash != "" && existing.RequestHash != hash {
				response.AbortWithError(c, apperror.NewUnprocessableError("Idempotency-Key was already used with a different request"))
				return
			}
			c.Header("X-Idempotency-Replayed", "true")
			c.Data(existing.ResponseCode, "application/json; charset=utf-8", []byte(existing.ResponseBody))
			c.Abort()
			return
		}

		blw := &responseWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		status := c.Writer.Status()
		if status < 200 || status >= 300 {
			return
		}

		record := &entity.IdempotencyKey{
			Key:          key,
			UserID:       userID,
			Endpoint:     c.Request.Method + " " + c.FullPath(),
			RequestHash:  hash,
			ResponseCode: status,
			ResponseBody: blw.body.String(),
			ExpiresAt:    config.Now().Add(config.TTL).UTC(),
		}
		if err := config.Repo.Create(ctx, record); err != nil {
			log.Warn("Failed to store idempotency key", zap.String("key", key), zap.Error(err))
		}
	}
}
