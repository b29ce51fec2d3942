package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sangkips/shopkeeper-api/internal/config"
	"github.com/sangkips/shopkeeper-api/internal/infrastructure/logger"
)

var (
	devOrigins = []string{
		"http://localhost:3000",
		"http://localhost:5173",
		"http://127.0.0.1:3000",
	}
	defaultMethods = []string{
		http.MethodGet, http.MethodPost, http.MethodPut,
		http.MethodPatch, http.MethodDelete, http.MethodOptions,
	}
	defaultHeaders = []string{"Accept", "Authorization", "Content-Type", "Origin"}

	// the billing counter and payment screens cannot work without these
	requiredHeaders = []string{IdempotencyKeyHeader, logger.RequestIDHeader}

	// response headers the browser client reads back
	exposedHeaders = []string{
		"Content-Length",
		"Content-Type",
		logger.RequestIDHeader,
		"X-Idempotency-Replayed",
		"X-RateLimit-Limit",
		"X-RateLimit-Remaining",
		"Retry-After",
	}
)

// CORSMiddleware lets the shop's browser client call the API. Empty config
// lists fall back to local development defaults; the idempotency and request
// id headers are always allowed.
func CORSMiddleware(cfg *config.CORSConfig) gin.HandlerFunc {
	origins := orDefault(cfg.AllowedOrigins, devOrigins)
	methods := orDefault(cfg.AllowedMethods, defaultMethods)
	headers := withHeaders(orDefault(cfg.AllowedHeaders, defaultHeaders), requiredHeaders...)

	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     methods,
		AllowHeaders:     headers,
		ExposeHeaders:    exposedHeaders,
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

func orDefault(list, fallback []string) []string {
	if len(list) == 0 {
		return fallback
	}
	return list
}

// withHeaders returns list plus any of required it lacks, compared without
// regard to case. list is never modified.
func withHeaders(list []string, required ...string) []string {
	out := make([]string, 0, len(list)+len(required))
	out = append(out, list...)
	for _, h := range required {
		found := false
		for _, have := range out {
			if strings.EqualFold(have, h) {
				found = true
				break
			}
		}
		if !found {
			out = append(out, h)
		}
	}
	return out
}
