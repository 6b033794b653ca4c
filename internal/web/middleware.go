package web

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// RequestLogger logs every request with zerolog, skipping socket.io polling
// noise.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/socket.io") {
			return
		}
		log.Info().
			Str("path", path).
			Str("method", c.Request.Method).
			Int("status", c.Writer.Status()).
			Dur("dur", time.Since(start)).
			Str("request_id", c.GetString(requestIDKey)).
			Msg("http")
	}
}

const requestIDKey = "request_id"

// RequestID assigns each request a uuid, echoed in the X-Request-ID header.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}

// RateLimit bounds a route to rps requests per second. Requests over the
// limit get 429 immediately; there is no queueing.
func RateLimit(rps float64) gin.HandlerFunc {
	if rps <= 0 {
		rps = 5
	}
	limiter := rate.NewLimiter(rate.Limit(rps), int(rps)+1)
	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
