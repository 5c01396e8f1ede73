package middleware

import (
	"strconv"
	"time"

	"brixium.backend/pkg/logger"
	"brixium.backend/pkg/metrics"
	"github.com/gin-gonic/gin"
)

// LoggerMiddleware logs each request and records its latency by route
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.ObserveHTTP(c.Request.Method, route, strconv.Itoa(status), latency)

		// request id and actor id travel in the request context
		logger.LogRequest(c.Request.Context(), c.Request.Method, path, status, latency, c.ClientIP())
	}
}
