package middleware

import (
	"log/slog"
	"time"

	"pnovbridge/internal/metrics"

	"github.com/gin-gonic/gin"
)

// Logger writes one access log line per request and feeds the HTTP
// request counter.
func Logger(logger *slog.Logger, m metrics.Collector) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()

		m.ObserveHTTP(c.Request.Method, c.FullPath(), status)

		level := slog.LevelInfo
		if status >= 500 {
			level = slog.LevelError
		}
		logger.LogAttrs(c.Request.Context(), level, "http request",
			slog.String("request_id", GetRequestID(c)),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", status),
			slog.Float64("latency_ms", float64(latency.Microseconds())/1000.0),
			slog.String("ip", c.ClientIP()),
		)
	}
}
