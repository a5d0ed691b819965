package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var (
	corsMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	corsHeaders = []string{"Content-Type", "X-Request-ID"}
)

// CORS allows every origin unless an explicit allow-list is configured.
// Preflight requests are answered here with 200 and never reach a handler.
// Without an allow-list, requests lacking an Origin header (curl, server to
// server) still get the wildcard headers on every response.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:              corsMethods,
		AllowHeaders:              corsHeaders,
		ExposeHeaders:             []string{"X-Request-ID", "Content-Disposition"},
		MaxAge:                    24 * time.Hour,
		OptionsResponseStatusCode: http.StatusOK,
	}
	if len(allowedOrigins) > 0 {
		cfg.AllowOrigins = allowedOrigins
		return cors.New(cfg)
	}

	cfg.AllowAllOrigins = true
	handler := cors.New(cfg)
	methods := strings.Join(corsMethods, ", ")
	headers := strings.Join(corsHeaders, ", ")
	return func(c *gin.Context) {
		if c.Request.Header.Get("Origin") == "" {
			h := c.Writer.Header()
			h.Set("Access-Control-Allow-Origin", "*")
			h.Set("Access-Control-Allow-Methods", methods)
			h.Set("Access-Control-Allow-Headers", headers)
		}
		handler(c)
	}
}
