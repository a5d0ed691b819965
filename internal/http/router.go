package api

import (
	"log/slog"
	stdhttp "net/http"

	intconfig "pnovbridge/internal/config"
	h "pnovbridge/internal/http/handlers"
	"pnovbridge/internal/http/middleware"
	"pnovbridge/internal/metrics"
	"pnovbridge/internal/services"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env, logger *slog.Logger, m metrics.Collector) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(logger, m), gin.Recovery(), middleware.CORS(env.CORSOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Warn("failed to set trusted proxies", slog.String("error", err.Error()))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	pnov := h.PNOVHandler{
		Builder:        services.ReportBuilder{HighValueMin: env.HighValueMin},
		Metrics:        m,
		MaxUploadBytes: env.MaxUploadBytes(),
	}
	r.OPTIONS("/pnov-bridge", pnov.Options)
	r.POST("/pnov-bridge", pnov.Report)
	r.OPTIONS("/pnov-bridge/pdf", pnov.Options)
	r.POST("/pnov-bridge/pdf", pnov.ReportPDF)

	r.GET("/metrics", gin.WrapH(m.Handler()))

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/routes", h.Routes)
	}

	h.SetRouter(r)
	return r
}
