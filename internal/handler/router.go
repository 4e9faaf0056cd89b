package handler

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	internalmiddleware "github.com/noah-isme/timetable-api/internal/middleware"
	"github.com/noah-isme/timetable-api/internal/service"
	"github.com/noah-isme/timetable-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/timetable-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/timetable-api/pkg/middleware/requestid"
)

// RouterConfig selects the optional surfaces of the HTTP API.
type RouterConfig struct {
	APIPrefix      string
	AllowedOrigins []string
	EnableDocs     bool
}

// NewRouter wires middleware and routes. A nil metrics service disables the
// /metrics endpoint and request instrumentation.
func NewRouter(cfg RouterConfig, logr *zap.Logger, metrics *service.MetricsService, timetables *TimetableHandler) *gin.Engine {
	if logr == nil {
		logr = zap.NewNop()
	}
	r := gin.New()
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(internalmiddleware.Recovery(logr))
	r.Use(corsmiddleware.New(cfg.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metrics))

	probes := NewMetricsHandler(metrics)
	r.GET("/health", probes.Health)
	r.GET("/ready", probes.Ready)
	if metrics != nil {
		r.GET("/metrics", probes.Prometheus)
	}

	r.POST("/generate", timetables.Generate)
	r.POST("/api/ai/generate", timetables.GenerateAlias)

	api := r.Group(cfg.APIPrefix)
	api.POST("/timetable/generate", timetables.Generate)
	api.POST("/timetable/slots", timetables.Slots)
	api.POST("/timetable/export", timetables.Export)

	if cfg.EnableDocs {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
	return r
}
