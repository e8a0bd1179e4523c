package api

import (
	"github.com/gin-gonic/gin"
	"github.com/tabviz/tabviz/internal/api/middleware"
	"github.com/tabviz/tabviz/internal/service"
	"go.uber.org/zap"
)

// RouterConfig holds configuration for the router
type RouterConfig struct {
	AllowOrigins   []string
	MaxUploadBytes int64
}

// SetupRouter sets up the Gin router
func SetupRouter(
	analysisService *service.AnalysisService,
	chartService *service.ChartService,
	logger *zap.Logger,
	cfg RouterConfig,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	// CORS middleware
	r.Use(middleware.CORS(cfg.AllowOrigins))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy"})
	})

	handler := NewHandler(analysisService, chartService, logger, cfg.MaxUploadBytes)
	apiGroup := r.Group("/api")
	handler.RegisterRoutes(apiGroup)

	return r
}
