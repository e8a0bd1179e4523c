package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tabviz/tabviz/internal/api"
	"github.com/tabviz/tabviz/internal/config"
	"github.com/tabviz/tabviz/internal/service"
	"github.com/tabviz/tabviz/internal/session"
	"github.com/tabviz/tabviz/internal/suggest"
	"go.uber.org/zap"
)

var (
	configPath = flag.String("config", "", "Path to config file")
)

func main() {
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	// Session store with background eviction
	store := session.NewStore(cfg.Session.TTL, logger)
	store.StartSweeper(cfg.Session.SweepInterval)
	defer store.Stop()

	// Suggestion orchestrator backed by the configured model provider
	generator := suggest.NewOpenAIClient(cfg.LLM.BaseURL, cfg.LLM.APIKey, cfg.LLM.Model)
	orchestrator := suggest.NewOrchestrator(generator, cfg.Suggest.Language, logger)

	// Initialize services
	analysisService := service.NewAnalysisService(store, orchestrator, logger)
	chartService := service.NewChartService(store)

	// Setup router
	router := api.SetupRouter(analysisService, chartService, logger, api.RouterConfig{
		AllowOrigins:   cfg.CORS.AllowOrigins,
		MaxUploadBytes: cfg.Upload.MaxBytes,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Address(),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Starting tabviz server",
			zap.String("address", cfg.Address()),
			zap.Duration("session_ttl", cfg.Session.TTL),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
