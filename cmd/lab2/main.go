package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/MaryanFarahsectionE/CPAN-212---LAB-2/api"
	"github.com/MaryanFarahsectionE/CPAN-212---LAB-2/internal/chain"
	"github.com/MaryanFarahsectionE/CPAN-212---LAB-2/internal/config"
	"github.com/MaryanFarahsectionE/CPAN-212---LAB-2/internal/fetch"
	"github.com/MaryanFarahsectionE/CPAN-212---LAB-2/internal/filestore"
	"github.com/MaryanFarahsectionE/CPAN-212---LAB-2/internal/telemetry"
	"github.com/MaryanFarahsectionE/CPAN-212---LAB-2/pkg/logger"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	// Create logger
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logFormat := os.Getenv("LOG_FORMAT")
	if logFormat == "" {
		logFormat = "json"
	}
	zapLogger, err := logger.NewLogger(logLevel, logFormat)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zapLogger.Sync()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		zapLogger.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Optional OpenTelemetry stdout pipeline
	if cfg.Telemetry.Enabled {
		shutdownTelemetry, err := telemetry.Setup(context.Background())
		if err != nil {
			zapLogger.Fatal("Failed to set up telemetry", zap.Error(err))
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdownTelemetry(ctx); err != nil {
				zapLogger.Error("Telemetry shutdown failed", zap.Error(err))
			}
		}()
	}

	// Create the demo services
	user := cfg.UserRecord()
	fetcher := fetch.New(user, cfg.Demo.FetchDelay, cfg.Demo.FailureRate, zapLogger)

	files, err := filestore.New(cfg.Files.DataDir, cfg.Files.DemoFile, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to create file store", zap.Error(err))
	}

	steps := chain.DefaultSteps()
	if cfg.Chain.StepsFile != "" {
		steps, err = chain.LoadSteps(cfg.Chain.StepsFile)
		if err != nil {
			zapLogger.Fatal("Failed to load chain steps", zap.Error(err))
		}
	}
	pipeline := chain.New(steps, user, zapLogger)

	// Create API server
	apiServer := api.NewServer(zapLogger, cfg, fetcher, files, pipeline)

	// Start server in a goroutine
	go func() {
		if err := apiServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Failed to start API server", zap.Error(err))
		}
	}()

	// Wait for interrupt to shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := apiServer.Shutdown(ctx); err != nil {
		zapLogger.Error("Forced shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exited properly")
}
