package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdugdh24/cofounders-backend/internal/config"
	"github.com/gdugdh24/cofounders-backend/internal/infrastructure/container"
	"github.com/gdugdh24/cofounders-backend/internal/logging"
)

func main() {
	os.Exit(run())
}

// run returns the process exit code so deferred cleanup runs before exit.
func run() int {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	logger := logging.New(os.Stdout, cfg.Logging.Level, cfg.Server.Env)
	ctx := context.Background()

	// Initialize dependency injection container
	app, err := container.NewContainer(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "failed to initialize application", "error", err)
		return 1
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error(ctx, "error closing application", "error", err)
		}
	}()

	// Channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Start server in a goroutine
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- app.Server.Start()
	}()

	code := 0
	select {
	case <-quit:
	case err := <-serverErr:
		if err != nil {
			logger.Error(ctx, "server error", "error", err)
			code = 1
		}
	}

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	if err := app.Server.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "server shutdown error", "error", err)
		return 1
	}

	logger.Info(ctx, "server exited", "code", code)
	return code
}
