package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/aeyjeyaryan/ultradoc/internal/bootstrap"
	"github.com/aeyjeyaryan/ultradoc/internal/config"
	"github.com/aeyjeyaryan/ultradoc/internal/observability/logging"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	slog.SetDefault(logging.NewJSONLogger("ultradoc", cfg.LogLevel, cfg.LogFile))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := bootstrap.New(cfg, os.Stdin, os.Stdout)

	if cfg.MetricsPort != "" {
		metricsServer := &http.Server{
			Addr:        ":" + cfg.MetricsPort,
			Handler:     app.Metrics.Handler(),
			ReadTimeout: 10 * time.Second,
		}
		go func() {
			slog.Info("metrics listening", "port", cfg.MetricsPort)
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("metrics server error", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = metricsServer.Shutdown(shutdownCtx)
		}()
	}

	app.Poller.Start(ctx)
	defer app.Poller.Stop()

	if err := app.Shell.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("console error: %v", err)
	}
}
