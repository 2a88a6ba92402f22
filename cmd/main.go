package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/angeloszaimis/bot-keepalive/config"
	"github.com/angeloszaimis/bot-keepalive/internal/handler"
	"github.com/angeloszaimis/bot-keepalive/internal/httpserver"
	"github.com/angeloszaimis/bot-keepalive/internal/metrics"
	"github.com/angeloszaimis/bot-keepalive/internal/supervisor"
	"github.com/angeloszaimis/bot-keepalive/pkg/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info(".env not loaded, using system environment")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("err", err))
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, true, cfg.Server.Environment)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	collector := metrics.NewCollector(100, log)
	collector.Start(ctx)

	sup := supervisor.New(log, collector)
	sup.Launch(botEntry(log))

	livenessHandler := handler.NewLivenessHandler(log, collector)

	srv, err := httpserver.New(cfg.Server.Address, setupRouter(livenessHandler, collector))
	if err != nil {
		log.Error("Failed to create server", slog.Any("err", err))
		os.Exit(1)
	}

	srvErrCh := make(chan error, 1)

	go func() {
		srvErrCh <- srv.Start()
	}()

	log.Info("Serving liveness probes", slog.String("addr", cfg.Server.Address))

	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
		if err := srv.Shutdown(context.Background()); err != nil {
			log.Error("Error during shutdown", slog.Any("err", err))
		}
		// The worker handle is deliberately not joined or cancelled here:
		// the hosting platform owns process lifetime and restarts the
		// whole process wholesale, so the background context is abandoned.
		log.Info("Exiting, abandoning background worker",
			slog.String("worker_state", sup.State().String()))
	case err := <-srvErrCh:
		if err != nil {
			log.Error("Error starting server", slog.Any("err", err))
			os.Exit(1)
		}
	}
}

// botEntry returns the bot's long-running entry point. The real event
// loop is an external collaborator linked in at deployment; this
// placeholder only blocks until the worker's context is cancelled so the
// wiring stays honest about the contract.
func botEntry(log *slog.Logger) supervisor.Entry {
	return func(ctx context.Context) error {
		log.Info("Bot entry point running")
		<-ctx.Done()
		return ctx.Err()
	}
}
