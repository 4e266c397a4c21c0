package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"fueldelivery/cmd"
	"fueldelivery/internal/adapters/out/postgres"

	"github.com/labstack/gommon/log"
	"golang.org/x/sync/errgroup"
)

func main() {
	config, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: config.SlogLevel()}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB, err := postgres.Open(config.DatabaseOptions())
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	if config.AutoMigrate {
		if err = postgres.Migrate(ctx, gormDB); err != nil {
			log.Fatalf("Error migrating database: %v", err)
		}
	}

	app, err := cmd.NewCompositionRoot(ctx, config, gormDB, logger)
	if err != nil {
		log.Fatalf("Error building application: %v", err)
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}

	if err = run(ctx, app, config, logger); err != nil {
		logger.Error("Server stopped with error", "error", err)
	}

	jobManager.StopAll()
	if err = app.Close(); err != nil {
		logger.Error("Error closing clients", "error", err)
	}
	if sqlDB, dbErr := gormDB.DB(); dbErr == nil {
		_ = sqlDB.Close()
	}
	logger.Info("Shutdown complete")
}

// run serves HTTP until ctx is cancelled, then drains sockets and requests
// within the shutdown timeout.
func run(ctx context.Context, app *cmd.CompositionRoot, config cmd.Config, logger *slog.Logger) error {
	e := app.CreateEcho()
	addr := net.JoinHostPort("0.0.0.0", config.HTTPPort)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("HTTP server listening", "addr", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), config.ShutdownTimeout)
		defer cancel()

		wsErr := app.WebsocketHandler().Shutdown(shutdownCtx)
		return errors.Join(wsErr, e.Shutdown(shutdownCtx))
	})
	return g.Wait()
}
