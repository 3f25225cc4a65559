package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/mcoot/golfhandicap/internal/api"
	"github.com/mcoot/golfhandicap/internal/config"
	"github.com/mcoot/golfhandicap/internal/factory"
	"github.com/mcoot/golfhandicap/internal/logger"
)

func main() {
	configPath := flag.String("config", os.Getenv("HANDICAP_CONFIG"), "Path to a YAML config file (env: HANDICAP_CONFIG)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logger())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Error("server exited with error", zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.AppConfig, log *zap.Logger) error {
	app, err := factory.New(factory.ConfigFrom(cfg, log))
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Warn("failed to close backends", zap.Error(err))
		}
	}()

	router := api.NewRouter(api.RouterConfig{
		Logger:        log,
		PlayerService: app.PlayerService,
		Calculator:    app.Calculator,
	})

	server := api.NewServer(router, api.ServerConfig{
		Host:            cfg.Server.Host,
		Port:            cfg.Server.Port,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	}, log)

	// Handle graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	log.Info("server started",
		zap.String("addr", server.Addr()),
		zap.String("environment", cfg.Environment),
	)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info("shutdown signal received")
	}

	if err := server.Shutdown(context.Background()); err != nil {
		return err
	}
	log.Info("server stopped")
	return nil
}
