package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/JonMunkholm/modeest/internal/config"
	"github.com/JonMunkholm/modeest/internal/core"
	"github.com/JonMunkholm/modeest/internal/logging"
	"github.com/JonMunkholm/modeest/internal/web"
)

func main() {
	// Overload lets a local .env win over the inherited environment.
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Info("configuration loaded", "config", cfg.String())

	pool, err := openPool(context.Background(), cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	service := core.NewService(pool, core.ServiceConfig{
		MaxConcurrent: cfg.Analysis.MaxConcurrent,
		MaxWait:       cfg.Analysis.MaxWaitTime,
		Timeout:       cfg.Analysis.Timeout,
		MaxFileSize:   cfg.Analysis.MaxFileSize,
		MissingTokens: cfg.Analysis.MissingTokens,
	})
	server := web.NewServer(service, cfg)

	jobCtx, cancelJobs := context.WithCancel(context.Background())
	defer cancelJobs()
	go service.StartRetentionScheduler(jobCtx, core.RetentionConfig{
		AnalysisDays:  cfg.Retention.AnalysisDays,
		AuditDays:     cfg.Retention.AuditDays,
		CheckInterval: cfg.Retention.CheckInterval,
	})

	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh

		slog.Info("shutting down", "signal", sig.String())
		cancelJobs()
		drain(service, server, cfg.Server)
	}()

	if err := server.Start(); err != nil {
		return err
	}
	<-shutdownDone
	slog.Info("server stopped")
	return nil
}

// openPool connects and pings the database using the configured pool sizes.
func openPool(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}
	poolConfig.MaxConns = int32(cfg.MaxConns)
	poolConfig.MinConns = int32(cfg.MinConns)
	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	name := ""
	if u, err := url.Parse(cfg.URL); err == nil {
		name = strings.TrimPrefix(u.Path, "/")
	}
	slog.Info("connected to database", "name", name, "max_conns", cfg.MaxConns)
	return pool, nil
}

// drain lets in-flight analyses finish, then stops the HTTP server, all
// within the shutdown timeout.
func drain(service *core.Service, server *web.Server, cfg config.ServerConfig) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if status := service.LimiterStatus(); status.Active > 0 {
		slog.Info("waiting for analyses to complete", "active", status.Active)
		if err := service.WaitForAnalyses(ctx); err != nil {
			slog.Warn("analyses did not complete in time", "error", err)
		}
	}
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}
