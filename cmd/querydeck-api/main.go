package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/querydeck/querydeck/internal/api"
	"github.com/querydeck/querydeck/internal/cards/store"
	"github.com/querydeck/querydeck/internal/config"
	"github.com/querydeck/querydeck/internal/explain"
	"github.com/querydeck/querydeck/internal/migrations"
	"github.com/querydeck/querydeck/internal/observability"
)

const localStoreFallback = "querydeck.db"

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", slog.Any("error", err))
	}

	cfg, err := config.LoadFromEnv("querydeck-api")
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg, os.Stdout)

	dsn := cfg.Store.DSN
	if dsn == "" {
		logger.Warn("QUERYDECK_STORE_DSN is not set, using local sqlite store", slog.String("path", localStoreFallback))
		dsn = localStoreFallback
	}

	db, dialect, err := store.Open(context.Background(), store.DBConfig{
		DSN:             dsn,
		MaxOpenConns:    cfg.Store.MaxOpenConns,
		MaxIdleConns:    cfg.Store.MaxIdleConns,
		ConnMaxIdleTime: cfg.Store.ConnMaxIdleTime,
		ConnMaxLifetime: cfg.Store.ConnMaxLifetime,
	})
	if err != nil {
		logger.Error("failed to open card store", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	runner, err := migrations.NewRunner(string(dialect))
	if err != nil {
		logger.Error("failed to create migration runner", slog.Any("error", err))
		os.Exit(1)
	}
	applied, err := runner.Up(context.Background(), db, 0)
	if err != nil {
		logger.Error("failed to apply migrations", slog.Any("error", err))
		os.Exit(1)
	}
	if applied > 0 {
		logger.Info("applied schema migrations", slog.Int("count", applied))
	}

	cardRepo := store.NewRepository(db)

	var explainer explain.Explainer
	if cfg.AI.APIKey != "" {
		explainer, err = explain.NewGeminiExplainer(explain.GeminiConfig{
			BaseURL: cfg.AI.BaseURL,
			APIKey:  cfg.AI.APIKey,
			Model:   cfg.AI.Model,
			Timeout: cfg.AI.Timeout,
		})
		if err != nil {
			logger.Error("failed to initialize ai explainer", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("ai analysis enabled", slog.String("model", cfg.AI.Model))
	} else {
		logger.Warn("QUERYDECK_AI_API_KEY is not set, /analyze is disabled")
	}

	handler := api.NewHandler(cfg, api.Dependencies{
		Logger:            logger,
		Cards:             cardRepo,
		Explainer:         explainer,
		Readiness:         cardRepo.HealthCheck,
		DependencyTimeout: time.Second,
	})

	server := &http.Server{
		Addr:         cfg.HTTP.Address,
		Handler:      handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("starting api server", slog.String("addr", cfg.HTTP.Address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("api server failed", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logger.Info("shutting down api server")
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", slog.Any("error", err))
		_ = server.Close()
		os.Exit(1)
	}
}
