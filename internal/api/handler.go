package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/querydeck/querydeck/internal/cards"
	"github.com/querydeck/querydeck/internal/config"
	"github.com/querydeck/querydeck/internal/explain"
	"github.com/querydeck/querydeck/internal/observability"
)

type ReadinessCheck func(ctx context.Context) error

type Dependencies struct {
	Logger            *slog.Logger
	Readiness         ReadinessCheck
	DependencyTimeout time.Duration
	Cards             cards.Repository
	Explainer         explain.Explainer
}

func NewHandler(cfg config.Config, deps Dependencies) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":  "online",
			"message": "API do Gerenciador de Queries está no ar!",
		})
	})

	mux.HandleFunc("GET /ready", func(w http.ResponseWriter, r *http.Request) {
		if deps.Readiness == nil {
			writeJSON(w, http.StatusOK, map[string]any{"status": "ready"})
			return
		}
		timeout := deps.DependencyTimeout
		if timeout <= 0 {
			timeout = 2 * time.Second
		}
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()
		if err := deps.Readiness(ctx); err != nil {
			writeError(r.Context(), w, http.StatusServiceUnavailable, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"status": "ready"})
	})

	mux.Handle("GET /metrics", promhttp.Handler())

	// The browser-facing routes sit behind the origin allow-list; liveness,
	// readiness and metrics stay open for probes and scrapers.
	protected := http.NewServeMux()
	protected.HandleFunc("GET /cards", func(w http.ResponseWriter, r *http.Request) {
		handleListCards(deps, w, r)
	})
	protected.HandleFunc("POST /cards", func(w http.ResponseWriter, r *http.Request) {
		handleCreateCard(deps, w, r)
	})
	protected.HandleFunc("DELETE /cards/{id}", func(w http.ResponseWriter, r *http.Request) {
		handleDeleteCard(deps, w, r)
	})
	protected.HandleFunc("POST /analyze", func(w http.ResponseWriter, r *http.Request) {
		handleAnalyze(deps, w, r)
	})

	protectedHandler := newCORSMiddleware(cfg.HTTP.AllowedOrigins).Handler(protected)
	mux.Handle("GET /cards", protectedHandler)
	mux.Handle("POST /cards", protectedHandler)
	mux.Handle("OPTIONS /cards", protectedHandler)
	mux.Handle("DELETE /cards/{id}", protectedHandler)
	mux.Handle("OPTIONS /cards/{id}", protectedHandler)
	mux.Handle("POST /analyze", protectedHandler)
	mux.Handle("OPTIONS /analyze", protectedHandler)

	middlewares := []func(http.Handler) http.Handler{
		observability.TraceMiddleware,
		observability.MetricsMiddleware,
	}
	if deps.Logger != nil {
		middlewares = append(middlewares, observability.LoggingMiddleware(deps.Logger))
	}
	return chain(mux, middlewares...)
}

func chain(base http.Handler, middlewares ...func(http.Handler) http.Handler) http.Handler {
	wrapped := base
	for i := len(middlewares) - 1; i >= 0; i-- {
		wrapped = middlewares[i](wrapped)
	}
	return wrapped
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(ctx context.Context, w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{
		"erro":     message,
		"trace_id": observability.TraceIDFromContext(ctx),
	})
}
