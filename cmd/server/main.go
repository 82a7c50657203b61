package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/xtribr/gabaritai-v3-escola-e-enem-sub001/internal/platform/cache"
	"github.com/xtribr/gabaritai-v3-escola-e-enem-sub001/internal/platform/config"
	"github.com/xtribr/gabaritai-v3-escola-e-enem-sub001/internal/platform/database"
	"github.com/xtribr/gabaritai-v3-escola-e-enem-sub001/internal/remediation"
	"github.com/xtribr/gabaritai-v3-escola-e-enem-sub001/internal/report"
	"github.com/xtribr/gabaritai-v3-escola-e-enem-sub001/internal/roster"
	"github.com/xtribr/gabaritai-v3-escola-e-enem-sub001/internal/student"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	db, err := database.New(ctx, cfg.Database.URL, cfg.Database.MaxConns, cfg.Database.MinConns)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var statsCache *cache.Cache
	if cfg.Cache.Enabled {
		statsCache, err = cache.New(ctx, cfg.Cache.URL)
		if err != nil {
			slog.Error("failed to connect to cache", "error", err)
			os.Exit(1)
		}
		defer statsCache.Close()
	}

	// Load the catalog at boot so a misconfigured gate table fails the
	// deploy instead of the first student report.
	catalog, err := remediation.NewLoader(cfg.CatalogPath)
	if err != nil {
		slog.Error("failed to load remediation catalog", "error", err)
		os.Exit(1)
	}

	directory, err := student.NewPostgresDirectory(db.Pool)
	if err != nil {
		slog.Error("failed to create student directory", "error", err)
		os.Exit(1)
	}
	results, err := report.NewPostgresResults(db.Pool)
	if err != nil {
		slog.Error("failed to create result store", "error", err)
		os.Exit(1)
	}

	builderCfg := report.BuilderConfig{
		Results:  results,
		Catalog:  catalog,
		StatsTTL: cfg.Cache.StatsTTL,
	}
	if statsCache != nil {
		builderCfg.Cache = statsCache
	}

	srv := &server{
		reconciler: roster.NewReconciler(directory),
		builder:    report.NewBuilder(builderCfg),
	}

	mux := newMux(srv, db, statsCache)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}

// newMux creates the HTTP router: health checks plus the thin JSON surface
// over the engine.
func newMux(srv *server, db *database.DB, statsCache *cache.Cache) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", handleHealthz)
	mux.HandleFunc("GET /readyz", handleReadyz(db, statsCache))
	mux.HandleFunc("POST /v1/schools/{school}/roster", srv.handleRosterImport)
	mux.HandleFunc("GET /v1/schools/{school}/classes/{class}/students/{student}/exams/{exam}/report", srv.handleStudentReport)
	return mux
}

func handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func handleReadyz(db *database.DB, statsCache *cache.Cache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.HealthCheck(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"database unavailable"}`))
			return
		}
		if statsCache != nil {
			if err := statsCache.HealthCheck(ctx); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				w.Write([]byte(`{"status":"cache unavailable"}`))
				return
			}
		}

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ready"}`))
	}
}
