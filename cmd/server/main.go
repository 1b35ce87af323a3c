// Command server starts the Lumina Risk Scoring API.
//
// Usage:
//
//	go run ./cmd/server [flags]
//
// Flags:
//
//	-config  Path to a YAML/JSON/TOML config file (optional)
//
// Every setting can also be supplied as RISKSCORE_<SECTION>_<KEY>, e.g.
// RISKSCORE_HTTP_PORT=9090. A bare PORT variable overrides the port.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"lumina/risk-api/internal/api"
	"lumina/risk-api/internal/config"
	"lumina/risk-api/internal/domain"
	"lumina/risk-api/internal/metrics"
	"lumina/risk-api/internal/observability"
	"lumina/risk-api/internal/store"
	"lumina/risk-api/internal/webhook"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(os.Stdout, cfg.Log)

	// ── Wire dependencies ─────────────────────────────────────────────────────
	s := store.New()
	m := metrics.New()
	notifier := webhook.New(s, cfg.Webhook.Timeout)
	handler := api.NewHandler(s, notifier, m)
	limiter := api.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, m)
	router := api.NewRouter(handler, m, limiter)

	// ── Load seed data ────────────────────────────────────────────────────────
	if cfg.SeedFile != "" {
		if err := loadSeedData(handler, cfg.SeedFile); err != nil {
			// Non-fatal: the API works fine without seed data.
			slog.Warn("seed data not loaded", "file", cfg.SeedFile, "reason", err.Error())
		}
	}

	// ── Start HTTP server ─────────────────────────────────────────────────────
	srv := &http.Server{
		Addr:         cfg.Address(),
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	// Graceful shutdown on SIGINT / SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server listening", "addr", srv.Addr, "seed_file", cfg.SeedFile)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
	notifier.Wait()
	slog.Info("server stopped")
}

// seedRecord is one entry of the seed file written by cmd/seed.
type seedRecord struct {
	Seed    *uint32            `json:"seed,omitempty"`
	Profile domain.RiskProfile `json:"profile"`
}

// loadSeedData reads a JSON array of seed records and scores each profile
// so the API starts with history for listings and reports.
func loadSeedData(h *api.Handler, filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}

	var records []seedRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("parse error: %w", err)
	}

	var loaded, failed int
	for _, rec := range records {
		if _, err := h.Record(rec.Profile, rec.Seed); err != nil {
			failed++
			continue
		}
		loaded++
	}

	slog.Info("seed data loaded", "file", filePath, "loaded", loaded, "failed", failed)
	return nil
}
