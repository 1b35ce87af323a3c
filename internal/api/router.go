package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"lumina/risk-api/internal/metrics"
)

// NewRouter creates and returns a configured Chi router. Scoring routes sit
// behind rl; read-only routes are not rate limited.
func NewRouter(h *Handler, m *metrics.Metrics, rl *RateLimiter) http.Handler {
	r := chi.NewRouter()

	// ── Global middleware ─────────────────────────────────────────────────────
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(m))
	r.Use(middleware.Recoverer)

	// ── Health and metrics ────────────────────────────────────────────────────
	r.Get("/health", h.Health)
	r.Method(http.MethodGet, "/metrics", m.Handler())

	// ── API v1 ────────────────────────────────────────────────────────────────
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/rules", h.ListRules)

		r.Route("/assessments", func(r chi.Router) {
			r.With(rl.Middleware).Post("/", h.CreateAssessment)
			r.With(rl.Middleware).Post("/synthetic", h.CreateSyntheticAssessment)
			r.Get("/", h.ListAssessments)
			r.Get("/{id}", h.GetAssessment)
		})

		r.Get("/profiles/synthetic", h.GetSyntheticProfile)
		r.Get("/reports/bands", h.GetBandReport)

		r.Route("/webhooks", func(r chi.Router) {
			r.Post("/", h.RegisterWebhook)
			r.Delete("/{id}", h.DeleteWebhook)
		})
	})

	return r
}

// requestLogger emits one slog record per request and feeds the HTTP metrics.
// It replaces chi's default Logger.
func requestLogger(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			elapsed := time.Since(start)
			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				route = rctx.RoutePattern()
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			m.ObserveRequest(r.Method, route, status, elapsed)

			slog.Info("http",
				"method", r.Method,
				"path", r.URL.Path,
				"route", route,
				"status", status,
				"bytes", ww.BytesWritten(),
				"duration_ms", elapsed.Milliseconds(),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
