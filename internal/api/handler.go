package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"lumina/risk-api/internal/domain"
	"lumina/risk-api/internal/metrics"
	"lumina/risk-api/internal/scoring"
	"lumina/risk-api/internal/store"
	"lumina/risk-api/internal/synthetic"
	"lumina/risk-api/internal/webhook"
)

// Listing bounds for GET /api/v1/assessments.
const (
	defaultListLimit = 50
	maxListLimit     = 500
)

// defaultWebhookThreshold matches the lower bound of the high band.
const defaultWebhookThreshold = domain.ThresholdHigh

// Handler holds the dependencies shared across all HTTP handlers.
type Handler struct {
	store    *store.Store
	notifier *webhook.Notifier
	metrics  *metrics.Metrics
}

// NewHandler creates a Handler wired to the given dependencies.
func NewHandler(s *store.Store, n *webhook.Notifier, m *metrics.Metrics) *Handler {
	return &Handler{store: s, notifier: n, metrics: m}
}

// Record scores p, stores the assessment, and fires webhooks. seed is set
// when p came from the synthetic generator.
func (h *Handler) Record(p domain.RiskProfile, seed *uint32) (*domain.Assessment, error) {
	drivers := scoring.Evaluate(p)
	res := scoring.ScoreDrivers(drivers)

	a := &domain.Assessment{
		ID:          uuid.NewString(),
		Profile:     p,
		Result:      res,
		RawScore:    scoring.RawScore(drivers),
		Seed:        seed,
		Explanation: scoring.Explain(res),
		ScoredAt:    time.Now().UTC(),
	}

	if err := h.store.SaveAssessment(a); err != nil {
		return nil, fmt.Errorf("save assessment: %w", err)
	}

	h.metrics.ObserveAssessment(res)
	h.notifier.NotifyAsync(a)

	slog.Debug("assessment recorded", "id", a.ID, "score", res.Score, "band", res.Band, "drivers", len(res.Drivers))
	return a, nil
}

// Health reports liveness and how many assessments are held in memory.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ok(w, map[string]any{
		"status":      "ok",
		"service":     "lumina-risk-api",
		"assessments": h.store.Count(),
	})
}

// ─── Rule catalogue ───────────────────────────────────────────────────────────

// ListRules returns every scoring rule with its maximum weight.
func (h *Handler) ListRules(w http.ResponseWriter, r *http.Request) {
	ok(w, scoring.Rules())
}

// ─── POST /api/v1/assessments ─────────────────────────────────────────────────

// CreateAssessment scores a submitted profile and returns the assessment.
func (h *Handler) CreateAssessment(w http.ResponseWriter, r *http.Request) {
	var p domain.RiskProfile
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		badRequest(w, "INVALID_JSON", "request body must be a valid risk profile JSON object")
		return
	}

	if err := validateProfile(&p); err != nil {
		badRequest(w, "VALIDATION_ERROR", err.Error())
		return
	}

	h.record(w, p, nil)
}

// ─── POST /api/v1/assessments/synthetic ───────────────────────────────────────

// CreateSyntheticAssessment generates a profile from ?seed (or a time-based
// seed) and scores it.
func (h *Handler) CreateSyntheticAssessment(w http.ResponseWriter, r *http.Request) {
	seed, err := seedParam(r)
	if err != nil {
		badRequest(w, "INVALID_PARAM", err.Error())
		return
	}
	h.record(w, synthetic.Generate(seed), &seed)
}

func (h *Handler) record(w http.ResponseWriter, p domain.RiskProfile, seed *uint32) {
	a, err := h.Record(p, seed)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateAssessment) {
			conflict(w, err.Error())
			return
		}
		slog.Error("record assessment", "error", err)
		internalError(w)
		return
	}
	created(w, a)
}

// ─── GET /api/v1/assessments ──────────────────────────────────────────────────

// ListAssessments returns recorded assessments, newest first.
//
// Query params:
//
//	band:  low, medium or high (optional)
//	limit: 1..500 (default 50)
func (h *Handler) ListAssessments(w http.ResponseWriter, r *http.Request) {
	band := domain.RiskLevel(r.URL.Query().Get("band"))
	if band != "" && !band.Valid() {
		badRequest(w, "INVALID_PARAM", "band must be one of: low, medium, high")
		return
	}

	limit := defaultListLimit
	if l := r.URL.Query().Get("limit"); l != "" {
		parsed, err := strconv.Atoi(l)
		if err != nil || parsed < 1 || parsed > maxListLimit {
			badRequest(w, "INVALID_PARAM", fmt.Sprintf("limit must be an integer between 1 and %d", maxListLimit))
			return
		}
		limit = parsed
	}

	ok(w, h.store.ListAssessments(band, limit))
}

// ─── GET /api/v1/assessments/{id} ─────────────────────────────────────────────

// GetAssessment retrieves a previously recorded assessment by its ID.
func (h *Handler) GetAssessment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	a, exists := h.store.GetAssessment(id)
	if !exists {
		notFound(w, fmt.Sprintf("assessment '%s' not found", id))
		return
	}
	ok(w, a)
}

// ─── GET /api/v1/profiles/synthetic ───────────────────────────────────────────

// GetSyntheticProfile returns a generated profile without scoring it.
func (h *Handler) GetSyntheticProfile(w http.ResponseWriter, r *http.Request) {
	seed, err := seedParam(r)
	if err != nil {
		badRequest(w, "INVALID_PARAM", err.Error())
		return
	}
	ok(w, map[string]any{"seed": seed, "profile": synthetic.Generate(seed)})
}

// ─── Reports ──────────────────────────────────────────────────────────────────

// GetBandReport summarises every assessment recorded since startup.
func (h *Handler) GetBandReport(w http.ResponseWriter, r *http.Request) {
	ok(w, h.store.Report())
}

// ─── Webhooks ─────────────────────────────────────────────────────────────────

// RegisterWebhook adds a new webhook endpoint.
func (h *Handler) RegisterWebhook(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL       string `json:"url"`
		Threshold *int   `json:"threshold"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "INVALID_JSON", "request body must be valid JSON")
		return
	}
	if req.URL == "" {
		badRequest(w, "MISSING_URL", "url is required")
		return
	}

	threshold := defaultWebhookThreshold
	if req.Threshold != nil {
		threshold = *req.Threshold
	}
	if threshold < 0 || threshold > 100 {
		badRequest(w, "INVALID_THRESHOLD", "threshold must be between 0 and 100")
		return
	}

	wh := &domain.WebhookConfig{
		ID:        uuid.NewString(),
		URL:       req.URL,
		Threshold: threshold,
		CreatedAt: time.Now().UTC(),
		Active:    true,
	}
	h.store.SaveWebhook(wh)
	created(w, wh)
}

// DeleteWebhook removes a webhook.
func (h *Handler) DeleteWebhook(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !h.store.DeleteWebhook(id) {
		notFound(w, fmt.Sprintf("webhook '%s' not found", id))
		return
	}
	noContent(w)
}

// ─── Validation ───────────────────────────────────────────────────────────────

// validateProfile enforces the documented input domain. The scorer itself
// accepts anything; this is the caller-side contract.
func validateProfile(p *domain.RiskProfile) error {
	if p.Age < domain.MinAge || p.Age > domain.MaxAge {
		return fmt.Errorf("age must be between %d and %d", domain.MinAge, domain.MaxAge)
	}
	levels := []struct {
		field string
		value domain.RiskLevel
	}{
		{"country_risk", p.CountryRisk},
		{"occupation_risk", p.OccupationRisk},
		{"cash_intensity", p.CashIntensity},
		{"counterparty_risk", p.CounterpartyRisk},
	}
	for _, l := range levels {
		if !l.value.Valid() {
			return fmt.Errorf("%s must be one of: low, medium, high", l.field)
		}
	}
	if !p.IncomeBand.Valid() {
		return fmt.Errorf("income_band must be one of: low, middle, high")
	}
	if !p.OnboardingChannel.Valid() {
		return fmt.Errorf("onboarding_channel must be one of: in-person, online, third-party")
	}
	if p.Amount < 0 {
		return fmt.Errorf("amount must not be negative")
	}
	if p.Velocity24h < 0 {
		return fmt.Errorf("velocity_24h must not be negative")
	}
	return nil
}

// seedParam reads ?seed as a uint32, falling back to the current time.
func seedParam(r *http.Request) (uint32, error) {
	s := r.URL.Query().Get("seed")
	if s == "" {
		return uint32(time.Now().UnixNano()), nil
	}
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("seed must be an integer between 0 and %d", uint32(1<<32-1))
	}
	return uint32(v), nil
}
