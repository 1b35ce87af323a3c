// Package store provides thread-safe, in-memory storage for the risk API.
//
// Assessments live only for the lifetime of the process. Insertion order is
// kept in a separate slice so listings can be returned newest first without
// sorting on every read.
package store

import (
	"errors"
	"sort"
	"sync"
	"time"

	"lumina/risk-api/internal/domain"
)

// ErrDuplicateAssessment is returned when an assessment ID is saved twice.
var ErrDuplicateAssessment = errors.New("assessment already exists")

// Store is a thread-safe in-memory data store.
type Store struct {
	mu sync.RWMutex

	assessments map[string]*domain.Assessment
	order       []string // assessment IDs in insertion order
	webhooks    map[string]*domain.WebhookConfig
}

// New creates an empty, ready-to-use Store.
func New() *Store {
	return &Store{
		assessments: make(map[string]*domain.Assessment),
		webhooks:    make(map[string]*domain.WebhookConfig),
	}
}

// ─── Assessments ──────────────────────────────────────────────────────────────

// SaveAssessment records an assessment.
// Returns ErrDuplicateAssessment if the ID already exists.
func (s *Store) SaveAssessment(a *domain.Assessment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.assessments[a.ID]; exists {
		return ErrDuplicateAssessment
	}

	s.assessments[a.ID] = a
	s.order = append(s.order, a.ID)
	return nil
}

// GetAssessment retrieves a single assessment by ID.
func (s *Store) GetAssessment(id string) (*domain.Assessment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.assessments[id]
	return a, ok
}

// ListAssessments returns up to limit assessments, newest first.
// An empty band matches every band; limit <= 0 means no limit.
func (s *Store) ListAssessments(band domain.RiskLevel, limit int) []*domain.Assessment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Assessment, 0)
	for i := len(s.order) - 1; i >= 0; i-- {
		a := s.assessments[s.order[i]]
		if band != "" && a.Result.Band != band {
			continue
		}
		result = append(result, a)
		if limit > 0 && len(result) == limit {
			break
		}
	}
	return result
}

// Count returns the number of stored assessments.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// Report aggregates every stored assessment into band counts, the average
// score, and how often each driver key was surfaced. Driver counts are
// sorted by count descending, then key.
func (s *Store) Report() domain.BandReport {
	s.mu.RLock()
	defer s.mu.RUnlock()

	report := domain.BandReport{
		GeneratedAt:      time.Now().UTC(),
		TotalAssessments: len(s.order),
		DriverCounts:     []domain.DriverFrequency{},
	}

	var total int
	counts := make(map[string]int)
	for _, id := range s.order {
		a := s.assessments[id]
		total += a.Result.Score

		switch a.Result.Band {
		case domain.RiskHigh:
			report.HighCount++
		case domain.RiskMedium:
			report.MediumCount++
		default:
			report.LowCount++
		}

		for _, d := range a.Result.Drivers {
			counts[d.Key]++
		}
	}

	if len(s.order) > 0 {
		report.AvgScore = float64(total) / float64(len(s.order))
	}

	for key, n := range counts {
		report.DriverCounts = append(report.DriverCounts, domain.DriverFrequency{Key: key, Count: n})
	}
	sort.Slice(report.DriverCounts, func(i, j int) bool {
		a, b := report.DriverCounts[i], report.DriverCounts[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Key < b.Key
	})

	return report
}

// ─── Webhooks ─────────────────────────────────────────────────────────────────

// SaveWebhook persists a webhook configuration.
func (s *Store) SaveWebhook(wh *domain.WebhookConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.webhooks[wh.ID] = wh
}

// DeleteWebhook removes a webhook by ID. Returns false if not found.
func (s *Store) DeleteWebhook(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, exists := s.webhooks[id]
	if exists {
		delete(s.webhooks, id)
	}
	return exists
}

// ListActiveWebhooks returns all webhooks that are currently active.
func (s *Store) ListActiveWebhooks() []*domain.WebhookConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.WebhookConfig
	for _, wh := range s.webhooks {
		if wh.Active {
			result = append(result, wh)
		}
	}
	return result
}
