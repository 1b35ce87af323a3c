package store_test

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumina/risk-api/internal/domain"
	"lumina/risk-api/internal/store"
)

// ─── Helpers ──────────────────────────────────────────────────────────────────

func newAssessment(id string, score int, band domain.RiskLevel, keys ...string) *domain.Assessment {
	drivers := make([]domain.RiskDriver, len(keys))
	for i, k := range keys {
		drivers[i] = domain.RiskDriver{Key: k, Contribution: 1, Weight: 1}
	}
	return &domain.Assessment{
		ID:       id,
		Result:   domain.ScoreResult{Score: score, Band: band, Drivers: drivers},
		ScoredAt: time.Now().UTC(),
	}
}

func ids(as []*domain.Assessment) []string {
	out := make([]string, len(as))
	for i, a := range as {
		out[i] = a.ID
	}
	return out
}

// ─── Assessments ──────────────────────────────────────────────────────────────

func TestSave_And_GetByID(t *testing.T) {
	s := store.New()
	require.NoError(t, s.SaveAssessment(newAssessment("a-001", 40, domain.RiskMedium)))

	got, ok := s.GetAssessment("a-001")
	require.True(t, ok)
	assert.Equal(t, "a-001", got.ID)
	assert.Equal(t, 1, s.Count())
}

func TestSave_DuplicateID_ReturnsError(t *testing.T) {
	s := store.New()
	a := newAssessment("dup-001", 10, domain.RiskLow)
	require.NoError(t, s.SaveAssessment(a))

	err := s.SaveAssessment(a)
	assert.ErrorIs(t, err, store.ErrDuplicateAssessment)
	assert.Equal(t, 1, s.Count())
}

func TestGet_MissingID_ReturnsFalse(t *testing.T) {
	_, ok := store.New().GetAssessment("nonexistent")
	assert.False(t, ok)
}

func TestList_NewestFirst(t *testing.T) {
	s := store.New()
	for i := 1; i <= 3; i++ {
		require.NoError(t, s.SaveAssessment(newAssessment(fmt.Sprintf("a-%d", i), 0, domain.RiskLow)))
	}

	assert.Equal(t, []string{"a-3", "a-2", "a-1"}, ids(s.ListAssessments("", 0)))
	assert.Equal(t, []string{"a-3", "a-2"}, ids(s.ListAssessments("", 2)))
}

func TestList_FilterByBand(t *testing.T) {
	s := store.New()
	require.NoError(t, s.SaveAssessment(newAssessment("low-1", 5, domain.RiskLow)))
	require.NoError(t, s.SaveAssessment(newAssessment("high-1", 80, domain.RiskHigh)))
	require.NoError(t, s.SaveAssessment(newAssessment("low-2", 10, domain.RiskLow)))

	assert.Equal(t, []string{"low-2", "low-1"}, ids(s.ListAssessments(domain.RiskLow, 0)))
	assert.Equal(t, []string{"high-1"}, ids(s.ListAssessments(domain.RiskHigh, 0)))
	assert.Empty(t, s.ListAssessments(domain.RiskMedium, 0))
	assert.NotNil(t, s.ListAssessments(domain.RiskMedium, 0))
}

// ─── Report ───────────────────────────────────────────────────────────────────

func TestReport_Empty(t *testing.T) {
	r := store.New().Report()

	assert.Equal(t, 0, r.TotalAssessments)
	assert.Equal(t, 0.0, r.AvgScore)
	assert.NotNil(t, r.DriverCounts)
	assert.Empty(t, r.DriverCounts)
}

func TestReport_Aggregates(t *testing.T) {
	s := store.New()
	require.NoError(t, s.SaveAssessment(newAssessment("a", 0, domain.RiskLow)))
	require.NoError(t, s.SaveAssessment(newAssessment("b", 40, domain.RiskMedium, "sanctions")))
	require.NoError(t, s.SaveAssessment(newAssessment("c", 80, domain.RiskHigh, "sanctions", "pep", "country")))
	require.NoError(t, s.SaveAssessment(newAssessment("d", 40, domain.RiskMedium, "pep", "cash")))

	r := s.Report()

	assert.Equal(t, 4, r.TotalAssessments)
	assert.Equal(t, 1, r.LowCount)
	assert.Equal(t, 2, r.MediumCount)
	assert.Equal(t, 1, r.HighCount)
	assert.InDelta(t, 40.0, r.AvgScore, 0.0001)
	assert.Equal(t, []domain.DriverFrequency{
		{Key: "pep", Count: 2},
		{Key: "sanctions", Count: 2},
		{Key: "cash", Count: 1},
		{Key: "country", Count: 1},
	}, r.DriverCounts)
}

// ─── Webhooks ─────────────────────────────────────────────────────────────────

func TestWebhooks_SaveListDelete(t *testing.T) {
	s := store.New()
	s.SaveWebhook(&domain.WebhookConfig{ID: "wh-1", URL: "http://a", Threshold: 70, Active: true})
	s.SaveWebhook(&domain.WebhookConfig{ID: "wh-2", URL: "http://b", Threshold: 70, Active: false})

	active := s.ListActiveWebhooks()
	require.Len(t, active, 1)
	assert.Equal(t, "wh-1", active[0].ID)

	assert.True(t, s.DeleteWebhook("wh-1"))
	assert.False(t, s.DeleteWebhook("wh-1"))
	assert.Empty(t, s.ListActiveWebhooks())
}

// ─── Concurrency ──────────────────────────────────────────────────────────────

func TestStore_ConcurrentWrites(t *testing.T) {
	s := store.New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = s.SaveAssessment(newAssessment(fmt.Sprintf("c-%d", i), i, domain.RiskLow))
			_ = s.ListAssessments("", 10)
			_ = s.Report()
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, s.Count())
}
