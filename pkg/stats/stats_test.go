package stats_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/freshwatch/pkg/alerts"
	"github.com/dmitrymomot/freshwatch/pkg/lifecycle"
	"github.com/dmitrymomot/freshwatch/pkg/stats"
)

func deliveredRecord(id string, at time.Time) lifecycle.Record {
	return lifecycle.Record{
		ID:          id,
		Type:        alerts.TypeExpiringSoon,
		Delivered:   true,
		DeliveredAt: &at,
		CreatedAt:   at,
		Interaction: &lifecycle.Interaction{},
	}
}

func TestCompute_EngagementFixture(t *testing.T) {
	base := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

	var records []lifecycle.Record
	for i := 0; i < 10; i++ {
		r := deliveredRecord(string(rune('a'+i)), base)
		if i < 6 {
			opened := base.Add(10 * time.Minute)
			r.Interaction.Opened = true
			r.Interaction.OpenedAt = &opened
		} else if i < 8 {
			r.Interaction.Dismissed = true
		}
		records = append(records, r)
	}

	got := stats.Compute(records)

	assert.Equal(t, 10, got.TotalSent)
	assert.Equal(t, 10, got.TotalDelivered)
	assert.Equal(t, 6, got.TotalOpened)
	assert.Equal(t, 2, got.TotalDismissed)
	assert.InDelta(t, 60.0, got.OpenRate, 0.001)
	assert.InDelta(t, 20.0, got.DismissRate, 0.001)
	assert.InDelta(t, 10.0, got.AverageResponseTime, 0.001)
	assert.Equal(t, 68, got.EffectivenessScore, "round(60*0.6 + 80*0.4)")
}

func TestCompute_EmptySet(t *testing.T) {
	got := stats.Compute(nil)

	assert.Zero(t, got.TotalSent)
	assert.Zero(t, got.OpenRate)
	assert.Zero(t, got.DismissRate)
	assert.Zero(t, got.AverageResponseTime)
	assert.Equal(t, 0, got.MostActiveHour)
	assert.Equal(t, 40, got.EffectivenessScore, "no deliveries still scores the inverse dismiss component")
}

func TestCompute_TypeBreakdownCountsUndelivered(t *testing.T) {
	records := []lifecycle.Record{
		{ID: "a", Type: alerts.TypeExpired},
		{ID: "b", Type: alerts.TypeExpired},
		{ID: "c", Type: alerts.TypeBatchExpiring},
	}

	got := stats.Compute(records)
	assert.Equal(t, 2, got.TypeBreakdown[alerts.TypeExpired])
	assert.Equal(t, 1, got.TypeBreakdown[alerts.TypeBatchExpiring])
	assert.Equal(t, 0, got.TotalDelivered)
}

func TestCompute_MostActiveHour(t *testing.T) {
	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	records := []lifecycle.Record{
		deliveredRecord("a", day.Add(9*time.Hour)),
		deliveredRecord("b", day.Add(9*time.Hour+30*time.Minute)),
		deliveredRecord("c", day.Add(17*time.Hour)),
	}

	got := stats.Compute(records)
	assert.Equal(t, 9, got.MostActiveHour)

	t.Run("lowest hour wins ties", func(t *testing.T) {
		tied := append(records, deliveredRecord("d", day.Add(17*time.Hour+15*time.Minute)))
		assert.Equal(t, 9, stats.Compute(tied).MostActiveHour)
	})
}

func TestCompute_ResponseTimeNeedsBothTimestamps(t *testing.T) {
	base := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

	opened := deliveredRecord("a", base)
	openedAt := base.Add(4 * time.Minute)
	opened.Interaction.Opened = true
	opened.Interaction.OpenedAt = &openedAt

	// Opened flag without timestamp contributes nothing to the mean.
	flagOnly := deliveredRecord("b", base)
	flagOnly.Interaction.Opened = true

	got := stats.Compute([]lifecycle.Record{opened, flagOnly})
	assert.Equal(t, 2, got.TotalOpened)
	assert.InDelta(t, 4.0, got.AverageResponseTime, 0.001)
}
