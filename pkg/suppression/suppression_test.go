package suppression_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/freshwatch/pkg/alerts"
	"github.com/dmitrymomot/freshwatch/pkg/settings"
	"github.com/dmitrymomot/freshwatch/pkg/suppression"
)

func baseSettings() settings.Settings {
	cfg := settings.Default()
	cfg.DND.Enabled = true
	cfg.DND.EmergencyOverride = true
	cfg.DND.Schedule = []settings.DNDSchedule{
		{Days: []int{0, 1, 2, 3, 4, 5, 6}, Start: "22:00", End: "07:00"},
	}
	return cfg
}

// at returns a fixed Monday at the given wall-clock time.
func at(hour, minute int) time.Time {
	return time.Date(2025, 6, 2, hour, minute, 0, 0, time.UTC)
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*settings.Settings)
		alert  alerts.Alert
		now    time.Time
		want   suppression.Decision
	}{
		{
			name:   "globally disabled blocks",
			mutate: func(s *settings.Settings) { s.Enabled = false },
			alert:  alerts.Alert{Type: alerts.TypeExpired, Severity: alerts.SeverityCritical},
			now:    at(12, 0),
			want:   suppression.Block,
		},
		{
			name:   "disabled type blocks",
			mutate: func(s *settings.Settings) { s.EnabledTypes[alerts.TypeWasteWarning] = false },
			alert:  alerts.Alert{Type: alerts.TypeWasteWarning, Severity: alerts.SeverityHigh},
			now:    at(12, 0),
			want:   suppression.Block,
		},
		{
			name:   "outside quiet hours allows",
			mutate: func(s *settings.Settings) {},
			alert:  alerts.Alert{Type: alerts.TypeExpiringSoon, Severity: alerts.SeverityMedium},
			now:    at(12, 0),
			want:   suppression.Allow,
		},
		{
			name:   "quiet hours queues medium severity",
			mutate: func(s *settings.Settings) {},
			alert:  alerts.Alert{Type: alerts.TypeExpiringSoon, Severity: alerts.SeverityMedium},
			now:    at(23, 0),
			want:   suppression.QueueForLater,
		},
		{
			name:   "quiet hours override lets critical through",
			mutate: func(s *settings.Settings) {},
			alert:  alerts.Alert{Type: alerts.TypeExpired, Severity: alerts.SeverityCritical},
			now:    at(23, 0),
			want:   suppression.Allow,
		},
		{
			name:   "quiet hours without override queues critical",
			mutate: func(s *settings.Settings) { s.DND.EmergencyOverride = false },
			alert:  alerts.Alert{Type: alerts.TypeExpired, Severity: alerts.SeverityCritical},
			now:    at(23, 0),
			want:   suppression.QueueForLater,
		},
		{
			name:   "wrapped window active after midnight",
			mutate: func(s *settings.Settings) {},
			alert:  alerts.Alert{Type: alerts.TypeExpiringSoon, Severity: alerts.SeverityLow},
			now:    at(6, 30),
			want:   suppression.QueueForLater,
		},
		{
			name:   "wrapped window ends at end time",
			mutate: func(s *settings.Settings) {},
			alert:  alerts.Alert{Type: alerts.TypeExpiringSoon, Severity: alerts.SeverityLow},
			now:    at(7, 0),
			want:   suppression.Allow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := baseSettings()
			tt.mutate(&cfg)
			got := suppression.Evaluate(tt.alert, cfg, tt.now)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInQuietHours(t *testing.T) {
	cfg := baseSettings()

	t.Run("disabled dnd never matches", func(t *testing.T) {
		off := cfg
		off.DND.Enabled = false
		assert.False(t, suppression.InQuietHours(at(23, 0), off.DND))
	})

	t.Run("weekday not in schedule", func(t *testing.T) {
		weekdaysOnly := cfg
		weekdaysOnly.DND.Schedule = []settings.DNDSchedule{
			{Days: []int{2, 3}, Start: "22:00", End: "07:00"},
		}
		// Monday is day 1.
		assert.False(t, suppression.InQuietHours(at(23, 0), weekdaysOnly.DND))
	})

	t.Run("malformed entry is skipped", func(t *testing.T) {
		broken := cfg
		broken.DND.Schedule = []settings.DNDSchedule{
			{Days: []int{0, 1, 2, 3, 4, 5, 6}, Start: "25:99", End: "bogus"},
		}
		assert.False(t, suppression.InQuietHours(at(23, 0), broken.DND))
	})

	t.Run("non-wrapped window", func(t *testing.T) {
		narrow := cfg
		narrow.DND.Schedule = []settings.DNDSchedule{
			{Days: []int{0, 1, 2, 3, 4, 5, 6}, Start: "13:00", End: "14:00"},
		}
		assert.True(t, suppression.InQuietHours(at(13, 30), narrow.DND))
		assert.False(t, suppression.InQuietHours(at(14, 0), narrow.DND))
		assert.False(t, suppression.InQuietHours(at(12, 59), narrow.DND))
	})
}

func TestQuietHoursEnd(t *testing.T) {
	cfg := baseSettings()

	t.Run("inactive window has no end", func(t *testing.T) {
		_, ok := suppression.QuietHoursEnd(at(12, 0), cfg.DND)
		assert.False(t, ok)
	})

	t.Run("before midnight ends tomorrow", func(t *testing.T) {
		end, ok := suppression.QuietHoursEnd(at(23, 0), cfg.DND)
		assert.True(t, ok)
		assert.Equal(t, time.Date(2025, 6, 3, 7, 0, 0, 0, time.UTC), end)
	})

	t.Run("after midnight ends today", func(t *testing.T) {
		end, ok := suppression.QuietHoursEnd(at(6, 0), cfg.DND)
		assert.True(t, ok)
		assert.Equal(t, time.Date(2025, 6, 2, 7, 0, 0, 0, time.UTC), end)
	})
}
