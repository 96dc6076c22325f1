package stats

import (
	"math"

	"github.com/dmitrymomot/freshwatch/pkg/alerts"
	"github.com/dmitrymomot/freshwatch/pkg/lifecycle"
)

// Statistics aggregates engagement metrics over the notification record
// set. Rates are percentages of delivered notifications; the effectiveness
// score blends open rate with inverse dismiss rate into a 0-100 value.
type Statistics struct {
	TotalSent           int                 `json:"total_sent"`
	TotalDelivered      int                 `json:"total_delivered"`
	TotalOpened         int                 `json:"total_opened"`
	TotalDismissed      int                 `json:"total_dismissed"`
	OpenRate            float64             `json:"open_rate"`
	DismissRate         float64             `json:"dismiss_rate"`
	AverageResponseTime float64             `json:"average_response_time"` // minutes
	TypeBreakdown       map[alerts.Type]int `json:"type_breakdown"`
	MostActiveHour      int                 `json:"most_active_hour"`
	EffectivenessScore  int                 `json:"effectiveness_score"`
}

// Compute derives statistics from records. It is pure and read-only;
// cancelled records count like any other.
func Compute(records []lifecycle.Record) Statistics {
	s := Statistics{
		TotalSent:     len(records),
		TypeBreakdown: make(map[alerts.Type]int),
	}

	var responseMinutes float64
	responses := 0
	hourCounts := [24]int{}

	for _, r := range records {
		s.TypeBreakdown[r.Type]++

		if !r.Delivered {
			continue
		}
		s.TotalDelivered++

		if r.DeliveredAt != nil {
			hourCounts[r.DeliveredAt.Hour()]++
		}

		if r.Interaction == nil {
			continue
		}
		if r.Interaction.Opened {
			s.TotalOpened++
			if r.Interaction.OpenedAt != nil && r.DeliveredAt != nil {
				responseMinutes += r.Interaction.OpenedAt.Sub(*r.DeliveredAt).Minutes()
				responses++
			}
		}
		if r.Interaction.Dismissed {
			s.TotalDismissed++
		}
	}

	if s.TotalDelivered > 0 {
		s.OpenRate = float64(s.TotalOpened) / float64(s.TotalDelivered) * 100
		s.DismissRate = float64(s.TotalDismissed) / float64(s.TotalDelivered) * 100
	}
	if responses > 0 {
		s.AverageResponseTime = responseMinutes / float64(responses)
	}

	// Lowest hour wins ties.
	for hour, count := range hourCounts {
		if count > hourCounts[s.MostActiveHour] {
			s.MostActiveHour = hour
		}
	}

	s.EffectivenessScore = int(math.Round(s.OpenRate*0.6 + (100-s.DismissRate)*0.4))
	return s
}
