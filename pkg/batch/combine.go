package batch

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrymomot/freshwatch/pkg/alerts"
	"github.com/dmitrymomot/freshwatch/pkg/settings"
)

// maxGroupSummaries caps how many group summaries appear in a composite
// message before the remainder collapses into an "and N more" suffix.
const maxGroupSummaries = 3

// Combine synthesizes one composite alert representing members. The
// composite carries the severity of the most severe member (first
// encountered wins ties) and the batch alert type; its title and message
// summarize the batch.
func Combine(members []alerts.Alert, cfg settings.Batching) alerts.Alert {
	severity := alerts.SeverityLow
	criticalCount := 0
	for _, m := range members {
		if m.Severity > severity {
			severity = m.Severity
		}
		if m.Severity == alerts.SeverityCritical {
			criticalCount++
		}
	}

	return alerts.Alert{
		ID:       uuid.New().String(),
		Type:     alerts.TypeBatchExpiring,
		Severity: severity,
		Batch: &alerts.BatchSummary{
			Title:         batchTitle(len(members), criticalCount),
			Message:       batchMessage(members, cfg),
			Count:         len(members),
			CriticalCount: criticalCount,
		},
	}
}

// batchTitle emphasizes critical members when any exist.
func batchTitle(total, critical int) string {
	if critical > 0 {
		return fmt.Sprintf("%d items expired or expiring critically", critical)
	}
	return fmt.Sprintf("%d items expiring soon", total)
}

// batchMessage builds up to three group summaries joined by "; ". Groups
// follow product category when cfg.ByCategory; otherwise all members form
// one group. A single-member group reads as the item name, larger groups
// as "<category> × <n>".
func batchMessage(members []alerts.Alert, cfg settings.Batching) string {
	type group struct {
		name  string
		items []alerts.Alert
	}

	var order []string
	grouped := make(map[string]*group)
	for _, m := range members {
		key := "items"
		if cfg.ByCategory && m.Product.Category != "" {
			key = m.Product.Category
		}
		g, ok := grouped[key]
		if !ok {
			g = &group{name: key}
			grouped[key] = g
			order = append(order, key)
		}
		g.items = append(g.items, m)
	}

	summaries := make([]string, 0, maxGroupSummaries)
	for i, key := range order {
		if i == maxGroupSummaries {
			break
		}
		g := grouped[key]
		if len(g.items) == 1 {
			summaries = append(summaries, g.items[0].Product.Name)
		} else {
			summaries = append(summaries, fmt.Sprintf("%s × %d", g.name, len(g.items)))
		}
	}

	message := strings.Join(summaries, "; ")
	if remaining := len(order) - maxGroupSummaries; remaining > 0 {
		message += fmt.Sprintf(" and %d more", remaining)
	}
	return message
}
