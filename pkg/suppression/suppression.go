package suppression

import (
	"strconv"
	"strings"
	"time"

	"github.com/dmitrymomot/freshwatch/pkg/alerts"
	"github.com/dmitrymomot/freshwatch/pkg/settings"
)

// Decision is the outcome of evaluating one alert against the current
// configuration and clock.
type Decision int

const (
	// Allow means the alert may proceed to batching or scheduling.
	Allow Decision = iota
	// QueueForLater means delivery is deferred by quiet hours; the alert
	// should be retried when the active window ends.
	QueueForLater
	// Block means the alert is dropped outright. Callers must not retry.
	Block
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case QueueForLater:
		return "queue_for_later"
	case Block:
		return "block"
	default:
		return "unknown"
	}
}

// Evaluate decides whether alert may be delivered under cfg at now.
//
// Disabled notifications (globally or per type) block the alert. During an
// active quiet-hours window only Critical alerts pass, and only when the
// emergency override is on; everything else is queued for later.
func Evaluate(alert alerts.Alert, cfg settings.Settings, now time.Time) Decision {
	if !cfg.Enabled {
		return Block
	}
	if !cfg.EnabledTypes[alert.Type] {
		return Block
	}

	if InQuietHours(now, cfg.DND) {
		if cfg.DND.EmergencyOverride && alert.Severity == alerts.SeverityCritical {
			return Allow
		}
		return QueueForLater
	}

	return Allow
}

// InQuietHours reports whether now falls inside any enabled quiet-hours
// window. A window whose end is numerically before its start crosses
// midnight: 22:00-07:00 matches t>=22:00 or t<07:00.
func InQuietHours(now time.Time, dnd settings.DND) bool {
	if !dnd.Enabled {
		return false
	}

	minute := now.Hour()*60 + now.Minute()
	weekday := int(now.Weekday())

	for _, entry := range dnd.Schedule {
		if !containsDay(entry.Days, weekday) {
			continue
		}
		start, okStart := parseMinutes(entry.Start)
		end, okEnd := parseMinutes(entry.End)
		if !okStart || !okEnd {
			// Malformed schedule entries are skipped, never fatal.
			continue
		}
		if inWindow(minute, start, end) {
			return true
		}
	}
	return false
}

// QuietHoursEnd returns the moment the currently active quiet-hours window
// ends. The second return is false when no window is active at now.
func QuietHoursEnd(now time.Time, dnd settings.DND) (time.Time, bool) {
	if !dnd.Enabled {
		return time.Time{}, false
	}

	minute := now.Hour()*60 + now.Minute()
	weekday := int(now.Weekday())

	for _, entry := range dnd.Schedule {
		if !containsDay(entry.Days, weekday) {
			continue
		}
		start, okStart := parseMinutes(entry.Start)
		end, okEnd := parseMinutes(entry.End)
		if !okStart || !okEnd || !inWindow(minute, start, end) {
			continue
		}

		endToday := time.Date(now.Year(), now.Month(), now.Day(), end/60, end%60, 0, 0, now.Location())
		if end < start && minute >= start {
			// Wrapped window entered before midnight ends tomorrow.
			endToday = endToday.AddDate(0, 0, 1)
		}
		return endToday, true
	}
	return time.Time{}, false
}

func inWindow(minute, start, end int) bool {
	if end < start {
		return minute >= start || minute < end
	}
	return minute >= start && minute < end
}

func containsDay(days []int, day int) bool {
	for _, d := range days {
		if d == day {
			return true
		}
	}
	return false
}

// parseMinutes converts "HH:MM" to minutes since midnight.
func parseMinutes(v string) (int, bool) {
	parts := strings.SplitN(v, ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}
