package lifecycle

import (
	"time"

	"github.com/dmitrymomot/freshwatch/pkg/alerts"
)

// Record tracks one scheduled notification through its lifecycle:
// scheduled, delivered, then opened/dismissed/snoozed. Cancellation is an
// orthogonal flag; cancelling a delivered record does not un-deliver it.
type Record struct {
	ID          string       `json:"id"`
	AlertID     string       `json:"alert_id"`
	Type        alerts.Type  `json:"type"`
	Title       string       `json:"title"`
	Message     string       `json:"message"`
	ScheduledAt time.Time    `json:"scheduled_at"`
	ProductID   string       `json:"product_id,omitempty"`
	Delivered   bool         `json:"delivered"`
	Cancelled   bool         `json:"cancelled"`
	CreatedAt   time.Time    `json:"created_at"`
	DeliveredAt *time.Time   `json:"delivered_at,omitempty"`
	Interaction *Interaction `json:"interaction,omitempty"`
}

// Interaction captures how the user responded to a delivered notification.
type Interaction struct {
	Opened      bool       `json:"opened"`
	OpenedAt    *time.Time `json:"opened_at,omitempty"`
	Action      string     `json:"action,omitempty"`
	Dismissed   bool       `json:"dismissed"`
	DismissedAt *time.Time `json:"dismissed_at,omitempty"`
	Snoozed     bool       `json:"snoozed"`
	SnoozeUntil *time.Time `json:"snooze_until,omitempty"`
}

// Interaction action identifiers dispatched by OnAction.
const (
	ActionSnooze       = "snooze"
	ActionMarkConsumed = "mark_consumed"
	ActionViewProduct  = "view_product"
)

// clone returns a deep copy of the record.
func (r Record) clone() Record {
	out := r
	if r.DeliveredAt != nil {
		t := *r.DeliveredAt
		out.DeliveredAt = &t
	}
	if r.Interaction != nil {
		i := *r.Interaction
		out.Interaction = &i
	}
	return out
}
