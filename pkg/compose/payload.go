package compose

import (
	"time"

	"github.com/dmitrymomot/freshwatch/pkg/alerts"
)

// Payload is the platform-agnostic notification content handed to the
// platform delivery primitive.
type Payload struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Message   string   `json:"message"`
	ChannelID string   `json:"channel_id"`
	Color     string   `json:"color"`
	Icon      string   `json:"icon"`
	Sound     string   `json:"sound,omitempty"`
	Vibrate   bool     `json:"vibrate"`
	Badge     bool     `json:"badge"`
	Metadata  Metadata `json:"metadata"`
}

// Metadata links a payload back to its source alert and product.
type Metadata struct {
	AlertID     string      `json:"alert_id"`
	ProductID   string      `json:"product_id,omitempty"`
	Type        alerts.Type `json:"type"`
	ScheduledAt time.Time   `json:"scheduled_at"`
}

// ChannelImportance is a platform channel importance level.
type ChannelImportance int

const (
	ImportanceNormal ChannelImportance = iota
	ImportanceHigh
	ImportanceMax
)

// ChannelSpec describes a platform notification channel to create at
// initialization time.
type ChannelSpec struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Importance ChannelImportance `json:"importance"`
}

const (
	ChannelCritical = "critical"
	ChannelHigh     = "high"
	ChannelBatch    = "batch"
	ChannelNormal   = "normal"
)

// Channels returns the full set of channels the engine delivers through.
func Channels() []ChannelSpec {
	return []ChannelSpec{
		{ID: ChannelCritical, Name: "Critical expiration alerts", Importance: ImportanceMax},
		{ID: ChannelHigh, Name: "Expiration alerts", Importance: ImportanceHigh},
		{ID: ChannelBatch, Name: "Grouped expiration alerts", Importance: ImportanceHigh},
		{ID: ChannelNormal, Name: "Other notifications", Importance: ImportanceNormal},
	}
}

// ChannelFor maps an alert type to its delivery channel. The table is
// fixed; severity never overrides it.
func ChannelFor(t alerts.Type) string {
	switch t {
	case alerts.TypeExpired, alerts.TypeCriticalExpiring:
		return ChannelCritical
	case alerts.TypeExpiringSoon, alerts.TypeConsumePriority, alerts.TypeWasteWarning:
		return ChannelHigh
	case alerts.TypeBatchExpiring:
		return ChannelBatch
	default:
		return ChannelNormal
	}
}
