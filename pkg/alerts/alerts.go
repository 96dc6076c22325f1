package alerts

import (
	"time"
)

// Type represents the expiration alert category.
type Type string

const (
	TypeExpired          Type = "expired"
	TypeCriticalExpiring Type = "critical_expiring"
	TypeExpiringSoon     Type = "expiring_soon"
	TypeConsumePriority  Type = "consume_priority"
	TypeWasteWarning     Type = "waste_warning"
	TypeBatchExpiring    Type = "batch_expiring"
)

// AllTypes returns every known alert type, in a fixed order. Useful for
// building exhaustive per-type maps (settings, breakdowns).
func AllTypes() []Type {
	return []Type{
		TypeExpired,
		TypeCriticalExpiring,
		TypeExpiringSoon,
		TypeConsumePriority,
		TypeWasteWarning,
		TypeBatchExpiring,
	}
}

// Valid checks if the type is one of the known alert types.
func (t Type) Valid() bool {
	switch t {
	case TypeExpired, TypeCriticalExpiring, TypeExpiringSoon,
		TypeConsumePriority, TypeWasteWarning, TypeBatchExpiring:
		return true
	}
	return false
}

// Severity represents the alert severity level, ordered from least to most
// severe so levels can be compared directly.
type Severity int

const (
	SeverityLow Severity = iota
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

// Valid checks if the severity is within the known range.
func (s Severity) Valid() bool {
	return s >= SeverityLow && s <= SeverityCritical
}

func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// Action is a suggested follow-up for an alert (consume, freeze, discard).
type Action struct {
	Label string `json:"label"`
	Kind  string `json:"kind"`
}

// Product carries the item details an alert refers to.
type Product struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Category       string    `json:"category"`
	Location       string    `json:"location"`
	Brand          string    `json:"brand,omitempty"`
	Quantity       int       `json:"quantity,omitempty"`
	ExpirationDate time.Time `json:"expiration_date"`
}

// Alert is an upstream assertion that a product crossed an expiration
// threshold. Alerts are produced outside this module and treated as
// immutable: the engine wraps and derives from them but never mutates one.
type Alert struct {
	ID                  string        `json:"id"`
	ProductID           string        `json:"product_id"`
	Product             Product       `json:"product"`
	Type                Type          `json:"type"`
	Severity            Severity      `json:"severity"`
	DaysUntilExpiration int           `json:"days_until_expiration"`
	SuggestedActions    []Action      `json:"suggested_actions,omitempty"`
	Batch               *BatchSummary `json:"batch,omitempty"`
}

// BatchSummary is attached to composite alerts synthesized from a batch of
// individual alerts. Composites describe multiple products, so they carry
// their own display copy instead of a single Product.
type BatchSummary struct {
	Title         string `json:"title"`
	Message       string `json:"message"`
	Count         int    `json:"count"`
	CriticalCount int    `json:"critical_count"`
}
