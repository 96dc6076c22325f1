package settings

import (
	"maps"
	"slices"

	"github.com/dmitrymomot/freshwatch/pkg/alerts"
)

// Settings is the full notification configuration. It is persisted as a
// single JSON document and replaced wholesale on every update.
type Settings struct {
	Enabled      bool                 `json:"enabled"`
	EnabledTypes map[alerts.Type]bool `json:"enabled_types"`
	Timing       Timing               `json:"timing"`
	Sound        Sound                `json:"sound"`
	Visual       Visual               `json:"visual"`
	Batching     Batching             `json:"batching"`
	DND          DND                  `json:"dnd"`
	Messages     Messages             `json:"messages"`
}

// Timing controls when notifications may be delivered.
type Timing struct {
	MorningTime    string `json:"morning_time"` // "HH:MM"
	EveningTime    string `json:"evening_time"` // "HH:MM"
	EnableMorning  bool   `json:"enable_morning"`
	EnableEvening  bool   `json:"enable_evening"`
	EnableRealtime bool   `json:"enable_realtime"`
	SnoozeMinutes  int    `json:"snooze_minutes"`
	MaxPerDay      int    `json:"max_per_day"`
	QuietHours     Window `json:"quiet_hours"`
}

// Window is a daily time window in "HH:MM" form. An End smaller than Start
// denotes a window crossing midnight.
type Window struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Sound holds sound and vibration preferences.
type Sound struct {
	Enabled bool   `json:"enabled"`
	Name    string `json:"name"`
	Vibrate bool   `json:"vibrate"`
}

// Visual holds per-type color and icon preferences.
type Visual struct {
	Colors    map[alerts.Type]string `json:"colors"`
	Icons     map[alerts.Type]string `json:"icons"`
	ShowBadge bool                   `json:"show_badge"`
}

// Batching controls alert aggregation.
type Batching struct {
	Enabled        bool `json:"enabled"`
	TimeoutMinutes int  `json:"timeout_minutes"`
	MaxBatchSize   int  `json:"max_batch_size"`
	ByCategory     bool `json:"by_category"`
	BySeverity     bool `json:"by_severity"`
}

// DND configures quiet-hours suppression.
type DND struct {
	Enabled           bool          `json:"enabled"`
	Schedule          []DNDSchedule `json:"schedule"`
	EmergencyOverride bool          `json:"emergency_override"`
}

// DNDSchedule is one quiet-hours entry: a window active on the listed
// weekdays (0=Sunday..6=Saturday).
type DNDSchedule struct {
	Days  []int  `json:"days"`
	Start string `json:"start"` // "HH:MM"
	End   string `json:"end"`   // "HH:MM"
}

// Messages holds per-type notification text templates. Templates use
// {placeholder} markers substituted from the alert's product.
type Messages struct {
	Templates map[alerts.Type]string `json:"templates"`
}

// clone returns a deep copy. Map and slice sections are copied so a
// snapshot never aliases the live configuration or earlier snapshots.
func (s Settings) clone() Settings {
	out := s
	out.EnabledTypes = maps.Clone(s.EnabledTypes)
	out.Visual.Colors = maps.Clone(s.Visual.Colors)
	out.Visual.Icons = maps.Clone(s.Visual.Icons)
	out.Messages.Templates = maps.Clone(s.Messages.Templates)
	if s.DND.Schedule != nil {
		out.DND.Schedule = make([]DNDSchedule, len(s.DND.Schedule))
		for i, entry := range s.DND.Schedule {
			entry.Days = slices.Clone(entry.Days)
			out.DND.Schedule[i] = entry
		}
	}
	return out
}

// Default returns the out-of-the-box configuration: all alert types
// enabled, realtime delivery on, batching on with a 5 minute window,
// quiet hours configured but DND disabled.
func Default() Settings {
	enabledTypes := make(map[alerts.Type]bool, len(alerts.AllTypes()))
	for _, t := range alerts.AllTypes() {
		enabledTypes[t] = true
	}

	return Settings{
		Enabled:      true,
		EnabledTypes: enabledTypes,
		Timing: Timing{
			MorningTime:    "08:00",
			EveningTime:    "19:00",
			EnableMorning:  true,
			EnableEvening:  true,
			EnableRealtime: true,
			SnoozeMinutes:  30,
			MaxPerDay:      10,
			QuietHours:     Window{Start: "22:00", End: "07:00"},
		},
		Sound: Sound{
			Enabled: true,
			Name:    "default",
			Vibrate: true,
		},
		Visual: Visual{
			Colors: map[alerts.Type]string{
				alerts.TypeExpired:          "#D32F2F",
				alerts.TypeCriticalExpiring: "#F57C00",
				alerts.TypeExpiringSoon:     "#FBC02D",
				alerts.TypeConsumePriority:  "#388E3C",
				alerts.TypeWasteWarning:     "#7B1FA2",
				alerts.TypeBatchExpiring:    "#1976D2",
			},
			Icons: map[alerts.Type]string{
				alerts.TypeExpired:          "ic_expired",
				alerts.TypeCriticalExpiring: "ic_critical",
				alerts.TypeExpiringSoon:     "ic_expiring",
				alerts.TypeConsumePriority:  "ic_consume",
				alerts.TypeWasteWarning:     "ic_waste",
				alerts.TypeBatchExpiring:    "ic_batch",
			},
			ShowBadge: true,
		},
		Batching: Batching{
			Enabled:        true,
			TimeoutMinutes: 5,
			MaxBatchSize:   5,
			ByCategory:     true,
			BySeverity:     false,
		},
		DND: DND{
			Enabled: false,
			Schedule: []DNDSchedule{
				{Days: []int{0, 1, 2, 3, 4, 5, 6}, Start: "22:00", End: "07:00"},
			},
			EmergencyOverride: true,
		},
		Messages: Messages{
			Templates: map[alerts.Type]string{},
		},
	}
}
