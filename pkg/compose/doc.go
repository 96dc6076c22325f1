// Package compose turns alerts into platform-agnostic notification
// payloads: a title/message pair, a delivery channel, and visual/sound
// attributes.
//
// Text comes from user templates when configured (with {placeholder}
// substitution from the alert's product) and deterministic per-type
// fallback copy otherwise. Composite batch alerts carry their own copy and
// bypass templating.
//
// The alert-type to channel mapping is a fixed table; severity never
// overrides it.
package compose
