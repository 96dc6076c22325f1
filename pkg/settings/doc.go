// Package settings defines the typed notification configuration and its
// store: enablement, timing, sound and visual preferences, batching
// parameters, quiet-hours schedule, and message templates.
//
// The configuration is one JSON document under a fixed kvstore key. The
// Store hydrates it at startup and persists it after every Update; the
// in-memory copy is authoritative for the session, so a failing backing
// store degrades to unsaved preferences rather than broken behavior.
// Loading is deliberately forgiving: each malformed section of a persisted
// document is dropped in favor of its default instead of failing the load.
package settings
