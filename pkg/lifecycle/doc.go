// Package lifecycle tracks scheduled notifications from creation through
// delivery and interaction.
//
// The Tracker owns the record set: one Record per scheduled notification,
// moving Scheduled → Delivered → {Opened, Dismissed, Snoozed}, with
// cancellation as an orthogonal flag. Platform callbacks (delivered,
// opened, action) and explicit calls (cancel, snooze) are the only
// mutators. Snoozing cancels the original record on the platform and in
// the store, then schedules a fresh-id clone at the snooze deadline.
//
// Collaborators are injected: a Notifier (the platform delivery
// primitive), a Navigator (fire-and-forget routing and consumption side
// effects), a kvstore for persistence, and a clock for timestamps.
// Operating on an unknown notification id is always a no-op; platform and
// persistence failures are logged and never propagate.
package lifecycle
