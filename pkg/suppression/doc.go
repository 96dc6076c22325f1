// Package suppression decides whether an alert may be delivered right now.
//
// Evaluation is a pure function over the alert, the current settings
// snapshot, and a caller-supplied time, which keeps it trivially testable.
// The three outcomes are Allow (proceed), QueueForLater (quiet hours are
// active and the alert should be retried when the window ends), and Block
// (notifications are disabled for this type; drop the alert).
//
// Quiet-hours windows are minute granular and may cross midnight: an end
// time before the start time means the window wraps (22:00-07:00).
package suppression
