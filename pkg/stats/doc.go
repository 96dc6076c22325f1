// Package stats derives engagement statistics from the lifecycle record
// set: delivery and interaction totals, open/dismiss rates, mean response
// time, per-type breakdown, the busiest delivery hour, and a combined
// effectiveness score used to tune future notification behavior.
//
// Compute is a pure fold over a record snapshot; it never touches storage
// and is safe to call at any time.
package stats
