// Package batch aggregates bursts of expiration alerts into single
// composite notifications.
//
// An Aggregator owns an in-memory queue and at most one armed one-shot
// timer. Alerts accumulate until either the batch window elapses or the
// queue reaches the configured size threshold, at which point the queue is
// drained atomically: a lone alert is forwarded unchanged, two or more are
// combined into a composite alert of type batch_expiring carrying its own
// title and grouped message summary.
//
// The Aggregator takes its timers from an injected clock.Clock, so tests
// drive the batch window with a virtual clock instead of sleeping.
package batch
