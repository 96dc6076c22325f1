// Package clock provides a small time abstraction: a Clock interface with
// Now and cancellable one-shot AfterFunc timers, a real implementation
// backed by the standard library, and a Mock whose time is advanced
// explicitly by tests.
//
// Components that own timers accept a Clock at construction so their timing
// behavior is deterministic under test:
//
//	mock := clock.NewMock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
//	agg := batch.NewAggregator(mock, sink)
//	// ... enqueue alerts ...
//	mock.Advance(5 * time.Minute) // fires the flush timer synchronously
package clock
