package clock

import "time"

// Clock abstracts wall-clock time and one-shot timers so that components
// owning timers (batch aggregation, deferred redelivery) can be driven by a
// virtual clock in tests instead of sleeping on real timers.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// AfterFunc schedules fn to run once after d and returns a handle that
	// can stop the pending call.
	AfterFunc(d time.Duration, fn func()) Timer
}

// Timer is a cancellable handle to a pending AfterFunc call.
type Timer interface {
	// Stop prevents the timer from firing. It reports whether the call was
	// stopped before it ran.
	Stop() bool
}

// New returns a Clock backed by the standard library.
func New() Clock {
	return realClock{}
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

func (realClock) AfterFunc(d time.Duration, fn func()) Timer {
	return realTimer{t: time.AfterFunc(d, fn)}
}

type realTimer struct {
	t *time.Timer
}

func (rt realTimer) Stop() bool {
	return rt.t.Stop()
}
