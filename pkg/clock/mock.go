package clock

import (
	"sort"
	"sync"
	"time"
)

// Mock is a virtual Clock for tests. Time only moves when Advance or Set is
// called; due timers fire synchronously on the advancing goroutine, in
// deadline order.
type Mock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*mockTimer
	nextID int
}

// NewMock creates a virtual clock frozen at start.
func NewMock(start time.Time) *Mock {
	return &Mock{now: start}
}

func (m *Mock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Mock) AfterFunc(d time.Duration, fn func()) Timer {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	t := &mockTimer{
		clock:    m,
		id:       m.nextID,
		deadline: m.now.Add(d),
		fn:       fn,
	}
	m.timers = append(m.timers, t)
	return t
}

// Advance moves the clock forward by d, firing every timer whose deadline
// falls within the advanced window.
func (m *Mock) Advance(d time.Duration) {
	m.Set(m.Now().Add(d))
}

// Set jumps the clock to t, firing due timers along the way. Moving
// backwards is ignored.
func (m *Mock) Set(t time.Time) {
	for {
		m.mu.Lock()
		if !t.After(m.now) && len(m.due(t)) == 0 {
			m.mu.Unlock()
			return
		}

		due := m.due(t)
		if len(due) == 0 {
			m.now = t
			m.mu.Unlock()
			return
		}

		// Fire the earliest timer first; set the clock to its deadline so
		// the callback observes a consistent Now.
		sort.Slice(due, func(i, j int) bool {
			if due[i].deadline.Equal(due[j].deadline) {
				return due[i].id < due[j].id
			}
			return due[i].deadline.Before(due[j].deadline)
		})
		next := due[0]
		if next.deadline.After(m.now) {
			m.now = next.deadline
		}
		m.remove(next)
		m.mu.Unlock()

		next.fn()
	}
}

// PendingTimers reports how many timers are armed.
func (m *Mock) PendingTimers() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.timers)
}

// due must be called with the mutex held.
func (m *Mock) due(until time.Time) []*mockTimer {
	var out []*mockTimer
	for _, t := range m.timers {
		if !t.deadline.After(until) {
			out = append(out, t)
		}
	}
	return out
}

// remove must be called with the mutex held.
func (m *Mock) remove(target *mockTimer) {
	for i, t := range m.timers {
		if t == target {
			m.timers = append(m.timers[:i], m.timers[i+1:]...)
			return
		}
	}
}

type mockTimer struct {
	clock    *Mock
	id       int
	deadline time.Time
	fn       func()
}

func (t *mockTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()

	for i, pending := range t.clock.timers {
		if pending == t {
			t.clock.timers = append(t.clock.timers[:i], t.clock.timers[i+1:]...)
			return true
		}
	}
	return false
}
