package clock_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/freshwatch/pkg/clock"
)

func TestMock_AdvanceFiresDueTimers(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	mock := clock.NewMock(start)

	fired := 0
	mock.AfterFunc(5*time.Minute, func() { fired++ })

	mock.Advance(4 * time.Minute)
	assert.Zero(t, fired)

	mock.Advance(time.Minute)
	assert.Equal(t, 1, fired)
	assert.Equal(t, start.Add(5*time.Minute), mock.Now())
	assert.Zero(t, mock.PendingTimers())
}

func TestMock_TimersFireInDeadlineOrder(t *testing.T) {
	mock := clock.NewMock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	var order []string
	mock.AfterFunc(10*time.Minute, func() { order = append(order, "late") })
	mock.AfterFunc(2*time.Minute, func() { order = append(order, "early") })

	mock.Advance(15 * time.Minute)
	assert.Equal(t, []string{"early", "late"}, order)
}

func TestMock_CallbackObservesDeadlineAsNow(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	mock := clock.NewMock(start)

	var seen time.Time
	mock.AfterFunc(3*time.Minute, func() { seen = mock.Now() })

	mock.Advance(time.Hour)
	assert.Equal(t, start.Add(3*time.Minute), seen)
}

func TestMock_StopPreventsFiring(t *testing.T) {
	mock := clock.NewMock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	fired := false
	timer := mock.AfterFunc(time.Minute, func() { fired = true })

	assert.True(t, timer.Stop())
	mock.Advance(time.Hour)
	assert.False(t, fired)
	assert.False(t, timer.Stop(), "second stop reports already stopped")
}

func TestMock_TimerArmedInsideCallback(t *testing.T) {
	mock := clock.NewMock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	fired := 0
	mock.AfterFunc(time.Minute, func() {
		fired++
		mock.AfterFunc(time.Minute, func() { fired++ })
	})

	mock.Advance(5 * time.Minute)
	assert.Equal(t, 2, fired, "chained timer within the window also fires")
}
