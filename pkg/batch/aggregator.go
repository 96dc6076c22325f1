package batch

import (
	"log/slog"
	"sync"
	"time"

	"github.com/dmitrymomot/freshwatch/pkg/alerts"
	"github.com/dmitrymomot/freshwatch/pkg/clock"
	"github.com/dmitrymomot/freshwatch/pkg/settings"
)

// Sink receives the outcome of a flush: either the single queued alert
// unchanged, or a synthesized composite representing the whole batch.
type Sink func(alerts.Alert)

// Aggregator collects alerts destined for batching and flushes them as one
// composite notification when either the batch window elapses or the queue
// reaches its size threshold. At most one flush timer is armed at a time,
// and a flush drains the queue atomically.
type Aggregator struct {
	clk    clock.Clock
	sink   Sink
	logger *slog.Logger

	mu      sync.Mutex
	queue   []alerts.Alert
	timer   clock.Timer
	lastCfg settings.Batching
}

// AggregatorOption configures an Aggregator.
type AggregatorOption func(*Aggregator)

// WithLogger sets the logger for the Aggregator.
func WithLogger(l *slog.Logger) AggregatorOption {
	return func(a *Aggregator) {
		if l != nil {
			a.logger = l
		}
	}
}

// NewAggregator creates an aggregator that forwards flushed alerts to sink.
func NewAggregator(clk clock.Clock, sink Sink, opts ...AggregatorOption) *Aggregator {
	a := &Aggregator{
		clk:    clk,
		sink:   sink,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Add appends alert to the queue under cfg. It arms the flush timer on the
// first queued alert and flushes immediately once the queue reaches
// cfg.MaxBatchSize.
func (a *Aggregator) Add(alert alerts.Alert, cfg settings.Batching) {
	a.mu.Lock()
	a.queue = append(a.queue, alert)
	a.lastCfg = cfg

	if a.timer == nil {
		timeout := time.Duration(cfg.TimeoutMinutes) * time.Minute
		a.timer = a.clk.AfterFunc(timeout, a.Flush)
	}

	if cfg.MaxBatchSize > 0 && len(a.queue) >= cfg.MaxBatchSize {
		batched, grouping := a.drainLocked(cfg)
		a.mu.Unlock()
		a.forward(batched, grouping)
		return
	}
	a.mu.Unlock()
}

// Flush drains the queue and forwards its contents: a lone alert passes
// through untouched, two or more are combined into a composite. Flushing
// an empty queue is a no-op.
func (a *Aggregator) Flush() {
	a.mu.Lock()
	batched, grouping := a.drainLocked(a.lastCfg)
	a.mu.Unlock()
	a.forward(batched, grouping)
}

// drainLocked swaps the queue for an empty one and stops any armed timer.
// Must be called with the mutex held.
func (a *Aggregator) drainLocked(cfg settings.Batching) ([]alerts.Alert, settings.Batching) {
	batched := a.queue
	a.queue = nil
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	return batched, cfg
}

func (a *Aggregator) forward(batched []alerts.Alert, cfg settings.Batching) {
	switch len(batched) {
	case 0:
		return
	case 1:
		a.sink(batched[0])
	default:
		composite := Combine(batched, cfg)
		a.logger.Debug("flushed alert batch",
			slog.Int("batch_size", len(batched)),
			slog.String("severity", composite.Severity.String()),
		)
		a.sink(composite)
	}
}

// Pending reports how many alerts are queued.
func (a *Aggregator) Pending() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.queue)
}

// HasTimer reports whether a flush timer is armed.
func (a *Aggregator) HasTimer() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.timer != nil
}

// Stop cancels any armed timer without flushing. Queued alerts stay queued.
func (a *Aggregator) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
}
