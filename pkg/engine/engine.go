package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/freshwatch/pkg/alerts"
	"github.com/dmitrymomot/freshwatch/pkg/batch"
	"github.com/dmitrymomot/freshwatch/pkg/clock"
	"github.com/dmitrymomot/freshwatch/pkg/compose"
	"github.com/dmitrymomot/freshwatch/pkg/kvstore"
	"github.com/dmitrymomot/freshwatch/pkg/lifecycle"
	"github.com/dmitrymomot/freshwatch/pkg/logger"
	"github.com/dmitrymomot/freshwatch/pkg/settings"
	"github.com/dmitrymomot/freshwatch/pkg/stats"
	"github.com/dmitrymomot/freshwatch/pkg/suppression"
)

// Engine is the notification scheduling and batching engine. It decides
// whether, when and how each expiration alert becomes a platform
// notification: suppression first, then optional batching, then
// composition and scheduling, with lifecycle tracking of the result.
//
// Construct with New, call Initialize once, then feed alerts through
// ScheduleNotification and route platform callbacks to HandleDelivered and
// HandleInteraction.
type Engine struct {
	store      kvstore.Store
	notifier   lifecycle.Notifier
	settings   *settings.Store
	tracker    *lifecycle.Tracker
	aggregator *batch.Aggregator
	clk        clock.Clock
	logger     *slog.Logger
	newID      func() string

	mu          sync.Mutex
	initialized bool
	deferred    []alerts.Alert
	deferTimer  clock.Timer
}

// Option configures an Engine.
type Option func(*options)

type options struct {
	clk       clock.Clock
	logger    *slog.Logger
	navigator lifecycle.Navigator
	newID     func() string
}

// WithClock substitutes the clock, letting tests drive batching and
// deferred-redelivery timers virtually.
func WithClock(c clock.Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clk = c
		}
	}
}

// WithLogger sets the logger for the engine and its components.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithNavigator sets the navigation/consumption collaborator invoked on
// notification interactions.
func WithNavigator(n lifecycle.Navigator) Option {
	return func(o *options) {
		if n != nil {
			o.navigator = n
		}
	}
}

// WithIDGenerator replaces the notification id generator, for
// deterministic tests.
func WithIDGenerator(fn func() string) Option {
	return func(o *options) {
		if fn != nil {
			o.newID = fn
		}
	}
}

// New creates an engine persisting to store and delivering through
// notifier. A nil notifier falls back to a no-op, which keeps lifecycle
// bookkeeping working without platform delivery.
func New(store kvstore.Store, notifier lifecycle.Notifier, opts ...Option) *Engine {
	if notifier == nil {
		notifier = lifecycle.NoopNotifier{}
	}

	o := &options{
		clk:       clock.New(),
		logger:    slog.Default(),
		navigator: lifecycle.NoopNavigator{},
		newID:     func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(o)
	}

	e := &Engine{
		store:    store,
		notifier: notifier,
		clk:      o.clk,
		logger:   o.logger,
		newID:    o.newID,
	}
	e.settings = settings.NewStore(store, settings.WithLogger(o.logger))
	e.tracker = lifecycle.NewTracker(store, notifier,
		lifecycle.WithLogger(o.logger),
		lifecycle.WithNavigator(o.navigator),
		lifecycle.WithClock(o.clk),
		lifecycle.WithIDGenerator(o.newID),
	)
	e.aggregator = batch.NewAggregator(o.clk, e.dispatch, batch.WithLogger(o.logger))
	return e
}

// Initialize prepares the engine: platform channels are created (failures
// logged, never fatal), settings and records are loaded, stale delivered
// records are cleaned up, and any deferred alerts are drained if quiet
// hours are over. Calling it again is a no-op.
func (e *Engine) Initialize(ctx context.Context) error {
	e.mu.Lock()
	if e.initialized {
		e.mu.Unlock()
		return nil
	}
	e.initialized = true
	e.mu.Unlock()

	for _, spec := range compose.Channels() {
		if err := e.notifier.CreateChannel(ctx, spec); err != nil {
			e.logger.LogAttrs(ctx, slog.LevelWarn, "failed to create notification channel, continuing without it",
				slog.String("channel_id", spec.ID),
				logger.Error(err),
			)
		}
	}

	_ = e.settings.Load(ctx)
	_ = e.tracker.Load(ctx)
	e.tracker.Cleanup(ctx)

	if !suppression.InQuietHours(e.clk.Now(), e.settings.Current().DND) {
		e.drainDeferred()
	}
	return nil
}

// ScheduleNotification runs one alert through the pipeline. The returned
// id identifies the scheduled notification when one was created
// immediately; it is empty when the alert was blocked, deferred to the end
// of quiet hours, or absorbed into a pending batch.
func (e *Engine) ScheduleNotification(ctx context.Context, alert alerts.Alert) (string, error) {
	cfg := e.settings.Current()
	now := e.clk.Now()

	switch suppression.Evaluate(alert, cfg, now) {
	case suppression.Block:
		e.logger.Debug("alert blocked by notification settings",
			logger.AlertID(alert.ID),
			slog.String("alert_type", string(alert.Type)),
		)
		return "", nil
	case suppression.QueueForLater:
		e.queueDeferred(alert, cfg, now)
		return "", nil
	}

	if cfg.Timing.MaxPerDay > 0 {
		dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		if e.tracker.CountCreatedSince(dayStart) >= cfg.Timing.MaxPerDay {
			e.logger.Debug("daily notification limit reached, dropping alert",
				logger.AlertID(alert.ID),
				slog.Int("max_per_day", cfg.Timing.MaxPerDay),
			)
			return "", nil
		}
	}

	if cfg.Batching.Enabled && alert.Type != alerts.TypeBatchExpiring {
		e.aggregator.Add(alert, cfg.Batching)
		return "", nil
	}

	return e.scheduleNow(ctx, alert), nil
}

// dispatch is the aggregator's flush sink.
func (e *Engine) dispatch(alert alerts.Alert) {
	e.scheduleNow(context.Background(), alert)
}

func (e *Engine) scheduleNow(ctx context.Context, alert alerts.Alert) string {
	cfg := e.settings.Current()
	now := e.clk.Now()

	id := e.newID()
	payload := compose.New(cfg).Compose(id, alert, now)
	record := e.tracker.Schedule(ctx, payload, now)

	e.logger.Info("scheduled notification",
		logger.NotificationID(record.ID),
		logger.AlertID(alert.ID),
		slog.String("channel_id", payload.ChannelID),
	)
	return record.ID
}

// queueDeferred parks an alert suppressed by quiet hours and arms a timer
// for the end of the active window so it is retried automatically.
func (e *Engine) queueDeferred(alert alerts.Alert, cfg settings.Settings, now time.Time) {
	e.mu.Lock()
	e.deferred = append(e.deferred, alert)
	if e.deferTimer == nil {
		if end, ok := suppression.QuietHoursEnd(now, cfg.DND); ok {
			e.deferTimer = e.clk.AfterFunc(end.Sub(now), e.drainDeferred)
		}
	}
	count := len(e.deferred)
	e.mu.Unlock()

	e.logger.Debug("alert deferred until quiet hours end",
		logger.AlertID(alert.ID),
		slog.Int("deferred_count", count),
	)
}

// drainDeferred re-runs the pipeline for every deferred alert. Alerts that
// still cannot be delivered simply re-enter the deferred queue.
func (e *Engine) drainDeferred() {
	e.mu.Lock()
	pending := e.deferred
	e.deferred = nil
	if e.deferTimer != nil {
		e.deferTimer.Stop()
		e.deferTimer = nil
	}
	e.mu.Unlock()

	for _, alert := range pending {
		if _, err := e.ScheduleNotification(context.Background(), alert); err != nil {
			e.logger.Warn("failed to redeliver deferred alert",
				logger.AlertID(alert.ID),
				logger.Error(err),
			)
		}
	}
}

// HandleDelivered is the inbound platform delivery callback.
func (e *Engine) HandleDelivered(ctx context.Context, id string) {
	e.tracker.OnDelivered(ctx, id)
}

// HandleInteraction is the inbound platform interaction callback. An empty
// action means the notification was tapped open.
func (e *Engine) HandleInteraction(ctx context.Context, id, action string) {
	if action == "" {
		e.tracker.OnOpened(ctx, id)
		return
	}
	e.tracker.OnAction(ctx, id, action, e.snoozeDuration())
}

// HandleDismissed is the inbound platform dismissal callback.
func (e *Engine) HandleDismissed(ctx context.Context, id string) {
	e.tracker.OnDismissed(ctx, id)
}

// SnoozeNotification defers the notification by the configured snooze
// interval, producing a rescheduled clone. It reports whether the id was
// known.
func (e *Engine) SnoozeNotification(ctx context.Context, id string) bool {
	return e.tracker.Snooze(ctx, id, e.snoozeDuration()) != nil
}

func (e *Engine) snoozeDuration() time.Duration {
	return time.Duration(e.settings.Current().Timing.SnoozeMinutes) * time.Minute
}

// CancelNotification cancels one scheduled notification. It reports
// whether the id was known.
func (e *Engine) CancelNotification(ctx context.Context, id string) bool {
	return e.tracker.Cancel(ctx, id)
}

// CancelAllNotifications cancels everything pending on the platform and
// marks every record cancelled.
func (e *Engine) CancelAllNotifications(ctx context.Context) {
	e.tracker.CancelAll(ctx)
}

// UpdateSettings applies fn to the current settings, making the result
// active immediately and persisting it best-effort.
func (e *Engine) UpdateSettings(ctx context.Context, fn func(*settings.Settings)) settings.Settings {
	return e.settings.Update(ctx, fn)
}

// Settings returns a snapshot of the active settings.
func (e *Engine) Settings() settings.Settings {
	return e.settings.Current()
}

// ScheduledNotifications returns non-cancelled records sorted by scheduled
// time ascending.
func (e *Engine) ScheduledNotifications() []lifecycle.Record {
	return e.tracker.Active()
}

// Statistics computes engagement statistics over the full record set.
func (e *Engine) Statistics() stats.Statistics {
	return stats.Compute(e.tracker.All())
}

// FlushBatch forces a flush of any pending batch, regardless of timer and
// size state. Hosts call it when going to background so queued alerts are
// not lost with the process.
func (e *Engine) FlushBatch() {
	e.aggregator.Flush()
}

// Cleanup prunes delivered records older than the retention window and
// reports how many were removed.
func (e *Engine) Cleanup(ctx context.Context) int {
	return e.tracker.Cleanup(ctx)
}
