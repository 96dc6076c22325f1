package lifecycle

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/freshwatch/pkg/clock"
	"github.com/dmitrymomot/freshwatch/pkg/compose"
	"github.com/dmitrymomot/freshwatch/pkg/kvstore"
	"github.com/dmitrymomot/freshwatch/pkg/logger"
)

// StorageKey is the fixed key the record set lives under.
const StorageKey = "notification_records"

// cleanupAge is how long delivered records are retained before Cleanup
// removes them.
const cleanupAge = 7 * 24 * time.Hour

// Tracker is the record store for scheduled notifications. It creates
// records at schedule time, mutates them in response to platform callbacks
// (delivered, opened, dismissed, action) and explicit calls (cancel,
// snooze), and prunes old delivered records.
//
// Records are persisted wholesale under one fixed kvstore key after every
// mutation; persistence failures are logged and the in-memory set stays
// authoritative for the session.
type Tracker struct {
	kv        kvstore.Store
	notifier  Notifier
	navigator Navigator
	clk       clock.Clock
	logger    *slog.Logger
	newID     func() string

	mu      sync.Mutex
	records map[string]*Record
}

// TrackerOption configures a Tracker.
type TrackerOption func(*Tracker)

// WithLogger sets the logger for the Tracker.
func WithLogger(l *slog.Logger) TrackerOption {
	return func(t *Tracker) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithNavigator sets the navigation collaborator.
func WithNavigator(n Navigator) TrackerOption {
	return func(t *Tracker) {
		if n != nil {
			t.navigator = n
		}
	}
}

// WithClock sets the clock used for timestamps.
func WithClock(c clock.Clock) TrackerOption {
	return func(t *Tracker) {
		if c != nil {
			t.clk = c
		}
	}
}

// WithIDGenerator replaces the record id generator, for deterministic tests.
func WithIDGenerator(fn func() string) TrackerOption {
	return func(t *Tracker) {
		if fn != nil {
			t.newID = fn
		}
	}
}

// NewTracker creates a tracker over kv and notifier.
func NewTracker(kv kvstore.Store, notifier Notifier, opts ...TrackerOption) *Tracker {
	if notifier == nil {
		notifier = NoopNotifier{}
	}
	t := &Tracker{
		kv:        kv,
		notifier:  notifier,
		navigator: NoopNavigator{},
		clk:       clock.New(),
		logger:    slog.Default(),
		newID:     func() string { return uuid.New().String() },
		records:   make(map[string]*Record),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Load hydrates the record set from the kvstore. A missing key or a
// malformed blob leaves the tracker empty; neither is fatal.
func (t *Tracker) Load(ctx context.Context) error {
	raw, err := t.kv.Get(ctx, StorageKey)
	if err != nil {
		if !errors.Is(err, kvstore.ErrKeyNotFound) {
			t.logger.LogAttrs(ctx, slog.LevelWarn, "failed to read persisted notification records",
				logger.Error(err),
			)
		}
		return nil
	}

	var loaded []Record
	if err := json.Unmarshal(raw, &loaded); err != nil {
		t.logger.LogAttrs(ctx, slog.LevelWarn, "persisted notification records are malformed, starting empty",
			logger.Error(err),
		)
		return nil
	}

	t.mu.Lock()
	t.records = make(map[string]*Record, len(loaded))
	for i := range loaded {
		r := loaded[i]
		t.records[r.ID] = &r
	}
	t.mu.Unlock()
	return nil
}

// Schedule creates a record for payload, asks the platform to schedule it,
// and persists. A platform scheduling failure is logged; the record is
// kept so the interaction callbacks still resolve.
func (t *Tracker) Schedule(ctx context.Context, payload compose.Payload, at time.Time) Record {
	now := t.clk.Now()
	record := Record{
		ID:          payload.ID,
		AlertID:     payload.Metadata.AlertID,
		Type:        payload.Metadata.Type,
		Title:       payload.Title,
		Message:     payload.Message,
		ScheduledAt: at,
		ProductID:   payload.Metadata.ProductID,
		CreatedAt:   now,
	}

	t.mu.Lock()
	t.records[record.ID] = &record
	t.mu.Unlock()

	if err := t.notifier.ScheduleAt(ctx, payload, at); err != nil {
		t.logger.LogAttrs(ctx, slog.LevelWarn, "platform refused to schedule notification",
			logger.NotificationID(record.ID),
			logger.Error(err),
		)
	}

	t.persist(ctx)
	return record.clone()
}

// OnDelivered marks the record delivered. Unknown ids are a no-op.
func (t *Tracker) OnDelivered(ctx context.Context, id string) {
	now := t.clk.Now()

	t.mu.Lock()
	record, ok := t.records[id]
	if ok {
		record.Delivered = true
		record.DeliveredAt = &now
		if record.Interaction == nil {
			record.Interaction = &Interaction{}
		}
	}
	t.mu.Unlock()

	if !ok {
		return
	}
	t.persist(ctx)
}

// OnOpened marks the record opened and routes the user to the product
// detail screen when the record references a product, the overview
// otherwise. Platform callbacks can arrive out of order; an open on a
// not-yet-delivered record implies delivery and marks it too. Unknown ids
// are a no-op.
func (t *Tracker) OnOpened(ctx context.Context, id string) {
	now := t.clk.Now()

	t.mu.Lock()
	record, ok := t.records[id]
	var productID string
	if ok {
		if !record.Delivered {
			record.Delivered = true
			record.DeliveredAt = &now
		}
		if record.Interaction == nil {
			record.Interaction = &Interaction{}
		}
		record.Interaction.Opened = true
		record.Interaction.OpenedAt = &now
		productID = record.ProductID
	}
	t.mu.Unlock()

	if !ok {
		return
	}

	if productID != "" {
		t.navigator.OpenProductDetail(productID)
	} else {
		t.navigator.OpenOverview()
	}
	t.persist(ctx)
}

// OnDismissed marks the record dismissed. Unknown ids are a no-op.
func (t *Tracker) OnDismissed(ctx context.Context, id string) {
	now := t.clk.Now()

	t.mu.Lock()
	record, ok := t.records[id]
	if ok {
		if record.Interaction == nil {
			record.Interaction = &Interaction{}
		}
		record.Interaction.Dismissed = true
		record.Interaction.DismissedAt = &now
	}
	t.mu.Unlock()

	if !ok {
		return
	}
	t.persist(ctx)
}

// OnAction records the interaction action and dispatches it: snooze runs
// the snooze flow, mark_consumed forwards the product to the consumption
// collaborator, view_product and anything unrecognized behave like an
// open. Unknown ids are a no-op.
func (t *Tracker) OnAction(ctx context.Context, id, action string, snoozeFor time.Duration) {
	t.mu.Lock()
	record, ok := t.records[id]
	var productID string
	if ok {
		if record.Interaction == nil {
			record.Interaction = &Interaction{}
		}
		record.Interaction.Action = action
		productID = record.ProductID
	}
	t.mu.Unlock()

	if !ok {
		return
	}

	switch action {
	case ActionSnooze:
		t.Snooze(ctx, id, snoozeFor)
	case ActionMarkConsumed:
		if productID != "" {
			t.navigator.MarkConsumed(productID)
			t.logger.Debug("product marked consumed from notification",
				logger.NotificationID(id),
				logger.ProductID(productID),
			)
		}
		t.persist(ctx)
	case ActionViewProduct:
		t.OnOpened(ctx, id)
	default:
		t.OnOpened(ctx, id)
	}
}

// Snooze defers the notification: the original record is marked snoozed
// and cancelled, its platform schedule is cancelled, and a clone with a
// fresh id and empty interaction is scheduled for now+d. It returns the
// new record, or nil when id is unknown.
//
// Cancelling the original is deliberate: leaving it live would make two
// active records reference the same alert.
func (t *Tracker) Snooze(ctx context.Context, id string, d time.Duration) *Record {
	now := t.clk.Now()
	until := now.Add(d)

	t.mu.Lock()
	record, ok := t.records[id]
	if !ok {
		t.mu.Unlock()
		return nil
	}

	if record.Interaction == nil {
		record.Interaction = &Interaction{}
	}
	record.Interaction.Snoozed = true
	record.Interaction.SnoozeUntil = &until
	record.Cancelled = true

	replacement := Record{
		ID:          t.newID(),
		AlertID:     record.AlertID,
		Type:        record.Type,
		Title:       record.Title,
		Message:     record.Message,
		ScheduledAt: until,
		ProductID:   record.ProductID,
		CreatedAt:   now,
	}
	t.records[replacement.ID] = &replacement

	payload := compose.Payload{
		ID:        replacement.ID,
		Title:     replacement.Title,
		Message:   replacement.Message,
		ChannelID: compose.ChannelFor(replacement.Type),
		Metadata: compose.Metadata{
			AlertID:     replacement.AlertID,
			ProductID:   replacement.ProductID,
			Type:        replacement.Type,
			ScheduledAt: until,
		},
	}
	t.mu.Unlock()

	if err := t.notifier.Cancel(ctx, id); err != nil {
		t.logger.LogAttrs(ctx, slog.LevelWarn, "platform failed to cancel snoozed notification",
			logger.NotificationID(id),
			logger.Error(err),
		)
	}
	if err := t.notifier.ScheduleAt(ctx, payload, until); err != nil {
		t.logger.LogAttrs(ctx, slog.LevelWarn, "platform refused to schedule snoozed notification",
			logger.NotificationID(replacement.ID),
			logger.Error(err),
		)
	}

	t.persist(ctx)
	out := replacement.clone()
	return &out
}

// Cancel cancels the platform schedule and marks the record cancelled.
// It reports whether a record with that id existed.
func (t *Tracker) Cancel(ctx context.Context, id string) bool {
	t.mu.Lock()
	record, ok := t.records[id]
	if ok {
		record.Cancelled = true
	}
	t.mu.Unlock()

	if !ok {
		return false
	}

	if err := t.notifier.Cancel(ctx, id); err != nil {
		t.logger.LogAttrs(ctx, slog.LevelWarn, "platform failed to cancel notification",
			logger.NotificationID(id),
			logger.Error(err),
		)
	}
	t.persist(ctx)
	return true
}

// CancelAll cancels every pending platform notification and marks all
// records cancelled.
func (t *Tracker) CancelAll(ctx context.Context) {
	t.mu.Lock()
	for _, record := range t.records {
		record.Cancelled = true
	}
	t.mu.Unlock()

	if err := t.notifier.CancelAll(ctx); err != nil {
		t.logger.LogAttrs(ctx, slog.LevelWarn, "platform failed to cancel all notifications",
			logger.Error(err),
		)
	}
	t.persist(ctx)
}

// Cleanup removes delivered records older than seven days. Undelivered
// records, cancelled or not, are retained. Running it on an empty or
// already-clean set is a no-op, so repeated runs are safe.
func (t *Tracker) Cleanup(ctx context.Context) int {
	cutoff := t.clk.Now().Add(-cleanupAge)

	t.mu.Lock()
	removed := 0
	for id, record := range t.records {
		if record.Delivered && record.CreatedAt.Before(cutoff) {
			delete(t.records, id)
			removed++
		}
	}
	t.mu.Unlock()

	if removed > 0 {
		t.logger.Debug("cleaned up delivered notification records", slog.Int("removed", removed))
		t.persist(ctx)
	}
	return removed
}

// Get returns a copy of the record with the given id.
func (t *Tracker) Get(id string) (Record, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	record, ok := t.records[id]
	if !ok {
		return Record{}, false
	}
	return record.clone(), true
}

// Active returns non-cancelled records sorted by scheduled time ascending.
func (t *Tracker) Active() []Record {
	t.mu.Lock()
	out := make([]Record, 0, len(t.records))
	for _, record := range t.records {
		if !record.Cancelled {
			out = append(out, record.clone())
		}
	}
	t.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].ScheduledAt.Before(out[j].ScheduledAt)
	})
	return out
}

// All returns a copy of every record, in unspecified order.
func (t *Tracker) All() []Record {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]Record, 0, len(t.records))
	for _, record := range t.records {
		out = append(out, record.clone())
	}
	return out
}

// CountCreatedSince reports how many records were created at or after the
// given time, regardless of state. Used for daily rate limiting.
func (t *Tracker) CountCreatedSince(since time.Time) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	count := 0
	for _, record := range t.records {
		if !record.CreatedAt.Before(since) {
			count++
		}
	}
	return count
}

func (t *Tracker) persist(ctx context.Context) {
	t.mu.Lock()
	out := make([]Record, 0, len(t.records))
	for _, record := range t.records {
		out = append(out, record.clone())
	}
	t.mu.Unlock()

	raw, err := json.Marshal(out)
	if err != nil {
		t.logger.LogAttrs(ctx, slog.LevelError, "failed to encode notification records",
			logger.Error(err),
		)
		return
	}
	if err := t.kv.Set(ctx, StorageKey, raw); err != nil {
		t.logger.LogAttrs(ctx, slog.LevelWarn, "failed to persist notification records, in-memory state remains active",
			logger.Error(err),
		)
	}
}
