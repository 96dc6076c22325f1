package lifecycle

import (
	"context"
	"time"

	"github.com/dmitrymomot/freshwatch/pkg/compose"
)

// Notifier is the platform notification primitive: the OS-level facility
// that actually shows notifications. Implementations are expected to be
// fire-and-forget; the tracker logs their errors but never propagates them.
type Notifier interface {
	// ScheduleAt asks the platform to present payload at the given time.
	ScheduleAt(ctx context.Context, payload compose.Payload, at time.Time) error

	// Cancel removes a pending platform notification by id.
	Cancel(ctx context.Context, id string) error

	// CancelAll removes every pending platform notification.
	CancelAll(ctx context.Context) error

	// CreateChannel registers a delivery channel with the platform.
	CreateChannel(ctx context.Context, spec compose.ChannelSpec) error
}

// NoopNotifier is a Notifier that does nothing. Useful for tests and for
// hosts that only want lifecycle bookkeeping.
type NoopNotifier struct{}

func (NoopNotifier) ScheduleAt(ctx context.Context, payload compose.Payload, at time.Time) error {
	return nil
}

func (NoopNotifier) Cancel(ctx context.Context, id string) error { return nil }

func (NoopNotifier) CancelAll(ctx context.Context) error { return nil }

func (NoopNotifier) CreateChannel(ctx context.Context, spec compose.ChannelSpec) error { return nil }

// Navigator receives the fire-and-forget navigation and consumption side
// effects triggered by notification interactions.
type Navigator interface {
	// OpenProductDetail routes the user to the product's detail screen.
	OpenProductDetail(productID string)

	// OpenOverview routes the user to the expiration overview screen.
	OpenOverview()

	// MarkConsumed forwards a consumption update for the product.
	MarkConsumed(productID string)
}

// NoopNavigator is a Navigator that does nothing.
type NoopNavigator struct{}

func (NoopNavigator) OpenProductDetail(productID string) {}

func (NoopNavigator) OpenOverview() {}

func (NoopNavigator) MarkConsumed(productID string) {}
