// Package engine wires the notification pipeline together and exposes the
// public API of the system: suppression evaluation, batch aggregation,
// payload composition, platform scheduling, lifecycle tracking, and
// engagement statistics.
//
// # Usage
//
//	store := kvstore.NewMemoryStore()
//	eng := engine.New(store, platformNotifier,
//	    engine.WithNavigator(appRouter),
//	)
//	if err := eng.Initialize(ctx); err != nil {
//	    // Initialize only fails on programmer error; runtime problems
//	    // (missing channels, corrupt persisted state) degrade and log.
//	}
//
//	// Alert source pushes alerts in:
//	id, _ := eng.ScheduleNotification(ctx, alert)
//
//	// Platform callbacks route back:
//	eng.HandleDelivered(ctx, id)
//	eng.HandleInteraction(ctx, id, "snooze")
//
// Alerts flow: suppression (Block drops, QueueForLater defers to the end
// of quiet hours) → daily rate limit → batch aggregation when enabled →
// composition → platform schedule → lifecycle record. Delivery and
// interaction callbacks mutate the record, and Statistics folds the record
// set into engagement metrics.
//
// Callers are expected to Initialize before scheduling; this precondition
// is documented rather than runtime-checked.
package engine
