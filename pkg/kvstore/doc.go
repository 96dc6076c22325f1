// Package kvstore provides the key-value persistence layer used by the
// notification engine for its two durable blobs: the settings document and
// the scheduled-notification record set.
//
// The Store interface deals in opaque byte slices (JSON by convention);
// serialization stays with the owning package. Three implementations ship:
//
//   - MemoryStore: mutex-guarded map, for development and tests
//   - RedisStore: go-redis backed, prefix-namespaced keys
//   - PostgresStore: pgx-backed single-table store, created on connect
//
// All connection constructors retry with a configurable interval so a slow
// backing store at startup does not abort the host application.
package kvstore
