package settings_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/freshwatch/pkg/alerts"
	"github.com/dmitrymomot/freshwatch/pkg/kvstore"
	"github.com/dmitrymomot/freshwatch/pkg/settings"
)

func TestDefault(t *testing.T) {
	cfg := settings.Default()

	assert.True(t, cfg.Enabled)
	for _, at := range alerts.AllTypes() {
		assert.True(t, cfg.EnabledTypes[at], string(at))
	}
	assert.Equal(t, 30, cfg.Timing.SnoozeMinutes)
	assert.True(t, cfg.Batching.Enabled)
	assert.False(t, cfg.DND.Enabled)
}

func TestStore_LoadMissingKeyKeepsDefaults(t *testing.T) {
	ctx := context.Background()
	store := settings.NewStore(kvstore.NewMemoryStore())

	require.NoError(t, store.Load(ctx))
	assert.Equal(t, settings.Default(), store.Current())
}

func TestStore_LoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := kvstore.NewMemoryStore()

	store := settings.NewStore(kv)
	store.Update(ctx, func(s *settings.Settings) {
		s.Enabled = false
		s.Timing.SnoozeMinutes = 45
	})

	reloaded := settings.NewStore(kv)
	require.NoError(t, reloaded.Load(ctx))
	assert.False(t, reloaded.Current().Enabled)
	assert.Equal(t, 45, reloaded.Current().Timing.SnoozeMinutes)
}

func TestStore_LoadGarbageKeepsDefaults(t *testing.T) {
	ctx := context.Background()
	kv := kvstore.NewMemoryStore()
	require.NoError(t, kv.Set(ctx, settings.StorageKey, []byte("not json at all")))

	store := settings.NewStore(kv)
	require.NoError(t, store.Load(ctx))
	assert.Equal(t, settings.Default(), store.Current())
}

func TestStore_LoadMalformedSectionKeepsItsDefault(t *testing.T) {
	ctx := context.Background()
	kv := kvstore.NewMemoryStore()

	// timing is corrupt, enabled is valid; only timing falls back.
	doc := map[string]json.RawMessage{
		"enabled": json.RawMessage(`false`),
		"timing":  json.RawMessage(`"not an object"`),
	}
	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	require.NoError(t, kv.Set(ctx, settings.StorageKey, raw))

	store := settings.NewStore(kv)
	require.NoError(t, store.Load(ctx))

	got := store.Current()
	assert.False(t, got.Enabled)
	assert.Equal(t, settings.Default().Timing, got.Timing)
}

func TestStore_SnapshotsDoNotAliasMaps(t *testing.T) {
	ctx := context.Background()
	store := settings.NewStore(kvstore.NewMemoryStore())

	before := store.Current()
	store.Update(ctx, func(s *settings.Settings) {
		s.EnabledTypes[alerts.TypeExpired] = false
		s.Visual.Colors[alerts.TypeExpired] = "#000000"
		s.Messages.Templates[alerts.TypeExpired] = "{productName} is gone"
	})

	assert.True(t, before.EnabledTypes[alerts.TypeExpired], "earlier snapshot must not see later updates")
	assert.NotEqual(t, "#000000", before.Visual.Colors[alerts.TypeExpired])
	assert.Empty(t, before.Messages.Templates[alerts.TypeExpired])

	after := store.Current()
	after.EnabledTypes[alerts.TypeExpired] = true
	after.Visual.Icons[alerts.TypeExpired] = "ic_other"
	assert.False(t, store.Current().EnabledTypes[alerts.TypeExpired], "mutating a snapshot must not touch live state")
	assert.Equal(t, "ic_expired", store.Current().Visual.Icons[alerts.TypeExpired])
}

func TestStore_UpdateSurvivesPersistFailure(t *testing.T) {
	ctx := context.Background()
	store := settings.NewStore(failingStore{})

	got := store.Update(ctx, func(s *settings.Settings) {
		s.Timing.MaxPerDay = 3
	})

	assert.Equal(t, 3, got.Timing.MaxPerDay)
	assert.Equal(t, 3, store.Current().Timing.MaxPerDay, "in-memory state is authoritative")
}

type failingStore struct{}

func (failingStore) Get(ctx context.Context, key string) ([]byte, error) {
	return nil, kvstore.ErrKeyNotFound
}

func (failingStore) Set(ctx context.Context, key string, value []byte) error {
	return assert.AnError
}

func (failingStore) Delete(ctx context.Context, key string) error {
	return nil
}
