package kvstore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/freshwatch/pkg/kvstore"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("get missing key", func(t *testing.T) {
		store := kvstore.NewMemoryStore()
		_, err := store.Get(ctx, "missing")
		assert.ErrorIs(t, err, kvstore.ErrKeyNotFound)
	})

	t.Run("set then get", func(t *testing.T) {
		store := kvstore.NewMemoryStore()
		require.NoError(t, store.Set(ctx, "k", []byte(`{"a":1}`)))

		got, err := store.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte(`{"a":1}`), got)
	})

	t.Run("set replaces previous value", func(t *testing.T) {
		store := kvstore.NewMemoryStore()
		require.NoError(t, store.Set(ctx, "k", []byte("one")))
		require.NoError(t, store.Set(ctx, "k", []byte("two")))

		got, err := store.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("two"), got)
	})

	t.Run("delete", func(t *testing.T) {
		store := kvstore.NewMemoryStore()
		require.NoError(t, store.Set(ctx, "k", []byte("v")))
		require.NoError(t, store.Delete(ctx, "k"))

		_, err := store.Get(ctx, "k")
		assert.ErrorIs(t, err, kvstore.ErrKeyNotFound)
	})

	t.Run("delete missing key is not an error", func(t *testing.T) {
		store := kvstore.NewMemoryStore()
		assert.NoError(t, store.Delete(ctx, "missing"))
	})

	t.Run("returned slice is a copy", func(t *testing.T) {
		store := kvstore.NewMemoryStore()
		require.NoError(t, store.Set(ctx, "k", []byte("abc")))

		got, err := store.Get(ctx, "k")
		require.NoError(t, err)
		got[0] = 'X'

		again, err := store.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("abc"), again)
	})
}
