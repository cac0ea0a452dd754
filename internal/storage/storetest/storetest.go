// Package storetest holds the behaviour every storage.Store backend must share.
package storetest

import (
	"context"
	"testing"

	"github.com/Rrens/content-creator-bot/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run exercises a store against the storage.Store contract. The store must start empty.
func Run(t *testing.T, store storage.Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("get missing key", func(t *testing.T) {
		_, err := store.Get(ctx, "missing")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "chat:u1:a", `{"id":"chat:u1:a"}`))

		v, err := store.Get(ctx, "chat:u1:a")
		require.NoError(t, err)
		assert.Equal(t, `{"id":"chat:u1:a"}`, v)
	})

	t.Run("set overwrites", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "chat:u1:a", "second"))

		v, err := store.Get(ctx, "chat:u1:a")
		require.NoError(t, err)
		assert.Equal(t, "second", v)
	})

	t.Run("list by prefix", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "chat:u1:b", "b"))
		require.NoError(t, store.Set(ctx, "chat:u10:a", "other user"))
		require.NoError(t, store.Set(ctx, "chat:u2:a", "other user"))

		keys, err := store.List(ctx, "chat:u1:")
		require.NoError(t, err)
		assert.Equal(t, []string{"chat:u1:a", "chat:u1:b"}, keys)
	})

	t.Run("list treats wildcards literally", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "chat:a_b:1", "x"))
		require.NoError(t, store.Set(ctx, "chat:axb:1", "y"))
		require.NoError(t, store.Set(ctx, "chat:a%b:1", "z"))

		keys, err := store.List(ctx, "chat:a_b:")
		require.NoError(t, err)
		assert.Equal(t, []string{"chat:a_b:1"}, keys)

		keys, err = store.List(ctx, "chat:a%")
		require.NoError(t, err)
		assert.Equal(t, []string{"chat:a%b:1"}, keys)
	})

	t.Run("list empty prefix match", func(t *testing.T) {
		keys, err := store.List(ctx, "nothing-here:")
		require.NoError(t, err)
		assert.Empty(t, keys)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, "chat:u1:b"))

		_, err := store.Get(ctx, "chat:u1:b")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("delete missing key is not an error", func(t *testing.T) {
		assert.NoError(t, store.Delete(ctx, "never-written"))
	})

	t.Run("ping", func(t *testing.T) {
		assert.NoError(t, store.Ping(ctx))
	})
}
