package tests

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/behave/pkg/ports"
)

// ScriptStoreContract is a reusable test suite that verifies if an adapter complies with ports.ScriptStore.
// The store must start empty.
func ScriptStoreContract(t *testing.T, store ports.ScriptStore) {
	t.Helper()
	ctx := context.Background()

	t.Run("Write and Read", func(t *testing.T) {
		content := []byte("/*\nBEHAVIOUR: Greeter\n*/\n")
		require.NoError(t, store.Write(ctx, "b_greeter.nss", content))

		got, err := store.Read(ctx, "b_greeter.nss")
		require.NoError(t, err)
		assert.Equal(t, content, got)
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, store.Write(ctx, "z_b_greeter.nss", []byte("old")))
		require.NoError(t, store.Write(ctx, "z_b_greeter.nss", []byte("new")))

		got, err := store.Read(ctx, "z_b_greeter.nss")
		require.NoError(t, err)
		assert.Equal(t, "new", string(got))
	})

	t.Run("Read Non-Existent", func(t *testing.T) {
		_, err := store.Read(ctx, "b_missing.nss")
		assert.ErrorIs(t, err, ports.ErrScriptNotFound)
	})

	t.Run("Returned bytes are not shared", func(t *testing.T) {
		content := []byte("abc")
		require.NoError(t, store.Write(ctx, "util_verbs.nss", content))
		content[0] = 'x'

		got, err := store.Read(ctx, "util_verbs.nss")
		require.NoError(t, err)
		assert.Equal(t, "abc", string(got))
	})

	t.Run("List", func(t *testing.T) {
		names, err := store.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"b_greeter.nss", "util_verbs.nss", "z_b_greeter.nss"}, names)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, "z_b_greeter.nss"))
		require.NoError(t, store.Delete(ctx, "z_b_greeter.nss"), "deleting twice is not an error")

		_, err := store.Read(ctx, "z_b_greeter.nss")
		assert.ErrorIs(t, err, ports.ErrScriptNotFound)

		names, err := store.List(ctx)
		require.NoError(t, err)
		assert.NotContains(t, names, "z_b_greeter.nss")
	})

	t.Run("Invalid Names", func(t *testing.T) {
		for _, name := range []string{"", "..", "../b_x.nss", "dir/b_x.nss"} {
			err := store.Write(ctx, name, []byte("x"))
			assert.ErrorIs(t, err, ports.ErrInvalidScriptName, "write %q", name)
			_, err = store.Read(ctx, name)
			assert.ErrorIs(t, err, ports.ErrInvalidScriptName, "read %q", name)
		}
	})
}

// LockerContract verifies mutual exclusion and release for a ports.Locker.
func LockerContract(t *testing.T, locker ports.Locker) {
	t.Helper()
	ctx := context.Background()

	t.Run("Lock and Unlock", func(t *testing.T) {
		unlock, err := locker.Lock(ctx, "b_greeter.nss", 5*time.Second)
		require.NoError(t, err)
		require.NotNil(t, unlock)
		require.NoError(t, unlock(ctx))

		unlock, err = locker.Lock(ctx, "b_greeter.nss", 5*time.Second)
		require.NoError(t, err, "lock must be acquirable again after unlock")
		require.NoError(t, unlock(ctx))
	})

	t.Run("Contention honours context", func(t *testing.T) {
		unlock, err := locker.Lock(ctx, "b_busy.nss", 5*time.Second)
		require.NoError(t, err)
		defer func() { _ = unlock(ctx) }()

		waitCtx, cancel := context.WithTimeout(ctx, 300*time.Millisecond)
		defer cancel()
		_, err = locker.Lock(waitCtx, "b_busy.nss", 5*time.Second)
		require.Error(t, err)
		assert.True(t, errors.Is(err, context.DeadlineExceeded))
	})

	t.Run("Independent keys", func(t *testing.T) {
		var wg sync.WaitGroup
		for _, key := range []string{"b_a.nss", "b_b.nss"} {
			wg.Add(1)
			go func(key string) {
				defer wg.Done()
				unlock, err := locker.Lock(ctx, key, 5*time.Second)
				if assert.NoError(t, err) {
					assert.NoError(t, unlock(ctx))
				}
			}(key)
		}
		wg.Wait()
	})
}
