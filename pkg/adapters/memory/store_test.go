package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/behave/pkg/adapters/memory"
	"github.com/aretw0/behave/pkg/ports/tests"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore(nil)
	tests.ScriptStoreContract(t, store)
}

func TestMemoryLocker_Contract(t *testing.T) {
	tests.LockerContract(t, memory.NewLocker())
}

func TestMemoryStore_Seed(t *testing.T) {
	store := memory.NewStore(map[string]string{"util_verbs.nss": "/* Speak verb"})
	got, err := store.Read(context.Background(), "util_verbs.nss")
	require.NoError(t, err)
	assert.Equal(t, "/* Speak verb", string(got))
}

func TestMemoryStore_Watch(t *testing.T) {
	store := memory.NewStore(nil)
	ctx, cancel := context.WithCancel(context.Background())

	events, err := store.Watch(ctx)
	require.NoError(t, err)

	require.NoError(t, store.Write(context.Background(), "b_greeter.nss", []byte("x")))

	select {
	case name := <-events:
		assert.Equal(t, "b_greeter.nss", name)
	case <-time.After(time.Second):
		t.Fatal("expected a change notification")
	}

	cancel()
	select {
	case _, ok := <-events:
		assert.False(t, ok, "channel should be closed after cancel")
	case <-time.After(time.Second):
		t.Fatal("expected channel to close")
	}
}
