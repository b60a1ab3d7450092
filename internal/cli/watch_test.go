package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/behave"
	"github.com/aretw0/behave/pkg/adapters/memory"
	"github.com/aretw0/behave/pkg/compiler"
	"github.com/aretw0/behave/pkg/dsl"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func controlScript(t *testing.T, verbs ...string) string {
	t.Helper()
	builder := dsl.New("Greeter").Actor("oPC", "")
	for _, v := range verbs {
		builder.Verb(v).Terminal()
	}
	b, err := builder.Build()
	require.NoError(t, err)
	return compiler.GenerateControlCode(b)
}

func TestWatcher_RegeneratesStubOnChange(t *testing.T) {
	store := memory.NewStore(map[string]string{
		"b_greeter.nss": controlScript(t, "Wave"),
	})
	ws, err := behave.New("", behave.WithStore(store))
	require.NoError(t, err)

	out := &syncBuffer{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- RunWatch(ctx, WatchOptions{
			Workspace: ws,
			Source:    store,
			Out:       out,
			Debounce:  10 * time.Millisecond,
		})
	}()

	readStub := func() string {
		data, err := store.Read(context.Background(), "z_b_greeter.nss")
		if err != nil {
			return ""
		}
		return string(data)
	}

	require.Eventually(t, func() bool {
		return strings.Contains(readStub(), "Checkcues_Wave")
	}, time.Second, 10*time.Millisecond)

	require.NoError(t, store.Write(ctx, "b_greeter.nss", []byte(controlScript(t, "Wave", "Bow"))))
	require.Eventually(t, func() bool {
		return strings.Contains(readStub(), "Checkcues_Bow")
	}, time.Second, 10*time.Millisecond)

	require.NoError(t, store.Write(ctx, "b_greeter.nss", []byte("not a behaviour")))
	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "no comment block found")
	}, time.Second, 10*time.Millisecond)
	assert.Contains(t, readStub(), "Checkcues_Bow")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcher_ReloadKeepsLastGoodModel(t *testing.T) {
	store := memory.NewStore(map[string]string{
		"b_greeter.nss": controlScript(t, "Wave"),
	})
	ws, err := behave.New("", behave.WithStore(store))
	require.NoError(t, err)

	w := NewWatcher(WatchOptions{Workspace: ws, Source: store})
	ctx := context.Background()

	require.NotNil(t, w.Reload(ctx, "b_greeter.nss"))
	require.NoError(t, store.Write(ctx, "b_greeter.nss", []byte("/*\nBEHAVIOUR: Greeter\n")))
	assert.Nil(t, w.Reload(ctx, "b_greeter.nss"))

	b, ok := w.Model("b_greeter.nss")
	require.True(t, ok)
	assert.Equal(t, []string{"Wave"}, b.VerbNames())

	require.NoError(t, store.Delete(ctx, "b_greeter.nss"))
	assert.Nil(t, w.Reload(ctx, "b_greeter.nss"))
	_, ok = w.Model("b_greeter.nss")
	assert.False(t, ok)
}
