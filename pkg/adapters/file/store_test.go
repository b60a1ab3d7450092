package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/behave/pkg/adapters/file"
	"github.com/aretw0/behave/pkg/ports"
	"github.com/aretw0/behave/pkg/ports/tests"
)

func TestFileStore_Contract(t *testing.T) {
	tests.ScriptStoreContract(t, file.New(t.TempDir()))
}

func TestFileStore_ListSkipsOtherFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b_greeter.nss"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".tmp-b_x.nss-123"), []byte("x"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.nss"), 0755))

	names, err := file.New(dir).List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"b_greeter.nss"}, names)
}

func TestFileStore_MissingDirectory(t *testing.T) {
	store := file.New(filepath.Join(t.TempDir(), "absent"))
	ctx := context.Background()

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, names)

	_, err = store.Read(ctx, "b_x.nss")
	assert.ErrorIs(t, err, ports.ErrScriptNotFound)

	require.NoError(t, store.Write(ctx, "b_x.nss", []byte("created")))
	got, err := store.Read(ctx, "b_x.nss")
	require.NoError(t, err)
	assert.Equal(t, "created", string(got))
}

func TestFileStore_Watch(t *testing.T) {
	dir := t.TempDir()
	store := file.New(dir)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := store.Watch(ctx)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "b_greeter.nss"), []byte("x"), 0644))

	deadline := time.After(3 * time.Second)
	for {
		select {
		case name := <-events:
			if name == "b_greeter.nss" {
				return
			}
		case <-deadline:
			t.Fatal("expected a change notification for b_greeter.nss")
		}
	}
}
