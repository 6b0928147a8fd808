package storage_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/cardforge/pkg/storage"
)

func TestLocalPutGetDelete(t *testing.T) {
	t.Parallel()

	store, err := storage.NewLocal(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	content := []byte("plain text guest list\n")

	blob, err := store.Put(ctx, "sessions/abc/list.txt", bytes.NewReader(content), int64(len(content)))
	require.NoError(t, err)
	assert.Equal(t, "sessions/abc/list.txt", blob.Key)
	assert.Equal(t, int64(len(content)), blob.Size)
	assert.Equal(t, "text/plain", blob.ContentType)

	rc, err := store.Get(ctx, "sessions/abc/list.txt")
	require.NoError(t, err)
	defer rc.Close()

	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, content, got)

	require.NoError(t, store.Delete(ctx, "sessions/abc/list.txt"))
	_, err = store.Get(ctx, "sessions/abc/list.txt")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	// Deleting again is not an error.
	assert.NoError(t, store.Delete(ctx, "sessions/abc/list.txt"))
}

func TestLocalPutOverwrites(t *testing.T) {
	t.Parallel()

	store, err := storage.NewLocal(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()

	_, err = store.Put(ctx, "k", strings.NewReader("first"), 5)
	require.NoError(t, err)
	_, err = store.Put(ctx, "k", strings.NewReader("second"), 6)
	require.NoError(t, err)

	rc, err := store.Get(ctx, "k")
	require.NoError(t, err)
	defer rc.Close()

	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "second", string(got))
}

func TestLocalDeletePrefix(t *testing.T) {
	t.Parallel()

	store, err := storage.NewLocal(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()

	_, err = store.Put(ctx, "sessions/abc/model.png", strings.NewReader("a"), 1)
	require.NoError(t, err)
	_, err = store.Put(ctx, "sessions/abc/batch.zip", strings.NewReader("b"), 1)
	require.NoError(t, err)
	_, err = store.Put(ctx, "sessions/other/model.png", strings.NewReader("c"), 1)
	require.NoError(t, err)

	require.NoError(t, store.DeletePrefix(ctx, "sessions/abc"))

	_, err = store.Get(ctx, "sessions/abc/model.png")
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = store.Get(ctx, "sessions/abc/batch.zip")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	// Other sessions untouched.
	rc, err := store.Get(ctx, "sessions/other/model.png")
	require.NoError(t, err)
	rc.Close()
}

func TestLocalHealthcheck(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store, err := storage.NewLocal(dir)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, store.Healthcheck(ctx))

	// A vanished base directory must flip readiness.
	require.NoError(t, os.RemoveAll(dir))
	assert.ErrorIs(t, store.Healthcheck(ctx), storage.ErrInvalidConfig)
}

func TestLocalRejectsEscapingKeys(t *testing.T) {
	t.Parallel()

	store, err := storage.NewLocal(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()

	for _, key := range []string{"", "..", "../outside", "a/../../outside", "a\\b"} {
		t.Run(key, func(t *testing.T) {
			_, err := store.Put(ctx, key, strings.NewReader("x"), 1)
			assert.ErrorIs(t, err, storage.ErrInvalidKey)
		})
	}
}
