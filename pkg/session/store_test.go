package session_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/cardforge/pkg/records"
	"github.com/dmitrymomot/cardforge/pkg/session"
)

func TestStoreCreateGet(t *testing.T) {
	t.Parallel()

	store := session.NewStore(session.WithSweepInterval(0))
	defer store.Close()

	ctx := context.Background()

	sess, err := store.Create(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, sess.ID)
	assert.False(t, sess.HasModel())
	assert.False(t, sess.HasArchive())

	got, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, got.ID)

	_, err = store.Get(ctx, "missing")
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestStoreUpdate(t *testing.T) {
	t.Parallel()

	store := session.NewStore(session.WithSweepInterval(0))
	defer store.Close()

	ctx := context.Background()

	sess, err := store.Create(ctx)
	require.NoError(t, err)

	updated, err := store.Update(ctx, sess.ID, func(s *session.Session) error {
		s.ModelKey = "sessions/" + s.ID + "/model.png"
		s.ModelName = "invite.png"
		s.Records = []records.Record{{Name: "John Doe", Table: "1"}}
		return nil
	})
	require.NoError(t, err)
	assert.True(t, updated.HasModel())
	assert.Len(t, updated.Records, 1)

	// Update errors do not surface a session.
	wantErr := errors.New("boom")
	_, err = store.Update(ctx, sess.ID, func(*session.Session) error {
		return wantErr
	})
	assert.ErrorIs(t, err, wantErr)

	// Get returns a copy: mutating it must not leak into the store.
	got, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)
	got.ModelKey = "tampered"

	again, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "sessions/"+sess.ID+"/model.png", again.ModelKey)
}

func TestStoreTTLExpiry(t *testing.T) {
	t.Parallel()

	store := session.NewStore(
		session.WithTTL(30*time.Millisecond),
		session.WithSweepInterval(0),
	)
	defer store.Close()

	ctx := context.Background()

	sess, err := store.Create(ctx)
	require.NoError(t, err)

	time.Sleep(60 * time.Millisecond)

	_, err = store.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, session.ErrNotFound)

	_, err = store.Update(ctx, sess.ID, func(*session.Session) error { return nil })
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestStoreUpdateExtendsDeadline(t *testing.T) {
	t.Parallel()

	store := session.NewStore(
		session.WithTTL(80*time.Millisecond),
		session.WithSweepInterval(0),
	)
	defer store.Close()

	ctx := context.Background()

	sess, err := store.Create(ctx)
	require.NoError(t, err)

	// Keep touching the session past its original deadline.
	for range 3 {
		time.Sleep(50 * time.Millisecond)
		_, err = store.Update(ctx, sess.ID, func(*session.Session) error { return nil })
		require.NoError(t, err)
	}

	_, err = store.Get(ctx, sess.ID)
	assert.NoError(t, err)
}

func TestStoreEvictionCallback(t *testing.T) {
	t.Parallel()

	store := session.NewStore(session.WithSweepInterval(0))
	defer store.Close()

	var (
		mu      sync.Mutex
		evicted []string
	)
	done := make(chan struct{}, 8)
	store.OnEvict(func(s *session.Session) {
		mu.Lock()
		evicted = append(evicted, s.ID)
		mu.Unlock()
		done <- struct{}{}
	})

	ctx := context.Background()

	sess, err := store.Create(ctx)
	require.NoError(t, err)
	require.NoError(t, store.Delete(ctx, sess.ID))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("eviction callback not fired")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{sess.ID}, evicted)
}

func TestStoreSweepExpired(t *testing.T) {
	t.Parallel()

	store := session.NewStore(
		session.WithTTL(10*time.Millisecond),
		session.WithSweepInterval(0),
	)
	defer store.Close()

	ctx := context.Background()
	for range 3 {
		_, err := store.Create(ctx)
		require.NoError(t, err)
	}

	time.Sleep(30 * time.Millisecond)

	assert.Equal(t, 3, store.SweepExpired())
	assert.Equal(t, 0, store.Len())
}

func TestStoreMaxSessions(t *testing.T) {
	t.Parallel()

	store := session.NewStore(
		session.WithMaxSessions(2),
		session.WithSweepInterval(0),
	)
	defer store.Close()

	ctx := context.Background()

	first, err := store.Create(ctx)
	require.NoError(t, err)
	_, err = store.Create(ctx)
	require.NoError(t, err)

	// Third create evicts the session closest to expiry (the first).
	_, err = store.Create(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, store.Len())
	_, err = store.Get(ctx, first.ID)
	assert.ErrorIs(t, err, session.ErrNotFound)
}

func TestStoreClose(t *testing.T) {
	t.Parallel()

	store := session.NewStore(session.WithSweepInterval(0))

	ctx := context.Background()
	_, err := store.Create(ctx)
	require.NoError(t, err)

	require.NoError(t, store.Close())
	require.NoError(t, store.Close(), "close is idempotent")

	_, err = store.Create(ctx)
	assert.ErrorIs(t, err, session.ErrClosed)
}
