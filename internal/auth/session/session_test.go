package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/festy23/as_manager/internal/apperror"
)

func TestNewToken(t *testing.T) {
	a, err := NewToken()
	require.NoError(t, err)
	b, err := NewToken()
	require.NoError(t, err)

	assert.Len(t, a, 43)
	assert.NotEqual(t, a, b)
	assert.NotContains(t, a, "+")
	assert.NotContains(t, a, "/")
}

func TestNew(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	s, err := New(7, "Ace", time.Hour, now)
	require.NoError(t, err)

	assert.Equal(t, int64(7), s.PlayerID)
	assert.Equal(t, "Ace", s.TagName)
	assert.Equal(t, now.Add(time.Hour), s.ExpiresAt)
	assert.False(t, s.Expired(now.Add(59*time.Minute)))
	assert.True(t, s.Expired(now.Add(time.Hour)))
}

func TestContext(t *testing.T) {
	_, err := FromContext(context.Background())
	assert.ErrorIs(t, err, apperror.ErrMissingContext)

	s := &Session{Token: "t", PlayerID: 1}
	got, err := FromContext(WithSession(context.Background(), s))
	require.NoError(t, err)
	assert.Same(t, s, got)

	_, err = FromContext(WithSession(context.Background(), nil))
	assert.ErrorIs(t, err, apperror.ErrMissingContext)
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	store := NewMemoryStore()
	store.now = func() time.Time { return now }

	s, err := New(1, "Ace", time.Hour, now)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, s))
	require.NoError(t, store.Ping(ctx))

	got, err := store.Get(ctx, s.Token)
	require.NoError(t, err)
	assert.Equal(t, s.PlayerID, got.PlayerID)

	_, err = store.Get(ctx, "unknown")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)

	t.Run("expired sessions are evicted", func(t *testing.T) {
		now = now.Add(2 * time.Hour)
		_, err := store.Get(ctx, s.Token)
		assert.ErrorIs(t, err, ErrSessionNotFound)
		assert.Equal(t, 0, store.Len())
	})

	t.Run("delete", func(t *testing.T) {
		s2, err := New(2, "Bee", time.Hour, now)
		require.NoError(t, err)
		require.NoError(t, store.Save(ctx, s2))
		require.NoError(t, store.Delete(ctx, s2.Token))
		require.NoError(t, store.Delete(ctx, s2.Token))
		_, err = store.Get(ctx, s2.Token)
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})
}
