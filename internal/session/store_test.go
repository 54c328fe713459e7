package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewStore(rdb, "test-secret", time.Hour), mr
}

func TestCreateResolveDestroy(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	token, err := store.Create(ctx, 7)
	require.NoError(t, err)

	userID, err := store.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), userID)

	require.NoError(t, store.Destroy(ctx, token))

	// The token still verifies but the session is gone
	_, err = store.Resolve(ctx, token)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestResolveRejectsGarbage(t *testing.T) {
	store, _ := newStore(t)

	for _, token := range []string{"", "not-a-jwt"} {
		_, err := store.Resolve(context.Background(), token)
		assert.ErrorIs(t, err, ErrNoSession)
	}
	assert.NoError(t, store.Destroy(context.Background(), "not-a-jwt"))
}

func TestSessionExpiresInRedis(t *testing.T) {
	store, mr := newStore(t)
	ctx := context.Background()

	token, err := store.Create(ctx, 1)
	require.NoError(t, err)

	mr.FastForward(2 * time.Hour)

	_, err = store.Resolve(ctx, token)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestResolveRejectsForeignSecret(t *testing.T) {
	store, mr := newStore(t)
	ctx := context.Background()

	other := NewStore(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "other-secret", time.Hour)
	token, err := other.Create(ctx, 3)
	require.NoError(t, err)

	_, err = store.Resolve(ctx, token)
	assert.ErrorIs(t, err, ErrNoSession)
}
