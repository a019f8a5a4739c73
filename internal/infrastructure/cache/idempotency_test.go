package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T, ttl time.Duration) (*IdempotencyStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewIdempotencyStore(client, ttl), mr
}

func TestIdempotency_ClaimOnce(t *testing.T) {
	store, mr := newStore(t, time.Minute)
	ctx := context.Background()

	ok, err := store.Claim(ctx, "assignment", "abc")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Claim(ctx, "assignment", "abc")
	require.NoError(t, err)
	assert.False(t, ok, "la misma clave no se reserva dos veces")

	ok, err = store.Claim(ctx, "scrap", "abc")
	require.NoError(t, err)
	assert.True(t, ok, "cada ruta tiene su propio espacio de claves")

	assert.True(t, mr.Exists("apa:idem:assignment:abc"))
	assert.Equal(t, time.Minute, mr.TTL("apa:idem:assignment:abc"))
}

func TestIdempotency_ExpiresAndReleases(t *testing.T) {
	store, mr := newStore(t, time.Minute)
	ctx := context.Background()

	_, err := store.Claim(ctx, "assignment", "k1")
	require.NoError(t, err)
	mr.FastForward(2 * time.Minute)
	ok, err := store.Claim(ctx, "assignment", "k1")
	require.NoError(t, err)
	assert.True(t, ok, "vencido el TTL la clave vuelve a estar libre")

	require.NoError(t, store.Release(ctx, "assignment", "k1"))
	ok, err = store.Claim(ctx, "assignment", "k1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestIdempotency_Errors(t *testing.T) {
	store, mr := newStore(t, 0)
	assert.Equal(t, 24*time.Hour, store.ttl)

	_, err := store.Claim(context.Background(), "assignment", "")
	assert.Error(t, err)

	mr.Close()
	_, err = store.Claim(context.Background(), "assignment", "k")
	assert.Error(t, err)
}
