package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func redisStore(t *testing.T, ttl time.Duration) (*RedisTokenStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	store, err := NewRedisTokenStore("redis://"+mr.Addr(), "test", ttl)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store, mr
}

func TestRedisTokenStoreRoundTrip(t *testing.T) {
	store, _ := redisStore(t, time.Hour)
	ctx := context.Background()

	s := Session{Token: "jwt", UserName: "Ada", Email: "ada@example.com"}
	require.NoError(t, store.Save(ctx, s))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, s, loaded)
}

func TestRedisTokenStoreLoadEmpty(t *testing.T) {
	store, _ := redisStore(t, time.Hour)

	loaded, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, loaded.Authenticated())
}

func TestRedisTokenStoreClear(t *testing.T) {
	store, mr := redisStore(t, time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, Session{Token: "jwt"}))
	require.NoError(t, store.Clear(ctx))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.False(t, loaded.Authenticated())
	assert.False(t, mr.Exists("storefront:session:test"))
}

func TestRedisTokenStoreSetsTTL(t *testing.T) {
	store, mr := redisStore(t, time.Hour)

	require.NoError(t, store.Save(context.Background(), Session{Token: "jwt"}))
	assert.Equal(t, time.Hour, mr.TTL("storefront:session:test"))
}

func TestRedisTokenStoreExpiry(t *testing.T) {
	store, mr := redisStore(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, Session{Token: "jwt"}))
	mr.FastForward(2 * time.Minute)

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.False(t, loaded.Authenticated())
}

func TestRedisTokenStoreScopesKeys(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	first, err := NewRedisTokenStore("redis://"+mr.Addr(), "alpha", time.Hour)
	require.NoError(t, err)
	defer first.Close()
	second, err := NewRedisTokenStore("redis://"+mr.Addr(), "beta", time.Hour)
	require.NoError(t, err)
	defer second.Close()

	require.NoError(t, first.Save(ctx, Session{Token: "jwt-a"}))
	require.NoError(t, second.Save(ctx, Session{Token: "jwt-b"}))

	loaded, err := first.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "jwt-a", loaded.Token)

	require.NoError(t, first.Clear(ctx))
	loaded, err = second.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "jwt-b", loaded.Token)
}

func TestRedisTokenStoreRejectsBadURL(t *testing.T) {
	_, err := NewRedisTokenStore("not a url", "test", time.Hour)
	assert.Error(t, err)
}
