package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryTokenStoreRoundTrip(t *testing.T) {
	store := NewMemoryTokenStore(0)
	ctx := context.Background()

	s := Session{Token: "jwt", UserName: "Ada", Email: "ada@example.com"}
	require.NoError(t, store.Save(ctx, s))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, s, loaded)
}

func TestMemoryTokenStoreLoadEmpty(t *testing.T) {
	store := NewMemoryTokenStore(0)

	loaded, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, loaded.Authenticated())
}

func TestMemoryTokenStoreClear(t *testing.T) {
	store := NewMemoryTokenStore(0)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, Session{Token: "jwt"}))
	require.NoError(t, store.Clear(ctx))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.False(t, loaded.Authenticated())
}

func TestMemoryTokenStoreTTLExpiry(t *testing.T) {
	store := NewMemoryTokenStore(20 * time.Millisecond)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, Session{Token: "jwt"}))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.True(t, loaded.Authenticated())

	time.Sleep(30 * time.Millisecond)

	loaded, err = store.Load(ctx)
	require.NoError(t, err)
	assert.False(t, loaded.Authenticated())
}

func TestMemoryTokenStoreSaveRestartsTTL(t *testing.T) {
	store := NewMemoryTokenStore(40 * time.Millisecond)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, Session{Token: "jwt"}))
	time.Sleep(25 * time.Millisecond)
	require.NoError(t, store.Save(ctx, Session{Token: "jwt"}))
	time.Sleep(25 * time.Millisecond)

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.True(t, loaded.Authenticated())
}
