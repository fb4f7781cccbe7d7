package state

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/islam174932/EcommerceWeb/core"
	"github.com/islam174932/EcommerceWeb/gateway"
	"github.com/islam174932/EcommerceWeb/session"
)

// fakeWishlistAPI scripts gateway responses and counts calls
type fakeWishlistAPI struct {
	mu sync.Mutex

	items []gateway.Product

	failAdd    error
	failRemove error
	failGet    error

	getCalls    int
	addCalls    int
	removeCalls int
}

func (f *fakeWishlistAPI) GetWishlist(ctx context.Context, token string) (*gateway.Wishlist, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls++
	if f.failGet != nil {
		return nil, f.failGet
	}
	items := append([]gateway.Product(nil), f.items...)
	return &gateway.Wishlist{Count: len(items), Items: items}, nil
}

func (f *fakeWishlistAPI) AddToWishlist(ctx context.Context, token, productID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.addCalls++
	return f.failAdd
}

func (f *fakeWishlistAPI) RemoveFromWishlist(ctx context.Context, token, productID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removeCalls++
	return f.failRemove
}

func TestWishlistRefreshBuildsMembership(t *testing.T) {
	api := &fakeWishlistAPI{items: []gateway.Product{product("P1", 10), product("P2", 20)}}
	store := NewWishlistStore(api, authedSession(t), nil)

	require.NoError(t, store.Refresh(context.Background()))

	assert.True(t, store.Contains("P1"))
	assert.True(t, store.Contains("P2"))
	assert.False(t, store.Contains("P3"))
	assert.Equal(t, 2, store.Count())
}

func TestWishlistToggleAddsNonMember(t *testing.T) {
	api := &fakeWishlistAPI{}
	store := NewWishlistStore(api, authedSession(t), nil)
	ctx := context.Background()

	require.NoError(t, store.Refresh(ctx))
	require.NoError(t, store.Toggle(ctx, product("P1", 10)))

	assert.True(t, store.Contains("P1"))
	assert.Equal(t, 1, api.addCalls)
	assert.Equal(t, 0, api.removeCalls)
}

func TestWishlistToggleRemovesMember(t *testing.T) {
	api := &fakeWishlistAPI{items: []gateway.Product{product("P1", 10)}}
	store := NewWishlistStore(api, authedSession(t), nil)
	ctx := context.Background()

	require.NoError(t, store.Refresh(ctx))
	require.NoError(t, store.Toggle(ctx, product("P1", 10)))

	assert.False(t, store.Contains("P1"))
	assert.Equal(t, 0, api.addCalls)
	assert.Equal(t, 1, api.removeCalls)
}

func TestWishlistDoubleToggleRestoresMembership(t *testing.T) {
	api := &fakeWishlistAPI{items: []gateway.Product{product("P1", 10)}}
	store := NewWishlistStore(api, authedSession(t), nil)
	ctx := context.Background()

	require.NoError(t, store.Refresh(ctx))
	wasMember := store.Contains("P1")

	require.NoError(t, store.Toggle(ctx, product("P1", 10)))
	require.NoError(t, store.Toggle(ctx, product("P1", 10)))

	assert.Equal(t, wasMember, store.Contains("P1"))
	assert.Equal(t, 1, store.Count())
}

func TestWishlistToggleNeverDoubleAdds(t *testing.T) {
	api := &fakeWishlistAPI{items: []gateway.Product{product("P1", 10)}}
	store := NewWishlistStore(api, authedSession(t), nil)

	require.NoError(t, store.Refresh(context.Background()))

	// An add of an existing member through internal state cannot duplicate
	store.mu.Lock()
	store.addLocked(product("P1", 10))
	store.mu.Unlock()

	assert.Equal(t, 1, store.Count())
	assert.Len(t, store.Items(), 1)
}

func TestWishlistFailedToggleRevertsLocally(t *testing.T) {
	api := &fakeWishlistAPI{failAdd: core.ErrRequestFailed}
	store := NewWishlistStore(api, authedSession(t), nil)
	ctx := context.Background()

	require.NoError(t, store.Refresh(ctx))
	err := store.Toggle(ctx, product("P1", 10))
	require.Error(t, err)

	assert.False(t, store.Contains("P1"))
	// The wishlist reverts locally; no rollback re-fetch like the cart
	assert.Equal(t, 1, api.getCalls)
	assert.ErrorIs(t, store.LastError(), core.ErrRequestFailed)
}

func TestWishlistFailedRemoveRestoresMember(t *testing.T) {
	api := &fakeWishlistAPI{
		items:      []gateway.Product{product("P1", 10)},
		failRemove: core.ErrRequestFailed,
	}
	store := NewWishlistStore(api, authedSession(t), nil)
	ctx := context.Background()

	require.NoError(t, store.Refresh(ctx))
	require.Error(t, store.Toggle(ctx, product("P1", 10)))

	assert.True(t, store.Contains("P1"))
	assert.Len(t, store.Items(), 1)
}

func TestWishlistAuthFailureClearsSession(t *testing.T) {
	api := &fakeWishlistAPI{failAdd: core.ErrSessionExpired}
	holder := authedSession(t)
	store := NewWishlistStore(api, holder, nil)

	err := store.Toggle(context.Background(), product("P1", 10))
	assert.ErrorIs(t, err, core.ErrSessionExpired)

	_, authenticated := holder.Get()
	assert.False(t, authenticated)
	assert.Equal(t, 0, store.Count())
}

func TestWishlistToggleWhileInFlightFailsFast(t *testing.T) {
	api := &fakeWishlistAPI{}
	store := NewWishlistStore(api, authedSession(t), nil)

	store.mu.Lock()
	store.inFlight = true
	store.mu.Unlock()

	err := store.Toggle(context.Background(), product("P1", 10))
	assert.ErrorIs(t, err, core.ErrMutationInFlight)
	assert.Equal(t, 0, api.addCalls)
}

func TestWishlistRequiresSession(t *testing.T) {
	api := &fakeWishlistAPI{}
	store := NewWishlistStore(api, session.NewHolder(), nil)

	err := store.Refresh(context.Background())
	assert.ErrorIs(t, err, core.ErrNotAuthenticated)
	assert.Equal(t, 0, api.getCalls)
}
