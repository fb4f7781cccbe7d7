package state

import (
	"context"
	"sync"

	"github.com/islam174932/EcommerceWeb/core"
	"github.com/islam174932/EcommerceWeb/gateway"
	"github.com/islam174932/EcommerceWeb/session"
)

// WishlistStore maintains the set of favorited product IDs for one page
// session. Toggles apply optimistically and revert locally on failure;
// unlike the cart there is no rollback re-fetch, the revert restores the
// exact previous membership.
type WishlistStore struct {
	api      WishlistAPI
	sessions *session.Holder
	logger   core.Logger

	mu       sync.Mutex
	members  map[string]struct{}
	items    []gateway.Product
	loading  bool
	inFlight bool
	lastErr  error
	version  uint64
}

// NewWishlistStore creates a wishlist store bound to one page session
func NewWishlistStore(api WishlistAPI, sessions *session.Holder, logger core.Logger) *WishlistStore {
	if logger == nil {
		logger = &core.NoOpLogger{}
	}
	return &WishlistStore{
		api:      api,
		sessions: sessions,
		logger:   logger,
		members:  make(map[string]struct{}),
	}
}

// Contains reports whether the product is currently favorited
func (s *WishlistStore) Contains(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.members[productID]
	return ok
}

// Items returns the favorited products in server order
func (s *WishlistStore) Items() []gateway.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]gateway.Product(nil), s.items...)
}

// Count returns the number of favorited products
func (s *WishlistStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.members)
}

// Version increments every time the membership changes
func (s *WishlistStore) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// Loading reports whether a full fetch is in progress
func (s *WishlistStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// LastError returns the most recent user-visible error
func (s *WishlistStore) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Refresh replaces the membership with the authoritative server wishlist
func (s *WishlistStore) Refresh(ctx context.Context) error {
	token, ok := s.sessions.Get()
	if !ok {
		return s.fail("wishlist.Refresh", core.ErrNotAuthenticated)
	}

	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	wl, err := s.api.GetWishlist(ctx, token.Token)

	s.mu.Lock()
	s.loading = false
	if err != nil {
		s.lastErr = err
		if core.IsAuthError(err) {
			s.members = make(map[string]struct{})
			s.items = nil
			s.version++
			s.mu.Unlock()
			s.sessions.Clear(session.ReasonExpired)
			return core.NewStoreError("wishlist.Refresh", "state", err)
		}
		s.mu.Unlock()
		return core.NewStoreError("wishlist.Refresh", "state", err)
	}

	members := make(map[string]struct{}, len(wl.Items))
	for _, p := range wl.Items {
		members[p.ID] = struct{}{}
	}
	s.members = members
	s.items = append([]gateway.Product(nil), wl.Items...)
	s.version++
	s.lastErr = nil
	s.mu.Unlock()
	return nil
}

// Toggle flips the membership of the product: optimistic add or remove,
// reverted locally if the server rejects the call. After a successful
// settle the visible set matches what GetWishlist would return.
func (s *WishlistStore) Toggle(ctx context.Context, p gateway.Product) error {
	token, ok := s.sessions.Get()
	if !ok {
		return s.fail("wishlist.Toggle", core.ErrNotAuthenticated)
	}

	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return core.NewStoreError("wishlist.Toggle", "state", core.ErrMutationInFlight)
	}
	s.inFlight = true

	_, wasMember := s.members[p.ID]
	if wasMember {
		s.removeLocked(p.ID)
	} else {
		s.addLocked(p)
	}
	s.mu.Unlock()

	var err error
	if wasMember {
		err = s.api.RemoveFromWishlist(ctx, token.Token, p.ID)
	} else {
		err = s.api.AddToWishlist(ctx, token.Token, p.ID)
	}

	if err == nil {
		s.mu.Lock()
		s.inFlight = false
		s.lastErr = nil
		s.mu.Unlock()
		return nil
	}

	if core.IsAuthError(err) {
		s.mu.Lock()
		s.inFlight = false
		s.members = make(map[string]struct{})
		s.items = nil
		s.version++
		s.lastErr = err
		s.mu.Unlock()
		s.sessions.Clear(session.ReasonExpired)
		return core.NewStoreError("wishlist.Toggle", "state", err)
	}

	s.logger.Warn("Wishlist toggle failed, reverting", map[string]interface{}{
		"product": p.ID,
		"error":   err.Error(),
	})

	// Revert the optimistic flip
	s.mu.Lock()
	if wasMember {
		s.addLocked(p)
	} else {
		s.removeLocked(p.ID)
	}
	s.inFlight = false
	s.lastErr = err
	s.mu.Unlock()
	return core.NewStoreError("wishlist.Toggle", "state", err)
}

func (s *WishlistStore) fail(op string, err error) error {
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()
	return core.NewStoreError(op, "state", err)
}

// addLocked inserts the product; the membership set makes a double-add
// impossible. Must be called with s.mu held.
func (s *WishlistStore) addLocked(p gateway.Product) {
	if _, ok := s.members[p.ID]; ok {
		return
	}
	s.members[p.ID] = struct{}{}
	s.items = append(s.items, p)
	s.version++
}

// removeLocked deletes the product. Must be called with s.mu held.
func (s *WishlistStore) removeLocked(productID string) {
	if _, ok := s.members[productID]; !ok {
		return
	}
	delete(s.members, productID)
	kept := s.items[:0]
	for _, item := range s.items {
		if item.ID != productID {
			kept = append(kept, item)
		}
	}
	s.items = kept
	s.version++
}
