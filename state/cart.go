package state

import (
	"context"
	"sync"

	"github.com/islam174932/EcommerceWeb/core"
	"github.com/islam174932/EcommerceWeb/gateway"
	"github.com/islam174932/EcommerceWeb/session"
)

// Line is one product-quantity pair within the cart snapshot
type Line struct {
	ProductID string
	Title     string
	ImageURL  string
	UnitPrice float64
	Quantity  int
}

// Snapshot is the cart as currently rendered: either the authoritative
// server state or an optimistic projection of it. Lines keep the
// server-returned order; TotalPrice is always recomputed from the lines.
type Snapshot struct {
	Lines      []Line
	TotalPrice float64
	ItemCount  int
	// Version increments every time a new snapshot is accepted, so the
	// presentation layer can detect staleness cheaply
	Version uint64
}

// CartStore maintains the cart snapshot for one page session and keeps it
// consistent with the server under optimistic updates.
type CartStore struct {
	api      CartAPI
	sessions *session.Holder
	logger   core.Logger

	mu       sync.Mutex
	snapshot Snapshot
	prev     Snapshot // pre-mutation state, restored on rollback
	loading  bool
	inFlight bool
	lastErr  error
}

// NewCartStore creates a cart store bound to one page session
func NewCartStore(api CartAPI, sessions *session.Holder, logger core.Logger) *CartStore {
	if logger == nil {
		logger = &core.NoOpLogger{}
	}
	return &CartStore{
		api:      api,
		sessions: sessions,
		logger:   logger,
	}
}

// Snapshot returns a copy of the current snapshot
func (s *CartStore) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copySnapshotLocked()
}

// Loading reports whether a full fetch is in progress
func (s *CartStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// LastError returns the most recent user-visible error, nil when the last
// operation settled cleanly
func (s *CartStore) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Refresh replaces the snapshot with the authoritative server cart
func (s *CartStore) Refresh(ctx context.Context) error {
	token, ok := s.sessions.Get()
	if !ok {
		return s.fail("cart.Refresh", core.ErrNotAuthenticated)
	}

	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	cart, err := s.api.GetCart(ctx, token.Token)

	s.mu.Lock()
	s.loading = false
	if err != nil {
		s.lastErr = err
		if core.IsAuthError(err) {
			s.snapshot = Snapshot{Version: s.snapshot.Version + 1}
			s.mu.Unlock()
			s.sessions.Clear(session.ReasonExpired)
			return core.NewStoreError("cart.Refresh", "state", err)
		}
		s.mu.Unlock()
		return core.NewStoreError("cart.Refresh", "state", err)
	}

	s.acceptLocked(snapshotFromCart(cart))
	s.lastErr = nil
	s.mu.Unlock()
	return nil
}

// Add puts one unit of the product in the cart. The product value is used
// for the optimistic projection (title, image, unit price); the server is
// only sent the product ID.
func (s *CartStore) Add(ctx context.Context, p gateway.Product) error {
	token, ok := s.sessions.Get()
	if !ok {
		return s.fail("cart.Add", core.ErrNotAuthenticated)
	}

	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return core.NewStoreError("cart.Add", "state", core.ErrMutationInFlight)
	}
	s.inFlight = true
	s.prev = s.copySnapshotLocked()

	// Pending: apply the projection before the network call resolves.
	// The server increments the quantity when the product is already in
	// the cart, so the projection does the same.
	projected := s.copySnapshotLocked()
	bumped := false
	for i := range projected.Lines {
		if projected.Lines[i].ProductID == p.ID {
			projected.Lines[i].Quantity++
			bumped = true
			break
		}
	}
	if !bumped {
		projected.Lines = append(projected.Lines, Line{
			ProductID: p.ID,
			Title:     p.Title,
			ImageURL:  p.ImageCover,
			UnitPrice: p.UnitPrice(),
			Quantity:  1,
		})
	}
	s.acceptLocked(projected)
	s.mu.Unlock()

	_, err := s.api.AddToCart(ctx, token.Token, p.ID)
	return s.settleMutation(ctx, "cart.Add", err)
}

// UpdateQuantity sets the quantity of an existing line. Quantities below 1
// are rejected client-side: no state change and no network call.
func (s *CartStore) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	if quantity < 1 {
		return core.NewStoreError("cart.UpdateQuantity", "state", core.ErrInvalidQuantity)
	}

	token, ok := s.sessions.Get()
	if !ok {
		return s.fail("cart.UpdateQuantity", core.ErrNotAuthenticated)
	}

	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return core.NewStoreError("cart.UpdateQuantity", "state", core.ErrMutationInFlight)
	}

	projected := s.copySnapshotLocked()
	found := false
	for i := range projected.Lines {
		if projected.Lines[i].ProductID == productID {
			projected.Lines[i].Quantity = quantity
			found = true
			break
		}
	}
	if !found {
		s.mu.Unlock()
		return core.NewStoreError("cart.UpdateQuantity", "state", core.ErrNotFound)
	}

	s.inFlight = true
	s.prev = s.copySnapshotLocked()
	s.acceptLocked(projected)
	s.mu.Unlock()

	_, err := s.api.UpdateCartItem(ctx, token.Token, productID, quantity)
	return s.settleMutation(ctx, "cart.UpdateQuantity", err)
}

// Remove deletes a line from the cart
func (s *CartStore) Remove(ctx context.Context, productID string) error {
	token, ok := s.sessions.Get()
	if !ok {
		return s.fail("cart.Remove", core.ErrNotAuthenticated)
	}

	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return core.NewStoreError("cart.Remove", "state", core.ErrMutationInFlight)
	}
	s.inFlight = true
	s.prev = s.copySnapshotLocked()

	projected := s.copySnapshotLocked()
	kept := projected.Lines[:0]
	for _, line := range projected.Lines {
		if line.ProductID != productID {
			kept = append(kept, line)
		}
	}
	projected.Lines = kept
	s.acceptLocked(projected)
	s.mu.Unlock()

	_, err := s.api.RemoveFromCart(ctx, token.Token, productID)
	return s.settleMutation(ctx, "cart.Remove", err)
}

// Clear empties the cart
func (s *CartStore) Clear(ctx context.Context) error {
	token, ok := s.sessions.Get()
	if !ok {
		return s.fail("cart.Clear", core.ErrNotAuthenticated)
	}

	s.mu.Lock()
	if s.inFlight {
		s.mu.Unlock()
		return core.NewStoreError("cart.Clear", "state", core.ErrMutationInFlight)
	}
	s.inFlight = true
	s.prev = s.copySnapshotLocked()
	s.acceptLocked(Snapshot{})
	s.mu.Unlock()

	err := s.api.ClearCart(ctx, token.Token)
	return s.settleMutation(ctx, "cart.Clear", err)
}

// settleMutation finishes the pending mutation: on success the optimistic
// projection stands; on failure the projection is discarded (pre-mutation
// state restored) and a full fetch resynchronizes with the server. A 401
// clears the session instead -- there is no credential left to fetch with.
func (s *CartStore) settleMutation(ctx context.Context, op string, err error) error {
	if err == nil {
		s.mu.Lock()
		s.inFlight = false
		s.prev = Snapshot{}
		s.lastErr = nil
		s.mu.Unlock()
		return nil
	}

	if core.IsAuthError(err) {
		s.mu.Lock()
		s.inFlight = false
		s.snapshot = Snapshot{Version: s.snapshot.Version + 1}
		s.prev = Snapshot{}
		s.lastErr = err
		s.mu.Unlock()
		s.sessions.Clear(session.ReasonExpired)
		return core.NewStoreError(op, "state", err)
	}

	s.logger.Warn("Cart mutation failed, resynchronizing", map[string]interface{}{
		"operation": op,
		"error":     err.Error(),
	})

	s.mu.Lock()
	s.acceptLocked(s.prev)
	s.prev = Snapshot{}
	s.mu.Unlock()

	// Best-effort resync; the restored pre-mutation snapshot already
	// matches the server unless something else changed it remotely
	token, ok := s.sessions.Get()
	if ok {
		if cart, fetchErr := s.api.GetCart(ctx, token.Token); fetchErr == nil {
			s.mu.Lock()
			s.acceptLocked(snapshotFromCart(cart))
			s.mu.Unlock()
		}
	}

	s.mu.Lock()
	s.inFlight = false
	s.lastErr = err
	s.mu.Unlock()
	return core.NewStoreError(op, "state", err)
}

func (s *CartStore) fail(op string, err error) error {
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()
	return core.NewStoreError(op, "state", err)
}

// acceptLocked installs a snapshot, recomputing the derived fields from the
// lines so the total-price invariant holds after every mutation.
// Must be called with s.mu held.
func (s *CartStore) acceptLocked(next Snapshot) {
	total := 0.0
	for _, line := range next.Lines {
		total += line.UnitPrice * float64(line.Quantity)
	}
	next.TotalPrice = total
	next.ItemCount = len(next.Lines)
	next.Version = s.snapshot.Version + 1
	s.snapshot = next
}

func (s *CartStore) copySnapshotLocked() Snapshot {
	out := s.snapshot
	out.Lines = append([]Line(nil), s.snapshot.Lines...)
	return out
}

func snapshotFromCart(cart *gateway.Cart) Snapshot {
	lines := make([]Line, 0, len(cart.Items))
	for _, item := range cart.Items {
		lines = append(lines, Line{
			ProductID: item.Product.ID,
			Title:     item.Product.Title,
			ImageURL:  item.Product.ImageCover,
			UnitPrice: item.Product.UnitPrice(),
			Quantity:  item.Count,
		})
	}
	return Snapshot{Lines: lines}
}
