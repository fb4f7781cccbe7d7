// Package state holds the page-scoped client state for the storefront:
// the cart snapshot, the wishlist membership set, and the debounced search
// input. Stores apply mutations optimistically, reconcile against the
// gateway's responses, and roll back (cart: full re-fetch; wishlist: local
// revert) on failure.
//
// Each page owns its stores exclusively and re-fetches on mount; stores are
// never shared across pages. Mutations on one store are serialized through
// a single-flight gate: a mutation arriving while another is in flight
// fails fast with core.ErrMutationInFlight instead of racing.
package state
