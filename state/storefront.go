package state

import (
	"context"

	"github.com/islam174932/EcommerceWeb/core"
	"github.com/islam174932/EcommerceWeb/gateway"
	"github.com/islam174932/EcommerceWeb/session"
)

// Storefront bundles the page-scoped stores so pages can perform
// operations that span the cart and the wishlist.
type Storefront struct {
	Cart     *CartStore
	Wishlist *WishlistStore
}

// NewStorefront creates both stores bound to the same session
func NewStorefront(client *gateway.Client, sessions *session.Holder, logger core.Logger) *Storefront {
	return &Storefront{
		Cart:     NewCartStore(client, sessions, logger),
		Wishlist: NewWishlistStore(client, sessions, logger),
	}
}

// AddToCartAndRemoveFromWishlist moves a product from the wishlist into the
// cart as two independent calls. When the cart addition succeeds but the
// wishlist removal fails, the product stays in both collections; the next
// full fetch resolves this. A cart failure aborts before the wishlist is
// touched.
func (f *Storefront) AddToCartAndRemoveFromWishlist(ctx context.Context, p gateway.Product) error {
	if err := f.Cart.Add(ctx, p); err != nil {
		return err
	}
	if !f.Wishlist.Contains(p.ID) {
		return nil
	}
	return f.Wishlist.Toggle(ctx, p)
}
