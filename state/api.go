package state

import (
	"context"

	"github.com/islam174932/EcommerceWeb/gateway"
)

// CartAPI is the slice of the gateway the cart store depends on
type CartAPI interface {
	GetCart(ctx context.Context, token string) (*gateway.Cart, error)
	AddToCart(ctx context.Context, token, productID string) (*gateway.CartReceipt, error)
	UpdateCartItem(ctx context.Context, token, productID string, count int) (*gateway.CartReceipt, error)
	RemoveFromCart(ctx context.Context, token, productID string) (*gateway.CartReceipt, error)
	ClearCart(ctx context.Context, token string) error
}

// WishlistAPI is the slice of the gateway the wishlist store depends on
type WishlistAPI interface {
	GetWishlist(ctx context.Context, token string) (*gateway.Wishlist, error)
	AddToWishlist(ctx context.Context, token, productID string) error
	RemoveFromWishlist(ctx context.Context, token, productID string) error
}

// SearchAPI is the slice of the gateway the search debouncer dispatches to
type SearchAPI interface {
	SearchProducts(ctx context.Context, query string) (*gateway.ProductPage, error)
}
