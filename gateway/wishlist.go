package gateway

import (
	"context"
	"net/http"
)

// GetWishlist fetches the set of favorited products
func (c *Client) GetWishlist(ctx context.Context, token string) (*Wishlist, error) {
	var envelope wishlistEnvelope
	if err := c.get(ctx, "gateway.GetWishlist", "/wishlist", authTokenHeader, token, &envelope); err != nil {
		return nil, err
	}
	return &Wishlist{Count: envelope.Count, Items: envelope.Data}, nil
}

// AddToWishlist marks a product as favorite
func (c *Client) AddToWishlist(ctx context.Context, token, productID string) error {
	body := map[string]string{"productId": productID}
	var envelope statusEnvelope
	return c.do(ctx, "gateway.AddToWishlist", http.MethodPost, "/wishlist", body, authTokenHeader, token, &envelope)
}

// RemoveFromWishlist unmarks a product as favorite
func (c *Client) RemoveFromWishlist(ctx context.Context, token, productID string) error {
	var envelope statusEnvelope
	return c.do(ctx, "gateway.RemoveFromWishlist", http.MethodDelete, "/wishlist/"+productID, nil, authTokenHeader, token, &envelope)
}
