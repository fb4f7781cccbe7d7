package gateway

import (
	"context"
	"net/http"

	"github.com/islam174932/EcommerceWeb/core"
)

// GetCart fetches the authoritative cart for the session
func (c *Client) GetCart(ctx context.Context, token string) (*Cart, error) {
	var envelope cartEnvelope
	if err := c.get(ctx, "gateway.GetCart", "/cart", authTokenHeader, token, &envelope); err != nil {
		return nil, err
	}
	if envelope.Data == nil {
		// A 2xx response without a data object is a shape mismatch;
		// fail closed instead of returning an empty cart
		return nil, &APIError{Op: "gateway.GetCart", Status: http.StatusOK, Err: core.ErrMalformedResponse}
	}
	cart := envelope.Data
	cart.NumItems = envelope.NumOfCartItems
	return cart, nil
}

// AddToCart adds one unit of the product and returns a receipt
func (c *Client) AddToCart(ctx context.Context, token, productID string) (*CartReceipt, error) {
	body := map[string]string{"productId": productID}
	var envelope cartMutationEnvelope
	if err := c.do(ctx, "gateway.AddToCart", http.MethodPost, "/cart", body, authTokenHeader, token, &envelope); err != nil {
		return nil, err
	}
	return receiptFromEnvelope(&envelope), nil
}

// UpdateCartItem sets the quantity of a cart line
func (c *Client) UpdateCartItem(ctx context.Context, token, productID string, count int) (*CartReceipt, error) {
	body := map[string]int{"count": count}
	var envelope cartMutationEnvelope
	if err := c.do(ctx, "gateway.UpdateCartItem", http.MethodPut, "/cart/"+productID, body, authTokenHeader, token, &envelope); err != nil {
		return nil, err
	}
	return receiptFromEnvelope(&envelope), nil
}

// RemoveFromCart deletes a cart line
func (c *Client) RemoveFromCart(ctx context.Context, token, productID string) (*CartReceipt, error) {
	var envelope cartMutationEnvelope
	if err := c.do(ctx, "gateway.RemoveFromCart", http.MethodDelete, "/cart/"+productID, nil, authTokenHeader, token, &envelope); err != nil {
		return nil, err
	}
	return receiptFromEnvelope(&envelope), nil
}

// ClearCart empties the cart entirely
func (c *Client) ClearCart(ctx context.Context, token string) error {
	var envelope statusEnvelope
	return c.do(ctx, "gateway.ClearCart", http.MethodDelete, "/cart", nil, authTokenHeader, token, &envelope)
}

func receiptFromEnvelope(envelope *cartMutationEnvelope) *CartReceipt {
	return &CartReceipt{
		NumOfCartItems: envelope.NumOfCartItems,
		TotalPrice:     envelope.Data.TotalCartPrice,
	}
}
