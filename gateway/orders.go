package gateway

import (
	"context"
	"net/http"
)

// GetOrders fetches the user's orders. Order endpoints use Bearer auth
// unlike cart and wishlist; see the authStyle note in client.go.
func (c *Client) GetOrders(ctx context.Context, token string) ([]Order, error) {
	var envelope ordersEnvelope
	if err := c.get(ctx, "gateway.GetOrders", "/orders", authBearer, token, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

// PayOrder submits payment for an order with the given method
// (e.g. "card" or "cash")
func (c *Client) PayOrder(ctx context.Context, token, orderID, paymentMethod string) error {
	body := map[string]string{"paymentMethod": paymentMethod}
	var envelope statusEnvelope
	return c.do(ctx, "gateway.PayOrder", http.MethodPost, "/orders/"+orderID+"/pay", body, authBearer, token, &envelope)
}
