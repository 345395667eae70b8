package api

import (
	"context"
	"net/http"
)

type configValue struct {
	Value string `json:"value"`
}

// DeliveryEmail returns the configured order-notification address. Requires
// an admin session.
func (c *Client) DeliveryEmail(ctx context.Context) (string, error) {
	var v configValue
	if err := c.doJSON(ctx, http.MethodGet, "/api/config/deliveryEmail", nil, &v, callOpts{authed: true}); err != nil {
		return "", err
	}
	return v.Value, nil
}

// SetDeliveryEmail updates the order-notification address. Requires an
// admin session.
func (c *Client) SetDeliveryEmail(ctx context.Context, value string) error {
	return c.doJSON(ctx, http.MethodPut, "/api/config/deliveryEmail",
		configValue{Value: value}, nil, callOpts{authed: true})
}
