package api

import (
	"context"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
)

// Order lifecycle statuses used by the back-office.
const (
	OrderStatusProcessing = "Processing"
	OrderStatusShipped    = "Shipped"
	OrderStatusDelivered  = "Delivered"
	OrderStatusCancelled  = "Cancelled"
)

// OrderItem is a cart line item re-tagged with its product ID under the
// `product` field expected by the server.
type OrderItem struct {
	Product  string          `json:"product"`
	ID       string          `json:"_id,omitempty"`
	Name     string          `json:"name"`
	Category string          `json:"category,omitempty"`
	Image    string          `json:"image,omitempty"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"qty"`
}

// ShippingAddress is the wire form of the delivery address. Street address
// and landmark are folded into a single line before submission.
type ShippingAddress struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
	Phone      string `json:"phone"`
}

// PlaceOrderRequest is the order submission body.
type PlaceOrderRequest struct {
	OrderItems      []OrderItem     `json:"orderItems"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
	ItemsPrice      decimal.Decimal `json:"itemsPrice"`
	ShippingPrice   decimal.Decimal `json:"shippingPrice"`
	TotalPrice      decimal.Decimal `json:"totalPrice"`
}

// PlacedOrder is the server's acknowledgement of a created order.
type PlacedOrder struct {
	ID string `json:"_id"`
}

// OrderUser identifies the customer on admin order listings.
type OrderUser struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Order is a placed order as returned by the order endpoints.
type Order struct {
	ID              string          `json:"_id"`
	User            *OrderUser      `json:"user,omitempty"`
	OrderItems      []OrderItem     `json:"orderItems"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
	ItemsPrice      decimal.Decimal `json:"itemsPrice"`
	ShippingPrice   decimal.Decimal `json:"shippingPrice"`
	TotalPrice      decimal.Decimal `json:"totalPrice"`
	Status          string          `json:"status,omitempty"`
	IsDelivered     bool            `json:"isDelivered"`
	DeliveredAt     *time.Time      `json:"deliveredAt,omitempty"`
	CreatedAt       time.Time       `json:"createdAt,omitzero"`
}

type orderStatusUpdate struct {
	Status string `json:"status"`
}

// PlaceOrder submits an order with the session token as bearer credential.
func (c *Client) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*PlacedOrder, error) {
	var placed PlacedOrder
	if err := c.doJSON(ctx, http.MethodPost, "/api/orders", req, &placed, callOpts{authed: true}); err != nil {
		return nil, err
	}
	return &placed, nil
}

// MyOrders returns the authenticated user's order history.
func (c *Client) MyOrders(ctx context.Context) ([]Order, error) {
	var orders []Order
	if err := c.doJSON(ctx, http.MethodGet, "/api/orders/myorders", nil, &orders, callOpts{authed: true}); err != nil {
		return nil, err
	}
	return orders, nil
}

// ListOrders returns all orders. Requires an admin session.
func (c *Client) ListOrders(ctx context.Context) ([]Order, error) {
	var orders []Order
	if err := c.doJSON(ctx, http.MethodGet, "/api/orders", nil, &orders, callOpts{authed: true}); err != nil {
		return nil, err
	}
	return orders, nil
}

// GetOrder returns a single order. Requires an admin session.
func (c *Client) GetOrder(ctx context.Context, id string) (*Order, error) {
	var order Order
	if err := c.doJSON(ctx, http.MethodGet, "/api/orders/"+id, nil, &order, callOpts{authed: true}); err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateOrderStatus sets an order's fulfilment status. Requires an admin
// session.
func (c *Client) UpdateOrderStatus(ctx context.Context, id, status string) error {
	return c.doJSON(ctx, http.MethodPut, "/api/orders/"+id+"/status",
		orderStatusUpdate{Status: status}, nil, callOpts{authed: true})
}
