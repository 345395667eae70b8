// Package checkout turns the current cart, session, and user-entered
// shipping details into a single order submission.
package checkout

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	"github.com/xenking/blossom-storefront/internal/api"
	"github.com/xenking/blossom-storefront/internal/domain/cart"
	"github.com/xenking/blossom-storefront/internal/domain/session"
)

// PaymentCashOnDelivery is the only functional payment method.
const PaymentCashOnDelivery = "COD"

var (
	// ErrNotAuthenticated means no session is active; the caller should
	// send the user to login with a return path back to checkout.
	ErrNotAuthenticated = errors.New("authentication required")
	// ErrEmptyCart means there is nothing to order; the caller should send
	// the user back to the cart view.
	ErrEmptyCart = errors.New("cart is empty")
)

// MissingFieldError indicates a required shipping field was left blank.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

// Shipping fee rule: orders strictly above the threshold ship free,
// everything else pays the flat fee.
var (
	freeShippingOver = decimal.NewFromInt(999)
	flatShippingFee  = decimal.NewFromInt(50)
)

// ShippingDetails is the user-entered delivery form. Landmark is optional;
// every other field is required. No validation beyond presence is applied.
type ShippingDetails struct {
	Address    string
	Landmark   string
	City       string
	State      string
	PostalCode string
	Country    string
	Phone      string
}

func (d ShippingDetails) validate() error {
	required := []struct{ name, value string }{
		{"address", d.Address},
		{"city", d.City},
		{"state", d.State},
		{"postal code", d.PostalCode},
		{"country", d.Country},
		{"phone", d.Phone},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return &MissingFieldError{Field: f.name}
		}
	}
	return nil
}

// wire folds the landmark into the street address line the way the server
// expects it.
func (d ShippingDetails) wire() api.ShippingAddress {
	address := d.Address
	if strings.TrimSpace(d.Landmark) != "" {
		address = fmt.Sprintf("%s (Landmark: %s)", d.Address, d.Landmark)
	}
	return api.ShippingAddress{
		Address:    address,
		City:       d.City,
		State:      d.State,
		PostalCode: d.PostalCode,
		Country:    d.Country,
		Phone:      d.Phone,
	}
}

// Quote is the computed pricing for a cart at submission time. It is
// evaluated purely from current cart contents; the server performs its own
// validation independently.
type Quote struct {
	ItemsPrice    decimal.Decimal
	ShippingPrice decimal.Decimal
	TotalPrice    decimal.Decimal
}

// FreeShipping reports whether the quote qualified for free shipping.
func (q Quote) FreeShipping() bool {
	return q.ShippingPrice.IsZero()
}

// QuoteItems prices the given line items: subtotal, shipping (free strictly
// above 999, flat 50 otherwise), and total.
func QuoteItems(items []cart.LineItem) Quote {
	subtotal := decimal.Zero
	for _, li := range items {
		subtotal = subtotal.Add(li.Subtotal())
	}

	shipping := flatShippingFee
	if subtotal.GreaterThan(freeShippingOver) {
		shipping = decimal.Zero
	}

	return Quote{
		ItemsPrice:    subtotal,
		ShippingPrice: shipping,
		TotalPrice:    subtotal.Add(shipping),
	}
}

// Cart is the cart access the orchestrator needs.
type Cart interface {
	Items() []cart.LineItem
	Clear()
}

// Sessions reports the active session.
type Sessions interface {
	Current() *session.Session
}

// OrderAPI submits composed orders.
type OrderAPI interface {
	PlaceOrder(ctx context.Context, req api.PlaceOrderRequest) (*api.PlacedOrder, error)
}

// Orchestrator is a one-shot consumer of the cart and session: it composes
// an order submission, sends it, and clears the cart on success. On failure
// the cart is left untouched so the user may retry.
type Orchestrator struct {
	cart     Cart
	sessions Sessions
	orders   OrderAPI

	// sf collapses duplicate submissions triggered while one is already in
	// flight, mirroring the disabled submit control in the storefront UI.
	sf singleflight.Group
}

// New creates an Orchestrator.
func New(c Cart, s Sessions, orders OrderAPI) *Orchestrator {
	return &Orchestrator{cart: c, sessions: s, orders: orders}
}

// PlaceOrder validates preconditions, composes the submission, and sends it.
// It returns the server-assigned order ID. Precondition failures
// (ErrNotAuthenticated, ErrEmptyCart, MissingFieldError) are reported before
// any network call is made.
func (o *Orchestrator) PlaceOrder(ctx context.Context, details ShippingDetails, paymentMethod string) (string, error) {
	if o.sessions.Current() == nil {
		return "", ErrNotAuthenticated
	}

	items := o.cart.Items()
	if len(items) == 0 {
		return "", ErrEmptyCart
	}

	if err := details.validate(); err != nil {
		return "", err
	}
	if paymentMethod == "" {
		paymentMethod = PaymentCashOnDelivery
	}

	quote := QuoteItems(items)

	orderItems := make([]api.OrderItem, len(items))
	for i, li := range items {
		orderItems[i] = api.OrderItem{
			Product:  li.ID,
			ID:       li.ID,
			Name:     li.Name,
			Category: li.Category,
			Image:    li.Image,
			Price:    li.Price,
			Quantity: li.Quantity,
		}
	}

	req := api.PlaceOrderRequest{
		OrderItems:      orderItems,
		ShippingAddress: details.wire(),
		PaymentMethod:   paymentMethod,
		ItemsPrice:      quote.ItemsPrice,
		ShippingPrice:   quote.ShippingPrice,
		TotalPrice:      quote.TotalPrice,
	}

	result, err, _ := o.sf.Do("placeOrder", func() (any, error) {
		placed, err := o.orders.PlaceOrder(ctx, req)
		if err != nil {
			return nil, err
		}
		o.cart.Clear()
		return placed.ID, nil
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}
