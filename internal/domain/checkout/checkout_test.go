package checkout

import (
	"context"
	"sync"
	"testing"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/blossom-storefront/internal/api"
	"github.com/xenking/blossom-storefront/internal/domain/cart"
	"github.com/xenking/blossom-storefront/internal/domain/session"
)

// mockCart is an in-memory Cart.
type mockCart struct {
	mu    sync.Mutex
	items []cart.LineItem
}

func (m *mockCart) Items() []cart.LineItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]cart.LineItem, len(m.items))
	copy(out, m.items)
	return out
}

func (m *mockCart) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = nil
}

// mockSessions returns a fixed session.
type mockSessions struct {
	session *session.Session
}

func (m *mockSessions) Current() *session.Session {
	return m.session
}

// mockOrderAPI records submissions.
type mockOrderAPI struct {
	mu    sync.Mutex
	calls int
	last  api.PlaceOrderRequest
	id    string
	err   error
}

func (m *mockOrderAPI) PlaceOrder(_ context.Context, req api.PlaceOrderRequest) (*api.PlacedOrder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.last = req
	if m.err != nil {
		return nil, m.err
	}
	return &api.PlacedOrder{ID: m.id}, nil
}

func lineItem(id, price string, qty int) cart.LineItem {
	return cart.LineItem{
		ID:       id,
		Name:     "Item " + id,
		Category: "Soaps",
		Image:    "img.jpg",
		Price:    decimal.RequireFromString(price),
		Quantity: qty,
	}
}

func validDetails() ShippingDetails {
	return ShippingDetails{
		Address:    "12 Hill Rd",
		City:       "Mumbai",
		State:      "Maharashtra",
		PostalCode: "400001",
		Country:    "India",
		Phone:      "+91 98765 43210",
	}
}

func authedSessions() *mockSessions {
	return &mockSessions{session: &session.Session{
		Profile: session.Profile{ID: "u1", Name: "Asha", Email: "asha@example.test"},
		Token:   "tok",
	}}
}

func TestPlaceOrder_RequiresSession(t *testing.T) {
	orders := &mockOrderAPI{id: "o1"}
	o := New(&mockCart{items: []cart.LineItem{lineItem("p1", "10", 1)}}, &mockSessions{}, orders)

	_, err := o.PlaceOrder(context.Background(), validDetails(), PaymentCashOnDelivery)
	require.ErrorIs(t, err, ErrNotAuthenticated)
	assert.Zero(t, orders.calls, "no network call on missing session")
}

func TestPlaceOrder_RequiresNonEmptyCart(t *testing.T) {
	orders := &mockOrderAPI{id: "o1"}
	o := New(&mockCart{}, authedSessions(), orders)

	_, err := o.PlaceOrder(context.Background(), validDetails(), PaymentCashOnDelivery)
	require.ErrorIs(t, err, ErrEmptyCart)
	assert.Zero(t, orders.calls, "no network call on empty cart")
}

func TestPlaceOrder_RequiresShippingFields(t *testing.T) {
	orders := &mockOrderAPI{id: "o1"}
	o := New(&mockCart{items: []cart.LineItem{lineItem("p1", "10", 1)}}, authedSessions(), orders)

	details := validDetails()
	details.City = "  "

	_, err := o.PlaceOrder(context.Background(), details, PaymentCashOnDelivery)

	var missing *MissingFieldError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "city", missing.Field)
	assert.Zero(t, orders.calls)
}

func TestPlaceOrder_SuccessClearsCart(t *testing.T) {
	c := &mockCart{items: []cart.LineItem{lineItem("p1", "500", 1)}}
	orders := &mockOrderAPI{id: "order-42"}
	o := New(c, authedSessions(), orders)

	id, err := o.PlaceOrder(context.Background(), validDetails(), PaymentCashOnDelivery)
	require.NoError(t, err)

	assert.Equal(t, "order-42", id)
	assert.Empty(t, c.Items())
	assert.Equal(t, 1, orders.calls)
}

func TestPlaceOrder_FailureLeavesCartUntouched(t *testing.T) {
	c := &mockCart{items: []cart.LineItem{lineItem("p1", "500", 1)}}
	orders := &mockOrderAPI{err: errors.New("Out of stock")}
	o := New(c, authedSessions(), orders)

	_, err := o.PlaceOrder(context.Background(), validDetails(), PaymentCashOnDelivery)
	require.Error(t, err)
	assert.Len(t, c.Items(), 1, "cart kept for retry")
}

func TestPlaceOrder_ComposesSubmission(t *testing.T) {
	c := &mockCart{items: []cart.LineItem{
		lineItem("p1", "300", 2),
		lineItem("p2", "150.50", 1),
	}}
	orders := &mockOrderAPI{id: "o1"}
	o := New(c, authedSessions(), orders)

	details := validDetails()
	details.Landmark = "Near Apollo Hospital"

	_, err := o.PlaceOrder(context.Background(), details, "")
	require.NoError(t, err)

	req := orders.last
	require.Len(t, req.OrderItems, 2)
	assert.Equal(t, "p1", req.OrderItems[0].Product, "line item re-tagged with product id")
	assert.Equal(t, 2, req.OrderItems[0].Quantity)
	assert.Equal(t, "12 Hill Rd (Landmark: Near Apollo Hospital)", req.ShippingAddress.Address)
	assert.Equal(t, PaymentCashOnDelivery, req.PaymentMethod, "payment defaults to COD")

	// 300*2 + 150.50 = 750.50, under the free shipping threshold.
	assert.True(t, req.ItemsPrice.Equal(decimal.RequireFromString("750.50")))
	assert.True(t, req.ShippingPrice.Equal(decimal.NewFromInt(50)))
	assert.True(t, req.TotalPrice.Equal(decimal.RequireFromString("800.50")))
}

func TestQuoteItems_ShippingBoundary(t *testing.T) {
	tests := []struct {
		name         string
		subtotal     string
		wantShipping int64
	}{
		{"subtotal exactly 999 pays flat fee", "999", 50},
		{"subtotal 999.01 ships free", "999.01", 0},
		{"subtotal 1000 ships free", "1000", 0},
		{"small order pays flat fee", "49.50", 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := QuoteItems([]cart.LineItem{lineItem("p1", tt.subtotal, 1)})

			assert.True(t, q.ShippingPrice.Equal(decimal.NewFromInt(tt.wantShipping)),
				"shipping = %s", q.ShippingPrice)
			assert.True(t, q.TotalPrice.Equal(q.ItemsPrice.Add(q.ShippingPrice)))
			assert.Equal(t, tt.wantShipping == 0, q.FreeShipping())
		})
	}
}

func TestQuoteItems_EmptyCart(t *testing.T) {
	q := QuoteItems(nil)
	assert.True(t, q.ItemsPrice.IsZero())
	assert.True(t, q.ShippingPrice.Equal(decimal.NewFromInt(50)))
}
