package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler, token string) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{
		BaseURL: srv.URL,
		Token:   func() string { return token },
	})
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestLogin_DecodesSessionPayload(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/users/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "asha@example.test", body["email"])
		assert.Equal(t, "pw", body["password"])

		writeJSON(t, w, http.StatusOK, map[string]any{
			"_id":     "u1",
			"name":    "Asha",
			"email":   "asha@example.test",
			"isAdmin": true,
			"token":   "tok-123",
		})
	}), "")

	s, err := c.Login(context.Background(), "asha@example.test", "pw")
	require.NoError(t, err)
	assert.Equal(t, "tok-123", s.Token)
	assert.Equal(t, "u1", s.ID)
	assert.True(t, s.IsAdmin)
}

func TestLogin_ServerMessageSurfaced(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnauthorized, map[string]string{
			"message": "Invalid email or password",
		})
	}), "")

	_, err := c.Login(context.Background(), "asha@example.test", "wrong")
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Invalid email or password", apiErr.Message)
}

func TestDoJSON_GenericFallbackWhenBodyHasNoMessage(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, "boom")
	}), "")

	_, err := c.ListProducts(context.Background())
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusText(http.StatusInternalServerError), apiErr.Message)
}

func TestLogin_MissingTokenRejectedAtBoundary(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]string{"name": "Asha"})
	}), "")

	_, err := c.Login(context.Background(), "asha@example.test", "pw")
	require.Error(t, err)
}

func TestPlaceOrder_SendsBearerAndBody(t *testing.T) {
	var got PlaceOrderRequest
	var auth string

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/orders", r.URL.Path)
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(t, w, http.StatusCreated, map[string]string{"_id": "order-1"})
	}), "tok-123")

	placed, err := c.PlaceOrder(context.Background(), PlaceOrderRequest{
		OrderItems: []OrderItem{{
			Product:  "p1",
			Name:     "Rose Soap",
			Price:    decimal.RequireFromString("12.50"),
			Quantity: 2,
		}},
		ShippingAddress: ShippingAddress{
			Address:    "12 Hill Rd",
			City:       "Mumbai",
			State:      "Maharashtra",
			PostalCode: "400001",
			Country:    "India",
			Phone:      "+91 98765 43210",
		},
		PaymentMethod: "COD",
		ItemsPrice:    decimal.RequireFromString("25.00"),
		ShippingPrice: decimal.NewFromInt(50),
		TotalPrice:    decimal.RequireFromString("75.00"),
	})
	require.NoError(t, err)

	assert.Equal(t, "order-1", placed.ID)
	assert.Equal(t, "Bearer tok-123", auth)
	require.Len(t, got.OrderItems, 1)
	assert.Equal(t, "p1", got.OrderItems[0].Product)
	assert.True(t, got.TotalPrice.Equal(decimal.RequireFromString("75.00")))
}

func TestUpdateOrderStatus_UsesStatusEndpoint(t *testing.T) {
	var path, status string

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		status = body["status"]
		w.WriteHeader(http.StatusOK)
	}), "tok-123")

	require.NoError(t, c.UpdateOrderStatus(context.Background(), "order-1", OrderStatusShipped))
	assert.Equal(t, "/api/orders/order-1/status", path)
	assert.Equal(t, "Shipped", status)
}

func TestListProducts_DecodesPrices(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `[
			{"_id":"p1","name":"Rose Soap","price":12.5,"category":"Soaps","countInStock":3},
			{"_id":"p2","name":"Hair Oil","price":249,"category":"Hair Oil","countInStock":0}
		]`)
	}), "")

	products, err := c.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.True(t, products[0].Price.Equal(decimal.RequireFromString("12.5")))
	assert.True(t, products[0].InStock())
	assert.False(t, products[1].InStock())
}

func TestGet_RequestIDHeaderStamped(t *testing.T) {
	var requestID string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID = r.Header.Get("X-Request-ID")
		writeJSON(t, w, http.StatusOK, []any{})
	}), "")

	_, err := c.ListBanners(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, requestID)
}

func TestUploadImage_MultipartAndBareStringResponse(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/upload", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		file, header, err := r.FormFile("image")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "rose.jpg", header.Filename)

		content, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "fake image bytes", string(content))

		_, _ = io.WriteString(w, "/uploads/rose.jpg")
	}), "tok-123")

	url, err := c.UploadImage(context.Background(), "assets/rose.jpg", strings.NewReader("fake image bytes"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/rose.jpg", url)
}

func TestUploadImage_JSONStringResponse(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, "/uploads/rose.jpg")
	}), "")

	url, err := c.UploadImage(context.Background(), "rose.jpg", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/rose.jpg", url)
}

func TestDeliveryEmail_RoundTrip(t *testing.T) {
	var putValue string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/config/deliveryEmail", r.URL.Path)
		switch r.Method {
		case http.MethodGet:
			writeJSON(t, w, http.StatusOK, map[string]string{"value": "orders@example.test"})
		case http.MethodPut:
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			putValue = body["value"]
			w.WriteHeader(http.StatusOK)
		}
	}), "tok-123")

	email, err := c.DeliveryEmail(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "orders@example.test", email)

	require.NoError(t, c.SetDeliveryEmail(context.Background(), "ops@example.test"))
	assert.Equal(t, "ops@example.test", putValue)
}
