package cli

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/blossom-storefront/internal/api"
	"github.com/xenking/blossom-storefront/internal/domain/cart"
	"github.com/xenking/blossom-storefront/internal/domain/catalog"
	"github.com/xenking/blossom-storefront/internal/domain/checkout"
)

func TestParseFilter(t *testing.T) {
	tests := []struct {
		name      string
		category  string
		priceBand string
		sortBy    string
		want      catalog.Filter
		wantErr   bool
	}{
		{
			name:      "defaults",
			priceBand: "all",
			sortBy:    "newest",
			want:      catalog.Filter{Price: catalog.PriceAll, Sort: catalog.SortNewest},
		},
		{
			name:      "band and sort",
			category:  "Shampoo",
			priceBand: "20-50",
			sortBy:    "price-high",
			want: catalog.Filter{
				Category: "Shampoo",
				Price:    catalog.Price20To50,
				Sort:     catalog.SortPriceHigh,
			},
		},
		{
			name:      "unknown price band",
			priceBand: "cheap",
			sortBy:    "newest",
			wantErr:   true,
		},
		{
			name:      "unknown sort",
			priceBand: "all",
			sortBy:    "alphabetical",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseFilter(tt.category, tt.priceBand, tt.sortBy)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatchesOrderTab(t *testing.T) {
	processing := api.Order{Status: api.OrderStatusProcessing}
	shipped := api.Order{Status: api.OrderStatusShipped}
	delivered := api.Order{Status: api.OrderStatusDelivered}
	cancelled := api.Order{Status: api.OrderStatusCancelled}

	assert.True(t, matchesOrderTab(processing, "all"))
	assert.True(t, matchesOrderTab(delivered, "all"))

	assert.True(t, matchesOrderTab(processing, "active"))
	assert.True(t, matchesOrderTab(shipped, "active"))
	assert.False(t, matchesOrderTab(delivered, "active"))
	assert.False(t, matchesOrderTab(cancelled, "active"))

	assert.True(t, matchesOrderTab(delivered, "delivered"))
	assert.False(t, matchesOrderTab(shipped, "delivered"))
}

func TestRenderQuote(t *testing.T) {
	item := func(p int64, qty int) cart.LineItem {
		return cart.LineItem{ID: "p1", Name: "Soap", Price: decimal.NewFromInt(p), Quantity: qty}
	}

	var flat strings.Builder
	renderQuote(&flat, checkout.QuoteItems([]cart.LineItem{item(100, 2)}))
	assert.Contains(t, flat.String(), "Shipping: ₹50.00")
	assert.Contains(t, flat.String(), "Total:    ₹250.00")

	var free strings.Builder
	renderQuote(&free, checkout.QuoteItems([]cart.LineItem{item(500, 2)}))
	assert.Contains(t, free.String(), "Shipping: free")
	assert.Contains(t, free.String(), "Total:    ₹1000.00")
}

func TestRenderProductsMarksOutOfStock(t *testing.T) {
	products := []catalog.Product{
		{ID: "p1", Name: "Soap", Category: "Soaps", Price: decimal.NewFromInt(45), CountInStock: 3},
		{ID: "p2", Name: "Gel", Category: "Aloevera Gel", Price: decimal.NewFromInt(120)},
	}

	var out strings.Builder
	renderProducts(&out, products)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "3")
	assert.Contains(t, lines[2], "out of stock")
}
