package catalog

import (
	"slices"

	"github.com/shopspring/decimal"
)

// PriceRange selects a price band for shop filtering.
type PriceRange string

const (
	PriceAll     PriceRange = "all"
	PriceUnder20 PriceRange = "0-20"
	Price20To50  PriceRange = "20-50"
	PriceOver50  PriceRange = "50+"
)

// SortBy selects the ordering of shop results.
type SortBy string

const (
	// SortNewest orders by creation time, most recent first.
	SortNewest SortBy = "newest"
	// SortPriceLow orders by price ascending.
	SortPriceLow SortBy = "price-low"
	// SortPriceHigh orders by price descending.
	SortPriceHigh SortBy = "price-high"
)

var (
	price20 = decimal.NewFromInt(20)
	price50 = decimal.NewFromInt(50)
)

// Filter describes the shop view's client-side filter state. Zero values
// mean "no restriction" for Category and Price, and newest-first for Sort.
type Filter struct {
	Category string
	Price    PriceRange
	Sort     SortBy
}

// Apply returns the products matching the filter, ordered per Sort. The
// input slice is not modified.
func (f Filter) Apply(products []Product) []Product {
	result := make([]Product, 0, len(products))
	for _, p := range products {
		if f.Category != "" && f.Category != "All" && p.Category != f.Category {
			continue
		}
		if !f.matchesPrice(p.Price) {
			continue
		}
		result = append(result, p)
	}

	switch f.Sort {
	case SortPriceLow:
		slices.SortStableFunc(result, func(a, b Product) int {
			return a.Price.Cmp(b.Price)
		})
	case SortPriceHigh:
		slices.SortStableFunc(result, func(a, b Product) int {
			return b.Price.Cmp(a.Price)
		})
	case SortNewest, "":
		slices.SortStableFunc(result, func(a, b Product) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		})
	}

	return result
}

func (f Filter) matchesPrice(price decimal.Decimal) bool {
	switch f.Price {
	case PriceUnder20:
		return price.LessThanOrEqual(price20)
	case Price20To50:
		return price.GreaterThan(price20) && price.LessThanOrEqual(price50)
	case PriceOver50:
		return price.GreaterThan(price50)
	default:
		return true
	}
}
