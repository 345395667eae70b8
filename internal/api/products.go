package api

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/xenking/blossom-storefront/internal/domain/catalog"
)

// ProductUpdate is the full editable field set for an admin product edit.
type ProductUpdate struct {
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	Description   string          `json:"description"`
	Image         string          `json:"image"`
	Images        []string        `json:"images"`
	Brand         string          `json:"brand"`
	Category      string          `json:"category"`
	CountInStock  int             `json:"countInStock"`
	Ingredients   string          `json:"ingredients"`
	Benefits      string          `json:"benefits"`
	HowToUse      string          `json:"howToUse"`
	OriginalPrice decimal.Decimal `json:"originalPrice"`
}

// ListProducts returns the full catalog.
func (c *Client) ListProducts(ctx context.Context) ([]catalog.Product, error) {
	var products []catalog.Product
	if err := c.doJSON(ctx, http.MethodGet, "/api/products", nil, &products, callOpts{}); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct returns a single product by ID.
func (c *Client) GetProduct(ctx context.Context, id string) (*catalog.Product, error) {
	var p catalog.Product
	if err := c.doJSON(ctx, http.MethodGet, "/api/products/"+id, nil, &p, callOpts{}); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateProduct creates an empty draft product for subsequent editing.
// Requires an admin session.
func (c *Client) CreateProduct(ctx context.Context) (*catalog.Product, error) {
	var p catalog.Product
	if err := c.doJSON(ctx, http.MethodPost, "/api/products", struct{}{}, &p, callOpts{authed: true}); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProduct replaces a product's editable fields. Requires an admin
// session.
func (c *Client) UpdateProduct(ctx context.Context, id string, update ProductUpdate) error {
	return c.doJSON(ctx, http.MethodPut, "/api/products/"+id, update, nil, callOpts{authed: true})
}

// DeleteProduct removes a product. Requires an admin session.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/products/"+id, nil, nil, callOpts{authed: true})
}
