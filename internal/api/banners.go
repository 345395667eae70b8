package api

import (
	"context"
	"net/http"

	"github.com/xenking/blossom-storefront/internal/domain/catalog"
)

// BannerUpdate is the editable field set for an admin banner edit.
type BannerUpdate struct {
	Title    string `json:"title"`
	Image    string `json:"image"`
	Link     string `json:"link"`
	IsActive bool   `json:"isActive"`
}

// ListBanners returns all promotional banners.
func (c *Client) ListBanners(ctx context.Context) ([]catalog.Banner, error) {
	var banners []catalog.Banner
	if err := c.doJSON(ctx, http.MethodGet, "/api/banners", nil, &banners, callOpts{}); err != nil {
		return nil, err
	}
	return banners, nil
}

// CreateBanner creates an empty draft banner for subsequent editing.
// Requires an admin session.
func (c *Client) CreateBanner(ctx context.Context) (*catalog.Banner, error) {
	var b catalog.Banner
	if err := c.doJSON(ctx, http.MethodPost, "/api/banners", struct{}{}, &b, callOpts{authed: true}); err != nil {
		return nil, err
	}
	return &b, nil
}

// UpdateBanner replaces a banner's editable fields. Requires an admin
// session.
func (c *Client) UpdateBanner(ctx context.Context, id string, update BannerUpdate) error {
	return c.doJSON(ctx, http.MethodPut, "/api/banners/"+id, update, nil, callOpts{authed: true})
}

// DeleteBanner removes a banner. Requires an admin session.
func (c *Client) DeleteBanner(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/banners/"+id, nil, nil, callOpts{authed: true})
}
