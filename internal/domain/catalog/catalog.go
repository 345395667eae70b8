// Package catalog holds the storefront's product and banner models together
// with the client-side browsing logic (category, price, and sort filters).
package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog item as returned by the storefront API. Price fields
// use decimal to keep currency arithmetic exact.
type Product struct {
	ID            string          `json:"_id"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	OriginalPrice decimal.Decimal `json:"originalPrice"`
	Image         string          `json:"image"`
	Images        []string        `json:"images,omitempty"`
	Brand         string          `json:"brand,omitempty"`
	Category      string          `json:"category"`
	CountInStock  int             `json:"countInStock"`
	Description   string          `json:"description,omitempty"`
	Ingredients   string          `json:"ingredients,omitempty"`
	Benefits      string          `json:"benefits,omitempty"`
	HowToUse      string          `json:"howToUse,omitempty"`
	CreatedAt     time.Time       `json:"createdAt,omitzero"`
}

// InStock reports whether the product can currently be added to a cart.
func (p Product) InStock() bool {
	return p.CountInStock > 0
}

// Banner is a promotional banner shown on the storefront home page.
type Banner struct {
	ID       string `json:"_id"`
	Title    string `json:"title,omitempty"`
	Image    string `json:"image"`
	Link     string `json:"link,omitempty"`
	IsActive bool   `json:"isActive"`
}

// Category describes one entry of the fixed storefront category tree.
type Category struct {
	ID            string
	Name          string
	Subcategories []string
}

// Categories is the storefront's category tree. Product categories reference
// either a top-level name or a subcategory value.
var Categories = []Category{
	{
		ID:   "wax-powder",
		Name: "Painless Wax Powder",
		Subcategories: []string{
			"Facial Wax Powder",
			"Body Wax Powder",
			"Bikini Wax Powder",
		},
	},
	{ID: "shampoo", Name: "Shampoo"},
	{ID: "facewash", Name: "Facewash"},
	{ID: "bodywash", Name: "Bodywash"},
	{ID: "hair-oil", Name: "Hair Oil"},
	{ID: "soaps", Name: "Soaps"},
	{ID: "aloevera-gel", Name: "Aloevera Gel"},
	{ID: "body-lotion", Name: "Body Lotion"},
	{ID: "face-moisturizer", Name: "Face Moisturizer"},
	{ID: "hair-colour-powders", Name: "Hair Colour Powders"},
}
