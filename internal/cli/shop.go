package cli

import (
	"fmt"
	"io"

	"github.com/go-faster/errors"
	"github.com/spf13/cobra"

	"github.com/xenking/blossom-storefront/internal/domain/catalog"
)

func (c *CLI) newShopCmd() *cobra.Command {
	var (
		category  string
		priceBand string
		sortBy    string
	)

	cmd := &cobra.Command{
		Use:   "shop",
		Short: "Browse the catalog with category, price, and sort filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter, err := parseFilter(category, priceBand, sortBy)
			if err != nil {
				return err
			}

			products, err := c.app.API.ListProducts(cmd.Context())
			if err != nil {
				return errors.Wrap(err, "list products")
			}

			matched := filter.Apply(products)
			if len(matched) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No products match the selected filters.")
				return nil
			}
			renderProducts(cmd.OutOrStdout(), matched)
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "restrict to a category (see `blossom categories`)")
	cmd.Flags().StringVar(&priceBand, "price", "all", "price band: all, 0-20, 20-50, 50+")
	cmd.Flags().StringVar(&sortBy, "sort", "newest", "ordering: newest, price-low, price-high")
	return cmd
}

func (c *CLI) newProductCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "product <id>",
		Short: "Show a single product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.app.API.GetProduct(cmd.Context(), args[0])
			if err != nil {
				return errors.Wrap(err, "get product")
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n", p.Name)
			fmt.Fprintf(out, "ID:       %s\n", p.ID)
			fmt.Fprintf(out, "Category: %s\n", p.Category)
			if p.Brand != "" {
				fmt.Fprintf(out, "Brand:    %s\n", p.Brand)
			}
			if p.OriginalPrice.GreaterThan(p.Price) {
				fmt.Fprintf(out, "Price:    %s (was %s)\n", price(p.Price), price(p.OriginalPrice))
			} else {
				fmt.Fprintf(out, "Price:    %s\n", price(p.Price))
			}
			if p.InStock() {
				fmt.Fprintf(out, "Stock:    %d\n", p.CountInStock)
			} else {
				fmt.Fprintln(out, "Stock:    out of stock")
			}
			printSection(out, "Description", p.Description)
			printSection(out, "Ingredients", p.Ingredients)
			printSection(out, "Benefits", p.Benefits)
			printSection(out, "How to use", p.HowToUse)
			return nil
		},
	}
}

func (c *CLI) newBannersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "banners",
		Short: "Show active promotional banners",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			banners, err := c.app.API.ListBanners(cmd.Context())
			if err != nil {
				return errors.Wrap(err, "list banners")
			}

			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "TITLE\tLINK\tIMAGE")
			for _, b := range banners {
				if !b.IsActive {
					continue
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", b.Title, b.Link, b.Image)
			}
			return tw.Flush()
		},
	}
}

func (c *CLI) newCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the storefront category tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			for _, cat := range catalog.Categories {
				fmt.Fprintln(out, cat.Name)
				for _, sub := range cat.Subcategories {
					fmt.Fprintf(out, "  %s\n", sub)
				}
			}
			return nil
		},
	}
}

func parseFilter(category, priceBand, sortBy string) (catalog.Filter, error) {
	f := catalog.Filter{Category: category}

	switch catalog.PriceRange(priceBand) {
	case catalog.PriceAll, "":
		f.Price = catalog.PriceAll
	case catalog.PriceUnder20, catalog.Price20To50, catalog.PriceOver50:
		f.Price = catalog.PriceRange(priceBand)
	default:
		return f, errors.Errorf("unknown price band %q", priceBand)
	}

	switch catalog.SortBy(sortBy) {
	case catalog.SortNewest, catalog.SortPriceLow, catalog.SortPriceHigh, "":
		f.Sort = catalog.SortBy(sortBy)
	default:
		return f, errors.Errorf("unknown sort order %q", sortBy)
	}

	return f, nil
}

func printSection(out io.Writer, title, body string) {
	if body == "" {
		return
	}
	fmt.Fprintf(out, "\n%s:\n%s\n", title, body)
}
