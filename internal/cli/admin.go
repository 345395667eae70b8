package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"slices"

	"github.com/go-faster/errors"
	"github.com/klauspost/pgzip"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/xenking/blossom-storefront/internal/api"
	"github.com/xenking/blossom-storefront/internal/domain/catalog"
)

func (c *CLI) newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Back-office operations (admin session required)",
		// Admin access is checked locally before any request; the server
		// independently rejects non-admin tokens.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.init(cmd); err != nil {
				return err
			}
			if !c.app.Session.IsAdmin() {
				return errors.New("admin access required; log in with an admin account")
			}
			return nil
		},
	}
	cmd.AddCommand(
		c.newAdminDashboardCmd(),
		c.newAdminOrdersCmd(),
		c.newAdminProductsCmd(),
		c.newAdminBannersCmd(),
		c.newAdminUsersCmd(),
		c.newAdminSettingsCmd(),
		c.newAdminUploadCmd(),
	)
	return cmd
}

func (c *CLI) newAdminDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show store totals and recent orders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				orders   []api.Order
				products []catalog.Product
				users    []api.User
			)

			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() (err error) {
				orders, err = c.app.API.ListOrders(ctx)
				return errors.Wrap(err, "list orders")
			})
			g.Go(func() (err error) {
				products, err = c.app.API.ListProducts(ctx)
				return errors.Wrap(err, "list products")
			})
			g.Go(func() (err error) {
				users, err = c.app.API.ListUsers(ctx)
				return errors.Wrap(err, "list users")
			})
			if err := g.Wait(); err != nil {
				return err
			}

			revenue := decimal.Zero
			for _, o := range orders {
				if o.Status != api.OrderStatusCancelled {
					revenue = revenue.Add(o.TotalPrice)
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Revenue:  %s\n", price(revenue))
			fmt.Fprintf(out, "Orders:   %d\n", len(orders))
			fmt.Fprintf(out, "Products: %d\n", len(products))
			fmt.Fprintf(out, "Users:    %d\n\n", len(users))

			recent := slices.Clone(orders)
			slices.SortFunc(recent, func(a, b api.Order) int {
				return b.CreatedAt.Compare(a.CreatedAt)
			})
			if len(recent) > 7 {
				recent = recent[:7]
			}
			if len(recent) > 0 {
				fmt.Fprintln(out, "Recent orders:")
				renderOrders(out, recent)
			}
			return nil
		},
	}
}

func (c *CLI) newAdminOrdersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Manage orders",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all orders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			orders, err := c.app.API.ListOrders(cmd.Context())
			if err != nil {
				return errors.Wrap(err, "list orders")
			}
			renderOrders(cmd.OutOrStdout(), orders)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show <order-id>",
		Short: "Show one order in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			order, err := c.app.API.GetOrder(cmd.Context(), args[0])
			if err != nil {
				return errors.Wrap(err, "get order")
			}
			renderOrder(cmd.OutOrStdout(), order)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status <order-id> <status>",
		Short: "Set an order's fulfilment status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			status := args[1]
			switch status {
			case api.OrderStatusProcessing, api.OrderStatusShipped,
				api.OrderStatusDelivered, api.OrderStatusCancelled:
			default:
				return errors.Errorf("unknown status %q (use Processing, Shipped, Delivered, or Cancelled)", status)
			}

			if err := c.app.API.UpdateOrderStatus(cmd.Context(), args[0], status); err != nil {
				return errors.Wrap(err, "update status")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Order %s is now %s.\n", args[0], status)
			return nil
		},
	})

	cmd.AddCommand(c.newAdminOrdersExportCmd())
	return cmd
}

func (c *CLI) newAdminOrdersExportCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all orders as gzipped JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			orders, err := c.app.API.ListOrders(cmd.Context())
			if err != nil {
				return errors.Wrap(err, "list orders")
			}

			f, err := os.Create(outPath)
			if err != nil {
				return errors.Wrap(err, "create export file")
			}
			defer f.Close()

			gz := pgzip.NewWriter(f)
			enc := json.NewEncoder(gz)
			enc.SetIndent("", "  ")
			if err := enc.Encode(orders); err != nil {
				return errors.Wrap(err, "encode orders")
			}
			if err := gz.Close(); err != nil {
				return errors.Wrap(err, "finalize gzip stream")
			}
			if err := f.Close(); err != nil {
				return errors.Wrap(err, "close export file")
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d orders to %s\n", len(orders), outPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&outPath, "out", "orders.json.gz", "output file path")
	return cmd
}

func (c *CLI) newAdminProductsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Manage the catalog",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			products, err := c.app.API.ListProducts(cmd.Context())
			if err != nil {
				return errors.Wrap(err, "list products")
			}
			renderProducts(cmd.OutOrStdout(), products)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "create",
		Short: "Create a draft product and print its ID",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := c.app.API.CreateProduct(cmd.Context())
			if err != nil {
				return errors.Wrap(err, "create product")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created draft product %s. Fill it in with `blossom admin products update %s`.\n", p.ID, p.ID)
			return nil
		},
	})

	cmd.AddCommand(c.newAdminProductUpdateCmd())

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <product-id>",
		Short: "Delete a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.API.DeleteProduct(cmd.Context(), args[0]); err != nil {
				return errors.Wrap(err, "delete product")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Deleted.")
			return nil
		},
	})

	return cmd
}

func (c *CLI) newAdminProductUpdateCmd() *cobra.Command {
	var (
		name          string
		priceStr      string
		originalPrice string
		description   string
		image         string
		images        []string
		brand         string
		category      string
		stock         int
		ingredients   string
		benefits      string
		howToUse      string
	)

	cmd := &cobra.Command{
		Use:   "update <product-id>",
		Short: "Edit a product; unset flags keep the current values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// The edit form is pre-filled from the current product, so the
			// submission always carries the full field set.
			current, err := c.app.API.GetProduct(cmd.Context(), args[0])
			if err != nil {
				return errors.Wrap(err, "get product")
			}

			update := api.ProductUpdate{
				Name:          current.Name,
				Price:         current.Price,
				OriginalPrice: current.OriginalPrice,
				Description:   current.Description,
				Image:         current.Image,
				Images:        current.Images,
				Brand:         current.Brand,
				Category:      current.Category,
				CountInStock:  current.CountInStock,
				Ingredients:   current.Ingredients,
				Benefits:      current.Benefits,
				HowToUse:      current.HowToUse,
			}

			flags := cmd.Flags()
			if flags.Changed("name") {
				update.Name = name
			}
			if flags.Changed("price") {
				update.Price, err = decimal.NewFromString(priceStr)
				if err != nil {
					return errors.Wrap(err, "parse price")
				}
			}
			if flags.Changed("original-price") {
				update.OriginalPrice, err = decimal.NewFromString(originalPrice)
				if err != nil {
					return errors.Wrap(err, "parse original price")
				}
			}
			if flags.Changed("description") {
				update.Description = description
			}
			if flags.Changed("image") {
				update.Image = image
			}
			if flags.Changed("images") {
				update.Images = images
			}
			if flags.Changed("brand") {
				update.Brand = brand
			}
			if flags.Changed("category") {
				update.Category = category
			}
			if flags.Changed("stock") {
				update.CountInStock = stock
			}
			if flags.Changed("ingredients") {
				update.Ingredients = ingredients
			}
			if flags.Changed("benefits") {
				update.Benefits = benefits
			}
			if flags.Changed("how-to-use") {
				update.HowToUse = howToUse
			}

			if err := c.app.API.UpdateProduct(cmd.Context(), args[0], update); err != nil {
				return errors.Wrap(err, "update product")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Product updated.")
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&name, "name", "", "product name")
	flags.StringVar(&priceStr, "price", "", "selling price")
	flags.StringVar(&originalPrice, "original-price", "", "pre-discount price")
	flags.StringVar(&description, "description", "", "description")
	flags.StringVar(&image, "image", "", "primary image URL")
	flags.StringSliceVar(&images, "images", nil, "gallery image URLs")
	flags.StringVar(&brand, "brand", "", "brand")
	flags.StringVar(&category, "category", "", "category")
	flags.IntVar(&stock, "stock", 0, "count in stock")
	flags.StringVar(&ingredients, "ingredients", "", "ingredients")
	flags.StringVar(&benefits, "benefits", "", "benefits")
	flags.StringVar(&howToUse, "how-to-use", "", "usage instructions")
	return cmd
}

func (c *CLI) newAdminBannersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "banners",
		Short: "Manage promotional banners",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all banners, active or not",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			banners, err := c.app.API.ListBanners(cmd.Context())
			if err != nil {
				return errors.Wrap(err, "list banners")
			}

			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "ID\tTITLE\tLINK\tACTIVE")
			for _, b := range banners {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%t\n", b.ID, b.Title, b.Link, b.IsActive)
			}
			return tw.Flush()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "create",
		Short: "Create a draft banner and print its ID",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := c.app.API.CreateBanner(cmd.Context())
			if err != nil {
				return errors.Wrap(err, "create banner")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created draft banner %s. Fill it in with `blossom admin banners update %s`.\n", b.ID, b.ID)
			return nil
		},
	})

	cmd.AddCommand(c.newAdminBannerUpdateCmd())

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <banner-id>",
		Short: "Delete a banner",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.API.DeleteBanner(cmd.Context(), args[0]); err != nil {
				return errors.Wrap(err, "delete banner")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Deleted.")
			return nil
		},
	})

	return cmd
}

func (c *CLI) newAdminBannerUpdateCmd() *cobra.Command {
	var (
		title  string
		image  string
		link   string
		active bool
	)

	cmd := &cobra.Command{
		Use:   "update <banner-id>",
		Short: "Edit a banner; unset flags keep the current values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// There is no single-banner endpoint; the edit form loads the
			// list and picks the entry out of it.
			banners, err := c.app.API.ListBanners(cmd.Context())
			if err != nil {
				return errors.Wrap(err, "list banners")
			}
			idx := slices.IndexFunc(banners, func(b catalog.Banner) bool {
				return b.ID == args[0]
			})
			if idx < 0 {
				return errors.Errorf("banner %s not found", args[0])
			}
			current := banners[idx]

			update := api.BannerUpdate{
				Title:    current.Title,
				Image:    current.Image,
				Link:     current.Link,
				IsActive: current.IsActive,
			}
			flags := cmd.Flags()
			if flags.Changed("title") {
				update.Title = title
			}
			if flags.Changed("image") {
				update.Image = image
			}
			if flags.Changed("link") {
				update.Link = link
			}
			if flags.Changed("active") {
				update.IsActive = active
			}

			if err := c.app.API.UpdateBanner(cmd.Context(), args[0], update); err != nil {
				return errors.Wrap(err, "update banner")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Banner updated.")
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&title, "title", "", "banner title")
	flags.StringVar(&image, "image", "", "banner image URL")
	flags.StringVar(&link, "link", "", "click-through link")
	flags.BoolVar(&active, "active", false, "whether the banner is shown")
	return cmd
}

func (c *CLI) newAdminUsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage accounts",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			users, err := c.app.API.ListUsers(cmd.Context())
			if err != nil {
				return errors.Wrap(err, "list users")
			}

			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tADMIN")
			for _, u := range users {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%t\n", u.ID, u.Name, u.Email, u.IsAdmin)
			}
			return tw.Flush()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <user-id>",
		Short: "Delete an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.API.DeleteUser(cmd.Context(), args[0]); err != nil {
				return errors.Wrap(err, "delete user")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Deleted.")
			return nil
		},
	})

	return cmd
}

func (c *CLI) newAdminSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Read or change store settings",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get",
		Short: "Show the order-notification email",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			email, err := c.app.API.DeliveryEmail(cmd.Context())
			if err != nil {
				return errors.Wrap(err, "get delivery email")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Delivery email: %s\n", email)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <email>",
		Short: "Change the order-notification email",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.API.SetDeliveryEmail(cmd.Context(), args[0]); err != nil {
				return errors.Wrap(err, "set delivery email")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Delivery email updated.")
			return nil
		},
	})

	return cmd
}

func (c *CLI) newAdminUploadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload an image and print its URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return errors.Wrap(err, "open file")
			}
			defer f.Close()

			url, err := c.app.API.UploadImage(cmd.Context(), args[0], f)
			if err != nil {
				return errors.Wrap(err, "upload image")
			}
			fmt.Fprintln(cmd.OutOrStdout(), url)
			return nil
		},
	}
}
