package cli

import (
	"fmt"

	"github.com/go-faster/errors"
	"github.com/spf13/cobra"

	"github.com/xenking/blossom-storefront/internal/domain/cart"
	"github.com/xenking/blossom-storefront/internal/domain/checkout"
)

func (c *CLI) newCartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Manage the local shopping cart",
	}
	cmd.AddCommand(
		c.newCartShowCmd(),
		c.newCartAddCmd(),
		c.newCartRemoveCmd(),
		c.newCartIncCmd(),
		c.newCartDecCmd(),
		c.newCartClearCmd(),
	)
	return cmd
}

func (c *CLI) newCartShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show cart contents and the checkout quote",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			items := c.app.Cart.Items()
			out := cmd.OutOrStdout()
			if len(items) == 0 {
				fmt.Fprintln(out, "Your cart is empty.")
				return nil
			}

			renderCart(out, items)
			fmt.Fprintln(out)
			renderQuote(out, checkout.QuoteItems(items))
			return nil
		},
	}
}

func (c *CLI) newCartAddCmd() *cobra.Command {
	var qty int

	cmd := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add a product to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.app.API.GetProduct(cmd.Context(), args[0])
			if err != nil {
				return errors.Wrap(err, "get product")
			}
			if !p.InStock() {
				return errors.Errorf("%s is out of stock", p.Name)
			}

			c.app.Cart.AddProduct(*p, qty)
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s to the cart.\n", p.Name)
			return nil
		},
	}
	cmd.Flags().IntVar(&qty, "qty", 1, "quantity to add")
	return cmd
}

func (c *CLI) newCartRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <product-id>",
		Short: "Remove a line item from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.app.Cart.Remove(args[0])
			fmt.Fprintln(cmd.OutOrStdout(), "Removed.")
			return nil
		},
	}
}

func (c *CLI) newCartIncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inc <product-id>",
		Short: "Increase a line item's quantity by one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.app.Cart.UpdateQuantity(args[0], cart.Increment)
			renderCart(cmd.OutOrStdout(), c.app.Cart.Items())
			return nil
		},
	}
}

func (c *CLI) newCartDecCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dec <product-id>",
		Short: "Decrease a line item's quantity by one (never below one)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.app.Cart.UpdateQuantity(args[0], cart.Decrement)
			renderCart(cmd.OutOrStdout(), c.app.Cart.Items())
			return nil
		},
	}
}

func (c *CLI) newCartClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove everything from the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c.app.Cart.Clear()
			fmt.Fprintln(cmd.OutOrStdout(), "Cart cleared.")
			return nil
		},
	}
}
