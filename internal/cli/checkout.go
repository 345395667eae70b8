package cli

import (
	"fmt"

	"github.com/go-faster/errors"
	"github.com/spf13/cobra"

	"github.com/xenking/blossom-storefront/internal/domain/checkout"
)

func (c *CLI) newCheckoutCmd() *cobra.Command {
	var (
		details checkout.ShippingDetails
		payment string
	)

	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Place an order for the current cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			quote := checkout.QuoteItems(c.app.Cart.Items())
			if c.app.Cart.Len() > 0 {
				renderQuote(out, quote)
				fmt.Fprintln(out)
			}

			orderID, err := c.app.Checkout.PlaceOrder(cmd.Context(), details, payment)
			switch {
			case errors.Is(err, checkout.ErrNotAuthenticated):
				return errors.New("you are not logged in; run `blossom login <email>` and check out again")
			case errors.Is(err, checkout.ErrEmptyCart):
				return errors.New("your cart is empty; add items with `blossom cart add <product-id>`")
			case err != nil:
				return errors.Wrap(err, "place order")
			}

			fmt.Fprintf(out, "Order placed. ID: %s\n", orderID)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&details.Address, "address", "", "street address")
	flags.StringVar(&details.Landmark, "landmark", "", "nearby landmark (optional)")
	flags.StringVar(&details.City, "city", "", "city")
	flags.StringVar(&details.State, "state", "", "state")
	flags.StringVar(&details.PostalCode, "postal-code", "", "postal code")
	flags.StringVar(&details.Country, "country", "", "country")
	flags.StringVar(&details.Phone, "phone", "", "contact phone number")
	flags.StringVar(&payment, "payment", checkout.PaymentCashOnDelivery, "payment method")
	return cmd
}
