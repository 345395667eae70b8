package cli

import (
	"fmt"

	"github.com/go-faster/errors"
	"github.com/spf13/cobra"

	"github.com/xenking/blossom-storefront/internal/api"
)

func (c *CLI) newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "View or update your account",
	}
	cmd.AddCommand(c.newProfileShowCmd(), c.newProfileUpdateCmd())
	return cmd
}

func (c *CLI) newProfileShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the stored profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess := c.app.Session.Current()
			if sess == nil {
				return errors.New("you are not logged in")
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Name:    %s\n", sess.Name)
			fmt.Fprintf(out, "Email:   %s\n", sess.Email)
			if sess.Phone != "" {
				fmt.Fprintf(out, "Phone:   %s\n", sess.Phone)
			}
			if sess.Address != "" {
				fmt.Fprintf(out, "Address: %s\n", sess.Address)
			}
			return nil
		},
	}
}

func (c *CLI) newProfileUpdateCmd() *cobra.Command {
	var (
		name     string
		email    string
		password string
		confirm  string
		phone    string
		address  string
	)

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update your account details",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess := c.app.Session.Current()
			if sess == nil {
				return errors.New("you are not logged in")
			}

			// Unset flags keep the stored values, like the profile form
			// pre-filled from the current session.
			update := api.ProfileUpdate{
				ID:      sess.ID,
				Name:    sess.Name,
				Email:   sess.Email,
				Phone:   sess.Phone,
				Address: sess.Address,
			}
			flags := cmd.Flags()
			if flags.Changed("name") {
				update.Name = name
			}
			if flags.Changed("email") {
				update.Email = email
			}
			if flags.Changed("phone") {
				update.Phone = phone
			}
			if flags.Changed("address") {
				update.Address = address
			}
			if flags.Changed("password") {
				if password != confirm {
					return errors.New("passwords do not match")
				}
				update.Password = password
			}

			refreshed, err := c.app.API.UpdateProfile(cmd.Context(), update)
			if err != nil {
				return errors.Wrap(err, "update profile")
			}
			c.app.Session.Update(refreshed)

			fmt.Fprintln(cmd.OutOrStdout(), "Profile updated.")
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&name, "name", "", "display name")
	flags.StringVar(&email, "email", "", "email address")
	flags.StringVar(&password, "password", "", "new password")
	flags.StringVar(&confirm, "confirm", "", "new password confirmation")
	flags.StringVar(&phone, "phone", "", "phone number")
	flags.StringVar(&address, "address", "", "default delivery address")
	return cmd
}

func (c *CLI) newOrdersCmd() *cobra.Command {
	var tab string

	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Show your order history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			orders, err := c.app.API.MyOrders(cmd.Context())
			if err != nil {
				return errors.Wrap(err, "list orders")
			}

			filtered := orders[:0:0]
			for _, o := range orders {
				if matchesOrderTab(o, tab) {
					filtered = append(filtered, o)
				}
			}

			if len(filtered) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No orders to show.")
				return nil
			}
			renderOrders(cmd.OutOrStdout(), filtered)
			return nil
		},
	}
	cmd.Flags().StringVar(&tab, "filter", "all", "which orders to show: all, active, delivered")
	return cmd
}

// matchesOrderTab mirrors the order history tabs: active hides finished
// orders, delivered shows only completed ones.
func matchesOrderTab(o api.Order, tab string) bool {
	switch tab {
	case "active":
		return o.Status != api.OrderStatusDelivered && o.Status != api.OrderStatusCancelled
	case "delivered":
		return o.Status == api.OrderStatusDelivered
	default:
		return true
	}
}
