package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/go-faster/errors"
	"github.com/spf13/cobra"
)

func (c *CLI) newLoginCmd() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "login <email>",
		Short: "Log in with email and password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := resolvePassword(cmd, password, "Password: ")
			if err != nil {
				return err
			}

			if err := c.app.Session.Login(cmd.Context(), args[0], pw); err != nil {
				return errors.Wrap(err, "login")
			}

			p := c.app.Session.Current().Profile
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s <%s>\n", p.Name, p.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "account password (prompted when omitted)")
	return cmd
}

func (c *CLI) newRegisterCmd() *cobra.Command {
	var (
		password string
		confirm  string
	)

	cmd := &cobra.Command{
		Use:   "register <name> <email>",
		Short: "Create an account and request an OTP",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := resolvePassword(cmd, password, "Password: ")
			if err != nil {
				return err
			}
			cf, err := resolvePassword(cmd, confirm, "Confirm password: ")
			if err != nil {
				return err
			}
			// Mismatch is caught locally so no half-filled registration
			// reaches the server.
			if pw != cf {
				return errors.New("passwords do not match")
			}

			if err := c.app.Session.Register(cmd.Context(), args[0], args[1], pw); err != nil {
				return errors.Wrap(err, "register")
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Registered. An OTP was sent to %s.\n", args[1])
			fmt.Fprintf(cmd.OutOrStdout(), "Run: blossom verify %s <otp>\n", args[1])
			return nil
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "account password (prompted when omitted)")
	cmd.Flags().StringVar(&confirm, "confirm", "", "password confirmation (prompted when omitted)")
	return cmd
}

func (c *CLI) newVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <email> <otp>",
		Short: "Verify a registration OTP and log in",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.Session.VerifyOTP(cmd.Context(), args[0], args[1]); err != nil {
				return errors.Wrap(err, "verify otp")
			}

			p := c.app.Session.Current().Profile
			fmt.Fprintf(cmd.OutOrStdout(), "Account verified. Logged in as %s <%s>\n", p.Name, p.Email)
			return nil
		},
	}
}

func (c *CLI) newResendOTPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resend-otp <email>",
		Short: "Request a fresh registration OTP",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.Session.ResendOTP(cmd.Context(), args[0]); err != nil {
				return errors.Wrap(err, "resend otp")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "A new OTP was sent to %s.\n", args[0])
			return nil
		},
	}
}

func (c *CLI) newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c.app.Session.Logout()
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}

func (c *CLI) newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess := c.app.Session.Current()
			if sess == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Not logged in.")
				return nil
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Name:  %s\n", sess.Name)
			fmt.Fprintf(out, "Email: %s\n", sess.Email)
			if sess.IsAdmin {
				fmt.Fprintln(out, "Role:  admin")
			}
			return nil
		},
	}
}

// resolvePassword returns the flag value when set, otherwise reads one line
// from the command's stdin.
func resolvePassword(cmd *cobra.Command, flag, prompt string) (string, error) {
	if flag != "" {
		return flag, nil
	}

	fmt.Fprint(cmd.OutOrStdout(), prompt)
	r := bufio.NewReader(cmd.InOrStdin())
	line, err := r.ReadString('\n')
	if err != nil && line == "" {
		return "", errors.Wrap(err, "read password")
	}

	pw := strings.TrimRight(line, "\r\n")
	if pw == "" {
		return "", errors.New("password must not be empty")
	}
	return pw, nil
}
