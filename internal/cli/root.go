// Package cli implements the blossom command tree. Commands are thin views:
// they parse input, invoke the cart/session/checkout managers or the API
// client, and print results. State lives in the managers, never here.
package cli

import (
	"github.com/go-faster/sdk/zctx"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xenking/blossom-storefront/internal/app"
)

// CLI carries the assembled application across command callbacks.
type CLI struct {
	app     *app.App
	verbose bool
}

// NewRootCommand builds the blossom command tree.
func NewRootCommand() *cobra.Command {
	c := &CLI{}

	root := &cobra.Command{
		Use:           "blossom",
		Short:         "Command-line client for the Blossom storefront",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.init(cmd)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			c.close()
		},
	}
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		c.newLoginCmd(),
		c.newRegisterCmd(),
		c.newVerifyCmd(),
		c.newResendOTPCmd(),
		c.newLogoutCmd(),
		c.newWhoamiCmd(),
		c.newShopCmd(),
		c.newProductCmd(),
		c.newBannersCmd(),
		c.newCategoriesCmd(),
		c.newCartCmd(),
		c.newCheckoutCmd(),
		c.newProfileCmd(),
		c.newOrdersCmd(),
		c.newAdminCmd(),
	)
	return root
}

// init loads configuration, assembles the App, and injects the logger into
// the command context so the API transport can pick it up.
func (c *CLI) init(cmd *cobra.Command) error {
	lg := newLogger(c.verbose)

	cfg, err := app.LoadConfig()
	if err != nil {
		return err
	}

	a, err := app.New(lg, cfg)
	if err != nil {
		return err
	}
	c.app = a

	cmd.SetContext(zctx.Base(cmd.Context(), lg))
	return nil
}

func (c *CLI) close() {
	if c.app == nil {
		return
	}
	if err := c.app.Close(); err != nil {
		c.app.Log.Warn("Closing state store failed", zap.Error(err))
	}
	_ = c.app.Log.Sync()
}

// newLogger builds a console logger on stderr. Diagnostics stay at warn
// unless --verbose is set; command output goes to stdout separately.
func newLogger(verbose bool) *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	lg, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return lg
}
