// Package app wires the storefront client together: configuration, the
// persisted state store, the API client, and the cart/session/checkout
// managers.
package app

import (
	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/xenking/blossom-storefront/internal/api"
	"github.com/xenking/blossom-storefront/internal/domain/cart"
	"github.com/xenking/blossom-storefront/internal/domain/checkout"
	"github.com/xenking/blossom-storefront/internal/domain/session"
	"github.com/xenking/blossom-storefront/internal/storage/kvstore"
)

// App holds the assembled client. It is the single wiring point: commands
// only ever touch these managers, never the store or transport directly.
type App struct {
	Config   *Config
	Log      *zap.Logger
	Store    *kvstore.Store
	API      *api.Client
	Cart     *cart.Manager
	Session  *session.Holder
	Checkout *checkout.Orchestrator
}

// New opens the state store, builds the API client, and restores cart and
// session state from previous runs.
func New(lg *zap.Logger, cfg *Config) (*App, error) {
	store, err := kvstore.Open(cfg.StatePath)
	if err != nil {
		return nil, errors.Wrap(err, "open state store")
	}

	// The session holder needs the API client for auth calls, and the
	// client needs the holder for bearer tokens; the token func closes over
	// the holder variable to break the construction cycle.
	var holder *session.Holder
	client := api.NewClient(api.Config{
		BaseURL: cfg.APIURL,
		Timeout: cfg.HTTPTimeout,
		Token: func() string {
			if holder == nil {
				return ""
			}
			return holder.Token()
		},
	})
	holder = session.NewHolder(store, client, lg.Named("session"))

	cartMgr := cart.NewManager(store, lg.Named("cart"))

	return &App{
		Config:   cfg,
		Log:      lg,
		Store:    store,
		API:      client,
		Cart:     cartMgr,
		Session:  holder,
		Checkout: checkout.New(cartMgr, holder, client),
	}, nil
}

// Close releases the state store.
func (a *App) Close() error {
	return a.Store.Close()
}
