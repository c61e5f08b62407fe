package commands

import (
	"fmt"

	"github.com/courtly-dev/courtly/internal/cli/client"
	"github.com/courtly-dev/courtly/internal/cli/config"
	"github.com/courtly-dev/courtly/internal/routegate"
	"github.com/courtly-dev/courtly/internal/session"
)

// appContext bundles what every command needs: the API client, the
// session store and the navigation gate over it.
type appContext struct {
	client *client.Client
	store  session.Store
	query  *session.Query
	gate   *routegate.Gate
}

func newAppContext() (*appContext, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	store := session.NewFileStore()
	query := session.NewQuery(store)

	return &appContext{
		client: client.New(cfg.Server, store),
		store:  store,
		query:  query,
		gate:   routegate.New(query),
	}, nil
}

// runGated evaluates the navigation gate for the screen's route before
// running it. A denied navigation prints where the visitor was sent and
// succeeds: redirects are navigation outcomes, not errors.
func runGated(path string, fn func(ctx *appContext) error) func() error {
	return func() error {
		ctx, err := newAppContext()
		if err != nil {
			return err
		}

		decision := ctx.gate.Evaluate(path)
		switch decision.Action {
		case routegate.Allow:
			return fn(ctx)
		case routegate.RedirectLogin:
			fmt.Printf("Not signed in. Redirected to %s\n", decision.RedirectURL())
			fmt.Println("Run 'courtly login' to authenticate.")
			return nil
		default:
			fmt.Printf("Redirected to %s\n", decision.RedirectURL())
			return nil
		}
	}
}
