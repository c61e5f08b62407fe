package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/courtly-dev/courtly/internal/routegate"
)

// NewOpenCmd creates the open command, which reports how the navigation
// gate resolves an arbitrary route for the current session.
func NewOpenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open <path>",
		Short: "Resolve a route through the navigation gate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := newAppContext()
			if err != nil {
				return err
			}

			path := args[0]
			decision := ctx.gate.Evaluate(path)

			switch decision.Action {
			case routegate.Allow:
				fmt.Printf("%s: allowed (area %s)\n", path, routegate.ResolveArea(path))
			case routegate.RedirectLogin:
				fmt.Printf("%s: redirected to %s\n", path, decision.RedirectURL())
			case routegate.RedirectHome:
				fmt.Printf("%s: redirected to %s\n", path, decision.RedirectURL())
			}

			return nil
		},
	}
}
