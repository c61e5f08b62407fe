package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/courtly-dev/courtly/internal/routegate"
)

// NewWhoamiCmd creates the whoami command
func NewWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := newAppContext()
			if err != nil {
				return err
			}

			if !ctx.query.HasValidSession() {
				fmt.Println("Not signed in.")
				return nil
			}

			fmt.Printf("User:  %s (#%d)\n", ctx.query.DisplayName(), ctx.query.UserID())
			fmt.Printf("Role:  %s\n", ctx.query.CurrentRole())
			if id := ctx.query.ClientID(); id != nil {
				fmt.Printf("Cliente id:    %d\n", *id)
			}
			if id := ctx.query.TrainerID(); id != nil {
				fmt.Printf("Entrenador id: %d\n", *id)
			}
			fmt.Printf("Home:  %s\n", routegate.HomeRoute(ctx.query.CurrentRole()))

			return nil
		},
	}
}
