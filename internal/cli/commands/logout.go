package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewLogoutCmd creates the logout command
func NewLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Drop the local session",
		Long: `Drop the local session.

No server call is made: the stored token is simply discarded, and the
next gated command treats you as anonymous.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := newAppContext()
			if err != nil {
				return err
			}

			if err := ctx.client.Logout(); err != nil {
				return fmt.Errorf("failed to clear session: %w", err)
			}

			fmt.Println("✓ Signed out.")
			return nil
		},
	}
}
