// Package cli wires the Courtly command-line front-end. Area commands
// (admin, cliente, entrenador) mirror the screens of the web interface
// and pass through the same navigation gate.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/courtly-dev/courtly/internal/cli/commands"
)

var version = "dev" // Will be set during build

var rootCmd = &cobra.Command{
	Use:   "courtly",
	Short: "Courtly - Sports facility rental",
	Long: `Courtly CLI - Book courts, manage availability and run the facility.

Sign in once with 'courtly login'; the session is kept locally and every
command checks it against the area it belongs to, exactly like the web
front-end's route guards.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("courtly version %s\n", version)
		},
	})

	rootCmd.AddCommand(commands.NewLoginCmd())
	rootCmd.AddCommand(commands.NewLogoutCmd())
	rootCmd.AddCommand(commands.NewRegistroCmd())
	rootCmd.AddCommand(commands.NewWhoamiCmd())
	rootCmd.AddCommand(commands.NewOpenCmd())
	rootCmd.AddCommand(commands.NewAdminCmd())
	rootCmd.AddCommand(commands.NewClienteCmd())
	rootCmd.AddCommand(commands.NewEntrenadorCmd())
}

// Execute runs the root command
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
