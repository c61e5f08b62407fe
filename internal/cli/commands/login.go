package commands

import (
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/courtly-dev/courtly/internal/auth"
	"github.com/courtly-dev/courtly/internal/routegate"
)

// NewLoginCmd creates the login command
func NewLoginCmd() *cobra.Command {
	var identifier, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate with the Courtly server",
		Long: `Authenticate with the Courtly server.

The identifier is the usuario handle for staff accounts or the account
email for clients and trainers. An existing session is replaced.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(identifier, password)
		},
	}

	cmd.Flags().StringVar(&identifier, "identifier", "", "Usuario handle or email (or set COURTLY_IDENTIFIER)")
	cmd.Flags().StringVar(&password, "password", "", "Password (or set COURTLY_PASSWORD, will prompt if not provided)")

	return cmd
}

func runLogin(identifier, password string) error {
	if identifier == "" {
		identifier = os.Getenv("COURTLY_IDENTIFIER")
	}
	if password == "" {
		password = os.Getenv("COURTLY_PASSWORD")
	}

	if identifier == "" {
		return fmt.Errorf("identifier is required (use --identifier flag or COURTLY_IDENTIFIER env var)")
	}

	ctx, err := newAppContext()
	if err != nil {
		return err
	}

	// The public area bounces visitors who already hold a session.
	decision := ctx.gate.Evaluate(routegate.LoginRoute)
	if decision.Action != routegate.Allow {
		fmt.Printf("Already signed in. Redirected to %s\n", decision.RedirectURL())
		return nil
	}

	if password == "" {
		if term.IsTerminal(int(syscall.Stdin)) {
			fmt.Print("Password: ")
			bytePassword, err := term.ReadPassword(int(syscall.Stdin))
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}
			password = string(bytePassword)
			fmt.Println()
		} else {
			return fmt.Errorf("password is required in non-interactive mode (use --password flag or COURTLY_PASSWORD env var)")
		}
	}

	resp, err := ctx.client.Login(identifier, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	fmt.Println("✓ Login successful!")
	fmt.Printf("  User: %s (%s)\n", resp.Nombre, resp.Rol)
	fmt.Printf("  Home: %s\n", routegate.HomeRoute(auth.Role(resp.Rol)))

	return nil
}
