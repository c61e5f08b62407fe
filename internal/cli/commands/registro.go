package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/courtly-dev/courtly/internal/cli/client"
	"github.com/courtly-dev/courtly/internal/routegate"
)

// NewRegistroCmd creates the account registration command
func NewRegistroCmd() *cobra.Command {
	var req client.RegistroRequest

	cmd := &cobra.Command{
		Use:   "registro",
		Short: "Register a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := newAppContext()
			if err != nil {
				return err
			}

			// Registration lives in the public area: signed-in visitors
			// are bounced to their dashboard instead.
			decision := ctx.gate.Evaluate(routegate.RegistroRoute)
			if decision.Action != routegate.Allow {
				fmt.Printf("Already signed in. Redirected to %s\n", decision.RedirectURL())
				return nil
			}

			if available, err := ctx.client.EmailDisponible(req.Email); err == nil && !available {
				return fmt.Errorf("email %s is already registered", req.Email)
			}
			if req.Usuario != "" {
				if available, err := ctx.client.UsuarioDisponible(req.Usuario); err == nil && !available {
					return fmt.Errorf("usuario %s is already taken", req.Usuario)
				}
			}

			if err := ctx.client.Registro(req); err != nil {
				return fmt.Errorf("registration failed: %w", err)
			}

			fmt.Println("✓ Account created. Run 'courtly login' to sign in.")
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Nombre, "nombre", "", "First name (required)")
	cmd.Flags().StringVar(&req.Apellido, "apellido", "", "Last name")
	cmd.Flags().StringVar(&req.Usuario, "usuario", "", "Handle (ADMIN accounts only)")
	cmd.Flags().StringVar(&req.Email, "email", "", "Email address (required)")
	cmd.Flags().StringVar(&req.Password, "password", "", "Password (required)")
	cmd.Flags().StringVar(&req.Rol, "rol", "CLIENTE", "Role: ADMIN, CLIENTE or ENTRENADOR")
	cmd.Flags().StringVar(&req.Telefono, "telefono", "", "Phone number")
	cmd.Flags().StringVar(&req.Documento, "documento", "", "Identity document number")
	cmd.MarkFlagRequired("nombre")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")

	return cmd
}
