package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewAdminCmd groups the admin-area screens. Every subcommand passes
// through the navigation gate for its route before calling the API.
func NewAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administration screens (ADMIN role)",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "administradores",
		Short: "List staff accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGated("/admin/administradores", func(ctx *appContext) error {
				administradores, err := ctx.client.ListAdministradores()
				if err != nil {
					return err
				}

				w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tNOMBRE\tUSUARIO\tROL")
				for _, a := range administradores {
					fmt.Fprintf(w, "%d\t%s %s\t%s\t%s\n", a.ID, a.Nombre, a.Apellido, a.Usuario, a.Rol)
				}
				return w.Flush()
			})()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clientes",
		Short: "List customer records",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGated("/admin/clientes", func(ctx *appContext) error {
				clientes, err := ctx.client.ListClientes()
				if err != nil {
					return err
				}

				w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tNOMBRE\tEMAIL\tTELEFONO")
				for _, c := range clientes {
					fmt.Fprintf(w, "%d\t%s %s\t%s\t%s\n", c.ID, c.Nombre, c.Apellido, c.Email, c.Telefono)
				}
				return w.Flush()
			})()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "entrenadores",
		Short: "List trainers",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGated("/admin/entrenadores", func(ctx *appContext) error {
				entrenadores, err := ctx.client.ListEntrenadores()
				if err != nil {
					return err
				}

				w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tNOMBRE\tESPECIALIDAD\tEMAIL")
				for _, e := range entrenadores {
					fmt.Fprintf(w, "%d\t%s %s\t%s\t%s\n", e.ID, e.Nombre, e.Apellido, e.Especialidad, e.Email)
				}
				return w.Flush()
			})()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "canchas",
		Short: "List courts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGated("/admin/canchas", func(ctx *appContext) error {
				canchas, err := ctx.client.ListCanchas()
				if err != nil {
					return err
				}

				w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tNOMBRE\tTIPO\tESTADO")
				for _, c := range canchas {
					fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", c.ID, c.Nombre, c.Tipo, c.Estado)
				}
				return w.Flush()
			})()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "tarifas",
		Short: "List current hourly prices",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGated("/admin/tarifas", func(ctx *appContext) error {
				tarifas, err := ctx.client.ListTarifasVigentes()
				if err != nil {
					return err
				}

				w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tSERVICIO\tPRECIO/HORA")
				for _, t := range tarifas {
					fmt.Fprintf(w, "%d\t%s\t%.2f\n", t.ID, t.TipoServicio, t.PrecioHora)
				}
				return w.Flush()
			})()
		},
	})

	return cmd
}
