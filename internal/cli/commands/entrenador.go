package commands

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/courtly-dev/courtly/internal/cli/client"
)

// NewEntrenadorCmd groups the trainer-area screens. Besides the
// ENTRENADOR role, the gate demands a present trainer id: a session
// without one is bounced even though the role matches.
func NewEntrenadorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entrenador",
		Short: "Trainer screens (ENTRENADOR role)",
	}

	cmd.AddCommand(newEntrenadorDisponibilidadesCmd())
	cmd.AddCommand(newEntrenadorPublicarCmd())
	cmd.AddCommand(newEntrenadorPoolCmd())
	cmd.AddCommand(newEntrenadorSolicitudesCmd())
	cmd.AddCommand(newEntrenadorAceptarCmd())
	cmd.AddCommand(newEntrenadorRechazarCmd())

	return cmd
}

func newEntrenadorDisponibilidadesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "disponibilidades",
		Short: "List your availability slots",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGated("/entrenador/disponibilidades", func(ctx *appContext) error {
				entrenadorID := ctx.query.TrainerID()
				if entrenadorID == nil {
					return fmt.Errorf("current session has no entrenador id")
				}

				slots, err := ctx.client.ListDisponibilidadesByEntrenador(*entrenadorID)
				if err != nil {
					return err
				}

				w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tDIA\tDESDE\tHASTA")
				for _, s := range slots {
					fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", s.ID, s.DiaSemana, s.HoraInicio, s.HoraFin)
				}
				return w.Flush()
			})()
		},
	}
}

func newEntrenadorPublicarCmd() *cobra.Command {
	var dia, desde, hasta string

	cmd := &cobra.Command{
		Use:   "publicar",
		Short: "Publish a weekly availability slot",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGated("/entrenador/disponibilidades", func(ctx *appContext) error {
				entrenadorID := ctx.query.TrainerID()
				if entrenadorID == nil {
					return fmt.Errorf("current session has no entrenador id")
				}

				slot, err := ctx.client.CrearDisponibilidad(client.CrearDisponibilidadRequest{
					EntrenadorID: *entrenadorID,
					DiaSemana:    dia,
					HoraInicio:   desde,
					HoraFin:      hasta,
				})
				if err != nil {
					return fmt.Errorf("failed to publish slot: %w", err)
				}

				fmt.Printf("✓ Disponibilidad #%d published (%s %s-%s)\n", slot.ID, slot.DiaSemana, slot.HoraInicio, slot.HoraFin)
				return nil
			})()
		},
	}

	cmd.Flags().StringVar(&dia, "dia", "", "Day of week, e.g. LUNES (required)")
	cmd.Flags().StringVar(&desde, "desde", "", "Start time, e.g. 09:00 (required)")
	cmd.Flags().StringVar(&hasta, "hasta", "", "End time, e.g. 12:00 (required)")
	cmd.MarkFlagRequired("dia")
	cmd.MarkFlagRequired("desde")
	cmd.MarkFlagRequired("hasta")

	return cmd
}

func newEntrenadorPoolCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pool",
		Short: "List unclaimed training requests",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGated("/entrenador/solicitudes", func(ctx *appContext) error {
				solicitudes, err := ctx.client.ListSolicitudesDisponibles()
				if err != nil {
					return err
				}

				w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tCLIENTE\tINICIO\tFIN")
				for _, s := range solicitudes {
					fmt.Fprintf(w, "%d\t%d\t%s\t%s\n",
						s.ID, s.ClienteID, s.Inicio.Format(time.RFC3339), s.Fin.Format(time.RFC3339))
				}
				return w.Flush()
			})()
		},
	}
}

func newEntrenadorSolicitudesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "solicitudes",
		Short: "List requests assigned to you",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGated("/entrenador/solicitudes", func(ctx *appContext) error {
				entrenadorID := ctx.query.TrainerID()
				if entrenadorID == nil {
					return fmt.Errorf("current session has no entrenador id")
				}

				solicitudes, err := ctx.client.ListSolicitudesByEntrenador(*entrenadorID)
				if err != nil {
					return err
				}

				w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tCLIENTE\tINICIO\tFIN\tESTADO")
				for _, s := range solicitudes {
					fmt.Fprintf(w, "%d\t%d\t%s\t%s\t%s\n",
						s.ID, s.ClienteID, s.Inicio.Format(time.RFC3339), s.Fin.Format(time.RFC3339), s.Estado)
				}
				return w.Flush()
			})()
		},
	}
}

func newEntrenadorAceptarCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "aceptar <solicitud-id>",
		Short: "Claim a training request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGated("/entrenador/solicitudes", func(ctx *appContext) error {
				entrenadorID := ctx.query.TrainerID()
				if entrenadorID == nil {
					return fmt.Errorf("current session has no entrenador id")
				}

				id, err := strconv.ParseUint(args[0], 10, 32)
				if err != nil {
					return fmt.Errorf("invalid solicitud id: %s", args[0])
				}

				solicitud, err := ctx.client.AceptarSolicitud(uint(id), *entrenadorID)
				if err != nil {
					return fmt.Errorf("failed to accept: %w", err)
				}

				fmt.Printf("✓ Solicitud #%d accepted\n", solicitud.ID)
				return nil
			})()
		},
	}
}

func newEntrenadorRechazarCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rechazar <solicitud-id>",
		Short: "Reject a training request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGated("/entrenador/solicitudes", func(ctx *appContext) error {
				id, err := strconv.ParseUint(args[0], 10, 32)
				if err != nil {
					return fmt.Errorf("invalid solicitud id: %s", args[0])
				}

				solicitud, err := ctx.client.RechazarSolicitud(uint(id))
				if err != nil {
					return fmt.Errorf("failed to reject: %w", err)
				}

				fmt.Printf("✓ Solicitud #%d rejected\n", solicitud.ID)
				return nil
			})()
		},
	}
}
