package commands

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/courtly-dev/courtly/internal/cli/client"
)

// NewClienteCmd groups the client-area screens. Every subcommand passes
// through the navigation gate for its route before calling the API.
func NewClienteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cliente",
		Short: "Client screens (CLIENTE role)",
	}

	cmd.AddCommand(newClienteReservasCmd())
	cmd.AddCommand(newClienteReservarCmd())
	cmd.AddCommand(newClientePagosCmd())
	cmd.AddCommand(newClienteSolicitudesCmd())
	cmd.AddCommand(newClienteSolicitarCmd())

	return cmd
}

func newClienteReservasCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reservas",
		Short: "List your court bookings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGated("/cliente/reservas", func(ctx *appContext) error {
				reservas, err := ctx.client.ListReservas()
				if err != nil {
					return err
				}

				w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "CODIGO\tCANCHA\tINICIO\tFIN\tESTADO\tTOTAL")
				for _, r := range reservas {
					fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\t%.2f\n",
						r.Codigo, r.CanchaID,
						r.Inicio.Format(time.RFC3339), r.Fin.Format(time.RFC3339),
						r.Estado, r.TotalPagar)
				}
				return w.Flush()
			})()
		},
	}
}

func newClienteReservarCmd() *cobra.Command {
	var (
		canchaID          uint
		tarifaID          uint
		inicio, fin       string
		incluirEntrenador bool
		total             float64
	)

	cmd := &cobra.Command{
		Use:   "reservar",
		Short: "Book a court",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGated("/cliente/reservas", func(ctx *appContext) error {
				clienteID := ctx.query.ClientID()
				if clienteID == nil {
					return fmt.Errorf("current session has no cliente id")
				}

				inicioT, err := time.Parse(time.RFC3339, inicio)
				if err != nil {
					return fmt.Errorf("invalid --inicio (want RFC 3339): %w", err)
				}
				finT, err := time.Parse(time.RFC3339, fin)
				if err != nil {
					return fmt.Errorf("invalid --fin (want RFC 3339): %w", err)
				}

				req := client.CrearReservaRequest{
					ClienteID:         *clienteID,
					CanchaID:          canchaID,
					Inicio:            inicioT,
					Fin:               finT,
					IncluirEntrenador: incluirEntrenador,
					TotalPagar:        total,
				}
				if tarifaID != 0 {
					req.TarifaID = &tarifaID
				}

				reserva, err := ctx.client.CrearReserva(req)
				if err != nil {
					return fmt.Errorf("booking failed: %w", err)
				}

				fmt.Printf("✓ Reserva %s created (estado %s)\n", reserva.Codigo, reserva.Estado)
				return nil
			})()
		},
	}

	cmd.Flags().UintVar(&canchaID, "cancha", 0, "Court id (required)")
	cmd.Flags().UintVar(&tarifaID, "tarifa", 0, "Tariff id")
	cmd.Flags().StringVar(&inicio, "inicio", "", "Start time, RFC 3339 (required)")
	cmd.Flags().StringVar(&fin, "fin", "", "End time, RFC 3339 (required)")
	cmd.Flags().BoolVar(&incluirEntrenador, "con-entrenador", false, "Include a trainer")
	cmd.Flags().Float64Var(&total, "total", 0, "Total to pay")
	cmd.MarkFlagRequired("cancha")
	cmd.MarkFlagRequired("inicio")
	cmd.MarkFlagRequired("fin")

	return cmd
}

func newClientePagosCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pagos",
		Short: "List your payments",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGated("/cliente/pagos", func(ctx *appContext) error {
				pagos, err := ctx.client.ListPagos()
				if err != nil {
					return err
				}

				w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "RECIBO\tRESERVA\tMONTO\tMETODO\tESTADO")
				for _, p := range pagos {
					fmt.Fprintf(w, "%s\t%d\t%.2f\t%s\t%s\n", p.Recibo, p.ReservaID, p.Monto, p.Metodo, p.EstadoPago)
				}
				return w.Flush()
			})()
		},
	}
}

func newClienteSolicitudesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "solicitudes",
		Short: "List your training requests",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGated("/cliente/solicitudes", func(ctx *appContext) error {
				clienteID := ctx.query.ClientID()
				if clienteID == nil {
					return fmt.Errorf("current session has no cliente id")
				}

				solicitudes, err := ctx.client.ListSolicitudesByCliente(*clienteID)
				if err != nil {
					return err
				}

				w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
				fmt.Fprintln(w, "ID\tINICIO\tFIN\tESTADO\tENTRENADOR")
				for _, s := range solicitudes {
					entrenador := "-"
					if s.EntrenadorID != nil {
						entrenador = fmt.Sprintf("%d", *s.EntrenadorID)
					}
					fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
						s.ID, s.Inicio.Format(time.RFC3339), s.Fin.Format(time.RFC3339), s.Estado, entrenador)
				}
				return w.Flush()
			})()
		},
	}
}

func newClienteSolicitarCmd() *cobra.Command {
	var (
		entrenadorID uint
		inicio, fin  string
	)

	cmd := &cobra.Command{
		Use:   "solicitar",
		Short: "File a training request",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGated("/cliente/solicitudes", func(ctx *appContext) error {
				clienteID := ctx.query.ClientID()
				if clienteID == nil {
					return fmt.Errorf("current session has no cliente id")
				}

				inicioT, err := time.Parse(time.RFC3339, inicio)
				if err != nil {
					return fmt.Errorf("invalid --inicio (want RFC 3339): %w", err)
				}
				finT, err := time.Parse(time.RFC3339, fin)
				if err != nil {
					return fmt.Errorf("invalid --fin (want RFC 3339): %w", err)
				}

				req := client.CrearSolicitudRequest{
					ClienteID: *clienteID,
					Inicio:    inicioT,
					Fin:       finT,
				}
				if entrenadorID != 0 {
					req.EntrenadorID = &entrenadorID
				}

				solicitud, err := ctx.client.CrearSolicitud(req)
				if err != nil {
					return fmt.Errorf("request failed: %w", err)
				}

				fmt.Printf("✓ Solicitud #%d filed (estado %s)\n", solicitud.ID, solicitud.Estado)
				return nil
			})()
		},
	}

	cmd.Flags().UintVar(&entrenadorID, "entrenador", 0, "Trainer id (empty for the open pool)")
	cmd.Flags().StringVar(&inicio, "inicio", "", "Start time, RFC 3339 (required)")
	cmd.Flags().StringVar(&fin, "fin", "", "End time, RFC 3339 (required)")
	cmd.MarkFlagRequired("inicio")
	cmd.MarkFlagRequired("fin")

	return cmd
}
