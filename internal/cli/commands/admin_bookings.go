package commands

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/musegate-dev/musegate/internal/api"
)

func newAdminBookingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bookings",
		Short: "Query and verify visit bookings",
	}

	cmd.AddCommand(newAdminBookingsListCmd())
	cmd.AddCommand(newAdminBookingsVerifyCmd())

	return cmd
}

func newAdminBookingsListCmd() *cobra.Command {
	var page, size int
	var visitDate, ticketCode string

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List bookings across all visitors",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			return runAdminBookingsList(app, page, size, visitDate, ticketCode)
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&size, "size", 20, "Page size")
	cmd.Flags().StringVar(&visitDate, "date", "", "Filter by visit date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&ticketCode, "ticket", "", "Filter by ticket code")

	return cmd
}

func runAdminBookingsList(app *App, page, size int, visitDate, ticketCode string) error {
	if err := app.navigateTo("/admin/bookings"); err != nil {
		return err
	}

	result, err := app.Client.AdminBookings(context.Background(), api.AdminBookingQuery{
		Page:       page,
		Size:       size,
		VisitDate:  visitDate,
		TicketCode: ticketCode,
	})
	if err != nil {
		return err
	}

	if len(result.Records) == 0 {
		app.println("No bookings found.")
		return nil
	}

	w := tabwriter.NewWriter(app.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tVISIT DATE\tSTATUS\tTICKET\tVERIFIED AT")
	for _, b := range result.Records {
		verified := "-"
		if b.VerifyTime != "" {
			verified = b.VerifyTime
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", b.ID, b.VisitDate, b.Status, b.TicketCode, verified)
	}
	w.Flush()

	app.printf("\nPage %d of %d (%d bookings total)\n", result.Current, result.Pages, result.Total)
	return nil
}

func newAdminBookingsVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <ticket-code>",
		Short: "Check a visitor in by ticket code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			return runAdminBookingsVerify(app, args[0])
		},
	}
}

func runAdminBookingsVerify(app *App, ticketCode string) error {
	if err := app.navigateTo("/admin/bookings"); err != nil {
		return err
	}

	booking, err := app.Client.VerifyBooking(context.Background(), api.VerifyBookingRequest{TicketCode: ticketCode})
	if err != nil {
		return fmt.Errorf("verification failed: %w", err)
	}

	app.printf("✓ Ticket %s verified (booking %d, visit date %s).\n",
		booking.TicketCode, booking.ID, booking.VisitDate)
	return nil
}
