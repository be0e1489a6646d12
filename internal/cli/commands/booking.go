package commands

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/musegate-dev/musegate/internal/api"
)

// NewBookingCmd creates the booking command group
func NewBookingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "booking",
		Short: "Book and manage museum visits",
	}

	cmd.AddCommand(newBookingCreateCmd())
	cmd.AddCommand(newBookingListCmd())
	cmd.AddCommand(newBookingShowCmd())
	cmd.AddCommand(newBookingCancelCmd())
	cmd.AddCommand(newBookingMoveCmd())
	cmd.AddCommand(newBookingQuotaCmd())

	return cmd
}

func newBookingCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <visit-date>",
		Short: "Book a visit for a date (YYYY-MM-DD)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			return runBookingCreate(app, args[0])
		},
	}
}

func runBookingCreate(app *App, visitDate string) error {
	if err := app.navigateTo("/booking"); err != nil {
		return err
	}

	booking, err := app.Client.CreateBooking(context.Background(), api.CreateBookingRequest{VisitDate: visitDate})
	if err != nil {
		return err
	}

	app.printf("✓ Visit booked for %s.\n", booking.VisitDate)
	app.printf("  Ticket code: %s\n", booking.TicketCode)
	return nil
}

func newBookingListCmd() *cobra.Command {
	var page, size int

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List your bookings",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			return runBookingList(app, page, size)
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&size, "size", 10, "Page size")

	return cmd
}

func runBookingList(app *App, page, size int) error {
	if err := app.navigateTo("/booking"); err != nil {
		return err
	}

	result, err := app.Client.MyBookings(context.Background(), api.BookingQuery{Page: page, Size: size})
	if err != nil {
		return err
	}

	if len(result.Records) == 0 {
		app.println("No bookings yet.")
		app.println("\nBook a visit with: musegate booking create <YYYY-MM-DD>")
		return nil
	}

	w := tabwriter.NewWriter(app.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tVISIT DATE\tSTATUS\tTICKET")
	for _, b := range result.Records {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", b.ID, b.VisitDate, b.Status, b.TicketCode)
	}
	w.Flush()

	return nil
}

func newBookingShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "show <booking-id>",
		Aliases: []string{"get"},
		Short:   "Show one booking",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "booking")
			if err != nil {
				return err
			}
			app, err := newApp()
			if err != nil {
				return err
			}
			return runBookingShow(app, id)
		},
	}
}

func runBookingShow(app *App, id int64) error {
	if err := app.navigateTo("/booking"); err != nil {
		return err
	}

	booking, err := app.Client.BookingDetail(context.Background(), id)
	if err != nil {
		return err
	}

	app.printf("Booking #%d\n", booking.ID)
	app.printf("Visit date:  %s\n", booking.VisitDate)
	app.printf("Status:      %s\n", booking.Status)
	app.printf("Ticket code: %s\n", booking.TicketCode)
	if booking.CancelReason != "" {
		app.printf("Cancelled:   %s\n", booking.CancelReason)
	}
	if booking.VerifyTime != "" {
		app.printf("Verified at: %s\n", booking.VerifyTime)
	}
	return nil
}

func newBookingCancelCmd() *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   "cancel <booking-id>",
		Short: "Cancel a booking",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "booking")
			if err != nil {
				return err
			}
			app, err := newApp()
			if err != nil {
				return err
			}
			return runBookingCancel(app, id, reason)
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "", "Cancellation reason (optional)")

	return cmd
}

func runBookingCancel(app *App, id int64, reason string) error {
	if err := app.navigateTo("/booking"); err != nil {
		return err
	}

	ok, err := app.Client.CancelBooking(context.Background(), api.CancelBookingRequest{
		BookingID:    id,
		CancelReason: reason,
	})
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("the booking could not be cancelled")
	}

	app.println("✓ Booking cancelled.")
	return nil
}

func newBookingMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "move <booking-id> <new-visit-date>",
		Aliases: []string{"reschedule"},
		Short:   "Reschedule a booking to a new date (YYYY-MM-DD)",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "booking")
			if err != nil {
				return err
			}
			app, err := newApp()
			if err != nil {
				return err
			}
			return runBookingMove(app, id, args[1])
		},
	}
}

func runBookingMove(app *App, id int64, newDate string) error {
	if err := app.navigateTo("/booking"); err != nil {
		return err
	}

	booking, err := app.Client.RescheduleBooking(context.Background(), api.RescheduleBookingRequest{
		BookingID:    id,
		NewVisitDate: newDate,
	})
	if err != nil {
		return err
	}

	app.printf("✓ Booking moved to %s.\n", booking.VisitDate)
	app.printf("  New ticket code: %s\n", booking.TicketCode)
	return nil
}

func newBookingQuotaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quota <visit-date>",
		Short: "Show remaining capacity for a date (YYYY-MM-DD)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			return runBookingQuota(app, args[0])
		},
	}
}

func runBookingQuota(app *App, visitDate string) error {
	if err := app.navigateTo("/booking"); err != nil {
		return err
	}

	info, err := app.Client.QuotaInfo(context.Background(), visitDate)
	if err != nil {
		return err
	}

	app.printf("Capacity for %s: %d total, %d reserved, %d remaining\n",
		info.VisitDate, info.Capacity, info.ReservedCount, info.RemainingCount)
	return nil
}
