package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/musegate-dev/musegate/internal/api"
	"github.com/musegate-dev/musegate/internal/guard"
)

// NewAdminCmd creates the admin command group. Every subcommand navigates to
// an admin route first, so a visitor session is turned away by the guard
// before any request leaves the process.
func NewAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administrative operations",
	}

	cmd.AddCommand(newAdminDashboardCmd())
	cmd.AddCommand(newAdminUsersCmd())
	cmd.AddCommand(newAdminItemsCmd())
	cmd.AddCommand(newAdminCommentsCmd())
	cmd.AddCommand(newAdminBookingsCmd())
	cmd.AddCommand(newAdminQuotaCmd())
	cmd.AddCommand(newAdminUploadCmd())

	return cmd
}

func newAdminDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show today's headline numbers",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			return runAdminDashboard(app)
		},
	}
}

func runAdminDashboard(app *App) error {
	if err := app.navigateTo(guard.AdminHomePath); err != nil {
		return err
	}

	stats, err := app.Client.DashboardStats(context.Background())
	if err != nil {
		return err
	}

	app.printf("Today:    %d booked / %d quota, %d verified, %d cancelled\n",
		stats.TodayBookedCount, stats.TodayTotalQuota, stats.TodayVerifiedCount, stats.TodayCancelledCount)
	app.printf("Month:    %d bookings\n", stats.MonthlyBookingCount)
	app.printf("Users:    %d\n", stats.TotalUserCount)
	app.printf("Comments: %d total, %d pending\n", stats.TotalCommentCount, stats.PendingCommentCount)
	return nil
}

func newAdminQuotaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quota",
		Short: "Manage daily booking capacity",
	}

	set := &cobra.Command{
		Use:   "set <visit-date> <capacity>",
		Short: "Set the capacity of a date (YYYY-MM-DD)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			capacity, err := parseID(args[1], "capacity")
			if err != nil {
				return err
			}
			app, err := newApp()
			if err != nil {
				return err
			}
			return runAdminQuotaSet(app, args[0], int(capacity))
		},
	}

	var days int
	create := &cobra.Command{
		Use:   "create",
		Short: "Pre-create quotas for upcoming days",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			return runAdminQuotaCreate(app, days)
		},
	}
	create.Flags().IntVar(&days, "days", 7, "How many days ahead to create")

	cmd.AddCommand(set)
	cmd.AddCommand(create)

	return cmd
}

func runAdminQuotaSet(app *App, visitDate string, capacity int) error {
	if err := app.navigateTo(guard.AdminHomePath); err != nil {
		return err
	}

	ok, err := app.Client.UpdateQuota(context.Background(), api.QuotaUpdateRequest{
		VisitDate: visitDate,
		Capacity:  capacity,
	})
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("quota update was rejected")
	}

	app.printf("✓ Capacity for %s set to %d.\n", visitDate, capacity)
	return nil
}

func runAdminQuotaCreate(app *App, days int) error {
	if err := app.navigateTo(guard.AdminHomePath); err != nil {
		return err
	}

	result, err := app.Client.CreateFutureQuota(context.Background(), days)
	if err != nil {
		return err
	}

	app.printf("✓ %s\n", result)
	return nil
}

func newAdminUploadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload a media file to object storage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			return runAdminUpload(app, args[0])
		},
	}
}

func runAdminUpload(app *App, path string) error {
	if err := app.navigateTo("/admin/items"); err != nil {
		return err
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	result, err := app.Client.UploadToOSS(context.Background(), filepath.Base(path), file)
	if err != nil {
		return err
	}

	app.printf("✓ Uploaded %s (%d bytes, %s)\n", result.OriginalName, result.Size, result.MediaKind)
	app.printf("  URL: %s\n", result.URL)
	return nil
}
