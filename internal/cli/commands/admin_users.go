package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/musegate-dev/musegate/internal/api"
)

func newAdminUsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage visitor accounts",
	}

	cmd.AddCommand(newAdminUsersListCmd())
	cmd.AddCommand(newAdminUsersShowCmd())
	cmd.AddCommand(newAdminUsersBanCmd())
	cmd.AddCommand(newAdminUsersUnbanCmd())
	cmd.AddCommand(newAdminUsersExportCmd())

	return cmd
}

func newAdminUsersListCmd() *cobra.Command {
	var page, size int
	var keyword string

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			return runAdminUsersList(app, page, size, keyword)
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&size, "size", 20, "Page size")
	cmd.Flags().StringVar(&keyword, "keyword", "", "Search by username, nickname or phone")

	return cmd
}

func runAdminUsersList(app *App, page, size int, keyword string) error {
	if err := app.navigateTo("/admin/users"); err != nil {
		return err
	}

	result, err := app.Client.AdminUsers(context.Background(), api.UserQuery{
		Page:    page,
		Size:    size,
		Keyword: keyword,
	})
	if err != nil {
		return err
	}

	if len(result.Records) == 0 {
		app.println("No accounts found.")
		return nil
	}

	w := tabwriter.NewWriter(app.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tUSERNAME\tROLE\tSTATUS\tVERIFIED\tCREATED")
	for _, u := range result.Records {
		status := "active"
		if u.Status != 0 {
			status = "banned"
		}
		verified := "-"
		if u.RealName != "" {
			verified = "yes"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", u.ID, u.Username, u.Role, status, verified, u.CreatedAt)
	}
	w.Flush()

	app.printf("\nPage %d of %d (%d accounts total)\n", result.Current, result.Pages, result.Total)
	return nil
}

func newAdminUsersShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <user-id>",
		Short: "Show one account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "user")
			if err != nil {
				return err
			}
			app, err := newApp()
			if err != nil {
				return err
			}
			return runAdminUsersShow(app, id)
		},
	}
}

func runAdminUsersShow(app *App, id int64) error {
	if err := app.navigateTo("/admin/users"); err != nil {
		return err
	}

	user, err := app.Client.AdminUserDetail(context.Background(), id)
	if err != nil {
		return err
	}

	app.printf("User #%d: %s (%s)\n", user.ID, user.Username, user.Role)
	if user.Phone != "" {
		app.printf("Phone:     %s\n", user.Phone)
	}
	if user.RealName != "" {
		app.printf("Real name: %s (%s)\n", user.RealName, user.IDCard)
	}
	status := "active"
	if user.Status != 0 {
		status = "banned"
	}
	app.printf("Status:    %s\n", status)
	app.printf("Created:   %s\n", user.CreatedAt)
	return nil
}

func newAdminUsersBanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ban <user-id>",
		Short: "Disable an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "user")
			if err != nil {
				return err
			}
			app, err := newApp()
			if err != nil {
				return err
			}
			return runAdminUsersBan(app, id, true)
		},
	}
}

func newAdminUsersUnbanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unban <user-id>",
		Short: "Re-enable a banned account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "user")
			if err != nil {
				return err
			}
			app, err := newApp()
			if err != nil {
				return err
			}
			return runAdminUsersBan(app, id, false)
		},
	}
}

func runAdminUsersBan(app *App, id int64, ban bool) error {
	if err := app.navigateTo("/admin/users"); err != nil {
		return err
	}

	var err error
	if ban {
		err = app.Client.BanUser(context.Background(), id)
	} else {
		err = app.Client.UnbanUser(context.Background(), id)
	}
	if err != nil {
		return err
	}

	if ban {
		app.printf("✓ User %d banned.\n", id)
	} else {
		app.printf("✓ User %d unbanned.\n", id)
	}
	return nil
}

func newAdminUsersExportCmd() *cobra.Command {
	var output, keyword string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the account list to a spreadsheet",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			return runAdminUsersExport(app, output, keyword)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "users.xlsx", "Output file")
	cmd.Flags().StringVar(&keyword, "keyword", "", "Only export matching accounts")

	return cmd
}

func runAdminUsersExport(app *App, output, keyword string) error {
	if err := app.navigateTo("/admin/users"); err != nil {
		return err
	}

	blob, err := app.Client.ExportUsers(context.Background(), keyword, nil)
	if err != nil {
		return err
	}

	if err := os.WriteFile(output, blob, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}

	app.printf("✓ Exported %d bytes to %s\n", len(blob), output)
	return nil
}
