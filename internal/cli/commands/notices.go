package commands

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/musegate-dev/musegate/internal/api"
	"github.com/musegate-dev/musegate/internal/guard"
)

// NewNoticesCmd creates the notices command group
func NewNoticesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notices",
		Short: "Read your notices",
	}

	cmd.AddCommand(newNoticesListCmd())
	cmd.AddCommand(newNoticesShowCmd())
	cmd.AddCommand(newNoticesReadCmd())
	cmd.AddCommand(newNoticesReadAllCmd())
	cmd.AddCommand(newNoticesDeleteCmd())

	return cmd
}

func newNoticesListCmd() *cobra.Command {
	var page, size int
	var unreadOnly bool

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List your notices",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			return runNoticesList(app, page, size, unreadOnly)
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&size, "size", 10, "Page size")
	cmd.Flags().BoolVar(&unreadOnly, "unread", false, "Only unread notices")

	return cmd
}

func runNoticesList(app *App, page, size int, unreadOnly bool) error {
	if err := app.navigateTo(guard.HomePath); err != nil {
		return err
	}

	query := api.NoticeQuery{Page: page, Size: size}
	if unreadOnly {
		unread := api.ReadFlagUnread
		query.ReadFlag = &unread
	}

	result, err := app.Client.MyNotices(context.Background(), query)
	if err != nil {
		return err
	}

	if len(result.Records) == 0 {
		app.println("No notices.")
		return nil
	}

	w := tabwriter.NewWriter(app.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCATEGORY\tTITLE\tSTATUS")
	for _, n := range result.Records {
		status := "read"
		if n.ReadFlag == api.ReadFlagUnread {
			status = "unread"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", n.ID, n.Category, n.Title, status)
	}
	w.Flush()

	app.printf("\nPage %d of %d (%d notices total)\n", result.Current, result.Pages, result.Total)
	return nil
}

func newNoticesShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "show <notice-id>",
		Aliases: []string{"get"},
		Short:   "Show one notice and mark it read",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "notice")
			if err != nil {
				return err
			}
			app, err := newApp()
			if err != nil {
				return err
			}
			return runNoticesShow(app, id)
		},
	}
}

func runNoticesShow(app *App, id int64) error {
	if err := app.navigateTo(guard.HomePath); err != nil {
		return err
	}

	notice, err := app.Client.NoticeDetail(context.Background(), id)
	if err != nil {
		return err
	}

	app.printf("[%s] %s\n\n%s\n", notice.Category, notice.Title, notice.Content)

	if notice.ReadFlag == api.ReadFlagUnread {
		if _, err := app.Client.MarkNoticeRead(context.Background(), id); err != nil {
			app.Log.Warn().Err(err).Int64("notice_id", id).Msg("failed to mark notice read")
		}
	}
	return nil
}

func newNoticesReadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "read <notice-id>...",
		Short: "Mark notices as read",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]int64, 0, len(args))
			for _, arg := range args {
				id, err := parseID(arg, "notice")
				if err != nil {
					return err
				}
				ids = append(ids, id)
			}
			app, err := newApp()
			if err != nil {
				return err
			}
			return runNoticesRead(app, ids)
		},
	}
}

func runNoticesRead(app *App, ids []int64) error {
	if err := app.navigateTo(guard.HomePath); err != nil {
		return err
	}

	var err error
	if len(ids) == 1 {
		_, err = app.Client.MarkNoticeRead(context.Background(), ids[0])
	} else {
		_, err = app.Client.BatchMarkRead(context.Background(), ids)
	}
	if err != nil {
		return err
	}

	app.printf("✓ Marked %d notice(s) read.\n", len(ids))
	return nil
}

func newNoticesReadAllCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "read-all",
		Short: "Mark every notice as read",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			return runNoticesReadAll(app)
		},
	}
}

func runNoticesReadAll(app *App) error {
	if err := app.navigateTo(guard.HomePath); err != nil {
		return err
	}

	if _, err := app.Client.MarkAllRead(context.Background()); err != nil {
		return err
	}

	app.println("✓ All notices marked read.")
	return nil
}

func newNoticesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <notice-id>",
		Aliases: []string{"delete"},
		Short:   "Delete a notice from your inbox",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "notice")
			if err != nil {
				return err
			}
			app, err := newApp()
			if err != nil {
				return err
			}
			return runNoticesDelete(app, id)
		},
	}
}

func runNoticesDelete(app *App, id int64) error {
	if err := app.navigateTo(guard.HomePath); err != nil {
		return err
	}

	if _, err := app.Client.DeleteNotice(context.Background(), id); err != nil {
		return err
	}

	app.println("✓ Notice deleted.")
	return nil
}
