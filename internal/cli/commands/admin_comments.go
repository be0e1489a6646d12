package commands

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/musegate-dev/musegate/internal/api"
)

func newAdminCommentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comments",
		Short: "Moderate exhibit comments",
	}

	cmd.AddCommand(newAdminCommentsListCmd())
	cmd.AddCommand(newAdminCommentsHideCmd())
	cmd.AddCommand(newAdminCommentsShowCmd())
	cmd.AddCommand(newAdminCommentsDeleteCmd())

	return cmd
}

func newAdminCommentsListCmd() *cobra.Command {
	var page, size int
	var itemTitle string
	var hidden bool

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List comments across all exhibits",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			return runAdminCommentsList(app, page, size, itemTitle, cmd.Flags().Changed("hidden"), hidden)
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&size, "size", 20, "Page size")
	cmd.Flags().StringVar(&itemTitle, "item", "", "Filter by exhibit title")
	cmd.Flags().BoolVar(&hidden, "hidden", false, "Only hidden (true) or only visible (false) comments")

	return cmd
}

func runAdminCommentsList(app *App, page, size int, itemTitle string, filterHidden, hidden bool) error {
	if err := app.navigateTo("/admin/comments"); err != nil {
		return err
	}

	query := api.AdminCommentQuery{
		Current:   page,
		Size:      size,
		ItemTitle: itemTitle,
	}
	if filterHidden {
		status := 1
		if hidden {
			status = 0
		}
		query.Status = &status
	}

	result, err := app.Client.AdminComments(context.Background(), query)
	if err != nil {
		return err
	}

	if len(result.Records) == 0 {
		app.println("No comments found.")
		return nil
	}

	w := tabwriter.NewWriter(app.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tEXHIBIT\tUSER\tSTATUS\tCONTENT")
	for _, c := range result.Records {
		status := "visible"
		if c.Status == 0 {
			status = "hidden"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", c.ID, c.ItemTitle, c.Username, status, c.Content)
	}
	w.Flush()

	app.printf("\nPage %d of %d (%d comments total)\n", result.Current, result.Pages, result.Total)
	return nil
}

func newAdminCommentsHideCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hide <comment-id>",
		Short: "Hide a comment from the public list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "comment")
			if err != nil {
				return err
			}
			app, err := newApp()
			if err != nil {
				return err
			}
			return runAdminCommentVisibility(app, id, false)
		},
	}
}

func newAdminCommentsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <comment-id>",
		Short: "Make a hidden comment visible again",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "comment")
			if err != nil {
				return err
			}
			app, err := newApp()
			if err != nil {
				return err
			}
			return runAdminCommentVisibility(app, id, true)
		},
	}
}

func runAdminCommentVisibility(app *App, id int64, visible bool) error {
	if err := app.navigateTo("/admin/comments"); err != nil {
		return err
	}

	var err error
	if visible {
		err = app.Client.ShowComment(context.Background(), id)
	} else {
		err = app.Client.HideComment(context.Background(), id)
	}
	if err != nil {
		return err
	}

	if visible {
		app.printf("✓ Comment %d is visible again.\n", id)
	} else {
		app.printf("✓ Comment %d hidden.\n", id)
	}
	return nil
}

func newAdminCommentsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <comment-id>",
		Aliases: []string{"delete"},
		Short:   "Delete any user's comment",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "comment")
			if err != nil {
				return err
			}
			app, err := newApp()
			if err != nil {
				return err
			}
			return runAdminCommentsDelete(app, id)
		},
	}
}

func runAdminCommentsDelete(app *App, id int64) error {
	if err := app.navigateTo("/admin/comments"); err != nil {
		return err
	}

	if err := app.Client.DeleteAdminComment(context.Background(), id); err != nil {
		return err
	}

	app.printf("✓ Comment %d deleted.\n", id)
	return nil
}
