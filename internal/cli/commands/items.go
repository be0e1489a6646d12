package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/musegate-dev/musegate/internal/api"
)

// NewItemsCmd creates the items command group
func NewItemsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "items",
		Short: "Browse the exhibit catalogue",
	}

	cmd.AddCommand(newItemsListCmd())
	cmd.AddCommand(newItemsGetCmd())

	return cmd
}

func newItemsListCmd() *cobra.Command {
	var page, size int
	var kind string

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List exhibits",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			return runItemsList(app, page, size, kind)
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&size, "size", 10, "Page size")
	cmd.Flags().StringVar(&kind, "kind", "", "Filter by media kind (IMAGE or VIDEO)")

	return cmd
}

func runItemsList(app *App, page, size int, kind string) error {
	if err := app.navigateTo("/items"); err != nil {
		return err
	}

	result, err := app.Client.Items(context.Background(), api.ItemQuery{
		Current:   page,
		Size:      size,
		MediaKind: api.MediaKind(strings.ToUpper(kind)),
	})
	if err != nil {
		return err
	}

	if len(result.Records) == 0 {
		app.println("No exhibits found.")
		return nil
	}

	w := tabwriter.NewWriter(app.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tKIND\tON DISPLAY")
	for _, item := range result.Records {
		window := "-"
		if item.StartTime != "" || item.EndTime != "" {
			window = fmt.Sprintf("%s .. %s", item.StartTime, item.EndTime)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", item.ID, item.Title, item.MediaKind, window)
	}
	w.Flush()

	app.printf("\nPage %d of %d (%d exhibits total)\n", result.Current, result.Pages, result.Total)
	return nil
}

func newItemsGetCmd() *cobra.Command {
	var withComments bool

	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one exhibit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid exhibit id %q", args[0])
			}
			app, err := newApp()
			if err != nil {
				return err
			}
			return runItemsGet(app, id, withComments)
		},
	}

	cmd.Flags().BoolVar(&withComments, "comments", false, "Include the first page of comments")

	return cmd
}

func runItemsGet(app *App, id int64, withComments bool) error {
	if err := app.navigateTo(fmt.Sprintf("/items/%d", id)); err != nil {
		return err
	}

	item, err := app.Client.Item(context.Background(), id)
	if err != nil {
		return err
	}

	app.printf("Exhibit #%d: %s\n", item.ID, item.Title)
	app.printf("Kind:  %s\n", item.MediaKind)
	app.printf("Media: %s\n", item.MediaURL)
	if item.Description != "" {
		app.printf("\n%s\n", item.Description)
	}

	if !withComments {
		return nil
	}

	comments, err := app.Client.Comments(context.Background(), id, api.CommentQuery{Current: 1, Size: 10})
	if err != nil {
		return err
	}

	app.printf("\nComments (%d total):\n", comments.Total)
	for _, comment := range comments.Records {
		app.printf("  #%d %s: %s (%d likes)\n", comment.ID, comment.Username, comment.Content, comment.LikeCount)
	}
	return nil
}
