package commands

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/musegate-dev/musegate/internal/api"
)

func newAdminItemsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "items",
		Short: "Manage the exhibit catalogue",
	}

	cmd.AddCommand(newAdminItemsListCmd())
	cmd.AddCommand(newAdminItemsAddCmd())
	cmd.AddCommand(newAdminItemsUpdateCmd())
	cmd.AddCommand(newAdminItemsPublishCmd())
	cmd.AddCommand(newAdminItemsUnpublishCmd())
	cmd.AddCommand(newAdminItemsRestoreCmd())
	cmd.AddCommand(newAdminItemsDeleteCmd())

	return cmd
}

func newAdminItemsListCmd() *cobra.Command {
	var page, size int
	var keyword, kind string

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List exhibits, including unpublished ones",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			return runAdminItemsList(app, page, size, keyword, kind)
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&size, "size", 20, "Page size")
	cmd.Flags().StringVar(&keyword, "keyword", "", "Search in titles")
	cmd.Flags().StringVar(&kind, "kind", "", "Filter by media kind (IMAGE or VIDEO)")

	return cmd
}

func runAdminItemsList(app *App, page, size int, keyword, kind string) error {
	if err := app.navigateTo("/admin/items"); err != nil {
		return err
	}

	result, err := app.Client.AdminItems(context.Background(), api.AdminItemQuery{
		Current:   page,
		Size:      size,
		Keyword:   keyword,
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
	fmt.Fprintln(w, "ID\tTITLE\tKIND\tUPDATED")
	for _, item := range result.Records {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", item.ID, item.Title, item.MediaKind, item.UpdatedAt)
	}
	w.Flush()

	app.printf("\nPage %d of %d (%d exhibits total)\n", result.Current, result.Pages, result.Total)
	return nil
}

func newAdminItemsAddCmd() *cobra.Command {
	var req api.AddItemRequest
	var kind string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create an exhibit",
		RunE: func(cmd *cobra.Command, args []string) error {
			req.MediaKind = api.MediaKind(strings.ToUpper(kind))
			app, err := newApp()
			if err != nil {
				return err
			}
			return runAdminItemsAdd(app, req)
		},
	}

	cmd.Flags().StringVar(&req.Title, "title", "", "Exhibit title")
	cmd.Flags().StringVar(&req.Description, "description", "", "Description")
	cmd.Flags().StringVar(&kind, "kind", "IMAGE", "Media kind (IMAGE or VIDEO)")
	cmd.Flags().StringVar(&req.MediaURL, "media-url", "", "Media URL (upload first with 'admin upload')")
	cmd.Flags().StringVar(&req.CoverURL, "cover-url", "", "Cover image URL")
	cmd.Flags().StringVar(&req.StartTime, "start", "", "Display window start")
	cmd.Flags().StringVar(&req.EndTime, "end", "", "Display window end")
	cmd.MarkFlagRequired("title")
	cmd.MarkFlagRequired("media-url")

	return cmd
}

func runAdminItemsAdd(app *App, req api.AddItemRequest) error {
	if err := app.navigateTo("/admin/items"); err != nil {
		return err
	}

	id, err := app.Client.AddItem(context.Background(), req)
	if err != nil {
		return err
	}

	app.printf("✓ Exhibit created (id %d).\n", id)
	return nil
}

func newAdminItemsUpdateCmd() *cobra.Command {
	var req api.UpdateItemRequest

	cmd := &cobra.Command{
		Use:   "update <item-id>",
		Short: "Update an exhibit; unset flags are left unchanged",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "exhibit")
			if err != nil {
				return err
			}
			req.ID = id
			app, err := newApp()
			if err != nil {
				return err
			}
			return runAdminItemsUpdate(app, req)
		},
	}

	cmd.Flags().StringVar(&req.Title, "title", "", "New title")
	cmd.Flags().StringVar(&req.Description, "description", "", "New description")
	cmd.Flags().StringVar(&req.MediaURL, "media-url", "", "New media URL")
	cmd.Flags().StringVar(&req.CoverURL, "cover-url", "", "New cover image URL")
	cmd.Flags().StringVar(&req.StartTime, "start", "", "New display window start")
	cmd.Flags().StringVar(&req.EndTime, "end", "", "New display window end")

	return cmd
}

func runAdminItemsUpdate(app *App, req api.UpdateItemRequest) error {
	if err := app.navigateTo("/admin/items"); err != nil {
		return err
	}

	if err := app.Client.UpdateItem(context.Background(), req); err != nil {
		return err
	}

	app.printf("✓ Exhibit %d updated.\n", req.ID)
	return nil
}

func newAdminItemsPublishCmd() *cobra.Command {
	return newAdminItemStateCmd("publish", "Put an exhibit on display", func(app *App, id int64) error {
		return app.Client.PublishItem(context.Background(), id)
	})
}

func newAdminItemsUnpublishCmd() *cobra.Command {
	return newAdminItemStateCmd("unpublish", "Take an exhibit off display", func(app *App, id int64) error {
		return app.Client.UnpublishItem(context.Background(), id)
	})
}

func newAdminItemsRestoreCmd() *cobra.Command {
	return newAdminItemStateCmd("restore", "Restore a deleted exhibit", func(app *App, id int64) error {
		return app.Client.RestoreItem(context.Background(), id)
	})
}

func newAdminItemsDeleteCmd() *cobra.Command {
	cmd := newAdminItemStateCmd("rm", "Delete an exhibit", func(app *App, id int64) error {
		return app.Client.DeleteItem(context.Background(), id)
	})
	cmd.Aliases = []string{"delete"}
	return cmd
}

// newAdminItemStateCmd builds the shape shared by the single-ID exhibit state
// transitions.
func newAdminItemStateCmd(use, short string, action func(app *App, id int64) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <item-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "exhibit")
			if err != nil {
				return err
			}
			app, err := newApp()
			if err != nil {
				return err
			}
			if err := app.navigateTo("/admin/items"); err != nil {
				return err
			}
			if err := action(app, id); err != nil {
				return err
			}
			app.printf("✓ Done.\n")
			return nil
		},
	}
}
