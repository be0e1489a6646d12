package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/musegate-dev/musegate/internal/api"
)

// NewCommentsCmd creates the comments command group
func NewCommentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comments",
		Short: "Comment on exhibits",
	}

	cmd.AddCommand(newCommentListCmd())
	cmd.AddCommand(newCommentAddCmd())
	cmd.AddCommand(newCommentDeleteCmd())
	cmd.AddCommand(newCommentLikeCmd())
	cmd.AddCommand(newCommentUnlikeCmd())

	return cmd
}

func parseID(arg, what string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s id %q", what, arg)
	}
	return id, nil
}

func newCommentListCmd() *cobra.Command {
	var page, size int

	cmd := &cobra.Command{
		Use:     "ls <item-id>",
		Aliases: []string{"list"},
		Short:   "List the comments on an exhibit",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			itemID, err := parseID(args[0], "exhibit")
			if err != nil {
				return err
			}
			app, err := newApp()
			if err != nil {
				return err
			}
			return runCommentList(app, itemID, page, size)
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&size, "size", 10, "Page size")

	return cmd
}

func runCommentList(app *App, itemID int64, page, size int) error {
	if err := app.navigateTo(fmt.Sprintf("/items/%d", itemID)); err != nil {
		return err
	}

	result, err := app.Client.Comments(context.Background(), itemID, api.CommentQuery{Current: page, Size: size})
	if err != nil {
		return err
	}

	if len(result.Records) == 0 {
		app.println("No comments yet.")
		return nil
	}

	for _, c := range result.Records {
		liked := ""
		if c.Liked != 0 {
			liked = " ♥"
		}
		app.printf("#%d %s (%d likes%s): %s\n", c.ID, c.Username, c.LikeCount, liked, c.Content)
	}
	app.printf("\nPage %d of %d (%d comments total)\n", result.Current, result.Pages, result.Total)
	return nil
}

func newCommentAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <item-id> <content>",
		Short: "Post a comment on an exhibit",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			itemID, err := parseID(args[0], "exhibit")
			if err != nil {
				return err
			}
			app, err := newApp()
			if err != nil {
				return err
			}
			return runCommentAdd(app, itemID, args[1])
		},
	}
}

func runCommentAdd(app *App, itemID int64, content string) error {
	if err := app.navigateTo(fmt.Sprintf("/items/%d", itemID)); err != nil {
		return err
	}

	id, err := app.Client.AddComment(context.Background(), itemID, api.AddCommentRequest{Content: content})
	if err != nil {
		return err
	}

	app.printf("✓ Comment posted (id %d).\n", id)
	return nil
}

func newCommentDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <comment-id>",
		Aliases: []string{"delete"},
		Short:   "Delete your own comment",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			commentID, err := parseID(args[0], "comment")
			if err != nil {
				return err
			}
			app, err := newApp()
			if err != nil {
				return err
			}
			return runCommentDelete(app, commentID)
		},
	}
}

func runCommentDelete(app *App, commentID int64) error {
	if err := app.navigateTo("/items"); err != nil {
		return err
	}

	if err := app.Client.DeleteComment(context.Background(), commentID); err != nil {
		return err
	}

	app.println("✓ Comment deleted.")
	return nil
}

func newCommentLikeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "like <comment-id>",
		Short: "Like a comment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			commentID, err := parseID(args[0], "comment")
			if err != nil {
				return err
			}
			app, err := newApp()
			if err != nil {
				return err
			}
			return runCommentLike(app, commentID, true)
		},
	}
}

func newCommentUnlikeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unlike <comment-id>",
		Short: "Withdraw a like",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			commentID, err := parseID(args[0], "comment")
			if err != nil {
				return err
			}
			app, err := newApp()
			if err != nil {
				return err
			}
			return runCommentLike(app, commentID, false)
		},
	}
}

func runCommentLike(app *App, commentID int64, like bool) error {
	if err := app.navigateTo("/items"); err != nil {
		return err
	}

	var ok bool
	var err error
	if like {
		ok, err = app.Client.LikeComment(context.Background(), commentID)
	} else {
		ok, err = app.Client.UnlikeComment(context.Background(), commentID)
	}
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("the backend rejected the request")
	}

	if like {
		app.println("✓ Liked.")
	} else {
		app.println("✓ Like withdrawn.")
	}
	return nil
}
