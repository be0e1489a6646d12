package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/musegate-dev/musegate/internal/api"
	"github.com/musegate-dev/musegate/internal/guard"
)

// NewLogoutCmd creates the logout command
func NewLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			return runLogout(app)
		},
	}
}

func runLogout(app *App) error {
	if !app.Auth.IsAuthed() {
		app.println("Not logged in.")
		return nil
	}

	// Best effort server-side invalidation. A 401 means the session was
	// already dead and the policy has wiped it for us; anything else is
	// reported but the local session still gets cleared.
	if _, err := app.Client.Logout(context.Background()); err != nil {
		var authErr *api.AuthError
		if !errors.As(err, &authErr) {
			app.Log.Warn().Err(err).Msg("server-side logout failed, clearing local session anyway")
		}
	}

	if err := app.Auth.ClearUser(); err != nil {
		return err
	}
	app.Router.Redirect(guard.LoginUserPath)

	app.println("✓ Logged out.")
	return nil
}
