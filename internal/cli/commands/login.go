package commands

import (
	"context"
	"fmt"
	"os"
	"syscall"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/musegate-dev/musegate/internal/api"
	"github.com/musegate-dev/musegate/internal/authstate"
	"github.com/musegate-dev/musegate/internal/guard"
	"github.com/musegate-dev/musegate/internal/session"
)

// NewLoginCmd creates the login command
func NewLoginCmd() *cobra.Command {
	var username, password string
	var admin bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate with the museum backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			return runLogin(app, username, password, admin)
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Username (or set MUSEGATE_USERNAME)")
	cmd.Flags().StringVar(&password, "password", "", "Password (or set MUSEGATE_PASSWORD, will prompt if not provided)")
	cmd.Flags().BoolVar(&admin, "admin", false, "Log in to the admin surface")

	return cmd
}

func runLogin(app *App, username, password string, admin bool) error {
	// Environment fallbacks for CI and scripting
	if username == "" {
		username = os.Getenv("MUSEGATE_USERNAME")
	}
	if password == "" {
		password = os.Getenv("MUSEGATE_PASSWORD")
	}

	loginType := session.LoginTypeUser
	if admin {
		loginType = session.LoginTypeAdmin
	} else if os.Getenv("MUSEGATE_USERNAME") == "" && term.IsTerminal(int(syscall.Stdin)) && username == "" {
		// Fully interactive session with no surface decided yet: ask
		selected, err := promptLoginSurface()
		if err != nil {
			return err
		}
		loginType = selected
	}

	if username == "" {
		if !term.IsTerminal(int(syscall.Stdin)) {
			return fmt.Errorf("username is required (use --username flag or MUSEGATE_USERNAME env var)")
		}
		prompt := promptui.Prompt{Label: "Username"}
		entered, err := prompt.Run()
		if err != nil {
			return fmt.Errorf("login cancelled: %w", err)
		}
		username = entered
	}

	if password == "" {
		if !term.IsTerminal(int(syscall.Stdin)) {
			return fmt.Errorf("password is required in non-interactive mode (use --password flag or MUSEGATE_PASSWORD env var)")
		}
		fmt.Print("Password: ")
		bytePassword, err := term.ReadPassword(int(syscall.Stdin))
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		password = string(bytePassword)
		fmt.Println()
	}

	// Move to the matching login page first so a later 401 knows which
	// surface the session belonged to
	loginPath := guard.LoginUserPath
	if loginType == session.LoginTypeAdmin {
		loginPath = guard.LoginAdminPath
	}
	if _, err := app.Router.Navigate(loginPath); err != nil {
		return err
	}

	resp, err := app.Client.Login(context.Background(), api.LoginRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	if loginType == session.LoginTypeAdmin && resp.Role != authstate.RoleAdmin {
		return fmt.Errorf("account %q is not an administrator", resp.Username)
	}

	profile := authstate.Profile{
		ID:        resp.ID,
		Username:  resp.Username,
		Nickname:  resp.Nickname,
		AvatarURL: resp.AvatarURL,
		Role:      resp.Role,
		Token:     resp.Token,
	}
	if err := app.Auth.SetUser(profile, loginType); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	home := guard.HomePath
	if loginType == session.LoginTypeAdmin {
		home = guard.AdminHomePath
	}
	if _, err := app.Router.Navigate(home); err != nil {
		return err
	}

	app.println("✓ Login successful!")
	app.printf("  User: %s", resp.Username)
	if resp.Nickname != "" {
		app.printf(" (%s)", resp.Nickname)
	}
	app.println()
	if resp.Role == authstate.RoleAdmin {
		app.println("  Role: Admin")
	}

	return nil
}

func promptLoginSurface() (string, error) {
	prompt := promptui.Select{
		Label: "Log in as",
		Items: []string{"Visitor", "Administrator"},
		Size:  2,
	}

	index, _, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("login cancelled: %w", err)
	}

	if index == 1 {
		return session.LoginTypeAdmin, nil
	}
	return session.LoginTypeUser, nil
}
