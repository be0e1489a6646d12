package commands

import (
	"context"
	"fmt"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/musegate-dev/musegate/internal/api"
	"github.com/musegate-dev/musegate/internal/guard"
)

// NewWhoamiCmd creates the whoami command
func NewWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			return runWhoami(app)
		},
	}
}

func runWhoami(app *App) error {
	if !app.Auth.IsAuthed() {
		app.println("Not logged in.")
		return nil
	}

	info, err := app.Client.UserInfo(context.Background())
	if err != nil {
		return err
	}

	app.printf("User ID: %d\n", info.ID)
	app.printf("Surface: %s\n", app.Auth.LoginType())
	return nil
}

// NewProfileCmd creates the profile command group
func NewProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show and manage your profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			return runProfileShow(app)
		},
	}

	cmd.AddCommand(newProfileUpdateCmd())
	cmd.AddCommand(newProfileVerifyCmd())
	cmd.AddCommand(newProfilePasswdCmd())

	return cmd
}

func runProfileShow(app *App) error {
	if err := app.navigateTo("/profile"); err != nil {
		return err
	}

	profile, err := app.Client.UserProfile(context.Background())
	if err != nil {
		return err
	}

	app.printf("Username:  %s\n", profile.Username)
	if profile.Phone != "" {
		app.printf("Phone:     %s\n", profile.Phone)
	}
	if profile.RealName != "" {
		app.printf("Real name: %s (verified)\n", profile.RealName)
	}
	if profile.AvatarURL != "" {
		app.printf("Avatar:    %s\n", profile.AvatarURL)
	}
	return nil
}

func newProfileUpdateCmd() *cobra.Command {
	var avatarURL, phone string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update avatar and/or phone number",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			return runProfileUpdate(app, avatarURL, phone)
		},
	}

	cmd.Flags().StringVar(&avatarURL, "avatar", "", "New avatar URL")
	cmd.Flags().StringVar(&phone, "phone", "", "New phone number")

	return cmd
}

func runProfileUpdate(app *App, avatarURL, phone string) error {
	if avatarURL == "" && phone == "" {
		return fmt.Errorf("nothing to update (use --avatar and/or --phone)")
	}

	if err := app.navigateTo("/profile"); err != nil {
		return err
	}

	ok, err := app.Client.UpdateProfile(context.Background(), api.UpdateProfileRequest{
		AvatarURL: avatarURL,
		Phone:     phone,
	})
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("profile update was rejected")
	}

	app.println("✓ Profile updated.")
	return nil
}

func newProfileVerifyCmd() *cobra.Command {
	var realName, idCard string

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Submit real-name verification",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			return runProfileVerify(app, realName, idCard)
		},
	}

	cmd.Flags().StringVar(&realName, "name", "", "Legal name")
	cmd.Flags().StringVar(&idCard, "id-card", "", "18-digit ID card number")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("id-card")

	return cmd
}

func runProfileVerify(app *App, realName, idCard string) error {
	if err := app.navigateTo("/profile"); err != nil {
		return err
	}

	ok, err := app.Client.RealNameVerify(context.Background(), api.RealNameVerifyRequest{
		RealName: realName,
		IDCard:   idCard,
	})
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("verification was rejected")
	}

	app.println("✓ Real-name verification submitted.")
	return nil
}

func newProfilePasswdCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "passwd",
		Short: "Change the account password",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			return runProfilePasswd(app)
		},
	}
}

func runProfilePasswd(app *App) error {
	if err := app.navigateTo("/profile"); err != nil {
		return err
	}

	if !term.IsTerminal(int(syscall.Stdin)) {
		return fmt.Errorf("passwd needs an interactive terminal")
	}

	readSecret := func(label string) (string, error) {
		fmt.Printf("%s: ", label)
		b, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(b), nil
	}

	oldPassword, err := readSecret("Current password")
	if err != nil {
		return err
	}
	newPassword, err := readSecret("New password")
	if err != nil {
		return err
	}
	confirm, err := readSecret("Confirm new password")
	if err != nil {
		return err
	}

	ok, err := app.Client.ChangePassword(context.Background(), api.ChangePasswordRequest{
		OldPassword:     oldPassword,
		NewPassword:     newPassword,
		ConfirmPassword: confirm,
	})
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("password change was rejected")
	}

	// A password change invalidates the token server-side. Force a clean
	// local state so the next command prompts for login instead of hitting
	// a confusing 401.
	if err := app.Auth.ClearUser(); err != nil {
		return err
	}
	app.Router.Redirect(guard.LoginUserPath)

	app.println("✓ Password changed. Please log in again.")
	return nil
}
