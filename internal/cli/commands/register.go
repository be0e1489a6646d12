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

// NewRegisterCmd creates the register command
func NewRegisterCmd() *cobra.Command {
	var username, nickname, phone string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new visitor account",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			return runRegister(app, username, nickname, phone)
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Username for the new account")
	cmd.Flags().StringVar(&nickname, "nickname", "", "Display name (optional)")
	cmd.Flags().StringVar(&phone, "phone", "", "Phone number (optional)")
	cmd.MarkFlagRequired("username")

	return cmd
}

func runRegister(app *App, username, nickname, phone string) error {
	if err := app.navigateTo(guard.RegisterPath); err != nil {
		return err
	}

	if !term.IsTerminal(int(syscall.Stdin)) {
		return fmt.Errorf("register needs an interactive terminal to read the password")
	}

	fmt.Print("Password: ")
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	fmt.Println()

	fmt.Print("Confirm password: ")
	byteConfirm, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	fmt.Println()

	id, err := app.Client.Register(context.Background(), api.RegisterRequest{
		Username:        username,
		Password:        string(bytePassword),
		ConfirmPassword: string(byteConfirm),
		Nickname:        nickname,
		Phone:           phone,
	})
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	app.printf("✓ Account created (id %d). Log in with: musegate login --username %s\n", id, username)
	return nil
}
