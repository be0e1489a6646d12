package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/musegate-dev/musegate/internal/cli/commands"
)

var version = "dev" // Will be set during build

var rootCmd = &cobra.Command{
	Use:   "musegate",
	Short: "Musegate - Museum visitor services from the terminal",
	Long: `Musegate CLI - Browse exhibits, book visits and manage the museum
from the command line.

Visitor commands talk to the museum backend with your saved session;
admin commands additionally require an administrator login.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("musegate version %s\n", version)
		},
	})

	rootCmd.AddCommand(commands.NewLoginCmd())
	rootCmd.AddCommand(commands.NewLogoutCmd())
	rootCmd.AddCommand(commands.NewRegisterCmd())
	rootCmd.AddCommand(commands.NewWhoamiCmd())
	rootCmd.AddCommand(commands.NewProfileCmd())
	rootCmd.AddCommand(commands.NewItemsCmd())
	rootCmd.AddCommand(commands.NewCommentsCmd())
	rootCmd.AddCommand(commands.NewBookingCmd())
	rootCmd.AddCommand(commands.NewNoticesCmd())
	rootCmd.AddCommand(commands.NewAdminCmd())
}

// Execute runs the root command
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
