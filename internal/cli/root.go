package cli

import (
	"github.com/andy/tuitiondesk/internal/app"
	"github.com/spf13/cobra"
)

var appInstance *app.App

var rootCmd = &cobra.Command{
	Use:   "tuitiondesk",
	Short: "Administration console for a tuition center",
	Long: `Tuitiondesk manages student invoices for a tuition center: browse the
student directory, draft and submit invoices, and review revenue.

By default, running tuitiondesk without arguments launches the interactive TUI.
Use subcommands for CLI operations.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Default behavior: launch TUI
		launchTUI(cmd, args)
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetApp sets the app instance for commands to use
func SetApp(a *app.App) {
	appInstance = a
}

func init() {
	rootCmd.AddCommand(membersCmd)
	rootCmd.AddCommand(invoicesCmd)
	rootCmd.AddCommand(tuiCmd)
}
