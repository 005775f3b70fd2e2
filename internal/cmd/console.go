package cmd

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/reftrack/refadmin/internal/tui"
)

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Open the interactive admin console",
	Long: `Open the full-screen interactive console with the dashboard,
user management, commission logs, and registration screens.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd.Context())
		if err != nil {
			return err
		}

		model := tui.NewModel(tui.App{
			Session:     app.store,
			Client:      app.client,
			Logger:      app.logger,
			AuthExpired: app.authExpired,
		})

		program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
		_, err = program.Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(consoleCmd)
}
