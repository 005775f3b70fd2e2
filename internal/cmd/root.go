package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "refadmin",
	Short: "Admin console for the referral platform",
	Long: `refadmin is the administrative client for the referral/commission
tracking platform. It manages users, shows dashboard statistics and
commission logs, and handles account registration with referral-code
validation.

Run 'refadmin console' for the interactive console, or use the
subcommands directly.

Configuration comes from REFADMIN_-prefixed environment variables;
REFADMIN_API_URL points at the backend.`,
	SilenceUsage: true,
}

// ExecuteContext runs the root command
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
