package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/reftrack/refadmin/internal/guard"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show aggregate platform statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		if err := app.requireAccess(guard.Authenticated); err != nil {
			return err
		}

		stats, err := app.client.GetDashboardStats(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		if app.store.IsAdmin() {
			fmt.Fprintf(w, "Total Users\t%d\n", stats.UserCount)
		}
		fmt.Fprintf(w, "Total Referrals\t%d\n", stats.RefereeCount)
		fmt.Fprintf(w, "Active Referrals\t%d\n", stats.ActiveReferralsCount)
		fmt.Fprintf(w, "Revenue\t$%.2f\n", stats.TotalCommissions)
		w.Flush()
		return nil
	},
}

var commissionsCmd = &cobra.Command{
	Use:   "commissions",
	Short: "Show the commission ledger",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		if err := app.requireAccess(guard.AdminOnly); err != nil {
			return err
		}

		logs, err := app.client.ListCommissionLogs(cmd.Context())
		if err != nil {
			return err
		}

		if len(logs) == 0 {
			fmt.Println("No commission logs found")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NO.\tUSER\tEMAIL\tREFERRAL ID\tAMOUNT\tTYPE\tDATE")
		for i, entry := range logs {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t$%.2f\t%s\t%s\n",
				i+1,
				entry.User.Name,
				entry.User.Email,
				entry.User.ReferralUUID,
				entry.Amount,
				entry.Type,
				entry.CreatedAt.Format("2006-01-02 15:04"),
			)
		}
		w.Flush()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dashboardCmd, commissionsCmd)
}
