package cmd

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/reftrack/refadmin/internal/api"
	"github.com/reftrack/refadmin/internal/guard"
	"github.com/reftrack/refadmin/internal/session"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage platform users",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all users",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		if err := app.requireAccess(guard.AdminOnly); err != nil {
			return err
		}

		users, err := app.client.ListUsers(cmd.Context())
		if err != nil {
			return err
		}

		printUsers(users)
		return nil
	},
}

var usersGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid user ID %q", args[0])
		}

		app, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		if err := app.requireAccess(guard.AdminOnly); err != nil {
			return err
		}

		user, err := app.client.GetUser(cmd.Context(), id)
		if err != nil {
			return err
		}

		printUsers([]session.Profile{*user})
		return nil
	},
}

var usersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a user",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		if name == "" || email == "" || password == "" {
			return fmt.Errorf("--name, --email and --password are required")
		}

		app, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		if err := app.requireAccess(guard.AdminOnly); err != nil {
			return err
		}

		user, err := app.client.CreateUser(cmd.Context(), api.UserInput{
			Name: name, Email: email, Password: password,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Created user %d (%s)\n", user.ID, user.Email)
		return nil
	},
}

var usersUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid user ID %q", args[0])
		}

		name, _ := cmd.Flags().GetString("name")
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		app, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		if err := app.requireAccess(guard.AdminOnly); err != nil {
			return err
		}

		user, err := app.client.UpdateUser(cmd.Context(), id, api.UserInput{
			Name: name, Email: email, Password: password,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Updated user %d (%s)\n", user.ID, user.Email)
		return nil
	},
}

var usersDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid user ID %q", args[0])
		}

		app, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		if err := app.requireAccess(guard.AdminOnly); err != nil {
			return err
		}

		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			confirmed := false
			form := huh.NewForm(huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Delete user %d?", id)).
					Value(&confirmed),
			))
			if err := form.Run(); err != nil {
				return err
			}
			if !confirmed {
				fmt.Println("Aborted.")
				return nil
			}
		}

		if err := app.client.DeleteUser(cmd.Context(), id); err != nil {
			return err
		}

		fmt.Printf("Deleted user %d\n", id)
		return nil
	},
}

func printUsers(users []session.Profile) {
	if len(users) == 0 {
		fmt.Println("No users found")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tROLE")
	for _, user := range users {
		role := "N/A"
		if len(user.Roles) > 0 {
			role = user.Roles[0].Name
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", user.ID, user.Name, user.Email, role)
	}
	w.Flush()
}

func init() {
	usersCreateCmd.Flags().String("name", "", "full name")
	usersCreateCmd.Flags().String("email", "", "account email")
	usersCreateCmd.Flags().String("password", "", "account password")

	usersUpdateCmd.Flags().String("name", "", "full name")
	usersUpdateCmd.Flags().String("email", "", "account email")
	usersUpdateCmd.Flags().String("password", "", "new password")

	usersDeleteCmd.Flags().Bool("yes", false, "skip the confirmation prompt")

	usersCmd.AddCommand(usersListCmd, usersGetCmd, usersCreateCmd, usersUpdateCmd, usersDeleteCmd)
	rootCmd.AddCommand(usersCmd)
}
