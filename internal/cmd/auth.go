package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"

	"github.com/reftrack/refadmin/internal/api"
	"github.com/reftrack/refadmin/internal/errors"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the platform",
	Long: `Log in to the referral platform with your email and password.

The session token and profile are stored locally and reused by every
other command until you log out.

Examples:
  refadmin login --email admin@example.com --password secret`,
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		if email == "" {
			return fmt.Errorf("--email is required")
		}
		if password == "" {
			return fmt.Errorf("--password is required")
		}

		app, err := newApp(cmd.Context())
		if err != nil {
			return err
		}

		resp, err := app.client.Login(cmd.Context(), email, password)
		if err != nil {
			return errors.Wrap(errors.ErrCodeAuthLoginFailed, "login failed", err)
		}

		if err := app.store.Login(cmd.Context(), resp.Token, resp.User); err != nil {
			return err
		}

		fmt.Printf("Logged in as %s\n", resp.User.Email)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and remove the local session",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd.Context())
		if err != nil {
			return err
		}

		snapshot := app.store.Snapshot()
		if !snapshot.Authenticated() {
			fmt.Println("Not logged in.")
			return nil
		}

		if err := app.store.Logout(cmd.Context()); err != nil {
			return err
		}

		fmt.Printf("Logged out: %s\n", snapshot.Profile.Email)
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current session",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp(cmd.Context())
		if err != nil {
			return err
		}

		snapshot := app.store.Snapshot()
		if !snapshot.Authenticated() {
			fmt.Println("Not logged in.")
			fmt.Println("Use 'refadmin login' to authenticate.")
			return nil
		}

		profile := snapshot.Profile
		roles := make([]string, 0, len(profile.Roles))
		for _, role := range profile.Roles {
			roles = append(roles, role.Name)
		}

		fmt.Printf("Logged in as: %s <%s>\n", profile.Name, profile.Email)
		fmt.Printf("Roles:        %s\n", strings.Join(roles, ", "))
		fmt.Printf("Admin:        %v\n", app.store.IsAdmin())
		if expiry := tokenExpiry(snapshot.Credential); !expiry.IsZero() {
			fmt.Printf("Token expires: %s\n", expiry.Format(time.RFC1123))
		}
		return nil
	},
}

// tokenExpiry decodes the credential as a JWT to show its expiry. The
// credential is otherwise opaque to the client, so a non-JWT token simply
// yields no expiry line.
func tokenExpiry(credential string) time.Time {
	token, _, err := jwt.NewParser().ParseUnverified(credential, jwt.MapClaims{})
	if err != nil {
		return time.Time{}
	}
	exp, err := token.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a new account",
	Long: `Register a new account with the referral platform.

A referral code may be supplied with --referral. The code is checked
before submission, but an invalid code never blocks registration: the
referral is optional and the backend has the final word.

Examples:
  refadmin register --name "Jane Doe" --email jane@example.com --password secret
  refadmin register --name "Jane Doe" --email jane@example.com --password secret --referral GOOD1`,
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		code, _ := cmd.Flags().GetString("referral")

		if name == "" || email == "" || password == "" {
			return fmt.Errorf("--name, --email and --password are required")
		}

		app, err := newApp(cmd.Context())
		if err != nil {
			return err
		}

		req := api.RegisterRequest{Name: name, Email: email, Password: password}
		if code != "" {
			check, err := app.client.CheckReferral(cmd.Context(), code)
			switch {
			case err != nil || !check.IsValid:
				fmt.Println("Warning: referral code did not validate; continuing without confirmation.")
			case check.UserName != "":
				fmt.Printf("Referred by: %s\n", check.UserName)
			}
			req.ReferralID = &code
		}

		resp, err := app.client.Register(cmd.Context(), req)
		if err != nil {
			return errors.Wrap(errors.ErrCodeAuthRegisterFailed, "registration failed", err)
		}

		if err := app.store.Login(cmd.Context(), resp.Token, resp.User); err != nil {
			return err
		}

		fmt.Printf("Registered and logged in as %s\n", resp.User.Email)
		return nil
	},
}

func init() {
	loginCmd.Flags().String("email", "", "account email")
	loginCmd.Flags().String("password", "", "account password")

	registerCmd.Flags().String("name", "", "full name")
	registerCmd.Flags().String("email", "", "account email")
	registerCmd.Flags().String("password", "", "account password")
	registerCmd.Flags().String("referral", "", "referral code (optional)")

	rootCmd.AddCommand(loginCmd, logoutCmd, statusCmd, registerCmd)
}
