// ABOUTME: Login, register, logout, and whoami commands
// ABOUTME: Manage the persisted session used by the other commands

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/inkwell-books/storefront/internal/session"
)

var (
	loginEmail    string
	loginPassword string
	registerName  string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the bookstore",
	Long: `Authenticate against the bookstore backend and persist the session.

The admin endpoint is tried automatically when the regular login is
rejected, so admin accounts use the same command.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runLogin(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runRegister(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the persisted session",
	Run: func(cmd *cobra.Command, args []string) {
		api := newAPIClient()
		sess, _ := openSession(api)
		sess.Logout()
		fmt.Println("Logged out.")
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	Run: func(cmd *cobra.Command, args []string) {
		exitCode := runWhoami(os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)

	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password")
	loginCmd.MarkFlagRequired("email")
	loginCmd.MarkFlagRequired("password")

	registerCmd.Flags().StringVar(&registerName, "name", "", "Full name")
	registerCmd.Flags().StringVar(&loginEmail, "email", "", "Account email")
	registerCmd.Flags().StringVar(&loginPassword, "password", "", "Account password")
	registerCmd.MarkFlagRequired("name")
	registerCmd.MarkFlagRequired("email")
	registerCmd.MarkFlagRequired("password")
}

// runLogin performs the login and returns an exit code.
func runLogin(ctx context.Context, w io.Writer) int {
	api := newAPIClient()
	sess, _ := openSession(api)

	if err := sess.Login(ctx, loginEmail, loginPassword); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	st := sess.State()
	fmt.Fprintf(w, "Logged in as %s (%s)\n", st.User.Name, st.User.Role)
	return 0
}

// runRegister creates an account. The backend does not log the account in,
// so a login follows registration.
func runRegister(ctx context.Context, w io.Writer) int {
	api := newAPIClient()
	sess, _ := openSession(api)

	if _, err := api.Register(ctx, registerName, loginEmail, loginPassword); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if err := sess.Login(ctx, loginEmail, loginPassword); err != nil {
		fmt.Fprintf(w, "Registered, but login failed: %v\n", err)
		return 2
	}

	fmt.Fprintf(w, "Welcome, %s!\n", registerName)
	return 0
}

// runWhoami prints the current session state.
func runWhoami(w io.Writer) int {
	api := newAPIClient()
	sess, _ := openSession(api)
	st := sess.State()

	if IsJSONOutput() {
		out := map[string]interface{}{
			"logged_in": st.LoggedIn,
		}
		if st.User != nil {
			out["user"] = st.User
		}
		data, _ := json.MarshalIndent(out, "", "  ")
		fmt.Fprintln(w, string(data))
	} else if st.LoggedIn && st.User != nil {
		fmt.Fprintf(w, "Logged in as %s <%s> role=%s id=%s\n", st.User.Name, st.User.Email, st.User.Role, st.User.ID)
	} else {
		fmt.Fprintln(w, "Not logged in (cart identity: "+session.AnonymousIdentity+")")
	}

	if !st.LoggedIn {
		return 1
	}
	return 0
}
