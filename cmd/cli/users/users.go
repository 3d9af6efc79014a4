package users

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/crucial707/travel-tracker/cmd/cli/client"
	"github.com/crucial707/travel-tracker/cmd/cli/config"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// ==========================
// CLI Command Init
// ==========================
func InitUsers(rootCmd *cobra.Command) {
	usersCmd := &cobra.Command{
		Use:   "users",
		Short: "Register, log in and log out",
		Long: `Register or log in to the travel tracker API.
The token from login is stored in ~/.travel_token for later commands.`,
	}

	usersCmd.AddCommand(registerCmd(), loginCmd(), logoutCmd())
	rootCmd.AddCommand(usersCmd)
}

func credentialFlags(cmd *cobra.Command, email *string) {
	cmd.Flags().StringVar(email, "email", "", "account email")
	_ = cmd.MarkFlagRequired("email")
}

// ==========================
// Register User
// ==========================
func registerCmd() *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new user",
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := readPassword(cmd)
			if err != nil {
				return err
			}

			var user struct {
				ID    int    `json:"id"`
				Email string `json:"email"`
			}
			payload := map[string]string{"email": email, "password": password}
			if err := client.New().Do(cmd.Context(), "POST", "/auth/register", payload, &user); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Registered %s (id %d). You can now log in.\n", user.Email, user.ID)
			return nil
		},
	}
	credentialFlags(cmd, &email)
	return cmd
}

// ==========================
// Login User
// ==========================
func loginCmd() *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and save the token locally",
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := readPassword(cmd)
			if err != nil {
				return err
			}

			var result struct {
				Token string `json:"token"`
			}
			payload := map[string]string{"email": email, "password": password}
			if err := client.New().Do(cmd.Context(), "POST", "/auth/login", payload, &result); err != nil {
				return err
			}
			if result.Token == "" {
				return errors.New("token not returned by API")
			}
			if err := config.SaveToken(result.Token); err != nil {
				return fmt.Errorf("save token: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Login successful. Token saved.")
			return nil
		},
	}
	credentialFlags(cmd, &email)
	return cmd
}

// ==========================
// Logout User
// ==========================
func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the saved token",
		RunE: func(cmd *cobra.Command, args []string) error {
			removed, err := config.ClearToken()
			if err != nil {
				return err
			}
			if !removed {
				fmt.Fprintln(cmd.OutOrStdout(), "No user logged in.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out successfully.")
			return nil
		},
	}
}

// readPassword prompts without echo on a terminal and reads one line otherwise.
func readPassword(cmd *cobra.Command) (string, error) {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return "", errors.New("password is required")
	}
	return password, nil
}
