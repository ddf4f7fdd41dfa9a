package cli

import (
	"fmt"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/example/newsroom/internal/ports/primary"
	"github.com/example/newsroom/internal/wire"
)

// LoginCmd returns the login command
func LoginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session locally",
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				entered, err := readPassword("Password: ")
				if err != nil {
					return err
				}
				password = entered
			}
			_, err := wire.AuthAdapter().Login(cmd.Context(), email, password)
			return err
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "Account email (required)")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Password (prompted when omitted)")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

// LogoutCmd returns the logout command
func LogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the local session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return wire.AuthAdapter().Logout(cmd.Context())
		},
	}
}

// WhoAmICmd returns the whoami command
func WhoAmICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := wire.AuthAdapter().WhoAmI(cmd.Context())
			return err
		},
	}
}

// UserCmd returns the user command
func UserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage newsroom accounts",
	}
	cmd.AddCommand(userCreateCmd())
	cmd.AddCommand(userListCmd())
	return cmd
}

func userCreateCmd() *cobra.Command {
	var req primary.CreateUserRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an account",
		Example: `  newsroom user create --email ana@newsroom.local --name "Ana Souza" --role producer`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if req.Password == "" {
				entered, err := readPassword("Password for new user: ")
				if err != nil {
					return err
				}
				req.Password = entered
			}
			_, err := wire.AuthAdapter().CreateUser(NewContext(cmd), req)
			return err
		},
	}

	cmd.Flags().StringVarP(&req.Email, "email", "e", "", "Account email (required)")
	cmd.Flags().StringVarP(&req.Name, "name", "n", "", "Display name (required)")
	cmd.Flags().StringVarP(&req.Password, "password", "p", "", "Password (prompted when omitted)")
	cmd.Flags().StringVarP(&req.Role, "role", "r", "editor", "Role: admin, editor, producer or viewer")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func userListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := wire.AuthAdapter().ListUsers(cmd.Context())
			return err
		},
	}
}

// readPassword prompts without echo.
func readPassword(prompt string) (string, error) {
	rl, err := readline.New("")
	if err != nil {
		return "", fmt.Errorf("failed to open terminal: %w", err)
	}
	defer func() { _ = rl.Close() }()

	pw, err := rl.ReadPassword(prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(pw), "\r\n"), nil
}
