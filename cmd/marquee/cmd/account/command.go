// Package account implements registration, login and logout.
package account

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/marquee/cmd/application"
	"github.com/agentstation/marquee/internal/cmd/emoji"
	"github.com/agentstation/marquee/internal/cmd/output"
)

// passwordEnv is read when --password is not given.
const passwordEnv = "MARQUEE_PASSWORD"

// NewCommand creates the account command.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "account",
		GroupID: "account",
		Short:   "Manage the local account and session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(
		newRegisterCommand(app),
		newLoginCommand(app),
		newLogoutCommand(app),
		newWhoamiCommand(app),
	)
	return cmd
}

func newRegisterCommand(app application.Application) *cobra.Command {
	var name, email, password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		Example: `  marquee account register --name Ann --email ann@example.com --password secret
  MARQUEE_PASSWORD=secret marquee account register --name Ann --email ann@example.com`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, err := app.Client(ctx)
			if err != nil {
				return err
			}
			acct, err := client.Register(ctx, name, email, passwordOrEnv(password))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Account created for %s. Log in with 'marquee account login'.\n", emoji.Success, acct.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password (or set "+passwordEnv+")")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newLoginCommand(app application.Application) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Start a session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, err := app.Client(ctx)
			if err != nil {
				return err
			}
			session, err := client.Login(ctx, email, passwordOrEnv(password))
			if err != nil {
				return fmt.Errorf("invalid email or password: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Welcome back, %s\n", emoji.Success, session.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password (or set "+passwordEnv+")")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newLogoutCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session; saved movies and reviews are kept",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, err := app.Client(ctx)
			if err != nil {
				return err
			}
			if client.Session() == nil {
				fmt.Fprintln(cmd.OutOrStdout(), emoji.Info, "Not logged in")
				return nil
			}
			if err := client.Logout(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), emoji.Success, "Logged out")
			return nil
		},
	}
}

func newWhoamiCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.Client(cmd.Context())
			if err != nil {
				return err
			}
			return output.Write(cmd.OutOrStdout(), app.OutputFormat(), output.Session{Session: client.Session()})
		},
	}
}

func passwordOrEnv(flag string) string {
	if flag != "" {
		return flag
	}
	return os.Getenv(passwordEnv)
}
