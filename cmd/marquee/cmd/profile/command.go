// Package profile implements the profile command.
package profile

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/marquee/cmd/application"
	"github.com/agentstation/marquee/internal/cmd/output"
)

// NewCommand creates the profile command, which summarizes the watchlist
// by genre.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "profile",
		GroupID: "core",
		Short:   "Show watchlist genre statistics",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.Client(cmd.Context())
			if err != nil {
				return err
			}
			return output.Write(cmd.OutOrStdout(), app.OutputFormat(), output.Profile(client.Profile()))
		},
	}
}
