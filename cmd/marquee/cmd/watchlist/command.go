// Package watchlist implements the watchlist command.
package watchlist

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/marquee/cmd/application"
	"github.com/agentstation/marquee/internal/cmd/emoji"
	"github.com/agentstation/marquee/internal/cmd/output"
)

// NewCommand creates the watchlist command. Without a subcommand it lists
// saved movies.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "watchlist",
		GroupID: "core",
		Short:   "Manage saved movies",
		Aliases: []string{"wl"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return list(cmd, app)
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List saved movies",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return list(cmd, app)
			},
		},
		&cobra.Command{
			Use:     "add <movie-id>...",
			Short:   "Look up movies and save them",
			Args:    cobra.MinimumNArgs(1),
			Example: `  marquee watchlist add tt0111161 tt0068646`,
			RunE: func(cmd *cobra.Command, args []string) error {
				return add(cmd, app, args)
			},
		},
		&cobra.Command{
			Use:     "remove <movie-id>...",
			Short:   "Remove saved movies",
			Aliases: []string{"rm"},
			Args:    cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return remove(cmd, app, args)
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Remove every saved movie",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				client, err := app.Client(cmd.Context())
				if err != nil {
					return err
				}
				if err := client.ClearWatchlist(cmd.Context()); err != nil {
					return err
				}
				if err := client.Flush(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), emoji.Success, "Watchlist cleared")
				return nil
			},
		},
	)

	return cmd
}

func list(cmd *cobra.Command, app application.Application) error {
	client, err := app.Client(cmd.Context())
	if err != nil {
		return err
	}
	return output.Write(cmd.OutOrStdout(), app.OutputFormat(), output.Watchlist(client.Watchlist()))
}

func add(cmd *cobra.Command, app application.Application, ids []string) error {
	ctx := cmd.Context()
	client, err := app.Client(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, id := range ids {
		if client.InWatchlist(id) {
			fmt.Fprintf(out, "%s %s is already saved\n", emoji.Skipped, id)
			continue
		}
		m, err := client.Movie(ctx, id)
		if err != nil {
			return err
		}
		added, err := client.AddToWatchlist(ctx, *m)
		if err != nil {
			return err
		}
		if added {
			fmt.Fprintf(out, "%s Saved %s (%s)\n", emoji.Success, m.Title, m.ID)
		}
	}
	return client.Flush(ctx)
}

func remove(cmd *cobra.Command, app application.Application, ids []string) error {
	ctx := cmd.Context()
	client, err := app.Client(ctx)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, id := range ids {
		removed, err := client.RemoveFromWatchlist(ctx, id)
		if err != nil {
			return err
		}
		if removed {
			fmt.Fprintf(out, "%s Removed %s\n", emoji.Success, id)
		} else {
			fmt.Fprintf(out, "%s %s was not saved\n", emoji.Skipped, id)
		}
	}
	return client.Flush(ctx)
}
