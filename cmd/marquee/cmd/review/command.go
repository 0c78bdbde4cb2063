// Package review implements the review command.
package review

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/marquee"
	"github.com/agentstation/marquee/cmd/application"
	"github.com/agentstation/marquee/internal/cmd/emoji"
	"github.com/agentstation/marquee/internal/cmd/output"
	"github.com/agentstation/marquee/pkg/movies"
)

// NewCommand creates the review command.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "review",
		GroupID: "core",
		Short:   "Write and read movie reviews",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newAddCommand(app), newListCommand(app))
	return cmd
}

func newAddCommand(app application.Application) *cobra.Command {
	var (
		rating int
		text   string
	)

	cmd := &cobra.Command{
		Use:     "add <movie-id>",
		Short:   "Review a movie",
		Args:    cobra.ExactArgs(1),
		Example: `  marquee review add tt0111161 --rating 5 --text "Hope is a good thing."`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, err := app.Client(ctx)
			if err != nil {
				return err
			}

			m, err := lookup(ctx, client, args[0])
			if err != nil {
				return err
			}
			r, err := client.SubmitReview(ctx, m, rating, text)
			if err != nil {
				return err
			}
			if err := client.Flush(ctx); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s Review saved for %s (%d/5)\n", emoji.Success, r.MovieTitle, r.Rating)
			return nil
		},
	}

	cmd.Flags().IntVarP(&rating, "rating", "r", 0, "stars from 1 to 5")
	cmd.Flags().StringVarP(&text, "text", "t", "", "review text")
	_ = cmd.MarkFlagRequired("rating")
	_ = cmd.MarkFlagRequired("text")

	return cmd
}

func newListCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "list [movie-id]",
		Short: "List reviews, optionally for one movie",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.Client(cmd.Context())
			if err != nil {
				return err
			}
			reviews := client.Reviews()
			if len(args) == 1 {
				reviews = client.ReviewsFor(args[0])
			}
			return output.Write(cmd.OutOrStdout(), app.OutputFormat(), output.Reviews(reviews))
		},
	}
}

// lookup prefers the saved copy so reviewing a watchlisted movie works
// offline.
func lookup(ctx context.Context, client marquee.Client, id string) (movies.Movie, error) {
	for _, e := range client.Watchlist() {
		if e.ID == id {
			return movies.Movie{ID: e.ID, Title: e.Title, Year: e.Year}, nil
		}
	}
	m, err := client.Movie(ctx, id)
	if err != nil {
		return movies.Movie{}, err
	}
	return *m, nil
}
