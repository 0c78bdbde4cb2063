// Package discover implements the discover command, which browses the
// catalog one page at a time.
package discover

import (
	stderrors "errors"

	"github.com/spf13/cobra"

	"github.com/agentstation/marquee/cmd/application"
	"github.com/agentstation/marquee/internal/cmd/output"
	"github.com/agentstation/marquee/pkg/catalog"
	"github.com/agentstation/marquee/pkg/movies"
)

// NewCommand creates the discover command.
func NewCommand(app application.Application) *cobra.Command {
	var (
		page  int
		pages int
	)

	cmd := &cobra.Command{
		Use:     "discover [movie-id]",
		GroupID: "core",
		Short:   "Browse the catalog or show one movie",
		Aliases: []string{"browse"},
		Args:    cobra.MaximumNArgs(1),
		Example: `  marquee discover                  # First page
  marquee discover --page 3         # Third page
  marquee discover --pages 3        # First three pages
  marquee discover tt0111161        # One movie in detail`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			client, err := app.Client(ctx)
			if err != nil {
				return err
			}

			if len(args) == 1 {
				m, err := client.Movie(ctx, args[0])
				if err != nil {
					return err
				}
				return output.Write(cmd.OutOrStdout(), app.OutputFormat(), output.MovieDetail(*m))
			}

			first, err := client.Browse(ctx, page)
			if err != nil {
				return err
			}
			items := append([]movies.Movie{}, first.Items...)

			for i := 1; i < pages; i++ {
				next, err := client.LoadMore(ctx)
				if stderrors.Is(err, catalog.ErrNoMorePages) {
					break
				}
				if err != nil {
					return err
				}
				items = append(items, next.Items...)
			}

			pos := client.Position()
			app.Logger().Debug().
				Int("page", pos.CurrentPage).
				Int("total_results", pos.TotalResults).
				Bool("has_more", pos.HasMore).
				Msg("catalog browsed")

			return output.Write(cmd.OutOrStdout(), app.OutputFormat(), output.Movies(items))
		},
	}

	cmd.Flags().IntVarP(&page, "page", "p", 1, "page to start from")
	cmd.Flags().IntVar(&pages, "pages", 1, "number of consecutive pages to load")

	return cmd
}
