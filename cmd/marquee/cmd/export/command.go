// Package export implements the export command.
package export

import (
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/agentstation/marquee"
	"github.com/agentstation/marquee/cmd/application"
	"github.com/agentstation/marquee/internal/cmd/output"
	"github.com/agentstation/marquee/internal/utils"
	"github.com/agentstation/marquee/pkg/constants"
	"github.com/agentstation/marquee/pkg/errors"
)

// NewCommand creates the export command. Files are written through fs; nil
// means the OS filesystem.
func NewCommand(app application.Application) *cobra.Command {
	return newCommand(app, nil)
}

func newCommand(app application.Application, fs afero.Fs) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:     "export",
		GroupID: "core",
		Short:   "Export the session, watchlist, reviews and profile",
		Args:    cobra.NoArgs,
		Example: `  marquee export                     # JSON to stdout
  marquee export -o yaml --file backup.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.Client(cmd.Context())
			if err != nil {
				return err
			}
			snapshot := marquee.Export(client)

			format := output.Format(app.OutputFormat())
			if format != output.FormatYAML {
				format = output.FormatJSON
			}
			formatter := output.NewFormatter(format)

			if file == "" {
				return formatter.Format(cmd.OutOrStdout(), snapshot)
			}

			if fs == nil {
				fs = afero.NewOsFs()
			}
			path := utils.ExpandPath(file)
			f, err := fs.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, constants.SecureFilePermissions)
			if err != nil {
				return errors.WrapIO("create", path, err)
			}
			if err := formatter.Format(f, snapshot); err != nil {
				_ = f.Close()
				return errors.WrapIO("write", path, err)
			}
			if err := f.Close(); err != nil {
				return errors.WrapIO("close", path, err)
			}

			app.Logger().Info().Str("file", path).Int("watchlist", len(snapshot.Watchlist)).Msg("exported")
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "write to a file instead of stdout")
	return cmd
}
