// Package version implements the version command.
package version

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/agentstation/marquee/cmd/application"
	"github.com/agentstation/marquee/internal/cmd/output"
)

// Info is the build information.
type Info struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	Date      string `json:"date" yaml:"date"`
	BuiltBy   string `json:"built_by" yaml:"built_by"`
	GoVersion string `json:"go_version" yaml:"go_version"`
	Platform  string `json:"platform" yaml:"platform"`
}

// Table implements output.Tabular.
func (i Info) Table() output.Data {
	return output.Data{
		Headers: []string{"Property", "Value"},
		Rows: [][]string{
			{"Version", i.Version},
			{"Commit", i.Commit},
			{"Date", i.Date},
			{"Built by", i.BuiltBy},
			{"Go", i.GoVersion},
			{"Platform", i.Platform},
		},
	}
}

// NewCommand creates the version command.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := Info{
				Version:   app.Version(),
				Commit:    app.Commit(),
				Date:      app.Date(),
				BuiltBy:   app.BuiltBy(),
				GoVersion: runtime.Version(),
				Platform:  runtime.GOOS + "/" + runtime.GOARCH,
			}
			return output.Write(cmd.OutOrStdout(), app.OutputFormat(), info)
		},
	}
}
