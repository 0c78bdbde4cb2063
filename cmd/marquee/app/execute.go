package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/agentstation/marquee/cmd/marquee/cmd/account"
	"github.com/agentstation/marquee/cmd/marquee/cmd/discover"
	"github.com/agentstation/marquee/cmd/marquee/cmd/export"
	"github.com/agentstation/marquee/cmd/marquee/cmd/profile"
	"github.com/agentstation/marquee/cmd/marquee/cmd/review"
	"github.com/agentstation/marquee/cmd/marquee/cmd/version"
	"github.com/agentstation/marquee/cmd/marquee/cmd/watchlist"
	"github.com/agentstation/marquee/internal/cmd/emoji"
	"github.com/agentstation/marquee/internal/cmd/output"
	"github.com/agentstation/marquee/pkg/logging"
)

// Execute runs the CLI with args.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "marquee",
		Short:   "Personal movie tracker",
		Version: a.version,
		Long: `marquee browses this year's movies from OMDb and keeps a local
watchlist, review log and account.

Set OMDB_API_KEY (environment, .env or ~/.marquee.yaml) to browse the catalog.
Saved data lives in ~/.marquee unless store.driver says otherwise.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "Core Commands:"})
	rootCmd.AddGroup(&cobra.Group{ID: "account", Title: "Account Commands:"})

	rootCmd.PersistentFlags().StringVar(&a.config.ConfigFile, "config", "", "config file (default is $HOME/.marquee.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "errors only (shortcut for --log-level=error)")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringP("output", "o", "", "output format: table, json, yaml")
	rootCmd.PersistentFlags().String("log-level", "", "log level: trace, debug, info, warn, error")
	rootCmd.PersistentFlags().String("store", "", "store driver: files, sqlite, redis, memory")
	rootCmd.PersistentFlags().String("data-dir", "", "data directory for the files and sqlite stores")

	rootCmd.SetVersionTemplate("marquee {{.Version}}\n")

	a.registerCommands(rootCmd)
	return rootCmd
}

// setupCommand is called before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	if cmd.Flags().Changed("config") {
		config, err := loadConfig(viper.New(), a.config.ConfigFile)
		if err != nil {
			return err
		}
		a.config = config
	}

	format := mustGetString(cmd, "output")
	if _, err := output.ParseFormat(format); err != nil {
		return err
	}

	a.config.UpdateFromFlags(
		mustGetBool(cmd, "verbose"),
		mustGetBool(cmd, "quiet"),
		mustGetBool(cmd, "no-color"),
		format,
		mustGetString(cmd, "log-level"),
	)
	if driver := mustGetString(cmd, "store"); driver != "" {
		a.config.Store.Driver = driver
	}
	if dir := mustGetString(cmd, "data-dir"); dir != "" {
		a.config.Store.Path = dir
	}

	logger := NewLogger(a.config)
	a.logger = &logger
	logging.SetDefault(logger)
	cmd.SetContext(logging.WithLogger(cmd.Context(), a.logger))
	return nil
}

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(discover.NewCommand(a))
	rootCmd.AddCommand(watchlist.NewCommand(a))
	rootCmd.AddCommand(review.NewCommand(a))
	rootCmd.AddCommand(profile.NewCommand(a))
	rootCmd.AddCommand(export.NewCommand(a))

	rootCmd.AddCommand(account.NewCommand(a))

	rootCmd.AddCommand(version.NewCommand(a))
}

// ExitOnError prints err and exits with status 1.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString(emoji.Error + " Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}

// mustGetBool retrieves a boolean flag defined in this package.
func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

// mustGetString retrieves a string flag defined in this package.
func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
