package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/rivo/tview"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/deathrjj/member-admin-tui/config"
	"github.com/deathrjj/member-admin-tui/export"
	"github.com/deathrjj/member-admin-tui/logger"
	"github.com/deathrjj/member-admin-tui/source"
	"github.com/deathrjj/member-admin-tui/ui"
)

// Version is set at build time via ldflags.
var Version = "v0.0.0-dev"

type flags struct {
	configFile string
	url        string
	timeout    time.Duration
	logFile    string
	debug      bool
	demo       bool
	recipients []string
}

// NewRootCommand builds the member-admin command tree.
func NewRootCommand() *cobra.Command {
	f := &flags{}

	root := &cobra.Command{
		Use:   "member-admin",
		Short: "Browse, search and edit members in a terminal table",
		Long: "member-admin fetches the member list once and shows it as a paginated,\n" +
			"searchable table. Edits and deletes stay in memory and are lost on exit.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(cmd.Flags(), f)
			if err != nil {
				return err
			}
			// debug => zap.DebugLevel (-1), else zap.InfoLevel (0)
			var level int8
			if cfg.Log.Debug {
				level = -1
			}
			lgr, err := logger.Get(level, cfg.Log.File)
			if err != nil {
				return err
			}
			lgr = logger.WithValues(lgr, logger.RootCommandKey, "member-admin", logger.SubCommandKey, cmd.Name(), logger.VersionKey, Version)
			cmd.SetContext(withConfig(logger.WithLogger(cmd.Context(), lgr), cfg))
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context())
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&f.configFile, "config-file", "", "path to a YAML config file")
	pf.StringVar(&f.logFile, "log-file", "", "write diagnostic logs to this file (default from config)")
	pf.BoolVar(&f.debug, "debug", false, "log at debug level")

	fs := root.Flags()
	fs.StringVar(&f.url, "url", "", "members endpoint (default from config)")
	fs.DurationVar(&f.timeout, "timeout", 0, "timeout for the members fetch (default from config)")
	fs.BoolVar(&f.demo, "demo", false, "mask email addresses")
	fs.StringArrayVar(&f.recipients, "recipient", nil, "age or SSH public key for encrypted exports (repeatable)")

	root.AddCommand(newVersionCommand())
	return root
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), Version)
		},
	}
}

// resolveConfig loads the config file and applies flags that were set.
func resolveConfig(fs *pflag.FlagSet, f *flags) (config.Config, error) {
	cfg, err := config.Load(f.configFile)
	if err != nil {
		return cfg, err
	}
	if fs.Changed("url") {
		cfg.Source.URL = f.url
	}
	if fs.Changed("timeout") {
		cfg.Source.Timeout = f.timeout
	}
	if fs.Changed("log-file") {
		cfg.Log.File = f.logFile
	}
	if fs.Changed("debug") {
		cfg.Log.Debug = f.debug
	}
	if fs.Changed("demo") {
		cfg.Demo = f.demo
	}
	if fs.Changed("recipient") {
		cfg.Export.Recipients = f.recipients
	}
	return cfg, cfg.Validate()
}

type configContextKey struct{}

func withConfig(ctx context.Context, cfg config.Config) context.Context {
	return context.WithValue(ctx, configContextKey{}, cfg)
}

func configFromContext(ctx context.Context) config.Config {
	if cfg, ok := ctx.Value(configContextKey{}).(config.Config); ok {
		return cfg
	}
	return config.Default()
}

func run(ctx context.Context) error {
	cfg := configFromContext(ctx)
	lgr := *logger.FromContext(ctx)
	lgr.Info("Starting", "url", cfg.Source.URL, "demo", cfg.Demo)

	app := tview.NewApplication()
	view := ui.NewApp(app, ui.Options{
		Source: source.NewClient(cfg.Source.URL, cfg.Source.Timeout),
		Exporter: &export.Exporter{
			Clipboard:  export.SystemClipboard{},
			Recipients: cfg.Export.Recipients,
		},
		Log:  lgr.WithName("ui"),
		Demo: cfg.Demo,
	})
	view.Start(ctx)

	if err := app.Run(); err != nil {
		return fmt.Errorf("running terminal UI: %w", err)
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return NewRootCommand().ExecuteContext(context.Background())
}
