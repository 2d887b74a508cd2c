// Package cli contains the probcat command tree.
package cli

import (
	"fmt"
	"log/slog"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nhle/problem-catalog/internal/app"
	"github.com/nhle/problem-catalog/internal/logger"
	"github.com/nhle/problem-catalog/internal/model"
	"github.com/nhle/problem-catalog/internal/output"
	"github.com/nhle/problem-catalog/internal/store"
)

// rootOptions holds the global flags and what PersistentPreRunE derives
// from them.
type rootOptions struct {
	cfgFile  string
	cfgPath  string
	dbPath   string
	logLevel string
	color    string
	quiet    bool
	version  string

	cfg     *model.AppConfig
	logger  *slog.Logger
	printer *output.Printer
}

// Execute runs the probcat command tree.
func Execute(version string) error {
	return NewRootCmd(version).Execute()
}

// NewRootCmd builds the command tree. Running it without a subcommand
// starts the terminal UI.
func NewRootCmd(version string) *cobra.Command {
	opts := &rootOptions{version: version}

	cmd := &cobra.Command{
		Use:   "probcat",
		Short: "Practice problem catalog with tags",
		Long: `probcat records practice problems and tags them.

Without a subcommand it opens the terminal UI: the problem list on the
left, the tags of the highlighted problem on the right.

Example usage:
  probcat                          # open the catalog
  probcat tag add dp               # add a tag
  probcat tag find gr --prefix     # search tag names
  probcat problem attach 3 dp      # tag problem #3
  probcat config init              # write the default config file`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.init(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.runTUI()
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.cfgFile, "config", "", "config file (default ~/.config/probcat/config.yaml)")
	flags.StringVar(&opts.dbPath, "db", "", "catalog database path (overrides database.path)")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error")
	flags.StringVar(&opts.color, "color", "auto", "color output: auto, always or never")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "only print results and errors")

	cmd.AddCommand(newTagCmd(opts))
	cmd.AddCommand(newProblemCmd(opts))
	cmd.AddCommand(newConfigCmd(opts))

	return cmd
}

// init loads the configuration and builds the printer and the stderr
// logger used by subcommands.
func (o *rootOptions) init(cmd *cobra.Command) error {
	path := o.cfgFile
	if path == "" {
		path = model.DefaultConfigPath()
	}

	cfg, err := model.LoadConfig(path)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if o.dbPath != "" {
		cfg.Database.Path = o.dbPath
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	o.cfg = cfg
	o.cfgPath = path

	mode, err := output.ParseColorMode(o.color)
	if err != nil {
		return err
	}
	o.printer = output.NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.ResolveColors(mode), o.quiet)

	o.logger = logger.New(logger.Config{
		Writer: cmd.ErrOrStderr(),
		Format: cfg.Log.Format,
		Level:  logger.ParseLevel(cfg.Log.Level),
	})
	o.logger.Debug("configuration loaded",
		"config", path,
		"database", cfg.Database.Path,
		"search_mode", cfg.Search.Mode,
	)
	return nil
}

// openStore opens the catalog database with the subcommand logger.
func (o *rootOptions) openStore() (*store.SQLiteStore, error) {
	return store.NewSQLiteStore(o.cfg.Database.Path, o.logger)
}

// runTUI starts the terminal UI. While it runs the terminal belongs to
// Bubble Tea, so logs go to log.file.
func (o *rootOptions) runTUI() error {
	f, err := logger.OpenFile(o.cfg.Log.File)
	if err != nil {
		return err
	}
	defer f.Close()

	log := logger.New(logger.Config{
		Writer: f,
		Format: o.cfg.Log.Format,
		Level:  logger.ParseLevel(o.cfg.Log.Level),
	})

	s, err := store.NewSQLiteStore(o.cfg.Database.Path, log)
	if err != nil {
		return err
	}
	defer s.Close()

	log.Info("starting probcat", "version", o.version, "database", s.Path())

	m := app.New(s, o.cfg, log)
	defer m.Close()

	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("running terminal UI: %w", err)
	}
	return nil
}

// parseID parses a positive problem id argument.
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid problem id %q", arg)
	}
	return id, nil
}
