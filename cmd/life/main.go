// life is Conway's Game of Life as a line-oriented shell, an animated
// terminal view and an SSH service.
//
// Usage:
//
//	life                 - Start the interactive shell
//	life shapes [name]   - List shapes or print one
//	life watch           - Animate a grid in the terminal
//	life serve           - Start SSH server for remote sessions
//	life history         - Show recent shell sessions
//	life config          - Print the effective configuration
//
// Global flags:
//
//	--config <path>      - Configuration file
//	--db <path>          - Session history database
//	--log-level <level>  - debug, info, warn or error
//	--shapes-dir <dir>   - Directory of extra shape files
package main

import (
	"fmt"
	"os"
	"os/user"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-life/internal/config"
	"github.com/vovakirdan/tui-life/internal/shapes"
	"github.com/vovakirdan/tui-life/internal/shell"
	"github.com/vovakirdan/tui-life/internal/storage"
)

var (
	// Global flags
	flagConfig    string
	flagDBPath    string
	flagLogLevel  string
	flagShapesDir string
	flagNoHistory bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "life",
	Short: "Conway's Game of Life in your terminal",
	Long: `life runs Conway's Game of Life on a bounded grid.

Without a subcommand it starts an interactive shell reading commands
such as "new 20 10", "alive 3 4", "generate" and "shape glider".
Type "help" inside the shell for the full list.

Available commands:
  shapes   - List the known shapes
  watch    - Animate a grid in the terminal
  serve    - Start SSH server for remote sessions
  history  - Show recent shell sessions
  config   - Print the effective configuration

Examples:
  life
  echo "new 5 5
shape glider
generate" | life
  life watch --shape acorn
  life serve --ssh :2222`,
	Args: cobra.NoArgs,
	Run:  runShell,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to session history database (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagShapesDir, "shapes-dir", "", "Directory of extra shape YAML files")
	rootCmd.Flags().BoolVar(&flagNoHistory, "no-history", false, "Do not record this session")

	rootCmd.AddCommand(shapesCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
}

// app bundles what every subcommand needs.
type app struct {
	cfg     config.Config
	logger  *log.Logger
	catalog *shapes.Catalog
}

// setup loads the configuration, applies global flags and builds the logger
// and the shape catalog. It exits on unusable configuration.
func setup() app {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if flagDBPath != "" {
		cfg.Storage.Path = flagDBPath
		cfg.Storage.Enabled = true
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	if flagShapesDir != "" {
		cfg.Shapes.Dir = flagShapesDir
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "life",
	})
	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q\n", cfg.Log.Level)
		os.Exit(1)
	}
	logger.SetLevel(level)

	catalog := shapes.Builtin()
	if cfg.Shapes.Dir != "" {
		dir, err := config.ExpandHome(cfg.Shapes.Dir)
		if err != nil {
			logger.Warn("cannot resolve shapes directory", "error", err)
		} else {
			n, err := catalog.LoadDir(dir)
			if err != nil {
				logger.Warn("some shape files were skipped", "dir", dir, "error", err)
			}
			logger.Debug("loaded shapes", "dir", dir, "count", n)
		}
	}

	return app{cfg: cfg, logger: logger, catalog: catalog}
}

// openStore opens the history database. Failures are logged and yield nil:
// the shell works without history.
func (a app) openStore() *storage.Store {
	if !a.cfg.Storage.Enabled {
		return nil
	}
	store, err := storage.Open(a.cfg.Storage.Path)
	if err != nil {
		a.logger.Warn("could not open history database", "path", a.cfg.Storage.Path, "error", err)
		return nil
	}
	return store
}

func currentUser() string {
	u, err := user.Current()
	if err != nil {
		return ""
	}
	return u.Username
}

func runShell(_ *cobra.Command, _ []string) {
	a := setup()

	opts := []shell.Option{
		shell.WithCatalog(a.catalog),
		shell.WithLogger(a.logger),
		shell.WithEcho(a.cfg.Shell.EchoBoard),
		shell.WithUser(currentUser()),
	}

	var store *storage.Store
	if !flagNoHistory {
		store = a.openStore()
	}
	if store != nil {
		opts = append(opts, shell.WithRecorder(store))
	}

	in := shell.NewPromptReader(os.Stdin, os.Stdout, a.cfg.Shell.Prompt)
	err := shell.New(in, os.Stdout, opts...).Run()

	if store != nil {
		store.Close()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
