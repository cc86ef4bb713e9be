package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-life/internal/platform/tui"
	"github.com/vovakirdan/tui-life/internal/shapes"
)

var (
	flagWatchShape   string
	flagWatchColumns int
	flagWatchRows    int
	flagWatchFPS     int
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Animate a grid in the terminal",
	Long: `Animate a grid seeded with a shape.

The grid follows the terminal size unless --columns and --rows are given.

Controls:
  space  pause / resume      n  step while paused
  c      clear               r  reseed
  + / -  speed               q  quit

Examples:
  life watch
  life watch --shape pulsar --fps 4
  life watch --shape glider --columns 30 --rows 15`,
	Args: cobra.NoArgs,
	Run:  runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&flagWatchShape, "shape", "", "Seed shape (default from config)")
	watchCmd.Flags().IntVar(&flagWatchColumns, "columns", 0, "Grid columns (0 = terminal width)")
	watchCmd.Flags().IntVar(&flagWatchRows, "rows", 0, "Grid rows (0 = terminal height)")
	watchCmd.Flags().IntVar(&flagWatchFPS, "fps", 0, "Generations per second (default from config)")
}

func runWatch(cmd *cobra.Command, _ []string) {
	a := setup()
	w := a.cfg.Watch

	if cmd.Flags().Changed("shape") {
		w.Shape = flagWatchShape
	}
	if flagWatchColumns > 0 {
		w.Columns = flagWatchColumns
	}
	if flagWatchRows > 0 {
		w.Rows = flagWatchRows
	}
	if flagWatchFPS > 0 {
		w.TickRate = flagWatchFPS
	}

	if _, _, err := term.GetSize(int(os.Stdout.Fd())); err != nil {
		fmt.Fprintln(os.Stderr, "Error: watch needs an interactive terminal")
		os.Exit(1)
	}

	var seed *shapes.Shape
	if w.Shape != "" {
		shape, ok := a.catalog.Lookup(w.Shape)
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: unknown shape %q\n", w.Shape)
			fmt.Fprintln(os.Stderr, "Run 'life shapes' to see available shapes.")
			os.Exit(1)
		}
		seed = &shape
	}

	model, err := tui.NewWatchModel(tui.WatchOptions{
		Columns:  w.Columns,
		Rows:     w.Rows,
		Shape:    seed,
		TickRate: w.TickRate,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running watch: %v\n", err)
		os.Exit(1)
	}
}
