// Package shell implements the line-oriented Game of Life interpreter.
// It parses text commands, validates them, forwards them to a life.Grid and
// prints the results. Malformed input never ends a session; it prints a
// single error line instead.
package shell

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-life/internal/life"
	"github.com/vovakirdan/tui-life/internal/shapes"
)

const errorPrefix = "Error! "

// Summary describes a finished session.
type Summary struct {
	User        string
	Commands    int
	Generations int
	Columns     int
	Rows        int
	Population  int
	StartedAt   time.Time
	EndedAt     time.Time
}

// Recorder receives a Summary when a session ends.
type Recorder interface {
	RecordSession(summary Summary) error
}

// Shell is one interpreter session. It owns at most one grid at a time.
type Shell struct {
	in       LineReader
	out      io.Writer
	catalog  *shapes.Catalog
	logger   *log.Logger
	recorder Recorder
	echo     bool
	user     string

	game      *life.Grid
	commands  int
	startedAt time.Time
}

// Option configures a Shell.
type Option func(*Shell)

// WithCatalog sets the shape catalog used by SHAPE. Defaults to shapes.Builtin().
func WithCatalog(c *shapes.Catalog) Option {
	return func(s *Shell) {
		if c != nil {
			s.catalog = c
		}
	}
}

// WithLogger sets the diagnostic logger. Defaults to a discarding logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Shell) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRecorder sets where the session summary goes when Run returns.
func WithRecorder(r Recorder) Option {
	return func(s *Shell) {
		s.recorder = r
	}
}

// WithEcho controls whether the board is printed after mutating commands.
// GENERATE and PRINT always print it.
func WithEcho(echo bool) Option {
	return func(s *Shell) {
		s.echo = echo
	}
}

// WithUser tags the session summary with a user name.
func WithUser(user string) Option {
	return func(s *Shell) {
		s.user = user
	}
}

// New creates a shell reading commands from in and writing to out.
func New(in LineReader, out io.Writer, opts ...Option) *Shell {
	s := &Shell{
		in:     in,
		out:    out,
		logger: log.New(io.Discard),
		echo:   true,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.catalog == nil {
		s.catalog = shapes.Builtin()
	}
	return s
}

// Game returns the current grid, or nil before the first NEW.
func (s *Shell) Game() *life.Grid {
	return s.game
}

// Run reads and executes lines until QUIT or end of input. The session
// summary is handed to the recorder before returning.
func (s *Shell) Run() error {
	s.startedAt = time.Now()
	defer s.record()

	for {
		line, err := s.in.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("shell: reading input: %w", err)
		}
		if quit := s.Execute(line); quit {
			return nil
		}
	}
}

// Summary returns the summary of the session so far.
func (s *Shell) Summary() Summary {
	sum := Summary{
		User:      s.user,
		Commands:  s.commands,
		StartedAt: s.startedAt,
		EndedAt:   time.Now(),
	}
	if s.game != nil {
		sum.Generations = s.game.Generations()
		sum.Columns = s.game.Columns()
		sum.Rows = s.game.Rows()
		sum.Population = s.game.Len()
	}
	return sum
}

func (s *Shell) record() {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.RecordSession(s.Summary()); err != nil {
		s.logger.Warn("could not record session", "error", err)
	}
}

// Execute runs a single input line and reports whether the session should end.
func (s *Shell) Execute(line string) bool {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		s.errorf("No command given")
		return false
	}

	s.commands++
	cmd := ParseCommand(tokens[0])
	s.logger.Debug("command", "name", cmd, "args", tokens[1:])

	switch cmd {
	case CmdNew:
		s.handleNew(tokens)
	case CmdAlive:
		s.handleSetCell(cmd, tokens, (*life.Grid).SetAlive)
	case CmdDead:
		s.handleSetCell(cmd, tokens, (*life.Grid).SetDead)
	case CmdGenerate:
		s.handleGenerate(tokens)
	case CmdPrint:
		s.handlePrint(tokens)
	case CmdClear:
		s.handleClear(tokens)
	case CmdResize:
		s.handleResize(tokens)
	case CmdShape:
		s.handleShape(tokens)
	case CmdHelp:
		s.handleHelp(tokens)
	case CmdQuit:
		return true
	default:
		s.errorf("Command not found")
	}
	return false
}

func (s *Shell) handleNew(tokens []string) {
	if !s.checkArgs(CmdNew, tokens) {
		return
	}
	cols, rows, ok := s.parsePair(CmdNew, tokens)
	if !ok {
		return
	}

	game, err := life.New(cols, rows)
	if err != nil {
		s.reportEngineError(err)
		return
	}
	s.game = game
	s.printBoard()
}

func (s *Shell) handleSetCell(cmd Command, tokens []string, set func(*life.Grid, int, int) error) {
	if !s.checkArgs(cmd, tokens) || !s.checkGame() {
		return
	}
	col, row, ok := s.parsePair(cmd, tokens)
	if !ok {
		return
	}

	if err := set(s.game, col, row); err != nil {
		s.reportEngineError(err)
		return
	}
	s.printBoard()
}

func (s *Shell) handleGenerate(tokens []string) {
	if !s.checkArgs(CmdGenerate, tokens) || !s.checkGame() {
		return
	}
	s.game.Next()
	fmt.Fprintf(s.out, "Generation: %d\n", s.game.Generations())
	fmt.Fprintln(s.out, s.game.Render())
}

func (s *Shell) handlePrint(tokens []string) {
	if !s.checkArgs(CmdPrint, tokens) || !s.checkGame() {
		return
	}
	fmt.Fprintln(s.out, s.game.Render())
}

func (s *Shell) handleClear(tokens []string) {
	if !s.checkArgs(CmdClear, tokens) || !s.checkGame() {
		return
	}
	s.game.Clear()
	s.printBoard()
}

func (s *Shell) handleResize(tokens []string) {
	if !s.checkArgs(CmdResize, tokens) || !s.checkGame() {
		return
	}
	cols, rows, ok := s.parsePair(CmdResize, tokens)
	if !ok {
		return
	}

	if err := s.game.Resize(cols, rows); err != nil {
		s.reportEngineError(err)
		return
	}
	s.printBoard()
}

// handleShape replaces the current game with a fresh grid of the same size
// holding only the centered shape.
func (s *Shell) handleShape(tokens []string) {
	if !s.checkArgs(CmdShape, tokens) || !s.checkGame() {
		return
	}

	name := tokens[1]
	shape, ok := s.catalog.Lookup(name)
	if !ok {
		s.errorf("Unknown shape %q", name)
		s.printShapeNames()
		return
	}

	cols, rows := s.game.Columns(), s.game.Rows()
	if !shape.Fits(cols, rows) {
		s.logger.Debug("shape too large", "shape", shape.Name,
			"shape_columns", shape.Columns, "shape_rows", shape.Rows, "columns", cols, "rows", rows)
		s.errorf("Shape %q does not fit into the current field", name)
		return
	}

	game, err := life.NewWithShape(cols, rows, shape.Cells, shape.Columns, shape.Rows)
	if err != nil {
		s.reportEngineError(err)
		return
	}
	s.game = game
	s.printBoard()
}

func (s *Shell) handleHelp(tokens []string) {
	if !s.checkArgs(CmdHelp, tokens) {
		return
	}
	fmt.Fprintln(s.out, helpText)
	s.printShapeNames()
}

func (s *Shell) printShapeNames() {
	fmt.Fprintf(s.out, "Available shapes: %s\n", strings.Join(s.catalog.Names(), ", "))
}

// checkArgs validates the argument count for cmd.
func (s *Shell) checkArgs(cmd Command, tokens []string) bool {
	got := len(tokens) - 1
	switch {
	case got > cmd.Args():
		s.errorf("Too many arguments for command %q", cmd.String())
		return false
	case got < cmd.Args():
		s.errorf("Missing argument(s) for command %q", cmd.String())
		return false
	}
	return true
}

func (s *Shell) checkGame() bool {
	if s.game == nil {
		s.errorf("No active game!")
		return false
	}
	return true
}

// parsePair parses the two integer arguments of cmd.
func (s *Shell) parsePair(cmd Command, tokens []string) (int, int, bool) {
	a, errA := strconv.Atoi(tokens[1])
	b, errB := strconv.Atoi(tokens[2])
	if errA != nil || errB != nil {
		s.errorf("Arguments of the %q command must be numbers!", cmd.String())
		return 0, 0, false
	}
	return a, b, true
}

// reportEngineError turns a life error into a user-facing message.
func (s *Shell) reportEngineError(err error) {
	s.logger.Debug("rejected", "error", err)

	switch {
	case errors.Is(err, life.ErrInvalidDimension):
		s.errorf("Number of rows or columns must be greater than 0!")
	case errors.Is(err, life.ErrNegativeCoordinate):
		s.errorf("Number of column and row may not be negative")
	case errors.Is(err, life.ErrOutOfRange):
		s.errorf("Parameters for column and row may not exceed the maximum number of columns and rows")
	default:
		s.errorf("%v", err)
	}
}

func (s *Shell) printBoard() {
	if s.echo {
		fmt.Fprintln(s.out, s.game.Render())
	}
}

func (s *Shell) errorf(format string, args ...any) {
	fmt.Fprintln(s.out, errorPrefix+fmt.Sprintf(format, args...))
}
