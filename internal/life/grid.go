package life

import (
	"fmt"
	"sort"
	"strings"
)

// Rendering runes used by Render.
const (
	AliveRune = 'X'
	DeadRune  = '.'
)

// Transition rule thresholds.
const (
	stayAliveMin = 2
	stayAliveMax = 3
	birthCount   = 3
)

// Grid holds the population of a bounded Game of Life field.
// A Grid is not safe for concurrent use; callers sharing one must serialize access.
type Grid struct {
	columns    int
	rows       int
	generation int

	// population is the single source of truth for liveness.
	population map[Cell]struct{}

	// neighbors memoizes clipped neighborhoods for the current dimensions.
	// Resize drops it.
	neighbors map[Cell][]Cell
}

// New creates an empty grid with the given dimensions.
func New(columns, rows int) (*Grid, error) {
	if err := checkDimensions(columns, rows); err != nil {
		return nil, err
	}
	return &Grid{
		columns:    columns,
		rows:       rows,
		population: make(map[Cell]struct{}),
		neighbors:  make(map[Cell][]Cell),
	}, nil
}

// NewWithShape creates a grid and places the shape cells centered on it.
// See PlaceShape for the placement rules.
func NewWithShape(columns, rows int, cells []Cell, shapeColumns, shapeRows int) (*Grid, error) {
	g, err := New(columns, rows)
	if err != nil {
		return nil, err
	}
	g.PlaceShape(cells, shapeColumns, shapeRows)
	return g, nil
}

func checkDimensions(columns, rows int) error {
	if columns <= 0 || rows <= 0 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidDimension, columns, rows)
	}
	return nil
}

// checkCoordinate validates a coordinate against the current bounds.
// Range is checked before sign.
func (g *Grid) checkCoordinate(column, row int) error {
	if column >= g.columns || row >= g.rows {
		return fmt.Errorf("%w: cell (%d,%d) on %dx%d grid", ErrOutOfRange, column, row, g.columns, g.rows)
	}
	if column < 0 || row < 0 {
		return fmt.Errorf("%w: cell (%d,%d)", ErrNegativeCoordinate, column, row)
	}
	return nil
}

// InBounds returns true if the cell lies within the current dimensions.
func (g *Grid) InBounds(c Cell) bool {
	return c.Column >= 0 && c.Column < g.columns && c.Row >= 0 && c.Row < g.rows
}

// Columns returns the number of columns.
func (g *Grid) Columns() int {
	return g.columns
}

// Rows returns the number of rows.
func (g *Grid) Rows() int {
	return g.rows
}

// Generations returns the number of completed Next calls since creation or the last Clear.
func (g *Grid) Generations() int {
	return g.generation
}

// Len returns the number of live cells.
func (g *Grid) Len() int {
	return len(g.population)
}

// IsAlive reports whether the cell at (column, row) is alive.
func (g *Grid) IsAlive(column, row int) (bool, error) {
	if err := g.checkCoordinate(column, row); err != nil {
		return false, err
	}
	return g.alive(C(column, row)), nil
}

// SetAlive marks the cell at (column, row) alive. Setting a live cell is a no-op.
func (g *Grid) SetAlive(column, row int) error {
	if err := g.checkCoordinate(column, row); err != nil {
		return err
	}
	g.population[C(column, row)] = struct{}{}
	return nil
}

// SetDead marks the cell at (column, row) dead. Killing a dead cell is a no-op.
func (g *Grid) SetDead(column, row int) error {
	if err := g.checkCoordinate(column, row); err != nil {
		return err
	}
	delete(g.population, C(column, row))
	return nil
}

// Clear kills every cell and resets the generation counter.
func (g *Grid) Clear() {
	g.population = make(map[Cell]struct{})
	g.generation = 0
}

// Resize changes the grid dimensions. Cells outside the new bounds are
// removed for good; cells inside keep their state. The generation counter
// is left untouched.
func (g *Grid) Resize(columns, rows int) error {
	if err := checkDimensions(columns, rows); err != nil {
		return err
	}

	g.columns = columns
	g.rows = rows
	for c := range g.population {
		if !g.InBounds(c) {
			delete(g.population, c)
		}
	}
	g.neighbors = make(map[Cell][]Cell)
	return nil
}

// Population returns a copy of the live cells in row-major order.
func (g *Grid) Population() []Cell {
	cells := make([]Cell, 0, len(g.population))
	for c := range g.population {
		cells = append(cells, c)
	}
	sort.Slice(cells, func(i, j int) bool {
		return cells[i].less(cells[j])
	})
	return cells
}

// PlaceShape adds the shape cells to the population, translated so the
// shape's bounding box is centered on the grid (offsets are floored).
// The existing population is kept. Translated cells that fall outside the
// grid are inserted as well; rejecting oversized shapes is the caller's job.
// Such cells are never rendered and die on the next generation.
func (g *Grid) PlaceShape(cells []Cell, shapeColumns, shapeRows int) {
	offsetColumns := floorDiv(g.columns-shapeColumns, 2)
	offsetRows := floorDiv(g.rows-shapeRows, 2)

	for _, c := range cells {
		g.population[c.Add(offsetColumns, offsetRows)] = struct{}{}
	}
}

// Next advances the simulation by one generation.
//
// Only live cells and their neighbors can change state, so those are the
// only candidates evaluated. Every neighbor count reads the current
// population, and the decisions are written into a fresh set that replaces
// it once all candidates are done.
func (g *Grid) Next() {
	candidates := make(map[Cell]struct{}, len(g.population)*9)
	for c := range g.population {
		candidates[c] = struct{}{}
		for _, n := range g.neighborsOf(c) {
			candidates[n] = struct{}{}
		}
	}

	next := make(map[Cell]struct{}, len(g.population))
	for c := range candidates {
		if !g.InBounds(c) {
			continue
		}
		if survives(g.alive(c), g.countAliveNeighbors(c)) {
			next[c] = struct{}{}
		}
	}

	g.population = next
	g.generation++
}

// survives applies the transition rule to a single cell.
func survives(alive bool, neighbors int) bool {
	if alive {
		return neighbors >= stayAliveMin && neighbors <= stayAliveMax
	}
	return neighbors == birthCount
}

func (g *Grid) alive(c Cell) bool {
	_, ok := g.population[c]
	return ok
}

func (g *Grid) countAliveNeighbors(c Cell) int {
	count := 0
	for _, n := range g.neighborsOf(c) {
		if g.alive(n) {
			count++
		}
	}
	return count
}

// neighborsOf returns the up to eight in-bounds cells adjacent to c.
func (g *Grid) neighborsOf(c Cell) []Cell {
	if cached, ok := g.neighbors[c]; ok {
		return cached
	}

	result := make([]Cell, 0, 8)
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dc == 0 && dr == 0 {
				continue
			}
			n := c.Add(dc, dr)
			if g.InBounds(n) {
				result = append(result, n)
			}
		}
	}
	g.neighbors[c] = result
	return result
}

// Render returns the grid as text: one line per row, 'X' for alive and
// '.' for dead, rows joined by newlines with no trailing newline.
func (g *Grid) Render() string {
	var sb strings.Builder
	sb.Grow(g.columns*g.rows + g.rows)

	for row := 0; row < g.rows; row++ {
		if row > 0 {
			sb.WriteByte('\n')
		}
		for col := 0; col < g.columns; col++ {
			if g.alive(C(col, row)) {
				sb.WriteRune(AliveRune)
			} else {
				sb.WriteRune(DeadRune)
			}
		}
	}
	return sb.String()
}

// String implements fmt.Stringer.
func (g *Grid) String() string {
	return g.Render()
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
