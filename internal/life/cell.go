// Package life implements Conway's Game of Life on a bounded, non-wrapping grid.
// It contains no I/O; the interpreter, shape catalog and terminal front-ends
// live in other packages.
package life

import "fmt"

// Cell is a (column, row) coordinate on a grid.
// Cells carry no state; liveness is a property of the Grid.
type Cell struct {
	Column int
	Row    int
}

// C is a convenience constructor for Cell.
func C(column, row int) Cell {
	return Cell{Column: column, Row: row}
}

// String returns a string representation of the cell.
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Column, c.Row)
}

// Add returns a new Cell offset by (dc, dr).
func (c Cell) Add(dc, dr int) Cell {
	return Cell{Column: c.Column + dc, Row: c.Row + dr}
}

// less orders cells row-major: row first, then column.
func (c Cell) less(other Cell) bool {
	if c.Row != other.Row {
		return c.Row < other.Row
	}
	return c.Column < other.Column
}
