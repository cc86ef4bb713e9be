// Package shapes provides the catalog of named cell patterns that can be
// placed onto a grid. Built-in shapes are embedded; more can be loaded from
// YAML files.
package shapes

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-life/internal/life"
)

// ErrInvalidShape is returned for shapes that cannot be placed on any grid.
var ErrInvalidShape = errors.New("shapes: invalid shape")

// Shape is a named pattern of live cells relative to its top-left corner.
type Shape struct {
	Name        string
	Description string
	Columns     int
	Rows        int
	Cells       []life.Cell
}

// Validate checks that the shape has a name, positive bounds, at least one
// cell, and that every cell lies inside the bounds.
func (s Shape) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidShape)
	}
	if s.Columns <= 0 || s.Rows <= 0 {
		return fmt.Errorf("%w: %q has size %dx%d", ErrInvalidShape, s.Name, s.Columns, s.Rows)
	}
	if len(s.Cells) == 0 {
		return fmt.Errorf("%w: %q has no live cells", ErrInvalidShape, s.Name)
	}
	for _, c := range s.Cells {
		if c.Column < 0 || c.Column >= s.Columns || c.Row < 0 || c.Row >= s.Rows {
			return fmt.Errorf("%w: %q cell %v outside %dx%d", ErrInvalidShape, s.Name, c, s.Columns, s.Rows)
		}
	}
	return nil
}

// Fits reports whether the shape fits into a field of the given size.
func (s Shape) Fits(columns, rows int) bool {
	return s.Columns <= columns && s.Rows <= rows
}

// Pattern renders the shape using the same runes as the grid.
func (s Shape) Pattern() string {
	alive := make(map[life.Cell]bool, len(s.Cells))
	for _, c := range s.Cells {
		alive[c] = true
	}

	var sb strings.Builder
	for row := 0; row < s.Rows; row++ {
		if row > 0 {
			sb.WriteByte('\n')
		}
		for col := 0; col < s.Columns; col++ {
			if alive[life.C(col, row)] {
				sb.WriteRune(life.AliveRune)
			} else {
				sb.WriteRune(life.DeadRune)
			}
		}
	}
	return sb.String()
}

// ParsePattern builds a shape from a block of text lines. 'X', 'O' and '*'
// (either case) mark live cells; '.' and spaces mark dead ones. Blank lines
// at the start and end are dropped. Columns is the longest line.
func ParsePattern(name, pattern string) (Shape, error) {
	lines := strings.Split(strings.ReplaceAll(pattern, "\r\n", "\n"), "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " \t\r")
	}
	for len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	shape := Shape{Name: name, Rows: len(lines)}
	for row, line := range lines {
		if len(line) > shape.Columns {
			shape.Columns = len(line)
		}
		for col, r := range line {
			switch r {
			case 'X', 'x', 'O', 'o', '*':
				shape.Cells = append(shape.Cells, life.C(col, row))
			case '.', ' ':
			default:
				return Shape{}, fmt.Errorf("%w: %q has unexpected %q at line %d", ErrInvalidShape, name, r, row+1)
			}
		}
	}

	if err := shape.Validate(); err != nil {
		return Shape{}, err
	}
	return shape, nil
}
