package life

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

const (
	worldColumns = 5
	worldRows    = 5
)

func newWorld(t *testing.T, cells ...Cell) *Grid {
	t.Helper()
	g, err := New(worldColumns, worldRows)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	for _, c := range cells {
		if err := g.SetAlive(c.Column, c.Row); err != nil {
			t.Fatalf("SetAlive(%d, %d) failed: %v", c.Column, c.Row, err)
		}
	}
	return g
}

// assertPopulation compares the live cells of g with want, ignoring order.
func assertPopulation(t *testing.T, g *Grid, want ...Cell) {
	t.Helper()
	sortCells := cmpopts.SortSlices(func(a, b Cell) bool { return a.less(b) })
	if diff := cmp.Diff(want, g.Population(), sortCells, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("population mismatch (-want +got):\n%s", diff)
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name          string
		columns, rows int
		wantErr       error
	}{
		{"valid", 5, 5, nil},
		{"wide", 40, 1, nil},
		{"zero columns", 0, 5, ErrInvalidDimension},
		{"zero rows", 5, 0, ErrInvalidDimension},
		{"negative columns", -3, 5, ErrInvalidDimension},
		{"negative rows", 5, -1, ErrInvalidDimension},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g, err := New(tc.columns, tc.rows)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("New(%d, %d) error = %v, expected %v", tc.columns, tc.rows, err, tc.wantErr)
				}
				if g != nil {
					t.Error("New() should not return a grid on error")
				}
				return
			}
			if err != nil {
				t.Fatalf("New() failed: %v", err)
			}
			if g.Columns() != tc.columns || g.Rows() != tc.rows {
				t.Errorf("dimensions = %dx%d, expected %dx%d", g.Columns(), g.Rows(), tc.columns, tc.rows)
			}
			if g.Generations() != 0 {
				t.Errorf("Generations() = %d, expected 0", g.Generations())
			}
			if len(g.Population()) != 0 {
				t.Errorf("Population() = %v, expected empty", g.Population())
			}
		})
	}
}

func TestCoordinateChecks(t *testing.T) {
	tests := []struct {
		name        string
		column, row int
		wantErr     error
	}{
		{"negative column", -1, 0, ErrNegativeCoordinate},
		{"negative row", 0, -1, ErrNegativeCoordinate},
		{"column too large", worldColumns, 0, ErrOutOfRange},
		{"row too large", 0, worldRows, ErrOutOfRange},
		{"both too large", worldColumns + 3, worldRows + 3, ErrOutOfRange},
	}

	ops := map[string]func(g *Grid, column, row int) error{
		"IsAlive": func(g *Grid, column, row int) error {
			_, err := g.IsAlive(column, row)
			return err
		},
		"SetAlive": (*Grid).SetAlive,
		"SetDead":  (*Grid).SetDead,
	}

	for opName, op := range ops {
		for _, tc := range tests {
			t.Run(opName+"/"+tc.name, func(t *testing.T) {
				g := newWorld(t, C(1, 1), C(2, 2))
				err := op(g, tc.column, tc.row)
				if !errors.Is(err, tc.wantErr) {
					t.Errorf("%s(%d, %d) error = %v, expected %v", opName, tc.column, tc.row, err, tc.wantErr)
				}
				assertPopulation(t, g, C(1, 1), C(2, 2))
			})
		}
	}
}

func TestSetAliveSetsOnlyTheCells(t *testing.T) {
	g := newWorld(t, C(1, 2), C(1, 3), C(2, 4))
	assertPopulation(t, g, C(1, 2), C(1, 3), C(2, 4))

	alive, err := g.IsAlive(1, 3)
	if err != nil || !alive {
		t.Errorf("IsAlive(1, 3) = %v, %v; expected true, nil", alive, err)
	}
	alive, err = g.IsAlive(3, 1)
	if err != nil || alive {
		t.Errorf("IsAlive(3, 1) = %v, %v; expected false, nil", alive, err)
	}
}

func TestSetAliveSetDeadIdempotent(t *testing.T) {
	g := newWorld(t)

	for i := 0; i < 2; i++ {
		if err := g.SetAlive(2, 3); err != nil {
			t.Fatalf("SetAlive() failed: %v", err)
		}
	}
	assertPopulation(t, g, C(2, 3))

	for i := 0; i < 2; i++ {
		if err := g.SetDead(2, 3); err != nil {
			t.Fatalf("SetDead() failed: %v", err)
		}
	}
	assertPopulation(t, g)
}

func TestPopulationIsSnapshot(t *testing.T) {
	g := newWorld(t, C(0, 0), C(4, 4))

	snapshot := g.Population()
	snapshot[0] = C(3, 3)
	_ = append(snapshot, C(2, 2))

	assertPopulation(t, g, C(0, 0), C(4, 4))
}

func TestResize(t *testing.T) {
	g := newWorld(t)
	if err := g.Resize(3, 5); err != nil {
		t.Fatalf("Resize() failed: %v", err)
	}
	if g.Columns() != 3 || g.Rows() != 5 {
		t.Errorf("dimensions = %dx%d, expected 3x5", g.Columns(), g.Rows())
	}
}

func TestResizeKeepsCellsInRange(t *testing.T) {
	g := newWorld(t, C(1, 1), C(2, 0), C(1, 2), C(2, 4), C(3, 4), C(4, 4))

	if err := g.Resize(3, 5); err != nil {
		t.Fatalf("Resize() failed: %v", err)
	}

	// (3,4) and (4,4) are past the new column bound.
	assertPopulation(t, g, C(1, 1), C(2, 0), C(1, 2), C(2, 4))

	if err := g.Resize(3, 2); err != nil {
		t.Fatalf("Resize() failed: %v", err)
	}
	assertPopulation(t, g, C(1, 1), C(2, 0))
}

func TestResizeGrowKeepsCellsAndGeneration(t *testing.T) {
	g := newWorld(t, C(1, 1), C(1, 2), C(2, 1), C(2, 2))
	g.Next()
	g.Next()

	if err := g.Resize(10, 8); err != nil {
		t.Fatalf("Resize() failed: %v", err)
	}
	assertPopulation(t, g, C(1, 1), C(1, 2), C(2, 1), C(2, 2))
	if g.Generations() != 2 {
		t.Errorf("Generations() = %d after resize, expected 2", g.Generations())
	}

	if err := g.SetAlive(9, 7); err != nil {
		t.Errorf("SetAlive(9, 7) after growing failed: %v", err)
	}
}

func TestResizeInvalid(t *testing.T) {
	g := newWorld(t, C(4, 4))

	for _, dims := range [][2]int{{0, 5}, {5, 0}, {-1, -1}} {
		err := g.Resize(dims[0], dims[1])
		if !errors.Is(err, ErrInvalidDimension) {
			t.Errorf("Resize(%d, %d) error = %v, expected %v", dims[0], dims[1], err, ErrInvalidDimension)
		}
	}
	if g.Columns() != worldColumns || g.Rows() != worldRows {
		t.Errorf("dimensions changed to %dx%d after failed resize", g.Columns(), g.Rows())
	}
	assertPopulation(t, g, C(4, 4))
}

func TestResizeShrinkThenNextUsesNewBounds(t *testing.T) {
	// A blinker touching the old right edge becomes a clipped pair after shrinking.
	g := newWorld(t, C(3, 1), C(3, 2), C(3, 3))
	if err := g.Resize(4, 5); err != nil {
		t.Fatalf("Resize() failed: %v", err)
	}
	g.Next()
	assertPopulation(t, g, C(2, 2), C(3, 2))
}

func TestClear(t *testing.T) {
	g := newWorld(t, C(1, 1), C(0, 2), C(2, 1), C(4, 2))
	g.Next()

	g.Clear()

	assertPopulation(t, g)
	if g.Generations() != 0 {
		t.Errorf("Generations() = %d after Clear, expected 0", g.Generations())
	}
}

func TestNextKillsLonelyCell(t *testing.T) {
	g := newWorld(t, C(3, 3))
	g.Next()
	assertPopulation(t, g)
}

func TestNextBlockIsStable(t *testing.T) {
	block := []Cell{C(1, 1), C(1, 2), C(2, 1), C(2, 2)}
	g := newWorld(t, block...)

	for i := 0; i < 3; i++ {
		g.Next()
		assertPopulation(t, g, block...)
	}
}

func TestNextBlinkerOscillates(t *testing.T) {
	line := []Cell{C(1, 2), C(2, 2), C(3, 2)}
	column := []Cell{C(2, 1), C(2, 2), C(2, 3)}
	g := newWorld(t, line...)

	g.Next()
	assertPopulation(t, g, column...)

	g.Next()
	assertPopulation(t, g, line...)
}

func TestNextGlider(t *testing.T) {
	g, err := New(8, 8)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	glider := []Cell{C(1, 0), C(2, 1), C(0, 2), C(1, 2), C(2, 2)}
	for _, c := range glider {
		g.SetAlive(c.Column, c.Row)
	}

	// A glider repeats its shape one cell down and right every four generations.
	for i := 0; i < 4; i++ {
		g.Next()
	}

	want := make([]Cell, len(glider))
	for i, c := range glider {
		want[i] = c.Add(1, 1)
	}
	assertPopulation(t, g, want...)
}

func TestNextCornerNeighborhoodIsClipped(t *testing.T) {
	// On a wrapping field these three corners would keep each other alive.
	g := newWorld(t, C(0, 0), C(4, 0), C(0, 4))
	g.Next()
	assertPopulation(t, g)

	// An L in the corner grows into a block; nothing appears past the edge.
	g = newWorld(t, C(0, 0), C(1, 0), C(0, 1))
	g.Next()
	assertPopulation(t, g, C(0, 0), C(1, 0), C(0, 1), C(1, 1))
}

func TestNextUsesPreviousGenerationOnly(t *testing.T) {
	// With in-place updates the row at 0 would be evaluated against a
	// partially updated field and the result would differ.
	g := newWorld(t, C(0, 0), C(1, 0), C(2, 0), C(3, 0))
	g.Next()
	assertPopulation(t, g, C(1, 0), C(2, 0), C(1, 1), C(2, 1))
}

func TestGenerationsCount(t *testing.T) {
	g := newWorld(t)
	if g.Generations() != 0 {
		t.Fatalf("Generations() = %d, expected 0", g.Generations())
	}

	for i := 1; i <= 3; i++ {
		g.Next()
		if g.Generations() != i {
			t.Errorf("Generations() = %d, expected %d", g.Generations(), i)
		}
	}

	// Counts even when a population dies out.
	g = newWorld(t, C(2, 2))
	g.Next()
	g.Next()
	if g.Generations() != 2 {
		t.Errorf("Generations() = %d after extinction, expected 2", g.Generations())
	}
}

func TestRender(t *testing.T) {
	g, err := New(4, 3)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	g.SetAlive(0, 0)
	g.SetAlive(3, 1)
	g.SetAlive(1, 2)

	want := "X...\n...X\n.X.."
	if got := g.Render(); got != want {
		t.Errorf("Render() = %q, expected %q", got, want)
	}
	if g.String() != want {
		t.Errorf("String() = %q, expected %q", g.String(), want)
	}
}

func TestRenderShape(t *testing.T) {
	sizes := [][2]int{{1, 1}, {7, 3}, {2, 9}}

	for _, size := range sizes {
		g, err := New(size[0], size[1])
		if err != nil {
			t.Fatalf("New() failed: %v", err)
		}
		out := g.Render()
		if strings.HasSuffix(out, "\n") {
			t.Errorf("Render() of %dx%d has a trailing newline", size[0], size[1])
		}
		lines := strings.Split(out, "\n")
		if len(lines) != size[1] {
			t.Fatalf("Render() has %d lines, expected %d", len(lines), size[1])
		}
		for i, line := range lines {
			if len(line) != size[0] {
				t.Errorf("line %d has %d characters, expected %d", i, len(line), size[0])
			}
			if strings.Trim(line, ".X") != "" {
				t.Errorf("line %d contains unexpected characters: %q", i, line)
			}
		}
	}
}

func TestPlaceShape(t *testing.T) {
	glider := []Cell{C(1, 0), C(2, 1), C(0, 2), C(1, 2), C(2, 2)}

	tests := []struct {
		name          string
		columns, rows int
		offset        Cell
	}{
		{"even field", 8, 8, C(2, 2)},
		{"odd field", 7, 9, C(2, 3)},
		{"exact fit", 3, 3, C(0, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g, err := NewWithShape(tc.columns, tc.rows, glider, 3, 3)
			if err != nil {
				t.Fatalf("NewWithShape() failed: %v", err)
			}
			want := make([]Cell, len(glider))
			for i, c := range glider {
				want[i] = c.Add(tc.offset.Column, tc.offset.Row)
			}
			assertPopulation(t, g, want...)
		})
	}
}

func TestPlaceShapeKeepsExistingPopulation(t *testing.T) {
	g := newWorld(t, C(0, 0))
	g.PlaceShape([]Cell{C(0, 0)}, 1, 1)
	assertPopulation(t, g, C(0, 0), C(2, 2))
}

func TestPlaceShapeOversizedCellsDie(t *testing.T) {
	g, err := New(2, 2)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	// Offset is floor((2-5)/2) = -2 on both axes.
	g.PlaceShape([]Cell{C(0, 0), C(2, 2), C(3, 3)}, 5, 5)
	if g.Len() != 3 {
		t.Fatalf("Len() = %d, expected 3", g.Len())
	}
	if got := g.Render(); got != "X.\n.X" {
		t.Errorf("Render() = %q, expected only in-bounds cells", got)
	}

	g.Next()
	for _, c := range g.Population() {
		if !g.InBounds(c) {
			t.Errorf("cell %v outside the grid survived Next()", c)
		}
	}
}

func TestFloorDiv(t *testing.T) {
	tests := []struct{ a, b, expected int }{
		{5, 2, 2},
		{4, 2, 2},
		{0, 2, 0},
		{-1, 2, -1},
		{-3, 2, -2},
		{-4, 2, -2},
	}
	for _, tc := range tests {
		if got := floorDiv(tc.a, tc.b); got != tc.expected {
			t.Errorf("floorDiv(%d, %d) = %d, expected %d", tc.a, tc.b, got, tc.expected)
		}
	}
}
