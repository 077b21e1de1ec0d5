package engine

import (
	"errors"
	"fmt"
	"strings"
)

// GridSize is the fixed board dimension.
const GridSize = 9

var (
	// ErrOutOfBounds is returned when a coordinate lies outside the grid.
	ErrOutOfBounds = errors.New("engine: cell out of bounds")

	// ErrCellOccupied is returned when occupying a cell that is already taken.
	ErrCellOccupied = errors.New("engine: cell already occupied")
)

// Cell is the state of a single grid square.
type Cell struct {
	Occupied bool
	Color    Color // Valid only when Occupied
	Turn     int   // Turn that placed the block
}

// Block is the occupancy record of one placed cell.
type Block struct {
	X, Y  int
	Color Color
	Turn  int
}

// Grid is the 9x9 occupancy matrix. Rows are indexed by y, columns by x.
// The zero value is an empty grid.
type Grid struct {
	cells [GridSize][GridSize]Cell
}

// NewGrid returns an empty grid.
func NewGrid() *Grid {
	return &Grid{}
}

// InBounds returns true if (x, y) lies on the board.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < GridSize && y >= 0 && y < GridSize
}

// IsOccupied reports whether the cell is taken.
// Panics for coordinates outside the grid.
func (g *Grid) IsOccupied(x, y int) bool {
	if !g.InBounds(x, y) {
		panic(fmt.Sprintf("blocks: IsOccupied(%d, %d) out of bounds", x, y))
	}
	return g.cells[y][x].Occupied
}

// Cell returns the cell at (x, y), or an empty cell when out of bounds.
func (g *Grid) Cell(x, y int) Cell {
	if !g.InBounds(x, y) {
		return Cell{}
	}
	return g.cells[y][x]
}

// Occupy marks a cell as taken by a block of the given color.
func (g *Grid) Occupy(x, y int, color Color, turn int) error {
	if !g.InBounds(x, y) {
		return fmt.Errorf("occupy (%d, %d): %w", x, y, ErrOutOfBounds)
	}
	if g.cells[y][x].Occupied {
		return fmt.Errorf("occupy (%d, %d): %w", x, y, ErrCellOccupied)
	}
	g.cells[y][x] = Cell{Occupied: true, Color: color, Turn: turn}
	return nil
}

// ClearRow empties row y and returns the blocks that were in it.
// Panics when y is off the board or the row holds no blocks: clearing a
// line twice is a bookkeeping bug in the caller.
func (g *Grid) ClearRow(y int) []Block {
	if y < 0 || y >= GridSize {
		panic(fmt.Sprintf("blocks: ClearRow(%d) out of bounds", y))
	}
	var cleared []Block
	for x := range GridSize {
		if b, ok := g.take(x, y); ok {
			cleared = append(cleared, b)
		}
	}
	if len(cleared) == 0 {
		panic(fmt.Sprintf("blocks: ClearRow(%d) on an empty row", y))
	}
	return cleared
}

// ClearColumn empties column x and returns the blocks that were in it.
// Panics like ClearRow.
func (g *Grid) ClearColumn(x int) []Block {
	if x < 0 || x >= GridSize {
		panic(fmt.Sprintf("blocks: ClearColumn(%d) out of bounds", x))
	}
	var cleared []Block
	for y := range GridSize {
		if b, ok := g.take(x, y); ok {
			cleared = append(cleared, b)
		}
	}
	if len(cleared) == 0 {
		panic(fmt.Sprintf("blocks: ClearColumn(%d) on an empty column", x))
	}
	return cleared
}

// columnEmpty reports whether column x holds no blocks.
func (g *Grid) columnEmpty(x int) bool {
	for y := range GridSize {
		if g.cells[y][x].Occupied {
			return false
		}
	}
	return true
}

// take empties one cell, returning its block if it was occupied.
func (g *Grid) take(x, y int) (Block, bool) {
	c := g.cells[y][x]
	if !c.Occupied {
		return Block{}, false
	}
	g.cells[y][x] = Cell{}
	return Block{X: x, Y: y, Color: c.Color, Turn: c.Turn}, true
}

// IsRowFull returns true if every cell in row y is occupied.
func (g *Grid) IsRowFull(y int) bool {
	if y < 0 || y >= GridSize {
		return false
	}
	for x := range GridSize {
		if !g.cells[y][x].Occupied {
			return false
		}
	}
	return true
}

// IsColumnFull returns true if every cell in column x is occupied.
func (g *Grid) IsColumnFull(x int) bool {
	if x < 0 || x >= GridSize {
		return false
	}
	for y := range GridSize {
		if !g.cells[y][x].Occupied {
			return false
		}
	}
	return true
}

// IsEmpty returns true if no cell is occupied.
func (g *Grid) IsEmpty() bool {
	return g.FilledCount() == 0
}

// FilledCount returns the number of occupied cells.
func (g *Grid) FilledCount() int {
	count := 0
	for y := range GridSize {
		for x := range GridSize {
			if g.cells[y][x].Occupied {
				count++
			}
		}
	}
	return count
}

// Blocks returns every occupied cell in row-major order.
func (g *Grid) Blocks() []Block {
	var blocks []Block
	for y := range GridSize {
		for x := range GridSize {
			if c := g.cells[y][x]; c.Occupied {
				blocks = append(blocks, Block{X: x, Y: y, Color: c.Color, Turn: c.Turn})
			}
		}
	}
	return blocks
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	c := *g
	return &c
}

// String renders the grid as nine lines of '#' (occupied) and '.' (empty).
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow(GridSize * (GridSize + 1))
	for y := range GridSize {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := range GridSize {
			if g.cells[y][x].Occupied {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}

// ParseGrid builds a grid from rows of '#'/'.' characters, the inverse of String.
// Occupied cells get ColorNone and turn 0. Missing rows are empty.
func ParseGrid(rows ...string) (*Grid, error) {
	if len(rows) > GridSize {
		return nil, fmt.Errorf("engine: parse grid: %d rows, max %d", len(rows), GridSize)
	}
	g := NewGrid()
	for y, row := range rows {
		if len(row) != GridSize {
			return nil, fmt.Errorf("engine: parse grid: row %d has %d cells, want %d", y, len(row), GridSize)
		}
		for x, ch := range row {
			switch ch {
			case '#':
				g.cells[y][x] = Cell{Occupied: true}
			case '.':
			default:
				return nil, fmt.Errorf("engine: parse grid: unexpected %q at (%d, %d)", ch, x, y)
			}
		}
	}
	return g, nil
}
