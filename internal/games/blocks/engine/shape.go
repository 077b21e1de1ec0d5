package engine

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedShape is returned for shape definitions that break the footprint rules.
var ErrMalformedShape = errors.New("engine: malformed shape")

// Point is a grid coordinate or an offset inside a shape.
type Point struct {
	X, Y int
}

// Shape is an immutable polyomino footprint.
// Every row and every column of the bounding box holds at least one set cell.
type Shape struct {
	name  string
	rows  int
	cols  int
	cells []bool  // row-major, rows*cols
	set   []Point // offsets of set cells, row-major
}

// NewShape builds a shape from rows of '1'/'0' (or '#'/'.') characters.
func NewShape(name string, rows ...string) (Shape, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return Shape{}, fmt.Errorf("%w: %q is empty", ErrMalformedShape, name)
	}

	s := Shape{
		name:  name,
		rows:  len(rows),
		cols:  len(rows[0]),
		cells: make([]bool, len(rows)*len(rows[0])),
	}

	for y, row := range rows {
		if len(row) != s.cols {
			return Shape{}, fmt.Errorf("%w: %q row %d has width %d, want %d",
				ErrMalformedShape, name, y, len(row), s.cols)
		}
		for x, ch := range row {
			switch ch {
			case '1', '#':
				s.cells[y*s.cols+x] = true
				s.set = append(s.set, Point{X: x, Y: y})
			case '0', '.':
			default:
				return Shape{}, fmt.Errorf("%w: %q has unexpected %q", ErrMalformedShape, name, ch)
			}
		}
	}

	for y := range s.rows {
		if !s.rowHasCell(y) {
			return Shape{}, fmt.Errorf("%w: %q row %d is empty", ErrMalformedShape, name, y)
		}
	}
	for x := range s.cols {
		if !s.colHasCell(x) {
			return Shape{}, fmt.Errorf("%w: %q column %d is empty", ErrMalformedShape, name, x)
		}
	}

	return s, nil
}

// MustShape is like NewShape but panics on malformed input.
func MustShape(name string, rows ...string) Shape {
	s, err := NewShape(name, rows...)
	if err != nil {
		panic(err)
	}
	return s
}

func (s Shape) rowHasCell(y int) bool {
	for x := range s.cols {
		if s.cells[y*s.cols+x] {
			return true
		}
	}
	return false
}

func (s Shape) colHasCell(x int) bool {
	for y := range s.rows {
		if s.cells[y*s.cols+x] {
			return true
		}
	}
	return false
}

// Name returns the catalog name.
func (s Shape) Name() string { return s.name }

// Rows returns the bounding box height.
func (s Shape) Rows() int { return s.rows }

// Cols returns the bounding box width.
func (s Shape) Cols() int { return s.cols }

// Area returns the number of set cells.
func (s Shape) Area() int { return len(s.set) }

// At reports whether the cell at column x, row y of the bounding box is set.
func (s Shape) At(x, y int) bool {
	if x < 0 || x >= s.cols || y < 0 || y >= s.rows {
		return false
	}
	return s.cells[y*s.cols+x]
}

// Cells returns the offsets of the set cells relative to the top-left anchor.
func (s Shape) Cells() []Point {
	out := make([]Point, len(s.set))
	copy(out, s.set)
	return out
}

// Equal reports whether two shapes have the same footprint (names are ignored).
func (s Shape) Equal(other Shape) bool {
	if s.rows != other.rows || s.cols != other.cols {
		return false
	}
	for i := range s.cells {
		if s.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// String renders the footprint as rows of '#' and '.'.
func (s Shape) String() string {
	var sb strings.Builder
	for y := range s.rows {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := range s.cols {
			if s.cells[y*s.cols+x] {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}
