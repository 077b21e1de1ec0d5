package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// naiveCanPlace walks the whole bounding box instead of the cached offsets.
func naiveCanPlace(s Shape, x, y int, g *Grid) bool {
	for dy := range s.Rows() {
		for dx := range s.Cols() {
			if !s.At(dx, dy) {
				continue
			}
			gx, gy := x+dx, y+dy
			if gx < 0 || gx >= GridSize || gy < 0 || gy >= GridSize {
				return false
			}
			if g.Cell(gx, gy).Occupied {
				return false
			}
		}
	}
	return true
}

func randomGrid(rng *rand.Rand, density float64) *Grid {
	g := NewGrid()
	for y := range GridSize {
		for x := range GridSize {
			if rng.Float64() < density {
				_ = g.Occupy(x, y, ColorRed, 1)
			}
		}
	}
	return g
}

func TestCanPlaceMatchesCellwiseCheck(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	catalog := DefaultCatalog()

	for range 200 {
		g := randomGrid(rng, rng.Float64())
		for _, s := range catalog.Shapes() {
			for y := -2; y <= GridSize+1; y++ {
				for x := -2; x <= GridSize+1; x++ {
					require.Equal(t, naiveCanPlace(s, x, y, g), CanPlace(s, x, y, g),
						"shape %s at (%d, %d) on\n%s", s.Name(), x, y, g)
				}
			}
		}
	}
}

func TestCanPlaceDoesNotMutate(t *testing.T) {
	g, err := ParseGrid(
		"####.....",
		".........",
		".........",
		".........",
		".........",
		".........",
		".........",
		".........",
		".........",
	)
	require.NoError(t, err)
	before := g.String()

	CanPlace(MustShape("i4", "1111"), 0, 0, g)
	CanPlace(MustShape("i4", "1111"), 4, 0, g)
	assert.Equal(t, before, g.String())
}

func TestCanPlaceBoundary(t *testing.T) {
	g := NewGrid()
	i4 := MustShape("i4", "1111")

	assert.True(t, CanPlace(i4, GridSize-i4.Cols(), 0, g), "flush with the right edge")
	assert.False(t, CanPlace(i4, GridSize-i4.Cols()+1, 0, g), "one cell past the edge")
	assert.False(t, CanPlace(i4, -1, 0, g))

	v := MustShape("i4-v", "1", "1", "1", "1")
	assert.True(t, CanPlace(v, 0, 5, g))
	assert.False(t, CanPlace(v, 0, 6, g))
}

func TestCanPlaceIgnoresEmptyBoundingBoxCells(t *testing.T) {
	g := NewGrid()
	require.NoError(t, g.Occupy(1, 0, ColorRed, 1))

	// The gap at the top-right of the L lines up with the occupied cell.
	l := MustShape("l", "10", "10", "11")
	assert.True(t, CanPlace(l, 0, 0, g))
	assert.False(t, CanPlace(l, 1, 0, g))
}

func TestHasAnyValidPlacement(t *testing.T) {
	dot := MustShape("dot", "1")
	i5 := MustShape("i5", "11111")

	full := NewGrid()
	for y := range GridSize {
		for x := range GridSize {
			require.NoError(t, full.Occupy(x, y, ColorRed, 1))
		}
	}
	assert.False(t, HasAnyValidPlacement(dot, full))

	checker := checkerboard(t)
	assert.True(t, HasAnyValidPlacement(dot, checker))
	assert.False(t, HasAnyValidPlacement(i5, checker))
	assert.Len(t, ValidAnchors(dot, checker), 40)

	assert.Len(t, ValidAnchors(i5, NewGrid()), GridSize*(GridSize-4))
}

// checkerboard returns a grid with no two adjacent empty cells.
func checkerboard(t *testing.T) *Grid {
	t.Helper()
	rows := make([]string, GridSize)
	for y := range rows {
		if y%2 == 0 {
			rows[y] = "#.#.#.#.#"
		} else {
			rows[y] = ".#.#.#.#."
		}
	}
	g, err := ParseGrid(rows...)
	require.NoError(t, err)
	return g
}
