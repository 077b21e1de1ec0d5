package engine

import (
	"errors"
	"math/rand"

	"github.com/charmbracelet/log"
)

// ErrNoPlayableBatch signals that no batch with a placeable piece was drawn
// within the retry ceiling. The session treats it as game over.
var ErrNoPlayableBatch = errors.New("engine: no playable batch within retry limit")

// Piece is a shape offered to the player for the current round.
type Piece struct {
	ID    int // Unique for the lifetime of a session
	Slot  int // Position in the tray, 0-based
	Shape Shape
	Color Color
}

// Batch is a set of pieces offered together.
type Batch struct {
	Pieces   []Piece
	Attempts int // Draws it took to produce this batch
}

// Generator draws batches from a catalog.
type Generator struct {
	catalog *Catalog
	rules   Rules
	rng     *rand.Rand
	logger  *log.Logger
	nextID  int
}

// NewGenerator creates a generator. The rng is shared with the caller.
func NewGenerator(catalog *Catalog, rules Rules, rng *rand.Rand, logger *log.Logger) *Generator {
	if logger == nil {
		logger = discardLogger()
	}
	return &Generator{
		catalog: catalog,
		rules:   rules,
		rng:     rng,
		logger:  logger,
		nextID:  1,
	}
}

// Generate draws the next batch for the given grid.
//
// With GuaranteedSolvableBatches the batch is redrawn until at least one piece
// fits, up to MaxBatchAttempts. The ceiling is a heuristic: a playable batch
// may exist that the random draws missed.
func (g *Generator) Generate(grid *Grid) (Batch, error) {
	if !g.rules.GuaranteedSolvableBatches {
		return g.assemble(g.catalog.PickRandom(g.rng, g.rules.BatchSize), 1), nil
	}

	for attempt := 1; attempt <= g.rules.MaxBatchAttempts; attempt++ {
		shapes := g.catalog.PickRandom(g.rng, g.rules.BatchSize)
		if anyPlaceable(shapes, grid) {
			if attempt > 1 {
				g.logger.Debug("batch redrawn", "attempts", attempt, "filled", grid.FilledCount())
			}
			return g.assemble(shapes, attempt), nil
		}
	}

	g.logger.Debug("no playable batch", "attempts", g.rules.MaxBatchAttempts, "filled", grid.FilledCount())
	return Batch{Attempts: g.rules.MaxBatchAttempts}, ErrNoPlayableBatch
}

// assemble binds colors and instance IDs to drawn shapes.
func (g *Generator) assemble(shapes []Shape, attempts int) Batch {
	pieces := make([]Piece, len(shapes))
	for i, s := range shapes {
		pieces[i] = Piece{
			ID:    g.nextID,
			Slot:  i,
			Shape: s,
			Color: g.pickColor(),
		}
		g.nextID++
	}
	return Batch{Pieces: pieces, Attempts: attempts}
}

// pickColor draws a palette color, independent of the shape.
func (g *Generator) pickColor() Color {
	if !g.rules.ColorTracking {
		return ColorNone
	}
	return Palette[g.rng.Intn(g.rules.PaletteSize)]
}

func anyPlaceable(shapes []Shape, grid *Grid) bool {
	for _, s := range shapes {
		if HasAnyValidPlacement(s, grid) {
			return true
		}
	}
	return false
}
