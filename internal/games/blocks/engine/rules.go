package engine

import "fmt"

// Rules gates the optional engine features and holds the scoring constants.
type Rules struct {
	ComboScoring              bool // Consecutive clearing turns multiply line points
	ColorTracking             bool // Pieces carry a palette color
	GuaranteedSolvableBatches bool // Redraw batches that have no placeable piece

	BatchSize        int // Pieces offered per round
	MaxBatchAttempts int // Draws before giving up on a playable batch
	PointsPerLine    int // Base points per cleared row or column
	GridClearBonus   int // Flat bonus when a clear empties the board
	PaletteSize      int // Number of palette colors in use (1..len(Palette))
}

// DefaultRules returns the full rule set with every feature on.
func DefaultRules() Rules {
	return Rules{
		ComboScoring:              true,
		ColorTracking:             true,
		GuaranteedSolvableBatches: true,
		BatchSize:                 3,
		MaxBatchAttempts:          10,
		PointsPerLine:             20,
		GridClearBonus:            100,
		PaletteSize:               len(Palette),
	}
}

// ClassicRules returns the classic rule set: colors, no combo, no batch guarantee.
func ClassicRules() Rules {
	r := DefaultRules()
	r.ComboScoring = false
	r.GuaranteedSolvableBatches = false
	return r
}

// Validate checks that the numeric settings are usable.
func (r Rules) Validate() error {
	if r.BatchSize <= 0 {
		return fmt.Errorf("engine: batch size must be positive, got %d", r.BatchSize)
	}
	if r.MaxBatchAttempts <= 0 {
		return fmt.Errorf("engine: max batch attempts must be positive, got %d", r.MaxBatchAttempts)
	}
	if r.PointsPerLine < 0 || r.GridClearBonus < 0 {
		return fmt.Errorf("engine: points must not be negative")
	}
	if r.ColorTracking && (r.PaletteSize <= 0 || r.PaletteSize > len(Palette)) {
		return fmt.Errorf("engine: palette size must be in 1..%d, got %d", len(Palette), r.PaletteSize)
	}
	return nil
}
