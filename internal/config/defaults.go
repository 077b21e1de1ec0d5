package config

import (
	_ "embed"
)

//go:embed defaults/blocks.yaml
var defaultBlocksYAML []byte

// DefaultBlocksConfig returns the default configuration.
// Kept in sync with defaults/blocks.yaml; used when the embedded file cannot be parsed.
func DefaultBlocksConfig() BlocksConfig {
	return BlocksConfig{
		Rules: BlocksRules{
			ComboScoring:              true,
			ColorTracking:             true,
			GuaranteedSolvableBatches: true,
			BatchSize:                 3,
			MaxBatchAttempts:          10,
			PointsPerLine:             20,
			GridClearBonus:            100,
			PaletteSize:               MaxPaletteSize,
		},
		Timing: BlocksTiming{
			ReplenishDelayMS: 300,
			FlashMS:          900,
		},
	}
}
