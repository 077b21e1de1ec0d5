// Package config provides YAML-based game configuration loading for Blockmaster.
package config

import (
	"errors"
	"fmt"
)

// BlocksConfig contains all configuration for the block puzzle.
type BlocksConfig struct {
	Rules      BlocksRules  `yaml:"rules"`
	ShapesFile string       `yaml:"shapes_file"`
	Timing     BlocksTiming `yaml:"timing"`
}

// BlocksRules mirrors the engine's rule switches and scoring constants.
type BlocksRules struct {
	ComboScoring              bool `yaml:"combo_scoring"`
	ColorTracking             bool `yaml:"color_tracking"`
	GuaranteedSolvableBatches bool `yaml:"guaranteed_solvable_batches"`
	BatchSize                 int  `yaml:"batch_size"`
	MaxBatchAttempts          int  `yaml:"max_batch_attempts"`
	PointsPerLine             int  `yaml:"points_per_line"`
	GridClearBonus            int  `yaml:"grid_clear_bonus"`
	PaletteSize               int  `yaml:"palette_size"`
}

// BlocksTiming defines presentation delays in milliseconds.
type BlocksTiming struct {
	ReplenishDelayMS int `yaml:"replenish_delay_ms"`
	FlashMS          int `yaml:"flash_ms"`
}

// MaxPaletteSize is the number of distinct piece colors.
const MaxPaletteSize = 7

// Validate reports every unusable setting at once.
func (c BlocksConfig) Validate() error {
	r := c.Rules
	var errs []error
	if r.BatchSize < 1 || r.BatchSize > 3 {
		errs = append(errs, fmt.Errorf("rules.batch_size must be 1..3, got %d", r.BatchSize))
	}
	if r.MaxBatchAttempts < 1 {
		errs = append(errs, fmt.Errorf("rules.max_batch_attempts must be positive, got %d", r.MaxBatchAttempts))
	}
	if r.PointsPerLine < 0 {
		errs = append(errs, fmt.Errorf("rules.points_per_line must not be negative, got %d", r.PointsPerLine))
	}
	if r.GridClearBonus < 0 {
		errs = append(errs, fmt.Errorf("rules.grid_clear_bonus must not be negative, got %d", r.GridClearBonus))
	}
	if r.ColorTracking && (r.PaletteSize < 1 || r.PaletteSize > MaxPaletteSize) {
		errs = append(errs, fmt.Errorf("rules.palette_size must be 1..%d, got %d", MaxPaletteSize, r.PaletteSize))
	}
	if c.Timing.ReplenishDelayMS < 0 || c.Timing.FlashMS < 0 {
		errs = append(errs, errors.New("timing values must not be negative"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}
