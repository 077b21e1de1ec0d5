package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Preset is a named rule set applied on top of a loaded config.
type Preset string

const (
	PresetModern  Preset = "modern"  // Every feature on
	PresetClassic Preset = "classic" // No combo, no batch guarantee
)

// ParsePreset accepts "", "modern" or "classic" (case-insensitive).
func ParsePreset(s string) (Preset, error) {
	switch Preset(strings.ToLower(strings.TrimSpace(s))) {
	case "", PresetModern:
		return PresetModern, nil
	case PresetClassic:
		return PresetClassic, nil
	default:
		return "", fmt.Errorf("config: unknown preset %q (want modern or classic)", s)
	}
}

// LoadBlocks loads the block puzzle configuration.
// Search order: customPath -> ~/.blockmaster/configs/blocks.yaml -> ./configs/blocks.yaml -> embedded default.
// Keys missing from a file keep their default values.
func LoadBlocks(customPath string) (BlocksConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultBlocksConfig(), fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := parseBlocks(data)
		if err != nil {
			return DefaultBlocksConfig(), fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	if userCfgPath := userConfigPath("blocks.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseBlocks(data); err == nil {
				return cfg, nil
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", "blocks.yaml")); err == nil {
		if cfg, err := parseBlocks(data); err == nil {
			return cfg, nil
		}
	}

	cfg, err := parseBlocks(defaultBlocksYAML)
	if err != nil {
		return DefaultBlocksConfig(), nil
	}
	return cfg, nil
}

func parseBlocks(data []byte) (BlocksConfig, error) {
	cfg := DefaultBlocksConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".blockmaster", "configs", filename)
}

// ApplyPreset modifies the config for the given preset.
// Modern leaves the loaded values alone.
func ApplyPreset(cfg *BlocksConfig, preset Preset) {
	if preset == PresetClassic {
		ApplyClassicPreset(cfg)
	}
}

// ApplyClassicPreset switches to the classic rule set: colors stay on,
// combo scoring and the playable-batch guarantee are turned off.
func ApplyClassicPreset(cfg *BlocksConfig) {
	cfg.Rules.ComboScoring = false
	cfg.Rules.GuaranteedSolvableBatches = false
	cfg.Rules.ColorTracking = true
	if cfg.Rules.PaletteSize < 1 || cfg.Rules.PaletteSize > MaxPaletteSize {
		cfg.Rules.PaletteSize = MaxPaletteSize
	}
}
