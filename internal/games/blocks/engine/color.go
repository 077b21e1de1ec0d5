// Package engine provides the rules engine for the Blockmaster puzzle game:
// grid occupancy, the shape catalog, placement validation, batch generation,
// line clearing with combo scoring, and the turn-based game session.
// This package is UI-agnostic and deterministic for a given RNG.
package engine

// Color identifies the tint of a piece and of the blocks it leaves behind.
type Color uint8

// ColorNone is used when color tracking is disabled.
const ColorNone Color = 0

// Palette colors, in the order pieces draw from.
const (
	ColorRed Color = iota + 1
	ColorBlue
	ColorGreen
	ColorGold
	ColorCyan
	ColorPurple
	ColorOrange
)

// Palette is the full set of piece colors.
var Palette = []Color{
	ColorRed,
	ColorBlue,
	ColorGreen,
	ColorGold,
	ColorCyan,
	ColorPurple,
	ColorOrange,
}

// String returns the color name.
func (c Color) String() string {
	switch c {
	case ColorNone:
		return "none"
	case ColorRed:
		return "red"
	case ColorBlue:
		return "blue"
	case ColorGreen:
		return "green"
	case ColorGold:
		return "gold"
	case ColorCyan:
		return "cyan"
	case ColorPurple:
		return "purple"
	case ColorOrange:
		return "orange"
	default:
		return "unknown"
	}
}
