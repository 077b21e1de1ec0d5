package core

// Color is a foreground color for a screen cell.
// The platform maps each value to a terminal color.
type Color uint8

const (
	ColorDefault Color = iota
	ColorRed
	ColorBlue
	ColorGreen
	ColorGold
	ColorCyan
	ColorPurple
	ColorOrange
	ColorWhite
	ColorGray // Grid lines, empty cells
	ColorDim  // Hints and secondary text
	ColorHighlight
	ColorDanger // Invalid ghost, game over
)
