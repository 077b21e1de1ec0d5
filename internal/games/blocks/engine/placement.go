package engine

// CanPlace reports whether shape fits with its top-left bounding-box cell at (x, y).
// Only set cells matter: every one must land inside the grid on an empty cell.
func CanPlace(shape Shape, x, y int, g *Grid) bool {
	if shape.Area() == 0 {
		return false
	}
	for _, p := range shape.set {
		gx, gy := x+p.X, y+p.Y
		if !g.InBounds(gx, gy) {
			return false
		}
		if g.cells[gy][gx].Occupied {
			return false
		}
	}
	return true
}

// HasAnyValidPlacement reports whether shape fits anywhere on the grid.
// Brute force over all 81 anchors; at this board size that is fast enough.
func HasAnyValidPlacement(shape Shape, g *Grid) bool {
	for y := range GridSize {
		for x := range GridSize {
			if CanPlace(shape, x, y, g) {
				return true
			}
		}
	}
	return false
}

// ValidAnchors returns every anchor where shape fits, in row-major order.
func ValidAnchors(shape Shape, g *Grid) []Point {
	var anchors []Point
	for y := range GridSize {
		for x := range GridSize {
			if CanPlace(shape, x, y, g) {
				anchors = append(anchors, Point{X: x, Y: y})
			}
		}
	}
	return anchors
}
