package blocks

import (
	"fmt"

	"github.com/vovakirdan/blockmaster/internal/config"
	"github.com/vovakirdan/blockmaster/internal/core"
	"github.com/vovakirdan/blockmaster/internal/games/blocks/engine"
)

const (
	cellWidth  = 2 // Screen columns per board cell
	boardW     = engine.GridSize*cellWidth + 2
	boardH     = engine.GridSize + 2
	hudHeight  = 3
	slotWidth  = 12 // Room for a 5x5 shape plus padding
	slotCells  = 5  // Largest shape drawn in the tray
	trayHeight = slotCells + 1

	minWidth  = 3*slotWidth + 2
	minHeight = hudHeight + boardH + 1 + trayHeight + 1
)

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	boardX := (g.screenW - boardW) / 2
	boardY := hudHeight

	g.renderHUD(dst)
	g.renderBoard(dst, boardX, boardY)
	dst.DrawTextCentered(boardY+boardH, g.flash, g.flashColor)
	g.renderTray(dst, boardY+boardH+1)

	if g.screenH > minHeight {
		dst.DrawTextCentered(g.screenH-1, g.Controls(), core.ColorDim)
	}

	g.renderOverlays(dst, core.NewRect(boardX, boardY, boardW, boardH))
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small", core.ColorDefault)
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", minWidth, minHeight), core.ColorDim)
}

// renderHUD draws the title, score, best, combo and turn.
func (g *Game) renderHUD(dst *core.Screen) {
	title := "BLOCKMASTER"
	if g.mode == config.PresetClassic {
		title = "BLOCKMASTER  CLASSIC"
	}
	dst.DrawTextCentered(0, title, core.ColorHighlight)

	sc := g.session.Score()
	info := fmt.Sprintf("Score %d   Best %d", sc.Score, sc.HighScore)
	// A streak is alive only while the last turn cleared something.
	if g.session.Rules().ComboScoring && sc.Turn > 0 && sc.LastClearTurn == sc.Turn {
		info += fmt.Sprintf("   Combo x%d", sc.Combo)
	}
	info += fmt.Sprintf("   Turn %d", sc.Turn)

	color := core.ColorDefault
	if g.newBest {
		color = core.ColorGold
	}
	dst.DrawTextCentered(1, info, color)
}

// renderBoard draws the 9x9 grid, cleared cells and the placement ghost.
func (g *Game) renderBoard(dst *core.Screen, boardX, boardY int) {
	dst.DrawBox(core.NewRect(boardX, boardY, boardW, boardH), core.ColorGray)

	cellAt := func(x, y int) (int, int) {
		return boardX + 1 + x*cellWidth, boardY + 1 + y
	}

	grid := g.session.Grid()
	for y := range engine.GridSize {
		for x := range engine.GridSize {
			sx, sy := cellAt(x, y)
			c := grid.Cell(x, y)
			if c.Occupied {
				dst.DrawTextColored(sx, sy, "██", pieceColor(c.Color))
			} else {
				dst.DrawTextColored(sx, sy, "· ", core.ColorGray)
			}
		}
	}

	for _, b := range g.cleared {
		sx, sy := cellAt(b.X, b.Y)
		dst.DrawTextColored(sx, sy, "░░", g.clearTint)
	}

	if g.session.State() != engine.StateAwaitingPlacement {
		return
	}
	p, ok := g.selectedPiece()
	if !ok {
		return
	}
	color := pieceColor(p.Color)
	if !g.session.CanPlace(p.ID, g.cursor.X, g.cursor.Y) {
		color = core.ColorDanger
	}
	for _, pt := range p.Shape.Cells() {
		sx, sy := cellAt(g.cursor.X+pt.X, g.cursor.Y+pt.Y)
		dst.DrawTextColored(sx, sy, "▓▓", color)
	}
}

// renderTray draws the offered pieces under the board.
func (g *Game) renderTray(dst *core.Screen, y int) {
	slots := g.session.Rules().BatchSize
	trayX := (g.screenW - slots*slotWidth) / 2

	if g.session.State() == engine.StateReplenishing {
		dst.DrawTextCentered(y+slotCells/2, "dealing...", core.ColorDim)
		return
	}

	grid := g.session.Grid()
	for slot := range slots {
		sx := trayX + slot*slotWidth

		label := fmt.Sprintf(" %d ", slot+1)
		labelColor := core.ColorDim
		if slot == g.selectedSlot {
			label = fmt.Sprintf("[%d]", slot+1)
			labelColor = core.ColorHighlight
		}
		dst.DrawTextColored(sx+(slotWidth-len(label))/2, y, label, labelColor)

		p, ok := g.pieceInSlot(slot)
		if !ok {
			continue
		}
		color := pieceColor(p.Color)
		if !engine.HasAnyValidPlacement(p.Shape, grid) {
			color = core.ColorDim
		}
		offX := sx + (slotWidth-p.Shape.Cols()*cellWidth)/2
		for _, pt := range p.Shape.Cells() {
			if pt.X >= slotCells || pt.Y >= slotCells {
				continue
			}
			dst.DrawTextColored(offX+pt.X*cellWidth, y+1+pt.Y, "██", color)
		}
	}
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen, board core.Rect) {
	if g.paused {
		g.drawOverlay(dst, board, "PAUSED", "Press P to resume")
		return
	}

	if g.session.State() == engine.StateGameOver {
		sc := g.session.Score()
		lines := []string{"GAME OVER", fmt.Sprintf("Score: %d", sc.Score)}
		if g.newBest {
			lines = append(lines, "New best!")
		} else {
			lines = append(lines, fmt.Sprintf("Best: %d", sc.HighScore))
		}
		lines = append(lines, "Press R to restart")
		g.drawOverlay(dst, board, lines...)
	}
}

// drawOverlay draws a boxed message centered on the board.
func (g *Game) drawOverlay(dst *core.Screen, board core.Rect, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len([]rune(line)))
	}

	box := board.Centered(maxLen+4, len(lines)+2)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorWhite)

	for i, line := range lines {
		x := box.X + (box.W-len([]rune(line)))/2
		dst.DrawTextColored(x, box.Y+1+i, line, core.ColorWhite)
	}
}

// pieceColor maps an engine palette color to a screen color.
func pieceColor(c engine.Color) core.Color {
	switch c {
	case engine.ColorRed:
		return core.ColorRed
	case engine.ColorBlue:
		return core.ColorBlue
	case engine.ColorGreen:
		return core.ColorGreen
	case engine.ColorGold:
		return core.ColorGold
	case engine.ColorCyan:
		return core.ColorCyan
	case engine.ColorPurple:
		return core.ColorPurple
	case engine.ColorOrange:
		return core.ColorOrange
	default:
		return core.ColorWhite
	}
}
