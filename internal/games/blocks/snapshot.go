package blocks

import "github.com/vovakirdan/blockmaster/internal/games/blocks/engine"

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying      GameStateType = "playing"
	StateReplenishing GameStateType = "replenishing"
	StateGameOver     GameStateType = "game_over"
	StatePaused       GameStateType = "paused"
	StatePausedSmall  GameStateType = "paused_small_window"
)

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick      uint64
	Mode      string // "modern" or "classic"
	Score     int
	HighScore int
	Combo     int
	Turn      int
	Board     string   // engine.Grid text form, '#' for occupied
	Tray      []string // Shape names, in slot order
	Selected  int      // Selected slot
	Cursor    engine.Point
	Flash     string
	State     GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.paused:
		state = StatePaused
	case g.session.State() == engine.StateGameOver:
		state = StateGameOver
	case g.session.State() == engine.StateReplenishing:
		state = StateReplenishing
	}

	var tray []string
	for _, p := range g.session.Pieces() {
		tray = append(tray, p.Shape.Name())
	}

	sc := g.session.Score()
	return Snapshot{
		Tick:      g.tick,
		Mode:      string(g.mode),
		Score:     sc.Score,
		HighScore: sc.HighScore,
		Combo:     sc.Combo,
		Turn:      sc.Turn,
		Board:     g.session.Grid().String(),
		Tray:      tray,
		Selected:  g.selectedSlot,
		Cursor:    g.cursor,
		Flash:     g.flash,
		State:     state,
	}
}
