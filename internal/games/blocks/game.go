// Package blocks implements the Blockmaster puzzle as a registered game:
// pick one of the offered pieces, steer it over the 9x9 board and drop it.
// Full rows and columns clear. The rules live in the engine subpackage;
// this package maps input to engine calls and draws the result.
package blocks

import (
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockmaster/internal/config"
	"github.com/vovakirdan/blockmaster/internal/core"
	"github.com/vovakirdan/blockmaster/internal/games/blocks/engine"
	"github.com/vovakirdan/blockmaster/internal/registry"
)

// Package-level variables for config
var (
	configPath string
)

// SetConfigPath sets a custom config file path. Empty uses the search order.
func SetConfigPath(path string) {
	configPath = path
}

// Game adapts an engine session to the platform's tick loop.
type Game struct {
	mode       config.Preset
	tick       uint64
	logger     *log.Logger
	audio      Audio
	highScores registry.HighScoreStore

	cfg     config.BlocksConfig
	session *engine.Session

	// Screen dimensions
	screenW  int
	screenH  int
	tooSmall bool
	paused   bool

	selectedSlot int
	cursor       engine.Point // Anchor of the selected piece

	replenishDelay int // Ticks between an empty tray and the next batch
	replenishIn    int
	flashDuration  int

	flash      string
	flashColor core.Color
	flashTicks int
	cleared    []engine.Block // Highlighted while the flash is shown
	clearTint  core.Color     // Color of the piece that completed the lines
	newBest    bool
}

// New creates a game with every rule feature on.
func New() *Game {
	return &Game{mode: config.PresetModern}
}

// NewClassic creates a game with the classic rules: no combo, no batch guarantee.
func NewClassic() *Game {
	return &Game{mode: config.PresetClassic}
}

func init() {
	registry.Register("blocks", func() registry.Game {
		return New()
	})
	registry.Register("blocks_classic", func() registry.Game {
		return NewClassic()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == config.PresetClassic {
		return "blocks_classic"
	}
	return "blocks"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == config.PresetClassic {
		return "Blockmaster (Classic)"
	}
	return "Blockmaster"
}

// Description summarizes the rule preset for the mode picker.
func (g *Game) Description() string {
	if g.mode == config.PresetClassic {
		return "Line points never multiply and deals are random, so a round can open dead."
	}
	return "Back-to-back clears multiply line points. Every deal holds a piece that fits."
}

// SetHighScoreStore attaches persistent high score storage.
// Takes effect on the next Reset.
func (g *Game) SetHighScoreStore(store registry.HighScoreStore) {
	g.highScores = store
}

// SetAudio replaces the audio sink.
func (g *Game) SetAudio(a Audio) {
	g.audio = a
}

// Reset loads the config and starts a fresh session.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	if g.logger == nil {
		g.logger = log.Default().WithPrefix(g.ID())
	}
	if g.audio == nil {
		g.audio = logAudio{logger: g.logger}
	}
	if g.highScores == nil {
		// Keeps the best score across restarts when nothing persists it.
		g.highScores = &engine.MemoryHighScores{}
	}

	g.tick = 0
	g.paused = false
	g.cfg = g.loadConfig()
	g.replenishDelay = delayTicks(cfg, g.cfg.Timing.ReplenishDelayMS)
	g.flashDuration = cfg.TicksFor(g.cfg.Timing.FlashMS)

	g.session = g.newSession(rand.New(rand.NewSource(cfg.Seed)))
	g.resetUI()
	g.ensureSelection()

	g.Resize(cfg.ScreenW, cfg.ScreenH)
}

func (g *Game) loadConfig() config.BlocksConfig {
	bc, err := config.LoadBlocks(configPath)
	if err != nil {
		g.logger.Warn("using default config", "path", configPath, "error", err)
	}
	config.ApplyPreset(&bc, g.mode)
	return bc
}

func (g *Game) newSession(rng *rand.Rand) *engine.Session {
	base := []engine.Option{
		engine.WithLogger(g.logger),
		engine.WithHighScores(g.highScores),
	}

	opts := base
	if path := g.cfg.ShapesFile; path != "" {
		cat, err := engine.LoadCatalogFile(path)
		if err != nil {
			g.logger.Warn("using built-in shapes", "path", path, "error", err)
		} else {
			opts = append(opts[:len(base):len(base)], engine.WithCatalog(cat))
		}
	}

	s, err := engine.NewSession(rulesFromConfig(g.cfg.Rules), rng, opts...)
	if err == nil {
		return s
	}
	g.logger.Error("falling back to built-in rules", "error", err)

	fallback := engine.DefaultRules()
	if g.mode == config.PresetClassic {
		fallback = engine.ClassicRules()
	}
	s, err = engine.NewSession(fallback, rng, base...)
	if err != nil {
		panic(fmt.Sprintf("blocks: built-in rules rejected: %v", err))
	}
	return s
}

func rulesFromConfig(r config.BlocksRules) engine.Rules {
	return engine.Rules{
		ComboScoring:              r.ComboScoring,
		ColorTracking:             r.ColorTracking,
		GuaranteedSolvableBatches: r.GuaranteedSolvableBatches,
		BatchSize:                 r.BatchSize,
		MaxBatchAttempts:          r.MaxBatchAttempts,
		PointsPerLine:             r.PointsPerLine,
		GridClearBonus:            r.GridClearBonus,
		PaletteSize:               r.PaletteSize,
	}
}

// delayTicks converts ms to ticks; zero stays zero (no delay).
func delayTicks(cfg core.RuntimeConfig, ms int) int {
	if ms <= 0 {
		return 0
	}
	return cfg.TicksFor(ms)
}

func (g *Game) resetUI() {
	g.selectedSlot = 0
	g.cursor = engine.Point{X: engine.GridSize / 2, Y: engine.GridSize / 2}
	g.replenishIn = 0
	g.flash = ""
	g.flashTicks = 0
	g.cleared = nil
	g.newBest = false
}

// Resize adopts new screen dimensions without touching the session.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
	g.checkScreenSize()
}

// checkScreenSize checks if the screen is large enough.
func (g *Game) checkScreenSize() {
	g.tooSmall = g.screenW < minWidth || g.screenH < minHeight
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.tickFlash()

	// Restart after game over comes from the platform with a fresh seed.
	if g.session.State() == engine.StateGameOver {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionRestart) {
		g.apply(g.session.Restart())
		return core.StepResult{State: g.State()}
	}

	switch g.session.State() {
	case engine.StateReplenishing:
		g.replenishIn--
		if g.replenishIn <= 0 {
			g.apply(g.session.Replenish())
		}
	case engine.StateAwaitingPlacement:
		g.handleInput(in)
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) handleInput(in core.InputFrame) {
	for _, a := range []core.Action{core.ActionSlot1, core.ActionSlot2, core.ActionSlot3} {
		if slot, ok := a.SlotIndex(); ok && in.Has(a) {
			g.selectSlot(slot)
		}
	}
	if in.Has(core.ActionNext) {
		g.cycleSelection(1)
	}
	if in.Has(core.ActionPrev) {
		g.cycleSelection(-1)
	}

	dx, dy := 0, 0
	if in.Has(core.ActionLeft) {
		dx--
	}
	if in.Has(core.ActionRight) {
		dx++
	}
	if in.Has(core.ActionUp) {
		dy--
	}
	if in.Has(core.ActionDown) {
		dy++
	}
	if dx != 0 || dy != 0 {
		g.cursor.X += dx
		g.cursor.Y += dy
		g.clampCursor()
	}

	if in.Has(core.ActionConfirm) {
		g.placeSelected()
	}
}

func (g *Game) placeSelected() {
	p, ok := g.selectedPiece()
	if !ok {
		return
	}
	res := g.session.Place(p.ID, g.cursor.X, g.cursor.Y)
	if !res.Accepted {
		g.setFlash("Doesn't fit there", core.ColorDanger)
		g.snapToFit(p)
		return
	}
	g.apply(res)
}

// apply reacts to the events of an accepted transition.
func (g *Game) apply(res engine.Result) {
	for _, ev := range res.Events {
		if cue, ok := ev.Cue(); ok {
			g.audio.Play(cue)
		}

		switch ev.Kind {
		case engine.EventRestart:
			g.resetUI()
		case engine.EventPlaced:
			g.clearTint = clearTintFor(ev.Blocks)
		case engine.EventLineCleared:
			g.cleared = ev.Blocks
			msg := fmt.Sprintf("+%d", ev.Delta)
			if ev.Combo > 1 {
				msg = fmt.Sprintf("+%d x%d", ev.Delta, ev.Combo)
			}
			g.setFlash(msg, core.ColorGold)
		case engine.EventGridEmptied:
			g.setFlash(fmt.Sprintf("GRID CLEAR! +%d", ev.Delta), core.ColorHighlight)
		case engine.EventHighScore:
			g.newBest = true
		case engine.EventBatchReady:
			g.selectedSlot = 0
		case engine.EventGameOver:
			g.logger.Info("game over", "score", ev.Score, "turn", ev.Turn, "reason", ev.Reason)
		}
	}

	switch res.State {
	case engine.StateReplenishing:
		g.replenishIn = g.replenishDelay
		if g.replenishIn == 0 {
			g.apply(g.session.Replenish())
		}
	case engine.StateAwaitingPlacement:
		g.ensureSelection()
	}
}

// clearTintFor picks the tint of cleared cells from the placed blocks.
// Colorless pieces fall back to the highlight color.
func clearTintFor(placed []engine.Block) core.Color {
	if len(placed) == 0 || placed[0].Color == engine.ColorNone {
		return core.ColorHighlight
	}
	return pieceColor(placed[0].Color)
}

func (g *Game) setFlash(msg string, c core.Color) {
	g.flash = msg
	g.flashColor = c
	g.flashTicks = g.flashDuration
}

func (g *Game) tickFlash() {
	if g.flashTicks == 0 {
		return
	}
	g.flashTicks--
	if g.flashTicks == 0 {
		g.flash = ""
		g.cleared = nil
	}
}

// selectedPiece returns the piece in the selected tray slot.
func (g *Game) selectedPiece() (engine.Piece, bool) {
	return g.pieceInSlot(g.selectedSlot)
}

func (g *Game) selectSlot(slot int) {
	if _, ok := g.pieceInSlot(slot); ok {
		g.selectedSlot = slot
		g.clampCursor()
	}
}

// cycleSelection moves to the next occupied slot in direction dir.
func (g *Game) cycleSelection(dir int) {
	n := g.session.Rules().BatchSize
	for i := 1; i <= n; i++ {
		slot := ((g.selectedSlot+dir*i)%n + n) % n
		if _, ok := g.pieceInSlot(slot); ok {
			g.selectedSlot = slot
			g.clampCursor()
			return
		}
	}
}

// ensureSelection moves off an empty slot.
func (g *Game) ensureSelection() {
	if _, ok := g.selectedPiece(); !ok {
		g.cycleSelection(1)
	}
	g.clampCursor()
}

func (g *Game) pieceInSlot(slot int) (engine.Piece, bool) {
	for _, p := range g.session.Pieces() {
		if p.Slot == slot {
			return p, true
		}
	}
	return engine.Piece{}, false
}

// snapToFit moves the cursor to the closest anchor where p fits.
// Ties go to the first anchor in row-major order.
func (g *Game) snapToFit(p engine.Piece) {
	best, bestDist := g.cursor, -1
	for _, a := range engine.ValidAnchors(p.Shape, g.session.Grid()) {
		d := abs(a.X-g.cursor.X) + abs(a.Y-g.cursor.Y)
		if bestDist < 0 || d < bestDist {
			best, bestDist = a, d
		}
	}
	g.cursor = best
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// clampCursor keeps the selected piece inside the board.
func (g *Game) clampCursor() {
	maxX, maxY := engine.GridSize-1, engine.GridSize-1
	if p, ok := g.selectedPiece(); ok {
		maxX = engine.GridSize - p.Shape.Cols()
		maxY = engine.GridSize - p.Shape.Rows()
	}
	g.cursor.X = core.Clamp(g.cursor.X, 0, maxX)
	g.cursor.Y = core.Clamp(g.cursor.Y, 0, maxY)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	sc := g.session.Score()
	return core.GameState{
		Score:     sc.Score,
		HighScore: sc.HighScore,
		GameOver:  g.session.State() == engine.StateGameOver,
		Paused:    g.paused || g.tooSmall,
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD: Move | Tab/1-3: Piece | Enter/Space: Place | P: Pause | R: Restart | Q: Quit"
}
