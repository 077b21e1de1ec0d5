package blocks

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vovakirdan/blockmaster/internal/core"
	"github.com/vovakirdan/blockmaster/internal/games/blocks/engine"
	"github.com/vovakirdan/blockmaster/internal/registry"
)

type recordingAudio struct {
	cues []engine.Cue
}

func (a *recordingAudio) Play(cue engine.Cue) {
	a.cues = append(a.cues, cue)
}

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
		Seed:     42,
	}
}

// newTestGame isolates config lookup and optionally loads yamlConfig.
func newTestGame(t *testing.T, g *Game, yamlConfig string) (*Game, *recordingAudio) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	if yamlConfig != "" {
		path := filepath.Join(t.TempDir(), "blocks.yaml")
		if err := os.WriteFile(path, []byte(yamlConfig), 0o600); err != nil {
			t.Fatalf("write config: %v", err)
		}
		SetConfigPath(path)
		t.Cleanup(func() { SetConfigPath("") })
	}

	audio := &recordingAudio{}
	g.SetAudio(audio)
	g.Reset(testConfig())
	return g, audio
}

func step(g *Game, actions ...core.Action) {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	g.Step(in)
}

// placeSelectedAnywhere moves the cursor to the first legal anchor and confirms.
func placeSelectedAnywhere(t *testing.T, g *Game) engine.Piece {
	t.Helper()
	p, ok := g.selectedPiece()
	if !ok {
		t.Fatal("no piece selected")
	}
	anchors := engine.ValidAnchors(p.Shape, g.session.Grid())
	if len(anchors) == 0 {
		t.Fatalf("piece %s has nowhere to go", p.Shape.Name())
	}
	g.cursor = anchors[0]
	step(g, core.ActionConfirm)
	return p
}

func TestRegistered(t *testing.T) {
	for _, id := range []string{"blocks", "blocks_classic"} {
		if !registry.Exists(id) {
			t.Errorf("game %q not registered", id)
		}
	}
}

func TestResetDealsBatch(t *testing.T) {
	g, _ := newTestGame(t, New(), "")

	snap := g.Snapshot()
	if snap.State != StatePlaying {
		t.Errorf("State = %s, want playing", snap.State)
	}
	if len(snap.Tray) != 3 {
		t.Errorf("Tray has %d pieces, want 3", len(snap.Tray))
	}
	if snap.Score != 0 || snap.Turn != 0 {
		t.Errorf("Score/Turn = %d/%d, want 0/0", snap.Score, snap.Turn)
	}
	if strings.Contains(snap.Board, "#") {
		t.Errorf("Board should start empty:\n%s", snap.Board)
	}
	if snap.Mode != "modern" {
		t.Errorf("Mode = %s, want modern", snap.Mode)
	}
}

func TestSameSeedSamePlay(t *testing.T) {
	a, _ := newTestGame(t, New(), "")
	b, _ := newTestGame(t, New(), "")

	for range 2 {
		placeSelectedAnywhere(t, a)
		placeSelectedAnywhere(t, b)
	}
	step(a, core.ActionDown, core.ActionNext)
	step(b, core.ActionDown, core.ActionNext)

	if diff := cmp.Diff(a.Snapshot(), b.Snapshot()); diff != "" {
		t.Errorf("same seed diverged (-a +b):\n%s", diff)
	}
}

func TestConfirmPlacesPiece(t *testing.T) {
	g, audio := newTestGame(t, New(), "")

	p := placeSelectedAnywhere(t, g)

	snap := g.Snapshot()
	if snap.Score != p.Shape.Area() {
		t.Errorf("Score = %d, want %d", snap.Score, p.Shape.Area())
	}
	if snap.Turn != 1 {
		t.Errorf("Turn = %d, want 1", snap.Turn)
	}
	if got := strings.Count(snap.Board, "#"); got != p.Shape.Area() {
		t.Errorf("Board has %d blocks, want %d", got, p.Shape.Area())
	}
	if len(snap.Tray) != 2 {
		t.Errorf("Tray has %d pieces, want 2", len(snap.Tray))
	}
	if len(audio.cues) == 0 || audio.cues[0] != engine.CuePlaced {
		t.Errorf("cues = %v, want placed first", audio.cues)
	}
	if _, ok := g.selectedPiece(); !ok {
		t.Error("selection should move to a remaining piece")
	}
}

func TestIllegalPlacementIsRejected(t *testing.T) {
	g, _ := newTestGame(t, New(), "")
	placeSelectedAnywhere(t, g)
	before := g.Snapshot()

	p, _ := g.selectedPiece()
	found := false
	for y := 0; y <= engine.GridSize-p.Shape.Rows() && !found; y++ {
		for x := 0; x <= engine.GridSize-p.Shape.Cols(); x++ {
			if !g.session.CanPlace(p.ID, x, y) {
				g.cursor = engine.Point{X: x, Y: y}
				found = true
				break
			}
		}
	}
	if !found {
		t.Fatal("expected an overlapping anchor")
	}

	step(g, core.ActionConfirm)

	after := g.Snapshot()
	if after.Score != before.Score || after.Board != before.Board {
		t.Error("rejected placement must not change score or board")
	}
	if after.Flash != "Doesn't fit there" {
		t.Errorf("Flash = %q", after.Flash)
	}
}

func TestRejectedDropSnapsToNearestFit(t *testing.T) {
	g, _ := newTestGame(t, New(), "")
	placeSelectedAnywhere(t, g)

	p, ok := g.selectedPiece()
	if !ok {
		t.Fatal("no piece selected after first drop")
	}
	anchors := engine.ValidAnchors(p.Shape, g.session.Grid())
	if len(anchors) == 0 {
		t.Skip("selected piece fits nowhere")
	}

	// Park the cursor on an overlapping anchor.
	var bad engine.Point
	found := false
	for y := 0; y <= engine.GridSize-p.Shape.Rows() && !found; y++ {
		for x := 0; x <= engine.GridSize-p.Shape.Cols(); x++ {
			if !g.session.CanPlace(p.ID, x, y) {
				bad, found = engine.Point{X: x, Y: y}, true
				break
			}
		}
	}
	if !found {
		t.Fatal("expected an overlapping anchor")
	}
	g.cursor = bad

	step(g, core.ActionConfirm)

	if !g.session.CanPlace(p.ID, g.cursor.X, g.cursor.Y) {
		t.Fatalf("cursor %v is not a legal anchor after a rejected drop", g.cursor)
	}
	want := abs(g.cursor.X-bad.X) + abs(g.cursor.Y-bad.Y)
	for _, a := range anchors {
		if d := abs(a.X-bad.X) + abs(a.Y-bad.Y); d < want {
			t.Errorf("anchor %v is closer (%d) than %v (%d)", a, d, g.cursor, want)
		}
	}
}

func TestCursorStaysOnBoard(t *testing.T) {
	g, _ := newTestGame(t, New(), "")
	p, _ := g.selectedPiece()

	for range 20 {
		step(g, core.ActionRight, core.ActionDown)
	}
	if g.cursor.X != engine.GridSize-p.Shape.Cols() || g.cursor.Y != engine.GridSize-p.Shape.Rows() {
		t.Errorf("cursor = %+v, want bottom-right anchor for %s", g.cursor, p.Shape.Name())
	}

	for range 20 {
		step(g, core.ActionLeft, core.ActionUp)
	}
	if g.cursor != (engine.Point{}) {
		t.Errorf("cursor = %+v, want origin", g.cursor)
	}
}

func TestSlotSelection(t *testing.T) {
	g, _ := newTestGame(t, New(), "")

	step(g, core.ActionSlot3)
	if g.selectedSlot != 2 {
		t.Errorf("selectedSlot = %d, want 2", g.selectedSlot)
	}

	step(g, core.ActionNext)
	if g.selectedSlot != 0 {
		t.Errorf("Next from the last slot should wrap, got %d", g.selectedSlot)
	}

	step(g, core.ActionPrev)
	if g.selectedSlot != 2 {
		t.Errorf("Prev from the first slot should wrap, got %d", g.selectedSlot)
	}

	// An emptied slot is skipped.
	placeSelectedAnywhere(t, g)
	step(g, core.ActionSlot3)
	if g.selectedSlot == 2 {
		t.Error("selecting an empty slot should be ignored")
	}
}

func TestReplenishAfterDelay(t *testing.T) {
	// 100ms at 30 ticks per second is 3 ticks.
	g, audio := newTestGame(t, New(), "timing:\n  replenish_delay_ms: 100\n")

	for range 3 {
		placeSelectedAnywhere(t, g)
	}
	if g.Snapshot().State != StateReplenishing {
		t.Fatalf("State = %s, want replenishing", g.Snapshot().State)
	}

	step(g)
	step(g)
	if g.Snapshot().State != StateReplenishing {
		t.Fatalf("batch dealt too early")
	}

	step(g)
	snap := g.Snapshot()
	if snap.State != StatePlaying {
		t.Fatalf("State = %s, want playing", snap.State)
	}
	if len(snap.Tray) != 3 {
		t.Errorf("Tray has %d pieces, want 3", len(snap.Tray))
	}
	if snap.Selected != 0 {
		t.Errorf("Selected = %d, want 0 after a new batch", snap.Selected)
	}
	placed := 0
	for _, c := range audio.cues {
		if c == engine.CuePlaced {
			placed++
		}
	}
	if placed != 3 {
		t.Errorf("placed cues = %d, want 3", placed)
	}
}

func TestZeroDelayReplenishesImmediately(t *testing.T) {
	g, _ := newTestGame(t, New(), "timing:\n  replenish_delay_ms: 0\n")

	for range 3 {
		placeSelectedAnywhere(t, g)
	}
	snap := g.Snapshot()
	if snap.State != StatePlaying || len(snap.Tray) != 3 {
		t.Errorf("State = %s with %d pieces, want a fresh batch", snap.State, len(snap.Tray))
	}
}

func TestRestartMidGame(t *testing.T) {
	g, _ := newTestGame(t, New(), "")
	placeSelectedAnywhere(t, g)

	step(g, core.ActionRestart)

	snap := g.Snapshot()
	if snap.Score != 0 || snap.Turn != 0 {
		t.Errorf("Score/Turn = %d/%d after restart", snap.Score, snap.Turn)
	}
	if strings.Contains(snap.Board, "#") {
		t.Error("board should be empty after restart")
	}
	if len(snap.Tray) != 3 {
		t.Errorf("Tray has %d pieces, want 3", len(snap.Tray))
	}
	if snap.HighScore == 0 {
		t.Error("high score from the first run should survive restart")
	}
}

func TestPauseBlocksInput(t *testing.T) {
	g, _ := newTestGame(t, New(), "")

	step(g, core.ActionPause)
	if !g.State().Paused {
		t.Fatal("game should be paused")
	}

	step(g, core.ActionConfirm)
	if g.Snapshot().Turn != 0 {
		t.Error("input should be ignored while paused")
	}

	step(g, core.ActionPause)
	if g.State().Paused {
		t.Error("second pause should resume")
	}
}

func TestHighScoreStoreIsUsed(t *testing.T) {
	store := &engine.MemoryHighScores{}
	store.SaveHighScore(500)

	g := New()
	g.SetHighScoreStore(store)
	newTestGame(t, g, "")

	if got := g.State().HighScore; got != 500 {
		t.Errorf("HighScore = %d, want 500", got)
	}
}

func TestClassicMode(t *testing.T) {
	g, _ := newTestGame(t, NewClassic(), "")

	if g.ID() != "blocks_classic" {
		t.Errorf("ID = %s", g.ID())
	}
	rules := g.session.Rules()
	if rules.ComboScoring || rules.GuaranteedSolvableBatches {
		t.Errorf("classic rules = %+v", rules)
	}
	if !rules.ColorTracking {
		t.Error("classic keeps colors")
	}
}

func TestBadConfigFallsBackToDefaults(t *testing.T) {
	g, _ := newTestGame(t, New(), "rules:\n  batch_size: 0\n")

	if got := g.session.Rules(); got != engine.DefaultRules() {
		t.Errorf("rules = %+v, want defaults", got)
	}
	if len(g.Snapshot().Tray) != 3 {
		t.Error("game should still be playable")
	}
}

func TestCustomShapesFile(t *testing.T) {
	dir := t.TempDir()
	shapes := filepath.Join(dir, "shapes.yaml")
	data := "version: test\nshapes:\n  - name: domino\n    rows: [\"##\"]\n"
	if err := os.WriteFile(shapes, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	g, _ := newTestGame(t, New(), "shapes_file: "+shapes+"\n")

	for _, name := range g.Snapshot().Tray {
		if name != "domino" {
			t.Errorf("tray piece %q, want domino", name)
		}
	}
}

func TestTooSmallWindow(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	g := New()
	cfg := testConfig()
	cfg.ScreenW, cfg.ScreenH = 20, 10
	g.Reset(cfg)

	if g.Snapshot().State != StatePausedSmall {
		t.Errorf("State = %s, want paused_small_window", g.Snapshot().State)
	}

	screen := core.NewScreen(20, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("expected too-small message")
	}

	g.Resize(80, 24)
	if g.Snapshot().State != StatePlaying {
		t.Error("resize should resume without a reset")
	}
}

func TestRender(t *testing.T) {
	g, _ := newTestGame(t, New(), "")
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	out := screen.String()
	for _, want := range []string{"BLOCKMASTER", "Score 0", "Best 0", "Turn 0", "[1]", "▓▓"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}
	if screen.Get((80-boardW)/2, hudHeight) != '┌' {
		t.Error("board frame should start below the HUD")
	}
}

func TestRenderPausedOverlay(t *testing.T) {
	g, _ := newTestGame(t, New(), "")
	step(g, core.ActionPause)

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "PAUSED") {
		t.Error("expected pause overlay")
	}
}

func TestClearedCellsTakePlacedPieceColor(t *testing.T) {
	g, _ := newTestGame(t, New(), "")

	g.apply(engine.Result{
		Accepted: true,
		State:    engine.StateAwaitingPlacement,
		Events: []engine.Event{
			{Kind: engine.EventPlaced, Blocks: []engine.Block{{X: 8, Y: 0, Color: engine.ColorPurple}}},
			{Kind: engine.EventLineCleared, Delta: 20, Combo: 1, Blocks: []engine.Block{{X: 0, Y: 0}, {X: 8, Y: 0}}},
		},
	})

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	boardX := (80 - boardW) / 2
	cell := screen.GetCell(boardX+1, hudHeight+1)
	if cell.Rune != '░' {
		t.Fatalf("cleared cell rune = %q, want '░'", cell.Rune)
	}
	if cell.Color != core.ColorPurple {
		t.Errorf("cleared cell color = %v, want the placed piece's purple", cell.Color)
	}
}

func TestClearTintWithoutColorTracking(t *testing.T) {
	if got := clearTintFor([]engine.Block{{Color: engine.ColorNone}}); got != core.ColorHighlight {
		t.Errorf("clearTintFor(colorless) = %v, want highlight", got)
	}
	if got := clearTintFor(nil); got != core.ColorHighlight {
		t.Errorf("clearTintFor(nil) = %v, want highlight", got)
	}
}
