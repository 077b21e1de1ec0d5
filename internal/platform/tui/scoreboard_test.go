package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	_ "github.com/vovakirdan/blockmaster/internal/games/blocks"
	"github.com/vovakirdan/blockmaster/internal/storage"
)

func openScoreboardStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func press(m ScoreboardModel, msg tea.KeyMsg) ScoreboardModel {
	next, _ := m.Update(msg)
	return next.(ScoreboardModel)
}

func TestScoreboardShowsRecordedBestApartFromRuns(t *testing.T) {
	store := openScoreboardStore(t)
	store.SaveScore("blocks", "", 120)
	store.SetHighScore("blocks", 500)

	m := NewScoreboardModel(store, "", 100, 40)
	if m.modeID() != "blocks" {
		t.Fatalf("first mode = %q, want blocks", m.modeID())
	}
	if m.stats == nil || m.stats.HighScore != 500 || m.stats.BestRun != 120 {
		t.Fatalf("stats = %+v, want best 500 and best run 120", m.stats)
	}

	out := m.View()
	for _, want := range []string{"Best run", "500", "120", "Top runs"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestScoreboardMyRunsView(t *testing.T) {
	store := openScoreboardStore(t)
	store.SaveScore("blocks", "bob", 99)
	store.SaveScore("blocks_classic", "alice", 10)
	store.SaveScore("blocks", "alice", 40)

	m := NewScoreboardModel(store, "alice", 100, 40)
	if len(m.runs) != 2 {
		t.Fatalf("top runs for blocks = %d, want 2", len(m.runs))
	}

	m = press(m, runeKey('m'))
	if m.view != viewMyRuns {
		t.Fatalf("view = %v, want My runs", m.view)
	}
	if len(m.runs) != 2 {
		t.Fatalf("alice has %d runs, want 2", len(m.runs))
	}
	for _, r := range m.runs {
		if r.Player != "alice" {
			t.Errorf("run of %q listed under alice", r.Player)
		}
	}
	if m.runs[0].Score != 40 {
		t.Errorf("latest run first: got %d, want 40", m.runs[0].Score)
	}

	m = press(m, runeKey('m'))
	if m.view != viewTopRuns {
		t.Errorf("second toggle should return to top runs")
	}
}

func TestScoreboardSwitchMode(t *testing.T) {
	m := NewScoreboardModel(openScoreboardStore(t), "", 100, 40)

	m = press(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.modeID() != "blocks_classic" {
		t.Errorf("after tab mode = %q, want blocks_classic", m.modeID())
	}
	m = press(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.modeID() != "blocks" {
		t.Errorf("tab should wrap, got %q", m.modeID())
	}
	m = press(m, tea.KeyMsg{Type: tea.KeyLeft})
	if m.modeID() != "blocks_classic" {
		t.Errorf("left should wrap backwards, got %q", m.modeID())
	}
}

func TestScoreboardWithoutStore(t *testing.T) {
	m := NewScoreboardModel(nil, "", 80, 24)
	if !strings.Contains(m.View(), "no scores database") {
		t.Error("expected a notice when no database is attached")
	}

	m = press(m, runeKey('b'))
	if !m.IsGoingBack() || m.IsQuitting() {
		t.Error("b should go back, not quit")
	}
}
