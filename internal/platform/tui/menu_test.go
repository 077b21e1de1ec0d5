package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blockmaster/internal/core"
)

func pressMenu(m MenuModel, msg tea.KeyMsg) MenuModel {
	next, _ := m.Update(msg)
	return next.(MenuModel)
}

func TestMenuCardFollowsCursor(t *testing.T) {
	store := openScoreboardStore(t)
	store.SetHighScore("blocks_classic", 730)

	m := NewMenuModel(store, core.RuntimeConfig{ScreenW: 100, ScreenH: 30})
	if len(m.items) != 2 {
		t.Fatalf("menu has %d modes, want 2", len(m.items))
	}
	for _, item := range m.items {
		if item.Description == "" || item.Controls == "" {
			t.Errorf("%s: description and controls should come from the game", item.GameID)
		}
	}

	if out := m.View(); !strings.Contains(out, "no best yet") || !strings.Contains(out, "multiply") {
		t.Error("first card should describe combo rules with no best yet")
	}

	m = pressMenu(m, tea.KeyMsg{Type: tea.KeyDown})
	m = pressMenu(m, tea.KeyMsg{Type: tea.KeyDown})
	if m.cursor != 1 {
		t.Fatalf("cursor = %d, want it held at the last mode", m.cursor)
	}
	if out := m.View(); !strings.Contains(out, "best 730") {
		t.Error("classic card should show its stored best")
	}
}

func TestMenuSelectAndScoreboard(t *testing.T) {
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24}

	m := pressMenu(NewMenuModel(nil, cfg), runeKey('j'))
	m = pressMenu(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Selected() == nil || m.Selected().GameID != "blocks_classic" {
		t.Fatalf("selected = %+v, want blocks_classic", m.Selected())
	}

	m = pressMenu(NewMenuModel(nil, cfg), tea.KeyMsg{Type: tea.KeyTab})
	if !m.WantsScoreboard() || m.Selected() != nil {
		t.Error("tab should open the scoreboard")
	}

	m = pressMenu(NewMenuModel(nil, cfg), runeKey('q'))
	if !m.IsQuitting() || m.View() != "" {
		t.Error("q should quit and blank the view")
	}
}

func TestMenuTracksResize(t *testing.T) {
	m := NewMenuModel(nil, core.RuntimeConfig{ScreenW: 80, ScreenH: 24})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	cfg := next.(MenuModel).Config()
	if cfg.ScreenW != 120 || cfg.ScreenH != 40 {
		t.Errorf("config = %dx%d, want 120x40", cfg.ScreenW, cfg.ScreenH)
	}
}
