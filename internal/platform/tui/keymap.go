package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blockmaster/internal/core"
)

// actionBinding ties one game action to its keys.
type actionBinding struct {
	action  core.Action
	binding key.Binding
}

// playKeys is matched in order; the first hit wins.
var playKeys = []actionBinding{
	{core.ActionUp, key.NewBinding(key.WithKeys("up", "w", "k"))},
	{core.ActionDown, key.NewBinding(key.WithKeys("down", "s", "j"))},
	{core.ActionLeft, key.NewBinding(key.WithKeys("left", "a", "h"))},
	{core.ActionRight, key.NewBinding(key.WithKeys("right", "d", "l"))},
	{core.ActionConfirm, key.NewBinding(key.WithKeys("enter", " "))},
	{core.ActionNext, key.NewBinding(key.WithKeys("tab"))},
	{core.ActionPrev, key.NewBinding(key.WithKeys("shift+tab"))},
	{core.ActionSlot1, key.NewBinding(key.WithKeys("1"))},
	{core.ActionSlot2, key.NewBinding(key.WithKeys("2"))},
	{core.ActionSlot3, key.NewBinding(key.WithKeys("3"))},
	{core.ActionBack, key.NewBinding(key.WithKeys("b"))},
	{core.ActionPause, key.NewBinding(key.WithKeys("p", "esc"))},
	{core.ActionRestart, key.NewBinding(key.WithKeys("r"))},
}

// menuKeys are the mode picker bindings; they double as its help bar.
type menuKeys struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Scores key.Binding
	Back   key.Binding
	Quit   key.Binding
}

func (k menuKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Scores, k.Quit}
}

func (k menuKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func newMenuKeys() menuKeys {
	return menuKeys{
		Up:     key.NewBinding(key.WithKeys("up", "w", "k"), key.WithHelp("↑", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "s", "j"), key.WithHelp("↓", "down")),
		Select: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "play")),
		Scores: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "scores")),
		Back:   key.NewBinding(key.WithKeys("b", "esc"), key.WithHelp("b", "back")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// KeyMapper translates Bubble Tea key messages to game and menu actions.
type KeyMapper struct {
	quit key.Binding
	play []actionBinding
	menu menuKeys
}

// NewKeyMapper creates a key mapper with the default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{
		quit: key.NewBinding(key.WithKeys("q", "ctrl+c")),
		play: playKeys,
		menu: newMenuKeys(),
	}
}

// MapKey translates a key message to a game action.
// Quit is reported apart from the action since it ends the program.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	if key.Matches(msg, km.quit) {
		return core.ActionQuit, true
	}
	for _, b := range km.play {
		if key.Matches(msg, b.binding) {
			return b.action, false
		}
	}
	return core.ActionNone, false
}

// MapKeyToFrame records the key's action in frame.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	return isQuit
}

// MenuAction is a menu-level action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	k := km.menu
	switch {
	case key.Matches(msg, k.Quit):
		return MenuActionQuit
	case key.Matches(msg, k.Up):
		return MenuActionUp
	case key.Matches(msg, k.Down):
		return MenuActionDown
	case key.Matches(msg, k.Select):
		return MenuActionSelect
	case key.Matches(msg, k.Back):
		return MenuActionBack
	case key.Matches(msg, k.Scores):
		return MenuActionScoreboard
	}
	return MenuActionNone
}
