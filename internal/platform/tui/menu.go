package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/blockmaster/internal/core"
	"github.com/vovakirdan/blockmaster/internal/registry"
	"github.com/vovakirdan/blockmaster/internal/storage"
)

const modeCardWidth = 44

var (
	menuLogoStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 2)
	menuItemStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).PaddingLeft(2)
	menuCursorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuCardStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("57")).Padding(0, 1).Width(modeCardWidth)
	menuCardTitle    = lipgloss.NewStyle().Bold(true)
	menuCardDimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	menuBestStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

// MenuItem is one playable mode in the picker.
type MenuItem struct {
	GameID      string
	Title       string
	Description string // Rule summary, if the game has one
	HighScore   int
	Controls    string // In-game key bindings, if the game describes them
}

// MenuModel is the Bubble Tea model for the mode picker.
type MenuModel struct {
	items  []MenuItem
	cursor int
	config core.RuntimeConfig

	keyMapper *KeyMapper
	help      help.Model

	quitting       bool
	selected       *MenuItem
	openScoreboard bool
}

// NewMenuModel lists the registered modes with their stored best scores.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	return MenuModel{
		items:     menuItems(store),
		config:    cfg,
		keyMapper: NewKeyMapper(),
		help:      help.New(),
	}
}

func menuItems(store *storage.Store) []MenuItem {
	games := registry.List()
	items := make([]MenuItem, 0, len(games))
	for _, g := range games {
		item := MenuItem{GameID: g.ID, Title: g.Title}
		if game, err := registry.Create(g.ID); err == nil {
			if d, ok := game.(registry.Describer); ok {
				item.Description = d.Description()
			}
			if cp, ok := game.(registry.ControlsProvider); ok {
				item.Controls = cp.Controls()
			}
		}
		if store != nil {
			if high, err := store.HighScore(g.ID); err == nil {
				item.HighScore = high
			}
		}
		items = append(items, item)
	}
	return items
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.keyMapper.MapKeyToMenuAction(msg) {
		case MenuActionQuit:
			m.quitting = true
			return m, tea.Quit
		case MenuActionUp:
			m.cursor = max(m.cursor-1, 0)
		case MenuActionDown:
			m.cursor = min(m.cursor+1, max(len(m.items)-1, 0))
		case MenuActionSelect:
			if len(m.items) > 0 {
				item := m.items[m.cursor]
				m.selected = &item
				return m, tea.Quit
			}
		case MenuActionScoreboard:
			m.openScoreboard = true
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
	}
	return m, nil
}

// View renders the logo, the mode list beside the highlighted mode's card, and the help bar.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	body := menuCardDimStyle.Render("No modes registered.")
	if len(m.items) > 0 {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.modeList(), "   ", m.modeCard(m.items[m.cursor]))
	}

	page := lipgloss.JoinVertical(lipgloss.Center,
		"",
		menuLogoStyle.Render("B L O C K M A S T E R"),
		"",
		body,
		"",
		menuCardDimStyle.Render(m.help.View(m.keyMapper.menu)),
	)
	return lipgloss.PlaceHorizontal(m.config.ScreenW, lipgloss.Center, page)
}

func (m MenuModel) modeList() string {
	lines := make([]string, len(m.items))
	for i, item := range m.items {
		if i == m.cursor {
			lines[i] = menuCursorStyle.Render("▸ " + item.Title)
		} else {
			lines[i] = menuItemStyle.Render(item.Title)
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m MenuModel) modeCard(item MenuItem) string {
	lines := []string{menuCardTitle.Render(item.Title)}
	if item.Description != "" {
		lines = append(lines, item.Description)
	}
	best := "no best yet"
	if item.HighScore > 0 {
		best = fmt.Sprintf("best %d", item.HighScore)
	}
	lines = append(lines, "", menuBestStyle.Render(best))
	if item.Controls != "" {
		lines = append(lines, "", menuCardDimStyle.Render(item.Controls))
	}
	return menuCardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// Selected returns the chosen mode, or nil if none was chosen.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the runtime config, including any resize seen by the menu.
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// RunMenu runs the mode picker until a mode, the scoreboard or quit is chosen.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	p := tea.NewProgram(NewMenuModel(store, cfg), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	res := MenuResult{Config: m.Config()}
	switch {
	case m.WantsScoreboard():
		res.WantsScoreboard = true
	case m.Selected() != nil:
		res.GameID = m.Selected().GameID
	default:
		res.Quit = true
	}
	return res, nil
}
