package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockmaster/internal/registry"
	"github.com/vovakirdan/blockmaster/internal/storage"
)

const scoreboardRows = 50 // Runs loaded per view

// scoreView selects which runs the table lists.
type scoreView int

const (
	viewTopRuns scoreView = iota // Best runs of the selected mode
	viewMyRuns                   // The viewer's latest runs across modes
)

func (v scoreView) String() string {
	if v == viewMyRuns {
		return "My runs"
	}
	return "Top runs"
}

// scoreboardKeys are the scoreboard bindings; they double as the help bar.
type scoreboardKeys struct {
	Scroll     key.Binding
	SwitchMode key.Binding
	ToggleView key.Binding
	Back       key.Binding
	Quit       key.Binding
}

func (k scoreboardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Scroll, k.SwitchMode, k.ToggleView, k.Back, k.Quit}
}

func (k scoreboardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func newScoreboardKeys() scoreboardKeys {
	return scoreboardKeys{
		Scroll:     key.NewBinding(key.WithKeys("up", "down", "k", "j"), key.WithHelp("↑/↓", "scroll")),
		SwitchMode: key.NewBinding(key.WithKeys("tab", "shift+tab", "left", "right", "h", "l"), key.WithHelp("tab/←/→", "mode")),
		ToggleView: key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "top/mine")),
		Back:       key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("b", "back")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

var (
	sbTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	sbModeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	sbActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1)
	sbCardStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 2)
	sbLabelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	sbValueStyle  = lipgloss.NewStyle().Bold(true)
	sbEmptyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(1, 4)
	sbHelpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// ScoreboardModel shows the stored best, run statistics and a run table per mode.
type ScoreboardModel struct {
	store  *storage.Store
	player string // Runs saved under this name are marked; "" is local play
	modes  []registry.GameInfo
	mode   int
	view   scoreView

	runs  []storage.ScoreEntry
	stats *storage.GameStats

	table  table.Model
	help   help.Model
	keys   scoreboardKeys
	width  int
	height int

	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard for player (empty for local play).
func NewScoreboardModel(store *storage.Store, player string, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		store:  store,
		player: player,
		modes:  registry.List(),
		help:   help.New(),
		keys:   newScoreboardKeys(),
		width:  width,
		height: height,
	}
	m.reload()
	return m
}

// modeID returns the selected mode, or "" when nothing is registered.
func (m ScoreboardModel) modeID() string {
	if len(m.modes) == 0 {
		return ""
	}
	return m.modes[m.mode].ID
}

// reload fetches stats and runs for the current mode and view and rebuilds the table.
func (m *ScoreboardModel) reload() {
	m.runs, m.stats = nil, nil
	if m.store != nil && m.modeID() != "" {
		var err error
		if m.view == viewMyRuns {
			m.runs, err = m.store.PlayerScores(m.player, scoreboardRows)
		} else {
			m.runs, err = m.store.TopScores(m.modeID(), scoreboardRows)
		}
		if err != nil {
			log.Warn("could not load runs", "mode", m.modeID(), "view", m.view, "error", err)
		}
		if m.stats, err = m.store.GameStats(m.modeID()); err != nil {
			log.Warn("could not load stats", "mode", m.modeID(), "error", err)
		}
	}
	m.table = m.buildTable()
}

func (m ScoreboardModel) buildTable() table.Model {
	var cols []table.Column
	rows := make([]table.Row, 0, len(m.runs))

	if m.view == viewMyRuns {
		cols = []table.Column{{Title: "Mode", Width: 22}, {Title: "Score", Width: 8}, {Title: "Played", Width: 14}}
		for _, r := range m.runs {
			rows = append(rows, table.Row{m.modeTitle(r.GameID), fmt.Sprint(r.Score), r.CreatedAt.Format("Jan 02 15:04")})
		}
	} else {
		cols = []table.Column{{Title: "#", Width: 4}, {Title: "Score", Width: 8}, {Title: "Player", Width: 16}, {Title: "Played", Width: 14}}
		for i, r := range m.runs {
			name := playerLabel(r.Player)
			if r.Player == m.player {
				name = "* " + name
			}
			rows = append(rows, table.Row{fmt.Sprint(i + 1), fmt.Sprint(r.Score), name, r.CreatedAt.Format("Jan 02 15:04")})
		}
	}

	t := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(m.height-14, 3)), // Title, mode strip, stats card and help
	)
	s := table.DefaultStyles()
	s.Header = s.Header.BorderStyle(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240")).BorderBottom(true).Bold(true)
	s.Selected = s.Selected.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Bold(false)
	t.SetStyles(s)
	return t
}

func (m ScoreboardModel) modeTitle(id string) string {
	for _, g := range m.modes {
		if g.ID == id {
			return g.Title
		}
	}
	return id
}

func playerLabel(p string) string {
	if p == "" {
		return "local"
	}
	return p
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.SwitchMode):
			m.switchMode(msg.String())
			return m, nil
		case key.Matches(msg, m.keys.ToggleView):
			m.view = 1 - m.view
			m.reload()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = m.buildTable()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *ScoreboardModel) switchMode(k string) {
	n := len(m.modes)
	if n == 0 {
		return
	}
	step := 1
	if k == "shift+tab" || k == "left" || k == "h" {
		step = -1
	}
	m.mode = (m.mode + step + n) % n
	m.reload()
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	sections := []string{
		sbTitleStyle.Render("SCOREBOARD · " + m.view.String()),
		m.modeStrip(),
		m.statsCard(),
		m.runsView(),
		sbHelpStyle.Render(m.help.View(m.keys)),
	}
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, sections...))
}

func (m ScoreboardModel) modeStrip() string {
	tabs := make([]string, len(m.modes))
	for i, g := range m.modes {
		if i == m.mode {
			tabs[i] = sbActiveStyle.Render(g.Title)
		} else {
			tabs[i] = sbModeStyle.Render(g.Title)
		}
	}
	return "\n" + lipgloss.JoinHorizontal(lipgloss.Top, tabs...) + "\n"
}

// statsCard puts the stored best next to what finished runs add up to.
// The best can outlive cleared runs, so it is shown on its own.
func (m ScoreboardModel) statsCard() string {
	if m.stats == nil {
		return sbCardStyle.Render(sbLabelStyle.Render("no scores database"))
	}

	cell := func(label, value string) string {
		return lipgloss.JoinVertical(lipgloss.Center, sbLabelStyle.Render(label), sbValueStyle.Render(value))
	}
	last := "never"
	if !m.stats.LastPlayed.IsZero() {
		last = m.stats.LastPlayed.Format("Jan 02 15:04")
	}
	avg, bestRun := "-", "-"
	if m.stats.GamesCount > 0 {
		avg = fmt.Sprintf("%.0f", m.stats.AvgScore)
		bestRun = fmt.Sprint(m.stats.BestRun)
	}

	return sbCardStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top,
		cell("Best", fmt.Sprint(m.stats.HighScore)), "    ",
		cell("Best run", bestRun), "    ",
		cell("Runs", fmt.Sprint(m.stats.GamesCount)), "    ",
		cell("Average", avg), "    ",
		cell("Last played", last),
	))
}

func (m ScoreboardModel) runsView() string {
	if len(m.runs) > 0 {
		return "\n" + m.table.View() + "\n"
	}
	msg := "No finished runs yet.\nClear some lines to get on the board!"
	if m.view == viewMyRuns {
		msg = fmt.Sprintf("No runs saved as %s yet.", playerLabel(m.player))
	}
	return sbEmptyStyle.Render(msg)
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen for local play.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, "", width, height), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
