package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/tui-sweeper/internal/stats"
	"github.com/vovakirdan/tui-sweeper/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForSidebar = 80 // Minimum width to show best times beside the summary
	sidebarWidth       = 34 // Width of the best times panel
	maxBestTimes       = 10
)

// BestTimesSource is a stats backend that keeps a game journal.
type BestTimesSource interface {
	BestTimes(d stats.Difficulty, limit int) ([]storage.GameEntry, error)
}

// ScoreboardKeyMap defines the key bindings for the statistics board.
type ScoreboardKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "prev difficulty"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "next difficulty"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel shows the per-difficulty records and, when the backend
// keeps a journal, the fastest wins of the highlighted difficulty.
type ScoreboardModel struct {
	records   stats.Table
	journal   BestTimesSource // nil without a journal
	best      []storage.GameEntry
	bestErr   error
	table     table.Model
	help      help.Model
	keys      ScoreboardKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
	wide      bool
}

// NewScoreboardModel creates a new statistics board. journal may be nil.
func NewScoreboardModel(records stats.Table, journal BestTimesSource, width, height int) ScoreboardModel {
	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		records: records,
		journal: journal,
		keys:    DefaultScoreboardKeyMap(),
		help:    h,
		width:   width,
		height:  height,
		wide:    width >= minWidthForSidebar,
	}
	m.table = m.createTable()
	m.updateTableRows()
	m.loadBestTimes()
	return m
}

// createTable creates the summary table.
func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Difficulty", Width: 10},
		{Title: "Games", Width: 7},
		{Title: "Wins", Width: 7},
		{Title: "Win %", Width: 7},
		{Title: "Best", Width: 8},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(len(stats.All())+3),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// updateTableRows fills one row per difficulty.
func (m *ScoreboardModel) updateTableRows() {
	rows := make([]table.Row, 0, len(stats.All()))
	for _, d := range stats.All() {
		rec := m.records[d]
		rows = append(rows, table.Row{
			d.Label(),
			humanize.Comma(int64(rec.GamesPlayed)),
			humanize.Comma(int64(rec.Wins)),
			fmt.Sprintf("%.0f%%", rec.WinRate()),
			rec.BestTime(),
		})
	}
	m.table.SetRows(rows)
}

// selected returns the highlighted difficulty.
func (m ScoreboardModel) selected() stats.Difficulty {
	all := stats.All()
	i := m.table.Cursor()
	if i < 0 || i >= len(all) {
		return all[0]
	}
	return all[i]
}

// loadBestTimes queries the journal for the highlighted difficulty.
func (m *ScoreboardModel) loadBestTimes() {
	m.best, m.bestErr = nil, nil
	if m.journal == nil {
		return
	}
	m.best, m.bestErr = m.journal.BestTimes(m.selected(), maxBestTimes)
}

// Init initializes the statistics board.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the statistics board.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			m.loadBestTimes()
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.wide = m.width >= minWidthForSidebar
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the statistics board.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render(centerText("STATISTICS", m.width)))
	b.WriteString("\n\n")

	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	summary := panel.Render(m.table.View())
	best := panel.Width(sidebarWidth).Render(m.renderBestTimes())

	if m.wide {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, summary, "  ", best))
	} else {
		b.WriteString(lipgloss.JoinVertical(lipgloss.Left, summary, best))
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderBestTimes lists the fastest wins or explains why there are none.
func (m ScoreboardModel) renderBestTimes() string {
	d := m.selected()
	var b strings.Builder
	fmt.Fprintf(&b, "Best times - %s\n", d.Label())
	b.WriteString(strings.Repeat("-", sidebarWidth-4))
	b.WriteString("\n")

	emptyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
	switch {
	case m.journal == nil:
		b.WriteString(emptyStyle.Render("No game history with this backend."))
	case m.bestErr != nil:
		b.WriteString(emptyStyle.Render("History unavailable."))
	case len(m.best) == 0:
		b.WriteString(emptyStyle.Render("No wins yet."))
	default:
		for i, e := range m.best {
			fmt.Fprintf(&b, "#%-2d %5ds  %s\n", i+1, e.ElapsedSeconds, humanize.Time(e.PlayedAt))
		}
	}
	return b.String()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the statistics board.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(records stats.Table, journal BestTimesSource, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(
		NewScoreboardModel(records, journal, width, height),
		tea.WithAltScreen(),
	)

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
