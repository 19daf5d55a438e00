package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/vovakirdan/tui-sweeper/internal/core"
	"github.com/vovakirdan/tui-sweeper/internal/stats"
)

// MenuItem is one row of the menu: a board to play or the statistics board.
type MenuItem struct {
	Difficulty stats.Difficulty
	Board      stats.Preset
	Title      string
	Stats      bool
}

// MenuModel is the Bubble Tea model for the difficulty picker.
type MenuModel struct {
	items     []MenuItem
	records   stats.Table
	cursor    int
	width     int
	height    int
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	quitting  bool
	selected  *MenuItem
}

// MenuItems lists the three presets, the custom board and the statistics entry.
func MenuItems(custom stats.Preset) []MenuItem {
	items := make([]MenuItem, 0, 5)
	for _, d := range []stats.Difficulty{stats.Easy, stats.Medium, stats.Hard} {
		p, _ := stats.Dimensions(d)
		items = append(items, MenuItem{Difficulty: d, Board: p, Title: d.Label()})
	}
	if custom.Size > 0 {
		items = append(items, MenuItem{Difficulty: stats.Custom, Board: custom, Title: stats.Custom.Label()})
	}
	return append(items, MenuItem{Title: "Statistics", Stats: true})
}

// NewMenuModel creates a new menu model. records feeds the per-row summary.
func NewMenuModel(items []MenuItem, records stats.Table, cfg core.RuntimeConfig) MenuModel {
	return MenuModel{
		items:     items,
		records:   records,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		m.cursor = core.Wrap(m.cursor-1, len(m.items))

	case MenuActionDown:
		m.cursor = core.Wrap(m.cursor+1, len(m.items))

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit
		}

	case MenuActionStats:
		for _, it := range m.items {
			if it.Stats {
				selected := it
				m.selected = &selected
				return m, tea.Quit
			}
		}
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	activeStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))

	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText("  M I N E S W E E P E R  ", m.width)))
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render(centerText("Select a board", m.width)))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		line := cursor + m.describe(item)
		if i == m.cursor {
			b.WriteString(activeStyle.Render(centerText(line, m.width)))
		} else {
			b.WriteString(centerText(line, m.width))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Select  |  Tab: Stats  |  Q: Quit"
	b.WriteString(dimStyle.Render(centerText(controls, m.width)))
	b.WriteString("\n")

	return b.String()
}

// describe formats a menu row as "Easy    9x9, 10 mines   best 42s".
func (m MenuModel) describe(item MenuItem) string {
	if item.Stats {
		return item.Title
	}
	line := fmt.Sprintf("%-7s %2dx%-2d %3d mines", item.Title, item.Board.Size, item.Board.Size, item.Board.Mines)
	rec := m.records[stats.Classify(item.Board.Size, item.Board.Mines)]
	if rec.BestTimeSeconds != nil {
		line += "   best " + rec.BestTime()
	}
	return line
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within the given width by display columns.
func centerText(text string, width int) string {
	w := runewidth.StringWidth(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Item   MenuItem
	Config core.RuntimeConfig
	Quit   bool
}

// RunMenu runs the menu and returns the selection.
func RunMenu(items []MenuItem, records stats.Table, cfg core.RuntimeConfig) (MenuResult, error) {
	p := tea.NewProgram(NewMenuModel(items, records, cfg), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok || m.IsQuitting() || m.Selected() == nil {
		return MenuResult{Config: cfg, Quit: true}, nil
	}
	return MenuResult{Item: *m.Selected(), Config: m.Config()}, nil
}
