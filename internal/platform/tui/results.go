package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/evasion/internal/storage"
)

// Results browser layout constants
const (
	minWidthForSidebar = 90  // Minimum width to show the matchup sidebar
	sidebarWidth       = 28  // Width of matchup sidebar
	maxEpisodes        = 200 // Max episodes to load per matchup
)

// ResultsKeyMap defines the key bindings for the results browser.
type ResultsKeyMap struct {
	Up          key.Binding
	Down        key.Binding
	NextMatchup key.Binding
	PrevMatchup key.Binding
	Quit        key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ResultsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextMatchup, k.PrevMatchup, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ResultsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.NextMatchup, k.PrevMatchup, k.Quit},
	}
}

// DefaultResultsKeyMap returns default key bindings.
func DefaultResultsKeyMap() ResultsKeyMap {
	return ResultsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		NextMatchup: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next matchup"),
		),
		PrevMatchup: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev matchup"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ResultsModel browses stored episodes grouped by hunter/prey matchup.
type ResultsModel struct {
	matchups    []storage.MatchupStats
	cursor      int
	store       *storage.Store
	episodes    []storage.EpisodeRecord
	table       table.Model
	help        help.Model
	keys        ResultsKeyMap
	width       int
	height      int
	quitting    bool
	showSidebar bool
	err         error
}

// NewResultsModel creates a results browser over store.
func NewResultsModel(store *storage.Store, width, height int) ResultsModel {
	m := ResultsModel{
		store:       store,
		keys:        DefaultResultsKeyMap(),
		help:        help.New(),
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}

	if store != nil {
		m.matchups, m.err = store.AllMatchupStats()
	}
	m.table = m.createTable()
	m.loadEpisodes()
	return m
}

// createTable creates a new table sized to the current window.
func (m *ResultsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Outcome", Width: 9},
		{Title: "Ticks", Width: 7},
		{Title: "Walls", Width: 7},
		{Title: "Dist", Width: 7},
		{Title: "Seed", Width: 12},
		{Title: "Date", Width: 14},
	}

	height := m.height - 9
	if height < 3 {
		height = 3
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
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

// loadEpisodes loads the episodes of the selected matchup.
func (m *ResultsModel) loadEpisodes() {
	m.episodes = nil
	if m.store != nil && len(m.matchups) > 0 {
		cur := m.matchups[m.cursor]
		episodes, err := m.store.EpisodesFor(cur.Hunter, cur.Prey, maxEpisodes)
		if err != nil {
			m.err = err
		} else {
			m.episodes = episodes
		}
	}
	m.table.SetRows(episodeRows(m.episodes))
	m.table.GotoTop()
}

// episodeRows formats stored episodes as table rows.
func episodeRows(episodes []storage.EpisodeRecord) []table.Row {
	rows := make([]table.Row, len(episodes))
	for i, e := range episodes {
		rows[i] = table.Row{
			outcomeLabel(e),
			fmt.Sprintf("%d", e.Ticks),
			fmt.Sprintf("%d/%d", e.WallsBuilt, e.WallsRemoved),
			fmt.Sprintf("%.1f", e.FinalDistance),
			fmt.Sprintf("%d", e.Seed),
			e.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	return rows
}

func outcomeLabel(e storage.EpisodeRecord) string {
	switch {
	case e.Captured:
		return "captured"
	case e.Truncated:
		return "escaped"
	default:
		return "stopped"
	}
}

// Init initializes the results model.
func (m ResultsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the results browser.
func (m ResultsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextMatchup):
			if len(m.matchups) > 0 {
				m.cursor = (m.cursor + 1) % len(m.matchups)
				m.loadEpisodes()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevMatchup):
			if len(m.matchups) > 0 {
				m.cursor = (m.cursor - 1 + len(m.matchups)) % len(m.matchups)
				m.loadEpisodes()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.table.SetRows(episodeRows(m.episodes))
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the results browser.
func (m ResultsModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))

	title := "RESULTS"
	if len(m.matchups) > 0 {
		cur := m.matchups[m.cursor]
		title = fmt.Sprintf("RESULTS - %s vs %s - %d episodes, %.0f%% captured, avg %.0f ticks",
			cur.Hunter, cur.Prey, cur.Episodes, cur.CaptureRate()*100, cur.AvgTicks)
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	content := boxStyle.Render(m.renderTableContent())
	if m.showSidebar && len(m.matchups) > 0 {
		content = lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), "  ", content)
	}
	b.WriteString(content)

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderSidebar lists every matchup with its capture rate.
func (m ResultsModel) renderSidebar() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sb strings.Builder
	sb.WriteString("Matchups\n")
	sb.WriteString(strings.Repeat("-", sidebarWidth-4))
	sb.WriteString("\n")

	for i, s := range m.matchups {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}

		name := fmt.Sprintf("%s/%s", s.Hunter, s.Prey)
		maxLen := sidebarWidth - 11
		if len(name) > maxLen {
			name = name[:maxLen-1] + "."
		}
		sb.WriteString(style.Render(fmt.Sprintf("%s%-*s %3.0f%%", cursor, maxLen, name, s.CaptureRate()*100)))
		sb.WriteString("\n")
	}

	return sidebarStyle.Render(sb.String())
}

// renderTableContent renders the table or an empty message.
func (m ResultsModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	if m.err != nil {
		return emptyStyle.Render(fmt.Sprintf("Could not load results:\n%v", m.err))
	}
	if len(m.episodes) == 0 {
		return emptyStyle.Render("No episodes recorded yet.\nRun `evasion run` to play some!")
	}
	return m.table.View()
}

// RunResults runs the results browser.
func RunResults(store *storage.Store, width, height int) error {
	p := tea.NewProgram(
		NewResultsModel(store, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}

// centerText centers text within the given width.
func centerText(text string, width int) string {
	textWidth := lipgloss.Width(text)
	if textWidth >= width {
		return text
	}
	padding := (width - textWidth) / 2
	return strings.Repeat(" ", padding) + text
}
