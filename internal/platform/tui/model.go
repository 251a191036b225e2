package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/evasion/internal/core"
	"github.com/vovakirdan/evasion/internal/episode"
	"github.com/vovakirdan/evasion/internal/evasion"
	"github.com/vovakirdan/evasion/internal/registry"
	"github.com/vovakirdan/evasion/internal/storage"
)

// ManualID labels the side of a stored episode that was driven from the keyboard.
const ManualID = "manual"

// Options configures a viewer.
type Options struct {
	Store  *storage.Store // Finished episodes are saved here when set
	Logger *log.Logger
	Manual bool // Start with the hunter under keyboard control
}

// Model is the Bubble Tea model that steps one episode tick per frame.
type Model struct {
	env    *episode.Env
	hunter registry.Hunter
	prey   registry.Prey
	store  *storage.Store
	logger *log.Logger

	screen     *core.Screen
	config     core.RuntimeConfig
	keys       KeyMap
	help       help.Model
	inputFrame core.InputFrame
	gameState  core.GameState

	manual        bool
	hunterSteered bool // Keyboard drove the hunter at some point this episode
	preySteered   bool // Keyboard steered the prey at some point this episode
	started       time.Time
	quitting      bool
	resultSaved   bool
}

// NewModel creates a viewer for env and resets it for the first episode.
func NewModel(env *episode.Env, hunter registry.Hunter, prey registry.Prey, cfg core.RuntimeConfig, opts Options) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	m := Model{
		env:        env,
		hunter:     hunter,
		prey:       prey,
		store:      opts.Store,
		logger:     logger,
		config:     cfg,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		inputFrame: core.NewInputFrame(),
		manual:     opts.Manual,
	}
	m.screen = core.NewScreen(env.Game().ScreenSize())
	m.reset()
	return m
}

// reset starts a fresh episode with the current seed.
func (m *Model) reset() {
	m.env.Reset(m.config.Seed)
	m.hunter.Reset(m.config.Seed)
	m.prey.Reset(m.config.Seed)
	m.gameState = core.GameState{}
	m.hunterSteered = m.manual
	m.preySteered = false
	m.resultSaved = false
	m.started = time.Now()
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		if err := m.saveScreenshot(); err != nil {
			m.logger.Warn("screenshot failed", "error", err)
		}
		return m, nil
	case "?":
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleTick applies the frame's toggles and advances the episode by one tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	defer m.inputFrame.Clear()

	if m.inputFrame.Has(core.ActionRestart) {
		m.config.Seed = time.Now().UnixNano()
		m.reset()
		return m, tickCmd(m.config.TickRate)
	}
	if m.inputFrame.Has(core.ActionToggleAuto) {
		m.manual = !m.manual
		m.hunterSteered = m.hunterSteered || m.manual
	}
	if m.inputFrame.Has(core.ActionPause) {
		m.gameState.Paused = !m.gameState.Paused
	}
	if m.gameState.Paused || m.gameState.Over() {
		return m, tickCmd(m.config.TickRate)
	}

	s := m.env.Snapshot()
	var action evasion.HunterAction
	if m.manual {
		action = ManualAction(m.inputFrame, s)
	} else {
		action = m.hunter.Act(s)
	}
	preyMove := m.prey.Move(s)
	if dx, dy := m.inputFrame.Steering(); dx != 0 || dy != 0 {
		preyMove = &evasion.Point{X: dx, Y: dy}
		m.preySteered = true
	}

	step := m.env.Step(action, preyMove)
	m.gameState.Tick = m.env.Game().TickNum()
	m.gameState.Captured = step.Terminated
	m.gameState.Truncated = step.Truncated

	if m.gameState.Over() && !m.resultSaved {
		m.finish()
	}
	return m, tickCmd(m.config.TickRate)
}

// ManualAction converts keyboard actions into a hunter action. Removal
// always targets the oldest wall.
func ManualAction(frame core.InputFrame, s evasion.Snapshot) evasion.HunterAction {
	var a evasion.HunterAction
	switch {
	case frame.Has(core.ActionBuildHorizontal):
		a.Build = evasion.BuildHorizontal
	case frame.Has(core.ActionBuildVertical):
		a.Build = evasion.BuildVertical
	}
	if frame.Has(core.ActionRemoveOldest) && len(s.Walls) > 0 {
		a.Remove = []int{0}
	}
	return a
}

// finish logs the episode and saves it once.
func (m *Model) finish() {
	m.resultSaved = true
	g := m.env.Game()
	res := episode.Result{
		Hunter:        m.hunter.ID(),
		Prey:          m.prey.ID(),
		Seed:          m.config.Seed,
		Captured:      m.gameState.Captured,
		Truncated:     m.gameState.Truncated,
		Ticks:         g.TickNum(),
		WallsBuilt:    g.WallsBuilt(),
		WallsRemoved:  g.WallsRemoved(),
		FinalDistance: g.Distance(),
		Duration:      time.Since(m.started),
	}
	if m.hunterSteered {
		res.Hunter = ManualID
	}
	if m.preySteered {
		res.Prey = ManualID
	}

	m.logger.Info("episode finished",
		"hunter", res.Hunter, "prey", res.Prey,
		"captured", res.Captured, "ticks", res.Ticks)

	if m.store == nil {
		return
	}
	if err := m.store.SaveResult(res); err != nil {
		m.logger.Warn("could not save episode", "error", err)
	}
}

// saveScreenshot writes the current board to ~/.evasion/screenshots.
func (m *Model) saveScreenshot() error {
	m.env.Game().Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	dir := filepath.Join(home, ".evasion", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("evasion_%s.txt", timestamp))
	return os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

var statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// View renders the board, a status line and the help bar.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.env.Game().Render(m.screen)

	var b strings.Builder
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(m.status()))
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// status describes who is in control and how the episode stands.
func (m Model) status() string {
	hunter := m.hunter.ID()
	if m.manual {
		hunter = ManualID
	}
	parts := []string{
		fmt.Sprintf("hunter: %s", hunter),
		fmt.Sprintf("prey: %s", m.prey.ID()),
		fmt.Sprintf("seed %d", m.config.Seed),
	}
	switch {
	case m.gameState.Captured:
		parts = append(parts, "captured (r to restart)")
	case m.gameState.Truncated:
		parts = append(parts, "escaped (r to restart)")
	case m.gameState.Paused:
		parts = append(parts, "paused")
	}
	return strings.Join(parts, "  |  ")
}

// Run starts the viewer.
func Run(env *episode.Env, hunter registry.Hunter, prey registry.Prey, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(env, hunter, prey, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
