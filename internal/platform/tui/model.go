package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/blockpath/internal/core"
	"github.com/vovakirdan/blockpath/internal/effect"
	"github.com/vovakirdan/blockpath/internal/layout"
)

// View layout constants
const (
	minWidthForTable = 90 // Minimum width to show the table beside the scene
	tableWidth       = 46
	chromeRows       = 6 // picker, status, help and borders
)

// startedMsg reports the outcome of effect startup.
type startedMsg struct {
	err error
}

// Model is the Bubble Tea model for the scene view.
type Model struct {
	ctx       context.Context
	effect    *effect.Effect
	config    core.RuntimeConfig
	screen    *core.Screen
	keys      KeyMap
	help      help.Model
	table     table.Model
	maxSteps  int
	width     int
	height    int
	showTable bool // user choice, see tableVisible
	tableFits bool
	started   bool
	startErr  error
	flash     string
	flashID   int
	quitting  bool
}

// NewModel creates a view over e. The effect is started by Init.
func NewModel(ctx context.Context, e *effect.Effect, cfg core.RuntimeConfig) Model {
	maxSteps := layout.DefaultHomeStep
	for _, lvl := range e.Selector().Levels() {
		maxSteps = max(maxSteps, lvl.Steps)
	}

	m := Model{
		ctx:       ctx,
		effect:    e,
		config:    cfg,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		maxSteps:  maxSteps,
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		showTable: true,
		tableFits: cfg.ScreenW >= minWidthForTable,
	}
	m.screen = core.NewScreen(m.sceneWidth(), m.sceneHeight())
	m.table = m.createTable()
	return m
}

// Init starts the effect in the background.
func (m Model) Init() tea.Cmd {
	ctx, e := m.ctx, m.effect
	return func() tea.Msg {
		return startedMsg{err: e.Start(ctx)}
	}
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case startedMsg:
		return m.handleStarted(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.tableFits = m.width >= minWidthForTable
		m.screen.Resize(m.sceneWidth(), m.sceneHeight())
		m.table = m.createTable()
		m.refreshTable()
		return m, nil

	case flashExpiredMsg:
		if msg.id == m.flashID {
			m.flash = ""
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleStarted(msg startedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.startErr = msg.err
		return m, nil
	}
	m.started = true

	if m.config.Level >= 0 {
		lvl := m.effect.Selector().Normalize(m.config.Level)
		m.effect.Picker().SetSelectedIndex(int(lvl))
	}
	m.refreshTable()
	return m.afterLayout()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.Action(msg)
	if action == core.ActionQuit {
		m.quitting = true
		m.effect.Stop()
		return m, tea.Quit
	}
	if !m.started {
		return m, nil
	}

	picker := m.effect.Picker()
	switch action {
	case core.ActionPrevLevel:
		picker.Prev()
	case core.ActionNextLevel:
		picker.Next()
	case core.ActionLevel1, core.ActionLevel2, core.ActionLevel3:
		idx, _ := action.LevelIndex()
		if idx >= len(picker.Items()) {
			return m, nil
		}
		picker.SetSelectedIndex(idx)
	case core.ActionTap:
		//nolint:errcheck // started is checked above
		m.effect.TapShadow()
		state := "off"
		if m.effect.Shadow().Enabled() {
			state = "on"
		}
		return m.setFlash("shadow " + state)
	case core.ActionReroll:
		//nolint:errcheck // reported through afterLayout
		m.effect.Reroll()
	case core.ActionTable:
		m.showTable = !m.showTable
		m.screen.Resize(m.sceneWidth(), m.sceneHeight())
		return m, nil
	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
		m.screen.Resize(m.sceneWidth(), m.sceneHeight())
		return m, nil
	default:
		return m, nil
	}

	m.refreshTable()
	return m.afterLayout()
}

// afterLayout reports the last layout result in the status line.
func (m Model) afterLayout() (tea.Model, tea.Cmd) {
	if err := m.effect.Err(); err != nil {
		return m.setFlash("layout failed: " + err.Error())
	}
	snap := m.effect.Snapshot()
	return m.setFlash(fmt.Sprintf("%d blocks, %d doubles", snap.BlockCount(), snap.Doubles()))
}

func (m Model) setFlash(text string) (tea.Model, tea.Cmd) {
	m.flashID++
	m.flash = text
	return m, flashCmd(m.flashID)
}

// tableVisible reports whether the placement table is shown: the user wants
// it and the window is wide enough.
func (m Model) tableVisible() bool {
	return m.showTable && m.tableFits
}

func (m Model) sceneWidth() int {
	w := m.width - 2
	if m.tableVisible() {
		w -= tableWidth + 4
	}
	return max(w, 0)
}

func (m Model) sceneHeight() int {
	rows := chromeRows
	if m.help.ShowAll {
		rows += 2
	}
	return max(m.height-rows, 0)
}

// createTable creates the placement table.
func (m Model) createTable() table.Model {
	columns := []table.Column{
		{Title: "Block", Width: 11},
		{Title: "Step", Width: 4},
		{Title: "Shift", Width: 6},
		{Title: "X", Width: 8},
		{Title: "Y", Width: 7},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(false),
		table.WithHeight(max(m.sceneHeight()-2, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = lipgloss.NewStyle()
	t.SetStyles(s)

	return t
}

// refreshTable loads the current placements into the table.
func (m *Model) refreshTable() {
	snap := m.effect.Snapshot()
	rows := make([]table.Row, 0, len(snap.Blocks)+1)

	appendRow := func(p layout.Placement) {
		rows = append(rows, table.Row{
			p.Name,
			fmt.Sprintf("%d", p.Step),
			p.Shift.String(),
			fmt.Sprintf("%+.4f", p.X),
			fmt.Sprintf("%.4f", p.Y),
		})
	}
	for _, p := range snap.Blocks {
		appendRow(p)
	}
	if snap.Home != nil {
		appendRow(*snap.Home)
	}

	m.table.SetRows(rows)
	m.table.GotoTop()
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.startErr != nil {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Padding(1, 2)
		return errStyle.Render("Startup failed: "+m.startErr.Error()) + "\n" +
			lipgloss.NewStyle().Padding(0, 2).Render("press q to quit")
	}
	if !m.started {
		return lipgloss.NewStyle().Padding(1, 2).Render("Resolving scene...")
	}

	var b strings.Builder
	b.WriteString(m.renderPicker())
	b.WriteString("\n")

	scene := m.renderScene()
	if m.tableVisible() {
		tableStyle := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
		scene = lipgloss.JoinHorizontal(lipgloss.Top, scene, "  ", tableStyle.Render(m.table.View()))
	}
	b.WriteString(scene)
	b.WriteString("\n")

	b.WriteString(m.renderStatus())
	b.WriteString("\n")

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderPicker renders the level picker as tabs.
func (m Model) renderPicker() string {
	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Padding(0, 1)
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	levels := m.effect.Selector().Levels()
	picker := m.effect.Picker()
	tabs := make([]string, 0, len(picker.Items()))
	for i, item := range picker.Items() {
		label := item.Texture.Name
		if i < len(levels) && levels[i].Title != "" {
			label = levels[i].Title
		}
		if i == picker.SelectedIndex() {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// renderScene draws the path into the screen buffer inside a border.
func (m Model) renderScene() string {
	m.screen.Clear()
	DrawScene(m.screen, m.screen.Bounds(), SceneFrame{
		Snapshot: m.effect.Snapshot(),
		Options:  m.effect.Selector().LayoutOptions(),
		MaxSteps: m.maxSteps,
		Shadow:   m.effect.Shadow().Enabled(),
	})

	borderColor := lipgloss.Color("2")
	if m.effect.Shadow().Enabled() {
		borderColor = lipgloss.Color("5")
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Render(RenderScreen(m.screen))
}

// renderStatus renders the shadow button and the flash message.
func (m Model) renderStatus() string {
	button := lipgloss.NewStyle().Padding(0, 1)
	label := "◯ segmentation"
	if m.effect.Shadow().Enabled() {
		button = button.Background(lipgloss.Color("5")).Foreground(lipgloss.Color("15"))
		label = "● shadow"
	} else {
		button = button.Background(lipgloss.Color("22")).Foreground(lipgloss.Color("15"))
	}

	flashStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true).PaddingLeft(2)
	if m.effect.Err() != nil {
		flashStyle = flashStyle.Foreground(lipgloss.Color("9"))
	}
	return button.Render(label) + flashStyle.Render(m.flash)
}

// Run starts the Bubble Tea program for e.
func Run(ctx context.Context, e *effect.Effect, cfg core.RuntimeConfig) error {
	model := NewModel(ctx, e, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	_, err := p.Run()
	return err
}
