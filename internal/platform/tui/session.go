package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tanks/internal/core"
)

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenGame
	screenRecords
)

// SessionModel manages the full session flow: menu, game and records,
// always returning to the menu. It backs both "menu" and SSH sessions.
type SessionModel struct {
	setup     Setup
	config    core.RuntimeConfig
	screen    sessionScreen
	menu      MenuModel
	gameModel *GameModel
	records   ScoreboardModel
	lastErr   error
	quitting  bool
}

// NewSessionModel creates a session starting at the menu.
func NewSessionModel(setup Setup, cfg core.RuntimeConfig) SessionModel {
	return SessionModel{
		setup:  setup,
		config: cfg,
		menu:   NewMenuModel(setup, cfg.ScreenW, cfg.ScreenH),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenRecords:
		return m.updateRecords(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(ConfigReloadMsg); ok {
		return m, nil
	}

	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsRecords():
		m.records = NewScoreboardModel(m.setup, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenRecords
		return m, m.records.Init()

	case m.menu.Selected() != nil:
		setup := m.setup
		setup.Difficulty = m.menu.Difficulty()

		game, err := setup.NewGame(m.menu.Selected().GameID)
		if err != nil {
			m.setup.logger().Error("cannot start game", "err", err)
			m.lastErr = err
			m.menu = NewMenuModel(m.setup, m.config.ScreenW, m.config.ScreenH)
			return m, nil
		}
		m.lastErr = nil

		gameModel := NewGameModel(game, setup, m.config)
		m.gameModel = &gameModel
		m.screen = screenGame
		return m, m.gameModel.Init()
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.gameModel.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.gameModel = &gameModel
	}

	if m.gameModel.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.gameModel.BackToMenu() {
		// Keep the difficulty the player picked.
		m.setup.Difficulty = m.gameModel.setup.Difficulty
		m.gameModel = nil
		m.screen = screenMenu
		m.menu = NewMenuModel(m.setup, m.config.ScreenW, m.config.ScreenH)
		return m, m.menu.Init()
	}

	return m, cmd
}

// updateRecords handles updates when the records screen is open.
func (m SessionModel) updateRecords(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.records.Update(msg)
	if records, ok := newModel.(ScoreboardModel); ok {
		m.records = records
	}

	switch {
	case m.records.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.records.IsGoingBack():
		m.screen = screenMenu
		m.menu = NewMenuModel(m.setup, m.config.ScreenW, m.config.ScreenH)
		return m, m.menu.Init()
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.gameModel.View()
	case screenRecords:
		return m.records.View()
	}

	view := m.menu.View()
	if m.lastErr != nil {
		view += "\n" + centerText("Error: "+m.lastErr.Error(), m.config.ScreenW)
	}
	return view
}

// RunSession runs the menu-driven session in the local terminal.
func RunSession(ctx context.Context, setup Setup, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(
		NewSessionModel(setup, cfg),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	watchConfig(ctx, p, setup)

	_, err := p.Run()
	return err
}
