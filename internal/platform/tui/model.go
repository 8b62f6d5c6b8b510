package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tanks/internal/config"
	"github.com/vovakirdan/tui-tanks/internal/core"
	"github.com/vovakirdan/tui-tanks/internal/registry"
	"github.com/vovakirdan/tui-tanks/internal/storage"
)

// ConfigReloadMsg reports that the watched config file changed.
type ConfigReloadMsg struct {
	Err error
}

// GameModel is the Bubble Tea model running one game. It is used on its
// own by "play" and embedded in SessionModel by the menu and SSH server.
type GameModel struct {
	game       registry.Game
	setup      Setup
	screen     *core.Screen
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	standalone bool // quit the program instead of returning to a menu
	quitting   bool
	backToMenu bool
	matchSaved bool // whether the finished match has been stored
}

// NewGameModel creates a model for the given game.
func NewGameModel(game registry.Game, setup Setup, cfg core.RuntimeConfig) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return GameModel{
		game:       game,
		setup:      setup,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
	}
}

// Init starts the first match and the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickInterval())
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// The game scales its field to the screen, so the match keeps going.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()

	case ConfigReloadMsg:
		m.reloadConfig(msg.Err)
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}
	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.matchSaved = false
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickInterval())
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	if m.gameState.GameOver && !m.matchSaved {
		m.saveMatch()
		m.matchSaved = true
	}

	if m.gameState.Exit {
		m.backToMenu = true
		if m.standalone {
			return m, tea.Quit
		}
		return m, nil
	}

	return m, tickCmd(m.config.TickInterval())
}

// saveMatch appends the finished match to the history. Failures are logged
// and play continues.
func (m *GameModel) saveMatch() {
	res := m.gameState.Result
	if m.setup.Store == nil || res == nil {
		return
	}

	id, err := m.setup.Store.SaveMatch(storage.MatchEntry{
		GameID:         m.game.ID(),
		SessionID:      m.setup.SessionID,
		Outcome:        res.Outcome,
		Elapsed:        res.Elapsed,
		WallsDestroyed: m.gameState.Score,
		NewBest:        res.IsNewBest,
	})
	if err != nil {
		m.setup.logger().Error("failed to save match", "game", m.game.ID(), "err", err)
		return
	}
	m.setup.logger().Debug("match saved", "match_id", id)
}

// reloadConfig re-reads the config file for the next match.
func (m *GameModel) reloadConfig(watchErr error) {
	l := m.setup.logger()
	if watchErr != nil {
		l.Warn("config reload failed", "path", m.setup.ConfigPath, "err", watchErr)
		return
	}
	c, ok := m.game.(registry.Configurable)
	if !ok {
		return
	}
	if err := c.Configure(m.setup.ConfigPath, m.setup.Difficulty); err != nil {
		l.Warn("config reload failed", "path", m.setup.ConfigPath, "err", err)
		return
	}
	l.Info("config reloaded, applies from the next match", "path", m.setup.ConfigPath)
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	m.screen.Clear()
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// State returns the game state after the last tick.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays a single game until the player quits or leaves the match.
// When a config path is set, edits to the file are picked up by the next
// match.
func Run(ctx context.Context, game registry.Game, setup Setup, cfg core.RuntimeConfig) error {
	model := NewGameModel(game, setup, cfg)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	watchConfig(ctx, p, setup)

	_, err := p.Run()
	return err
}

// watchConfig forwards config file changes to the program until ctx is done.
func watchConfig(ctx context.Context, p *tea.Program, setup Setup) {
	if setup.ConfigPath == "" {
		return
	}
	w, err := config.NewWatcher(setup.ConfigPath)
	if err != nil {
		setup.logger().Warn("config hot reload disabled", "err", err)
		return
	}
	go func() {
		//nolint:errcheck // Run only returns nil
		w.Run(ctx, func(_ config.TanksConfig, err error) {
			p.Send(ConfigReloadMsg{Err: err})
		})
	}()
}
