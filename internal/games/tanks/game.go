// Package tanks adapts the tank battle simulation to the platform's
// registry.Game interface: it turns input frames into commands, drives the
// engine at the frame rate and draws the match into a screen buffer.
package tanks

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tanks/internal/config"
	"github.com/vovakirdan/tui-tanks/internal/core"
	"github.com/vovakirdan/tui-tanks/internal/games/tanks/sim"
	"github.com/vovakirdan/tui-tanks/internal/registry"
)

// GameID is the registry and storage identifier.
const GameID = "tanks"

// Pause menu entries.
const (
	pauseResume = iota
	pauseExit
	pauseItems
)

// Game implements the tank battle.
type Game struct {
	cfg     config.TanksConfig
	records core.RecordStore
	log     *log.Logger

	engine *sim.Engine
	diff   *config.DifficultyManager
	frame  time.Duration
	tick   uint64

	pauseChoice int
	exit        bool
	best        time.Duration

	layer      *core.Screen
	layerScale scale
	mapDirty   bool
}

func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}

// New creates a game with the default configuration.
func New() *Game {
	return &Game{
		cfg: config.DefaultTanksConfig(),
		log: log.New(io.Discard),
	}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Tank Battle"
}

// Configure loads a config file and applies a difficulty preset. Either
// may be empty.
func (g *Game) Configure(configPath, difficulty string) error {
	cfg, err := config.LoadTanks(configPath)
	if err != nil {
		return err
	}
	if difficulty != "" {
		preset, err := config.ParsePreset(difficulty)
		if err != nil {
			return err
		}
		config.ApplyTanksPreset(&cfg, preset)
	}
	g.cfg = cfg
	return nil
}

// SetConfig replaces the configuration used by the next Reset.
func (g *Game) SetConfig(cfg config.TanksConfig) {
	g.cfg = cfg
}

// Config returns the configuration used by the next Reset.
func (g *Game) Config() config.TanksConfig {
	return g.cfg
}

// AttachRecords sets where the best time is kept.
func (g *Game) AttachRecords(rs core.RecordStore) {
	g.records = rs
}

// SetLogger sets the logger handed to every new match.
func (g *Game) SetLogger(l *log.Logger) {
	if l != nil {
		g.log = l
	}
}

// Reset starts a new match.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	opts := []sim.Option{
		sim.WithSeed(cfg.Seed),
		sim.WithLogger(g.log.With("game", GameID)),
	}
	if g.records != nil {
		opts = append(opts, sim.WithRecords(g.records))
	}

	g.engine = sim.NewEngine(RulesFromConfig(g.cfg), opts...)
	g.diff = config.NewDifficultyManager(g.cfg.Difficulty)
	g.frame = cfg.TickInterval()
	g.tick = 0
	g.pauseChoice = pauseResume
	g.exit = false
	g.best = core.NoRecord
	if g.records != nil {
		g.best = g.records.ReadBestTime()
	}
	g.mapDirty = true
}

// Engine returns the running match.
func (g *Game) Engine() *sim.Engine {
	return g.engine
}

// Step applies the frame's commands in order and advances the match by one
// frame.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.engine == nil {
		g.Reset(core.DefaultConfig())
	}

	for _, a := range in.Actions {
		g.handle(a)
	}

	ctx := g.engine.Context()
	if ctx.Active() {
		g.scaleDifficulty(ctx.Elapsed)
		if g.engine.Tick(g.frame) {
			g.mapDirty = true
		}
		g.tick++
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) handle(a core.Action) {
	ctx := g.engine.Context()

	switch {
	case ctx.Ended:
		if a == core.ActionConfirm || a == core.ActionBack {
			g.exit = true
		}
	case ctx.Paused:
		g.handlePauseMenu(a)
	default:
		if a == core.ActionBack {
			a = core.ActionPause
		}
		if a == core.ActionPause {
			g.pauseChoice = pauseResume
		}
		g.engine.Command(a)
	}
}

func (g *Game) handlePauseMenu(a core.Action) {
	switch a {
	case core.ActionUp:
		g.pauseChoice = (g.pauseChoice + pauseItems - 1) % pauseItems
	case core.ActionDown:
		g.pauseChoice = (g.pauseChoice + 1) % pauseItems
	case core.ActionPause, core.ActionBack:
		g.engine.SetPaused(false)
	case core.ActionConfirm:
		if g.pauseChoice == pauseExit {
			g.exit = true
			return
		}
		g.engine.SetPaused(false)
	}
}

// scaleDifficulty retunes the enemy for the current match time. With
// progression off the enemy keeps its configured timings.
func (g *Game) scaleDifficulty(elapsed time.Duration) {
	if !g.diff.IsEnabled() {
		return
	}
	score := g.engine.Score()
	g.engine.SetEnemyFireInterval(g.diff.FireInterval(g.cfg.Enemy.FireInterval, score, elapsed))
	g.engine.EnemyController().TurnChance = g.diff.TurnChance(g.cfg.Enemy.TurnChance, score, elapsed)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.engine == nil {
		return core.GameState{}
	}
	ctx := g.engine.Context()
	return core.GameState{
		Score:    g.engine.Score(),
		GameOver: ctx.Ended,
		Paused:   ctx.Paused,
		Exit:     g.exit,
		Result:   g.engine.Result(),
	}
}
