package tanks

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tanks/internal/config"
	"github.com/vovakirdan/tui-tanks/internal/core"
	"github.com/vovakirdan/tui-tanks/internal/games/tanks/sim"
	"github.com/vovakirdan/tui-tanks/internal/registry"
)

type memRecords struct {
	best   time.Duration
	writes int
}

func (r *memRecords) ReadBestTime() time.Duration {
	return r.best
}

func (r *memRecords) WriteBestTime(d time.Duration) error {
	r.best = d
	r.writes++
	return nil
}

func newGame(t *testing.T, rs core.RecordStore) *Game {
	t.Helper()
	g := New()
	if rs != nil {
		g.AttachRecords(rs)
	}
	cfg := core.DefaultConfig()
	cfg.Seed = 7
	g.Reset(cfg)
	return g
}

func frame(actions ...core.Action) core.InputFrame {
	return core.InputFrame{Actions: actions}
}

// hitEnemy drops a stationary player shot onto the enemy tank.
func hitEnemy(g *Game) {
	enemy := g.Engine().Enemy()
	g.Engine().Spawn(sim.NewProjectile(enemy.X+15, enemy.Y+15, sim.AngleUp, 0, sim.KindPlayer))
}

func TestRegistered(t *testing.T) {
	require.True(t, registry.Exists(GameID))

	g, err := registry.Create(GameID)
	require.NoError(t, err)
	assert.Equal(t, "Tank Battle", g.Title())

	_, ok := g.(registry.RecordAware)
	assert.True(t, ok)
	_, ok = g.(registry.Configurable)
	assert.True(t, ok)
	_, ok = g.(registry.LoggerAware)
	assert.True(t, ok)
}

func TestRulesFromDefaultConfig(t *testing.T) {
	assert.Equal(t, sim.DefaultRules(), RulesFromConfig(config.DefaultTanksConfig()))
}

func TestConfigure(t *testing.T) {
	g := New()
	require.NoError(t, g.Configure("", "hard"))
	assert.Equal(t, 3*time.Second, g.Config().Enemy.FireInterval)

	assert.Error(t, g.Configure("", "nightmare"))
	assert.Error(t, g.Configure("does-not-exist.yaml", ""))
	assert.Equal(t, 3*time.Second, g.Config().Enemy.FireInterval, "failed configure keeps previous config")
}

func TestStepAdvancesClock(t *testing.T) {
	g := newGame(t, nil)

	for i := 0; i < 10; i++ {
		g.Step(frame())
	}
	assert.Equal(t, 300*time.Millisecond, g.Engine().Context().Elapsed)
}

func TestStepMovesPlayer(t *testing.T) {
	g := newGame(t, nil)
	g.Engine().Map().Walls = nil

	g.Step(frame(core.ActionDown, core.ActionDown))
	assert.Equal(t, 10, g.Engine().Player().Y)
	assert.Equal(t, sim.AngleDown, g.Engine().Player().Angle)
}

func TestPauseMenuResume(t *testing.T) {
	g := newGame(t, nil)

	res := g.Step(frame(core.ActionPause))
	require.True(t, res.State.Paused)
	elapsed := g.Engine().Context().Elapsed

	g.Step(frame(core.ActionFire, core.ActionLeft))
	assert.Equal(t, elapsed, g.Engine().Context().Elapsed, "clock frozen while paused")
	assert.Empty(t, g.Engine().Projectiles())

	res = g.Step(frame(core.ActionConfirm))
	assert.False(t, res.State.Paused)
	assert.False(t, res.State.Exit)
}

func TestPauseMenuExit(t *testing.T) {
	g := newGame(t, nil)

	g.Step(frame(core.ActionBack))
	require.True(t, g.State().Paused)

	g.Step(frame(core.ActionDown))
	res := g.Step(frame(core.ActionConfirm))
	assert.True(t, res.State.Exit)
	assert.True(t, res.State.Paused)
}

func TestPauseMenuWraps(t *testing.T) {
	g := newGame(t, nil)
	g.Step(frame(core.ActionPause, core.ActionUp))
	assert.Equal(t, pauseExit, g.pauseChoice)

	g.Step(frame(core.ActionDown))
	assert.Equal(t, pauseResume, g.pauseChoice)
}

func TestVictoryRecordsBestTime(t *testing.T) {
	rs := &memRecords{best: core.NoRecord}
	g := newGame(t, rs)

	g.Step(frame())
	hitEnemy(g)
	res := g.Step(frame())

	require.True(t, res.State.GameOver)
	require.NotNil(t, res.State.Result)
	assert.Equal(t, core.OutcomeVictory, res.State.Result.Outcome)
	assert.True(t, res.State.Result.IsNewBest)
	assert.Equal(t, time.Duration(0), rs.best, "stored in whole seconds")
	assert.Equal(t, 1, rs.writes)

	g.Step(frame(core.ActionFire))
	assert.Equal(t, 60*time.Millisecond, g.Engine().Context().Elapsed)
	assert.False(t, g.State().Exit)

	res = g.Step(frame(core.ActionConfirm))
	assert.True(t, res.State.Exit)
}

func TestResetStartsFreshMatch(t *testing.T) {
	g := newGame(t, nil)
	hitEnemy(g)
	g.Step(frame())
	g.Step(frame(core.ActionConfirm))
	require.True(t, g.State().Exit)

	g.Reset(core.DefaultConfig())
	st := g.State()
	assert.False(t, st.GameOver)
	assert.False(t, st.Exit)
	assert.Nil(t, st.Result)
	assert.Zero(t, g.Engine().Context().Elapsed)
}

func TestDifficultyTunesEnemy(t *testing.T) {
	g := New()
	cfg := config.DefaultTanksConfig()
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = 1
	g.SetConfig(cfg)
	g.Reset(core.DefaultConfig())

	g.Step(frame())
	assert.Equal(t, cfg.Enemy.TurnChance+cfg.Difficulty.Scaling.TurnChanceBonus, g.Engine().EnemyController().TurnChance)
	assert.Equal(t, 2*time.Second, g.Engine().Scheduler().Lookup(sim.ProcEnemyFire).Interval)
}

func TestDefaultsKeepFixedEnemyTiming(t *testing.T) {
	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 1})
	g.Step(frame())

	assert.Equal(t, 5*time.Second, g.Engine().Scheduler().Lookup(sim.ProcEnemyFire).Interval)
	assert.Equal(t, 5, g.Engine().EnemyController().TurnChance)

	g.scaleDifficulty(3 * time.Minute)
	assert.Equal(t, 5*time.Second, g.Engine().Scheduler().Lookup(sim.ProcEnemyFire).Interval)
	assert.Equal(t, 5, g.Engine().EnemyController().TurnChance)
}
