package sim

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tanks/internal/core"
)

// Scheduled process names, in execution order.
const (
	ProcMain      = "main"
	ProcEnemyMove = "enemy-move"
	ProcEnemyFire = "enemy-fire"
	ProcCooldown  = "cooldown"
)

// Rules holds the tunable parameters of a match.
type Rules struct {
	Width  int // map width in world units
	Height int // map height in world units

	TankStep        int
	ProjectileSpeed int
	DespawnMargin   int // projectiles this far off the map are dropped
	EnemySpeed      int
	TurnChance      int // out of 1000, per enemy move

	WallDivisor        int
	DestructibleChance float64

	MainInterval      time.Duration
	EnemyMoveInterval time.Duration
	EnemyFireInterval time.Duration
	CooldownInterval  time.Duration
}

// DefaultRules returns the classic 800x450 match.
func DefaultRules() Rules {
	return Rules{
		Width:              800,
		Height:             450,
		TankStep:           DefaultTankStep,
		ProjectileSpeed:    DefaultProjectileSpeed,
		DespawnMargin:      100,
		EnemySpeed:         DefaultEnemySpeed,
		TurnChance:         DefaultTurnChance,
		WallDivisor:        13,
		DestructibleChance: 0.5,
		MainInterval:       30 * time.Millisecond,
		EnemyMoveInterval:  30 * time.Millisecond,
		EnemyFireInterval:  5 * time.Second,
		CooldownInterval:   5 * time.Second,
	}
}

// normalize replaces unusable values with defaults.
func (r Rules) normalize() Rules {
	d := DefaultRules()
	if r.Width < TankSize {
		r.Width = d.Width
	}
	if r.Height < TankSize {
		r.Height = d.Height
	}
	if r.TankStep <= 0 {
		r.TankStep = d.TankStep
	}
	if r.ProjectileSpeed <= 0 {
		r.ProjectileSpeed = d.ProjectileSpeed
	}
	if r.DespawnMargin < 0 {
		r.DespawnMargin = 0
	}
	if r.EnemySpeed <= 0 {
		r.EnemySpeed = d.EnemySpeed
	}
	r.TurnChance = core.Clamp(r.TurnChance, 0, 1000)
	if r.WallDivisor <= 0 {
		r.WallDivisor = d.WallDivisor
	}
	if r.MainInterval <= 0 {
		r.MainInterval = d.MainInterval
	}
	if r.EnemyMoveInterval <= 0 {
		r.EnemyMoveInterval = d.EnemyMoveInterval
	}
	if r.EnemyFireInterval <= 0 {
		r.EnemyFireInterval = d.EnemyFireInterval
	}
	if r.CooldownInterval <= 0 {
		r.CooldownInterval = d.CooldownInterval
	}
	return r
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger for match events.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithRecords sets where the best time is read from and written to.
func WithRecords(rs core.RecordStore) Option {
	return func(e *Engine) {
		e.records = rs
	}
}

// WithSeed makes map generation and enemy decisions reproducible.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.rng = rand.New(rand.NewSource(seed))
	}
}

// WithMap plays on a prepared map instead of a generated one.
func WithMap(m *Map) Option {
	return func(e *Engine) {
		e.m = m
	}
}

// Engine runs one match. It is not safe for concurrent use; the owner calls
// Command and Tick from a single goroutine.
type Engine struct {
	rules   Rules
	ctx     MatchContext
	rng     *rand.Rand
	log     *log.Logger
	records core.RecordStore

	m           *Map
	player      *Tank
	enemy       *Tank
	ai          *EnemyController
	projectiles []*Projectile

	sched    *core.Scheduler
	fire     *core.Process
	cooldown *core.Process
	canShoot bool

	mapChanged bool
	score      int
	result     *core.MatchResult
}

// NewEngine sets up a match: map, both tanks and the scheduled processes.
func NewEngine(rules Rules, opts ...Option) *Engine {
	e := &Engine{
		rules:    rules.normalize(),
		log:      log.New(io.Discard),
		canShoot: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	r := e.rules
	playerStart := core.NewRect(0, 0, TankSize, TankSize)
	enemyStart := core.NewRect(r.Width-TankSize, r.Height-TankSize, TankSize, TankSize)

	if e.m == nil {
		e.m = Generate(r.Width, r.Height, e.rng, GenerateOptions{
			WallDivisor:        r.WallDivisor,
			DestructibleChance: r.DestructibleChance,
			Reserved:           []core.Rect{playerStart, enemyStart},
		})
	} else {
		e.rules.Width, e.rules.Height = e.m.Width, e.m.Height
		enemyStart = core.NewRect(e.m.Width-TankSize, e.m.Height-TankSize, TankSize, TankSize)
	}

	e.player = NewTank(playerStart.X, playerStart.Y, AngleUp, PlayerControlled{})
	e.player.Step = r.TankStep

	e.ai = NewEnemyController(e.rng, r.EnemySpeed, r.TurnChance)
	e.enemy = NewTank(enemyStart.X, enemyStart.Y, AngleUp, e.ai)
	e.enemy.Step = r.TankStep

	e.sched = core.NewScheduler()
	e.sched.Add(ProcMain, r.MainInterval, e.mainTick)
	e.sched.Add(ProcEnemyMove, r.EnemyMoveInterval, e.enemyMove)
	e.fire = e.sched.Add(ProcEnemyFire, r.EnemyFireInterval, e.enemyFire)
	e.cooldown = e.sched.Add(ProcCooldown, r.CooldownInterval, e.reload)
	e.cooldown.Stop()

	e.log.Info("match started", "width", e.m.Width, "height", e.m.Height, "walls", len(e.m.Walls))
	return e
}

// Tick advances the match by dt of simulated time and reports whether the
// wall layout changed. Paused and ended matches do not advance.
func (e *Engine) Tick(dt time.Duration) bool {
	e.mapChanged = false
	if !e.ctx.Active() || dt <= 0 {
		return false
	}
	e.ctx.Elapsed += dt
	e.sched.Advance(dt)
	return e.mapChanged
}

// Command applies one player command and reports whether it changed
// anything. Pause toggles; everything else is ignored while paused and all
// commands are ignored once the match has ended.
func (e *Engine) Command(a core.Action) bool {
	if e.ctx.Ended {
		return false
	}
	if a == core.ActionPause {
		e.ctx.TogglePause()
		return true
	}
	if e.ctx.Paused {
		return false
	}

	switch a {
	case core.ActionUp:
		return e.player.MoveUp(e.m)
	case core.ActionDown:
		return e.player.MoveDown(e.m)
	case core.ActionLeft:
		return e.player.MoveLeft(e.m)
	case core.ActionRight:
		return e.player.MoveRight(e.m)
	case core.ActionFire:
		return e.Fire()
	default:
		return false
	}
}

// Fire shoots from the player tank if the gun is loaded.
func (e *Engine) Fire() bool {
	if !e.ctx.Active() || !e.canShoot {
		return false
	}
	e.Spawn(e.player.Fire(e.rules.ProjectileSpeed))
	e.canShoot = false
	e.cooldown.Restart()
	return true
}

// Spawn adds a projectile to the live set.
func (e *Engine) Spawn(p *Projectile) {
	e.projectiles = append(e.projectiles, p)
}

// SetPaused pauses or resumes a running match.
func (e *Engine) SetPaused(paused bool) {
	if e.ctx.Paused != paused {
		e.ctx.TogglePause()
	}
}

// SetEnemyFireInterval changes how often the enemy shoots. Time already
// accumulated toward the next shot is kept.
func (e *Engine) SetEnemyFireInterval(d time.Duration) {
	e.fire.Interval = max(d, 1)
}

func (e *Engine) mainTick() {
	if !e.ctx.Active() {
		return
	}

	for i := len(e.projectiles) - 1; i >= 0; i-- {
		p := e.projectiles[i]
		p.Advance()

		if e.hitTank(p) || e.hitWall(p) || p.OutOfRange(e.m, e.rules.DespawnMargin) {
			e.projectiles = append(e.projectiles[:i], e.projectiles[i+1:]...)
		}
	}
}

// hitTank checks the enemy first, then the player.
func (e *Engine) hitTank(p *Projectile) bool {
	switch {
	case p.IntersectsTank(e.enemy):
		e.end(core.OutcomeVictory)
	case p.IntersectsTank(e.player):
		e.end(core.OutcomeDefeat)
	default:
		return false
	}
	return true
}

func (e *Engine) hitWall(p *Projectile) bool {
	outcome, w := p.ResolveWallCollision(e.m)
	switch outcome {
	case WallDestroyed:
		e.mapChanged = true
		if p.Owner == KindPlayer {
			e.score++
		}
		e.log.Debug("wall destroyed", "cell_x", w.CellX, "cell_y", w.CellY, "by", p.Owner)
		return true
	case WallAbsorbed:
		return true
	default:
		return false
	}
}

func (e *Engine) enemyMove() {
	if !e.ctx.Active() {
		return
	}
	e.ai.Step(e.enemy, e.m)
}

func (e *Engine) enemyFire() {
	if !e.ctx.Active() {
		return
	}
	e.Spawn(e.enemy.Fire(e.rules.ProjectileSpeed))
}

func (e *Engine) reload() {
	if !e.ctx.Active() {
		return
	}
	e.canShoot = true
	e.cooldown.Stop()
}

// end closes the match and settles the best time. Later calls are no-ops.
func (e *Engine) end(o core.Outcome) {
	if !e.ctx.End(o) {
		return
	}

	res := &core.MatchResult{
		Outcome: o,
		Elapsed: e.ctx.Elapsed,
		Best:    core.NoRecord,
	}
	if e.records != nil {
		// Records keep whole seconds only.
		rec := res.Elapsed.Truncate(time.Second)
		res.Best = e.records.ReadBestTime()
		if rec < res.Best {
			if err := e.records.WriteBestTime(rec); err != nil {
				e.log.Error("failed to save best time", "err", err)
				res.RecordErr = err
			} else {
				res.Best = rec
				res.IsNewBest = true
			}
		}
	}
	e.result = res

	e.log.Info("match ended",
		"outcome", o,
		"time", core.FormatBestTime(res.Elapsed),
		"new_best", res.IsNewBest,
	)
}

// Context returns a copy of the match status.
func (e *Engine) Context() MatchContext {
	return e.ctx
}

// Result returns the match result, or nil while the match is running.
func (e *Engine) Result() *core.MatchResult {
	return e.result
}

// Map returns the battlefield.
func (e *Engine) Map() *Map {
	return e.m
}

// Player returns the player tank.
func (e *Engine) Player() *Tank {
	return e.player
}

// Enemy returns the enemy tank.
func (e *Engine) Enemy() *Tank {
	return e.enemy
}

// EnemyController returns the controller driving the enemy tank.
func (e *Engine) EnemyController() *EnemyController {
	return e.ai
}

// Projectiles returns the live projectiles. The slice must not be modified.
func (e *Engine) Projectiles() []*Projectile {
	return e.projectiles
}

// CanShoot reports whether the player gun is loaded.
func (e *Engine) CanShoot() bool {
	return e.canShoot
}

// Score returns the number of walls the player destroyed.
func (e *Engine) Score() int {
	return e.score
}

// Scheduler exposes the process table, mainly for inspection.
func (e *Engine) Scheduler() *core.Scheduler {
	return e.sched
}
