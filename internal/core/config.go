package core

import "time"

// DefaultTick is the simulation frame length used when none is configured.
const DefaultTick = 30 * time.Millisecond

// RuntimeConfig is passed to games at initialization.
type RuntimeConfig struct {
	ScreenW int           // Screen width in characters
	ScreenH int           // Screen height in characters
	Tick    time.Duration // Length of one simulation frame
	Seed    int64         // RNG seed; 0 lets the platform pick one
}

// DefaultConfig returns a RuntimeConfig for a standard 80x24 terminal.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
		Tick:    DefaultTick,
		Seed:    0,
	}
}

// TickInterval returns the configured frame length, falling back to
// DefaultTick for zero or negative values.
func (c RuntimeConfig) TickInterval() time.Duration {
	if c.Tick <= 0 {
		return DefaultTick
	}
	return c.Tick
}

// Outcome is how a match ended from the player's point of view.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeVictory
	OutcomeDefeat
)

// String returns the result message shown to the player.
func (o Outcome) String() string {
	switch o {
	case OutcomeVictory:
		return "Victory!"
	case OutcomeDefeat:
		return "Defeat!"
	default:
		return "None"
	}
}

// MatchResult is emitted once when a match ends.
type MatchResult struct {
	Outcome   Outcome
	Elapsed   time.Duration // match time, pauses excluded
	Best      time.Duration // best time after this match, NoRecord if none
	IsNewBest bool
	RecordErr error // set when the new best could not be persisted
}

// GameState is the status a game reports to the platform after each tick.
type GameState struct {
	Score    int          // Walls destroyed by the player
	GameOver bool         // The match has ended
	Paused   bool         // The match is paused
	Exit     bool         // The player asked to leave for the menu
	Result   *MatchResult // Non-nil once GameOver is set
}

// StepResult is returned by Game.Step after each simulation tick.
type StepResult struct {
	State GameState
}
