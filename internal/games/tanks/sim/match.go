package sim

import (
	"time"

	"github.com/vovakirdan/tui-tanks/internal/core"
)

// MatchContext is the shared match status every scheduled process reads
// before acting.
type MatchContext struct {
	Paused  bool
	Ended   bool
	Outcome core.Outcome
	Elapsed time.Duration // unpaused match time
}

// Active reports whether processes may mutate the match.
func (c *MatchContext) Active() bool {
	return !c.Paused && !c.Ended
}

// End records the outcome. Only the first call has an effect; it reports
// whether this call ended the match.
func (c *MatchContext) End(o core.Outcome) bool {
	if c.Ended {
		return false
	}
	c.Ended = true
	c.Outcome = o
	return true
}

// TogglePause flips the pause flag of a running match and returns the new
// value. Ended matches stay unpaused.
func (c *MatchContext) TogglePause() bool {
	if c.Ended {
		return c.Paused
	}
	c.Paused = !c.Paused
	return c.Paused
}
