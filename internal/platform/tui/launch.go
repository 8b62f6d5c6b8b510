package tui

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tanks/internal/core"
	"github.com/vovakirdan/tui-tanks/internal/registry"
	"github.com/vovakirdan/tui-tanks/internal/storage"
)

// Setup holds everything a session needs besides the terminal.
type Setup struct {
	Store      *storage.Store // nil when the database is unavailable
	RecordFile string         // best-time file; takes precedence over Store
	ConfigPath string
	Difficulty string
	SessionID  string // empty for local play
	Logger     *log.Logger
}

func (s Setup) logger() *log.Logger {
	if s.Logger == nil {
		return log.New(io.Discard)
	}
	return s.Logger
}

// Records returns where the best time of a game is kept, or nil when
// neither a record file nor a database is configured.
func (s Setup) Records(gameID string) core.RecordStore {
	switch {
	case s.RecordFile != "":
		rec, err := storage.NewFileRecord(s.RecordFile)
		if err != nil {
			s.logger().Warn("record file unavailable", "path", s.RecordFile, "err", err)
			return nil
		}
		return rec
	case s.Store != nil:
		return s.Store.Records(gameID)
	default:
		return nil
	}
}

// BestTime reads the stored best time of a game.
func (s Setup) BestTime(gameID string) time.Duration {
	rs := s.Records(gameID)
	if rs == nil {
		return core.NoRecord
	}
	return rs.ReadBestTime()
}

// NewGame creates a registered game and hands it its config, logger and
// record store.
func (s Setup) NewGame(gameID string) (registry.Game, error) {
	game, err := registry.Create(gameID)
	if err != nil {
		return nil, err
	}

	if c, ok := game.(registry.Configurable); ok {
		if err := c.Configure(s.ConfigPath, s.Difficulty); err != nil {
			return nil, err
		}
	}
	if la, ok := game.(registry.LoggerAware); ok {
		l := s.logger()
		if s.SessionID != "" {
			l = l.With("session", s.SessionID)
		}
		la.SetLogger(l)
	}
	if ra, ok := game.(registry.RecordAware); ok {
		if rs := s.Records(gameID); rs != nil {
			ra.AttachRecords(rs)
		}
	}
	return game, nil
}
