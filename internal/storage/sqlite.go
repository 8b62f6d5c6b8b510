// Package storage provides SQLite-based persistence for match history and
// best-time records, plus a plain-text best-time file.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-tanks/internal/core"
)

// Store manages the SQLite database connection. It is safe for concurrent
// use by several sessions.
type Store struct {
	db *sql.DB
}

// MatchEntry is one finished match.
type MatchEntry struct {
	ID             int64
	MatchID        string // uuid, generated when empty
	GameID         string
	SessionID      string // SSH session or empty for local play
	Outcome        core.Outcome
	Elapsed        time.Duration
	WallsDestroyed int
	NewBest        bool
	CreatedAt      time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	dbPath, err := expandHome(dbPath)
	if err != nil {
		return nil, err
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// expandHome replaces a leading ~ with the home directory.
func expandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS matches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			match_id TEXT NOT NULL UNIQUE,
			game_id TEXT NOT NULL,
			session_id TEXT NOT NULL DEFAULT '',
			outcome TEXT NOT NULL,
			elapsed_ms INTEGER NOT NULL,
			walls_destroyed INTEGER NOT NULL DEFAULT 0,
			new_best INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_matches_game_id ON matches(game_id, created_at DESC);

		CREATE TABLE IF NOT EXISTS records (
			game_id TEXT PRIMARY KEY,
			best_time TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveMatch records a finished match and returns its match ID.
func (s *Store) SaveMatch(m MatchEntry) (string, error) {
	if m.MatchID == "" {
		m.MatchID = uuid.NewString()
	}

	_, err := s.db.Exec(
		`INSERT INTO matches
		 (match_id, game_id, session_id, outcome, elapsed_ms, walls_destroyed, new_best)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.MatchID,
		m.GameID,
		m.SessionID,
		outcomeText(m.Outcome),
		m.Elapsed.Milliseconds(),
		m.WallsDestroyed,
		m.NewBest,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save match: %w", err)
	}

	return m.MatchID, nil
}

const matchColumns = `id, match_id, game_id, session_id, outcome, elapsed_ms, walls_destroyed, new_best, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMatch(row rowScanner) (MatchEntry, error) {
	var (
		m         MatchEntry
		outcome   string
		elapsedMs int64
		createdAt any
	)
	if err := row.Scan(
		&m.ID,
		&m.MatchID,
		&m.GameID,
		&m.SessionID,
		&outcome,
		&elapsedMs,
		&m.WallsDestroyed,
		&m.NewBest,
		&createdAt,
	); err != nil {
		return m, err
	}

	m.Outcome = parseOutcome(outcome)
	m.Elapsed = time.Duration(elapsedMs) * time.Millisecond
	m.CreatedAt = parseTimestamp(createdAt)
	return m, nil
}

// RecentMatches retrieves the most recent matches of a game, newest first.
func (s *Store) RecentMatches(gameID string, limit int) ([]MatchEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+matchColumns+`
		 FROM matches
		 WHERE game_id = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query matches: %w", err)
	}
	defer rows.Close()

	var entries []MatchEntry
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		entries = append(entries, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// MatchByID retrieves a match by its match ID. Returns nil when not found.
func (s *Store) MatchByID(matchID string) (*MatchEntry, error) {
	m, err := scanMatch(s.db.QueryRow(
		`SELECT `+matchColumns+` FROM matches WHERE match_id = ?`,
		matchID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query match: %w", err)
	}
	return &m, nil
}

// ClearMatches deletes the match history of a game.
func (s *Store) ClearMatches(gameID string) error {
	_, err := s.db.Exec("DELETE FROM matches WHERE game_id = ?", gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear matches: %w", err)
	}
	return nil
}

// GameStats contains aggregated statistics for a game.
type GameStats struct {
	GameID       string
	Matches      int
	Victories    int
	Defeats      int
	FastestWin   time.Duration // 0 when there is no victory yet
	TotalPlaying time.Duration
	LastPlayed   time.Time
}

// GetGameStats retrieves aggregated statistics for a specific game.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	stats := &GameStats{GameID: gameID}

	var fastestMs, totalMs int64
	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(outcome = 'victory'), 0),
		        COALESCE(SUM(outcome = 'defeat'), 0),
		        COALESCE(MIN(CASE WHEN outcome = 'victory' THEN elapsed_ms END), 0),
		        COALESCE(SUM(elapsed_ms), 0),
		        MAX(created_at)
		 FROM matches WHERE game_id = ?`,
		gameID,
	).Scan(&stats.Matches, &stats.Victories, &stats.Defeats, &fastestMs, &totalMs, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}

	stats.FastestWin = time.Duration(fastestMs) * time.Millisecond
	stats.TotalPlaying = time.Duration(totalMs) * time.Millisecond
	stats.LastPlayed = parseTimestamp(lastPlayed)
	return stats, nil
}

// BestTime returns the stored best time of a game. A missing or malformed
// record yields core.NoRecord.
func (s *Store) BestTime(gameID string) (time.Duration, error) {
	var text string
	err := s.db.QueryRow("SELECT best_time FROM records WHERE game_id = ?", gameID).Scan(&text)
	if errors.Is(err, sql.ErrNoRows) {
		return core.NoRecord, nil
	}
	if err != nil {
		return core.NoRecord, fmt.Errorf("storage: cannot query best time: %w", err)
	}

	d, ok := core.ParseBestTime(text)
	if !ok {
		return core.NoRecord, nil
	}
	return d, nil
}

// SaveBestTime replaces the best time of a game.
func (s *Store) SaveBestTime(gameID string, d time.Duration) error {
	_, err := s.db.Exec(
		`INSERT INTO records (game_id, best_time) VALUES (?, ?)
		 ON CONFLICT(game_id) DO UPDATE SET best_time = excluded.best_time, updated_at = CURRENT_TIMESTAMP`,
		gameID, core.FormatBestTime(d),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save best time: %w", err)
	}
	return nil
}

// ClearBestTime removes the best time of a game.
func (s *Store) ClearBestTime(gameID string) error {
	if _, err := s.db.Exec("DELETE FROM records WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("storage: cannot clear best time: %w", err)
	}
	return nil
}

// Records returns the best-time record of one game as a core.RecordStore.
func (s *Store) Records(gameID string) core.RecordStore {
	return &gameRecords{store: s, gameID: gameID}
}

type gameRecords struct {
	store  *Store
	gameID string
}

// ReadBestTime treats read failures like a missing record.
func (r *gameRecords) ReadBestTime() time.Duration {
	d, err := r.store.BestTime(r.gameID)
	if err != nil {
		return core.NoRecord
	}
	return d
}

func (r *gameRecords) WriteBestTime(d time.Duration) error {
	return r.store.SaveBestTime(r.gameID, d)
}

func outcomeText(o core.Outcome) string {
	switch o {
	case core.OutcomeVictory:
		return "victory"
	case core.OutcomeDefeat:
		return "defeat"
	default:
		return "none"
	}
}

func parseOutcome(s string) core.Outcome {
	switch strings.ToLower(s) {
	case "victory":
		return core.OutcomeVictory
	case "defeat":
		return core.OutcomeDefeat
	default:
		return core.OutcomeNone
	}
}

// parseTimestamp handles the driver returning either time.Time or text.
func parseTimestamp(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
