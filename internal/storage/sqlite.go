// Package storage provides SQLite-based persistence for cleared boards.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for the clear history.
type Store struct {
	db *sql.DB
}

// Clear records one solved board.
type Clear struct {
	ID        int64
	GameID    string
	Player    string // Local user or SSH user name
	Session   string // SSH session id, empty for local play
	Level     int
	Flips     int
	Duration  time.Duration
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
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

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS clears (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			session TEXT NOT NULL DEFAULT '',
			level INTEGER NOT NULL,
			flips INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_clears_game_id ON clears(game_id);
		CREATE INDEX IF NOT EXISTS idx_clears_top ON clears(game_id, level DESC, flips ASC);
		CREATE INDEX IF NOT EXISTS idx_clears_player ON clears(game_id, player);
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

// SaveClear records a solved board.
// Returns the ID of the inserted record.
func (s *Store) SaveClear(c Clear) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO clears (game_id, player, session, level, flips, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		c.GameID, c.Player, c.Session, c.Level, c.Flips, c.Duration.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save clear: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const clearColumns = `id, game_id, player, session, level, flips, duration_ms, created_at`

// TopClears retrieves the best N clears for the given game.
// Higher levels rank first; ties go to fewer flips.
func (s *Store) TopClears(gameID string, limit int) ([]Clear, error) {
	if limit <= 0 {
		limit = 10
	}

	return s.queryClears(
		`SELECT `+clearColumns+`
		 FROM clears
		 WHERE game_id = ?
		 ORDER BY level DESC, flips ASC, duration_ms ASC
		 LIMIT ?`,
		gameID, limit,
	)
}

// RecentClears retrieves the most recent clears across all games.
func (s *Store) RecentClears(limit int) ([]Clear, error) {
	if limit <= 0 {
		limit = 20
	}

	return s.queryClears(
		`SELECT `+clearColumns+`
		 FROM clears
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
}

// PlayerClears retrieves clear history for a specific player.
func (s *Store) PlayerClears(player string, limit int) ([]Clear, error) {
	if limit <= 0 {
		limit = 20
	}

	return s.queryClears(
		`SELECT `+clearColumns+`
		 FROM clears
		 WHERE player = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		player, limit,
	)
}

func (s *Store) queryClears(query string, args ...any) ([]Clear, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query clears: %w", err)
	}
	defer rows.Close()

	var entries []Clear
	for rows.Next() {
		var c Clear
		var durationMS int64
		var createdAt any
		if err := rows.Scan(&c.ID, &c.GameID, &c.Player, &c.Session, &c.Level, &c.Flips, &durationMS, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		c.Duration = time.Duration(durationMS) * time.Millisecond
		c.CreatedAt = parseTime(createdAt)
		entries = append(entries, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HighestLevel returns the highest level the player has cleared in the game.
// Returns 0 if the player has no clears.
func (s *Store) HighestLevel(gameID, player string) (int, error) {
	var level sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(level) FROM clears WHERE game_id = ? AND player = ?",
		gameID, player,
	).Scan(&level)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query highest level: %w", err)
	}

	if !level.Valid {
		return 0, nil
	}

	return int(level.Int64), nil
}

// ClearHistory deletes all clears for the given game.
func (s *Store) ClearHistory(gameID string) error {
	_, err := s.db.Exec("DELETE FROM clears WHERE game_id = ?", gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear history: %w", err)
	}
	return nil
}

// GameStats contains aggregated statistics for a game.
type GameStats struct {
	GameID       string
	Clears       int
	HighestLevel int
	AvgFlips     float64
	TotalFlips   int64
	LastPlayed   time.Time
}

// GetGameStats retrieves aggregated statistics for a specific game.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	stats := &GameStats{GameID: gameID}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(level), 0), COALESCE(AVG(flips), 0), COALESCE(SUM(flips), 0)
		 FROM clears WHERE game_id = ?`,
		gameID,
	).Scan(&stats.Clears, &stats.HighestLevel, &stats.AvgFlips, &stats.TotalFlips)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}

	// Get last played
	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM clears WHERE game_id = ? ORDER BY created_at DESC LIMIT 1`,
		gameID,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// GetAllGamesStats retrieves statistics for all games that have clears.
func (s *Store) GetAllGamesStats() (map[string]*GameStats, error) {
	rows, err := s.db.Query(
		`SELECT game_id, COUNT(*), MAX(level), AVG(flips), SUM(flips), MAX(created_at)
		 FROM clears
		 GROUP BY game_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all games stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*GameStats)
	for rows.Next() {
		var gs GameStats
		var lastPlayed any
		if err := rows.Scan(&gs.GameID, &gs.Clears, &gs.HighestLevel, &gs.AvgFlips, &gs.TotalFlips, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		gs.LastPlayed = parseTime(lastPlayed)
		stats[gs.GameID] = &gs
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// parseTime handles the driver returning either time.Time or a string.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
