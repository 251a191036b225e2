// Package storage provides SQLite-based persistence for episode outcomes.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
//
// Only finished-episode summaries are stored. Game state is never written,
// so nothing here can resume an episode.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/evasion/internal/episode"
)

// Store manages the SQLite database connection for episode outcomes.
type Store struct {
	db *sql.DB
}

// EpisodeRecord is one stored episode outcome.
type EpisodeRecord struct {
	ID            int64
	Hunter        string
	Prey          string
	Seed          int64
	Captured      bool
	Truncated     bool
	Ticks         int
	WallsBuilt    int
	WallsRemoved  int
	FinalDistance float64
	DurationMs    int64
	CreatedAt     time.Time
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

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS episodes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			hunter TEXT NOT NULL,
			prey TEXT NOT NULL,
			seed INTEGER NOT NULL,
			captured INTEGER NOT NULL,
			truncated INTEGER NOT NULL DEFAULT 0,
			ticks INTEGER NOT NULL,
			walls_built INTEGER NOT NULL DEFAULT 0,
			walls_removed INTEGER NOT NULL DEFAULT 0,
			final_distance REAL NOT NULL,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_episodes_matchup ON episodes(hunter, prey);
		CREATE INDEX IF NOT EXISTS idx_episodes_created ON episodes(created_at DESC);
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

// SaveEpisode records one episode outcome.
// Returns the ID of the inserted record.
func (s *Store) SaveEpisode(rec EpisodeRecord) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO episodes
		 (hunter, prey, seed, captured, truncated, ticks, walls_built, walls_removed, final_distance, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Hunter,
		rec.Prey,
		rec.Seed,
		rec.Captured,
		rec.Truncated,
		rec.Ticks,
		rec.WallsBuilt,
		rec.WallsRemoved,
		rec.FinalDistance,
		rec.DurationMs,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save episode: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// SaveResult implements episode.ResultSaver.
// This adapter lets batch runs persist outcomes without a storage dependency.
func (s *Store) SaveResult(res episode.Result) error {
	_, err := s.SaveEpisode(RecordFromResult(res))
	return err
}

// Ensure Store implements ResultSaver
var _ episode.ResultSaver = (*Store)(nil)

// RecordFromResult converts an episode result into a storable record.
func RecordFromResult(res episode.Result) EpisodeRecord {
	return EpisodeRecord{
		Hunter:        res.Hunter,
		Prey:          res.Prey,
		Seed:          res.Seed,
		Captured:      res.Captured,
		Truncated:     res.Truncated,
		Ticks:         res.Ticks,
		WallsBuilt:    res.WallsBuilt,
		WallsRemoved:  res.WallsRemoved,
		FinalDistance: res.FinalDistance,
		DurationMs:    res.Duration.Milliseconds(),
	}
}

const episodeColumns = `id, hunter, prey, seed, captured, truncated, ticks,
		        walls_built, walls_removed, final_distance, duration_ms, created_at`

// RecentEpisodes retrieves the most recent episodes across all matchups.
func (s *Store) RecentEpisodes(limit int) ([]EpisodeRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+episodeColumns+`
		 FROM episodes
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query episodes: %w", err)
	}
	return scanEpisodes(rows)
}

// EpisodesFor retrieves the most recent episodes of one hunter/prey matchup.
func (s *Store) EpisodesFor(hunter, prey string, limit int) ([]EpisodeRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+episodeColumns+`
		 FROM episodes
		 WHERE hunter = ? AND prey = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		hunter, prey, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query matchup episodes: %w", err)
	}
	return scanEpisodes(rows)
}

func scanEpisodes(rows *sql.Rows) ([]EpisodeRecord, error) {
	defer rows.Close()

	var records []EpisodeRecord
	for rows.Next() {
		var r EpisodeRecord
		var createdAt any
		if err := rows.Scan(
			&r.ID,
			&r.Hunter,
			&r.Prey,
			&r.Seed,
			&r.Captured,
			&r.Truncated,
			&r.Ticks,
			&r.WallsBuilt,
			&r.WallsRemoved,
			&r.FinalDistance,
			&r.DurationMs,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// ClearEpisodes deletes every stored episode.
func (s *Store) ClearEpisodes() error {
	_, err := s.db.Exec("DELETE FROM episodes")
	if err != nil {
		return fmt.Errorf("storage: cannot clear episodes: %w", err)
	}
	return nil
}

// MatchupStats contains aggregated statistics for one hunter/prey pairing.
type MatchupStats struct {
	Hunter          string
	Prey            string
	Episodes        int
	Captures        int
	AvgTicks        float64
	AvgCaptureTicks float64 // Mean ticks over captured episodes only
	AvgWallsBuilt   float64
	LastPlayed      time.Time
}

// CaptureRate returns the fraction of episodes ending in capture.
func (m MatchupStats) CaptureRate() float64 {
	if m.Episodes == 0 {
		return 0
	}
	return float64(m.Captures) / float64(m.Episodes)
}

const statsColumns = `hunter, prey, COUNT(*), COALESCE(SUM(captured), 0),
		        COALESCE(AVG(ticks), 0),
		        COALESCE(AVG(CASE WHEN captured THEN ticks END), 0),
		        COALESCE(AVG(walls_built), 0),
		        MAX(created_at)`

// MatchupStats retrieves aggregated statistics for one pairing.
// A pairing that was never played yields zero counts and no error.
func (s *Store) MatchupStats(hunter, prey string) (*MatchupStats, error) {
	rows, err := s.db.Query(
		`SELECT `+statsColumns+`
		 FROM episodes
		 WHERE hunter = ? AND prey = ?
		 GROUP BY hunter, prey`,
		hunter, prey,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get matchup stats: %w", err)
	}

	stats, err := scanStats(rows)
	if err != nil {
		return nil, err
	}
	if len(stats) == 0 {
		return &MatchupStats{Hunter: hunter, Prey: prey}, nil
	}
	return &stats[0], nil
}

// AllMatchupStats retrieves statistics for every pairing that has been played,
// ordered by hunter then prey.
func (s *Store) AllMatchupStats() ([]MatchupStats, error) {
	rows, err := s.db.Query(
		`SELECT ` + statsColumns + `
		 FROM episodes
		 GROUP BY hunter, prey
		 ORDER BY hunter, prey`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all matchup stats: %w", err)
	}
	return scanStats(rows)
}

func scanStats(rows *sql.Rows) ([]MatchupStats, error) {
	defer rows.Close()

	var stats []MatchupStats
	for rows.Next() {
		var m MatchupStats
		var lastPlayed any
		if err := rows.Scan(
			&m.Hunter,
			&m.Prey,
			&m.Episodes,
			&m.Captures,
			&m.AvgTicks,
			&m.AvgCaptureTicks,
			&m.AvgWallsBuilt,
			&lastPlayed,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		m.LastPlayed = parseTime(lastPlayed)
		stats = append(stats, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// parseTime handles both time.Time and the string form SQLite returns for
// CURRENT_TIMESTAMP and aggregates over it.
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
