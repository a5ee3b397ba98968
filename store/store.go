// Package store persists finished matches and resumable snapshots in
// SQLite. The board and policy blobs are opaque JSON from the store's point
// of view; the core only defines what goes into them.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"tianji/config"
	"tianji/game"
)

const schema = `
CREATE TABLE IF NOT EXISTS matches (
	match_id    TEXT PRIMARY KEY,
	winner      INTEGER NOT NULL,
	reason      TEXT NOT NULL,
	turns       INTEGER NOT NULL,
	config_json TEXT NOT NULL,
	created_at  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS snapshots (
	match_id    TEXT PRIMARY KEY,
	state_json  TEXT NOT NULL,
	memory_json TEXT,
	saved_at    TEXT NOT NULL
);
`

// Store wraps one SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database and runs migrations.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// MatchRecord is one finished match.
type MatchRecord struct {
	ID        string
	Result    game.MatchResult
	Config    config.Config
	CreatedAt time.Time
}

// SaveResult records a finished match.
func (s *Store) SaveResult(id string, result game.MatchResult, cfg config.Config) error {
	cfgJSON, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT OR REPLACE INTO matches (match_id, winner, reason, turns, config_json, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, int(result.Winner), string(result.Reason), result.Turn,
		string(cfgJSON), time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert match: %w", err)
	}
	return nil
}

// Result loads one finished match by ID.
func (s *Store) Result(id string) (MatchRecord, error) {
	row := s.db.QueryRow(
		`SELECT winner, reason, turns, config_json, created_at FROM matches WHERE match_id = ?`, id)

	var rec MatchRecord
	var winner int
	var reason, cfgJSON, createdAt string
	if err := row.Scan(&winner, &reason, &rec.Result.Turn, &cfgJSON, &createdAt); err != nil {
		return MatchRecord{}, fmt.Errorf("load match %s: %w", id, err)
	}
	rec.ID = id
	rec.Result.Winner = game.PlayerID(winner)
	rec.Result.Reason = game.TerminationReason(reason)
	if err := json.Unmarshal([]byte(cfgJSON), &rec.Config); err != nil {
		return MatchRecord{}, fmt.Errorf("unmarshal config: %w", err)
	}
	rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	return rec, nil
}

// Results lists finished matches, newest first.
func (s *Store) Results(limit int) ([]MatchRecord, error) {
	rows, err := s.db.Query(
		`SELECT match_id, winner, reason, turns, config_json, created_at
		 FROM matches ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	defer rows.Close()

	var out []MatchRecord
	for rows.Next() {
		var rec MatchRecord
		var winner int
		var reason, cfgJSON, createdAt string
		if err := rows.Scan(&rec.ID, &winner, &reason, &rec.Result.Turn, &cfgJSON, &createdAt); err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		rec.Result.Winner = game.PlayerID(winner)
		rec.Result.Reason = game.TerminationReason(reason)
		if err := json.Unmarshal([]byte(cfgJSON), &rec.Config); err != nil {
			return nil, fmt.Errorf("unmarshal config: %w", err)
		}
		rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// SaveSnapshot stores a serialized board plus the AI's learned memory for a
// match in progress. memoryBlob may be nil for human-vs-human games.
func (s *Store) SaveSnapshot(id string, state *game.BoardState, memoryBlob []byte) error {
	stateJSON, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT OR REPLACE INTO snapshots (match_id, state_json, memory_json, saved_at)
		 VALUES (?, ?, ?, ?)`,
		id, string(stateJSON), string(memoryBlob), time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot returns the stored board and policy memory blobs.
func (s *Store) LoadSnapshot(id string) (*game.BoardState, []byte, error) {
	row := s.db.QueryRow(`SELECT state_json, memory_json FROM snapshots WHERE match_id = ?`, id)

	var stateJSON string
	var memoryJSON sql.NullString
	if err := row.Scan(&stateJSON, &memoryJSON); err != nil {
		return nil, nil, fmt.Errorf("load snapshot %s: %w", id, err)
	}
	var state game.BoardState
	if err := json.Unmarshal([]byte(stateJSON), &state); err != nil {
		return nil, nil, fmt.Errorf("unmarshal state: %w", err)
	}
	var memory []byte
	if memoryJSON.Valid {
		memory = []byte(memoryJSON.String)
	}
	return &state, memory, nil
}
