package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// End reasons recorded for a run.
const (
	EndCaught  = "caught"
	EndQuit    = "quit"
	EndRestart = "restart"
	EndTimeout = "timeout"
	EndError   = "error"
	EndStuck   = "stuck" // no route to any key
	EndGoal    = "goal"  // reached the requested level count
)

// RunRecord is one finished run: the seed that produced it and how far it got.
type RunRecord struct {
	ID        int64
	RunID     string
	GameID    string
	Player    string
	Seed      int64
	Strategy  string
	Score     int
	Levels    int
	Keys      int
	Catches   int
	EndReason string
	Duration  time.Duration
	CreatedAt time.Time
}

// SaveRun stores a run. An empty RunID is filled with a fresh UUID; the
// assigned ID is returned.
func (s *Store) SaveRun(r RunRecord) (string, error) {
	if r.RunID == "" {
		r.RunID = uuid.NewString()
	} else if _, err := uuid.Parse(r.RunID); err != nil {
		return "", fmt.Errorf("storage: invalid run id %q: %w", r.RunID, err)
	}

	_, err := s.db.Exec(
		`INSERT INTO runs
		 (run_id, game_id, player, seed, strategy, score, levels, keys_collected, catches, end_reason, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID,
		r.GameID,
		r.Player,
		r.Seed,
		r.Strategy,
		r.Score,
		r.Levels,
		r.Keys,
		r.Catches,
		r.EndReason,
		r.Duration.Milliseconds(),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}
	return r.RunID, nil
}

const runColumns = `id, run_id, game_id, player, seed, strategy, score, levels, keys_collected, catches,
	end_reason, duration_ms, created_at`

// RunByID retrieves a run by its UUID. It returns nil, nil when none exists.
func (s *Store) RunByID(runID string) (*RunRecord, error) {
	row := s.db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE run_id = ?`, runID)

	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return &r, nil
}

// RecentRuns retrieves the most recent runs for gameID, or for every game
// when gameID is empty.
func (s *Store) RecentRuns(gameID string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT ` + runColumns + ` FROM runs`
	args := []any{}
	if gameID != "" {
		query += ` WHERE game_id = ?`
		args = append(args, gameID)
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var results []RunRecord
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return results, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (RunRecord, error) {
	var r RunRecord
	var durationMs int64
	var createdAt any
	err := sc.Scan(
		&r.ID,
		&r.RunID,
		&r.GameID,
		&r.Player,
		&r.Seed,
		&r.Strategy,
		&r.Score,
		&r.Levels,
		&r.Keys,
		&r.Catches,
		&r.EndReason,
		&durationMs,
		&createdAt,
	)
	if err != nil {
		return RunRecord{}, err
	}
	r.Duration = time.Duration(durationMs) * time.Millisecond
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}
