package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-solitaire/internal/solitaire"
)

// ScoreEntry is one won game.
type ScoreEntry struct {
	ID         int64
	Variant    string
	Score      int
	Difficulty string
	Mode       string
	Moves      int
	Elapsed    time.Duration
	CreatedAt  time.Time
}

// SaveResult records a won game. It has the shape of solitaire.WithOnWin.
// Returns the ID of the inserted record.
func (s *Store) SaveResult(r solitaire.Result) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO scores (variant, score, difficulty, mode, moves, elapsed_secs)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.Variant, r.Score, r.Difficulty, r.Mode, r.Moves, int64(r.Elapsed/time.Second),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopScores retrieves the top N scores for the given variant.
// Results are ordered by score descending.
func (s *Store) TopScores(variant string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, variant, score, difficulty, mode, moves, elapsed_secs, created_at
		 FROM scores
		 WHERE variant = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		variant, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var secs int64
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Variant, &e.Score, &e.Difficulty, &e.Mode, &e.Moves, &secs, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Elapsed = time.Duration(secs) * time.Second
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HighScore returns the highest score for the given variant and difficulty.
// An empty difficulty matches all. Returns 0 if no scores exist.
func (s *Store) HighScore(variant, difficulty string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		`SELECT MAX(score) FROM scores WHERE variant = ? AND (? = '' OR difficulty = ?)`,
		variant, difficulty, difficulty,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearScores deletes all scores for the given variant.
func (s *Store) ClearScores(variant string) error {
	_, err := s.db.Exec("DELETE FROM scores WHERE variant = ?", variant)
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// WinStats aggregates the won games of a variant.
type WinStats struct {
	Variant     string
	Wins        int
	HighScore   int
	AvgScore    float64
	FewestMoves int
	Fastest     time.Duration
	LastWon     time.Time
}

// GetWinStats retrieves aggregated statistics for a variant.
func (s *Store) GetWinStats(variant string) (*WinStats, error) {
	ws := &WinStats{Variant: variant}

	var fastest int64
	var lastWon any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(MIN(moves), 0), COALESCE(MIN(elapsed_secs), 0), MAX(created_at)
		 FROM scores WHERE variant = ?`,
		variant,
	).Scan(&ws.Wins, &ws.HighScore, &ws.AvgScore, &ws.FewestMoves, &fastest, &lastWon)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get win stats: %w", err)
	}
	ws.Fastest = time.Duration(fastest) * time.Second
	ws.LastWon = parseTime(lastWon)

	return ws, nil
}
