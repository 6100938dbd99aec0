// Package stats persists per-variant settings and aggregate results through
// a narrow key-value interface. Loading never fails: unreadable or malformed
// blobs are logged and replaced by defaults.
package stats

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
)

// KV is the persistence boundary. Load returns (nil, nil) for a missing key.
type KV interface {
	Load(key string) ([]byte, error)
	Save(key string, blob []byte) error
}

// Key returns the storage key for a variant's stats, e.g. "klondike-stats".
func Key(variant string) string {
	return variant + "-stats"
}

// Stats are the aggregates that survive across games.
type Stats struct {
	BestScores  map[string]int `json:"bestScores"`
	GamesPlayed int            `json:"gamesPlayed"`
	GamesWon    int            `json:"gamesWon"`
}

// Update records the end of a game. A win updates the best score for
// difficulty only when final strictly exceeds it.
func (s *Stats) Update(won bool, final int, difficulty string) {
	s.GamesPlayed++
	if !won {
		return
	}
	s.GamesWon++
	if s.BestScores == nil {
		s.BestScores = make(map[string]int)
	}
	if best, ok := s.BestScores[difficulty]; !ok || final > best {
		s.BestScores[difficulty] = final
	}
}

// Best returns the best score for a difficulty, 0 if none.
func (s Stats) Best(difficulty string) int {
	return s.BestScores[difficulty]
}

// WinRate returns the won/played ratio as a percentage.
func (s Stats) WinRate() float64 {
	if s.GamesPlayed == 0 {
		return 0
	}
	return float64(s.GamesWon) * 100 / float64(s.GamesPlayed)
}

// Clone returns a deep copy.
func (s Stats) Clone() Stats {
	out := s
	if s.BestScores != nil {
		out.BestScores = make(map[string]int, len(s.BestScores))
		for k, v := range s.BestScores {
			out.BestScores[k] = v
		}
	}
	return out
}

// Record is the persisted blob for one variant: settings plus aggregates.
type Record struct {
	Difficulty string `json:"difficulty"`
	Mode       string `json:"mode,omitempty"`
	Stats
}

// Load reads the record stored under key. A missing key, a backend error or
// malformed JSON all yield def; the latter two are logged as warnings.
func Load(kv KV, key string, def Record, logger *log.Logger) Record {
	if logger == nil {
		logger = log.Default()
	}
	if kv == nil {
		return def
	}

	blob, err := kv.Load(key)
	if err != nil {
		logger.Warn("cannot load stats, using defaults", "key", key, "err", err)
		return def
	}
	if blob == nil {
		return def
	}

	var rec Record
	if err := json.Unmarshal(blob, &rec); err != nil {
		logger.Warn("malformed stats blob, using defaults", "key", key, "err", err)
		return def
	}
	if rec.Difficulty == "" {
		rec.Difficulty = def.Difficulty
	}
	if rec.Mode == "" {
		rec.Mode = def.Mode
	}
	if rec.BestScores == nil {
		rec.BestScores = make(map[string]int)
	}
	return rec
}

// Save writes rec under key.
func Save(kv KV, key string, rec Record) error {
	if kv == nil {
		return nil
	}
	blob, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("stats: cannot encode %s: %w", key, err)
	}
	if err := kv.Save(key, blob); err != nil {
		return fmt.Errorf("stats: cannot save %s: %w", key, err)
	}
	return nil
}

// KeyLocker is a KV that can serialize read-modify-write cycles per key.
type KeyLocker interface {
	LockKey(key string) (unlock func())
}

// Apply loads the record under key, lets fn change it and saves it back.
// It returns the merged record. When kv is a KeyLocker the whole cycle holds
// the key's lock, so concurrent Apply calls never drop each other's changes.
func Apply(kv KV, key string, def Record, logger *log.Logger, fn func(*Record)) (Record, error) {
	if l, ok := kv.(KeyLocker); ok {
		defer l.LockKey(key)()
	}
	rec := Load(kv, key, def, logger)
	rec.Stats = rec.Stats.Clone()
	fn(&rec)
	return rec, Save(kv, key, rec)
}
