package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/solitaire.yaml
var defaultYAML []byte

// DefaultConfig returns the hardcoded configuration used when no file and
// no embedded default can be read.
func DefaultConfig() Config {
	return Config{
		Storage: StorageConfig{
			DBPath:      "~/.solitaire/solitaire.db",
			KV:          BackendSQLite,
			RedisAddr:   "localhost:6379",
			RedisPrefix: "solitaire",
		},
		Credits: CreditsConfig{
			Hints:      3,
			Undos:      3,
			MagicMoves: 3,
		},
		Klondike: KlondikeConfig{
			DefaultMode:       "draw-1",
			DefaultDifficulty: "medium",
			RecyclePenalty:    100,
			TimeBonusCap:      700 * time.Second,
		},
		Spider: SpiderConfig{
			DefaultMode:       "1-suit",
			DefaultDifficulty: "medium",
			TimeBonusCap:      1000 * time.Second,
		},
		FreeCell: FreeCellConfig{
			DefaultDifficulty: "medium",
			TimeBonusCap:      500 * time.Second,
		},
		Server: ServerConfig{
			Host:        "0.0.0.0",
			Port:        2222,
			HostKeyPath: ".ssh/solitaire_ed25519",
			IdleTimeout: 30 * time.Minute,
			MaxTimeout:  2 * time.Hour,
			MetricsAddr: ":9090",
		},
	}
}
