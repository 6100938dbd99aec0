// Package config provides YAML-based configuration for the solitaire suite:
// storage backends, credit allowances, per-variant tuning and the SSH server.
package config

import "time"

// Config is the root of solitaire.yaml.
type Config struct {
	Storage  StorageConfig  `yaml:"storage"`
	Credits  CreditsConfig  `yaml:"credits"`
	Klondike KlondikeConfig `yaml:"klondike"`
	Spider   SpiderConfig   `yaml:"spider"`
	FreeCell FreeCellConfig `yaml:"freecell"`
	Server   ServerConfig   `yaml:"server"`
}

// Storage backends for settings and stats.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// StorageConfig selects where stats and scores are kept.
type StorageConfig struct {
	DBPath      string `yaml:"db_path"`
	KV          string `yaml:"kv"`
	RedisAddr   string `yaml:"redis_addr"`
	RedisPrefix string `yaml:"redis_prefix"`
}

// CreditsConfig sets how many hints, undos and magic moves a game starts with.
type CreditsConfig struct {
	Hints      int `yaml:"hints"`
	Undos      int `yaml:"undos"`
	MagicMoves int `yaml:"magic_moves"`
}

// KlondikeConfig tunes Klondike.
type KlondikeConfig struct {
	DefaultMode       string        `yaml:"default_mode"`
	DefaultDifficulty string        `yaml:"default_difficulty"`
	RecyclePenalty    int           `yaml:"recycle_penalty"`
	TimeBonusCap      time.Duration `yaml:"time_bonus_cap"`
}

// SpiderConfig tunes Spider.
type SpiderConfig struct {
	DefaultMode       string        `yaml:"default_mode"`
	DefaultDifficulty string        `yaml:"default_difficulty"`
	TimeBonusCap      time.Duration `yaml:"time_bonus_cap"`
}

// FreeCellConfig tunes FreeCell.
type FreeCellConfig struct {
	DefaultDifficulty string        `yaml:"default_difficulty"`
	TimeBonusCap      time.Duration `yaml:"time_bonus_cap"`
}

// ServerConfig configures `solitaire serve`.
type ServerConfig struct {
	Host        string        `yaml:"host"`
	Port        int           `yaml:"port"`
	HostKeyPath string        `yaml:"host_key_path"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
	MaxTimeout  time.Duration `yaml:"max_timeout"`
	MetricsAddr string        `yaml:"metrics_addr"`
}
