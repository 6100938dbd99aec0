package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const fileName = "solitaire.yaml"

// Load reads the suite configuration.
// Search order: customPath -> ~/.solitaire/config.yaml -> ./configs/solitaire.yaml -> embedded default.
// Keys missing from the file keep their default values.
func Load(customPath string) (Config, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultConfig(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return DefaultConfig(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", fileName)); err == nil {
		if cfg, err := parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parse(defaultYAML)
	if err != nil {
		return DefaultConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parse decodes data over the hardcoded defaults and normalizes the result.
func parse(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	cfg.normalize()
	return cfg, nil
}

// normalize replaces out-of-range values with defaults.
func (c *Config) normalize() {
	def := DefaultConfig()

	switch {
	case c.Storage.KV == BackendSQLite, c.Storage.KV == BackendRedis, c.Storage.KV == BackendMemory:
	case strings.HasPrefix(c.Storage.KV, "redis://"):
	default:
		c.Storage.KV = def.Storage.KV
	}
	if c.Storage.DBPath == "" {
		c.Storage.DBPath = def.Storage.DBPath
	}

	if c.Credits.Hints < 0 {
		c.Credits.Hints = 0
	}
	if c.Credits.Undos < 0 {
		c.Credits.Undos = 0
	}
	if c.Credits.MagicMoves < 0 {
		c.Credits.MagicMoves = 0
	}

	if c.Klondike.RecyclePenalty < 0 {
		c.Klondike.RecyclePenalty = 0
	}
	if c.Klondike.TimeBonusCap <= 0 {
		c.Klondike.TimeBonusCap = def.Klondike.TimeBonusCap
	}
	if c.Spider.TimeBonusCap <= 0 {
		c.Spider.TimeBonusCap = def.Spider.TimeBonusCap
	}
	if c.FreeCell.TimeBonusCap <= 0 {
		c.FreeCell.TimeBonusCap = def.FreeCell.TimeBonusCap
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		c.Server.Port = def.Server.Port
	}
}

// userConfigPath returns the path to the user config file, or empty if home is unavailable.
func userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".solitaire", "config.yaml")
}
