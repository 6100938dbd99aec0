package storage

import (
	"io"
	"strings"

	"github.com/vovakirdan/tui-solitaire/internal/config"
	"github.com/vovakirdan/tui-solitaire/internal/stats"
)

// Backend is a stats.KV that must be closed.
type Backend interface {
	stats.KV
	io.Closer
}

type memoryBackend struct {
	*stats.MemoryKV
}

func (memoryBackend) Close() error { return nil }

// OpenBackend opens the KV named by cfg.KV. A "redis://host:port" value
// overrides the configured Redis address.
func OpenBackend(cfg config.StorageConfig) (Backend, error) {
	kind := cfg.KV
	addr := cfg.RedisAddr
	if rest, ok := strings.CutPrefix(kind, "redis://"); ok {
		kind = config.BackendRedis
		addr = rest
	}

	switch kind {
	case config.BackendMemory:
		return memoryBackend{stats.NewMemoryKV()}, nil
	case config.BackendRedis:
		return OpenRedis(addr, cfg.RedisPrefix)
	default:
		return Open(cfg.DBPath)
	}
}
