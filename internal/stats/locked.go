package stats

import "sync"

// LockedKV adds per-key locks to a KV shared by many sessions.
type LockedKV struct {
	KV

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewLockedKV wraps kv.
func NewLockedKV(kv KV) *LockedKV {
	return &LockedKV{KV: kv, locks: make(map[string]*sync.Mutex)}
}

// LockKey blocks until key is free and returns its unlock function.
func (l *LockedKV) LockKey(key string) func() {
	l.mu.Lock()
	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}

var _ KeyLocker = (*LockedKV)(nil)
