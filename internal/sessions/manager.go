// Package sessions hosts many independent solitaire games behind opaque
// tokens. Each token owns one solitaire.Session and one credits.Wallet;
// nothing is shared between tokens except the stats store.
package sessions

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-solitaire/internal/config"
	"github.com/vovakirdan/tui-solitaire/internal/credits"
	"github.com/vovakirdan/tui-solitaire/internal/registry"
	"github.com/vovakirdan/tui-solitaire/internal/solitaire"
	"github.com/vovakirdan/tui-solitaire/internal/stats"
)

// ErrUnknownSession is returned for a token that was never opened or was closed.
var ErrUnknownSession = errors.New("sessions: unknown session")

// Token identifies an open session.
type Token string

// Defaults are the settings a variant starts with before anything is stored.
type Defaults struct {
	Difficulty string
	Mode       string
}

// Config holds configuration for the manager.
type Config struct {
	IdleTimeout   time.Duration // Sessions untouched this long are closed; 0 disables
	CleanupPeriod time.Duration // How often to look for idle sessions
	Credits       config.CreditsConfig
	Defaults      map[string]Defaults // By variant ID
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return ConfigFrom(config.DefaultConfig())
}

// ConfigFrom builds the manager configuration from solitaire.yaml.
func ConfigFrom(c config.Config) Config {
	idle := c.Server.IdleTimeout
	if idle <= 0 {
		idle = 30 * time.Minute
	}
	return Config{
		IdleTimeout:   idle,
		CleanupPeriod: time.Minute,
		Credits:       c.Credits,
		Defaults: map[string]Defaults{
			"klondike": {Difficulty: c.Klondike.DefaultDifficulty, Mode: c.Klondike.DefaultMode},
			"spider":   {Difficulty: c.Spider.DefaultDifficulty, Mode: c.Spider.DefaultMode},
			"freecell": {Difficulty: c.FreeCell.DefaultDifficulty},
		},
	}
}

// Entry is one hosted game. Access it through Manager.Do.
type Entry struct {
	Token   Token
	Variant string
	Session *solitaire.Session
	Wallet  *credits.Wallet

	mu       sync.Mutex
	lastUsed time.Time
	metrics  *Metrics
}

// NewGame deals a fresh game and refills the wallet.
func (e *Entry) NewGame() {
	e.Session.NewGame()
	e.Wallet.Reset()
	e.metrics.Started.WithLabelValues(e.Variant).Inc()
}

// Manager owns the open sessions.
type Manager struct {
	cfg     Config
	kv      stats.KV
	logger  *log.Logger
	metrics *Metrics
	now     func() time.Time
	onWin   func(solitaire.Result)

	mu      sync.RWMutex
	entries map[Token]*Entry

	done     chan struct{}
	stopOnce sync.Once
}

// NewManager creates a manager. kv may be nil for in-memory stats only.
// Sessions of the same variant share its stats record; their updates are
// merged under a per-key lock.
func NewManager(cfg Config, kv stats.KV, metrics *Metrics, logger *log.Logger) *Manager {
	if kv != nil {
		kv = stats.NewLockedKV(kv)
	}
	if logger == nil {
		logger = log.Default()
	}
	if metrics == nil {
		metrics = NewMetrics(nil)
	}
	return &Manager{
		cfg:     cfg,
		kv:      kv,
		logger:  logger,
		metrics: metrics,
		now:     time.Now,
		entries: make(map[Token]*Entry),
		done:    make(chan struct{}),
	}
}

// SetOnWin sets a hook called for every won game, e.g. to record scores.
func (m *Manager) SetOnWin(fn func(solitaire.Result)) {
	m.onWin = fn
}

// Open deals a new game of variant and returns its token.
func (m *Manager) Open(variant string, opts ...solitaire.Option) (Token, error) {
	rules, err := registry.Create(variant)
	if err != nil {
		return "", err
	}

	token := Token(uuid.NewString())
	def := m.cfg.Defaults[variant]
	base := []solitaire.Option{
		solitaire.WithDefaults(def.Difficulty, def.Mode),
		solitaire.WithKV(m.kv),
		solitaire.WithLogger(m.logger.With("session", string(token)[:8])),
		solitaire.WithOnWin(m.won),
	}
	sess := solitaire.NewSession(rules, append(base, opts...)...)

	e := &Entry{
		Token:    token,
		Variant:  variant,
		Session:  sess,
		Wallet:   credits.NewWallet(m.cfg.Credits),
		lastUsed: m.now(),
		metrics:  m.metrics,
	}

	m.mu.Lock()
	m.entries[token] = e
	m.mu.Unlock()

	m.metrics.Active.Inc()
	m.metrics.Started.WithLabelValues(variant).Inc()
	m.logger.Debug("session opened", "token", token, "variant", variant)
	return token, nil
}

func (m *Manager) won(r solitaire.Result) {
	m.metrics.Won.WithLabelValues(r.Variant).Inc()
	if m.onWin != nil {
		m.onWin(r)
	}
}

// Do runs fn with exclusive access to the session behind token.
// An error from fn is counted as a rejected action and returned.
func (m *Manager) Do(token Token, fn func(*Entry) error) error {
	m.mu.RLock()
	e, ok := m.entries[token]
	m.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSession, token)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.lastUsed = m.now()

	err := fn(e)
	outcome := "ok"
	if err != nil {
		outcome = "rejected"
	}
	m.metrics.Actions.WithLabelValues(e.Variant, outcome).Inc()
	return err
}

// Snapshot returns a copy of the state behind token.
func (m *Manager) Snapshot(token Token) (*solitaire.GameState, error) {
	var st *solitaire.GameState
	err := m.Do(token, func(e *Entry) error {
		st = e.Session.Snapshot()
		return nil
	})
	return st, err
}

// Close discards a session. Closing an unknown token is a no-op.
func (m *Manager) Close(token Token) {
	m.mu.Lock()
	_, ok := m.entries[token]
	delete(m.entries, token)
	m.mu.Unlock()

	if ok {
		m.metrics.Active.Dec()
		m.logger.Debug("session closed", "token", token)
	}
}

// Len returns the number of open sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// Start begins closing idle sessions in the background.
func (m *Manager) Start() {
	if m.cfg.IdleTimeout <= 0 || m.cfg.CleanupPeriod <= 0 {
		return
	}
	go m.cleanupLoop()
}

// Stop shuts down the background cleanup.
func (m *Manager) Stop() {
	m.stopOnce.Do(func() { close(m.done) })
}

func (m *Manager) cleanupLoop() {
	ticker := time.NewTicker(m.cfg.CleanupPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.reapIdle()
		case <-m.done:
			return
		}
	}
}

// reapIdle closes sessions not used within IdleTimeout and returns how many.
func (m *Manager) reapIdle() int {
	cutoff := m.now().Add(-m.cfg.IdleTimeout)

	var idle []Token
	m.mu.RLock()
	for token, e := range m.entries {
		e.mu.Lock()
		if e.lastUsed.Before(cutoff) {
			idle = append(idle, token)
		}
		e.mu.Unlock()
	}
	m.mu.RUnlock()

	for _, token := range idle {
		m.Close(token)
	}
	if len(idle) > 0 {
		m.logger.Info("closed idle sessions", "count", len(idle))
	}
	return len(idle)
}
