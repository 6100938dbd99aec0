package tui

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/tui-solitaire/internal/config"
	"github.com/vovakirdan/tui-solitaire/internal/core"
	"github.com/vovakirdan/tui-solitaire/internal/sessions"
	"github.com/vovakirdan/tui-solitaire/internal/stats"
	"github.com/vovakirdan/tui-solitaire/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.solitaire/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// MaxTimeout caps a connection's total lifetime; 0 means no cap.
	MaxTimeout time.Duration
}

// SSHConfigFrom converts the server section of solitaire.yaml.
func SSHConfigFrom(c config.ServerConfig) SSHServerConfig {
	return SSHServerConfig{
		Address:     net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		HostKeyPath: c.HostKeyPath,
		IdleTimeout: c.IdleTimeout,
		MaxTimeout:  c.MaxTimeout,
	}
}

// SSHServer wraps a Wish SSH server. Every connection plays its own games
// on the shared sessions.Manager.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	mgr    *sessions.Manager
	kv     stats.KV
	scores *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server. kv holds settings and stats;
// scores may be nil when wins are not recorded.
func NewSSHServer(cfg SSHServerConfig, mgr *sessions.Manager, kv stats.KV, scores *storage.Store, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "solitaire-ssh",
		})
	}

	srv := &SSHServer{
		config: cfg,
		mgr:    mgr,
		kv:     kv,
		scores: scores,
		logger: logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", err)
		}
		hostKeyPath = filepath.Join(home, ".solitaire", "host_key")
	} else if p, err := storage.ExpandHome(hostKeyPath); err == nil {
		hostKeyPath = p
	}

	if err := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); err != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", err)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}
	if cfg.MaxTimeout > 0 {
		opts = append(opts, wish.WithMaxTimeout(cfg.MaxTimeout))
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW: pty.Window.Width,
		ScreenH: pty.Window.Height,
	}

	// A dropped connection never reaches Back or Quit, so release its
	// table when the session context ends.
	conn := &connState{}
	go func() {
		<-sshSession.Context().Done()
		conn.release(s.mgr)
	}()

	model := NewSessionModel(s.mgr, s.kv, s.scores, cfg, conn, s.logger.With("user", sshSession.User()))
	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
			"open_tables", s.mgr.Len(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server. The manager and stores belong to
// the caller.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// connState is the table token owned by one connection. It is shared by
// value copies of SessionModel and read from the disconnect watcher.
type connState struct {
	mu    sync.Mutex
	token sessions.Token
}

func (c *connState) track(t sessions.Token) {
	c.mu.Lock()
	c.token = t
	c.mu.Unlock()
}

func (c *connState) release(mgr *sessions.Manager) {
	c.mu.Lock()
	t := c.token
	c.token = ""
	c.mu.Unlock()
	if t != "" {
		mgr.Close(t)
	}
}

// flow is the part of the session being shown.
type flow int

const (
	flowMenu flow = iota
	flowGame
	flowScores
)

// SessionModel manages the full flow of one connection:
// menu -> game -> menu, with the scoreboard reachable from the menu.
type SessionModel struct {
	mgr    *sessions.Manager
	kv     stats.KV
	scores *storage.Store
	config core.RuntimeConfig
	conn   *connState
	logger *log.Logger

	current    flow
	menu       MenuModel
	gameModel  *GameModel
	scoreboard ScoreboardModel
	quitting   bool
}

// NewSessionModel creates a new session model. conn may be nil.
func NewSessionModel(mgr *sessions.Manager, kv stats.KV, scores *storage.Store, cfg core.RuntimeConfig, conn *connState, logger *log.Logger) SessionModel {
	if conn == nil {
		conn = &connState{}
	}
	return SessionModel{
		mgr:    mgr,
		kv:     kv,
		scores: scores,
		config: cfg,
		conn:   conn,
		logger: logger,
		menu:   NewMenuModel(kv, cfg, logger),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.current {
	case flowGame:
		return m.updateGame(msg)
	case flowScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

// The embedded models end with tea.Quit when they want to hand over, so
// their commands are filtered here and never reach the program.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		m.scoreboard = NewScoreboardModel(m.scores, m.config.ScreenW, m.config.ScreenH)
		m.current = flowScores
		return m, m.scoreboard.Init()

	case m.menu.Selected() != nil:
		sel := *m.menu.Selected()
		gm, err := NewGameModel(m.mgr, sel, m.menu.Customization(), m.config)
		if err != nil {
			m.logger.Error("cannot open table", "variant", sel.Variant, "err", err)
			m.menu = NewMenuModel(m.kv, m.config, m.logger)
			return m, nil
		}
		m.conn.track(gm.token)
		m.gameModel = &gm
		m.current = flowGame
		return m, m.gameModel.Init()
	}

	return m, cmd
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.gameModel.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.gameModel = &gameModel
	}

	if m.gameModel.BackToMenu() {
		m.conn.track("")
		m.gameModel = nil
		m.current = flowMenu
		m.menu = NewMenuModel(m.kv, m.config, m.logger)
		return m, m.menu.Init()
	}

	if m.gameModel.IsQuitting() {
		m.conn.track("")
		m.quitting = true
		return m, tea.Quit
	}

	return m, cmd
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scoreboard.Update(msg)
	if sb, ok := newModel.(ScoreboardModel); ok {
		m.scoreboard = sb
	}

	switch {
	case m.scoreboard.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.scoreboard.IsGoingBack():
		m.current = flowMenu
		m.menu = NewMenuModel(m.kv, m.config, m.logger)
		return m, m.menu.Init()
	}
	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.current {
	case flowGame:
		return m.gameModel.View()
	case flowScores:
		return m.scoreboard.View()
	default:
		return m.menu.View()
	}
}
