package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/capnchainsaw/WastelandSurvivor/internal/core"
	"github.com/capnchainsaw/WastelandSurvivor/internal/games/wasteland/save"
	"github.com/capnchainsaw/WastelandSurvivor/internal/storage"
)

// GameFactory builds the game for one SSH session. saves is the player's
// save slot, nil when no database is available.
type GameFactory func(saves save.Store, logger *log.Logger) (Game, error)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.wasteland/host_key.
	HostKeyPath string

	// DBPath is the path to the runs and saves database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// TickRate is the animation rate of each session.
	TickRate int

	// NewGame builds a game per session.
	NewGame GameFactory

	// Logger receives server and session logs. Nil logs to stderr.
	Logger *log.Logger
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.wasteland/wasteland.db",
		IdleTimeout: 30 * time.Minute,
		TickRate:    30,
	}
}

// SSHServer wraps a Wish SSH server hosting one game per connection.
// Each user resumes from their own save slot.
type SSHServer struct {
	config   SSHServerConfig
	server   *ssh.Server
	store    *storage.Store
	logger   *log.Logger
	sessions sync.Map // session ID -> *liveGame
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	if cfg.NewGame == nil {
		return nil, errors.New("ssh: no game factory configured")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "wasteland-ssh",
		})
	}

	// Open storage
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open database, saves disabled", "error", err)
		store = nil
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".wasteland", "host_key")
	}

	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.saveMiddleware,
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
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
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
		Seed:     time.Now().UnixNano(),
	}

	live := &liveGame{}
	s.sessions.Store(sshSession.Context().SessionID(), live)

	model, err := NewSessionModel(s.store, s.config.NewGame, cfg, playerName(sshSession.User()), live, s.logger)
	if err != nil {
		s.logger.Error("cannot create game", "user", sshSession.User(), "error", err)
		return nil, nil
	}

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// saveMiddleware saves the game of a session whose connection dropped
// before the player left the game.
func (s *SSHServer) saveMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		next(sshSession)

		v, ok := s.sessions.LoadAndDelete(sshSession.Context().SessionID())
		if !ok {
			return
		}
		if err := v.(*liveGame).close(); err != nil {
			s.logger.Error("save on disconnect", "user", sshSession.User(), "error", err)
		}
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
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	// Setup signal handling for graceful shutdown
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

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)
	if s.store != nil {
		s.store.Close()
	}
	return err
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

func playerName(user string) string {
	if user == "" {
		return "anonymous"
	}
	return user
}

// liveGame tracks the game a session is running so it can be saved when
// the connection drops.
type liveGame struct {
	mu   sync.Mutex
	game Game
}

func (l *liveGame) set(g Game) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.game = g
}

func (l *liveGame) close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.game == nil {
		return nil
	}
	err := l.game.Close()
	l.game = nil
	return err
}

// SessionModel manages one SSH session: game -> scoreboard -> game.
type SessionModel struct {
	store      *storage.Store
	newGame    GameFactory
	config     core.RuntimeConfig
	player     string
	live       *liveGame
	logger     *log.Logger
	gameModel  *Model
	scoreboard *ScoreboardModel
	quitting   bool
}

// NewSessionModel creates a session model that starts in the game.
func NewSessionModel(store *storage.Store, newGame GameFactory, cfg core.RuntimeConfig, player string, live *liveGame, logger *log.Logger) (SessionModel, error) {
	m := SessionModel{
		store:   store,
		newGame: newGame,
		config:  cfg,
		player:  player,
		live:    live,
		logger:  logger.With("user", player),
	}
	if err := m.startGame(); err != nil {
		return SessionModel{}, err
	}
	return m, nil
}

func (m *SessionModel) startGame() error {
	var saves save.Store
	if m.store != nil {
		saves = m.store.Slot(m.player)
	}
	game, err := m.newGame(saves, m.logger)
	if err != nil {
		return err
	}
	gm := NewModel(game, m.store, m.player, m.config, m.logger)
	m.gameModel = &gm
	m.scoreboard = nil
	if m.live != nil {
		m.live.set(game)
	}
	return nil
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.gameModel.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	if m.scoreboard != nil {
		return m.updateScoreboard(msg)
	}
	return m.updateGame(msg)
}

// updateGame handles updates while playing.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.gameModel.Update(msg)
	if gm, ok := newModel.(Model); ok {
		m.gameModel = &gm
	}

	if !m.gameModel.Finished() {
		return m, cmd
	}

	// The game has closed itself
	if m.live != nil {
		m.live.set(nil)
	}
	if m.gameModel.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	sb := NewScoreboardModel(m.store, m.player, m.config.ScreenW, m.config.ScreenH)
	m.scoreboard = &sb
	return m, sb.Init()
}

// updateScoreboard handles updates on the scoreboard.
func (m SessionModel) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scoreboard.Update(msg)
	if sb, ok := newModel.(ScoreboardModel); ok {
		m.scoreboard = &sb
	}

	switch {
	case m.scoreboard.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.scoreboard.IsGoingBack():
		if err := m.startGame(); err != nil {
			m.logger.Error("cannot create game", "error", err)
			m.quitting = true
			return m, tea.Quit
		}
		return m, m.gameModel.Init()
	}
	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	if m.scoreboard != nil {
		return m.scoreboard.View()
	}
	return m.gameModel.View()
}
