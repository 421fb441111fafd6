package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/capnchainsaw/WastelandSurvivor/internal/core"
	"github.com/capnchainsaw/WastelandSurvivor/internal/storage"
)

// Game is what the terminal loop drives.
type Game interface {
	ID() string
	Title() string
	Reset(cfg core.RuntimeConfig)
	Step(in core.InputFrame) core.StepResult
	Render(dst *core.Screen)
	State() core.GameState
	// Close is called once when the session ends and persists progress.
	Close() error
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       Game
	screen     *core.Screen
	store      *storage.Store
	player     string
	config     core.RuntimeConfig
	keys       *KeyMapper
	logger     *log.Logger
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool // user pressed quit
	exited     bool // the game asked to exit
	runSaved   bool // run recorded for the current game over
	err        error
}

// NewModel creates a new Bubble Tea model for the given game. Runs are
// recorded in store under player; store may be nil.
func NewModel(game Game, store *storage.Store, player string, cfg core.RuntimeConfig, logger *log.Logger) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		player:     player,
		config:     cfg,
		keys:       NewKeyMapper(),
		logger:     logger,
		inputFrame: core.NewInputFrame(),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	// Note: gameState will be set on first tick (value receiver limitation)

	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.Finished() {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey queues the mapped action for the next tick.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		m.closeGame()
		return m, tea.Quit
	}
	return m, nil
}

// handleResize processes window resize events. The game keeps its state
// and lays itself out on the next render.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick processes animation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	// Record the run on game over (once)
	if m.gameState.GameOver && !m.runSaved {
		m.recordRun()
		m.runSaved = true
	}
	if !m.gameState.GameOver {
		m.runSaved = false
	}

	if m.gameState.Exit {
		m.exited = true
		m.closeGame()
		return m, tea.Quit
	}

	return m, tickCmd(m.config.TickRate)
}

func (m *Model) recordRun() {
	if m.store == nil {
		return
	}
	id, err := m.store.SaveRun(storage.Run{
		Player: m.player,
		Level:  m.gameState.Score,
		Turns:  m.gameState.Turn,
		Seed:   m.config.Seed,
	})
	if err != nil {
		m.logger.Error("record run", "err", err)
		return
	}
	m.logger.Info("run recorded", "run", id, "player", m.player, "level", m.gameState.Score, "turns", m.gameState.Turn)
}

func (m *Model) closeGame() {
	if err := m.game.Close(); err != nil {
		m.logger.Error("close game", "err", err)
		m.err = err
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".wasteland", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.Finished() {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// Finished reports whether the game loop has ended.
func (m Model) Finished() bool {
	return m.quitting || m.exited
}

// IsQuitting returns true if the user asked to leave entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// State returns the last state reported by the game.
func (m Model) State() core.GameState {
	return m.gameState
}

// Err returns the error raised while closing the game, if any.
func (m Model) Err() error {
	return m.err
}

// Run starts the Bubble Tea program for game and returns its final state.
func Run(game Game, store *storage.Store, player string, cfg core.RuntimeConfig, logger *log.Logger) (core.GameState, error) {
	model := NewModel(game, store, player, cfg, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return core.GameState{}, err
	}
	m, ok := final.(Model)
	if !ok {
		return core.GameState{}, nil
	}
	return m.State(), m.Err()
}
