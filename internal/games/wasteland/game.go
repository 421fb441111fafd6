// Package wasteland adapts the Wasteland Survivor simulation to the
// platform's Game contract: menus, movement animation, saving on exit and
// drawing the board into a core.Screen.
package wasteland

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/capnchainsaw/WastelandSurvivor/internal/config"
	"github.com/capnchainsaw/WastelandSurvivor/internal/core"
	wcore "github.com/capnchainsaw/WastelandSurvivor/internal/games/wasteland/core"
	"github.com/capnchainsaw/WastelandSurvivor/internal/games/wasteland/save"
)

// Options configures a Game.
type Options struct {
	Config config.WastelandConfig
	Saves  save.Store  // nil disables saving
	Logger *log.Logger // nil discards
}

// Game implements the platform game contract for Wasteland Survivor.
type Game struct {
	params     wcore.Params
	moveFrames int
	saves      save.Store
	logger     *log.Logger

	rt    core.RuntimeConfig
	world *wcore.World
	tick  uint64

	menu      menu
	moveFrom  wcore.Coord
	moveTicks int

	status      string
	statusTicks int

	over bool // game over already handled
	exit bool
}

// New creates a game from the given options. It fails when the
// configuration describes impossible boards.
func New(opts Options) (*Game, error) {
	params := ParamsFromConfig(opts.Config)
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("wasteland: %w", err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Game{
		params:     params,
		moveFrames: opts.Config.Rules.MoveFrames,
		saves:      opts.Saves,
		logger:     logger,
	}, nil
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "wasteland"
}

// Title returns the display name.
func (g *Game) Title() string {
	return titleStart
}

// World exposes the running simulation.
func (g *Game) World() *wcore.World {
	return g.world
}

// Reset starts a session. A stored game is resumed behind the start menu.
// Without one a new game starts, and a save that cannot be read is
// reported as "Failed to Load".
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.rt = cfg
	g.tick = 0
	g.moveTicks = 0
	g.status, g.statusTicks = "", 0
	g.over = false
	g.exit = false

	opts := []wcore.Option{wcore.WithSeed(cfg.Seed), wcore.WithLogger(g.logger)}

	failed := false
	if g.saves != nil {
		w, err := save.Read(g.saves, g.params, opts...)
		switch {
		case err == nil:
			g.world = w
			g.menu.show(titleStart, "Save & Exit", true)
			g.logger.Debug("save loaded", "level", w.Level(), "turn", w.Turn(), "food", w.Food())
			return
		case errors.Is(err, save.ErrNoSave):
		default:
			g.logger.Warn("failed to load save", "err", err)
			failed = true
		}
	}

	// Params were validated in New.
	w, _ := wcore.NewWorld(g.params, opts...)
	if err := w.Start(); err != nil {
		g.logger.Error("start game", "err", err)
	}
	g.world = w

	if failed {
		g.menu.show(titleFailed, "Exit", false)
	} else {
		g.menu.show(titleStart, "Exit", false)
	}
}

// Step advances the game by one animation tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	if g.statusTicks > 0 {
		g.statusTicks--
		if g.statusTicks == 0 {
			g.status = ""
		}
	}

	for _, a := range in.Actions {
		if g.exit {
			break
		}
		g.handle(a)
		g.checkGameOver()
	}
	if !g.exit {
		g.animate()
		g.checkGameOver()
	}
	g.collectEvents()

	return core.StepResult{State: g.State()}
}

func (g *Game) handle(a core.Action) {
	if a == core.ActionQuit {
		return
	}
	switch {
	case g.menu.open:
		g.handleMenu(a)
	case g.world.Player().IsGameOver():
		g.restart()
	default:
		g.handlePlay(a)
	}
}

func (g *Game) handleMenu(a core.Action) {
	switch a {
	case core.ActionUp:
		g.menu.move(-1)
	case core.ActionDown:
		g.menu.move(1)
	case core.ActionConfirm:
		g.choose(g.menu.current())
	case core.ActionRestart:
		g.restart()
	case core.ActionBack, core.ActionPause:
		if g.world.Player().IsGameOver() {
			g.restart()
			return
		}
		g.menu.hide()
	default:
		if g.world.Player().IsGameOver() {
			g.restart()
		}
	}
}

func (g *Game) handlePlay(a core.Action) {
	p := g.world.Player()
	switch a {
	case core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight:
		if p.State() != wcore.PlayerIdle {
			return
		}
		from := p.Cell()
		p.AttemptMove(directionOf(a))
		if p.State() == wcore.PlayerMoving {
			g.moveFrom = from
			g.moveTicks = 0
			if g.moveFrames <= 0 {
				p.CompleteMove()
			}
		}
	case core.ActionWait:
		p.Wait()
	case core.ActionBack, core.ActionPause:
		g.menu.show(titlePaused, "Save & Exit", true)
	case core.ActionRestart:
		g.restart()
	}
}

func (g *Game) choose(it menuItem) {
	switch it {
	case itemContinue:
		g.menu.hide()
	case itemNewGame:
		g.restart()
	case itemExit:
		g.exit = true
	}
}

func (g *Game) restart() {
	if err := g.world.Restart(); err != nil {
		g.logger.Error("restart", "err", err)
	}
	g.menu.hide()
	g.over = false
	g.moveTicks = 0
	g.status, g.statusTicks = "", 0
}

// animate finishes a movement once its frames have elapsed.
func (g *Game) animate() {
	p := g.world.Player()
	if p.State() != wcore.PlayerMoving {
		return
	}
	g.moveTicks++
	if g.moveTicks >= g.moveFrames {
		p.CompleteMove()
		g.moveTicks = 0
	}
}

func (g *Game) checkGameOver() {
	if g.over || !g.world.Player().IsGameOver() {
		return
	}
	g.over = true
	if g.saves != nil {
		if err := g.saves.Remove(); err != nil {
			g.logger.Warn("remove save", "err", err)
		}
	}
	g.menu.show(titleGameOver, "Exit", false)
}

// collectEvents turns simulation events into the status line. The game
// over message is never replaced by later events of the same step.
func (g *Game) collectEvents() {
	final := false
	for _, e := range g.world.DrainEvents() {
		if final {
			break
		}
		var msg string
		switch e.Kind {
		case wcore.EventPlayerAttack:
			msg = "You strike!"
		case wcore.EventPlayerHurt:
			msg = fmt.Sprintf("Ambushed! -%d food", e.Amount)
		case wcore.EventFoodEaten:
			msg = fmt.Sprintf("+%d food", e.Amount)
		case wcore.EventItemPicked:
			msg = "Found supplies"
		case wcore.EventLevelAdvanced:
			msg = fmt.Sprintf("Level %d", e.Amount)
		case wcore.EventGameOver:
			msg = fmt.Sprintf("You starved on level %d", e.Amount)
			final = true
		default:
			continue
		}
		g.setStatus(msg)
	}
}

func (g *Game) setStatus(msg string) {
	rate := g.rt.TickRate
	if rate <= 0 {
		rate = core.DefaultConfig().TickRate
	}
	g.status = msg
	g.statusTicks = rate * 2
}

// Close completes a pending move and saves the game unless it is over.
func (g *Game) Close() error {
	if g.world == nil {
		return nil
	}
	p := g.world.Player()
	if p.State() == wcore.PlayerMoving {
		p.CompleteMove()
	}
	if p.IsGameOver() || g.saves == nil {
		return nil
	}
	if err := save.Write(g.saves, g.world); err != nil {
		return fmt.Errorf("wasteland: save on exit: %w", err)
	}
	g.logger.Info("game saved", "level", g.world.Level(), "turn", g.world.Turn(), "food", g.world.Food())
	return nil
}

// State returns the current game state for the platform.
func (g *Game) State() core.GameState {
	if g.world == nil {
		return core.GameState{Exit: g.exit}
	}
	return core.GameState{
		Score:    g.world.Level(),
		Turn:     g.world.Turn(),
		GameOver: g.world.Player().IsGameOver(),
		Paused:   g.menu.open,
		Exit:     g.exit,
	}
}

func directionOf(a core.Action) wcore.Dir {
	switch a {
	case core.ActionUp:
		return wcore.DirUp
	case core.ActionDown:
		return wcore.DirDown
	case core.ActionLeft:
		return wcore.DirLeft
	case core.ActionRight:
		return wcore.DirRight
	default:
		return wcore.DirNone
	}
}
