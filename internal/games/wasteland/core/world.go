package core

import (
	"io"

	"github.com/charmbracelet/log"
)

// World owns one game session: the board, the player, the turn clock and
// the food supply. Nothing in it is safe for concurrent use.
type World struct {
	params Params
	rng    Rand
	tiles  TileLayer
	logger *log.Logger

	board  *Board
	player *Player
	turns  *TurnScheduler
	food   int
	events []Event
}

// Option configures a World.
type Option func(*World)

// WithRand sets the randomness source.
func WithRand(r Rand) Option {
	return func(w *World) { w.rng = r }
}

// WithSeed seeds a new math/rand source.
func WithSeed(seed int64) Option {
	return func(w *World) { w.rng = NewRand(seed) }
}

// WithTiles sets the tile layer the world decorates.
func WithTiles(t TileLayer) Option {
	return func(w *World) { w.tiles = t }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(w *World) { w.logger = l }
}

// NewWorld creates an empty world. Call Start to generate the first level,
// or let a save decoder fill it in.
func NewWorld(p Params, opts ...Option) (*World, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	w := &World{params: p}
	for _, opt := range opts {
		opt(w)
	}
	if w.rng == nil {
		w.rng = NewRand(0)
	}
	if w.tiles == nil {
		w.tiles = NewTileMap()
	}
	if w.logger == nil {
		w.logger = log.New(io.Discard)
	}
	w.player = newPlayer(w)
	w.ResetTurns(1)
	return w, nil
}

// Params returns the rules of the world.
func (w *World) Params() Params { return w.params }

// Rand returns the randomness source.
func (w *World) Rand() Rand { return w.rng }

// Board returns the current board, or nil before the first level exists.
func (w *World) Board() *Board { return w.board }

// Player returns the player.
func (w *World) Player() *Player { return w.player }

// Turns returns the turn scheduler.
func (w *World) Turns() *TurnScheduler { return w.turns }

// Tiles returns the tile layer.
func (w *World) Tiles() TileLayer { return w.tiles }

// Turn returns the current turn count.
func (w *World) Turn() int { return w.turns.TurnCount() }

// Food returns the food supply.
func (w *World) Food() int { return w.food }

// SetFood sets the food supply without triggering game over.
func (w *World) SetFood(food int) { w.food = food }

// Level returns the current level, 0 before a board exists.
func (w *World) Level() int {
	if w.board == nil {
		return 0
	}
	return w.board.Level()
}

// Start generates level 1 and spawns a fresh player.
func (w *World) Start() error {
	return w.Restart()
}

// Restart throws the current session away and begins again at level 1.
func (w *World) Restart() error {
	w.ClearLevel()
	w.ResetTurns(1)
	w.food = w.params.StartingFood
	w.events = w.events[:0]

	b, err := w.Generator().GenerateBoard(1)
	if err != nil {
		return err
	}
	w.board = b
	w.player.spawn(C(1, 1))
	w.logger.Debug("new game", "width", b.Width(), "height", b.Height(), "food", w.food)
	return nil
}

// ResetTurns replaces the turn scheduler with one starting at start and
// subscribes the world's own food handler first.
func (w *World) ResetTurns(start int) {
	w.turns = NewTurnScheduler(start)
	w.turns.Subscribe(w.onTurn)
}

// AllocateBoard replaces the board with an empty width x height board of
// the current level, tiles and exit included. Save decoders use it.
func (w *World) AllocateBoard(width, height int) *Board {
	w.ClearLevel()
	w.board = w.Generator().NewBoard(width, height, 0)
	return w.board
}

// Generator returns a generator bound to this world.
func (w *World) Generator() *Generator {
	return &Generator{
		Params:  w.params,
		Rand:    w.rng,
		Tiles:   w.tiles,
		Spawned: w.spawned,
	}
}

// ClearLevel removes every occupant and tile of the current board.
func (w *World) ClearLevel() {
	if w.board == nil {
		return
	}
	for _, o := range w.board.Occupants() {
		o.destroy(w)
	}
	w.tiles.ClearTiles()
}

// NextLevel clears the board and generates the next, deeper one.
func (w *World) NextLevel() {
	level := w.Level() + 1
	w.ClearLevel()
	w.player.MoveTo(C(1, 1), true)

	b, err := w.Generator().GenerateBoard(level)
	if err != nil {
		// Params were validated by NewWorld, so this cannot happen.
		w.logger.Error("generate level", "level", level, "err", err)
		return
	}
	w.board = b
	w.emit(Event{Kind: EventLevelAdvanced, Amount: level})
	w.logger.Info("level advanced", "level", level, "turn", w.Turn(), "food", w.food)
}

// AdjustFood adds delta to the food supply. Running out ends the game.
func (w *World) AdjustFood(delta int) {
	w.food += delta
	if w.food <= 0 && !w.player.IsGameOver() {
		w.player.SetGameOver(true)
		w.emit(Event{Kind: EventGameOver, Amount: w.Level()})
		w.logger.Info("game over", "level", w.Level(), "turn", w.Turn())
	}
}

// DrainEvents returns and forgets the events raised since the last call.
func (w *World) DrainEvents() []Event {
	if len(w.events) == 0 {
		return nil
	}
	out := make([]Event, len(w.events))
	copy(out, w.events)
	w.events = w.events[:0]
	return out
}

func (w *World) emit(e Event) {
	w.events = append(w.events, e)
}

// onTurn is the food clock: every turn costs one food and every refresh
// interval scatters new food.
func (w *World) onTurn(turn int) {
	if w.player.IsGameOver() {
		return
	}
	w.AdjustFood(-1)
	if n := w.params.FoodRefreshInterval; n > 0 && turn%n == 0 && w.board != nil {
		w.Generator().GenerateFood(w.board)
	}
}

// spawned hooks new enemies into the turn clock.
func (w *World) spawned(o *Occupant) {
	if o.Kind == KindEnemy {
		o.sub = w.turns.Subscribe(func(int) { o.takeTurn(w) })
	}
}

// Snapshot is a read-only summary of the world used by tests and the UI.
type Snapshot struct {
	Level          int
	Turn           int
	Food           int
	Width          int
	Height         int
	Player         Coord
	Strength       int
	Defense        int
	Stamina        int
	CurrentStamina int
	State          PlayerState
	Enemies        int
	Walls          int
	FoodItems      int
	Items          int
}

// Snapshot returns the current summary.
func (w *World) Snapshot() Snapshot {
	p := w.player
	s := Snapshot{
		Level:          w.Level(),
		Turn:           w.Turn(),
		Food:           w.food,
		Player:         p.Cell(),
		Strength:       p.Strength(),
		Defense:        p.Defense(),
		Stamina:        p.Stamina(),
		CurrentStamina: p.CurrentStamina(),
		State:          p.State(),
	}
	if w.board != nil {
		s.Width = w.board.Width()
		s.Height = w.board.Height()
		s.Enemies = w.board.CountKind(KindEnemy)
		s.Walls = w.board.CountKind(KindWall)
		s.FoodItems = w.board.CountKind(KindFood)
		s.Items = w.board.CountKind(KindItem)
	}
	return s
}
