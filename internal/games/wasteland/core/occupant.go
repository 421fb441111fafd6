package core

// Kind discriminates the occupant variants.
type Kind uint8

const (
	KindExit Kind = iota
	KindFood
	KindItem
	KindWall
	KindEnemy
)

// String returns the kind name. It matches the element names of the save
// format.
func (k Kind) String() string {
	switch k {
	case KindExit:
		return "Exit"
	case KindFood:
		return "Food"
	case KindItem:
		return "Item"
	case KindWall:
		return "Wall"
	case KindEnemy:
		return "Enemy"
	default:
		return "Unknown"
	}
}

// Occupant is anything standing in a cell other than the player.
// Fields that do not apply to a Kind stay zero.
type Occupant struct {
	Kind        Kind
	Cell        Coord
	PrefabIndex int

	// Wall and Enemy
	Health int
	// Enemy
	Damage int
	// Food
	FoodAmount int
	// Item
	StrengthAmount int
	DefenseAmount  int
	StaminaAmount  int

	originalTile Tile
	currentTile  int
	sub          *Subscription
	removed      bool
}

// Removed reports whether the occupant has left the board.
func (o *Occupant) Removed() bool {
	return o.removed
}

// ObstacleVariant returns the cosmetic variant a wall currently shows.
func (o *Occupant) ObstacleVariant() int {
	return o.currentTile
}

// PlayerAttacks reports whether bumping into the occupant is an attack.
func (o *Occupant) PlayerAttacks() bool {
	return o.Kind == KindWall || o.Kind == KindEnemy
}

// PlayerWantsToEnter resolves the player trying to step into the
// occupant's cell. It returns true when the player may enter.
func (o *Occupant) PlayerWantsToEnter(w *World, strength int) bool {
	switch o.Kind {
	case KindWall:
		return o.hitWall(w, strength)
	case KindEnemy:
		return o.hitEnemy(w, strength)
	default:
		return true
	}
}

// PlayerEntered applies the occupant's effect once the player has arrived
// in its cell.
func (o *Occupant) PlayerEntered(w *World) {
	if o.removed {
		return
	}
	switch o.Kind {
	case KindFood:
		o.destroy(w)
		w.AdjustFood(o.FoodAmount)
		w.emit(Event{Kind: EventFoodEaten, Cell: o.Cell, Amount: o.FoodAmount})
	case KindItem:
		o.destroy(w)
		p := w.Player()
		p.AdjustStrength(o.StrengthAmount)
		p.AdjustDefense(o.DefenseAmount)
		p.AdjustStamina(o.StaminaAmount, 0)
		w.emit(Event{Kind: EventItemPicked, Cell: o.Cell})
	case KindExit:
		w.NextLevel()
	}
}

func (o *Occupant) strike(w *World, strength int) int {
	o.Health -= 1 + Range(w.rng, 0, strength)
	return o.Health
}

func (o *Occupant) hitWall(w *World, strength int) bool {
	if o.strike(w, strength) > 0 {
		n := w.params.ObstacleTiles
		if n > 1 {
			v := Range(w.rng, 0, n-1)
			if v >= o.currentTile {
				v++
			}
			o.currentTile = v
			w.tiles.SetTile(o.Cell, Tile{Kind: TileObstacle, Variant: v})
		}
		return false
	}
	w.tiles.SetTile(o.Cell, o.originalTile)
	o.destroy(w)
	return true
}

func (o *Occupant) hitEnemy(w *World, strength int) bool {
	if o.strike(w, strength) > 0 {
		return false
	}
	o.destroy(w)
	return true
}

// destroy takes the occupant off the board and out of the turn cycle.
func (o *Occupant) destroy(w *World) {
	if o.removed {
		return
	}
	w.board.Remove(o)
	if o.sub != nil {
		w.turns.Unsubscribe(o.sub)
		o.sub = nil
	}
	o.removed = true
}
