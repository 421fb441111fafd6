package core

// PlayerState is the movement state of the player.
type PlayerState uint8

const (
	PlayerIdle PlayerState = iota
	PlayerMoving
	PlayerGameOver
)

// String returns the state name.
func (s PlayerState) String() string {
	switch s {
	case PlayerIdle:
		return "idle"
	case PlayerMoving:
		return "moving"
	case PlayerGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// MoveResult describes what an AttemptMove did.
type MoveResult struct {
	Resolved bool      // the target was a walkable cell and stamina was spent
	Approved bool      // the player is now moving into the target
	Attacked bool      // the target occupant was attacked
	Target   Coord     // the cell the move aimed at
	Occupant *Occupant // what stood in the target, if anything
}

// Player is the single player agent of a World.
type Player struct {
	world *World

	cell           Coord
	strength       int
	defense        int
	stamina        int
	currentStamina int
	state          PlayerState
}

func newPlayer(w *World) *Player {
	return &Player{world: w}
}

// Cell returns the player's cell. While moving this is the destination.
func (p *Player) Cell() Coord { return p.cell }

// Strength returns the attack strength.
func (p *Player) Strength() int { return p.strength }

// Defense returns the damage mitigation stat.
func (p *Player) Defense() int { return p.defense }

// Stamina returns the maximum stamina.
func (p *Player) Stamina() int { return p.stamina }

// CurrentStamina returns the stamina left before the next turn.
func (p *Player) CurrentStamina() int { return p.currentStamina }

// State returns the movement state.
func (p *Player) State() PlayerState { return p.state }

// IsGameOver reports whether the run has ended.
func (p *Player) IsGameOver() bool { return p.state == PlayerGameOver }

// SetGameOver ends or revives the player.
func (p *Player) SetGameOver(over bool) {
	if over {
		p.state = PlayerGameOver
	} else {
		p.state = PlayerIdle
	}
}

// spawn resets the stats of a fresh player and puts them at c.
func (p *Player) spawn(c Coord) {
	p.strength, p.defense = 0, 0
	p.stamina, p.currentStamina = 0, 0
	p.state = PlayerIdle
	p.AdjustStrength(1)
	p.AdjustDefense(1)
	p.AdjustStamina(1, 1)
	p.MoveTo(c, true)
}

// Restore sets every stat directly, as a save file describes them.
// Unlike AdjustStamina it never ticks the turn clock.
func (p *Player) Restore(strength, defense, currentStamina, stamina int, c Coord) {
	p.strength = strength
	p.defense = defense
	p.currentStamina = currentStamina
	p.stamina = stamina
	p.state = PlayerIdle
	p.MoveTo(c, true)
}

// MoveTo sets the player's cell. A non-immediate move leaves the player
// Moving until CompleteMove.
func (p *Player) MoveTo(c Coord, immediate bool) {
	p.cell = c
	if p.state == PlayerGameOver {
		return
	}
	if immediate {
		p.state = PlayerIdle
	} else {
		p.state = PlayerMoving
	}
}

// AttemptMove tries to step one cell in dir. Moves off the board or into
// impassable cells do nothing. Any other attempt spends one stamina, even
// when the occupant of the target blocks entry.
func (p *Player) AttemptMove(dir Dir) MoveResult {
	res := MoveResult{Target: p.cell.Step(dir)}
	if p.state != PlayerIdle || dir == DirNone {
		return res
	}

	w := p.world
	cell := w.board.Cell(res.Target)
	if cell == nil || !cell.Passable {
		return res
	}
	res.Resolved = true

	if o := cell.Occupant; o == nil {
		res.Approved = true
	} else {
		res.Occupant = o
		if o.PlayerAttacks() {
			res.Attacked = true
			w.emit(Event{Kind: EventPlayerAttack, Cell: res.Target})
		}
		res.Approved = o.PlayerWantsToEnter(w, p.strength)
	}
	if res.Approved {
		p.MoveTo(res.Target, false)
	}

	p.AdjustStamina(0, -1)
	return res
}

// CompleteMove ends a movement and triggers the destination occupant.
// It is the commit point for food, items and the exit.
func (p *Player) CompleteMove() {
	if p.state != PlayerMoving {
		return
	}
	p.state = PlayerIdle
	if o := p.world.board.OccupantAt(p.cell); o != nil {
		o.PlayerEntered(p.world)
	}
}

// Wait spends one stamina without moving.
func (p *Player) Wait() {
	if p.state != PlayerIdle {
		return
	}
	p.AdjustStamina(0, -1)
}

// AdjustStamina adds to the maximum and current stamina. When current
// stamina runs out a turn passes and it refills to the maximum.
func (p *Player) AdjustStamina(max, current int) {
	p.stamina += max
	p.currentStamina += current
	if p.currentStamina <= 0 {
		p.world.turns.Tick()
		p.currentStamina = p.stamina
	}
}

// AdjustStrength adds to strength.
func (p *Player) AdjustStrength(amount int) {
	p.strength += amount
}

// AdjustDefense adds to defense.
func (p *Player) AdjustDefense(amount int) {
	p.defense += amount
}

// TakeDamage converts an enemy hit into food loss after a random
// mitigation in [0, defense).
//
// In DamageFoodLoss mode amount is the food lost before mitigation. In
// DamageLegacy mode amount is signed and only a negative result after
// adding the mitigation costs food.
func (p *Player) TakeDamage(amount int) {
	w := p.world
	mitigation := Range(w.rng, 0, p.defense)

	var lost int
	if w.params.DamageMode == DamageLegacy {
		if net := amount + mitigation; net < 0 {
			lost = -net
		}
	} else {
		if net := amount - mitigation; net > 0 {
			lost = net
		}
	}
	if lost == 0 {
		return
	}
	w.emit(Event{Kind: EventPlayerHurt, Cell: p.cell, Amount: lost})
	w.AdjustFood(-lost)
}
