package core

// takeTurn is the enemy's reaction to a turn tick: attack an adjacent
// player, otherwise step toward them.
func (o *Occupant) takeTurn(w *World) {
	if o.removed {
		return
	}
	target := w.player.Cell()
	dx := target.X - o.Cell.X
	dy := target.Y - o.Cell.Y

	if (dx == 0 && abs(dy) == 1) || (dy == 0 && abs(dx) == 1) {
		o.attack(w)
		return
	}

	switch {
	case dx > 0:
		o.stepTo(w, o.Cell.Step(DirRight))
	case dx < 0:
		o.stepTo(w, o.Cell.Step(DirLeft))
	case dy > 0:
		o.stepTo(w, o.Cell.Step(DirUp))
	case dy < 0:
		o.stepTo(w, o.Cell.Step(DirDown))
	}
}

func (o *Occupant) attack(w *World) {
	total := o.Damage - Range(w.rng, 0, w.Level())
	amount := total
	if w.params.DamageMode == DamageLegacy {
		amount = -o.Damage
	}
	w.emit(Event{Kind: EventEnemyAttack, Cell: o.Cell, Amount: total})
	w.player.TakeDamage(amount)
}

// stepTo moves the enemy into dst when it is passable and either empty or
// holding food, which the enemy eats.
func (o *Occupant) stepTo(w *World, dst Coord) {
	cell := w.board.Cell(dst)
	if cell == nil || !cell.Passable {
		return
	}
	if other := cell.Occupant; other != nil {
		if other.Kind != KindFood {
			return
		}
		other.destroy(w)
	}
	w.board.Move(o, dst)
}
