package core

import "fmt"

// ValidationError describes a broken board invariant.
type ValidationError struct {
	Code    string
	Cell    Coord
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Cell, e.Message)
}

// Validate checks the invariants of the world's board:
//   - border cells are impassable, interior cells passable
//   - exactly one exit, at (width-2, height-2)
//   - every occupant's cell matches the cell holding it
//   - no occupant is held by two cells or has been removed
//   - the player stands on a passable cell, alone once idle
func (w *World) Validate() error {
	b := w.board
	if b == nil {
		return nil
	}

	seen := make(map[*Occupant]bool)
	exits := 0
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			c := C(x, y)
			cell := b.Cell(c)
			if b.IsBorder(c) == cell.Passable {
				return ValidationError{Code: "PASSABILITY", Cell: c, Message: fmt.Sprintf("passable=%v on border=%v", cell.Passable, b.IsBorder(c))}
			}

			o := cell.Occupant
			if o == nil {
				continue
			}
			if seen[o] {
				return ValidationError{Code: "DUPLICATE", Cell: c, Message: fmt.Sprintf("%s held by two cells", o.Kind)}
			}
			seen[o] = true
			if o.Cell != c {
				return ValidationError{Code: "BACKREF", Cell: c, Message: fmt.Sprintf("%s thinks it is at %s", o.Kind, o.Cell)}
			}
			if o.removed {
				return ValidationError{Code: "REMOVED", Cell: c, Message: fmt.Sprintf("removed %s still on board", o.Kind)}
			}
			if o.Kind == KindExit {
				exits++
				if c != b.ExitCell() {
					return ValidationError{Code: "EXIT", Cell: c, Message: "exit away from its corner"}
				}
			}
		}
	}
	if exits != 1 {
		return ValidationError{Code: "EXIT", Cell: b.ExitCell(), Message: fmt.Sprintf("found %d exits", exits)}
	}

	if cell := b.Cell(w.player.Cell()); cell == nil || !cell.Passable {
		return ValidationError{Code: "PLAYER", Cell: w.player.Cell(), Message: "player off the walkable board"}
	}
	if w.player.State() == PlayerIdle {
		if o := b.OccupantAt(w.player.Cell()); o != nil {
			return ValidationError{Code: "PLAYER", Cell: w.player.Cell(), Message: fmt.Sprintf("idle player shares a cell with %s", o.Kind)}
		}
	}
	return nil
}
