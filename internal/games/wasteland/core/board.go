package core

// Cell is one record of the board: whether it can be walked on and what,
// if anything, stands in it.
type Cell struct {
	Passable bool
	Occupant *Occupant
}

// Board is the grid of cells for the current level.
// Cells are stored row-major: index = y*width + x.
type Board struct {
	width  int
	height int
	level  int
	cells  []Cell
}

// NewBoard allocates a board whose border ring is impassable and whose
// interior is passable. It places no occupants.
func NewBoard(width, height, level int) *Board {
	b := &Board{
		width:  width,
		height: height,
		level:  level,
		cells:  make([]Cell, width*height),
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			b.cells[y*width+x].Passable = !b.IsBorder(C(x, y))
		}
	}
	return b
}

// Width returns the board width.
func (b *Board) Width() int { return b.width }

// Height returns the board height.
func (b *Board) Height() int { return b.height }

// Level returns the level this board was built for.
func (b *Board) Level() int { return b.level }

// SetLevel records the level of the board.
func (b *Board) SetLevel(level int) { b.level = level }

// InBounds returns true if c lies on the board.
func (b *Board) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < b.width && c.Y >= 0 && c.Y < b.height
}

// IsBorder returns true if c is on the outer ring.
func (b *Board) IsBorder(c Coord) bool {
	return c.X == 0 || c.Y == 0 || c.X == b.width-1 || c.Y == b.height-1
}

// ExitCell returns where the exit of this board lives.
func (b *Board) ExitCell() Coord {
	return C(b.width-2, b.height-2)
}

// Cell returns the record at c, or nil when c is off the board.
func (b *Board) Cell(c Coord) *Cell {
	if !b.InBounds(c) {
		return nil
	}
	return &b.cells[c.Y*b.width+c.X]
}

// OccupantAt returns the occupant at c, or nil.
func (b *Board) OccupantAt(c Coord) *Occupant {
	cell := b.Cell(c)
	if cell == nil {
		return nil
	}
	return cell.Occupant
}

// CanPlace reports whether an occupant may be put at c.
func (b *Board) CanPlace(c Coord) bool {
	cell := b.Cell(c)
	return cell != nil && cell.Passable && cell.Occupant == nil
}

// Place puts o at c. It returns false, leaving the board untouched, when
// the cell is missing, impassable or taken.
func (b *Board) Place(o *Occupant, c Coord) bool {
	if !b.CanPlace(c) {
		return false
	}
	b.cells[c.Y*b.width+c.X].Occupant = o
	o.Cell = c
	return true
}

// Move relocates o to dst. The source cell is cleared before the
// destination is written, so a cell never holds two occupants.
func (b *Board) Move(o *Occupant, dst Coord) bool {
	if !b.CanPlace(dst) {
		return false
	}
	if src := b.Cell(o.Cell); src != nil && src.Occupant == o {
		src.Occupant = nil
	}
	b.cells[dst.Y*b.width+dst.X].Occupant = o
	o.Cell = dst
	return true
}

// Remove clears o from its cell if it is still there.
func (b *Board) Remove(o *Occupant) {
	if cell := b.Cell(o.Cell); cell != nil && cell.Occupant == o {
		cell.Occupant = nil
	}
}

// Occupants returns every occupant in scan order: rows bottom to top,
// cells left to right.
func (b *Board) Occupants() []*Occupant {
	var out []*Occupant
	for i := range b.cells {
		if o := b.cells[i].Occupant; o != nil {
			out = append(out, o)
		}
	}
	return out
}

// CountKind returns how many occupants of kind k are on the board.
func (b *Board) CountKind(k Kind) int {
	n := 0
	for i := range b.cells {
		if o := b.cells[i].Occupant; o != nil && o.Kind == k {
			n++
		}
	}
	return n
}
