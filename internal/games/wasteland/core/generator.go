package core

// Generator builds boards and scatters occupants onto them.
// Every random placement silently does nothing when its target cell is
// impassable or taken; there are no retries.
type Generator struct {
	Params Params
	Rand   Rand
	Tiles  TileLayer

	// Spawned is called for every occupant that lands on the board.
	Spawned func(o *Occupant)
}

// GenerateBoard rolls the size of a board for level and fills it.
// Placement order is fixed: one item, enemies, walls, then food.
func (g *Generator) GenerateBoard(level int) (*Board, error) {
	if err := g.Params.Validate(); err != nil {
		return nil, err
	}

	p := g.Params
	width := Range(g.Rand, p.MinWidth, p.MaxWidth+min(level, 10))
	height := Range(g.Rand, p.MinHeight, p.MaxHeight+min(level, 10))
	b := g.NewBoard(width, height, level)

	g.AddItem(b,
		C(Range(g.Rand, 2, width-2), Range(g.Rand, 2, height-2)),
		Range(g.Rand, 0, len(p.Items)))

	enemyCap := 5
	if level <= 3 {
		enemyCap = max(level, 2)
	}
	enemies := Range(g.Rand, 1, enemyCap)
	for i := 0; i < enemies; i++ {
		g.AddEnemy(b, C(Range(g.Rand, 2, width-2), Range(g.Rand, 2, height-2)), -1)
	}

	walls := Range(g.Rand,
		min(p.MinWidth, p.MinHeight),
		max(p.MaxWidth, p.MaxHeight)+min(level, 5))
	for i := 0; i < walls; i++ {
		g.AddWall(b, C(Range(g.Rand, 2, width-1), Range(g.Rand, 2, height-1)), -1)
	}

	g.GenerateFood(b)
	return b, nil
}

// NewBoard allocates a width x height board, lays its tiles row by row
// and places the exit at (width-2, height-2).
func (g *Generator) NewBoard(width, height, level int) *Board {
	b := NewBoard(width, height, level)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := C(x, y)
			if b.IsBorder(c) {
				g.Tiles.SetTile(c, Tile{Kind: TileWall, Variant: Range(g.Rand, 0, g.Params.WallTiles)})
			} else {
				g.Tiles.SetTile(c, Tile{Kind: TileGround, Variant: Range(g.Rand, 0, g.Params.GroundTiles)})
			}
		}
	}

	exit := &Occupant{Kind: KindExit}
	b.Place(exit, b.ExitCell())
	g.Tiles.SetTile(exit.Cell, Tile{Kind: TileExit})
	g.spawned(exit)
	return b
}

// GenerateFood scatters the configured number of food placements.
func (g *Generator) GenerateFood(b *Board) {
	for i := 0; i < g.Params.FoodGenerated; i++ {
		c := C(Range(g.Rand, 2, b.Width()-1), Range(g.Rand, 2, b.Height()-1))
		g.AddFood(b, c, Range(g.Rand, 0, len(g.Params.Foods)))
	}
}

// AddItem places an item built from prefab at c.
func (g *Generator) AddItem(b *Board, c Coord, prefab int) *Occupant {
	if !b.CanPlace(c) || prefab < 0 || prefab >= len(g.Params.Items) {
		return nil
	}
	it := g.Params.Items[prefab]
	o := &Occupant{
		Kind:           KindItem,
		PrefabIndex:    prefab,
		StrengthAmount: it.Strength,
		DefenseAmount:  it.Defense,
		StaminaAmount:  it.Stamina,
	}
	return g.place(b, o, c)
}

// AddFood places food built from prefab at c.
func (g *Generator) AddFood(b *Board, c Coord, prefab int) *Occupant {
	if !b.CanPlace(c) || prefab < 0 || prefab >= len(g.Params.Foods) {
		return nil
	}
	o := &Occupant{
		Kind:        KindFood,
		PrefabIndex: prefab,
		FoodAmount:  g.Params.Foods[prefab].Amount,
	}
	return g.place(b, o, c)
}

// AddEnemy places an enemy at c. A negative health rolls the level-scaled
// default; a loaded enemy passes its saved health.
func (g *Generator) AddEnemy(b *Board, c Coord, health int) *Occupant {
	if !b.CanPlace(c) {
		return nil
	}
	if health < 0 {
		health = Range(g.Rand, g.Params.EnemyHealthMin, g.Params.EnemyHealthMax) +
			Range(g.Rand, 0, b.Level())
	}
	o := &Occupant{
		Kind:   KindEnemy,
		Health: health,
		Damage: g.Params.EnemyDamage,
	}
	return g.place(b, o, c)
}

// AddWall places a destructible wall at c and dresses its cell with an
// obstacle tile, remembering the tile underneath. A negative health rolls
// the default.
func (g *Generator) AddWall(b *Board, c Coord, health int) *Occupant {
	if !b.CanPlace(c) {
		return nil
	}
	if health < 0 {
		health = Range(g.Rand, g.Params.WallHealthMin, g.Params.WallHealthMax)
	}
	o := &Occupant{
		Kind:         KindWall,
		Health:       health,
		originalTile: g.Tiles.GetTile(c),
		currentTile:  Range(g.Rand, 0, g.Params.ObstacleTiles),
	}
	g.Tiles.SetTile(c, Tile{Kind: TileObstacle, Variant: o.currentTile})
	return g.place(b, o, c)
}

func (g *Generator) place(b *Board, o *Occupant, c Coord) *Occupant {
	if !b.Place(o, c) {
		return nil
	}
	g.spawned(o)
	return o
}

func (g *Generator) spawned(o *Occupant) {
	if g.Spawned != nil {
		g.Spawned(o)
	}
}
