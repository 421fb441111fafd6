package core

// TileKind is the cosmetic class of a tile.
type TileKind uint8

const (
	TileNone TileKind = iota
	TileGround
	TileWall
	TileObstacle
	TileExit
)

// String returns the tile kind name.
func (k TileKind) String() string {
	switch k {
	case TileGround:
		return "ground"
	case TileWall:
		return "wall"
	case TileObstacle:
		return "obstacle"
	case TileExit:
		return "exit"
	default:
		return "none"
	}
}

// Tile identifies one cosmetic tile: a kind and a variant within that kind.
// No simulation rule reads tiles.
type Tile struct {
	Kind    TileKind
	Variant int
}

// TileLayer is the cosmetic tile surface the simulation writes to.
type TileLayer interface {
	SetTile(c Coord, t Tile)
	GetTile(c Coord) Tile
	ClearTiles()
}

// TileMap is the in-memory TileLayer used by the terminal renderer.
type TileMap struct {
	tiles map[Coord]Tile
}

// NewTileMap creates an empty tile map.
func NewTileMap() *TileMap {
	return &TileMap{tiles: make(map[Coord]Tile)}
}

// SetTile sets the tile at c. Setting TileNone erases it.
func (m *TileMap) SetTile(c Coord, t Tile) {
	if t.Kind == TileNone {
		delete(m.tiles, c)
		return
	}
	m.tiles[c] = t
}

// GetTile returns the tile at c, or the zero Tile.
func (m *TileMap) GetTile(c Coord) Tile {
	return m.tiles[c]
}

// ClearTiles erases every tile.
func (m *TileMap) ClearTiles() {
	clear(m.tiles)
}

// Len returns the number of tiles set.
func (m *TileMap) Len() int {
	return len(m.tiles)
}
