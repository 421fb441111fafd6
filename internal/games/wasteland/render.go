package wasteland

import (
	"fmt"

	"github.com/capnchainsaw/WastelandSurvivor/internal/core"
	wcore "github.com/capnchainsaw/WastelandSurvivor/internal/games/wasteland/core"
)

const (
	hudHeight = 2
	cellWidth = 2 // terminal cells are roughly twice as tall as wide
)

type glyph struct {
	r     rune
	color core.Color
	solid bool // fill both columns
}

var (
	groundGlyphs = []glyph{
		{'.', core.ColorGray, false},
		{',', core.ColorBrown, false},
		{'·', core.ColorGray, false},
		{'\'', core.ColorBrown, false},
	}
	wallGlyphs = []glyph{
		{'█', core.ColorGray, true},
		{'▓', core.ColorGray, true},
	}
	obstacleGlyphs = []glyph{
		{'▒', core.ColorBrown, true},
		{'░', core.ColorBrown, true},
		{'#', core.ColorOrange, true},
	}
	exitGlyph = glyph{'>', core.ColorBrightGreen, false}

	foodGlyphs = []glyph{
		{'*', core.ColorGreen, false},
		{'%', core.ColorBrightGreen, false},
	}
	itemGlyphs = []glyph{
		{'!', core.ColorBrightCyan, false},
		{']', core.ColorCyan, false},
		{'+', core.ColorBrightCyan, false},
	}
	enemyGlyph  = glyph{'Z', core.ColorRed, false}
	playerGlyph = glyph{'@', core.ColorBrightYellow, false}
	deadGlyph   = glyph{'x', core.ColorBrightRed, false}
)

func pick(set []glyph, variant int) glyph {
	if variant < 0 {
		variant = -variant
	}
	return set[variant%len(set)]
}

// layout maps board cells to screen cells. Board y grows upward, screen
// y grows downward.
type layout struct {
	offX, offY int
	height     int
}

func (g *Game) layout(dst *core.Screen) (layout, bool) {
	b := g.world.Board()
	if b == nil {
		return layout{}, false
	}
	w, h := b.Width()*cellWidth, b.Height()
	availH := dst.Height() - hudHeight - 1
	if w > dst.Width() || h > availH {
		return layout{}, false
	}
	return layout{
		offX:   (dst.Width() - w) / 2,
		offY:   hudHeight + (availH-h)/2,
		height: h,
	}, true
}

// CellToScreen returns the screen position of the left column of c.
func (l layout) CellToScreen(c wcore.Coord) (x, y int) {
	return l.offX + c.X*cellWidth, l.offY + l.height - 1 - c.Y
}

func (l layout) draw(dst *core.Screen, c wcore.Coord, gl glyph) {
	x, y := l.CellToScreen(c)
	dst.SetColored(x, y, gl.r, gl.color)
	if gl.solid {
		dst.SetColored(x+1, y, gl.r, gl.color)
	} else {
		dst.Set(x+1, y, ' ')
	}
}

// Render draws the HUD, the board and any open menu.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.world == nil {
		return
	}

	g.renderHUD(dst)

	l, ok := g.layout(dst)
	if !ok {
		g.renderOverlay(dst, []string{"Window too small", "Resize to continue"}, -1)
		return
	}
	g.renderBoard(dst, l)

	if g.status != "" {
		dst.DrawTextCenteredColored(dst.Height()-1, g.status, core.ColorYellow)
	}
	if g.menu.open {
		g.renderMenu(dst)
	}
}

func (g *Game) renderHUD(dst *core.Screen) {
	w := g.world
	p := w.Player()

	foodColor := core.ColorBrightWhite
	if w.Food() <= 10 {
		foodColor = core.ColorBrightRed
	}
	food := fmt.Sprintf(" Food: %d", w.Food())
	dst.DrawTextColored(0, 0, food, foodColor)

	rest := fmt.Sprintf("  Turn: %d  Level: %d  STR %d  DEF %d  STA %d/%d",
		w.Turn(), w.Level(), p.Strength(), p.Defense(), p.CurrentStamina(), p.Stamina())
	dst.DrawText(len([]rune(food)), 0, rest)

	dst.DrawHLine(0, 1, dst.Width(), '─')
}

func (g *Game) renderBoard(dst *core.Screen, l layout) {
	b := g.world.Board()
	tiles := g.world.Tiles()

	for y := range b.Height() {
		for x := range b.Width() {
			c := wcore.C(x, y)
			if gl, ok := tileGlyph(tiles.GetTile(c)); ok {
				l.draw(dst, c, gl)
			}
		}
	}

	for _, o := range b.Occupants() {
		if gl, ok := occupantGlyph(o); ok {
			l.draw(dst, o.Cell, gl)
		}
	}

	p := g.world.Player()
	at := p.Cell()
	if p.State() == wcore.PlayerMoving && g.moveTicks*2 < g.moveFrames {
		at = g.moveFrom
	}
	if p.IsGameOver() {
		l.draw(dst, at, deadGlyph)
	} else {
		l.draw(dst, at, playerGlyph)
	}
}

func tileGlyph(t wcore.Tile) (glyph, bool) {
	switch t.Kind {
	case wcore.TileGround:
		return pick(groundGlyphs, t.Variant), true
	case wcore.TileWall:
		return pick(wallGlyphs, t.Variant), true
	case wcore.TileObstacle:
		return pick(obstacleGlyphs, t.Variant), true
	case wcore.TileExit:
		return exitGlyph, true
	default:
		return glyph{}, false
	}
}

// occupantGlyph returns the glyph drawn over the tile. Walls and the exit
// are shown by their tiles.
func occupantGlyph(o *wcore.Occupant) (glyph, bool) {
	switch o.Kind {
	case wcore.KindEnemy:
		return enemyGlyph, true
	case wcore.KindFood:
		return pick(foodGlyphs, o.PrefabIndex), true
	case wcore.KindItem:
		return pick(itemGlyphs, o.PrefabIndex), true
	default:
		return glyph{}, false
	}
}

func (g *Game) renderMenu(dst *core.Screen) {
	lines := []string{g.menu.title, ""}
	if g.menu.title == titleGameOver {
		lines = append(lines, fmt.Sprintf("Survived %d turns, level %d", g.world.Turn(), g.world.Level()), "")
	}
	first := len(lines)
	for _, it := range g.menu.items() {
		lines = append(lines, g.menu.label(it))
	}
	g.renderOverlay(dst, lines, first+g.menu.selected)
}

// renderOverlay draws a centered box holding lines. The line at index
// selected is highlighted; pass -1 for none.
func (g *Game) renderOverlay(dst *core.Screen, lines []string, selected int) {
	width := 0
	for _, line := range lines {
		width = max(width, len([]rune(line)))
	}
	width += 8
	height := len(lines) + 2

	screen := core.NewRect(0, 0, dst.Width(), dst.Height())
	box := screen.Centered(width, height)
	dst.DrawRect(box, ' ')
	dst.DrawBox(box, core.ColorCyan)

	for i, line := range lines {
		y := box.Y + 1 + i
		switch {
		case i == 0:
			dst.DrawTextCenteredColored(y, line, core.ColorBrightYellow)
		case i == selected:
			dst.DrawTextCenteredColored(y, "> "+line+" <", core.ColorBrightWhite)
		default:
			dst.DrawTextCentered(y, line)
		}
	}
}
