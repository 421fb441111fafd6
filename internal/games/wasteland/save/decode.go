package save

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/capnchainsaw/WastelandSurvivor/internal/games/wasteland/core"
)

// ErrMalformedSave is wrapped by every decoding failure.
var ErrMalformedSave = errors.New("malformed save")

// Decode reads a saved game into a new World built from p and opts.
// The document is scanned once, front to back. Occupants are placed as
// soon as their last field is read, with the generator's rule that a
// placement onto a taken cell is skipped. Board parsing stops at Level;
// anything after it inside Board is ignored.
//
// On error no World is returned.
func Decode(r io.Reader, p core.Params, opts ...core.Option) (*core.World, error) {
	w, err := core.NewWorld(p, opts...)
	if err != nil {
		return nil, fmt.Errorf("save: %w", err)
	}
	d := &decoder{dec: xml.NewDecoder(r), world: w}
	if err := d.game(); err != nil {
		return nil, err
	}
	return w, nil
}

// Unmarshal decodes a saved game held in memory.
func Unmarshal(data []byte, p core.Params, opts ...core.Option) (*core.World, error) {
	return Decode(bytes.NewReader(data), p, opts...)
}

type decoder struct {
	dec   *xml.Decoder
	world *core.World
	board *core.Board

	sawFood   bool
	sawTurn   bool
	sawLevel  bool
	sawPlayer bool
}

// boardSlack is how far a saved board may exceed the configured maximum.
const boardSlack = 10

// maxBoardCells bounds the allocation a save can ask for.
const maxBoardCells = 1 << 16

func malformed(format string, args ...any) error {
	return fmt.Errorf("save: %w: %s", ErrMalformedSave, fmt.Sprintf(format, args...))
}

func (d *decoder) token() (xml.Token, error) {
	tok, err := d.dec.Token()
	if err == io.EOF {
		return nil, malformed("unexpected end of document")
	}
	if err != nil {
		return nil, fmt.Errorf("save: %w: %w", ErrMalformedSave, err)
	}
	return tok, nil
}

func (d *decoder) skip() error {
	if err := d.dec.Skip(); err != nil {
		return fmt.Errorf("save: %w: %w", ErrMalformedSave, err)
	}
	return nil
}

// integer reads the text content of se as a base-10 integer.
func (d *decoder) integer(se xml.StartElement) (int, error) {
	var s string
	if err := d.dec.DecodeElement(&s, &se); err != nil {
		return 0, fmt.Errorf("save: %w: %s: %w", ErrMalformedSave, se.Name.Local, err)
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, malformed("%s: %q is not an integer", se.Name.Local, s)
	}
	return v, nil
}

func (d *decoder) game() error {
	for {
		tok, err := d.token()
		if err != nil {
			return err
		}
		if se, ok := tok.(xml.StartElement); ok {
			if se.Name.Local != "Game" {
				return malformed("root element is %s, expected Game", se.Name.Local)
			}
			break
		}
	}

	for {
		tok, err := d.token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if err := d.gameChild(t); err != nil {
				return err
			}
		case xml.EndElement:
			return d.finish()
		}
	}
}

func (d *decoder) gameChild(se xml.StartElement) error {
	switch se.Name.Local {
	case "Food":
		v, err := d.integer(se)
		if err != nil {
			return err
		}
		d.world.SetFood(v)
		d.sawFood = true
	case "Turn":
		v, err := d.integer(se)
		if err != nil {
			return err
		}
		if d.board != nil {
			return malformed("Turn after Board")
		}
		d.world.ResetTurns(v)
		d.sawTurn = true
	case "Board":
		if !d.sawTurn {
			return malformed("Board before Turn")
		}
		return d.readBoard()
	case "Player":
		if !d.sawLevel {
			return malformed("Player before a complete Board")
		}
		return d.readPlayer()
	default:
		return d.skip()
	}
	return nil
}

func (d *decoder) finish() error {
	switch {
	case !d.sawFood:
		return malformed("missing Food")
	case !d.sawTurn:
		return malformed("missing Turn")
	case d.board == nil:
		return malformed("missing Board")
	case !d.sawLevel:
		return malformed("missing Level")
	case !d.sawPlayer:
		return malformed("missing Player")
	}
	// A starved save loads as a finished run.
	d.world.AdjustFood(0)
	return nil
}

func (d *decoder) readBoard() error {
	width := 0
	for {
		tok, err := d.token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.EndElement:
			return malformed("Board ended before Level")
		case xml.StartElement:
			switch t.Name.Local {
			case "Width":
				if width, err = d.integer(t); err != nil {
					return err
				}
			case "Height":
				height, err := d.integer(t)
				if err != nil {
					return err
				}
				if width < 4 || height < 4 {
					return malformed("board %dx%d is too small or Height precedes Width", width, height)
				}
				p := d.world.Params()
				if width > p.MaxWidth+boardSlack || height > p.MaxHeight+boardSlack || width*height > maxBoardCells {
					return malformed("board %dx%d is too large", width, height)
				}
				d.board = d.world.AllocateBoard(width, height)
			case "Wall", "Enemy", "Food", "Item":
				if d.board == nil {
					return malformed("%s before board size", t.Name.Local)
				}
				if err := d.readOccupant(t); err != nil {
					return err
				}
			case "Level":
				level, err := d.integer(t)
				if err != nil {
					return err
				}
				if d.board == nil {
					return malformed("Level before board size")
				}
				if level < 1 {
					return malformed("level %d", level)
				}
				d.board.SetLevel(level)
				d.sawLevel = true
				return d.skip()
			default:
				if err := d.skip(); err != nil {
					return err
				}
			}
		}
	}
}

// readOccupant reads X and Y, then places the occupant when its final
// field (Health or Index) arrives.
func (d *decoder) readOccupant(se xml.StartElement) error {
	kind := se.Name.Local
	final := "Index"
	if kind == "Wall" || kind == "Enemy" {
		final = "Health"
	}

	var x, y int
	var haveX, haveY bool
	for {
		tok, err := d.token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.EndElement:
			return malformed("%s ended before %s", kind, final)
		case xml.StartElement:
			switch t.Name.Local {
			case "X":
				if x, err = d.integer(t); err != nil {
					return err
				}
				haveX = true
			case "Y":
				if y, err = d.integer(t); err != nil {
					return err
				}
				haveY = true
			case final:
				v, err := d.integer(t)
				if err != nil {
					return err
				}
				if !haveX || !haveY {
					return malformed("%s missing coordinates before %s", kind, final)
				}
				if err := d.place(kind, core.C(x, y), v); err != nil {
					return err
				}
				return d.skip()
			default:
				if err := d.skip(); err != nil {
					return err
				}
			}
		}
	}
}

func (d *decoder) place(kind string, c core.Coord, v int) error {
	if !d.board.InBounds(c) {
		return malformed("%s at %s is off the %dx%d board", kind, c, d.board.Width(), d.board.Height())
	}
	p := d.world.Params()
	g := d.world.Generator()
	switch kind {
	case "Wall":
		if v < 0 {
			return malformed("Wall health %d", v)
		}
		g.AddWall(d.board, c, v)
	case "Enemy":
		if v < 0 {
			return malformed("Enemy health %d", v)
		}
		g.AddEnemy(d.board, c, v)
	case "Food":
		if v < 0 || v >= len(p.Foods) {
			return malformed("Food index %d out of range", v)
		}
		g.AddFood(d.board, c, v)
	case "Item":
		if v < 0 || v >= len(p.Items) {
			return malformed("Item index %d out of range", v)
		}
		g.AddItem(d.board, c, v)
	}
	return nil
}

// readPlayer reads the player stats; the player is placed when Y is read.
func (d *decoder) readPlayer() error {
	fields := map[string]int{}
	for {
		tok, err := d.token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.EndElement:
			return malformed("Player ended before Y")
		case xml.StartElement:
			name := t.Name.Local
			switch name {
			case "Strength", "Defense", "CurrentStamina", "Stamina", "X":
				v, err := d.integer(t)
				if err != nil {
					return err
				}
				fields[name] = v
			case "Y":
				y, err := d.integer(t)
				if err != nil {
					return err
				}
				for _, f := range []string{"Strength", "Defense", "CurrentStamina", "Stamina", "X"} {
					if _, ok := fields[f]; !ok {
						return malformed("Player missing %s before Y", f)
					}
				}
				c := core.C(fields["X"], y)
				if cell := d.board.Cell(c); cell == nil || !cell.Passable {
					return malformed("player at %s is not on a walkable cell", c)
				}
				if o := d.board.OccupantAt(c); o != nil {
					return malformed("player at %s shares the cell with %s", c, o.Kind)
				}
				if fields["Stamina"] < 1 {
					return malformed("player stamina %d", fields["Stamina"])
				}
				d.world.Player().Restore(fields["Strength"], fields["Defense"],
					fields["CurrentStamina"], fields["Stamina"], c)
				d.sawPlayer = true
				return d.skip()
			default:
				if err := d.skip(); err != nil {
					return err
				}
			}
		}
	}
}
