// Package save reads and writes Wasteland Survivor saved games.
//
// A save is an XML document holding the food supply, the turn count, the
// board occupants and the player. Border cells and the exit are not
// written; they are rebuilt from the board size on load.
package save

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"

	"github.com/capnchainsaw/WastelandSurvivor/internal/games/wasteland/core"
)

// Encode writes w as an indented XML document.
func Encode(out io.Writer, w *core.World) error {
	if w.Board() == nil {
		return fmt.Errorf("save: world has no board")
	}
	if _, err := io.WriteString(out, xml.Header); err != nil {
		return fmt.Errorf("save: write header: %w", err)
	}

	e := &encoder{enc: xml.NewEncoder(out)}
	e.enc.Indent("", "  ")

	e.start("Game")
	e.value("Food", w.Food())
	e.value("Turn", w.Turn())
	e.board(w.Board())
	e.player(w.Player())
	e.end("Game")

	if e.err == nil {
		e.err = e.enc.Flush()
	}
	if e.err == nil {
		_, e.err = io.WriteString(out, "\n")
	}
	if e.err != nil {
		return fmt.Errorf("save: encode: %w", e.err)
	}
	return nil
}

// Marshal returns the XML encoding of w.
func Marshal(w *core.World) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, w); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// encoder keeps the first error so the element sequence reads linearly.
type encoder struct {
	enc *xml.Encoder
	err error
}

func (e *encoder) start(name string) {
	if e.err == nil {
		e.err = e.enc.EncodeToken(xml.StartElement{Name: xml.Name{Local: name}})
	}
}

func (e *encoder) end(name string) {
	if e.err == nil {
		e.err = e.enc.EncodeToken(xml.EndElement{Name: xml.Name{Local: name}})
	}
}

func (e *encoder) value(name string, v int) {
	if e.err == nil {
		e.err = e.enc.EncodeElement(v, xml.StartElement{Name: xml.Name{Local: name}})
	}
}

// board writes the interior occupants row by row, bottom to top.
func (e *encoder) board(b *core.Board) {
	e.start("Board")
	e.value("Width", b.Width())
	e.value("Height", b.Height())
	for y := 1; y < b.Height()-1; y++ {
		for x := 1; x < b.Width()-1; x++ {
			o := b.OccupantAt(core.C(x, y))
			if o == nil {
				continue
			}
			switch o.Kind {
			case core.KindWall, core.KindEnemy:
				e.start(o.Kind.String())
				e.value("X", x)
				e.value("Y", y)
				e.value("Health", o.Health)
				e.end(o.Kind.String())
			case core.KindFood, core.KindItem:
				e.start(o.Kind.String())
				e.value("X", x)
				e.value("Y", y)
				e.value("Index", o.PrefabIndex)
				e.end(o.Kind.String())
			}
		}
	}
	e.value("Level", b.Level())
	e.end("Board")
}

func (e *encoder) player(p *core.Player) {
	e.start("Player")
	e.value("Strength", p.Strength())
	e.value("Defense", p.Defense())
	e.value("CurrentStamina", p.CurrentStamina())
	e.value("Stamina", p.Stamina())
	e.value("X", p.Cell().X)
	e.value("Y", p.Cell().Y)
	e.end("Player")
}
