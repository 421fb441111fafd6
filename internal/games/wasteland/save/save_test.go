package save

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/capnchainsaw/WastelandSurvivor/internal/games/wasteland/core"
)

const scenarioSave = `<?xml version="1.0" encoding="UTF-8"?>
<Game>
  <Food>5</Food>
  <Turn>12</Turn>
  <Board>
    <Width>20</Width>
    <Height>15</Height>
    <Wall>
      <X>3</X>
      <Y>4</Y>
      <Health>2</Health>
    </Wall>
    <Level>1</Level>
  </Board>
  <Player>
    <Strength>2</Strength>
    <Defense>1</Defense>
    <CurrentStamina>1</CurrentStamina>
    <Stamina>1</Stamina>
    <X>1</X>
    <Y>1</Y>
  </Player>
</Game>
`

func TestDecodeScenario(t *testing.T) {
	w, err := Unmarshal([]byte(scenarioSave), core.DefaultParams(), core.WithSeed(1))
	if err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if w.Turn() != 12 {
		t.Errorf("Turn() = %d, expected 12", w.Turn())
	}
	if w.Food() != 5 {
		t.Errorf("Food() = %d, expected 5", w.Food())
	}
	if w.Board().Width() != 20 || w.Board().Height() != 15 || w.Level() != 1 {
		t.Errorf("board %dx%d level %d, expected 20x15 level 1", w.Board().Width(), w.Board().Height(), w.Level())
	}
	wall := w.Board().OccupantAt(core.C(3, 4))
	if wall == nil || wall.Kind != core.KindWall || wall.Health != 2 {
		t.Errorf("occupant at (3,4) = %+v, expected wall with health 2", wall)
	}
	if p := w.Player(); p.Strength() != 2 || p.Cell() != core.C(1, 1) {
		t.Errorf("player strength %d at %s, expected 2 at (1,1)", p.Strength(), p.Cell())
	}
	if exit := w.Board().OccupantAt(core.C(18, 13)); exit == nil || exit.Kind != core.KindExit {
		t.Error("exit should be rebuilt at (18,13)")
	}
	if err := w.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

type occupantKey struct {
	kind  core.Kind
	cell  core.Coord
	value int
}

func occupantSet(b *core.Board) map[occupantKey]bool {
	set := make(map[occupantKey]bool)
	for _, o := range b.Occupants() {
		if o.Kind == core.KindExit {
			continue
		}
		v := o.PrefabIndex
		if o.Kind == core.KindWall || o.Kind == core.KindEnemy {
			v = o.Health
		}
		set[occupantKey{o.Kind, o.Cell, v}] = true
	}
	return set
}

func TestRoundTrip(t *testing.T) {
	for seed := int64(1); seed <= 15; seed++ {
		w, err := core.NewWorld(core.DefaultParams(), core.WithSeed(seed))
		if err != nil {
			t.Fatalf("NewWorld() error = %v", err)
		}
		if err := w.Start(); err != nil {
			t.Fatalf("Start() error = %v", err)
		}
		dirs := []core.Dir{core.DirUp, core.DirRight, core.DirUp, core.DirRight, core.DirDown}
		for i := 0; i < int(seed)*3 && !w.Player().IsGameOver(); i++ {
			w.Player().AttemptMove(dirs[i%len(dirs)])
			w.Player().CompleteMove()
		}
		if w.Player().IsGameOver() {
			continue
		}

		data, err := Marshal(w)
		if err != nil {
			t.Fatalf("Marshal() error = %v", err)
		}
		got, err := Unmarshal(data, core.DefaultParams(), core.WithSeed(seed+100))
		if err != nil {
			t.Fatalf("seed %d: Unmarshal() error = %v\n%s", seed, err, data)
		}

		want := w.Snapshot()
		if s := got.Snapshot(); s != want {
			t.Errorf("seed %d: snapshot after load = %+v, expected %+v", seed, s, want)
		}

		a, b := occupantSet(w.Board()), occupantSet(got.Board())
		if len(a) != len(b) {
			t.Errorf("seed %d: %d occupants after load, expected %d", seed, len(b), len(a))
		}
		for k := range a {
			if !b[k] {
				t.Errorf("seed %d: lost occupant %+v", seed, k)
			}
		}
		if got.Turns().Subscribers() != 1+got.Board().CountKind(core.KindEnemy) {
			t.Errorf("seed %d: loaded enemies are not on the turn clock", seed)
		}
	}
}

func TestEncodeFormat(t *testing.T) {
	w, err := Unmarshal([]byte(scenarioSave), core.DefaultParams())
	if err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	data, err := Marshal(w)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != scenarioSave {
		t.Errorf("Marshal() =\n%s\nexpected\n%s", data, scenarioSave)
	}
}

func TestEncodeSkipsBorderAndExit(t *testing.T) {
	w, err := Unmarshal([]byte(scenarioSave), core.DefaultParams())
	if err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	g := w.Generator()
	g.AddFood(w.Board(), core.C(5, 2), 1)
	g.AddEnemy(w.Board(), core.C(2, 5), 4)
	g.AddItem(w.Board(), core.C(4, 2), 2)

	data, err := Marshal(w)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	doc := string(data)
	if strings.Contains(doc, "Exit") {
		t.Error("exit must not be written")
	}
	// Scan order: row 2 (item then food), row 4 (wall), row 5 (enemy).
	order := []string{"<Item>", "<Food>\n", "<Wall>", "<Enemy>"}
	last := -1
	for _, tag := range order {
		i := strings.Index(doc, tag)
		if i < 0 || i < last {
			t.Fatalf("%s out of scan order in\n%s", tag, doc)
		}
		last = i
	}
}

func TestDecodeStopsAtLevel(t *testing.T) {
	doc := strings.Replace(scenarioSave, "<Level>1</Level>",
		"<Level>3</Level><Food><X>5</X><Y>5</Y><Index>0</Index></Food><Width>99</Width>", 1)

	w, err := Unmarshal([]byte(doc), core.DefaultParams())
	if err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if w.Level() != 3 {
		t.Errorf("Level() = %d, expected 3", w.Level())
	}
	if w.Board().OccupantAt(core.C(5, 5)) != nil {
		t.Error("elements after Level must not be read")
	}
	if w.Food() != 5 || w.Board().Width() != 20 {
		t.Errorf("food=%d width=%d, trailing Board content leaked", w.Food(), w.Board().Width())
	}
}

func TestDecodeCollisionSkipped(t *testing.T) {
	doc := strings.Replace(scenarioSave, "<Level>",
		"<Enemy><X>3</X><Y>4</Y><Health>9</Health></Enemy><Level>", 1)

	w, err := Unmarshal([]byte(doc), core.DefaultParams())
	if err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if o := w.Board().OccupantAt(core.C(3, 4)); o.Kind != core.KindWall {
		t.Errorf("occupant at (3,4) = %s, the first placement should win", o.Kind)
	}
	if w.Board().CountKind(core.KindEnemy) != 0 {
		t.Error("colliding enemy should be skipped")
	}
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not xml", "this is not a save"},
		{"empty", ""},
		{"wrong root", "<Saved><Food>1</Food></Saved>"},
		{"bad integer", strings.Replace(scenarioSave, "<Food>5</Food>", "<Food>five</Food>", 1)},
		{"missing food", strings.Replace(scenarioSave, "<Food>5</Food>", "", 1)},
		{"missing level", strings.Replace(scenarioSave, "<Level>1</Level>", "", 1)},
		{"missing player", scenarioSave[:strings.Index(scenarioSave, "<Player>")] + "</Game>"},
		{"height before width", strings.Replace(scenarioSave, "<Width>20</Width>", "", 1)},
		{"wall without health", strings.Replace(scenarioSave, "<Health>2</Health>", "", 1)},
		{"wall without x", strings.Replace(scenarioSave, "<X>3</X>", "", 1)},
		{"wall off board", strings.Replace(scenarioSave, "<X>3</X>", "<X>40</X>", 1)},
		{"bad food index", strings.Replace(scenarioSave, "<Level>", "<Food><X>2</X><Y>2</Y><Index>7</Index></Food><Level>", 1)},
		{"player without y", strings.Replace(scenarioSave, "<Y>1</Y>\n  </Player>", "</Player>", 1)},
		{"player in border", strings.Replace(scenarioSave, "<X>1</X>\n    <Y>1</Y>", "<X>0</X>\n    <Y>1</Y>", 1)},
		{"truncated", scenarioSave[:len(scenarioSave)/2]},
		{"board wraps int", strings.Replace(strings.Replace(scenarioSave, "<Width>20</Width>", "<Width>4294967296</Width>", 1), "<Height>15</Height>", "<Height>4294967296</Height>", 1)},
		{"board too large", strings.Replace(strings.Replace(scenarioSave, "<Width>20</Width>", "<Width>100000</Width>", 1), "<Height>15</Height>", "<Height>100000</Height>", 1)},
		{"player on wall", strings.Replace(scenarioSave, "<X>1</X>\n    <Y>1</Y>", "<X>3</X>\n    <Y>4</Y>", 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := Unmarshal([]byte(tt.doc), core.DefaultParams())
			if !errors.Is(err, ErrMalformedSave) {
				t.Errorf("Unmarshal() error = %v, expected ErrMalformedSave", err)
			}
			if w != nil {
				t.Error("a failed load must not return a world")
			}
		})
	}
}

func TestDecodeStarvedSave(t *testing.T) {
	doc := strings.Replace(scenarioSave, "<Food>5</Food>", "<Food>0</Food>", 1)
	w, err := Unmarshal([]byte(doc), core.DefaultParams(), core.WithSeed(1))
	if err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !w.Player().IsGameOver() {
		t.Error("a save without food should load as game over")
	}
	events := w.DrainEvents()
	if len(events) != 1 || events[0].Kind != core.EventGameOver {
		t.Errorf("events = %v, expected a single game over", events)
	}
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "save.xml")
	fs, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}

	if _, err := fs.Load(); !errors.Is(err, ErrNoSave) {
		t.Errorf("Load() on empty store error = %v, expected ErrNoSave", err)
	}
	if fs.Exists() {
		t.Error("Exists() should be false before saving")
	}

	w, err := Unmarshal([]byte(scenarioSave), core.DefaultParams())
	if err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if err := Write(fs, w); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	loaded, err := Read(fs, core.DefaultParams())
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if loaded.Snapshot() != w.Snapshot() {
		t.Errorf("Read() snapshot = %+v, expected %+v", loaded.Snapshot(), w.Snapshot())
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the save file, found %d entries", len(entries))
	}

	if err := fs.Remove(); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if err := fs.Remove(); err != nil {
		t.Errorf("second Remove() error = %v", err)
	}
	if fs.Exists() {
		t.Error("Exists() should be false after Remove")
	}
}

func TestMetaOf(t *testing.T) {
	w, err := Unmarshal([]byte(scenarioSave), core.DefaultParams())
	if err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if m := MetaOf(w); m != (Meta{Level: 1, Turn: 12, Food: 5}) {
		t.Errorf("MetaOf() = %+v", m)
	}

	var buf bytes.Buffer
	if err := Encode(&buf, w); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if !strings.HasPrefix(buf.String(), "<?xml") {
		t.Error("document should start with an XML declaration")
	}
}
