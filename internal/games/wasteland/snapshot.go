package wasteland

import wcore "github.com/capnchainsaw/WastelandSurvivor/internal/games/wasteland/core"

// Snapshot captures the adapter and world state for tests and replays.
type Snapshot struct {
	Tick     uint64
	World    wcore.Snapshot
	MenuOpen bool
	Menu     string
	Selected string
	Status   string
}

// Snapshot returns the current snapshot.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Tick:     g.tick,
		MenuOpen: g.menu.open,
		Status:   g.status,
	}
	if g.world != nil {
		s.World = g.world.Snapshot()
	}
	if g.menu.open {
		s.Menu = g.menu.title
		s.Selected = g.menu.label(g.menu.current())
	}
	return s
}
