package core

import "testing"

// seqRand replays scripted values; once exhausted it always returns 0.
type seqRand struct {
	vals []int
	i    int
}

func (r *seqRand) Intn(n int) int {
	if r.i >= len(r.vals) {
		return 0
	}
	v := r.vals[r.i] % n
	r.i++
	return v
}

// newTestWorld builds a world with an empty width x height level-1 board and
// a fresh player at (1,1). Every random roll returns 0 until script is used.
func newTestWorld(t *testing.T, width, height int) *World {
	t.Helper()
	w, err := NewWorld(DefaultParams(), WithRand(&seqRand{}))
	if err != nil {
		t.Fatalf("NewWorld() error = %v", err)
	}
	w.AllocateBoard(width, height).SetLevel(1)
	w.food = w.params.StartingFood
	w.player.spawn(C(1, 1))
	return w
}

// script makes the next random rolls of w return vals, then 0.
func script(w *World, vals ...int) {
	w.rng = &seqRand{vals: vals}
}

func mustValidate(t *testing.T, w *World) {
	t.Helper()
	if err := w.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
}
