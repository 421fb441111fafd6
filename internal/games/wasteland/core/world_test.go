package core

import (
	"math/rand"
	"testing"
)

func TestWorldStart(t *testing.T) {
	w, err := NewWorld(DefaultParams(), WithSeed(99))
	if err != nil {
		t.Fatalf("NewWorld() error = %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	s := w.Snapshot()
	if s.Level != 1 || s.Turn != 1 || s.Food != 100 {
		t.Errorf("snapshot = %+v, expected level 1 turn 1 food 100", s)
	}
	if s.Player != C(1, 1) || s.Strength != 1 || s.Defense != 1 || s.Stamina != 1 || s.CurrentStamina != 1 {
		t.Errorf("player stats = %+v, expected fresh player at (1,1)", s)
	}
	if s.Enemies > 1 {
		t.Errorf("level 1 should have at most one enemy, got %d", s.Enemies)
	}
	mustValidate(t, w)
}

func TestWorldDeterministicBySeed(t *testing.T) {
	run := func() Snapshot {
		w, err := NewWorld(DefaultParams(), WithSeed(12345))
		if err != nil {
			t.Fatalf("NewWorld() error = %v", err)
		}
		if err := w.Start(); err != nil {
			t.Fatalf("Start() error = %v", err)
		}
		dirs := []Dir{DirUp, DirRight, DirRight, DirUp, DirLeft, DirDown, DirUp, DirRight}
		for i := 0; i < 40; i++ {
			w.Player().AttemptMove(dirs[i%len(dirs)])
			w.Player().CompleteMove()
		}
		return w.Snapshot()
	}

	if a, b := run(), run(); a != b {
		t.Errorf("same seed produced different worlds:\n%+v\n%+v", a, b)
	}
}

func TestFoodClock(t *testing.T) {
	w := newTestWorld(t, 10, 10)

	for i := 0; i < 13; i++ {
		w.Player().Wait()
	}
	if w.Turn() != 14 || w.Food() != 87 {
		t.Fatalf("turn=%d food=%d, expected 14 and 87", w.Turn(), w.Food())
	}
	if w.Board().CountKind(KindFood) != 0 {
		t.Fatal("no food should have spawned yet")
	}

	w.Player().Wait()

	if w.Turn() != 15 || w.Food() != 86 {
		t.Errorf("turn=%d food=%d, expected 15 and 86", w.Turn(), w.Food())
	}
	// Every scripted roll is 0, so all placements target (2,2).
	if w.Board().OccupantAt(C(2, 2)) == nil || w.Board().CountKind(KindFood) != 1 {
		t.Errorf("refresh should place food at (2,2), found %d food", w.Board().CountKind(KindFood))
	}
	mustValidate(t, w)
}

func TestRestartResetsSession(t *testing.T) {
	w, err := NewWorld(DefaultParams(), WithSeed(5))
	if err != nil {
		t.Fatalf("NewWorld() error = %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	for i := 0; i < 10; i++ {
		w.Player().Wait()
	}
	w.NextLevel()
	w.SetFood(0)
	w.Player().SetGameOver(true)

	if err := w.Restart(); err != nil {
		t.Fatalf("Restart() error = %v", err)
	}

	s := w.Snapshot()
	if s.Level != 1 || s.Turn != 1 || s.Food != 100 || s.State != PlayerIdle {
		t.Errorf("snapshot after restart = %+v", s)
	}
	if got := w.Turns().Subscribers(); got != 1+s.Enemies {
		t.Errorf("Subscribers() = %d, expected %d", got, 1+s.Enemies)
	}
	mustValidate(t, w)
}

func TestClearLevel(t *testing.T) {
	w := newTestWorld(t, 10, 10)
	g := w.Generator()
	g.AddEnemy(w.Board(), C(4, 4), 3)
	g.AddWall(w.Board(), C(5, 5), 3)

	w.ClearLevel()

	if n := len(w.Board().Occupants()); n != 0 {
		t.Errorf("%d occupants left after ClearLevel", n)
	}
	if w.Turns().Subscribers() != 1 {
		t.Errorf("Subscribers() = %d, expected only the world", w.Turns().Subscribers())
	}
	if w.Tiles().(*TileMap).Len() != 0 {
		t.Error("tiles should be cleared")
	}
}

// TestRandomPlayKeepsInvariants drives worlds with random input and checks
// the board after every step.
func TestRandomPlayKeepsInvariants(t *testing.T) {
	dirs := []Dir{DirUp, DirDown, DirLeft, DirRight}
	for seed := int64(1); seed <= 25; seed++ {
		w, err := NewWorld(DefaultParams(), WithSeed(seed))
		if err != nil {
			t.Fatalf("NewWorld() error = %v", err)
		}
		if err := w.Start(); err != nil {
			t.Fatalf("Start() error = %v", err)
		}
		input := rand.New(rand.NewSource(seed * 31))
		lastTurn := w.Turn()

		for step := 0; step < 400; step++ {
			if w.Player().IsGameOver() {
				if err := w.Restart(); err != nil {
					t.Fatalf("Restart() error = %v", err)
				}
				lastTurn = w.Turn()
			}

			if input.Intn(6) == 0 {
				w.Player().Wait()
			} else {
				w.Player().AttemptMove(dirs[input.Intn(len(dirs))])
				if err := w.Validate(); err != nil {
					t.Fatalf("seed %d step %d mid-move: %v", seed, step, err)
				}
				w.Player().CompleteMove()
			}

			if err := w.Validate(); err != nil {
				t.Fatalf("seed %d step %d: %v", seed, step, err)
			}
			if turn := w.Turn(); turn != lastTurn && turn != lastTurn+1 {
				t.Fatalf("seed %d step %d: turn jumped %d -> %d", seed, step, lastTurn, turn)
			}
			lastTurn = w.Turn()
			w.DrainEvents()
		}
	}
}
