package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/capnchainsaw/WastelandSurvivor/internal/games/wasteland/save"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveRun(Run{Player: "ada", Level: 3, Turns: 40}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	runs, err := store.TopRuns(10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 1 || runs[0].Player != "ada" {
		t.Errorf("runs after reopen = %+v", runs)
	}
}

func TestStoreRuns(t *testing.T) {
	store := openTestStore(t)

	inputs := []Run{
		{Player: "ada", Level: 2, Turns: 30},
		{Player: "bob", Level: 5, Turns: 80, Seed: 7},
		{Player: "ada", Level: 5, Turns: 120},
		{Level: 1, Turns: 12},
	}
	ids := map[string]bool{}
	for _, r := range inputs {
		id, err := store.SaveRun(r)
		if err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
		if id == "" || ids[id] {
			t.Fatalf("SaveRun() returned empty or duplicate id %q", id)
		}
		ids[id] = true
	}

	top, err := store.TopRuns(3)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("TopRuns(3) returned %d runs", len(top))
	}
	expected := []struct {
		player string
		level  int
		turns  int
	}{
		{"ada", 5, 120},
		{"bob", 5, 80},
		{"ada", 2, 30},
	}
	for i, e := range expected {
		if top[i].Player != e.player || top[i].Level != e.level || top[i].Turns != e.turns {
			t.Errorf("TopRuns()[%d] = %+v, expected %+v", i, top[i], e)
		}
		if top[i].CreatedAt.IsZero() {
			t.Errorf("TopRuns()[%d] has no creation time", i)
		}
	}
	if top[1].Seed != 7 {
		t.Errorf("seed = %d, expected 7", top[1].Seed)
	}

	adaRuns, err := store.RunsFor("ada", 0)
	if err != nil {
		t.Fatalf("RunsFor() failed: %v", err)
	}
	if len(adaRuns) != 2 || adaRuns[0].Level != 5 {
		t.Errorf("RunsFor(ada) = %+v, expected newest first", adaRuns)
	}

	local, err := store.RunsFor("local", 0)
	if err != nil || len(local) != 1 {
		t.Errorf("empty player should be stored as local, got %+v (%v)", local, err)
	}

	best, err := store.BestRun("bob")
	if err != nil || best == nil || best.Level != 5 {
		t.Errorf("BestRun(bob) = %+v (%v)", best, err)
	}
	none, err := store.BestRun("nobody")
	if err != nil || none != nil {
		t.Errorf("BestRun(nobody) = %+v (%v), expected nil", none, err)
	}

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Runs != 4 || stats.DeepestRun != 5 || stats.TotalTurns != 242 {
		t.Errorf("Stats() = %+v", stats)
	}

	if err := store.ClearRuns(); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}
	top, _ = store.TopRuns(10)
	if len(top) != 0 {
		t.Errorf("TopRuns() after clear returned %d runs", len(top))
	}
}

func TestStoreSaves(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.GetSave("ada"); !errors.Is(err, save.ErrNoSave) {
		t.Errorf("GetSave() on empty slot error = %v, expected ErrNoSave", err)
	}

	if err := store.PutSave("ada", []byte("<Game>one</Game>"), save.Meta{Level: 1, Turn: 5, Food: 90}); err != nil {
		t.Fatalf("PutSave() failed: %v", err)
	}
	if err := store.PutSave("ada", []byte("<Game>two</Game>"), save.Meta{Level: 2, Turn: 9, Food: 80}); err != nil {
		t.Fatalf("PutSave() overwrite failed: %v", err)
	}
	if err := store.PutSave("bob", []byte("<Game/>"), save.Meta{Level: 1, Turn: 1, Food: 100}); err != nil {
		t.Fatalf("PutSave() failed: %v", err)
	}

	data, err := store.GetSave("ada")
	if err != nil {
		t.Fatalf("GetSave() failed: %v", err)
	}
	if string(data) != "<Game>two</Game>" {
		t.Errorf("GetSave() = %q, expected the overwritten data", data)
	}

	infos, err := store.ListSaves()
	if err != nil {
		t.Fatalf("ListSaves() failed: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("ListSaves() returned %d slots, expected 2", len(infos))
	}
	for _, info := range infos {
		if info.Slot == "ada" && (info.Level != 2 || info.Turn != 9 || info.Food != 80 || info.Size != 16) {
			t.Errorf("ada slot info = %+v", info)
		}
	}

	if err := store.DeleteSave("ada"); err != nil {
		t.Fatalf("DeleteSave() failed: %v", err)
	}
	if err := store.DeleteSave("ada"); err != nil {
		t.Errorf("DeleteSave() of missing slot failed: %v", err)
	}
	if _, err := store.GetSave("ada"); !errors.Is(err, save.ErrNoSave) {
		t.Errorf("GetSave() after delete error = %v", err)
	}
}

func TestSlotImplementsSaveStore(t *testing.T) {
	store := openTestStore(t)
	var slot save.Store = store.Slot("carol")

	if _, err := slot.Load(); !errors.Is(err, save.ErrNoSave) {
		t.Errorf("Load() error = %v, expected ErrNoSave", err)
	}
	if err := slot.Store([]byte("x"), save.Meta{Level: 4}); err != nil {
		t.Fatalf("Store() failed: %v", err)
	}
	data, err := slot.Load()
	if err != nil || string(data) != "x" {
		t.Errorf("Load() = %q (%v)", data, err)
	}
	if err := slot.Remove(); err != nil {
		t.Fatalf("Remove() failed: %v", err)
	}
	if _, err := slot.Load(); !errors.Is(err, save.ErrNoSave) {
		t.Errorf("Load() after Remove error = %v", err)
	}
}
