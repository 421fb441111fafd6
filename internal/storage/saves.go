package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/capnchainsaw/WastelandSurvivor/internal/games/wasteland/save"
)

// SaveInfo describes one stored save slot.
type SaveInfo struct {
	Slot      string
	Level     int
	Turn      int
	Food      int
	Size      int
	UpdatedAt time.Time
}

// PutSave stores data in slot, replacing what was there.
func (s *Store) PutSave(slot string, data []byte, meta save.Meta) error {
	_, err := s.db.Exec(
		`INSERT INTO saves (slot, data, level, turn, food, updated_at)
		 VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(slot) DO UPDATE SET
		   data = excluded.data,
		   level = excluded.level,
		   turn = excluded.turn,
		   food = excluded.food,
		   updated_at = CURRENT_TIMESTAMP`,
		slot, data, meta.Level, meta.Turn, meta.Food,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot store save %q: %w", slot, err)
	}
	return nil
}

// GetSave returns the data of slot, or save.ErrNoSave.
func (s *Store) GetSave(slot string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRow("SELECT data FROM saves WHERE slot = ?", slot).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, save.ErrNoSave
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot load save %q: %w", slot, err)
	}
	return data, nil
}

// DeleteSave removes slot. A missing slot is not an error.
func (s *Store) DeleteSave(slot string) error {
	if _, err := s.db.Exec("DELETE FROM saves WHERE slot = ?", slot); err != nil {
		return fmt.Errorf("storage: cannot delete save %q: %w", slot, err)
	}
	return nil
}

// ListSaves lists every slot, most recently updated first.
func (s *Store) ListSaves() ([]SaveInfo, error) {
	rows, err := s.db.Query(
		`SELECT slot, level, turn, food, length(data), updated_at
		 FROM saves
		 ORDER BY updated_at DESC, slot ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query saves: %w", err)
	}
	defer rows.Close()

	var infos []SaveInfo
	for rows.Next() {
		var info SaveInfo
		var updatedAt any
		if err := rows.Scan(&info.Slot, &info.Level, &info.Turn, &info.Food, &info.Size, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		info.UpdatedAt = parseTime(updatedAt)
		infos = append(infos, info)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return infos, nil
}

// Slot is one save slot of a Store. It implements save.Store.
type Slot struct {
	store *Store
	name  string
}

// Slot returns the save slot called name.
func (s *Store) Slot(name string) *Slot {
	return &Slot{store: s, name: name}
}

// Name returns the slot name.
func (sl *Slot) Name() string { return sl.name }

// Load returns the saved game, or save.ErrNoSave.
func (sl *Slot) Load() ([]byte, error) {
	return sl.store.GetSave(sl.name)
}

// Store replaces the saved game.
func (sl *Slot) Store(data []byte, meta save.Meta) error {
	return sl.store.PutSave(sl.name, data, meta)
}

// Remove deletes the saved game.
func (sl *Slot) Remove() error {
	return sl.store.DeleteSave(sl.name)
}

var _ save.Store = (*Slot)(nil)
