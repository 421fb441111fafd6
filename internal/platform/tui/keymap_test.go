package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/capnchainsaw/WastelandSurvivor/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name     string
		msg      tea.KeyMsg
		want     core.Action
		wantQuit bool
	}{
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{"arrow down", tea.KeyMsg{Type: tea.KeyDown}, core.ActionDown, false},
		{"arrow left", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{"arrow right", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{"w", runeKey('w'), core.ActionUp, false},
		{"a", runeKey('a'), core.ActionLeft, false},
		{"s", runeKey('s'), core.ActionDown, false},
		{"d", runeKey('d'), core.ActionRight, false},
		{"vim k", runeKey('k'), core.ActionUp, false},
		{"vim h", runeKey('h'), core.ActionLeft, false},
		{"vim j", runeKey('j'), core.ActionDown, false},
		{"vim l", runeKey('l'), core.ActionRight, false},
		{"space waits", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionWait, false},
		{"dot waits", runeKey('.'), core.ActionWait, false},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{"esc", tea.KeyMsg{Type: tea.KeyEscape}, core.ActionBack, false},
		{"pause", runeKey('p'), core.ActionPause, false},
		{"restart", runeKey('r'), core.ActionRestart, false},
		{"q quits", runeKey('q'), core.ActionQuit, true},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runeKey('z'), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, quit := km.MapKey(tt.msg)
			if got != tt.want || quit != tt.wantQuit {
				t.Errorf("MapKey(%q) = (%v, %v), want (%v, %v)", tt.msg.String(), got, quit, tt.want, tt.wantQuit)
			}
		})
	}
}

func TestMapKeyToFrame(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	km.MapKeyToFrame(runeKey('d'), &frame)
	km.MapKeyToFrame(runeKey('z'), &frame)
	km.MapKeyToFrame(tea.KeyMsg{Type: tea.KeyEnter}, &frame)

	if len(frame.Actions) != 2 || frame.Actions[0] != core.ActionRight || frame.Actions[1] != core.ActionConfirm {
		t.Errorf("frame = %v, want [right confirm]", frame.Actions)
	}

	if !km.MapKeyToFrame(runeKey('q'), &frame) {
		t.Error("q should report a quit")
	}
	if frame.Has(core.ActionQuit) {
		t.Error("quit is handled by the model, not queued for the game")
	}
}
