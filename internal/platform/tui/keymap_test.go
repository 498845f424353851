package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/stop-yourself/internal/core"
)

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")}, core.ActionRight, false},
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp, false},
		{tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}, core.ActionJump, false},
		{tea.KeyMsg{Type: tea.KeyEnter}, core.ActionPlace, false},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionPause, false},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")}, core.ActionRestart, false},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")}, core.ActionNone, false},
	}

	for _, tc := range tests {
		t.Run(tc.msg.String(), func(t *testing.T) {
			action, quit := km.MapKey(tc.msg)
			if action != tc.action || quit != tc.quit {
				t.Errorf("MapKey(%q) = (%v, %v), expected (%v, %v)", tc.msg.String(), action, quit, tc.action, tc.quit)
			}
		})
	}
}

func TestMapMouseToFrame(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	km.MapMouseToFrame(tea.MouseMsg{X: 4, Y: 7, Action: tea.MouseActionMotion}, &frame)
	if !frame.HasPointer || frame.Pointer != core.V(4.5, 7.5) {
		t.Errorf("Pointer = %v (has=%v), expected (4.5, 7.5)", frame.Pointer, frame.HasPointer)
	}
	if frame.Has(core.ActionPlace) {
		t.Error("motion should not place")
	}

	km.MapMouseToFrame(tea.MouseMsg{X: 1, Y: 2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}, &frame)
	if !frame.Has(core.ActionPlace) {
		t.Error("left click should place")
	}

	frame.Clear()
	if !frame.HasPointer {
		t.Error("Clear() should keep the pointer")
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()
	if got := km.MapKeyToMenuAction(tea.KeyMsg{Type: tea.KeyTab}); got != MenuActionScoreboard {
		t.Errorf("tab = %v, expected MenuActionScoreboard", got)
	}
	if got := km.MapKeyToMenuAction(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")}); got != MenuActionDown {
		t.Errorf("j = %v, expected MenuActionDown", got)
	}
}
