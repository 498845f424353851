package tui

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/stop-yourself/internal/core"
	"github.com/vovakirdan/stop-yourself/internal/registry"
	"github.com/vovakirdan/stop-yourself/internal/storage"
)

func TestHistoryStrip(t *testing.T) {
	tests := []struct {
		recent []string
		want   string
	}{
		{nil, "no rounds yet"},
		{[]string{"defended"}, "D"},
		{[]string{"breached", "defended", "died", "survived"}, "SxD!"},
		{[]string{"unknown"}, "?"},
	}
	for _, tc := range tests {
		if got := historyStrip(tc.recent); got != tc.want {
			t.Errorf("historyStrip(%v) = %q, expected %q", tc.recent, got, tc.want)
		}
	}
}

func TestLoadMenuItemReadsHistory(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	for i, outcome := range []string{"survived", "defended", "defended", "breached"} {
		if _, err := store.SaveRound("stopyourself", core.RoundResult{Round: i + 1, Outcome: outcome}); err != nil {
			t.Fatalf("SaveRound() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("stopyourself", 2); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	item := loadMenuItem(store, registry.GameInfo{ID: "stopyourself", Title: "Stop Yourself"})
	if item.Best != 2 || item.Played != 1 {
		t.Errorf("best=%d played=%d, expected 2 and 1", item.Best, item.Played)
	}
	if got := historyStrip(item.Recent); got != "SDD!" {
		t.Errorf("history = %q, expected %q", got, "SDD!")
	}

	want := "best 2 in 1 games  |  defended 2  breached 1  |  SDD!"
	if got := item.summary(); got != want {
		t.Errorf("summary() = %q, expected %q", got, want)
	}
}

func TestMenuViewShowsHighlightedHistory(t *testing.T) {
	m := MenuModel{
		width: 100,
		items: []MenuItem{
			{GameID: "a", Title: "Classic", Best: 4, Played: 2, Recent: []string{"defended"}},
			{GameID: "b", Title: "Endless"},
		},
	}

	view := m.View()
	if !strings.Contains(view, "> Classic  (best 4)") {
		t.Errorf("view is missing the highlighted entry:\n%s", view)
	}
	if !strings.Contains(view, "best 4 in 2 games") {
		t.Errorf("view is missing the highlighted history:\n%s", view)
	}

	m.cursor = 1
	if !strings.Contains(m.View(), "not played yet") {
		t.Error("an unplayed variant should say so")
	}
}

func TestLoadMenuItemWithoutStore(t *testing.T) {
	item := loadMenuItem(nil, registry.GameInfo{ID: "x", Title: "X"})
	if item.summary() != "not played yet" {
		t.Errorf("summary() = %q, expected %q", item.summary(), "not played yet")
	}
}
