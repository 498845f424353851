package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/stop-yourself/internal/core"
)

func TestTickInterval(t *testing.T) {
	tests := []struct {
		rate int
		want time.Duration
	}{
		{60, time.Second / 60},
		{30, time.Second / 30},
		{0, time.Second / defaultTickRate},
		{-5, time.Second / defaultTickRate},
	}
	for _, tc := range tests {
		if got := tickInterval(tc.rate); got != tc.want {
			t.Errorf("tickInterval(%d) = %v, expected %v", tc.rate, got, tc.want)
		}
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(4, 2)
	s.DrawTextColored(0, 0, "@^", core.ColorBrightCyan)
	s.DrawTextColored(0, 1, "==", core.Color(200))

	out := RenderScreen(s)
	if lines := strings.Count(out, "\n"); lines != 1 {
		t.Errorf("line breaks = %d, expected 1", lines)
	}
	for _, want := range []string{"@^", "=="} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered screen is missing %q:\n%q", want, out)
		}
	}
}
