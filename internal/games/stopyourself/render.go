package stopyourself

import (
	"fmt"

	"github.com/vovakirdan/stop-yourself/internal/core"
	"github.com/vovakirdan/stop-yourself/internal/game"
)

// Visual characters for rendering
const (
	GroundChar     = '█'
	LedgeChar      = '▀'
	GoalChar       = '░'
	PlayerChar     = '█'
	SpikeChar      = '▲'
	GhostSpikeChar = '△'
	LaserChar      = '║'
	LaserOffChar   = '┆'
	GhostLaserChar = '┊'
	PointerChar    = '+'
	TrailChar      = '·'
	JumpChar       = '^'
)

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.screenTooSmall {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", MinScreenW, MinScreenH))
		return
	}

	level := g.sim.Level()
	g.renderLevel(dst, level)
	if showTrail {
		g.renderTrail(dst)
	}
	g.renderHazards(dst)
	g.renderPlayer(dst)
	if g.sim.Mode() == game.ModeDefend {
		x, y := g.sim.Pointer().Cell()
		dst.SetColored(x, y, PointerChar, core.ColorBrightYellow)
	}
	g.renderHUD(dst)
	g.renderOverlay(dst)
}

func (g *Game) renderLevel(dst *core.Screen, level *game.Level) {
	for i, box := range level.Terrain {
		r := box.Rect()
		if i == 0 {
			dst.DrawRect(r, GroundChar, core.ColorGray)
			continue
		}
		dst.DrawRect(r, LedgeChar, core.ColorWhite)
	}

	goal := level.Goal.Rect()
	dst.DrawRect(goal, GoalChar, core.ColorBrightGreen)
	dst.DrawTextColored(goal.X, goal.Y-1, "GOAL", core.ColorGreen)
}

func (g *Game) renderTrail(dst *core.Screen) {
	for _, s := range g.sim.Track().Samples() {
		x, y := s.Pos.Cell()
		dst.SetColored(x, y, TrailChar, core.ColorBlue)
	}
}

func (g *Game) renderHazards(dst *core.Screen) {
	replay := g.sim.Mode() == game.ModeReplay
	for _, h := range g.sim.Hazards() {
		r := h.Box().Rect()
		glyph, color := hazardLook(h)
		if replay && h.LastPlaced {
			color = core.ColorBrightYellow
		}
		if h.Kind == game.KindLaser {
			for x := r.X; x < r.Right(); x++ {
				dst.DrawVLine(x, r.Y, r.H, glyph, color)
			}
			continue
		}
		// Spikes only fill their bottom row; the rest of the box stays open.
		dst.DrawHLine(r.X, r.Bottom()-1, r.W, glyph, color)
	}
}

// hazardLook returns the glyph and color a hazard is drawn with.
func hazardLook(h *game.Hazard) (rune, core.Color) {
	switch {
	case h.Kind == game.KindLaser && h.Ghost:
		return GhostLaserChar, core.ColorCyan
	case h.Kind == game.KindLaser && h.Active:
		return LaserChar, core.ColorBrightRed
	case h.Kind == game.KindLaser:
		return LaserOffChar, core.ColorGray
	case h.Ghost:
		return GhostSpikeChar, core.ColorCyan
	default:
		return SpikeChar, core.ColorRed
	}
}

func (g *Game) renderPlayer(dst *core.Screen) {
	var color core.Color
	switch {
	case g.sim.Respawning():
		color = core.ColorGray
	case g.sim.Mode() == game.ModeReplay:
		color = core.ColorBrightMagenta
	case g.sim.Mode() == game.ModeDefend:
		color = core.ColorGray
	default:
		color = core.ColorBrightCyan
	}

	r := g.sim.PlayerBox().Rect()
	dst.DrawRect(r, PlayerChar, color)
	if g.jumpFlash > 0 {
		dst.SetColored(r.X+r.W/2, r.Y-1, JumpChar, core.ColorYellow)
	}
}

// renderHUD draws mode, score, lives and round on the top row and the
// current notice on the bottom row.
func (g *Game) renderHUD(dst *core.Screen) {
	dst.DrawTextColored(1, 0, fmt.Sprintf("Score: %d", g.sim.Score()), core.ColorBrightWhite)

	modeText := g.sim.Mode().String()
	dst.DrawTextColored((dst.Width()-len(modeText))/2, 0, modeText, modeColor(g.sim.Mode()))

	lives := "∞"
	if n := g.sim.Lives(); n >= 0 {
		lives = fmt.Sprintf("%d", n)
	}
	right := fmt.Sprintf("Lives: %s  Round: %d", lives, g.sim.Round()+1)
	dst.DrawText(dst.Width()-len([]rune(right))-1, 0, right)

	if g.noticeTicks > 0 {
		dst.DrawTextColored(1, dst.Height()-1, g.notice, core.ColorBrightYellow)
	} else if g.sim.Mode() == game.ModeDefend {
		dst.DrawText(1, dst.Height()-1, "Arrows/mouse to aim, Enter or click to place")
	}
}

func modeColor(m game.Mode) core.Color {
	switch m {
	case game.ModeDefend:
		return core.ColorBrightYellow
	case game.ModeReplay:
		return core.ColorBrightMagenta
	default:
		return core.ColorBrightCyan
	}
}

// renderOverlay draws pause and game over messages.
func (g *Game) renderOverlay(dst *core.Screen) {
	switch {
	case g.sim.GameOver():
		subtitle := fmt.Sprintf("Defenses: %d  |  Press R to restart", g.sim.Score())
		g.drawCenteredBox(dst, "GAME OVER", subtitle)
	case g.sim.Paused():
		g.drawCenteredBox(dst, "PAUSED", "Press P to resume")
	}
}

// drawCenteredBox draws a centered message box.
func (g *Game) drawCenteredBox(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := core.Clamp((w-boxW)/2, 0, w-1)
	boxY := core.Clamp((h-boxH)/2, 0, h-1)

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ', core.ColorDefault)
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawText(boxX+(boxW-len(title))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}
