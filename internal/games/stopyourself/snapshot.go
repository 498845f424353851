package stopyourself

import (
	"math"

	"github.com/vovakirdan/stop-yourself/internal/game"
)

// snapScale converts world units to fixed-point ints for snapshots.
const snapScale = 1000

// Snapshot contains the observable game state.
// Uses primitive types only for stable comparison.
type Snapshot struct {
	Frame    int
	Mode     int
	Score    int
	Lives    int
	Round    int
	GameOver bool

	PlayerX, PlayerY int // Fixed-point player center

	Samples int
	Rebases int

	// Hazard state (each hazard is 7 ints: Kind, X, Y, Ghost, LastPlaced, Active, Delay)
	HazardCount int
	HazardData  []int
}

func fixed(v float64) int {
	return int(math.Round(v * snapScale))
}

func flag(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	hazards := g.sim.Hazards()
	data := make([]int, 0, len(hazards)*7)
	for _, h := range hazards {
		delay := -1
		if h.Flicker != nil {
			delay = h.Flicker.Delay
		}
		data = append(data,
			int(h.Kind),
			fixed(h.Pos.X),
			fixed(h.Pos.Y),
			flag(h.Ghost),
			flag(h.LastPlaced),
			flag(h.Active),
			delay,
		)
	}

	pos := g.sim.PlayerPos()
	track := g.sim.Track()
	return Snapshot{
		Frame:       g.sim.Frame(),
		Mode:        int(g.sim.Mode()),
		Score:       g.sim.Score(),
		Lives:       g.sim.Lives(),
		Round:       g.sim.Round(),
		GameOver:    g.sim.GameOver(),
		PlayerX:     fixed(pos.X),
		PlayerY:     fixed(pos.Y),
		Samples:     track.Len(),
		Rebases:     track.Rebases(),
		HazardCount: len(hazards),
		HazardData:  data,
	}
}

// ModeName returns the snapshot's mode as text.
func (snap *Snapshot) ModeName() string {
	return game.Mode(snap.Mode).String()
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := uint64(snap.Frame)                //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Mode)           //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Score)          //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Lives)          //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Round)          //#nosec G115 -- hash computation
	h = h*31 + uint64(flag(snap.GameOver)) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.PlayerX)        //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.PlayerY)        //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Samples)        //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Rebases)        //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.HazardCount)    //#nosec G115 -- hash computation

	for _, v := range snap.HazardData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	return h
}
