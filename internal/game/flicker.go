package game

import "github.com/vovakirdan/stop-yourself/internal/physics"

// FlickerScheduler enables and disables committed hazards each tick.
type FlickerScheduler struct {
	world *physics.World
}

// NewFlickerScheduler creates a scheduler that toggles bodies in world.
func NewFlickerScheduler(world *physics.World) *FlickerScheduler {
	return &FlickerScheduler{world: world}
}

// Update applies the schedule of every committed hazard at frame now,
// measured from frameStart. With forceOff set, flickering hazards are held
// inactive regardless of phase. It returns the hazards that switched on
// during this call.
func (f *FlickerScheduler) Update(now, frameStart int, hazards []*Hazard, forceOff bool) []*Hazard {
	elapsed := max(0, now-frameStart)

	var activated []*Hazard
	for _, h := range hazards {
		if h.Ghost {
			continue
		}
		active := true
		if h.Flicker != nil {
			active = !forceOff && h.Flicker.Active(elapsed)
		}
		if active == h.Active {
			continue
		}
		h.Active = active
		f.world.SetEnabled(h.Body, active)
		if active && h.Flicker != nil {
			activated = append(activated, h)
		}
	}
	return activated
}
