package game

import "github.com/vovakirdan/stop-yourself/internal/physics"

// Resolution is what a tick's collision-start events mean for the player.
type Resolution struct {
	Goal    bool    // Player entered the goal zone
	Death   *Hazard // First registered hazard hit, nil if none
	Ignored int     // Hazard hits that were filtered out
}

// Resolver interprets collision-start events involving the player.
type Resolver struct {
	hazards *HazardSet
}

// NewResolver creates a resolver that looks hazards up in set.
func NewResolver(set *HazardSet) *Resolver {
	return &Resolver{hazards: set}
}

// Registers reports whether a hit by h counts in mode. Ghosts never count.
// During Replay only the last-placed hazard counts, unless none is marked.
func (r *Resolver) Registers(h *Hazard, mode Mode) bool {
	if h.Ghost || !h.Active {
		return false
	}
	if mode == ModeReplay {
		last := r.hazards.LastPlaced()
		return last == nil || last == h
	}
	return true
}

// Resolve scans collision-start events for the player's contacts. At most one
// death is reported per call; a death masks a goal reached on the same step.
func (r *Resolver) Resolve(cols []physics.Collision, player, goal physics.BodyID, mode Mode) Resolution {
	var res Resolution
	for _, c := range cols {
		other, ok := c.Other(player)
		if !ok {
			continue
		}
		if other == goal {
			res.Goal = true
			continue
		}
		h := r.hazards.ByBody(other)
		if h == nil {
			continue
		}
		if !r.Registers(h, mode) {
			res.Ignored++
			continue
		}
		if res.Death == nil {
			res.Death = h
		}
	}
	if res.Death != nil {
		res.Goal = false
	}
	return res
}
