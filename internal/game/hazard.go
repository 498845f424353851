package game

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/stop-yourself/internal/core"
	"github.com/vovakirdan/stop-yourself/internal/physics"
)

// HazardKind is the variant of a hazard.
type HazardKind int

const (
	KindSpike HazardKind = iota
	KindLaser
)

// String returns a human-readable name for the kind.
func (k HazardKind) String() string {
	switch k {
	case KindSpike:
		return "spike"
	case KindLaser:
		return "laser"
	default:
		return fmt.Sprintf("HazardKind(%d)", int(k))
	}
}

// HazardID identifies a hazard within a game.
type HazardID int

// Hazard construction and placement errors.
var (
	ErrZeroPeriod       = errors.New("game: flicker period must be positive")
	ErrNegativeDelay    = errors.New("game: flicker delay must not be negative")
	ErrNegativeDuration = errors.New("game: flicker duration must not be negative")
	ErrNoGhost          = errors.New("game: no ghost hazard to place")
	ErrNotDefending     = errors.New("game: hazards can only be placed while defending")
	ErrGhostPending     = errors.New("game: ghost hazard still pending")
)

// Flicker is a periodic activation schedule in frames.
type Flicker struct {
	Period   int // Frames between activation starts
	Delay    int // Phase offset applied to elapsed frames
	Duration int // Frames active per period
}

// NewFlicker validates and creates a schedule.
func NewFlicker(period, delay, duration int) (Flicker, error) {
	switch {
	case period <= 0:
		return Flicker{}, ErrZeroPeriod
	case delay < 0:
		return Flicker{}, ErrNegativeDelay
	case duration < 0:
		return Flicker{}, ErrNegativeDuration
	}
	return Flicker{Period: period, Delay: delay, Duration: duration}, nil
}

// Phase returns the position in the cycle after elapsed frames.
// Negative elapsed values are treated as zero.
func (f Flicker) Phase(elapsed int) int {
	if elapsed < 0 {
		elapsed = 0
	}
	return (elapsed + f.Delay) % f.Period
}

// Active reports whether the schedule is on after elapsed frames.
func (f Flicker) Active(elapsed int) bool {
	return f.Phase(elapsed) < f.Duration
}

// Hazard is a spike or laser in the level.
type Hazard struct {
	ID         HazardID
	Kind       HazardKind
	Body       physics.BodyID
	Pos        core.Vec2 // Center
	W, H       float64
	Ghost      bool     // Still being positioned; never lethal
	LastPlaced bool     // Most recently committed hazard
	Flicker    *Flicker // nil = always active once committed
	Active     bool     // Collidable and visible as a threat
}

// Box returns the hazard's collider.
func (h *Hazard) Box() core.Box {
	return core.BoxAround(h.Pos, h.W, h.H)
}

// HazardShape describes the collider and schedule of a hazard to spawn.
type HazardShape struct {
	W, H    float64
	Flicker *Flicker
}

// HazardSet tracks every hazard, the single ghost and the single
// last-placed hazard, and keeps their physics bodies in sync.
type HazardSet struct {
	world     *physics.World
	hazards   []*Hazard
	nextID    HazardID
	laserAxis float64
}

// NewHazardSet creates an empty set backed by world.
func NewHazardSet(world *physics.World) *HazardSet {
	return &HazardSet{world: world, nextID: 1}
}

// SetLaserAxis sets the row that laser ghosts are locked to.
func (s *HazardSet) SetLaserAxis(y float64) {
	s.laserAxis = y
}

// LaserAxis returns the row that laser ghosts are locked to.
func (s *HazardSet) LaserAxis() float64 {
	return s.laserAxis
}

// All returns every hazard in placement order, ghost included.
func (s *HazardSet) All() []*Hazard {
	return s.hazards
}

// Len returns the number of hazards, ghost included.
func (s *HazardSet) Len() int {
	return len(s.hazards)
}

// Committed returns the number of hazards that are not ghosts.
func (s *HazardSet) Committed() int {
	n := 0
	for _, h := range s.hazards {
		if !h.Ghost {
			n++
		}
	}
	return n
}

// Ghost returns the ghost hazard, or nil.
func (s *HazardSet) Ghost() *Hazard {
	for _, h := range s.hazards {
		if h.Ghost {
			return h
		}
	}
	return nil
}

// LastPlaced returns the last-placed hazard, or nil.
func (s *HazardSet) LastPlaced() *Hazard {
	for _, h := range s.hazards {
		if h.LastPlaced {
			return h
		}
	}
	return nil
}

// ByBody returns the hazard owning a physics body, or nil.
func (s *HazardSet) ByBody(id physics.BodyID) *Hazard {
	for _, h := range s.hazards {
		if h.Body == id {
			return h
		}
	}
	return nil
}

// SpawnGhost creates a ghost hazard centered at pos. An existing ghost is
// replaced; replaced reports whether that happened.
func (s *HazardSet) SpawnGhost(kind HazardKind, pos core.Vec2, shape HazardShape) (ghost *Hazard, replaced bool) {
	if old := s.Ghost(); old != nil {
		s.remove(old)
		replaced = true
	}
	if kind == KindLaser {
		pos.Y = s.laserAxis
	}

	h := &Hazard{
		ID:    s.nextID,
		Kind:  kind,
		Pos:   pos,
		W:     shape.W,
		H:     shape.H,
		Ghost: true,
	}
	if shape.Flicker != nil {
		f := *shape.Flicker
		h.Flicker = &f
	}
	s.nextID++

	h.Body = s.world.Add(physics.BodySpec{
		Kind:   physics.Static,
		Center: pos,
		W:      shape.W,
		H:      shape.H,
		Sensor: true,
		Layer:  physics.LayerHazard,
		Mask:   physics.LayerPlayer,
	})
	s.hazards = append(s.hazards, h)
	return h, replaced
}

// Follow eases the ghost toward target, moving at most step units. Laser
// ghosts stay on the laser axis. A ghost outside bounds snaps to the target.
// It reports whether the ghost moved.
func (s *HazardSet) Follow(target core.Vec2, step, snap float64, bounds core.Box) bool {
	g := s.Ghost()
	if g == nil {
		return false
	}
	if g.Kind == KindLaser {
		target.Y = s.laserAxis
	}

	if !bounds.Contains(g.Pos) {
		s.moveGhost(g, target)
		return true
	}

	diff := target.Sub(g.Pos)
	dist := diff.Len()
	if dist <= snap {
		return false
	}
	s.moveGhost(g, g.Pos.Add(diff.Normalize().Scale(min(step, dist))))
	return true
}

func (s *HazardSet) moveGhost(g *Hazard, pos core.Vec2) {
	g.Pos = pos
	s.world.SetPosition(g.Body, pos)
}

// Commit turns the ghost into the last-placed hazard. For a flickering
// hazard the delay is chosen from the recorded track so the first
// activation strikes the replayed run; overlaps answers whether the
// hazard's collider would touch the player at a recorded position.
func (s *HazardSet) Commit(track *RecordedTrack, overlaps func(core.Vec2) bool, fallbackDelay int) (*Hazard, error) {
	g := s.Ghost()
	if g == nil {
		return nil, ErrNoGhost
	}

	if prev := s.LastPlaced(); prev != nil {
		prev.LastPlaced = false
	}
	g.Ghost = false
	g.LastPlaced = true

	if g.Flicker != nil {
		g.Flicker.Delay = FlickerDelay(*g.Flicker, track.Samples(), overlaps, fallbackDelay)
		g.Active = false
		s.world.SetEnabled(g.Body, false)
	} else {
		g.Active = true
	}
	// Overlaps that began while it was a ghost must be reported again.
	s.world.ResetContacts(g.Body)
	return g, nil
}

// MakePermanent clears the last-placed flag. The hazard stays lethal but is
// no longer singled out during Replay.
func (s *HazardSet) MakePermanent() *Hazard {
	h := s.LastPlaced()
	if h != nil {
		h.LastPlaced = false
	}
	return h
}

// Clear removes every hazard and its body.
func (s *HazardSet) Clear() {
	for _, h := range s.hazards {
		s.world.Remove(h.Body)
	}
	s.hazards = s.hazards[:0]
}

func (s *HazardSet) remove(h *Hazard) {
	s.world.Remove(h.Body)
	kept := s.hazards[:0]
	for _, o := range s.hazards {
		if o != h {
			kept = append(kept, o)
		}
	}
	s.hazards = kept
}

// FlickerDelay picks a delay so that the schedule is active on a recorded
// frame where the player overlaps the hazard, preferring a frame that makes
// the very first activation strike. With no overlapping frame it returns
// fallback.
//
// A window starting at elapsed frame s is the first activation when
// s <= period-duration (the previous window ends before frame 0). For the
// earliest overlapping frame f < period the window start is
// min(f, period-duration), which keeps f inside it. Later frames can only be
// aligned to an activation, not to the first one.
func FlickerDelay(f Flicker, samples []Sample, overlaps func(core.Vec2) bool, fallback int) int {
	hit := -1
	for _, s := range samples {
		if overlaps(s.Pos) {
			hit = s.Frame
			break
		}
	}
	if hit < 0 {
		return fallback
	}

	start := hit
	if hit < f.Period {
		start = min(hit, max(f.Period-f.Duration, 0))
	}
	return (f.Period - start%f.Period) % f.Period
}
