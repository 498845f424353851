// Package physics is a small deterministic AABB world used by the game as a
// black-box rigid-body collaborator. It integrates dynamic bodies under
// gravity, pushes them out of solid static geometry, and reports
// collision-start events for pairs involving a sensor.
package physics

import (
	"sort"

	"github.com/vovakirdan/stop-yourself/internal/core"
)

// BodyID identifies a body inside a World. IDs are never reused.
type BodyID int

// Kind describes how a body moves.
type Kind int

const (
	Static    Kind = iota // Never moves, blocks dynamic bodies unless it is a sensor
	Dynamic               // Integrated with gravity and velocity, collides with solids
	Kinematic             // Moved only by SetPosition; ignores gravity and solids
)

// Layer is a collision layer bit set.
type Layer uint32

const (
	LayerPlayer Layer = 1 << iota
	LayerTerrain
	LayerHazard
	LayerGoal

	LayerAll Layer = 0xFFFFFFFF
)

// BodySpec describes a body to add to the world.
type BodySpec struct {
	Kind   Kind
	Center core.Vec2
	W, H   float64
	Sensor bool
	Layer  Layer
	Mask   Layer // Layers this body interacts with
}

// Body is the simulated state of a single collider.
type Body struct {
	ID       BodyID
	Kind     Kind
	Pos      core.Vec2 // Center
	Vel      core.Vec2 // Units per step
	W, H     float64
	Sensor   bool
	Enabled  bool
	Layer    Layer
	Mask     Layer
	Grounded bool
}

// Box returns the body's collider in world space.
func (b *Body) Box() core.Box {
	return core.BoxAround(b.Pos, b.W, b.H)
}

// Collision is a collision-start notification between two bodies.
// A is always the lower ID.
type Collision struct {
	A, B BodyID
}

// Other returns the participant that is not id, and whether id took part.
func (c Collision) Other(id BodyID) (BodyID, bool) {
	switch id {
	case c.A:
		return c.B, true
	case c.B:
		return c.A, true
	}
	return 0, false
}

// Config holds the world's integration parameters.
type Config struct {
	Gravity      float64 // Downward acceleration per step
	MaxFallSpeed float64 // Terminal vertical speed per step (0 = unlimited)
}

type pair struct {
	a, b BodyID
}

// World owns all bodies and their contacts.
type World struct {
	cfg      Config
	bodies   []*Body // Sorted by ID for deterministic iteration
	nextID   BodyID
	contacts map[pair]struct{}
}

// NewWorld creates an empty world.
func NewWorld(cfg Config) *World {
	return &World{
		cfg:      cfg,
		nextID:   1,
		contacts: make(map[pair]struct{}),
	}
}

// Add inserts a body and returns its ID. Bodies start enabled.
func (w *World) Add(spec BodySpec) BodyID {
	id := w.nextID
	w.nextID++
	mask := spec.Mask
	if mask == 0 {
		mask = LayerAll
	}
	w.bodies = append(w.bodies, &Body{
		ID:      id,
		Kind:    spec.Kind,
		Pos:     spec.Center,
		W:       spec.W,
		H:       spec.H,
		Sensor:  spec.Sensor,
		Enabled: true,
		Layer:   spec.Layer,
		Mask:    mask,
	})
	return id
}

// Remove deletes a body and all of its contacts. Unknown IDs are ignored.
func (w *World) Remove(id BodyID) {
	i := w.index(id)
	if i < 0 {
		return
	}
	w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
	w.ResetContacts(id)
}

// Body returns the body with the given ID, or nil.
func (w *World) Body(id BodyID) *Body {
	if i := w.index(id); i >= 0 {
		return w.bodies[i]
	}
	return nil
}

// Len returns the number of bodies in the world.
func (w *World) Len() int {
	return len(w.bodies)
}

func (w *World) index(id BodyID) int {
	i := sort.Search(len(w.bodies), func(i int) bool { return w.bodies[i].ID >= id })
	if i < len(w.bodies) && w.bodies[i].ID == id {
		return i
	}
	return -1
}

// Position returns the center of a body.
func (w *World) Position(id BodyID) core.Vec2 {
	if b := w.Body(id); b != nil {
		return b.Pos
	}
	return core.Vec2{}
}

// SetPosition teleports a body.
func (w *World) SetPosition(id BodyID, p core.Vec2) {
	if b := w.Body(id); b != nil {
		b.Pos = p
	}
}

// Velocity returns a body's linear velocity.
func (w *World) Velocity(id BodyID) core.Vec2 {
	if b := w.Body(id); b != nil {
		return b.Vel
	}
	return core.Vec2{}
}

// SetVelocity sets a body's linear velocity.
func (w *World) SetVelocity(id BodyID, v core.Vec2) {
	if b := w.Body(id); b != nil {
		b.Vel = v
	}
}

// SetKind switches a body between static, dynamic and kinematic motion.
func (w *World) SetKind(id BodyID, k Kind) {
	if b := w.Body(id); b != nil {
		b.Kind = k
		if k != Dynamic {
			b.Vel = core.Vec2{}
			b.Grounded = false
		}
	}
}

// SetEnabled turns a body's collider on or off. Toggling forgets the body's
// contacts, so an overlap that persists is reported again once re-enabled.
func (w *World) SetEnabled(id BodyID, enabled bool) {
	b := w.Body(id)
	if b == nil || b.Enabled == enabled {
		return
	}
	b.Enabled = enabled
	w.ResetContacts(id)
}

// Grounded reports whether a dynamic body rested on a solid during the last step.
func (w *World) Grounded(id BodyID) bool {
	if b := w.Body(id); b != nil {
		return b.Grounded
	}
	return false
}

// ResetContacts forgets every contact involving id.
func (w *World) ResetContacts(id BodyID) {
	for p := range w.contacts {
		if p.a == id || p.b == id {
			delete(w.contacts, p)
		}
	}
}

// Intersects reports whether the collider of id overlaps box.
// Disabled bodies still answer shape queries.
func (w *World) Intersects(id BodyID, box core.Box) bool {
	b := w.Body(id)
	if b == nil {
		return false
	}
	return b.Box().Intersects(box)
}

// Step advances the world by one fixed step and returns the collision-start
// events detected at the new positions, ordered by body ID.
func (w *World) Step() []Collision {
	for _, b := range w.bodies {
		if b.Kind == Dynamic && b.Enabled {
			w.integrate(b)
		}
	}
	return w.detect()
}

// integrate moves a dynamic body one axis at a time, resolving solids after each.
func (w *World) integrate(b *Body) {
	b.Vel.Y += w.cfg.Gravity
	if w.cfg.MaxFallSpeed > 0 && b.Vel.Y > w.cfg.MaxFallSpeed {
		b.Vel.Y = w.cfg.MaxFallSpeed
	}

	b.Pos.X += b.Vel.X
	for _, s := range w.bodies {
		if !w.blocks(b, s) {
			continue
		}
		box, sb := b.Box(), s.Box()
		if !box.Intersects(sb) {
			continue
		}
		if b.Vel.X > 0 {
			b.Pos.X = sb.Pos.X - b.W/2
		} else if b.Vel.X < 0 {
			b.Pos.X = sb.Right() + b.W/2
		}
		b.Vel.X = 0
	}

	b.Grounded = false
	b.Pos.Y += b.Vel.Y
	for _, s := range w.bodies {
		if !w.blocks(b, s) {
			continue
		}
		box, sb := b.Box(), s.Box()
		if !box.Intersects(sb) {
			continue
		}
		if b.Vel.Y > 0 {
			b.Pos.Y = sb.Pos.Y - b.H/2
			b.Grounded = true
		} else if b.Vel.Y < 0 {
			b.Pos.Y = sb.Bottom() + b.H/2
		}
		b.Vel.Y = 0
	}

	// Resting exactly on a surface still counts as grounded.
	if !b.Grounded {
		feet := core.NewBox(b.Pos.X-b.W/2, b.Pos.Y+b.H/2, b.W, 0.01)
		for _, s := range w.bodies {
			if w.blocks(b, s) && feet.Intersects(s.Box()) {
				b.Grounded = true
				break
			}
		}
	}
}

func (w *World) blocks(b, s *Body) bool {
	return s != b && s.Kind == Static && s.Enabled && !s.Sensor && interacts(b, s)
}

func interacts(a, b *Body) bool {
	return a.Layer&b.Mask != 0 && b.Layer&a.Mask != 0
}

// detect rebuilds the contact set and reports pairs that started touching.
func (w *World) detect() []Collision {
	var started []Collision
	current := make(map[pair]struct{}, len(w.contacts))

	for i, a := range w.bodies {
		if !a.Enabled {
			continue
		}
		for _, b := range w.bodies[i+1:] {
			if !b.Enabled || (!a.Sensor && !b.Sensor) {
				continue
			}
			if a.Kind == Static && b.Kind == Static {
				continue
			}
			if !interacts(a, b) || !a.Box().Intersects(b.Box()) {
				continue
			}
			p := pair{a: a.ID, b: b.ID}
			current[p] = struct{}{}
			if _, ok := w.contacts[p]; !ok {
				started = append(started, Collision{A: a.ID, B: b.ID})
			}
		}
	}

	w.contacts = current
	return started
}
