package game

import "fmt"

// Message is a typed notification produced during a tick.
type Message interface {
	message()
}

// GoalReached is emitted when the player's collider enters the goal zone.
type GoalReached struct {
	Frame int
}

func (GoalReached) message() {}

// PlayerDied is emitted when a hazard hit is registered.
type PlayerDied struct {
	Frame  int
	Hazard HazardID
}

func (PlayerDied) message() {}

// HazardPlaced is emitted when the ghost is committed.
type HazardPlaced struct {
	Frame  int
	Hazard HazardID
	Kind   HazardKind
	Delay  int // Flicker delay chosen at commit; 0 for unscheduled hazards
}

func (HazardPlaced) message() {}

// ModeChanged is emitted after a transition and its resets have completed.
type ModeChanged struct {
	Frame      int
	Transition Transition
}

func (ModeChanged) message() {}

// JumpCue is emitted for a jump, either performed by the player or replayed
// from the recording.
type JumpCue struct {
	Frame    int
	Replayed bool
}

func (JumpCue) message() {}

// HazardActivated is emitted on the inactive to active edge of a
// flickering hazard.
type HazardActivated struct {
	Frame  int
	Hazard HazardID
}

func (HazardActivated) message() {}

// GhostSpawned is emitted when a ghost hazard is created for placement.
type GhostSpawned struct {
	Frame    int
	Hazard   HazardID
	Kind     HazardKind
	Replaced bool
}

func (GhostSpawned) message() {}

// PlacementRejected is emitted when a commit is refused because the hazard
// would cover the spawn point.
type PlacementRejected struct {
	Frame  int
	Hazard HazardID
}

func (PlacementRejected) message() {}

// Outcome is how a round ended.
type Outcome int

const (
	OutcomeSurvived Outcome = iota // Reached the goal in Survive
	OutcomeDied                    // Killed in Survive
	OutcomeDefended                // Replay killed by the placed hazard
	OutcomeBreached                // Replay reached the goal
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSurvived:
		return "survived"
	case OutcomeDied:
		return "died"
	case OutcomeDefended:
		return "defended"
	case OutcomeBreached:
		return "breached"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// RoundEnded is emitted whenever a Survive or Replay run finishes.
type RoundEnded struct {
	Frame   int
	Round   int
	Outcome Outcome
	Ticks   int // Simulation steps the run lasted
	Hazards int // Committed hazards in the level
}

func (RoundEnded) message() {}

// Outbox collects messages emitted during a tick. Control messages stay
// pending until the next tick's transition step consumes them; everything
// is published for the platform to drain.
type Outbox struct {
	pending   []Message
	published []Message
}

// Emit queues a control message for the next tick. It is published once taken.
func (o *Outbox) Emit(m Message) {
	o.pending = append(o.pending, m)
}

// Publish makes a cue visible to the platform immediately.
func (o *Outbox) Publish(m Message) {
	o.published = append(o.published, m)
}

// TakePending returns the control messages emitted since the last call and
// publishes them.
func (o *Outbox) TakePending() []Message {
	msgs := o.pending
	o.pending = nil
	o.published = append(o.published, msgs...)
	return msgs
}

// Pending reports the number of control messages waiting for the next tick.
func (o *Outbox) Pending() int {
	return len(o.pending)
}

// Drain returns every published message and empties the queue.
func (o *Outbox) Drain() []Message {
	msgs := o.published
	o.published = nil
	return msgs
}

// Reset drops every queued message.
func (o *Outbox) Reset() {
	o.pending = nil
	o.published = nil
}
