package game

import (
	"errors"
	"fmt"
)

// Mode is the current phase of a round.
type Mode int

const (
	ModeSurvive Mode = iota // Reach the goal while being recorded
	ModeDefend              // Place one hazard against the recording
	ModeReplay              // The recording runs through the hazards
)

// String returns a human-readable name for the mode.
func (m Mode) String() string {
	switch m {
	case ModeSurvive:
		return "Survive"
	case ModeDefend:
		return "Defend"
	case ModeReplay:
		return "Replay"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Cause identifies the event that triggered a transition.
type Cause int

const (
	CauseGoal Cause = iota
	CauseDeath
	CauseCommit
)

// String returns a human-readable name for the cause.
func (c Cause) String() string {
	switch c {
	case CauseGoal:
		return "goal"
	case CauseDeath:
		return "death"
	case CauseCommit:
		return "commit"
	default:
		return "unknown"
	}
}

// Transition is an accepted mode change. From may equal To when a death in
// Survive restarts the run.
type Transition struct {
	From, To Mode
	Cause    Cause
}

// ErrGoalInDefend is returned when a goal notification arrives while
// defending. The player is frozen in Defend, so this indicates a stale event.
var ErrGoalInDefend = errors.New("game: goal reached while defending")

// ModeMachine holds the current mode and applies the transition rules.
// It has no side effects of its own; the simulation performs the resets
// that go with each accepted transition.
type ModeMachine struct {
	mode Mode
}

// Mode returns the current mode.
func (m *ModeMachine) Mode() Mode {
	return m.mode
}

// Reset returns the machine to Survive.
func (m *ModeMachine) Reset() {
	m.mode = ModeSurvive
}

// Goal handles a goal-reached notification.
func (m *ModeMachine) Goal() (Transition, error) {
	switch m.mode {
	case ModeSurvive, ModeReplay:
		return m.move(ModeDefend, CauseGoal), nil
	default:
		return Transition{}, ErrGoalInDefend
	}
}

// Death handles a player-death notification. Every mode falls back to Survive.
func (m *ModeMachine) Death() Transition {
	return m.move(ModeSurvive, CauseDeath)
}

// Commit handles a placement commit. It returns ErrNotDefending outside
// Defend and ErrGhostPending while the placement left a ghost behind.
func (m *ModeMachine) Commit(ghostPending bool) (Transition, error) {
	if m.mode != ModeDefend {
		return Transition{}, ErrNotDefending
	}
	if ghostPending {
		return Transition{}, ErrGhostPending
	}
	return m.move(ModeReplay, CauseCommit), nil
}

func (m *ModeMachine) move(to Mode, cause Cause) Transition {
	t := Transition{From: m.mode, To: to, Cause: cause}
	m.mode = to
	return t
}
