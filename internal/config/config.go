// Package config provides YAML-based game configuration loading and
// difficulty presets.
package config

import (
	"errors"
	"fmt"
)

// Config contains all tunable parameters for Stop Yourself.
type Config struct {
	Physics  PhysicsConfig  `yaml:"physics"`
	Player   PlayerConfig   `yaml:"player"`
	Level    LevelConfig    `yaml:"level"`
	Hazards  HazardsConfig  `yaml:"hazards"`
	Gameplay GameplayConfig `yaml:"gameplay"`
}

// PhysicsConfig defines the player's movement parameters.
type PhysicsConfig struct {
	Gravity      float64 `yaml:"gravity"`
	JumpImpulse  float64 `yaml:"jump_impulse"` // Negative = up
	JumpBoost    float64 `yaml:"jump_boost"`   // Extra lift when jump is pressed while rising
	MoveAccel    float64 `yaml:"move_accel"`
	Damping      float64 `yaml:"damping"` // Horizontal velocity multiplier per tick
	MaxFallSpeed float64 `yaml:"max_fall_speed"`
}

// PlayerConfig defines the player's collider and spawn.
type PlayerConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	SpawnX       float64 `yaml:"spawn_x"`
	RunHoldTicks int     `yaml:"run_hold_ticks"` // How long a single left/right press keeps running
}

// LevelConfig defines the procedural level layout.
type LevelConfig struct {
	GroundOffset int     `yaml:"ground_offset"` // Ground thickness from the bottom of the screen
	GoalWidth    float64 `yaml:"goal_width"`
	GoalHeight   float64 `yaml:"goal_height"`
	Ledges       bool    `yaml:"ledges"`
}

// HazardsConfig defines hazard shapes, ghost motion and flicker timing.
type HazardsConfig struct {
	LaserWeight  float64       `yaml:"laser_weight"` // Probability that a new ghost is a laser
	GhostStep    float64       `yaml:"ghost_step"`   // Max ghost displacement per tick
	SnapDistance float64       `yaml:"snap_distance"`
	PointerNudge float64       `yaml:"pointer_nudge"` // Keyboard pointer movement per press
	SpikeWidth   float64       `yaml:"spike_width"`
	SpikeHeight  float64       `yaml:"spike_height"`
	LaserWidth   float64       `yaml:"laser_width"`
	Flicker      FlickerConfig `yaml:"flicker"`
}

// FlickerConfig defines the laser activation schedule.
type FlickerConfig struct {
	Period       int `yaml:"period"`
	Duration     int `yaml:"duration"`
	DefaultDelay int `yaml:"default_delay"` // Used when the recorded path never crosses the laser
}

// GameplayConfig defines lives and respawn timing.
type GameplayConfig struct {
	Lives        int `yaml:"lives"` // Survive deaths allowed; 0 = unlimited
	RespawnTicks int `yaml:"respawn_ticks"`
}

// Validation errors.
var (
	ErrBadPeriod   = errors.New("config: flicker period must be positive")
	ErrBadDuration = errors.New("config: flicker duration must not be negative")
	ErrBadSize     = errors.New("config: sizes must be positive")
	ErrBadWeight   = errors.New("config: laser weight must be within [0, 1]")
)

// Validate checks the config for values the simulation cannot run with.
func (c Config) Validate() error {
	if c.Hazards.Flicker.Period <= 0 {
		return ErrBadPeriod
	}
	if c.Hazards.Flicker.Duration < 0 || c.Hazards.Flicker.DefaultDelay < 0 {
		return ErrBadDuration
	}
	sizes := []float64{
		c.Player.Width, c.Player.Height,
		c.Hazards.SpikeWidth, c.Hazards.SpikeHeight, c.Hazards.LaserWidth,
		c.Level.GoalWidth, c.Level.GoalHeight,
	}
	for _, s := range sizes {
		if s <= 0 {
			return ErrBadSize
		}
	}
	if c.Level.GroundOffset <= 0 {
		return fmt.Errorf("%w: ground_offset=%d", ErrBadSize, c.Level.GroundOffset)
	}
	if c.Hazards.LaserWeight < 0 || c.Hazards.LaserWeight > 1 {
		return ErrBadWeight
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset maps a CLI string to a preset. Unknown values return "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return DifficultyPreset(s)
	}
	return ""
}

// ApplyPreset modifies the config based on a difficulty preset.
// Easy gives more lives and slow spiky rounds; hard favours lasers with
// longer beams and a snappier ghost.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Gameplay.Lives = 10
		cfg.Hazards.LaserWeight = 0.2
		cfg.Hazards.Flicker.Duration = 30
	case DifficultyHard:
		cfg.Gameplay.Lives = 3
		cfg.Hazards.LaserWeight = 0.6
		cfg.Hazards.GhostStep = 3.0
		cfg.Hazards.Flicker.Duration = 55
	}
}
