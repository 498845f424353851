package config

import (
	_ "embed"
)

//go:embed defaults/stopyourself.yaml
var defaultYAML []byte

// DefaultConfig returns the hardcoded default configuration.
// It mirrors defaults/stopyourself.yaml and is used if the embed fails to parse.
func DefaultConfig() Config {
	return Config{
		Physics: PhysicsConfig{
			Gravity:      0.02,
			JumpImpulse:  -0.55,
			JumpBoost:    0.03,
			MoveAccel:    0.08,
			Damping:      0.85,
			MaxFallSpeed: 0.9,
		},
		Player: PlayerConfig{
			Width:        2,
			Height:       3,
			SpawnX:       4,
			RunHoldTicks: 8,
		},
		Level: LevelConfig{
			GroundOffset: 2,
			GoalWidth:    4,
			GoalHeight:   4,
			Ledges:       true,
		},
		Hazards: HazardsConfig{
			LaserWeight:  0.4,
			GhostStep:    2.0,
			SnapDistance: 0.1,
			PointerNudge: 1.0,
			SpikeWidth:   3,
			SpikeHeight:  2,
			LaserWidth:   2,
			Flicker: FlickerConfig{
				Period:       100,
				Duration:     40,
				DefaultDelay: 0,
			},
		},
		Gameplay: GameplayConfig{
			Lives:        5,
			RespawnTicks: 30,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultYAML
}
