package config

import (
	_ "embed"
)

//go:embed defaults/keyrunner.yaml
var defaultKeyRunnerYAML []byte

// DefaultKeyRunnerConfig returns the hard-coded configuration used when no
// file and no embedded default can be read.
func DefaultKeyRunnerConfig() KeyRunnerConfig {
	return KeyRunnerConfig{
		Grid: GridConfig{
			Rows: 20,
			Cols: 12,
		},
		Generation: GenerationConfig{
			EmptyProbability:    0.7,
			ObstacleProbability: 0.2,
			PathStepBias:        1.0 / 3.0,
			MaxAttempts:         32,
			MinSpawnDistance:    4,
		},
		Pursuit: PursuitConfig{
			Strategy:       "greedy",
			IntervalMs:     1000,
			MinIntervalMs:  250,
			RecomputeEvery: 1,
			CaughtEndsGame: true,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 20,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.0,
			},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultKeyRunnerYAML
}
