// Package config loads the YAML game configuration, applies environment
// overrides and turns difficulty settings into pursuit speed.
package config

import (
	"fmt"
	"strings"
)

// KeyRunnerConfig contains all configuration for the maze runner.
type KeyRunnerConfig struct {
	Grid       GridConfig       `yaml:"grid"`
	Generation GenerationConfig `yaml:"generation"`
	Pursuit    PursuitConfig    `yaml:"pursuit"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// GridConfig sets the maze dimensions.
type GridConfig struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

// GenerationConfig tunes maze generation.
type GenerationConfig struct {
	EmptyProbability    float64 `yaml:"empty_probability"`
	ObstacleProbability float64 `yaml:"obstacle_probability"`
	PathStepBias        float64 `yaml:"path_step_bias"` // probability of a downward carving step
	MaxAttempts         int     `yaml:"max_attempts"`
	MinSpawnDistance    int     `yaml:"min_spawn_distance"`
}

// PursuitConfig tunes the pursuer.
type PursuitConfig struct {
	Strategy       string `yaml:"strategy"`        // "greedy" or "astar"
	IntervalMs     int    `yaml:"interval_ms"`     // time between pursuer steps at difficulty 0
	MinIntervalMs  int    `yaml:"min_interval_ms"` // floor once difficulty speeds it up
	RecomputeEvery int    `yaml:"recompute_every"` // astar: ticks between path searches
	CaughtEndsGame bool   `yaml:"caught_ends_game"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // score or pursuit ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // added to pursuit speed at max difficulty
}

// Validate rejects configurations the generator or the pursuer cannot run with.
func (c KeyRunnerConfig) Validate() error {
	g := c.Generation
	switch {
	case c.Grid.Rows < 3 || c.Grid.Cols < 2:
		return fmt.Errorf("config: grid must be at least 3x2, got %dx%d", c.Grid.Rows, c.Grid.Cols)
	case g.EmptyProbability < 0 || g.EmptyProbability > 1:
		return fmt.Errorf("config: empty_probability %.3f outside [0,1]", g.EmptyProbability)
	case g.ObstacleProbability < 0 || g.ObstacleProbability > 1:
		return fmt.Errorf("config: obstacle_probability %.3f outside [0,1]", g.ObstacleProbability)
	case g.EmptyProbability+g.ObstacleProbability > 1:
		return fmt.Errorf("config: empty_probability + obstacle_probability exceeds 1")
	case g.PathStepBias <= 0 || g.PathStepBias > 1:
		return fmt.Errorf("config: path_step_bias %.3f outside (0,1]", g.PathStepBias)
	case g.MaxAttempts < 1:
		return fmt.Errorf("config: max_attempts must be positive")
	case c.Pursuit.IntervalMs <= 0:
		return fmt.Errorf("config: pursuit interval_ms must be positive")
	}

	switch strings.ToLower(c.Pursuit.Strategy) {
	case "greedy", "astar":
	default:
		return fmt.Errorf("config: unknown pursuit strategy %q", c.Pursuit.Strategy)
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	}
	return "", fmt.Errorf("config: unknown difficulty %q (use easy, normal, hard or fixed)", s)
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ApplyKeyRunnerPreset adjusts difficulty and obstacle density for a preset.
func ApplyKeyRunnerPreset(cfg *KeyRunnerConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
		return
	}
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)

	switch preset {
	case DifficultyEasy:
		cfg.Generation.ObstacleProbability = 0.15
		cfg.Pursuit.CaughtEndsGame = false
	case DifficultyHard:
		cfg.Generation.ObstacleProbability = 0.25
		cfg.Pursuit.Strategy = "astar"
	}
}
