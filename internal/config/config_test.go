package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestEmbeddedDefaultsAreValid(t *testing.T) {
	cfg, err := decode(DefaultYAML())
	if err != nil {
		t.Fatalf("embedded yaml does not parse: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("embedded yaml is invalid: %v", err)
	}
	if cfg.Grid.Rows != 20 || cfg.Grid.Cols != 12 {
		t.Errorf("grid = %dx%d, expected 20x12", cfg.Grid.Rows, cfg.Grid.Cols)
	}
	if !cfg.Pursuit.CaughtEndsGame {
		t.Error("caught_ends_game should default to true")
	}
	if err := DefaultKeyRunnerConfig().Validate(); err != nil {
		t.Errorf("hard-coded default is invalid: %v", err)
	}
}

func TestLoadCustomPathKeepsOmittedDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("grid:\n  rows: 10\npursuit:\n  strategy: astar\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadKeyRunner(path)
	if err != nil {
		t.Fatalf("LoadKeyRunner failed: %v", err)
	}
	if cfg.Grid.Rows != 10 {
		t.Errorf("rows = %d, expected 10", cfg.Grid.Rows)
	}
	if cfg.Grid.Cols != 12 {
		t.Errorf("cols = %d, expected default 12", cfg.Grid.Cols)
	}
	if cfg.Pursuit.Strategy != "astar" {
		t.Errorf("strategy = %q, expected astar", cfg.Pursuit.Strategy)
	}
	if !cfg.Pursuit.CaughtEndsGame {
		t.Error("omitted caught_ends_game should keep its default")
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := LoadKeyRunner(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}

	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("grid: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadKeyRunner(path); err == nil {
		t.Error("expected error for malformed yaml")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvRows, "15")
	t.Setenv(EnvCols, "9")
	t.Setenv(EnvObstacleProbability, "0.1")
	t.Setenv(EnvStrategy, " AStar ")
	t.Setenv(EnvPursuitIntervalMs, "600")

	cfg := DefaultKeyRunnerConfig()
	if err := ApplyEnv(&cfg); err != nil {
		t.Fatalf("ApplyEnv failed: %v", err)
	}

	if cfg.Grid.Rows != 15 || cfg.Grid.Cols != 9 {
		t.Errorf("grid = %dx%d, expected 15x9", cfg.Grid.Rows, cfg.Grid.Cols)
	}
	if cfg.Generation.ObstacleProbability != 0.1 {
		t.Errorf("obstacle probability = %v, expected 0.1", cfg.Generation.ObstacleProbability)
	}
	if cfg.Pursuit.Strategy != "astar" {
		t.Errorf("strategy = %q, expected astar", cfg.Pursuit.Strategy)
	}
	if cfg.Pursuit.IntervalMs != 600 {
		t.Errorf("interval = %d, expected 600", cfg.Pursuit.IntervalMs)
	}
}

func TestApplyEnvRejectsGarbage(t *testing.T) {
	t.Setenv(EnvRows, "many")

	cfg := DefaultKeyRunnerConfig()
	if err := ApplyEnv(&cfg); err == nil {
		t.Error("expected error for non-numeric rows")
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("KEYRUNNER_PATH_STEP_BIAS=0.5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvPathStepBias, "")
	os.Unsetenv(EnvPathStepBias)

	if err := LoadDotEnv(path, filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Fatalf("LoadDotEnv failed: %v", err)
	}
	if got := os.Getenv(EnvPathStepBias); got != "0.5" {
		t.Errorf("%s = %q, expected 0.5", EnvPathStepBias, got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*KeyRunnerConfig)
	}{
		{"too few rows", func(c *KeyRunnerConfig) { c.Grid.Rows = 2 }},
		{"too few cols", func(c *KeyRunnerConfig) { c.Grid.Cols = 1 }},
		{"obstacle above one", func(c *KeyRunnerConfig) { c.Generation.ObstacleProbability = 1.2 }},
		{"sum above one", func(c *KeyRunnerConfig) { c.Generation.ObstacleProbability = 0.5 }},
		{"zero bias", func(c *KeyRunnerConfig) { c.Generation.PathStepBias = 0 }},
		{"no attempts", func(c *KeyRunnerConfig) { c.Generation.MaxAttempts = 0 }},
		{"zero interval", func(c *KeyRunnerConfig) { c.Pursuit.IntervalMs = 0 }},
		{"unknown strategy", func(c *KeyRunnerConfig) { c.Pursuit.Strategy = "teleport" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultKeyRunnerConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestPresets(t *testing.T) {
	tests := []struct {
		preset       DifficultyPreset
		enabled      bool
		initialLevel float64
		strategy     string
	}{
		{DifficultyEasy, true, 0.0, "greedy"},
		{DifficultyNormal, true, 0.3, "greedy"},
		{DifficultyHard, true, 0.7, "astar"},
		{DifficultyFixed, false, 0.0, "greedy"},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultKeyRunnerConfig()
			ApplyKeyRunnerPreset(&cfg, tc.preset)

			if cfg.Difficulty.Enabled != tc.enabled {
				t.Errorf("enabled = %v, expected %v", cfg.Difficulty.Enabled, tc.enabled)
			}
			if cfg.Difficulty.InitialLevel != tc.initialLevel {
				t.Errorf("initial level = %v, expected %v", cfg.Difficulty.InitialLevel, tc.initialLevel)
			}
			if cfg.Pursuit.Strategy != tc.strategy {
				t.Errorf("strategy = %q, expected %q", cfg.Pursuit.Strategy, tc.strategy)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("preset produced invalid config: %v", err)
			}
		})
	}

	if _, err := ParsePreset("nightmare"); err == nil {
		t.Error("expected error for unknown preset")
	}
	if p, err := ParsePreset(""); err != nil || p != DifficultyNormal {
		t.Errorf("ParsePreset(\"\") = %q, %v", p, err)
	}
}

func TestDifficultyInterval(t *testing.T) {
	cfg := DefaultKeyRunnerConfig().Difficulty
	dm := NewDifficultyManager(cfg)

	base := time.Second
	floor := 250 * time.Millisecond

	if got := dm.Interval(base, floor, 0, 0); got != base {
		t.Errorf("interval at score 0 = %v, expected %v", got, base)
	}
	// max_at 20 with multiplier 1.0 doubles the speed.
	if got := dm.Interval(base, floor, 20, 0); got != 500*time.Millisecond {
		t.Errorf("interval at max difficulty = %v, expected 500ms", got)
	}
	if got := dm.Interval(base, floor, 10, 0); got >= base || got <= 500*time.Millisecond {
		t.Errorf("interval at half difficulty = %v, expected between 500ms and 1s", got)
	}

	dm.SetEnabled(false)
	if got := dm.Interval(base, floor, 20, 0); got != base {
		t.Errorf("disabled progression should keep base interval, got %v", got)
	}
}

func TestDifficultyLevelTime(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.5,
		Progression:  ProgressionConfig{Type: "time", MaxAt: 100},
	})

	if got := dm.Level(0, 0); got != 0.5 {
		t.Errorf("Level at tick 0 = %v, expected 0.5", got)
	}
	if got := dm.Level(0, 1000); got != 1.0 {
		t.Errorf("Level past max_at = %v, expected 1.0", got)
	}
}
