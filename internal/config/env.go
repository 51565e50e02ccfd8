package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables that override the configuration file.
const (
	EnvRows                = "KEYRUNNER_ROWS"
	EnvCols                = "KEYRUNNER_COLS"
	EnvObstacleProbability = "KEYRUNNER_OBSTACLE_PROBABILITY"
	EnvPathStepBias        = "KEYRUNNER_PATH_STEP_BIAS"
	EnvStrategy            = "KEYRUNNER_STRATEGY"
	EnvPursuitIntervalMs   = "KEYRUNNER_PURSUIT_INTERVAL_MS"
)

// LoadDotEnv loads variables from the given .env files, or ./.env when none
// are given. Missing files are not an error; variables already set in the
// process environment win.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config: cannot load %s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnv loads ./.env and applies KEYRUNNER_* overrides to cfg.
func ApplyEnv(cfg *KeyRunnerConfig) error {
	if err := LoadDotEnv(); err != nil {
		return err
	}

	if err := envInt(EnvRows, &cfg.Grid.Rows); err != nil {
		return err
	}
	if err := envInt(EnvCols, &cfg.Grid.Cols); err != nil {
		return err
	}
	if err := envFloat(EnvObstacleProbability, &cfg.Generation.ObstacleProbability); err != nil {
		return err
	}
	if err := envFloat(EnvPathStepBias, &cfg.Generation.PathStepBias); err != nil {
		return err
	}
	if err := envInt(EnvPursuitIntervalMs, &cfg.Pursuit.IntervalMs); err != nil {
		return err
	}
	if v, ok := os.LookupEnv(EnvStrategy); ok && strings.TrimSpace(v) != "" {
		cfg.Pursuit.Strategy = strings.ToLower(strings.TrimSpace(v))
	}
	return nil
}

func envInt(key string, dst *int) error {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("config: %s must be an integer: %w", key, err)
	}
	*dst = n
	return nil
}

func envFloat(key string, dst *float64) error {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return fmt.Errorf("config: %s must be a number: %w", key, err)
	}
	*dst = f
	return nil
}
