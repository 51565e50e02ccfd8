package keyrunner

import (
	"sync"

	"github.com/vovakirdan/keyrunner/internal/config"
	"github.com/vovakirdan/keyrunner/internal/games/keyrunner/core"
)

// Registry factories take no arguments, so the CLI installs the loaded
// configuration here before creating a game.
var (
	settingsMu sync.RWMutex
	settings   = config.DefaultKeyRunnerConfig()
)

// SetConfig sets the configuration used by games created afterwards.
func SetConfig(cfg config.KeyRunnerConfig) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	settings = cfg
}

// Config returns the configuration new games start with.
func Config() config.KeyRunnerConfig {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return settings
}

// GenParams converts the generation settings into generator parameters.
func GenParams(cfg config.KeyRunnerConfig) core.GenParams {
	return core.GenParams{
		Rows:                cfg.Grid.Rows,
		Cols:                cfg.Grid.Cols,
		EmptyProbability:    cfg.Generation.EmptyProbability,
		ObstacleProbability: cfg.Generation.ObstacleProbability,
		PathStepBias:        cfg.Generation.PathStepBias,
		MaxAttempts:         cfg.Generation.MaxAttempts,
		MinSpawnDistance:    cfg.Generation.MinSpawnDistance,
	}
}

// Strategy returns the pursuit strategy for mode. ModeAStar always chases
// with A*; ModeClassic follows the configuration.
func Strategy(cfg config.KeyRunnerConfig, mode Mode) (core.Strategy, error) {
	name := cfg.Pursuit.Strategy
	if mode == ModeAStar {
		name = "astar"
	}
	return core.ParseStrategy(name, cfg.Pursuit.RecomputeEvery)
}
