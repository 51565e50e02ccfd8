package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/keyrunner/internal/config"
	"github.com/vovakirdan/keyrunner/internal/games/keyrunner"
	"github.com/vovakirdan/keyrunner/internal/games/keyrunner/core"
	"github.com/vovakirdan/keyrunner/internal/registry"
	"github.com/vovakirdan/keyrunner/internal/storage"
)

var (
	flagAutoMode     string
	flagAutoMoveMs   int
	flagAutoDuration time.Duration
	flagAutoLevels   int
	flagAutoSave     bool
	flagAutoSteady   bool
)

var autoplayCmd = &cobra.Command{
	Use:   "autoplay",
	Short: "Let the autopilot play a headless run",
	Long: `Run a session without a terminal UI. The runner is steered by the
autopilot while the hunter moves on its own wall-clock timer, sped up by the
difficulty settings. The run ends when the runner is caught (if configured),
gets stuck, reaches --levels, or --duration passes.

Examples:
  keyrunner autoplay --seed 42
  keyrunner autoplay --mode keyrunner_astar --levels 5 --move-ms 80
  keyrunner autoplay --duration 2m --save=false --log-level debug
  keyrunner autoplay --steady --move-ms 200`,
	RunE: runAutoplay,
}

func init() {
	autoplayCmd.Flags().StringVar(&flagAutoMode, "mode", string(keyrunner.ModeClassic), "Mode to play")
	autoplayCmd.Flags().IntVar(&flagAutoMoveMs, "move-ms", 120, "Milliseconds between runner moves")
	autoplayCmd.Flags().DurationVar(&flagAutoDuration, "duration", 30*time.Second, "Time limit")
	autoplayCmd.Flags().IntVar(&flagAutoLevels, "levels", 0, "Stop after clearing this many levels (0 = no limit)")
	autoplayCmd.Flags().BoolVar(&flagAutoSave, "save", true, "Record the run in the scores database")
	autoplayCmd.Flags().BoolVar(&flagAutoSteady, "steady", false, "Keep the hunter at its starting speed")
}

// autoRun holds the state shared by the two pacers.
type autoRun struct {
	mu        sync.Mutex
	catches   int
	catchEnds bool
	ended     chan string
	once      sync.Once
}

func (r *autoRun) end(reason string) {
	r.once.Do(func() { r.ended <- reason })
}

func (r *autoRun) caught() {
	r.mu.Lock()
	r.catches++
	ends := r.catchEnds
	r.mu.Unlock()
	if ends {
		r.end(storage.EndCaught)
	}
}

func (r *autoRun) catchCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.catches
}

func runAutoplay(cmd *cobra.Command, _ []string) error {
	logger := newLogger("autoplay")

	if !registry.Exists(flagAutoMode) {
		return fmt.Errorf("unknown mode %q, run 'keyrunner list' to see modes", flagAutoMode)
	}
	mode := keyrunner.Mode(flagAutoMode)
	strategy, err := keyrunner.Strategy(gameConfig, mode)
	if err != nil {
		return err
	}
	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	session, err := core.NewSession(core.SessionConfig{
		Gen:      keyrunner.GenParams(gameConfig),
		Strategy: strategy,
		Source:   core.NewSource(seed),
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, flagAutoDuration)
	defer cancel()

	run := &autoRun{
		catchEnds: gameConfig.Pursuit.CaughtEndsGame,
		ended:     make(chan string, 1),
	}
	difficulty := config.NewDifficultyManager(gameConfig.Difficulty)
	if flagAutoSteady {
		difficulty.SetEnabled(false)
	}
	base := time.Duration(gameConfig.Pursuit.IntervalMs) * time.Millisecond
	floor := time.Duration(gameConfig.Pursuit.MinIntervalMs) * time.Millisecond

	var pursuerTicks int
	var hunter *keyrunner.Pacer
	hunter = keyrunner.NewPacer(difficulty.Interval(base, floor, 0, 0), func() {
		res := session.Tick()
		run.mu.Lock()
		pursuerTicks++
		ticks := pursuerTicks
		run.mu.Unlock()

		if res.Has(core.EventRunnerCaught) {
			logger.Info("caught by the hunter", "at", res.To)
			run.caught()
		}
		score := session.Progression().Score
		hunter.SetInterval(difficulty.Interval(base, floor, score, ticks))
	})

	runner := keyrunner.NewPacer(time.Duration(flagAutoMoveMs)*time.Millisecond, func() {
		snap := session.Snapshot()
		d, ok := keyrunner.NextMove(snap, session.Grid())
		if !ok {
			run.end(storage.EndStuck)
			return
		}
		res, err := session.Move(d)
		if err != nil {
			logger.Error("move failed", "err", err)
			run.end(storage.EndError)
			return
		}
		for _, ev := range res.Events {
			switch ev.Kind {
			case core.EventKeyCollected:
				p := session.Progression()
				logger.Debug("key", "at", ev.Pos, "collected", p.CollectedKeys, "total", p.TotalKeys)
			case core.EventBottomRowCleared:
				logger.Info("exit open", "level", session.Progression().Level)
			case core.EventLevelStarted:
				p := session.Progression()
				logger.Info("level started", "level", p.Level, "score", p.Score, "keys", p.TotalKeys)
				if flagAutoLevels > 0 && p.Score >= flagAutoLevels {
					run.end(storage.EndGoal)
				}
			case core.EventRunnerCaught:
				logger.Info("ran into the hunter", "at", ev.Pos)
				run.caught()
			}
		}
	})

	logger.Info("run started",
		"mode", mode,
		"seed", seed,
		"strategy", strategy.Name(),
		"grid", fmt.Sprintf("%dx%d", gameConfig.Grid.Rows, gameConfig.Grid.Cols),
	)
	start := time.Now()
	hunter.Start(ctx)
	runner.Start(ctx)

	reason := storage.EndTimeout
	select {
	case <-ctx.Done():
	case reason = <-run.ended:
	}
	runner.Stop()
	hunter.Stop()

	p := session.Progression()
	record := storage.RunRecord{
		GameID:    string(mode),
		Player:    "autopilot",
		Seed:      seed,
		Strategy:  strategy.Name(),
		Score:     p.Score,
		Levels:    p.Level,
		Keys:      p.KeysCollected,
		Catches:   run.catchCount(),
		EndReason: reason,
		Duration:  time.Since(start).Round(time.Millisecond),
	}
	logger.Info("run finished",
		"end", record.EndReason,
		"score", record.Score,
		"levels", record.Levels,
		"keys", record.Keys,
		"catches", record.Catches,
		"duration", record.Duration,
	)

	if !flagAutoSave {
		return nil
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("run not saved", "err", err)
		return nil
	}
	defer store.Close()

	id, err := store.SaveRun(record)
	if err != nil {
		return err
	}
	if record.Score > 0 {
		if _, err := store.SaveScore(record.GameID, record.Score); err != nil {
			logger.Warn("score not saved", "err", err)
		}
	}
	logger.Info("run saved", "run", id)
	return nil
}
