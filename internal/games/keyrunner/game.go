// Package keyrunner adapts the maze runner core to the platform: it drives a
// core.Session from input frames, paces the pursuer in frames and draws the
// board into a platform screen.
package keyrunner

import (
	"fmt"
	"math"
	"time"

	platformcore "github.com/vovakirdan/keyrunner/internal/core"
	"github.com/vovakirdan/keyrunner/internal/config"
	"github.com/vovakirdan/keyrunner/internal/games/keyrunner/core"
	"github.com/vovakirdan/keyrunner/internal/registry"
	"github.com/vovakirdan/keyrunner/internal/storage"
)

// Mode selects the registered variant.
type Mode string

const (
	ModeClassic Mode = "keyrunner"
	ModeAStar   Mode = "keyrunner_astar"
)

func init() {
	registry.Register(string(ModeClassic), func() registry.Game {
		return New(ModeClassic)
	})
	registry.Register(string(ModeAStar), func() registry.Game {
		return New(ModeAStar)
	})
}

const noticeSeconds = 2

// Game implements registry.Game for the maze runner.
type Game struct {
	mode       Mode
	cfg        config.KeyRunnerConfig
	difficulty *config.DifficultyManager
	session    *core.Session
	err        error

	seed     int64
	tickRate int
	frame    uint64

	// Pursuer pacing in frames.
	pursuitEvery     int
	pursuitCountdown int
	pursuitTicks     int

	catches   int
	gameOver  bool
	endReason string

	notice      string
	noticeUntil uint64

	screenW  int
	screenH  int
	tooSmall bool
	cellW    int
	offsetX  int
	offsetY  int
}

// New creates a game using the current package configuration.
func New(mode Mode) *Game {
	return NewWithConfig(mode, Config())
}

// NewWithConfig creates a game with an explicit configuration.
func NewWithConfig(mode Mode, cfg config.KeyRunnerConfig) *Game {
	return &Game{mode: mode, cfg: cfg}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return string(g.mode)
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeAStar {
		return "Key Runner (A* Hunter)"
	}
	return "Key Runner"
}

// Description implements registry.Describer.
func (g *Game) Description() string {
	if g.mode == ModeAStar {
		return "The hunter plans shortest paths around walls"
	}
	return "Collect every key, then drop through the open floor"
}

// Reset starts a new run.
func (g *Game) Reset(rc platformcore.RuntimeConfig) {
	g.seed = rc.Seed
	if g.seed == 0 {
		g.seed = time.Now().UnixNano()
	}
	g.tickRate = rc.TickRate
	if g.tickRate <= 0 {
		g.tickRate = platformcore.DefaultConfig().TickRate
	}
	g.screenW = rc.ScreenW
	g.screenH = rc.ScreenH
	g.frame = 0
	g.catches = 0
	g.gameOver = false
	g.endReason = ""
	g.notice = ""
	g.pursuitTicks = 0
	g.err = nil

	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)

	strategy, err := Strategy(g.cfg, g.mode)
	if err != nil {
		g.fail(err)
		return
	}
	g.session, err = core.NewSession(core.SessionConfig{
		Gen:      GenParams(g.cfg),
		Strategy: strategy,
		Source:   core.NewSource(g.seed),
	})
	if err != nil {
		g.fail(err)
		return
	}

	g.layout()
	g.repace()
	g.say("Collect every key")
}

func (g *Game) fail(err error) {
	g.err = err
	g.session = nil
	g.gameOver = true
	g.endReason = storage.EndError
}

// Step advances one frame.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	g.frame++
	var notices []string

	if g.session == nil {
		return platformcore.StepResult{State: g.State()}
	}

	if in.Has(platformcore.ActionRestart) {
		notices = append(notices, g.restart()...)
		return platformcore.StepResult{State: g.State(), Notices: notices}
	}
	if g.gameOver || g.tooSmall {
		return platformcore.StepResult{State: g.State()}
	}

	if in.Has(platformcore.ActionPause) {
		if g.session.TogglePause() {
			g.say("Paused")
		} else {
			g.say("")
		}
	}

	for i, action := range platformcore.DirectionActions {
		if !in.Has(action) {
			continue
		}
		res, err := g.session.Move(core.Dirs[i])
		if err != nil {
			g.fail(err)
			return platformcore.StepResult{State: g.State()}
		}
		notices = append(notices, g.handle(res.Events)...)
		break
	}

	if !g.gameOver && !g.session.Paused() {
		g.pursuitCountdown--
		if g.pursuitCountdown <= 0 {
			res := g.session.Tick()
			g.pursuitTicks++
			notices = append(notices, g.handle(res.Events)...)
			g.repace()
		}
	}

	return platformcore.StepResult{State: g.State(), Notices: notices}
}

func (g *Game) restart() []string {
	if _, err := g.session.Restart(); err != nil {
		g.fail(err)
		return []string{err.Error()}
	}
	g.frame = 0
	g.catches = 0
	g.gameOver = false
	g.endReason = ""
	g.pursuitTicks = 0
	g.repace()
	g.say("New run")
	return []string{"restart"}
}

// handle reacts to session events and returns notices for the host.
func (g *Game) handle(events []core.Event) []string {
	var notices []string
	for _, ev := range events {
		switch ev.Kind {
		case core.EventKeyCollected:
			p := g.session.Progression()
			if !p.BottomRowCleared {
				g.say(fmt.Sprintf("Key! %d/%d", p.CollectedKeys, p.TotalKeys))
			}
		case core.EventBottomRowCleared:
			g.say("The floor is open, get down!")
			notices = append(notices, "exit open")
		case core.EventLevelStarted:
			lvl := g.session.Progression().Level
			if lvl > 1 {
				g.say(fmt.Sprintf("Level %d", lvl))
				notices = append(notices, fmt.Sprintf("level %d", lvl))
			}
			g.repace()
		case core.EventRunnerCaught:
			g.catches++
			notices = append(notices, "caught")
			if g.cfg.Pursuit.CaughtEndsGame {
				g.gameOver = true
				g.endReason = storage.EndCaught
				g.session.SetPaused(true)
			} else {
				g.say("Caught!")
			}
		}
	}
	return notices
}

// repace recomputes the pursuer cadence from the difficulty and restarts the countdown.
func (g *Game) repace() {
	base := time.Duration(g.cfg.Pursuit.IntervalMs) * time.Millisecond
	floor := time.Duration(g.cfg.Pursuit.MinIntervalMs) * time.Millisecond
	score := 0
	if g.session != nil {
		score = g.session.Progression().Score
	}
	iv := g.difficulty.Interval(base, floor, score, g.pursuitTicks)

	frames := int(math.Round(iv.Seconds() * float64(g.tickRate)))
	if frames < 1 {
		frames = 1
	}
	g.pursuitEvery = frames
	g.pursuitCountdown = frames
}

func (g *Game) say(msg string) {
	g.notice = msg
	g.noticeUntil = g.frame + uint64(noticeSeconds*g.tickRate)
}

// State returns the platform view of the game.
func (g *Game) State() platformcore.GameState {
	if g.session == nil {
		return platformcore.GameState{GameOver: true}
	}
	p := g.session.Progression()
	return platformcore.GameState{
		Score:    p.Score,
		Level:    p.Level,
		GameOver: g.gameOver,
		Paused:   g.session.Paused(),
	}
}

// Err returns the error that stopped the game, if any.
func (g *Game) Err() error {
	return g.err
}

// Session exposes the underlying session.
func (g *Game) Session() *core.Session {
	return g.session
}

// Run summarizes the current run for persistence.
func (g *Game) Run() storage.RunRecord {
	r := storage.RunRecord{
		GameID:    g.ID(),
		Seed:      g.seed,
		Catches:   g.catches,
		EndReason: g.endReason,
	}
	if g.tickRate > 0 {
		r.Duration = time.Duration(g.frame) * time.Second / time.Duration(g.tickRate)
	}
	if g.session != nil {
		snap := g.session.Snapshot()
		p := g.session.Progression()
		r.Strategy = snap.Strategy
		r.Score = p.Score
		r.Levels = p.Level
		r.Keys = p.KeysCollected
	}
	return r
}
