package keyrunner

import (
	"reflect"
	"strings"
	"testing"

	platformcore "github.com/vovakirdan/keyrunner/internal/core"
	"github.com/vovakirdan/keyrunner/internal/config"
	"github.com/vovakirdan/keyrunner/internal/games/keyrunner/core"
	"github.com/vovakirdan/keyrunner/internal/registry"
	"github.com/vovakirdan/keyrunner/internal/storage"
)

func testRuntime(seed int64) platformcore.RuntimeConfig {
	return platformcore.RuntimeConfig{
		Seed:     seed,
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
	}
}

// steadyConfig paces the pursuer at exactly one step per second.
func steadyConfig() config.KeyRunnerConfig {
	cfg := config.DefaultKeyRunnerConfig()
	cfg.Difficulty.Enabled = false
	cfg.Difficulty.InitialLevel = 0
	cfg.Pursuit.IntervalMs = 1000
	return cfg
}

func TestDeterminism(t *testing.T) {
	g1 := NewWithConfig(ModeClassic, steadyConfig())
	g1.Reset(testRuntime(12345))
	g2 := NewWithConfig(ModeClassic, steadyConfig())
	g2.Reset(testRuntime(12345))

	actions := []platformcore.Action{
		platformcore.ActionDown, platformcore.ActionLeft, platformcore.ActionDown,
		platformcore.ActionRight, platformcore.ActionUp,
	}
	input := platformcore.NewInputFrame()
	for i := 0; i < 300; i++ {
		input.Clear()
		if i%7 == 0 {
			input.Set(actions[(i/7)%len(actions)])
		}
		g1.Step(input)
		g2.Step(input)
	}

	s1, s2 := g1.Snapshot(), g2.Snapshot()
	if !reflect.DeepEqual(s1, s2) {
		t.Fatalf("snapshots differ:\n%+v\n%+v", s1, s2)
	}
}

func TestPursuitPacedInFrames(t *testing.T) {
	g := NewWithConfig(ModeClassic, steadyConfig())
	g.Reset(testRuntime(7))

	if g.pursuitEvery != 30 {
		t.Fatalf("pursuitEvery = %d, want 30", g.pursuitEvery)
	}

	idle := platformcore.NewInputFrame()
	for i := 0; i < 29; i++ {
		g.Step(idle)
	}
	if ticks := g.Snapshot().Core.Ticks; ticks != 0 {
		t.Fatalf("ticks after 29 frames = %d, want 0", ticks)
	}
	g.Step(idle)
	if ticks := g.Snapshot().Core.Ticks; ticks != 1 {
		t.Fatalf("ticks after 30 frames = %d, want 1", ticks)
	}
}

func TestDifficultyShortensInterval(t *testing.T) {
	cfg := steadyConfig()
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = 1
	cfg.Difficulty.Scaling.SpeedMultiplier = 1
	cfg.Pursuit.MinIntervalMs = 100

	g := NewWithConfig(ModeClassic, cfg)
	g.Reset(testRuntime(7))

	if g.pursuitEvery != 15 {
		t.Errorf("pursuitEvery = %d, want 15 at double speed", g.pursuitEvery)
	}
}

func TestPauseStopsEverything(t *testing.T) {
	g := NewWithConfig(ModeClassic, steadyConfig())
	g.Reset(testRuntime(3))

	in := platformcore.NewInputFrame()
	in.Set(platformcore.ActionPause)
	g.Step(in)
	if !g.State().Paused {
		t.Fatal("expected paused")
	}
	before := g.Snapshot().Core

	in.Clear()
	in.Set(platformcore.ActionDown)
	for i := 0; i < 120; i++ {
		g.Step(in)
	}
	after := g.Snapshot().Core
	if !reflect.DeepEqual(before, after) {
		t.Errorf("state changed while paused")
	}
	if g.Snapshot().State != StatePaused {
		t.Errorf("State = %s, want %s", g.Snapshot().State, StatePaused)
	}
}

func TestCaughtEndsGame(t *testing.T) {
	g := NewWithConfig(ModeClassic, steadyConfig())
	g.Reset(testRuntime(5))

	notices := g.handle([]core.Event{{Kind: core.EventRunnerCaught}})
	if len(notices) != 1 || notices[0] != "caught" {
		t.Errorf("notices = %v", notices)
	}
	if !g.State().GameOver {
		t.Fatal("expected game over")
	}
	if g.Snapshot().State != StateCaught {
		t.Errorf("State = %s", g.Snapshot().State)
	}
	if run := g.Run(); run.EndReason != storage.EndCaught || run.Catches != 1 {
		t.Errorf("run = %+v", run)
	}

	// Moves are ignored until restart.
	in := platformcore.NewInputFrame()
	in.Set(platformcore.ActionDown)
	before := g.Snapshot().Core
	g.Step(in)
	if !reflect.DeepEqual(before, g.Snapshot().Core) {
		t.Error("game over run still accepts input")
	}

	in.Clear()
	in.Set(platformcore.ActionRestart)
	g.Step(in)
	if g.State().GameOver || g.State().Paused {
		t.Errorf("restart left state %+v", g.State())
	}
	if g.Run().Catches != 0 {
		t.Error("catches survive restart")
	}
}

func TestCaughtKeepsPlayingWhenConfigured(t *testing.T) {
	cfg := steadyConfig()
	cfg.Pursuit.CaughtEndsGame = false
	g := NewWithConfig(ModeClassic, cfg)
	g.Reset(testRuntime(5))

	g.handle([]core.Event{{Kind: core.EventRunnerCaught}})
	g.handle([]core.Event{{Kind: core.EventRunnerCaught}})

	if g.State().GameOver {
		t.Fatal("game should continue")
	}
	if g.Run().Catches != 2 {
		t.Errorf("catches = %d, want 2", g.Run().Catches)
	}
}

func TestRestartAnytime(t *testing.T) {
	g := NewWithConfig(ModeClassic, steadyConfig())
	g.Reset(testRuntime(9))

	idle := platformcore.NewInputFrame()
	for i := 0; i < 90; i++ {
		g.Step(idle)
	}

	in := platformcore.NewInputFrame()
	in.Set(platformcore.ActionRestart)
	res := g.Step(in)

	if len(res.Notices) == 0 || res.Notices[0] != "restart" {
		t.Errorf("notices = %v", res.Notices)
	}
	snap := g.Snapshot().Core
	if snap.Ticks != 0 || snap.Score != 0 || snap.Level != 1 {
		t.Errorf("after restart: %+v", snap)
	}
}

func TestWindowTooSmall(t *testing.T) {
	g := NewWithConfig(ModeClassic, steadyConfig())
	rc := testRuntime(1)
	rc.ScreenW, rc.ScreenH = 10, 5
	g.Reset(rc)

	if g.Snapshot().State != StatePausedSmall {
		t.Fatalf("State = %s, want %s", g.Snapshot().State, StatePausedSmall)
	}
	idle := platformcore.NewInputFrame()
	for i := 0; i < 60; i++ {
		g.Step(idle)
	}
	if g.Snapshot().Core.Ticks != 0 {
		t.Error("pursuer moved while the window was too small")
	}

	g.Resize(80, 24)
	if g.Snapshot().State != StatePlaying {
		t.Errorf("State after resize = %s", g.Snapshot().State)
	}
}

func TestNarrowWindowUsesSingleWidthCells(t *testing.T) {
	g := NewWithConfig(ModeClassic, steadyConfig())
	rc := testRuntime(1)
	rc.ScreenW = 20
	g.Reset(rc)

	if g.tooSmall || g.cellW != 1 {
		t.Errorf("tooSmall=%v cellW=%d", g.tooSmall, g.cellW)
	}
}

func TestLayoutBoundaries(t *testing.T) {
	// The default board is 20x12: 26 columns wide with double cells,
	// 24 rows tall with the HUD and help lines.
	tests := []struct {
		w, h     int
		tooSmall bool
		cellW    int
		offsetX  int
	}{
		{26, 24, false, 2, 0},
		{30, 24, false, 2, 2},
		{25, 24, false, 1, 5},
		{13, 24, true, 1, 0},
		{80, 23, true, 2, 27},
	}

	for _, tt := range tests {
		g := NewWithConfig(ModeClassic, steadyConfig())
		rc := testRuntime(1)
		rc.ScreenW, rc.ScreenH = tt.w, tt.h
		g.Reset(rc)

		if g.tooSmall != tt.tooSmall || g.cellW != tt.cellW || g.offsetX != tt.offsetX {
			t.Errorf("%dx%d: tooSmall=%v cellW=%d offsetX=%d, want %v %d %d",
				tt.w, tt.h, g.tooSmall, g.cellW, g.offsetX, tt.tooSmall, tt.cellW, tt.offsetX)
		}
	}
}

func TestRender(t *testing.T) {
	g := NewWithConfig(ModeClassic, steadyConfig())
	g.Reset(testRuntime(11))

	screen := platformcore.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	for _, want := range []string{"Key Runner", "@", "&", "Keys 0/"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}
}

func TestInvalidConfigFailsCleanly(t *testing.T) {
	cfg := steadyConfig()
	cfg.Grid.Rows = 1
	g := NewWithConfig(ModeClassic, cfg)
	g.Reset(testRuntime(1))

	if g.Err() == nil {
		t.Fatal("expected an error")
	}
	if !g.State().GameOver {
		t.Error("failed game should report game over")
	}
	g.Step(platformcore.NewInputFrame())

	screen := platformcore.NewScreen(80, 24)
	g.Render(screen)
	if strings.TrimSpace(screen.String()) == "" {
		t.Error("expected an error message on screen")
	}
}

func TestRegisteredModes(t *testing.T) {
	for _, id := range []string{string(ModeClassic), string(ModeAStar)} {
		if !registry.Exists(id) {
			t.Fatalf("mode %q not registered", id)
		}
	}

	game, err := registry.Create(string(ModeAStar))
	if err != nil {
		t.Fatal(err)
	}
	game.Reset(testRuntime(4))

	kr, ok := game.(*Game)
	if !ok {
		t.Fatalf("unexpected type %T", game)
	}
	if got := kr.Snapshot().Core.Strategy; got != "astar" {
		t.Errorf("strategy = %q, want astar", got)
	}
}

func TestRunSummary(t *testing.T) {
	g := NewWithConfig(ModeClassic, steadyConfig())
	g.Reset(testRuntime(21))

	idle := platformcore.NewInputFrame()
	for i := 0; i < 60; i++ {
		g.Step(idle)
	}

	run := g.Run()
	if run.GameID != string(ModeClassic) || run.Seed != 21 || run.Strategy != "greedy" {
		t.Errorf("run = %+v", run)
	}
	if run.Duration.Seconds() != 2 {
		t.Errorf("duration = %v, want 2s", run.Duration)
	}
}
