package keyrunner

import "github.com/vovakirdan/keyrunner/internal/games/keyrunner/core"

// RunState names where the run is.
type RunState string

const (
	StatePlaying     RunState = "playing"
	StatePaused      RunState = "paused"
	StateExitOpen    RunState = "exit_open"
	StateCaught      RunState = "caught"
	StatePausedSmall RunState = "paused_small_window"
	StateFailed      RunState = "failed"
)

// Snapshot captures the game state for determinism tests and replay checks.
type Snapshot struct {
	Frame        uint64
	Seed         int64
	Mode         string
	Core         core.Snapshot
	PursuitEvery int
	Catches      int
	State        RunState
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Frame:        g.frame,
		Seed:         g.seed,
		Mode:         string(g.mode),
		PursuitEvery: g.pursuitEvery,
		Catches:      g.catches,
		State:        StatePlaying,
	}
	if g.session == nil {
		snap.State = StateFailed
		return snap
	}
	snap.Core = g.session.Snapshot()

	switch {
	case g.gameOver:
		snap.State = StateCaught
	case g.tooSmall:
		snap.State = StatePausedSmall
	case snap.Core.Paused:
		snap.State = StatePaused
	case snap.Core.BottomRowCleared:
		snap.State = StateExitOpen
	}
	return snap
}
