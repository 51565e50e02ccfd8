package core

import "fmt"

// ProgressionState is the key and score bookkeeping for a session.
type ProgressionState struct {
	TotalKeys        int
	CollectedKeys    int
	Score            int
	BottomRowCleared bool

	Level         int // 1-based level number
	KeysCollected int // keys picked up across every level of this run
}

// ProgressionController owns ProgressionState and drives level transitions.
type ProgressionController struct {
	state ProgressionState
	gen   *Generator
}

// NewProgressionController creates a controller that regenerates levels with gen.
func NewProgressionController(gen *Generator) *ProgressionController {
	return &ProgressionController{gen: gen}
}

// State returns a copy of the current progression.
func (pc *ProgressionController) State() ProgressionState {
	return pc.state
}

// Generator returns the generator used for level transitions.
func (pc *ProgressionController) Generator() *Generator {
	return pc.gen
}

// Install makes lvl the current level without touching score.
// A level without keys opens its exit immediately.
func (pc *ProgressionController) Install(lvl Level, ents *Entities) (*Grid, []Event) {
	ents.reset(lvl.RunnerStart, lvl.PursuerStart)
	pc.state.TotalKeys = lvl.TotalKeys
	pc.state.CollectedKeys = 0
	pc.state.BottomRowCleared = false
	pc.state.Level++

	events := []Event{{Kind: EventLevelStarted, Pos: lvl.RunnerStart}}
	grid := lvl.Grid
	if lvl.TotalKeys == 0 {
		grid = pc.clearBottomRow(grid)
		events = append(events, Event{Kind: EventBottomRowCleared, Pos: P(grid.LastRow(), 0)})
	}
	return grid, events
}

// CollectKey records one collected key. When the last key of the level is
// taken the exit row is cleared on a copy of g.
func (pc *ProgressionController) CollectKey(g *Grid) (*Grid, []Event) {
	pc.state.KeysCollected++
	if pc.state.CollectedKeys < pc.state.TotalKeys {
		pc.state.CollectedKeys++
	}
	if pc.state.CollectedKeys < pc.state.TotalKeys || pc.state.BottomRowCleared {
		return g, nil
	}

	g = pc.clearBottomRow(g)
	pc.state.CollectedKeys = 0
	return g, []Event{{Kind: EventBottomRowCleared, Pos: P(g.LastRow(), 0)}}
}

// AdvanceLevel scores the exit and installs a level whose corridor enters at exitCol.
func (pc *ProgressionController) AdvanceLevel(exitCol int, ents *Entities) (*Grid, []Event, error) {
	lvl, err := pc.gen.GenerateFrom(exitCol)
	if err != nil {
		return nil, nil, fmt.Errorf("keyrunner: advance to level %d: %w", pc.state.Level+1, err)
	}
	pc.state.Score++
	grid, events := pc.Install(lvl, ents)
	return grid, events, nil
}

// Restart resets score and level count and installs a fresh level.
func (pc *ProgressionController) Restart(ents *Entities) (*Grid, []Event, error) {
	lvl, err := pc.gen.Generate()
	if err != nil {
		return nil, nil, fmt.Errorf("keyrunner: restart: %w", err)
	}
	pc.state = ProgressionState{}
	grid, events := pc.Install(lvl, ents)
	events = append([]Event{{Kind: EventRestarted, Pos: lvl.RunnerStart}}, events...)
	return grid, events, nil
}

func (pc *ProgressionController) clearBottomRow(g *Grid) *Grid {
	pc.state.BottomRowCleared = true
	return g.WithRow(g.LastRow(), Empty)
}
