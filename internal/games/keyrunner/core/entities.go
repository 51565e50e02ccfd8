package core

import "fmt"

// Runner is the player-controlled entity.
type Runner struct {
	Pos   Pos
	Moves int // successful moves on the current level
}

// Pursuer is the AI-controlled entity chasing the runner.
type Pursuer struct {
	Pos     Pos
	LastDir Dir
	Steps   int // successful steps on the current level

	// Cached route used by throttled path search. path[0] is Pos.
	path    []Pos
	pathAge int
}

// Entities holds both positions for one level.
// The runner changes only through MoveRunner, the pursuer only through a
// PursuitEngine tick.
type Entities struct {
	runner  Runner
	pursuer Pursuer
}

// NewEntities places the runner and pursuer.
func NewEntities(runner, pursuer Pos) Entities {
	return Entities{
		runner:  Runner{Pos: runner},
		pursuer: Pursuer{Pos: pursuer, LastDir: DirDown},
	}
}

// Runner returns a copy of the runner state.
func (e Entities) Runner() Runner {
	return e.runner
}

// Pursuer returns a copy of the pursuer state without its cached route.
func (e Entities) Pursuer() Pursuer {
	p := e.pursuer
	p.path = nil
	return p
}

// reset places both entities at the start of a new level.
func (e *Entities) reset(runner, pursuer Pos) {
	*e = NewEntities(runner, pursuer)
}

// MoveRunner applies one directional step for the runner on grid g.
//
// Blocked moves (grid edge, obstacles, the closed exit row, the pursuer's
// cell) are silent no-ops. Stepping onto a key collects it: the returned grid
// is a copy with that cell Empty. Stepping down into the last row while
// exitOpen emits LevelExit instead of moving.
//
// The returned grid is g itself when nothing changed.
func (e *Entities) MoveRunner(g *Grid, d Dir, exitOpen bool) (MoveResult, *Grid, error) {
	from := e.runner.Pos
	res := MoveResult{From: from, To: from}
	if !d.Valid() {
		return res, g, fmt.Errorf("keyrunner: direction %d: %w", d, ErrInvalidDirection)
	}

	to := from.Step(d)
	if !g.InBounds(to) {
		return res, g, nil
	}

	if to.Row == g.LastRow() {
		if exitOpen && d == DirDown {
			res.Events = append(res.Events, Event{Kind: EventLevelExit, Pos: to})
		}
		return res, g, nil
	}

	terrain := g.Get(to)
	if terrain == Obstacle {
		return res, g, nil
	}
	if to == e.pursuer.Pos {
		res.Events = append(res.Events, Event{Kind: EventRunnerCaught, Pos: to})
		return res, g, nil
	}

	e.runner.Pos = to
	e.runner.Moves++
	res.Moved = true
	res.To = to

	if terrain == Key {
		g = g.With(to, Empty)
		res.Events = append(res.Events, Event{Kind: EventKeyCollected, Pos: to})
	}
	return res, g, nil
}
