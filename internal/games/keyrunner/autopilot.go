package keyrunner

import "github.com/vovakirdan/keyrunner/internal/games/keyrunner/core"

// NextMove picks a runner direction for headless play: walk to the nearest
// key, or to the floor once the exit is open. Routes through the pursuer's
// cell are avoided when another route exists.
func NextMove(snap core.Snapshot, g *core.Grid) (core.Dir, bool) {
	var goals []core.Pos
	if snap.BottomRowCleared {
		for c := 0; c < g.Cols(); c++ {
			goals = append(goals, core.P(g.LastRow(), c))
		}
	} else {
		goals = g.Positions(core.Key)
	}
	if len(goals) == 0 {
		return 0, false
	}

	walkable := func(t core.Terrain) bool { return t != core.Obstacle }
	avoiding := g.With(snap.Pursuer, core.Obstacle)

	if path := shortest(avoiding, snap.Runner, goals, walkable); len(path) > 1 {
		return snap.Runner.DirTo(path[1])
	}
	if path := shortest(g, snap.Runner, goals, walkable); len(path) > 1 {
		return snap.Runner.DirTo(path[1])
	}
	return 0, false
}

func shortest(g *core.Grid, from core.Pos, goals []core.Pos, passable func(core.Terrain) bool) []core.Pos {
	var best []core.Pos
	for _, goal := range goals {
		if goal == from {
			continue
		}
		path := core.FindPath(g, from, goal, passable)
		if path != nil && (best == nil || len(path) < len(best)) {
			best = path
		}
	}
	return best
}
