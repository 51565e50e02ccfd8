package core

import (
	"container/heap"
	"fmt"
	"strings"
)

// Strategy picks the pursuer's next cell toward target.
// ok is false when the pursuer should stay put this tick.
type Strategy interface {
	Name() string
	Next(g *Grid, p *Pursuer, target Pos) (next Pos, ok bool)
}

// ParseStrategy returns the strategy registered under name ("greedy" or "astar").
func ParseStrategy(name string, recomputeEvery int) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "greedy":
		return Greedy{}, nil
	case "astar", "a*":
		return AStar{RecomputeEvery: recomputeEvery}, nil
	}
	return nil, fmt.Errorf("keyrunner: unknown pursuit strategy %q", name)
}

// Greedy steps along the axis with the larger distance to the target,
// preferring rows on ties. Obstacles and keys block the step.
type Greedy struct{}

// Name returns the strategy identifier.
func (Greedy) Name() string { return "greedy" }

// Next implements Strategy.
func (Greedy) Next(g *Grid, p *Pursuer, target Pos) (Pos, bool) {
	from := p.Pos
	dr := target.Row - from.Row
	dc := target.Col - from.Col
	if dr == 0 && dc == 0 {
		return from, false
	}

	next := from
	if abs(dr) >= abs(dc) {
		next.Row += sign(dr)
	} else {
		next.Col += sign(dc)
	}
	next.Row = clamp(next.Row, 0, g.Rows()-1)
	next.Col = clamp(next.Col, 0, g.Cols()-1)

	if t := g.Get(next); t == Obstacle || t == Key {
		return from, false
	}
	return next, true
}

// AStar follows a shortest 4-directional path where only obstacles block.
// RecomputeEvery > 1 reuses the cached route for that many ticks.
type AStar struct {
	RecomputeEvery int
}

// Name returns the strategy identifier.
func (AStar) Name() string { return "astar" }

// Next implements Strategy.
func (a AStar) Next(g *Grid, p *Pursuer, target Pos) (Pos, bool) {
	every := a.RecomputeEvery
	if every < 1 {
		every = 1
	}

	if p.pathAge >= every || !cachedRouteUsable(g, p) {
		p.path = FindPath(g, p.Pos, target, func(t Terrain) bool { return t != Obstacle })
		p.pathAge = 0
	}
	p.pathAge++

	if len(p.path) < 2 {
		return p.Pos, false
	}
	return p.path[1], true
}

func cachedRouteUsable(g *Grid, p *Pursuer) bool {
	return len(p.path) >= 2 && p.path[0] == p.Pos && g.Get(p.path[1]) != Obstacle
}

// PursuitEngine moves the pursuer one step per tick using a Strategy.
// It holds no timer; the host decides when to tick.
type PursuitEngine struct {
	strategy Strategy
}

// NewPursuitEngine creates an engine. A nil strategy means Greedy.
func NewPursuitEngine(s Strategy) *PursuitEngine {
	if s == nil {
		s = Greedy{}
	}
	return &PursuitEngine{strategy: s}
}

// Strategy returns the active strategy.
func (pe *PursuitEngine) Strategy() Strategy {
	return pe.strategy
}

// Tick advances the pursuer toward the runner.
// The pursuer never leaves the grid, enters an obstacle or lands on the
// runner; choosing the runner's cell emits RunnerCaught instead.
func (pe *PursuitEngine) Tick(g *Grid, ents *Entities) TickResult {
	p := &ents.pursuer
	runner := ents.runner.Pos
	res := TickResult{From: p.Pos, To: p.Pos}

	next, ok := pe.strategy.Next(g, p, runner)
	if !ok || next == p.Pos || !g.InBounds(next) || g.Get(next) == Obstacle {
		return res
	}
	if next == runner {
		res.Events = append(res.Events, Event{Kind: EventRunnerCaught, Pos: runner})
		return res
	}
	d, adjacent := p.Pos.DirTo(next)
	if !adjacent {
		return res
	}

	p.Pos = next
	p.LastDir = d
	p.Steps++
	if len(p.path) >= 2 && p.path[1] == next {
		p.path = p.path[1:]
	}

	res.Moved = true
	res.To = next
	res.Events = append(res.Events, Event{Kind: EventPursuerMoved, Pos: next})
	return res
}

// FindPath returns a shortest 4-directional route from start to goal,
// inclusive of both ends, or nil when goal is unreachable. Cells for which
// passable returns false are never entered; goal is always enterable.
// Manhattan distance is the heuristic.
func FindPath(g *Grid, start, goal Pos, passable func(Terrain) bool) []Pos {
	if !g.InBounds(start) || !g.InBounds(goal) {
		return nil
	}
	if start == goal {
		return []Pos{start}
	}

	n := g.rows * g.cols
	cost := make([]int, n)
	prev := make([]int, n)
	closed := make([]bool, n)
	for i := range cost {
		cost[i] = -1
		prev[i] = -1
	}

	startIdx, goalIdx := g.index(start), g.index(goal)
	cost[startIdx] = 0
	open := &pathHeap{{idx: startIdx, g: 0, f: start.Manhattan(goal)}}

	for open.Len() > 0 {
		cur := heap.Pop(open).(pathNode)
		if closed[cur.idx] {
			continue
		}
		if cur.idx == goalIdx {
			return rebuildPath(g, prev, goalIdx)
		}
		closed[cur.idx] = true

		pos := P(cur.idx/g.cols, cur.idx%g.cols)
		for _, nb := range g.neighbours(pos) {
			ni := g.index(nb)
			if closed[ni] || (ni != goalIdx && !passable(g.cells[ni])) {
				continue
			}
			ng := cur.g + 1
			if cost[ni] >= 0 && ng >= cost[ni] {
				continue
			}
			cost[ni] = ng
			prev[ni] = cur.idx
			heap.Push(open, pathNode{idx: ni, g: ng, f: ng + nb.Manhattan(goal)})
		}
	}
	return nil
}

func rebuildPath(g *Grid, prev []int, goal int) []Pos {
	var rev []Pos
	for i := goal; i >= 0; i = prev[i] {
		rev = append(rev, P(i/g.cols, i%g.cols))
	}
	path := make([]Pos, len(rev))
	for i, p := range rev {
		path[len(rev)-1-i] = p
	}
	return path
}

type pathNode struct {
	idx int
	g   int
	f   int
}

// pathHeap is a min-heap on f, preferring deeper nodes on ties.
type pathHeap []pathNode

func (h pathHeap) Len() int { return len(h) }

func (h pathHeap) Less(i, j int) bool {
	if h[i].f == h[j].f {
		return h[i].g > h[j].g
	}
	return h[i].f < h[j].f
}

func (h pathHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *pathHeap) Push(x any) { *h = append(*h, x.(pathNode)) }

func (h *pathHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
