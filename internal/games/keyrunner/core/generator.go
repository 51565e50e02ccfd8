package core

import (
	"fmt"
	"math/rand"
	"time"
)

// Source is the randomness the generator draws from.
// *math/rand.Rand satisfies it; tests may inject scripted sources.
type Source interface {
	Intn(n int) int
	Float64() float64
}

// NewSource returns a seeded *rand.Rand. Seed 0 means seed from the clock.
func NewSource(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// GenParams configures maze generation.
type GenParams struct {
	Rows int
	Cols int

	// Scatter classification. A cell becomes Empty with EmptyProbability,
	// an Obstacle candidate with ObstacleProbability, a Key candidate otherwise.
	EmptyProbability    float64
	ObstacleProbability float64

	// PathStepBias is the probability that a carving step goes down.
	// The remainder is split evenly between left and right.
	PathStepBias float64

	// MaxAttempts bounds how many times scattering is redone when no valid
	// start cells exist.
	MaxAttempts int

	// MinSpawnDistance is the preferred Manhattan distance between the runner
	// and pursuer starts. 1 places the pursuer on the nearest free cell.
	MinSpawnDistance int
}

// DefaultGenParams returns the canonical 20x12 layout.
func DefaultGenParams() GenParams {
	return GenParams{
		Rows:                20,
		Cols:                12,
		EmptyProbability:    0.7,
		ObstacleProbability: 0.2,
		PathStepBias:        1.0 / 3.0,
		MaxAttempts:         32,
		MinSpawnDistance:    1,
	}
}

// Validate checks that the parameters can always produce a level.
func (p GenParams) Validate() error {
	switch {
	// Row 0 holds both spawns and the last row is the gate, so a key needs a
	// third row to live in.
	case p.Rows < 3 || p.Cols < 2:
		return fmt.Errorf("keyrunner: grid must be at least 3x2, got %dx%d", p.Rows, p.Cols)
	case p.EmptyProbability < 0 || p.EmptyProbability > 1:
		return fmt.Errorf("keyrunner: empty probability %.3f outside [0,1]", p.EmptyProbability)
	case p.ObstacleProbability < 0 || p.ObstacleProbability > 1:
		return fmt.Errorf("keyrunner: obstacle probability %.3f outside [0,1]", p.ObstacleProbability)
	case p.EmptyProbability+p.ObstacleProbability > 1:
		return fmt.Errorf("keyrunner: empty + obstacle probability exceeds 1")
	case p.PathStepBias <= 0 || p.PathStepBias > 1:
		return fmt.Errorf("keyrunner: path step bias %.3f outside (0,1]", p.PathStepBias)
	case p.MaxAttempts < 1:
		return fmt.Errorf("keyrunner: max attempts must be positive")
	}
	return nil
}

// Level is one generated board together with its starting positions.
type Level struct {
	Grid         *Grid
	TotalKeys    int
	RunnerStart  Pos
	PursuerStart Pos
	EntryCol     int // column the carved corridor starts from
	Attempts     int // scatter passes needed
}

// Generator builds levels by path carving plus terrain scattering.
type Generator struct {
	params GenParams
	rng    Source
}

// NewGenerator validates p and returns a generator drawing from rng.
func NewGenerator(p GenParams, rng Source) (*Generator, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = NewSource(0)
	}
	if p.MinSpawnDistance < 1 {
		p.MinSpawnDistance = 1
	}
	return &Generator{params: p, rng: rng}, nil
}

// Params returns the generation parameters.
func (gen *Generator) Params() GenParams {
	return gen.params
}

// Generate builds a level whose corridor starts at a random top-row column.
func (gen *Generator) Generate() (Level, error) {
	return gen.GenerateFrom(gen.rng.Intn(gen.params.Cols))
}

// GenerateFrom builds a level whose corridor starts at (0, col).
// col is clamped into the grid.
func (gen *Generator) GenerateFrom(col int) (Level, error) {
	p := gen.params
	col = clamp(col, 0, p.Cols-1)

	carved := NewGrid(p.Rows, p.Cols)
	gen.carve(carved, col)

	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		g := carved.Clone()
		gen.scatter(g)
		g.fillRow(g.LastRow(), Obstacle)
		gen.ensureKey(g)
		for i, t := range g.cells {
			if t == Path {
				g.cells[i] = Empty
			}
		}

		runner, ok := runnerStart(g, col)
		if !ok {
			continue
		}
		pursuer, ok := pursuerStart(g, col, runner, p.MinSpawnDistance)
		if !ok {
			continue
		}

		return Level{
			Grid:         g,
			TotalKeys:    g.Count(Key),
			RunnerStart:  runner,
			PursuerStart: pursuer,
			EntryCol:     col,
			Attempts:     attempt,
		}, nil
	}

	return Level{}, fmt.Errorf("keyrunner: %dx%d grid after %d attempts: %w",
		p.Rows, p.Cols, p.MaxAttempts, ErrGenerationExhausted)
}

// carve walks from (0, col) to the last row, marking every visited cell Path.
// Horizontal steps that would leave the grid are redrawn.
func (gen *Generator) carve(g *Grid, col int) {
	cur := P(0, col)
	g.set(cur, Path)

	side := (1 - gen.params.PathStepBias) / 2
	for cur.Row < g.LastRow() {
		var d Dir
		switch r := gen.rng.Float64(); {
		case r < gen.params.PathStepBias:
			d = DirDown
		case r < gen.params.PathStepBias+side:
			d = DirLeft
		default:
			d = DirRight
		}

		next := cur.Step(d)
		if !g.InBounds(next) {
			continue
		}
		cur = next
		g.set(cur, Path)
	}
}

// scatter classifies every cell that is still Empty.
func (gen *Generator) scatter(g *Grid) {
	emptyP := gen.params.EmptyProbability
	obstacleP := emptyP + gen.params.ObstacleProbability

	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			p := P(r, c)
			if g.Get(p) != Empty {
				continue
			}

			roll := gen.rng.Float64()
			if roll < emptyP {
				continue
			}
			// Obstacles never touch the corridor; such cells fall through to the key rule.
			if roll < obstacleP && !g.hasNeighbour(p, Path) {
				g.set(p, Obstacle)
				continue
			}
			if !g.hasNeighbour(p, Key) {
				g.set(p, Key)
			}
		}
	}
}

// ensureKey converts a random corridor cell into a Key when scattering
// produced none. Cells below the top row are preferred so the entry stays open.
func (gen *Generator) ensureKey(g *Grid) {
	if g.Count(Key) > 0 {
		return
	}

	corridor := g.Positions(Path)
	if len(corridor) == 0 {
		return
	}
	var below []Pos
	for _, p := range corridor {
		if p.Row > 0 {
			below = append(below, p)
		}
	}
	if len(below) > 0 {
		corridor = below
	}
	g.set(corridor[gen.rng.Intn(len(corridor))], Key)
}

// spawnOrder returns every column ordered by distance from col,
// nearest first, left before right on ties.
func spawnOrder(col, cols int) []int {
	order := make([]int, 0, cols)
	order = append(order, col)
	for d := 1; len(order) < cols; d++ {
		if col-d >= 0 {
			order = append(order, col-d)
		}
		if col+d < cols {
			order = append(order, col+d)
		}
	}
	return order
}

func spawnable(g *Grid, p Pos) bool {
	t := g.Get(p)
	return t != Obstacle && t != Key
}

func runnerStart(g *Grid, col int) (Pos, bool) {
	for _, c := range spawnOrder(col, g.cols) {
		if p := P(0, c); spawnable(g, p) {
			return p, true
		}
	}
	return Pos{}, false
}

func pursuerStart(g *Grid, col int, runner Pos, minDist int) (Pos, bool) {
	fallback, found := Pos{}, false
	for _, c := range spawnOrder(col, g.cols) {
		p := P(0, c)
		if p == runner || !spawnable(g, p) {
			continue
		}
		if p.Manhattan(runner) >= minDist {
			return p, true
		}
		if !found {
			fallback, found = p, true
		}
	}
	return fallback, found
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
