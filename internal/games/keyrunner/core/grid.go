package core

import (
	"fmt"
	"strings"
)

// Grid is the maze board: a rows x cols matrix of terrain.
// Cells are stored in row-major order: index = row*cols + col.
//
// A published Grid is treated as immutable. Every gameplay change goes
// through With or WithRow, which return a modified copy.
type Grid struct {
	rows  int
	cols  int
	cells []Terrain
}

// NewGrid creates a grid with every cell Empty.
func NewGrid(rows, cols int) *Grid {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	return &Grid{
		rows:  rows,
		cols:  cols,
		cells: make([]Terrain, rows*cols),
	}
}

// ParseGrid builds a grid from text, one line per row.
// '.' is Empty, '#' is Obstacle and 'k' is Key. Blank lines are ignored.
func ParseGrid(text string) (*Grid, error) {
	var lines [][]rune
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, []rune(line))
		}
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("keyrunner: empty grid text")
	}

	g := NewGrid(len(lines), len(lines[0]))
	for r, line := range lines {
		if len(line) != g.cols {
			return nil, fmt.Errorf("keyrunner: row %d has %d columns, want %d", r, len(line), g.cols)
		}
		for c, ch := range line {
			switch ch {
			case '.':
				g.set(P(r, c), Empty)
			case '#':
				g.set(P(r, c), Obstacle)
			case 'k', 'K':
				g.set(P(r, c), Key)
			default:
				return nil, fmt.Errorf("keyrunner: unknown cell %q at %v", ch, P(r, c))
			}
		}
	}
	return g, nil
}

// Rows returns the number of rows.
func (g *Grid) Rows() int {
	return g.rows
}

// Cols returns the number of columns.
func (g *Grid) Cols() int {
	return g.cols
}

// LastRow returns the index of the exit row.
func (g *Grid) LastRow() int {
	return g.rows - 1
}

// InBounds returns true if the position is within the grid boundaries.
func (g *Grid) InBounds(p Pos) bool {
	return p.Row >= 0 && p.Row < g.rows && p.Col >= 0 && p.Col < g.cols
}

// At returns the terrain at p, or ErrOutOfBounds.
func (g *Grid) At(p Pos) (Terrain, error) {
	if !g.InBounds(p) {
		return Empty, fmt.Errorf("keyrunner: %v in %dx%d grid: %w", p, g.rows, g.cols, ErrOutOfBounds)
	}
	return g.cells[g.index(p)], nil
}

// Get returns the terrain at p. Positions outside the grid read as Obstacle,
// so callers that already clamp can treat the border as a wall.
func (g *Grid) Get(p Pos) Terrain {
	if !g.InBounds(p) {
		return Obstacle
	}
	return g.cells[g.index(p)]
}

// With returns a copy of the grid with the cell at p set to t.
// The receiver is left untouched.
func (g *Grid) With(p Pos, t Terrain) *Grid {
	out := g.Clone()
	out.set(p, t)
	return out
}

// WithRow returns a copy of the grid with every cell of row set to t.
func (g *Grid) WithRow(row int, t Terrain) *Grid {
	out := g.Clone()
	out.fillRow(row, t)
	return out
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([]Terrain, len(g.cells))
	copy(cells, g.cells)
	return &Grid{
		rows:  g.rows,
		cols:  g.cols,
		cells: cells,
	}
}

// Count returns the number of cells holding t.
func (g *Grid) Count(t Terrain) int {
	n := 0
	for _, c := range g.cells {
		if c == t {
			n++
		}
	}
	return n
}

// RowIs reports whether every cell in row holds t.
func (g *Grid) RowIs(row int, t Terrain) bool {
	if row < 0 || row >= g.rows {
		return false
	}
	for c := 0; c < g.cols; c++ {
		if g.cells[row*g.cols+c] != t {
			return false
		}
	}
	return true
}

// Positions returns all positions holding t, ordered by row then column.
func (g *Grid) Positions(t Terrain) []Pos {
	var out []Pos
	for i, c := range g.cells {
		if c == t {
			out = append(out, P(i/g.cols, i%g.cols))
		}
	}
	return out
}

// Cells returns the terrain as a freshly allocated 2D slice.
func (g *Grid) Cells() [][]Terrain {
	out := make([][]Terrain, g.rows)
	for r := range out {
		out[r] = make([]Terrain, g.cols)
		copy(out[r], g.cells[r*g.cols:(r+1)*g.cols])
	}
	return out
}

// Equal returns true if two grids have the same dimensions and contents.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.rows != other.rows || g.cols != other.cols {
		return false
	}
	for i, c := range g.cells {
		if c != other.cells[i] {
			return false
		}
	}
	return true
}

// String renders the grid in the ParseGrid format.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow(g.rows * (g.cols + 1))
	for r := 0; r < g.rows; r++ {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c := 0; c < g.cols; c++ {
			sb.WriteRune(g.cells[r*g.cols+c].Rune())
		}
	}
	return sb.String()
}

// neighbours returns the in-bounds 4-neighbours of p.
func (g *Grid) neighbours(p Pos) []Pos {
	out := make([]Pos, 0, 4)
	for _, d := range Dirs {
		if n := p.Step(d); g.InBounds(n) {
			out = append(out, n)
		}
	}
	return out
}

// hasNeighbour reports whether any 4-neighbour of p holds t.
func (g *Grid) hasNeighbour(p Pos, t Terrain) bool {
	for _, n := range g.neighbours(p) {
		if g.cells[g.index(n)] == t {
			return true
		}
	}
	return false
}

func (g *Grid) index(p Pos) int {
	return p.Row*g.cols + p.Col
}

// set mutates in place. Only used on grids that have not been published.
func (g *Grid) set(p Pos, t Terrain) {
	if g.InBounds(p) {
		g.cells[g.index(p)] = t
	}
}

func (g *Grid) fillRow(row int, t Terrain) {
	if row < 0 || row >= g.rows {
		return
	}
	for c := 0; c < g.cols; c++ {
		g.cells[row*g.cols+c] = t
	}
}
