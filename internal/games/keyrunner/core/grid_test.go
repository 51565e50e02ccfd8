package core_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/keyrunner/internal/games/keyrunner/core"
)

func TestParseGrid(t *testing.T) {
	g, err := core.ParseGrid(`
		#.k
		...
		###
	`)
	require.NoError(t, err)

	assert.Equal(t, 3, g.Rows())
	assert.Equal(t, 3, g.Cols())
	assert.Equal(t, core.Obstacle, g.Get(core.P(0, 0)))
	assert.Equal(t, core.Empty, g.Get(core.P(0, 1)))
	assert.Equal(t, core.Key, g.Get(core.P(0, 2)))
	assert.True(t, g.RowIs(2, core.Obstacle))
	assert.Equal(t, "#.k\n...\n###", g.String())
}

func TestParseGridErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", "  \n  "},
		{"ragged", "...\n..\n"},
		{"unknown cell", "..x\n..."},
		{"non-ascii cell", "...\n..◆"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := core.ParseGrid(tt.text)
			assert.Error(t, err)
		})
	}
}

func TestParseGridCountsRunes(t *testing.T) {
	_, err := core.ParseGrid("...\n..◆")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown cell")
	assert.NotContains(t, err.Error(), "columns")
}

func TestGridAtOutOfBounds(t *testing.T) {
	g := core.NewGrid(3, 4)

	for _, p := range []core.Pos{core.P(-1, 0), core.P(0, -1), core.P(3, 0), core.P(0, 4)} {
		_, err := g.At(p)
		assert.Truef(t, errors.Is(err, core.ErrOutOfBounds), "At(%v) = %v", p, err)
		assert.Equal(t, core.Obstacle, g.Get(p), "outside cells read as walls")
	}

	terrain, err := g.At(core.P(2, 3))
	require.NoError(t, err)
	assert.Equal(t, core.Empty, terrain)
}

func TestGridCopyOnWrite(t *testing.T) {
	g, err := core.ParseGrid("k..\n...\n###")
	require.NoError(t, err)
	before := g.Clone()

	withEmpty := g.With(core.P(0, 0), core.Empty)
	cleared := g.WithRow(g.LastRow(), core.Empty)

	assert.True(t, g.Equal(before), "receiver must not change")
	assert.Equal(t, core.Empty, withEmpty.Get(core.P(0, 0)))
	assert.True(t, cleared.RowIs(2, core.Empty))
	assert.False(t, withEmpty.Equal(g))
}

func TestGridCellsIsACopy(t *testing.T) {
	g := core.NewGrid(2, 2)

	cells := g.Cells()
	cells[0][0] = core.Obstacle

	assert.Equal(t, core.Empty, g.Get(core.P(0, 0)))
}

func TestGridPositionsAndCount(t *testing.T) {
	g, err := core.ParseGrid("k.k\n.k.\n###")
	require.NoError(t, err)

	assert.Equal(t, 3, g.Count(core.Key))
	assert.Equal(t, []core.Pos{core.P(0, 0), core.P(0, 2), core.P(1, 1)}, g.Positions(core.Key))
}

func TestParseDir(t *testing.T) {
	tests := []struct {
		in   string
		want core.Dir
	}{
		{"up", core.DirUp},
		{"Down", core.DirDown},
		{" l ", core.DirLeft},
		{"east", core.DirRight},
	}
	for _, tt := range tests {
		d, err := core.ParseDir(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, d, tt.in)
	}

	_, err := core.ParseDir("sideways")
	assert.True(t, errors.Is(err, core.ErrInvalidDirection))
}

func TestPosDirTo(t *testing.T) {
	p := core.P(4, 4)
	for _, d := range core.Dirs {
		got, ok := p.DirTo(p.Step(d))
		assert.True(t, ok)
		assert.Equal(t, d, got)
	}

	_, ok := p.DirTo(core.P(5, 5))
	assert.False(t, ok, "diagonal is not adjacent")
}
