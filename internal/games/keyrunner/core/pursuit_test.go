package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/keyrunner/internal/games/keyrunner/core"
)

func notObstacle(t core.Terrain) bool { return t != core.Obstacle }

func TestFindPath(t *testing.T) {
	g, err := core.ParseGrid(`
		.....
		.###.
		...#.
		.#...
	`)
	require.NoError(t, err)

	path := core.FindPath(g, core.P(0, 0), core.P(3, 4), notObstacle)
	require.NotNil(t, path)
	assert.Len(t, path, 8, "shortest route is 7 steps")
	assert.Equal(t, core.P(0, 0), path[0])
	assert.Equal(t, core.P(3, 4), path[len(path)-1])

	for i := 1; i < len(path); i++ {
		assert.Equal(t, 1, path[i].Manhattan(path[i-1]), "step %d is not adjacent", i)
		assert.NotEqual(t, core.Obstacle, g.Get(path[i]))
	}
}

func TestFindPathUnreachable(t *testing.T) {
	g, err := core.ParseGrid(`
		..#..
		..#..
		..#..
	`)
	require.NoError(t, err)

	assert.Nil(t, core.FindPath(g, core.P(0, 0), core.P(0, 4), notObstacle))
	assert.Nil(t, core.FindPath(g, core.P(0, 0), core.P(9, 9), notObstacle))
	assert.Equal(t, []core.Pos{core.P(1, 1)}, core.FindPath(g, core.P(1, 1), core.P(1, 1), notObstacle))
}

func TestFindPathGoalAlwaysEnterable(t *testing.T) {
	g, err := core.ParseGrid("..k\n...")
	require.NoError(t, err)

	noKeys := func(t core.Terrain) bool { return t == core.Empty }
	path := core.FindPath(g, core.P(0, 0), core.P(0, 2), noKeys)
	assert.Equal(t, []core.Pos{core.P(0, 0), core.P(0, 1), core.P(0, 2)}, path)
}

func TestParseStrategy(t *testing.T) {
	s, err := core.ParseStrategy("", 0)
	require.NoError(t, err)
	assert.Equal(t, "greedy", s.Name())

	s, err = core.ParseStrategy("AStar", 3)
	require.NoError(t, err)
	assert.Equal(t, core.AStar{RecomputeEvery: 3}, s)

	_, err = core.ParseStrategy("teleport", 0)
	assert.Error(t, err)
}

func TestNewPursuitEngineDefaultsToGreedy(t *testing.T) {
	pe := core.NewPursuitEngine(nil)
	assert.Equal(t, "greedy", pe.Strategy().Name())
}
