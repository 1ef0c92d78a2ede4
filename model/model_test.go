package model

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePlacementInvariants(t *testing.T) {
	user := Position{X: 5, Y: 5}
	for seed := int64(0); seed < 50; seed++ {
		obstacles, err := Generate(rand.New(rand.NewSource(seed)), 15, 11, user)
		require.NoError(t, err)
		require.Len(t, obstacles, 15)

		seen := make(map[Obstacle]bool)
		for _, o := range obstacles {
			assert.False(t, o.At(user), "seed %d placed obstacle on user", seed)
			assert.False(t, seen[o], "seed %d duplicated %v", seed, o)
			assert.True(t, o.X >= 0 && o.X < 11 && o.Y >= 0 && o.Y < 11)
			seen[o] = true
		}
	}
}

func TestGenerateSameSeedSameSet(t *testing.T) {
	user := Position{X: 2, Y: 3}
	a, err := Generate(rand.New(rand.NewSource(42)), 15, 11, user)
	require.NoError(t, err)
	b, err := Generate(rand.New(rand.NewSource(42)), 15, 11, user)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGenerateFillsAllButUser(t *testing.T) {
	obstacles, err := Generate(rand.New(rand.NewSource(1)), 8, 3, Position{X: 1, Y: 1})
	require.NoError(t, err)
	assert.Len(t, obstacles, 8)
	for _, o := range obstacles {
		assert.False(t, o.At(Position{X: 1, Y: 1}))
	}
}

func TestGenerateInfeasible(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	_, err := Generate(rng, 9, 3, Position{})
	assert.True(t, errors.Is(err, ErrPlacementInfeasible))

	_, err = Generate(rng, 1, 0, Position{})
	assert.True(t, errors.Is(err, ErrPlacementInfeasible))

	obstacles, err := Generate(rng, 0, 3, Position{})
	require.NoError(t, err)
	assert.Empty(t, obstacles)
}

func TestGenerateLargeGrid(t *testing.T) {
	user := Position{X: 150, Y: 150}
	obstacles, err := Generate(rand.New(rand.NewSource(3)), 45000, 300, user)
	require.NoError(t, err)
	require.Len(t, obstacles, 45000)

	seen := make(map[Obstacle]bool, len(obstacles))
	for _, o := range obstacles {
		require.False(t, seen[o], "duplicate %v", o)
		require.False(t, o.At(user))
		seen[o] = true
	}
}

func TestDrawBudgetSaturates(t *testing.T) {
	assert.Equal(t, 3*9*drawsPerCell, drawBudget(3, 9))
	assert.Equal(t, 0, drawBudget(0, 9))
	assert.Equal(t, math.MaxInt, drawBudget(math.MaxInt/4, 16))
	assert.Equal(t, math.MaxInt, drawBudget(1<<20, math.MaxInt/(1<<10)))
	assert.Greater(t, drawBudget(1<<15, 1<<15), 0)
}

func TestTryMove(t *testing.T) {
	obstacles := []Obstacle{{X: 6, Y: 5}, {X: 0, Y: 4}}

	pos, outcome, err := TryMove(Position{X: 5, Y: 5}, 0, 1, 11, obstacles)
	require.NoError(t, err)
	assert.Equal(t, Position{X: 5, Y: 6}, pos)
	assert.Equal(t, Moved, outcome)

	pos, outcome, err = TryMove(Position{X: 5, Y: 5}, 1, 0, 11, obstacles)
	assert.True(t, errors.Is(err, ErrBlocked))
	assert.Equal(t, Blocked, outcome)
	assert.Equal(t, Position{X: 5, Y: 5}, pos)
}

func TestTryMoveStayIsIdempotent(t *testing.T) {
	pos := Position{X: 3, Y: 3}
	for i := 0; i < 3; i++ {
		next, outcome, err := TryMove(pos, 0, 0, 11, []Obstacle{{X: 3, Y: 4}})
		require.NoError(t, err)
		assert.Equal(t, Stayed, outcome)
		assert.Equal(t, pos, next)
	}
}

func TestTryMoveClampsAtEdge(t *testing.T) {
	pos, outcome, err := TryMove(Position{X: 0, Y: 5}, -1, 0, 11, nil)
	require.NoError(t, err)
	assert.Equal(t, AtBoundary, outcome)
	assert.Equal(t, Position{X: 0, Y: 5}, pos)

	pos, outcome, err = TryMove(Position{X: 9, Y: 10}, 3, 1, 11, nil)
	require.NoError(t, err)
	assert.Equal(t, Moved, outcome)
	assert.Equal(t, Position{X: 10, Y: 10}, pos)

	_, outcome, err = TryMove(Position{X: 9, Y: 10}, 3, 1, 11, []Obstacle{{X: 10, Y: 10}})
	assert.Equal(t, ErrBlocked, err)
	assert.Equal(t, Blocked, outcome)
}

func TestMoveDirection(t *testing.T) {
	assert.Equal(t, "right", MoveDirection(1, 0))
	assert.Equal(t, "left", MoveDirection(-1, 0))
	assert.Equal(t, "down", MoveDirection(0, 1))
	assert.Equal(t, "up", MoveDirection(0, -1))
	assert.Equal(t, "up", MoveDirection(0, 0))
	assert.Equal(t, "right", MoveDirection(1, 1))
}

func TestNames(t *testing.T) {
	assert.Equal(t, "FRONT-RIGHT", FRONT_RIGHT.String())
	assert.Equal(t, "BACK-LEFT", BACK_LEFT.String())
	assert.Equal(t, "high", HIGH.String())
	assert.Equal(t, "low", LOW.String())
	assert.Equal(t, "AT_BOUNDARY", AtBoundary.Name())
	assert.True(t, HIGH < MEDIUM && MEDIUM < LOW)
}
