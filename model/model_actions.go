package model

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

var (
	ErrBlocked             = errors.New("obstacle blocking path")
	ErrPlacementInfeasible = errors.New("obstacles cannot be placed on grid")
)

type Outcome int

const (
	Moved Outcome = iota + 1
	Blocked
	// AtBoundary means the move was clamped back onto the current cell.
	AtBoundary
	Stayed
)

func (o Outcome) Name() string {
	switch o {
	case Moved:
		return "MOVED"
	case Blocked:
		return "BLOCKED"
	case AtBoundary:
		return "AT_BOUNDARY"
	case Stayed:
		return "STAYED"
	default:
		return fmt.Sprintf("n/a:%d", o)
	}
}

// sampling budget per requested obstacle, in multiples of the cell count
const drawsPerCell = 8

// Generate places count obstacles uniformly at random, never on user and never
// twice on one cell. count must be below size*size.
func Generate(rng *rand.Rand, count, size int, user Position) ([]Obstacle, error) {
	if size < 1 || count < 0 {
		return nil, fmt.Errorf("%w: size %d count %d", ErrPlacementInfeasible, size, count)
	}
	if count >= size*size {
		return nil, fmt.Errorf("%w: %d obstacles on %dx%d grid", ErrPlacementInfeasible, count, size, size)
	}
	obstacles := make([]Obstacle, 0, count)
	placed := make(map[Position]bool, count)
	budget := drawBudget(count, size*size)
	for draws := 0; len(obstacles) < count; draws++ {
		if draws >= budget {
			return nil, fmt.Errorf("%w: gave up after %d draws", ErrPlacementInfeasible, draws)
		}
		p := Position{X: rng.Intn(size), Y: rng.Intn(size)}
		if p == user || placed[p] {
			continue
		}
		placed[p] = true
		obstacles = append(obstacles, Obstacle{X: p.X, Y: p.Y})
	}
	return obstacles, nil
}

// drawBudget saturates at math.MaxInt instead of overflowing.
func drawBudget(count, cells int) int {
	if count == 0 || cells <= math.MaxInt/drawsPerCell/count {
		return count * cells * drawsPerCell
	}
	return math.MaxInt
}

// TryMove clamps the target into the grid. Leaving the grid is absorbed, stepping
// onto an obstacle returns ErrBlocked with the original position.
func TryMove(pos Position, dx, dy, size int, obstacles []Obstacle) (Position, Outcome, error) {
	if dx == 0 && dy == 0 {
		return pos, Stayed, nil
	}
	target := Position{
		X: clamp(pos.X+dx, 0, size-1),
		Y: clamp(pos.Y+dy, 0, size-1),
	}
	if occupied(obstacles, target) {
		return pos, Blocked, ErrBlocked
	}
	if target == pos {
		return pos, AtBoundary, nil
	}
	return target, Moved, nil
}

// MoveDirection names a requested step the way it is announced.
func MoveDirection(dx, dy int) string {
	switch {
	case dx > 0:
		return "right"
	case dx < 0:
		return "left"
	case dy > 0:
		return "down"
	default:
		return "up"
	}
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
