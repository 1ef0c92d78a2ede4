package model

import "fmt"

type Position struct {
	X, Y int
}

func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// Obstacle is never moved once placed, the whole set is replaced on reset.
type Obstacle struct {
	X, Y int
}

func (o Obstacle) At(p Position) bool {
	return o.X == p.X && o.Y == p.Y
}

type Grid struct {
	Size      int
	User      Position
	Obstacles []Obstacle
}

func occupied(obstacles []Obstacle, p Position) bool {
	for _, o := range obstacles {
		if o.At(p) {
			return true
		}
	}
	return false
}

type Direction int

const (
	UP Direction = iota + 1
	DOWN
	LEFT
	RIGHT
	FRONT_LEFT
	FRONT_RIGHT
	BACK_LEFT
	BACK_RIGHT
)

func (d Direction) String() string {
	switch d {
	case UP:
		return "UP"
	case DOWN:
		return "DOWN"
	case LEFT:
		return "LEFT"
	case RIGHT:
		return "RIGHT"
	case FRONT_LEFT:
		return "FRONT-LEFT"
	case FRONT_RIGHT:
		return "FRONT-RIGHT"
	case BACK_LEFT:
		return "BACK-LEFT"
	case BACK_RIGHT:
		return "BACK-RIGHT"
	default:
		return fmt.Sprintf("n/a:%d", d)
	}
}

// Severity is ordered by urgency, High first.
type Severity int

const (
	HIGH Severity = iota
	MEDIUM
	LOW
)

func (s Severity) String() string {
	switch s {
	case HIGH:
		return "high"
	case MEDIUM:
		return "medium"
	case LOW:
		return "low"
	default:
		return fmt.Sprintf("n/a:%d", s)
	}
}

const (
	KIND_WALL   = "Wall"
	KIND_OBJECT = "Object"
)

// Detection is recomputed on every scan and never edited afterwards.
type Detection struct {
	ID        string
	Obstacle  Obstacle
	Distance  float64
	Direction Direction
	Severity  Severity
	Kind      string
}
