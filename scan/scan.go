// Package scan turns the obstacle set around a user into ranked detections.
package scan

import (
	"fmt"
	"sort"

	"github.com/zucenko/navaid/model"
	"gonum.org/v1/gonum/floats"
)

// Limits holds the detection radius and the grading thresholds.
// A detection is High below HighBelow, Medium below MediumBelow and Low otherwise.
type Limits struct {
	Radius      float64
	HighBelow   float64
	MediumBelow float64
	WallBelow   float64
	Max         int
}

var DefaultLimits = Limits{
	Radius:      3,
	HighBelow:   1.5,
	MediumBelow: 2.5,
	WallBelow:   2,
	Max:         5,
}

// Scan classifies every obstacle relative to user, drops the ones outside the
// radius and returns at most l.Max of them, nearest first.
func Scan(user model.Position, obstacles []model.Obstacle, l Limits) []model.Detection {
	detections := make([]model.Detection, 0, len(obstacles))
	for _, o := range obstacles {
		d := detect(user, o, l)
		if d.Distance > l.Radius {
			continue
		}
		detections = append(detections, d)
	}
	sort.SliceStable(detections, func(i, j int) bool {
		return detections[i].Distance < detections[j].Distance
	})
	if l.Max >= 0 && len(detections) > l.Max {
		detections = detections[:l.Max]
	}
	return detections
}

func detect(user model.Position, o model.Obstacle, l Limits) model.Detection {
	dx := o.X - user.X
	dy := o.Y - user.Y
	distance := floats.Distance(
		[]float64{float64(o.X), float64(o.Y)},
		[]float64{float64(user.X), float64(user.Y)},
		2)
	kind := model.KIND_OBJECT
	if distance < l.WallBelow {
		kind = model.KIND_WALL
	}
	return model.Detection{
		ID:        fmt.Sprintf("%d-%d", o.X, o.Y),
		Obstacle:  o,
		Distance:  distance,
		Direction: Classify(dx, dy),
		Severity:  l.Grade(distance),
		Kind:      kind,
	}
}

// Classify names the direction of the delta (dx, dy) from the user. Screen
// coordinates: dy > 0 is DOWN. Any delta with both components nonzero is diagonal.
func Classify(dx, dy int) model.Direction {
	var d model.Direction
	if abs(dx) > abs(dy) {
		if dx > 0 {
			d = model.RIGHT
		} else {
			d = model.LEFT
		}
	} else {
		if dy > 0 {
			d = model.DOWN
		} else {
			d = model.UP
		}
	}

	if dy > 0 && dx > 0 {
		d = model.FRONT_RIGHT
	} else if dy > 0 && dx < 0 {
		d = model.FRONT_LEFT
	} else if dy < 0 && dx > 0 {
		d = model.BACK_RIGHT
	} else if dy < 0 && dx < 0 {
		d = model.BACK_LEFT
	}
	return d
}

func (l Limits) Grade(distance float64) model.Severity {
	switch {
	case distance < l.HighBelow:
		return model.HIGH
	case distance < l.MediumBelow:
		return model.MEDIUM
	default:
		return model.LOW
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
