package main

import (
	"github.com/zucenko/navaid/model"
)

const maxSpoken = 4

// View is what the client knows about its session, rebuilt from server messages.
type View struct {
	Session string
	Size    int
	Status  model.Status
	Spoken  []string
	ready   bool
}

func (v *View) Apply(m model.ServerMessage) (moved bool) {
	for _, s := range m.Setup {
		v.Session = s.Session
		v.Size = s.Size
	}
	for _, st := range m.Status {
		moved = v.ready && st.Position != v.Status.Position
		v.Status = st
		v.ready = true
	}
	v.Spoken = append(v.Spoken, m.Announcements...)
	if len(v.Spoken) > maxSpoken {
		v.Spoken = v.Spoken[len(v.Spoken)-maxSpoken:]
	}
	return moved
}

func (v *View) Detected(x, y int) (model.Detection, bool) {
	for _, d := range v.Status.Detections {
		if d.Obstacle.X == x && d.Obstacle.Y == y {
			return d, true
		}
	}
	return model.Detection{}, false
}
