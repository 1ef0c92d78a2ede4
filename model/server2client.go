package model

type ServerMessage struct {
	Setup         []Setup
	Status        []Status
	Announcements []string
}

type Setup struct {
	Session string
	Size    int
}

type Status struct {
	Position   Position
	Obstacles  []Obstacle
	Detections []Detection
	Message    string
	Braille    string
	State      string
	Voice      bool
	Outcome    Outcome
}

type Move struct {
	DX, DY int
}

// ClientMessage carries one request, the first non-empty field wins.
type ClientMessage struct {
	Move        *Move
	Reset       bool
	ToggleVoice bool
	Repeat      bool
}
