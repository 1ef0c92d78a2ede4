// Package navigation runs one user's session: it validates moves against the
// grid, rescans after every change and derives the status message.
package navigation

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"

	"github.com/zucenko/navaid/config"
	"github.com/zucenko/navaid/model"
	"github.com/zucenko/navaid/scan"
)

const (
	MessageWelcome = "Welcome to the Navigation Assistant"
	MessageBlocked = "Cannot move - obstacle blocking path"
	MessageReset   = "Environment reset"
	MessageClear   = "Path is clear ahead"
	WarningPrefix  = "Warning! "
)

// Announcer is the speech sink. Implementations must not block.
type Announcer interface {
	Announce(text string)
}

type AnnouncerFunc func(text string)

func (f AnnouncerFunc) Announce(text string) { f(text) }

type State int

const (
	Idle State = iota
	Clear
	Alert
)

func (s State) Name() string {
	switch s {
	case Idle:
		return "IDLE"
	case Clear:
		return "CLEAR"
	case Alert:
		return "ALERT"
	default:
		return fmt.Sprintf("N/A(%d)", s)
	}
}

type Snapshot struct {
	Size       int
	Position   model.Position
	Obstacles  []model.Obstacle
	Detections []model.Detection
	Message    string
	State      State
}

type Controller struct {
	mu         sync.Mutex
	grid       model.Grid
	count      int
	limits     scan.Limits
	rng        *rand.Rand
	announcer  Announcer
	detections []model.Detection
	message    string
	state      State
}

// New builds a session from cfg. Fixed layout obstacles are used as they are,
// otherwise cfg.ObstacleCount obstacles are drawn from rng.
func New(cfg *config.Config, rng *rand.Rand, announcer Announcer) (*Controller, error) {
	c := &Controller{
		grid: model.Grid{
			Size: cfg.GridSize,
			User: cfg.StartPosition(),
		},
		count:     cfg.ObstacleCount,
		limits:    cfg.Limits(),
		rng:       rng,
		announcer: announcer,
		message:   MessageWelcome,
		state:     Idle,
	}
	if len(cfg.Obstacles) > 0 {
		c.grid.Obstacles = append([]model.Obstacle(nil), cfg.Obstacles...)
	} else {
		obstacles, err := model.Generate(rng, c.count, c.grid.Size, c.grid.User)
		if err != nil {
			return nil, err
		}
		c.grid.Obstacles = obstacles
	}
	c.rescan(false)
	return c, nil
}

// Move steps the user by (dx, dy). voice decides whether announcements reach the
// sink. A blocked move leaves position, detections and state untouched.
func (c *Controller) Move(dx, dy int, voice bool) (model.Outcome, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	pos, outcome, err := model.TryMove(c.grid.User, dx, dy, c.grid.Size, c.grid.Obstacles)
	if errors.Is(err, model.ErrBlocked) {
		c.message = MessageBlocked
		c.announce(voice, c.message)
		return outcome, err
	}
	if err != nil {
		return outcome, err
	}
	c.grid.User = pos
	c.message = "Moved " + model.MoveDirection(dx, dy)
	c.announce(voice, c.message)
	c.rescan(voice)
	return outcome, nil
}

// Reset replaces the whole obstacle set, keeping the user where they are.
func (c *Controller) Reset(voice bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	obstacles, err := model.Generate(c.rng, c.count, c.grid.Size, c.grid.User)
	if err != nil {
		return err
	}
	c.grid.Obstacles = obstacles
	c.message = MessageReset
	c.announce(voice, c.message)
	c.rescan(voice)
	return nil
}

// Repeat announces the current message regardless of the voice setting.
func (c *Controller) Repeat() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.announce(true, c.message)
}

// Rescan rederives detections, state and message from the current grid. It is
// what a voice toggle triggers, so a pending blocked message is replaced.
func (c *Controller) Rescan(voice bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rescan(voice)
}

func (c *Controller) rescan(voice bool) {
	c.detections = scan.Scan(c.grid.User, c.grid.Obstacles, c.limits)
	if len(c.detections) == 0 {
		c.state = Clear
		c.message = MessageClear
		c.announce(voice, c.message)
		return
	}
	c.state = Alert
	nearest := c.detections[0]
	c.message = fmt.Sprintf("Obstacle detected %s, %.1f meters away",
		strings.ToLower(nearest.Direction.String()), nearest.Distance)
	if nearest.Severity == model.HIGH {
		c.announce(voice, WarningPrefix+c.message)
	}
}

func (c *Controller) announce(voice bool, text string) {
	if !voice || c.announcer == nil {
		return
	}
	c.announcer.Announce(text)
}

func (c *Controller) Message() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.message
}

func (c *Controller) Detections() []model.Detection {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]model.Detection(nil), c.detections...)
}

func (c *Controller) Position() model.Position {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.grid.User
}

func (c *Controller) Obstacles() []model.Obstacle {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]model.Obstacle(nil), c.grid.Obstacles...)
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		Size:       c.grid.Size,
		Position:   c.grid.User,
		Obstacles:  append([]model.Obstacle(nil), c.grid.Obstacles...),
		Detections: append([]model.Detection(nil), c.detections...),
		Message:    c.message,
		State:      c.state,
	}
}
