// Package config loads the navigator settings from YAML on top of built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/zucenko/navaid/model"
	"github.com/zucenko/navaid/scan"
	"gopkg.in/yaml.v3"
)

var ErrInvalid = errors.New("invalid config")

type Start struct {
	X int `yaml:"x" json:"x"`
	Y int `yaml:"y" json:"y"`
}

type Detection struct {
	Radius      float64 `yaml:"radius" json:"radius"`
	HighBelow   float64 `yaml:"high_below" json:"high_below"`
	MediumBelow float64 `yaml:"medium_below" json:"medium_below"`
	WallBelow   float64 `yaml:"wall_below" json:"wall_below"`
	Max         int     `yaml:"max" json:"max"`
}

type Config struct {
	GridSize      int       `yaml:"grid_size" json:"grid_size"`
	ObstacleCount int       `yaml:"obstacle_count" json:"obstacle_count"`
	Start         Start     `yaml:"start" json:"start"`
	Detection     Detection `yaml:"detection" json:"detection"`
	Seed          *int64    `yaml:"seed,omitempty" json:"seed,omitempty"`
	Layout        string    `yaml:"layout,omitempty" json:"layout,omitempty"`
	Listen        string    `yaml:"listen" json:"listen"`

	// filled from Layout, never read from YAML
	Obstacles []model.Obstacle `yaml:"-" json:"-"`
}

func Default() *Config {
	return &Config{
		GridSize:      11,
		ObstacleCount: 15,
		Start:         Start{X: 5, Y: 5},
		Detection: Detection{
			Radius:      scan.DefaultLimits.Radius,
			HighBelow:   scan.DefaultLimits.HighBelow,
			MediumBelow: scan.DefaultLimits.MediumBelow,
			WallBelow:   scan.DefaultLimits.WallBelow,
			Max:         scan.DefaultLimits.Max,
		},
		Listen: ":8080",
	}
}

// Load reads path over the defaults. An empty path yields the defaults. PORT in
// the environment overrides the listen address.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("invalid YAML in %s: %w", path, err)
		}
	}
	if port := os.Getenv("PORT"); port != "" {
		cfg.Listen = ":" + port
	}
	if cfg.Layout != "" {
		if err := cfg.applyLayout(); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyLayout() error {
	file, err := os.Open(c.Layout)
	if err != nil {
		return fmt.Errorf("open layout %s: %w", c.Layout, err)
	}
	defer file.Close()
	layout, err := ReadLayout(file)
	if err != nil {
		return fmt.Errorf("layout %s: %w", c.Layout, err)
	}
	c.GridSize = layout.Size
	c.Start = Start{X: layout.User.X, Y: layout.User.Y}
	c.Obstacles = layout.Obstacles
	c.ObstacleCount = len(layout.Obstacles)
	return nil
}

func (c *Config) Validate() error {
	if c.GridSize < 1 {
		return fmt.Errorf("%w: grid_size %d", ErrInvalid, c.GridSize)
	}
	if c.Start.X < 0 || c.Start.Y < 0 || c.Start.X >= c.GridSize || c.Start.Y >= c.GridSize {
		return fmt.Errorf("%w: start (%d, %d) outside %dx%d grid", ErrInvalid, c.Start.X, c.Start.Y, c.GridSize, c.GridSize)
	}
	if c.ObstacleCount < 0 || c.ObstacleCount >= c.GridSize*c.GridSize {
		return fmt.Errorf("%w: obstacle_count %d does not fit %dx%d grid", ErrInvalid, c.ObstacleCount, c.GridSize, c.GridSize)
	}
	d := c.Detection
	if d.Radius < 0 || d.Max < 0 {
		return fmt.Errorf("%w: negative detection radius or max", ErrInvalid)
	}
	if d.HighBelow > d.MediumBelow {
		return fmt.Errorf("%w: high_below %.2f above medium_below %.2f", ErrInvalid, d.HighBelow, d.MediumBelow)
	}
	return nil
}

func (c *Config) Limits() scan.Limits {
	return scan.Limits{
		Radius:      c.Detection.Radius,
		HighBelow:   c.Detection.HighBelow,
		MediumBelow: c.Detection.MediumBelow,
		WallBelow:   c.Detection.WallBelow,
		Max:         c.Detection.Max,
	}
}

func (c *Config) StartPosition() model.Position {
	return model.Position{X: c.Start.X, Y: c.Start.Y}
}
