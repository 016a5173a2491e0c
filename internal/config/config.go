package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Logging  LoggingConfig     `yaml:"logging"`
	Movement MovementConfig    `yaml:"movement"`
	Camera   CameraConfig      `yaml:"camera"`
	Zones    ZonesConfig       `yaml:"zones"`
	Frontend FrontendConfig    `yaml:"frontend"`
	Metrics  MetricsConfig     `yaml:"metrics"`
	Audio    AudioConfig       `yaml:"audio"`
	Keys     map[string]string `yaml:"keys,omitempty"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

type MovementConfig struct {
	Damping      float64 `yaml:"damping"`
	Speed        float64 `yaml:"speed"`
	MirrorStrafe bool    `yaml:"mirror_strafe"`
}

type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

type CameraConfig struct {
	Start          Point   `yaml:"start"`
	EyeHeight      float64 `yaml:"eye_height"`
	ApproachOffset float64 `yaml:"approach_offset"`
	Sensitivity    float64 `yaml:"sensitivity"`
}

type ZonesConfig struct {
	// File is a gallery YAML file; empty selects the built-in gallery.
	File     string  `yaml:"file"`
	Radius   float64 `yaml:"radius"`
	TieBreak string  `yaml:"tie_break"`
}

type FrontendConfig struct {
	Mode          string        `yaml:"mode"`
	FrameInterval time.Duration `yaml:"frame_interval"`
	MovePulse     time.Duration `yaml:"move_pulse"`
	CellPixels    float64       `yaml:"cell_pixels"`
	SkipWelcome   bool          `yaml:"skip_welcome"`
}

type MetricsConfig struct {
	// Listen is the /metrics address; empty disables the exporter.
	Listen string `yaml:"listen"`
}

type AudioConfig struct {
	Enabled bool `yaml:"enabled"`
}

const (
	ModeViewer  = "viewer"
	ModeConsole = "console"
)

func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			File:   "galleria.log",
		},
		Movement: MovementConfig{
			Damping: 10.0,
			Speed:   25.0,
		},
		Camera: CameraConfig{
			Start:          Point{X: 0, Y: 2, Z: 5},
			EyeHeight:      2,
			ApproachOffset: 5,
			Sensitivity:    0.002,
		},
		Zones: ZonesConfig{
			Radius:   5,
			TieBreak: "nearest",
		},
		Frontend: FrontendConfig{
			Mode:          ModeViewer,
			FrameInterval: 16 * time.Millisecond,
			MovePulse:     180 * time.Millisecond,
			CellPixels:    8,
		},
	}
}

// Load overlays the YAML file at path on top of Default.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Movement.Damping <= 0 {
		return fmt.Errorf("movement.damping must be positive, got %v", c.Movement.Damping)
	}
	if c.Movement.Speed <= 0 {
		return fmt.Errorf("movement.speed must be positive, got %v", c.Movement.Speed)
	}
	if c.Camera.Sensitivity <= 0 {
		return fmt.Errorf("camera.sensitivity must be positive, got %v", c.Camera.Sensitivity)
	}
	if c.Camera.ApproachOffset < 0 {
		return fmt.Errorf("camera.approach_offset must not be negative, got %v", c.Camera.ApproachOffset)
	}
	if c.Zones.Radius <= 0 {
		return fmt.Errorf("zones.radius must be positive, got %v", c.Zones.Radius)
	}
	switch c.Zones.TieBreak {
	case "", "nearest", "last_registered", "last":
	default:
		return fmt.Errorf("zones.tie_break: unknown policy %q", c.Zones.TieBreak)
	}
	switch c.Frontend.Mode {
	case ModeViewer, ModeConsole:
	default:
		return fmt.Errorf("frontend.mode: unknown mode %q", c.Frontend.Mode)
	}
	if c.Frontend.FrameInterval <= 0 {
		return fmt.Errorf("frontend.frame_interval must be positive, got %v", c.Frontend.FrameInterval)
	}
	if c.Frontend.MovePulse <= 0 {
		return fmt.Errorf("frontend.move_pulse must be positive, got %v", c.Frontend.MovePulse)
	}
	if c.Frontend.CellPixels <= 0 {
		return fmt.Errorf("frontend.cell_pixels must be positive, got %v", c.Frontend.CellPixels)
	}
	return nil
}

// Marshal renders c as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
