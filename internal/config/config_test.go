package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name       string
		createFile bool
		content    string
		wantErr    bool
		validate   func(t *testing.T, cfg *Config, err error)
	}{
		{
			name:       "valid YAML overlays defaults",
			createFile: true,
			content: `logging:
  level: "debug"
  file: "walk.log"
movement:
  damping: 8
  mirror_strafe: true
camera:
  start: {x: 1, y: 3, z: -2}
zones:
  file: "gallery.yaml"
  tie_break: "last_registered"
frontend:
  mode: "console"
  move_pulse: 250ms
metrics:
  listen: ":2112"
audio:
  enabled: true
keys:
  ArrowUp: forward
`,
			validate: func(t *testing.T, cfg *Config, err error) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
				}
				if cfg.Logging.Format != "console" {
					t.Errorf("Logging.Format = %q, want default %q", cfg.Logging.Format, "console")
				}
				if cfg.Movement.Damping != 8 || cfg.Movement.Speed != 25 || !cfg.Movement.MirrorStrafe {
					t.Errorf("Movement = %+v", cfg.Movement)
				}
				if cfg.Camera.Start != (Point{X: 1, Y: 3, Z: -2}) {
					t.Errorf("Camera.Start = %+v", cfg.Camera.Start)
				}
				if cfg.Camera.EyeHeight != 2 {
					t.Errorf("Camera.EyeHeight = %v, want 2", cfg.Camera.EyeHeight)
				}
				if cfg.Zones.File != "gallery.yaml" || cfg.Zones.TieBreak != "last_registered" {
					t.Errorf("Zones = %+v", cfg.Zones)
				}
				if cfg.Frontend.Mode != ModeConsole {
					t.Errorf("Frontend.Mode = %q", cfg.Frontend.Mode)
				}
				if cfg.Frontend.MovePulse != 250*time.Millisecond {
					t.Errorf("Frontend.MovePulse = %v", cfg.Frontend.MovePulse)
				}
				if cfg.Frontend.FrameInterval != 16*time.Millisecond {
					t.Errorf("Frontend.FrameInterval = %v", cfg.Frontend.FrameInterval)
				}
				if cfg.Metrics.Listen != ":2112" || !cfg.Audio.Enabled {
					t.Errorf("Metrics/Audio = %+v %+v", cfg.Metrics, cfg.Audio)
				}
				if cfg.Keys["ArrowUp"] != "forward" {
					t.Errorf("Keys = %v", cfg.Keys)
				}
			},
		},
		{
			name:       "missing file",
			createFile: false,
			wantErr:    true,
			validate: func(t *testing.T, cfg *Config, err error) {
				if !os.IsNotExist(err) {
					t.Errorf("want not-exist error, got %v", err)
				}
			},
		},
		{
			name:       "malformed YAML",
			createFile: true,
			content: `movement:
  damping: [10
`,
			wantErr: true,
			validate: func(t *testing.T, cfg *Config, err error) {
				if err == nil || !strings.Contains(err.Error(), "yaml") {
					t.Errorf("want YAML parse error, got %v", err)
				}
			},
		},
		{
			name:       "invalid value",
			createFile: true,
			content: `frontend:
  mode: "vr"
`,
			wantErr: true,
			validate: func(t *testing.T, cfg *Config, err error) {
				if err == nil || !strings.Contains(err.Error(), "frontend.mode") {
					t.Errorf("want frontend.mode error, got %v", err)
				}
			},
		},
		{
			name:       "empty file keeps defaults",
			createFile: true,
			content:    "",
			validate: func(t *testing.T, cfg *Config, err error) {
				def := Default()
				if cfg.Movement != def.Movement || cfg.Camera != def.Camera || cfg.Zones != def.Zones {
					t.Errorf("cfg = %+v, want defaults %+v", cfg, def)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := t.TempDir()
			configPath := filepath.Join(tempDir, "config.yaml")

			if tt.createFile {
				if err := os.WriteFile(configPath, []byte(tt.content), 0o644); err != nil {
					t.Fatalf("write config: %v", err)
				}
			}

			cfg, err := Load(configPath)

			if (err != nil) != tt.wantErr {
				t.Fatalf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && cfg == nil {
				t.Fatalf("Load() returned nil config")
			}
			if tt.validate != nil {
				tt.validate(t, cfg, err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		field  string
	}{
		{"damping", func(c *Config) { c.Movement.Damping = 0 }, "movement.damping"},
		{"speed", func(c *Config) { c.Movement.Speed = -1 }, "movement.speed"},
		{"sensitivity", func(c *Config) { c.Camera.Sensitivity = 0 }, "camera.sensitivity"},
		{"approach", func(c *Config) { c.Camera.ApproachOffset = -1 }, "camera.approach_offset"},
		{"radius", func(c *Config) { c.Zones.Radius = 0 }, "zones.radius"},
		{"tie break", func(c *Config) { c.Zones.TieBreak = "random" }, "zones.tie_break"},
		{"frame interval", func(c *Config) { c.Frontend.FrameInterval = 0 }, "frontend.frame_interval"},
		{"move pulse", func(c *Config) { c.Frontend.MovePulse = 0 }, "frontend.move_pulse"},
		{"cell pixels", func(c *Config) { c.Frontend.CellPixels = 0 }, "frontend.cell_pixels"},
	}

	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.field) {
				t.Fatalf("Validate() = %v, want error mentioning %s", err, tt.field)
			}
		})
	}
}

func TestMarshalRoundTripsThroughLoad(t *testing.T) {
	data, err := Default().Marshal()
	if err != nil {
		t.Fatalf("Marshal() = %v", err)
	}
	if !strings.Contains(string(data), "move_pulse: 180ms") {
		t.Fatalf("marshalled config missing duration string:\n%s", data)
	}

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if cfg.Frontend != Default().Frontend {
		t.Fatalf("Frontend = %+v, want %+v", cfg.Frontend, Default().Frontend)
	}
}
