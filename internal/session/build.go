package session

import (
	"fmt"
	"log/slog"

	"github.com/Versifine/galleria/internal/config"
	"github.com/Versifine/galleria/internal/event"
	"github.com/Versifine/galleria/internal/input"
	"github.com/Versifine/galleria/internal/metrics"
	"github.com/Versifine/galleria/internal/motion"
	"github.com/Versifine/galleria/internal/teleport"
	"github.com/Versifine/galleria/internal/zone"
)

// LoadRegistry returns the gallery named by cfg, or the built-in one.
func LoadRegistry(cfg config.ZonesConfig) (*zone.Registry, error) {
	if cfg.File == "" {
		return zone.DefaultGallery(cfg.Radius)
	}
	reg, err := zone.LoadGallery(cfg.File, cfg.Radius)
	if err != nil {
		return nil, fmt.Errorf("load zones: %w", err)
	}
	return reg, nil
}

// FromConfig builds a session from a validated configuration.
func FromConfig(cfg *config.Config, bus *event.Bus, rec *metrics.Recorder, log *slog.Logger) (*Session, error) {
	reg, err := LoadRegistry(cfg.Zones)
	if err != nil {
		return nil, err
	}
	policy, err := zone.ParseTieBreak(cfg.Zones.TieBreak)
	if err != nil {
		return nil, err
	}
	keys := input.DefaultKeyMap()
	if len(cfg.Keys) > 0 {
		keys, err = input.ParseKeyMap(cfg.Keys)
		if err != nil {
			return nil, fmt.Errorf("keys: %w", err)
		}
	}

	return New(Options{
		Params: motion.Params{
			Damping:      cfg.Movement.Damping,
			Speed:        cfg.Movement.Speed,
			MirrorStrafe: cfg.Movement.MirrorStrafe,
		},
		Start:       motion.Vec3{X: cfg.Camera.Start.X, Y: cfg.Camera.Start.Y, Z: cfg.Camera.Start.Z},
		Sensitivity: cfg.Camera.Sensitivity,
		Keys:        keys,
		Registry:    reg,
		Teleporter:  teleport.NewService(reg, cfg.Camera.EyeHeight, cfg.Camera.ApproachOffset),
		TieBreak:    policy,
		SkipWelcome: cfg.Frontend.SkipWelcome,
		Bus:         bus,
		Metrics:     rec,
		Logger:      log,
	})
}
