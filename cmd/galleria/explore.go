package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/Versifine/galleria/internal/chime"
	"github.com/Versifine/galleria/internal/config"
	"github.com/Versifine/galleria/internal/console"
	"github.com/Versifine/galleria/internal/event"
	"github.com/Versifine/galleria/internal/logger"
	"github.com/Versifine/galleria/internal/metrics"
	"github.com/Versifine/galleria/internal/session"
	"github.com/Versifine/galleria/internal/viewer"
)

func exploreCommand(cfg *config.Config) error {
	if CLI.Explore.Frontend != "" {
		cfg.Frontend.Mode = CLI.Explore.Frontend
	}
	if CLI.Explore.SkipWelcome {
		cfg.Frontend.SkipWelcome = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	err := logger.Init(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		File:        cfg.Logging.File,
		Output:      os.Stderr,
		RawTerminal: cfg.Frontend.Mode == config.ModeConsole,
	})
	if err != nil {
		return err
	}
	defer logger.Close()

	log := logger.WithSession(logger.NewSessionID())
	log.Info("Starting gallery", "frontend", cfg.Frontend.Mode, "zones_file", cfg.Zones.File)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bus := event.NewBus()
	rec := metrics.NewRecorder()
	if cfg.Metrics.Listen != "" {
		go func() {
			if err := rec.Serve(ctx, cfg.Metrics.Listen); err != nil {
				log.Error("Metrics endpoint failed", "error", err)
			}
		}()
	}

	sess, err := session.FromConfig(cfg, bus, rec, log)
	if err != nil {
		return err
	}

	if cfg.Audio.Enabled {
		player := chime.NewPlayer()
		if err := player.Init(); err != nil {
			// Non-fatal, the gallery works without sound.
			log.Warn("Audio initialization failed", "error", err)
		} else {
			player.Attach(bus, sess.Registry())
			defer player.Close()
		}
	}

	switch cfg.Frontend.Mode {
	case config.ModeConsole:
		return console.New(sess, console.Options{
			TickInterval: cfg.Frontend.FrameInterval,
			MovePulse:    cfg.Frontend.MovePulse,
			Bus:          bus,
		}).Run(ctx)
	default:
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("open screen: %w", err)
		}
		if err := screen.Init(); err != nil {
			return fmt.Errorf("init screen: %w", err)
		}
		defer screen.Fini()
		return viewer.New(sess, screen, viewer.Options{
			TickInterval: cfg.Frontend.FrameInterval,
			MovePulse:    cfg.Frontend.MovePulse,
			CellPixels:   cfg.Frontend.CellPixels,
		}).Run(ctx)
	}
}
