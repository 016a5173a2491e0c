// Package session drives one explorer: it owns the camera state and runs the
// per-frame pipeline of integration, proximity detection and event fan-out.
//
// A Session is not safe for concurrent use. Frontends funnel every input
// event and tick through a single goroutine.
package session

import (
	"errors"
	"log/slog"

	"github.com/Versifine/galleria/internal/event"
	"github.com/Versifine/galleria/internal/input"
	"github.com/Versifine/galleria/internal/look"
	"github.com/Versifine/galleria/internal/metrics"
	"github.com/Versifine/galleria/internal/motion"
	"github.com/Versifine/galleria/internal/teleport"
	"github.com/Versifine/galleria/internal/zone"
)

type Options struct {
	Params      motion.Params
	Start       motion.Vec3
	Sensitivity float64
	Keys        input.KeyMap
	Registry    *zone.Registry
	Teleporter  *teleport.Service
	TieBreak    zone.TieBreak
	// SkipWelcome starts the session past the welcome panel.
	SkipWelcome bool

	Bus     *event.Bus
	Metrics *metrics.Recorder
	Logger  *slog.Logger
}

type Session struct {
	state      motion.State
	integrator *motion.Integrator
	keyboard   *input.Keyboard
	look       *look.Controller
	registry   *zone.Registry
	teleporter *teleport.Service
	tieBreak   zone.TieBreak

	hover   zone.Hover
	entered bool
	elapsed float64
	frames  uint64

	bus     *event.Bus
	metrics *metrics.Recorder
	log     *slog.Logger
}

// FrameResult reports what a single Frame call did.
type FrameResult struct {
	Skipped      bool
	Delta        float64
	Hover        zone.Hover
	HoverChanged bool
}

// Snapshot is a read-only copy of the session for presentation.
type Snapshot struct {
	Pose     motion.Pose
	Velocity motion.Vec2
	Input    input.State
	Hover    zone.Hover
	// Zone is the hovered zone; valid only when Hover.Active().
	Zone    zone.Zone
	Engaged bool
	Entered bool
	Elapsed float64
	Frames  uint64
}

func New(opts Options) (*Session, error) {
	if opts.Registry == nil {
		return nil, errors.New("session: zone registry is nil")
	}
	teleporter := opts.Teleporter
	if teleporter == nil {
		teleporter = teleport.NewService(opts.Registry, teleport.DefaultEyeHeight, teleport.DefaultApproachOffset)
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	s := &Session{
		integrator: motion.NewIntegrator(opts.Params),
		keyboard:   input.NewKeyboard(opts.Keys),
		look:       look.NewController(opts.Sensitivity),
		registry:   opts.Registry,
		teleporter: teleporter,
		tieBreak:   opts.TieBreak,
		entered:    opts.SkipWelcome,
		bus:        opts.Bus,
		metrics:    opts.Metrics,
		log:        log,
	}
	s.integrator.SetLogger(log)
	s.state.Pose.Position = opts.Start
	s.hover = s.registry.Evaluate(s.state.Pose.Position, s.tieBreak)
	return s, nil
}

// Keyboard exposes the key state so frontends can attach a pulser.
func (s *Session) Keyboard() *input.Keyboard {
	return s.keyboard
}

func (s *Session) Registry() *zone.Registry {
	return s.registry
}

func (s *Session) KeyDown(code string) bool {
	if s.look.OnKey(code) {
		s.lookChanged()
		return true
	}
	return s.keyboard.OnKeyDown(code)
}

func (s *Session) KeyUp(code string) bool {
	return s.keyboard.OnKeyUp(code)
}

// MouseMove applies a relative pointer delta while look capture is engaged.
func (s *Session) MouseMove(dx, dy float64) bool {
	return s.look.OnMouseMove(dx, dy, &s.state.Pose.Orientation)
}

// Click engages look capture once the welcome panel has been dismissed.
func (s *Session) Click() bool {
	if !s.entered {
		return false
	}
	if s.look.OnClick() {
		s.lookChanged()
		return true
	}
	return false
}

func (s *Session) Escape() bool {
	return s.KeyDown("Escape")
}

// Enter dismisses the welcome panel.
func (s *Session) Enter() bool {
	if s.entered {
		return false
	}
	s.entered = true
	s.log.Info("Welcome dismissed")
	return true
}

func (s *Session) Entered() bool {
	return s.entered
}

// SetLook engages or releases look capture directly, bypassing the click
// gesture. The welcome gate still applies to engaging.
func (s *Session) SetLook(on bool) bool {
	if on {
		return s.Click()
	}
	if s.look.Disengage() {
		s.lookChanged()
		return true
	}
	return false
}

func (s *Session) lookChanged() {
	engaged := s.look.Engaged()
	s.metrics.LookEngaged(engaged)
	s.bus.Publish(event.EventLookChanged, event.LookChangedEvent{Engaged: engaged})
	s.log.Debug("Look capture changed", "engaged", engaged)
}

// Frame integrates one frame of dt seconds and re-evaluates proximity.
func (s *Session) Frame(dt float64) FrameResult {
	res := FrameResult{Delta: dt}
	if s.integrator.Advance(&s.state, s.keyboard.State(), dt) {
		s.elapsed += dt
		s.frames++
		s.metrics.Frame(dt, s.state.Velocity.Length())
	} else {
		res.Skipped = true
		res.Delta = 0
		s.metrics.FrameSkipped()
		s.bus.Publish(event.EventFrameSkipped, event.FrameSkippedEvent{Delta: dt})
	}
	res.HoverChanged = s.updateHover()
	res.Hover = s.hover
	return res
}

func (s *Session) updateHover() bool {
	next := s.registry.Evaluate(s.state.Pose.Position, s.tieBreak)
	prev := s.hover
	s.hover = next
	if next.ZoneID == prev.ZoneID {
		return false
	}
	s.metrics.HoverChanged(next.ZoneID)
	s.bus.Publish(event.EventHoverChanged, event.HoverChangedEvent{
		Previous: prev.ZoneID,
		Current:  next.ZoneID,
		Distance: next.Distance,
	})
	if next.Active() {
		s.log.Info("Zone entered", "zone", next.ZoneID, "distance", next.Distance)
	} else {
		s.log.Info("Zone left", "zone", prev.ZoneID)
	}
	return true
}

// Teleport jumps next to zone id. Hover is re-evaluated on the next Frame.
func (s *Session) Teleport(id string) error {
	z, err := s.teleporter.Teleport(&s.state, id)
	if err != nil {
		s.metrics.Teleport(false)
		s.log.Warn("Teleport rejected", "zone", id, "error", err)
		return err
	}
	s.metrics.Teleport(true)
	pos := s.state.Pose.Position
	s.bus.Publish(event.EventTeleported, event.TeleportedEvent{ZoneID: z.ID, X: pos.X, Y: pos.Y, Z: pos.Z})
	s.log.Info("Teleported", "zone", z.ID, "x", pos.X, "y", pos.Y, "z", pos.Z)
	return nil
}

// TeleportIndex teleports to the zone at registration index i.
func (s *Session) TeleportIndex(i int) error {
	z, ok := s.registry.At(i)
	if !ok {
		s.metrics.Teleport(false)
		return zone.ErrInvalidZone
	}
	return s.Teleport(z.ID)
}

func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Pose:     s.state.Pose,
		Velocity: s.state.Velocity,
		Input:    s.keyboard.State(),
		Hover:    s.hover,
		Engaged:  s.look.Engaged(),
		Entered:  s.entered,
		Elapsed:  s.elapsed,
		Frames:   s.frames,
	}
	if s.hover.Active() {
		snap.Zone, _ = s.registry.Lookup(s.hover.ZoneID)
	}
	return snap
}

// Skipped is the number of frames dropped for bad deltas.
func (s *Session) Skipped() uint64 {
	return s.integrator.Skipped()
}
