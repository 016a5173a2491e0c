package motion

import (
	"errors"
	"log/slog"
	"math"

	"github.com/Versifine/galleria/internal/input"
)

const (
	DefaultDamping = 10.0
	DefaultSpeed   = 25.0
)

var ErrNonFiniteDelta = errors.New("non-finite frame delta")

type Params struct {
	Damping float64
	Speed   float64
	// MirrorStrafe subtracts the strafe term on x, the same sign as the z
	// update, so the strafe-right key moves the camera to its left. By
	// default the term is added and strafe-right moves right.
	MirrorStrafe bool
}

func DefaultParams() Params {
	return Params{Damping: DefaultDamping, Speed: DefaultSpeed}
}

// SanitizeDelta maps a negative, NaN or infinite frame delta to zero.
func SanitizeDelta(dt float64) (float64, error) {
	if !finite(dt) || dt < 0 {
		return 0, ErrNonFiniteDelta
	}
	return dt, nil
}

// Direction is the normalized desired movement in camera-local space: +Z
// forward, +X right. Diagonals have the same length as single axes.
func Direction(in input.State) Vec2 {
	var d Vec2
	if in.Forward {
		d.Z++
	}
	if in.Backward {
		d.Z--
	}
	if in.Right {
		d.X++
	}
	if in.Left {
		d.X--
	}
	return d.Normalized()
}

// Integrate advances s by dt seconds. dt must already be sanitized; a zero dt
// returns s unchanged. Friction saturates at Damping*dt = 1, so frames longer
// than 1/Damping stop the camera instead of following v -= v*Damping*dt.
func Integrate(s State, in input.State, dt float64, p Params) State {
	if dt <= 0 {
		return s
	}

	// A frame longer than 1/Damping would flip the sign of the velocity,
	// so the friction factor saturates at a full stop.
	friction := math.Min(p.Damping*dt, 1)
	s.Velocity.X -= s.Velocity.X * friction
	s.Velocity.Z -= s.Velocity.Z * friction

	dir := Direction(in)
	if in.Forward || in.Backward {
		s.Velocity.Z -= dir.Z * p.Speed * dt
	}
	if in.Left || in.Right {
		if p.MirrorStrafe {
			s.Velocity.X -= dir.X * p.Speed * dt
		} else {
			s.Velocity.X += dir.X * p.Speed * dt
		}
	}

	height := s.Pose.Position.Y
	pos := s.Pose.Position
	pos = pos.Add(s.Pose.Right().Scale(s.Velocity.X * dt))
	pos = pos.Add(s.Pose.Back().Scale(s.Velocity.Z * dt))
	pos.Y = height
	s.Pose.Position = pos
	return s
}

// Integrator applies Integrate with delta sanitation. A bad delta skips the
// frame and is logged once per integrator.
type Integrator struct {
	params  Params
	log     *slog.Logger
	skipped uint64
	warned  bool
}

func NewIntegrator(p Params) *Integrator {
	if p.Damping <= 0 {
		p.Damping = DefaultDamping
	}
	if p.Speed <= 0 {
		p.Speed = DefaultSpeed
	}
	return &Integrator{params: p, log: slog.Default()}
}

// SetLogger routes the skipped-frame warning to l.
func (it *Integrator) SetLogger(l *slog.Logger) {
	if l != nil {
		it.log = l
	}
}

// Advance integrates one frame in place. It reports false when dt was rejected
// and the frame was skipped.
func (it *Integrator) Advance(s *State, in input.State, dt float64) bool {
	clean, err := SanitizeDelta(dt)
	if err != nil {
		it.skipped++
		if !it.warned {
			it.warned = true
			it.log.Warn("Skipping frame with invalid delta", "dt", dt, "error", err)
		}
		return false
	}
	*s = Integrate(*s, in, clean, it.params)
	return true
}

func (it *Integrator) Params() Params {
	return it.params
}

func (it *Integrator) Skipped() uint64 {
	return it.skipped
}
