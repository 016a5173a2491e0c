// Package look binds relative pointer motion to camera orientation while the
// pointer is captured.
package look

import (
	"math"

	"github.com/Versifine/galleria/internal/motion"
)

// DefaultSensitivity is the rotation applied per pixel of pointer motion, in
// radians.
const DefaultSensitivity = 0.002

const maxPitch = math.Pi / 2

// Controller owns the capture flag. Orientation itself lives on the camera
// pose; the controller only mutates it while engaged.
type Controller struct {
	sensitivity float64
	engaged     bool
}

func NewController(sensitivity float64) *Controller {
	if sensitivity <= 0 {
		sensitivity = DefaultSensitivity
	}
	return &Controller{sensitivity: sensitivity}
}

func (c *Controller) Engaged() bool {
	return c.engaged
}

// Engage captures the pointer. It reports whether the state changed.
func (c *Controller) Engage() bool {
	if c.engaged {
		return false
	}
	c.engaged = true
	return true
}

func (c *Controller) Disengage() bool {
	if !c.engaged {
		return false
	}
	c.engaged = false
	return true
}

// OnClick is the engage gesture.
func (c *Controller) OnClick() bool {
	return c.Engage()
}

// OnKey disengages on Escape and ignores every other key.
func (c *Controller) OnKey(code string) bool {
	if code != "Escape" {
		return false
	}
	return c.Disengage()
}

// OnMouseMove applies a relative pointer delta in pixels to o. Moving right
// turns right, moving down looks down. Pitch is clamped to straight up/down
// and yaw wraps to (-pi, pi]. Returns false when the pointer is not captured.
func (c *Controller) OnMouseMove(dx, dy float64, o *motion.Orientation) bool {
	if !c.engaged || o == nil {
		return false
	}
	if math.IsNaN(dx) || math.IsNaN(dy) || math.IsInf(dx, 0) || math.IsInf(dy, 0) {
		return false
	}
	o.Yaw = WrapYaw(o.Yaw - dx*c.sensitivity)
	o.Pitch = ClampPitch(o.Pitch - dy*c.sensitivity)
	return true
}

func (c *Controller) Sensitivity() float64 {
	return c.sensitivity
}

func ClampPitch(pitch float64) float64 {
	if pitch < -maxPitch {
		return -maxPitch
	}
	if pitch > maxPitch {
		return maxPitch
	}
	return pitch
}

// WrapYaw maps yaw into (-pi, pi] in constant time for any finite input.
func WrapYaw(yaw float64) float64 {
	yaw = math.Remainder(yaw, 2*math.Pi)
	if yaw <= -math.Pi {
		yaw += 2 * math.Pi
	}
	return yaw
}
