package motion

import "math"

// Orientation is a yaw/pitch rotation in radians applied in YXZ order: yaw
// about the world Y axis, then pitch about the camera's local X axis. The
// camera looks down its local -Z axis, so zero yaw faces world -Z.
type Orientation struct {
	Yaw   float64
	Pitch float64
}

type Pose struct {
	Position    Vec3
	Orientation Orientation
}

// Right is the camera's local +X axis in world space. It is always horizontal.
func (p Pose) Right() Vec3 {
	yaw := p.Orientation.Yaw
	return Vec3{X: math.Cos(yaw), Y: 0, Z: -math.Sin(yaw)}
}

// Back is the camera's local +Z axis in world space, opposite to where the
// camera looks. It tilts with pitch.
func (p Pose) Back() Vec3 {
	yaw, pitch := p.Orientation.Yaw, p.Orientation.Pitch
	return Vec3{
		X: math.Sin(yaw) * math.Cos(pitch),
		Y: -math.Sin(pitch),
		Z: math.Cos(yaw) * math.Cos(pitch),
	}
}

// Heading is the planar look direction as an angle on the (x, z) plane, in
// radians, measured from world -Z toward world -X. It equals the yaw.
func (p Pose) Heading() float64 {
	return p.Orientation.Yaw
}

// State is everything the integrator carries between frames.
type State struct {
	Pose     Pose
	Velocity Vec2
}
