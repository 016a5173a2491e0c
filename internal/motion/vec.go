package motion

import "math"

type Vec3 struct {
	X float64
	Y float64
	Z float64
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// PlanarDistance is the distance between v and o on the horizontal (x, z)
// plane; the vertical offset is ignored.
func (v Vec3) PlanarDistance(o Vec3) float64 {
	return math.Hypot(v.X-o.X, v.Z-o.Z)
}

// Vec2 is a horizontal vector on the (x, z) plane.
type Vec2 struct {
	X float64
	Z float64
}

func (v Vec2) Length() float64 {
	return math.Hypot(v.X, v.Z)
}

// Normalized returns v scaled to unit length, or the zero vector when v is zero.
func (v Vec2) Normalized() Vec2 {
	l := v.Length()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{X: v.X / l, Z: v.Z / l}
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
