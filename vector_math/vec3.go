package vector_math

import "github.com/chewxy/math32"

type Vec3 struct {
	X, Y, Z float32
}

// Splat returns a vector with all three components set to s.
func Splat(s float32) Vec3 {
	return Vec3{X: s, Y: s, Z: s}
}

func (v Vec3) Cross(w Vec3) Vec3 {
	return Vec3{
		X: (v.Y * w.Z) - (v.Z * w.Y),
		Y: (v.Z * w.X) - (v.X * w.Z),
		Z: (v.X * w.Y) - (v.Y * w.X),
	}
}

func (v Vec3) Dot(w Vec3) float32 {
	return (v.X * w.X) + (v.Y * w.Y) + (v.Z * w.Z)
}

func (v Vec3) Sub(w Vec3) Vec3 {
	return Vec3{
		X: v.X - w.X,
		Y: v.Y - w.Y,
		Z: v.Z - w.Z,
	}
}

func (v Vec3) Add(w Vec3) Vec3 {
	return Vec3{
		X: v.X + w.X,
		Y: v.Y + w.Y,
		Z: v.Z + w.Z,
	}
}

func (v Vec3) ScalarMul(factor float32) Vec3 {
	return Vec3{
		X: v.X * factor,
		Y: v.Y * factor,
		Z: v.Z * factor,
	}
}

func (v Vec3) Len() float32 {
	return math32.Sqrt((v.X * v.X) + (v.Y * v.Y) + (v.Z * v.Z))
}

// Norm returns the unit vector of v. The zero vector is returned unchanged.
func (v Vec3) Norm() Vec3 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return Vec3{
		X: v.X / l,
		Y: v.Y / l,
		Z: v.Z / l,
	}
}
