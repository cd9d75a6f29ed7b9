package vector_math

import "github.com/chewxy/math32"

// ToRad is a helper function to turn degree to radians
func ToRad(deg float32) float32 {
	return deg * math32.Pi / 180
}

// MulVec4 multiplies (v, w) by a 4x4 matrix and returns the xyz and w parts of the result.
func MulVec4(v Vec3, w float32, m Mat) (Vec3, float32) {
	v4 := [4]float32{v.X, v.Y, v.Z, w}
	var out [4]float32
	for i := 0; i < 4; i++ {
		out[i] = (v4[0] * m[i][0]) + (v4[1] * m[i][1]) + (v4[2] * m[i][2]) + (v4[3] * m[i][3])
	}
	return Vec3{X: out[0], Y: out[1], Z: out[2]}, out[3]
}
