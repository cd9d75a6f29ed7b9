package vector_math

import "github.com/chewxy/math32"

func NewUnitMat(s uint) Mat {
	um, _ := NewMat(s, s)
	for i := range um {
		um[i][i] = 1
	}
	return um
}

// NewPerspective maps a right-handed view frustum looking down -Z on to Vulkan's canonical
// view volume, which spans from (-1, -1, 0) to (1, 1, 1) with the y-axis pointing down.
func NewPerspective(fovy float32, aspect float32, zNear float32, zFar float32) Mat {
	f := 1 / math32.Tan(fovy/2)
	m, _ := NewMat(4, 4)
	m[0][0] = f / aspect
	m[1][1] = -f
	m[2][2] = zFar / (zNear - zFar)
	m[2][3] = (zNear * zFar) / (zNear - zFar)
	m[3][2] = -1
	return m
}

// NewOrthographic maps the box spanned by left, right, bottom, top and the distances near
// and far in front of the camera on to Vulkan's canonical view volume. Setting the box to
// the viewport's aspect ratio ("right - left = aspect * (top - bottom)") avoids stretching.
// Negative near values are fine, they include geometry behind the camera position.
func NewOrthographic(left, right, bottom, top, near, far float32) Mat {
	m := NewUnitMat(4)
	m[0][0] = 2 / (right - left)
	m[0][3] = -(right + left) / (right - left)
	m[1][1] = -2 / (top - bottom)
	m[1][3] = (top + bottom) / (top - bottom)
	m[2][2] = -1 / (far - near)
	m[2][3] = -near / (far - near)
	return m
}

// NewLookAt builds a right-handed view matrix for a camera at camPos facing camTarget.
// The camera looks down its local -Z axis, as in gluLookAt.
func NewLookAt(camPos Vec3, camTarget Vec3, up Vec3) Mat {
	camBack := camPos.Sub(camTarget).Norm()
	camRight := up.Cross(camBack).Norm()
	camUp := camBack.Cross(camRight)

	m := NewUnitMat(4)
	m[0][0] = camRight.X
	m[0][1] = camRight.Y
	m[0][2] = camRight.Z
	m[0][3] = -camRight.Dot(camPos)

	m[1][0] = camUp.X
	m[1][1] = camUp.Y
	m[1][2] = camUp.Z
	m[1][3] = -camUp.Dot(camPos)

	m[2][0] = camBack.X
	m[2][1] = camBack.Y
	m[2][2] = camBack.Z
	m[2][3] = -camBack.Dot(camPos)
	return m
}

func NewScale(s Vec3) Mat {
	sm := NewUnitMat(4)
	sm[0][0] = s.X
	sm[1][1] = s.Y
	sm[2][2] = s.Z
	return sm
}

func NewTranslation(t Vec3) Mat {
	tm := NewUnitMat(4)
	tm[0][3] = t.X
	tm[1][3] = t.Y
	tm[2][3] = t.Z
	return tm
}
