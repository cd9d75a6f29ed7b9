package vector_math

import (
	"testing"

	"github.com/chewxy/math32"
)

const tol = 1e-5

// TestNewMat calls NewMat and confirms some general size constraints
func TestNewMat(t *testing.T) {
	mat0, err := NewMat(0, 0)
	if mat0 != nil || err == nil {
		t.Errorf("Should not be able to create mat0: %s", mat0.ToString())
	}
	for s := uint(1); s <= 6; s++ {
		m, err := NewMat(s, s)
		if err != nil {
			t.Errorf("Error creating matrix of size %dx%d: %s", s, s, err)
		}
		if m.ByteSize() != int(4*s*s) {
			t.Errorf("mat%d should have byte size: %d but was %d", s, 4*s*s, m.ByteSize())
		}
	}
}

func TestMultSizeMismatch(t *testing.T) {
	a := NewUnitMat(4)
	b, _ := NewMat(3, 2)
	if _, err := a.Mult(&b); err == nil {
		t.Errorf("Multiplying a 4x4 with a 3x2 matrix should fail")
	}
	tm := NewTranslation(Vec3{X: 1, Y: 2, Z: 3})
	sm := NewScale(Splat(2))
	ts := tm.MustMult(&sm)
	if p := point(Vec3{X: 1, Y: 1, Z: 1}, ts); !near3(p, Vec3{X: 3, Y: 4, Z: 5}) {
		t.Errorf("T*S should scale first and translate second, got %v", p)
	}
}

func TestOrthographic(t *testing.T) {
	m := NewOrthographic(-2, 2, -1, 1, -100, 100)

	p := point(Vec3{X: 2, Y: 1, Z: 0}, m)
	if !near3(p, Vec3{X: 1, Y: -1, Z: 0.5}) {
		t.Errorf("Top right corner should map to (1, -1, 0.5), got %v", p)
	}
	p = point(Vec3{X: -2, Y: -1, Z: 100}, m)
	if !near3(p, Vec3{X: -1, Y: 1, Z: 0}) {
		t.Errorf("Bottom left near corner should map to (-1, 1, 0), got %v", p)
	}
	p = point(Vec3{Z: -100}, m)
	if !near3(p, Vec3{Z: 1}) {
		t.Errorf("Far plane should map to z = 1, got %v", p)
	}
}

func TestPerspective(t *testing.T) {
	m := NewPerspective(ToRad(90), 1, 0.1, 100)

	p, w := MulVec4(Vec3{Z: -0.1}, 1, m)
	if math32.Abs(p.Z/w) > tol {
		t.Errorf("Near plane should map to depth 0, got %f", p.Z/w)
	}
	p, w = MulVec4(Vec3{Z: -100}, 1, m)
	if math32.Abs(p.Z/w-1) > tol {
		t.Errorf("Far plane should map to depth 1, got %f", p.Z/w)
	}
	p, w = MulVec4(Vec3{Y: 1, Z: -1}, 1, m)
	if math32.Abs(p.Y/w+1) > tol {
		t.Errorf("Top edge at 90 degree fov should map to y = -1, got %f", p.Y/w)
	}
}

func TestLookAt(t *testing.T) {
	pos := Vec3{X: 1, Y: 1, Z: 1}
	m := NewLookAt(pos, Vec3{}, Vec3{Y: 1})

	if p := point(pos, m); !near3(p, Vec3{}) {
		t.Errorf("Camera position should map to the origin, got %v", p)
	}
	if p := point(Vec3{}, m); !near3(p, Vec3{Z: -math32.Sqrt(3)}) {
		t.Errorf("Target should lie on the negative z-axis, got %v", p)
	}
	if p := direction(Vec3{X: 1, Z: -1}, m); math32.Abs(p.Y) > tol {
		t.Errorf("Horizontal direction perpendicular to view should stay horizontal, got %v", p)
	}
}

func TestUnroll(t *testing.T) {
	m := sequence(3, 4)
	f := m.Unroll()
	if len(f) != 12 {
		t.Fatalf("Unroll of 3x4 should have 12 entries, got %d", len(f))
	}
	for i := range f {
		if f[i] != m[i/4][i%4] {
			t.Errorf("Unroll[%d] = %f, want %f", i, f[i], m[i/4][i%4])
		}
	}
}

func TestColumnMajor(t *testing.T) {
	m := NewTranslation(Vec3{X: 1, Y: 2, Z: 3})
	f := m.ColumnMajor()
	if f[12] != 1 || f[13] != 2 || f[14] != 3 {
		t.Errorf("Translation should occupy the last column, got %v", f)
	}
}

func TestTranspose(t *testing.T) {
	m := sequence(3, 4)
	mT := m.Transpose()
	if mT.RowCnt() != 4 || mT.ColCnt() != 3 {
		t.Fatalf("Transpose of 3x4 should be 4x3: %s", mT.Describe())
	}
	back := mT.Transpose()
	if !back.Equals(&m) {
		t.Errorf("Transposing twice should be the identity: \n%s\n%s", m.Describe(), back.Describe())
	}
}

// sequence fills a r x c matrix with 0, 1, 2, ... row by row.
func sequence(r, c uint) Mat {
	m, _ := NewMat(r, c)
	for i := range m {
		for j := range m[i] {
			m[i][j] = float32(i*int(c) + j)
		}
	}
	return m
}

func point(v Vec3, m Mat) Vec3 {
	p, w := MulVec4(v, 1, m)
	return p.ScalarMul(1 / w)
}

func direction(v Vec3, m Mat) Vec3 {
	p, _ := MulVec4(v, 0, m)
	return p
}

func near3(a, b Vec3) bool {
	return a.Sub(b).Len() < tol
}
