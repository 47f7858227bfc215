// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package linear

import (
	"github.com/chewxy/math32"
)

// Identity returns an identity matrix.
func Identity() (m M4) {
	m.I()
	return
}

// Translation returns the matrix that translates by v.
func Translation(v *V3) (m M4) {
	m.I()
	m[3][0], m[3][1], m[3][2] = v[0], v[1], v[2]
	return
}

// Scaling returns the matrix that scales by v.
func Scaling(v *V3) (m M4) {
	m.I()
	m[0][0], m[1][1], m[2][2] = v[0], v[1], v[2]
	return
}

// Rotation returns the matrix that rotates by angle (radians)
// around axis. axis need not be normalized.
func Rotation(angle float32, axis *V3) (m M4) {
	a := *axis
	if l := a.Len(); l > 0 {
		a.Scale(1/l, &a)
	}
	s, c := math32.Sincos(angle)
	t := 1 - c
	x, y, z := a[0], a[1], a[2]
	m.I()
	m[0][0] = t*x*x + c
	m[0][1] = t*x*y + s*z
	m[0][2] = t*x*z - s*y
	m[1][0] = t*x*y - s*z
	m[1][1] = t*y*y + c
	m[1][2] = t*y*z + s*x
	m[2][0] = t*x*z + s*y
	m[2][1] = t*y*z - s*x
	m[2][2] = t*z*z + c
	return
}

// LookAt returns the view matrix for a right-handed camera
// positioned at eye, looking towards center, with up as the
// up-direction hint.
func LookAt(eye, center, up *V3) (m M4) {
	var f, s, u V3
	f.Sub(center, eye)
	if l := f.Len(); l > 0 {
		f.Scale(1/l, &f)
	}
	s.Cross(&f, up)
	if l := s.Len(); l > 0 {
		s.Scale(1/l, &s)
	}
	u.Cross(&s, &f)
	m.I()
	m[0][0], m[1][0], m[2][0] = s[0], s[1], s[2]
	m[0][1], m[1][1], m[2][1] = u[0], u[1], u[2]
	m[0][2], m[1][2], m[2][2] = -f[0], -f[1], -f[2]
	m[3][0] = -s.Dot(eye)
	m[3][1] = -u.Dot(eye)
	m[3][2] = f.Dot(eye)
	return
}

// Perspective returns a right-handed perspective-projection
// matrix with clip space z in [-1, 1] (OpenGL convention).
// fovy is in radians.
func Perspective(fovy, aspect, near, far float32) (m M4) {
	f := 1 / math32.Tan(fovy/2)
	m[0][0] = f / aspect
	m[1][1] = f
	m[2][2] = (far + near) / (near - far)
	m[2][3] = -1
	m[3][2] = (2 * far * near) / (near - far)
	return
}

// NormalMatrix sets m to contain the normal matrix
// (transpose of the inverse) derived from the upper-left
// 3x3 block of the given model-view matrix mv.
func NormalMatrix(m *M3, mv *M4) {
	var m3 M3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m3[i][j] = mv[i][j]
		}
	}
	var inv M3
	inv.Invert(&m3)
	m.Transpose(&inv)
}
