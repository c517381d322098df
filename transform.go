package lumen

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// Transform is a position, rotation and scale in 3D space stored as a 4x4
// affine matrix. Storage is column-major, so the translation occupies the last
// storage row (elements 12..14).
type Transform struct {
	Matrix mgl64.Mat4
}

func Origin() Transform {
	return FromPosition(0, 0, 0)
}

func FromPosition(x, y, z float64) Transform {
	return Transform{Matrix: mgl64.Translate3D(x, y, z)}
}

func FromScale(x, y, z float64) Transform {
	return Transform{Matrix: mgl64.Scale3D(x, y, z)}
}

// FromEulerAngles builds a rotation from angles in radians around X, then Y,
// then Z. M = Rx * Ry * Rz
func FromEulerAngles(x, y, z float64) Transform {
	rx := mgl64.HomogRotate3DX(x)
	ry := mgl64.HomogRotate3DY(y)
	rz := mgl64.HomogRotate3DZ(z)
	return Transform{Matrix: rx.Mul4(ry).Mul4(rz)}
}

// Multiply returns a*b. Order matters: parent.Mul(child) is the child's
// transform in the parent's space.
func Multiply(a, b Transform) Transform {
	return Transform{Matrix: a.Matrix.Mul4(b.Matrix)}
}

func (t Transform) Mul(other Transform) Transform {
	return Multiply(t, other)
}

// Inverse returns the inverse matrix. Singular transforms (zero scale) yield
// the zero matrix, as mgl64 does.
func (t Transform) Inverse() Transform {
	return Transform{Matrix: t.Matrix.Inv()}
}

// ToRenderMatrix narrows the matrix to float32 for upload to the GPU.
func (t Transform) ToRenderMatrix() mgl32.Mat4 {
	var out mgl32.Mat4
	for i, v := range t.Matrix {
		out[i] = float32(v)
	}
	return out
}

func (t Transform) Position() (x, y, z float64) {
	return t.Matrix[12], t.Matrix[13], t.Matrix[14]
}

// ApproxEqual compares element-wise within epsilon.
func (t Transform) ApproxEqual(other Transform, epsilon float64) bool {
	for i := range t.Matrix {
		if math.Abs(t.Matrix[i]-other.Matrix[i]) > epsilon {
			return false
		}
	}
	return true
}
