package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Vector and matrix types shared with the mathgl library. Mat4 is column-major:
// element (row, col) lives at index col*4+row, and points are column vectors
// transformed as M·p.
type (
	Mat4 = mgl32.Mat4
	Vec2 = mgl32.Vec2
	Vec3 = mgl32.Vec3
	Vec4 = mgl32.Vec4
)

// Tau is one full turn in radians.
const Tau = 2 * math.Pi

// TranslationInto overwrites dst with a translation by (tx, ty) and returns it.
//
//	[ 1 0 0 tx ]
//	[ 0 1 0 ty ]
//	[ 0 0 1 0  ]
//	[ 0 0 0 1  ]
func TranslationInto(dst *Mat4, tx, ty float32) *Mat4 {
	*dst = mgl32.Ident4()
	dst[12] = tx
	dst[13] = ty
	return dst
}

// RotationInto overwrites dst with a counter-clockwise rotation about the z
// axis by angle radians and returns it.
//
//	[ cos -sin 0 0 ]
//	[ sin  cos 0 0 ]
//	[  0    0  1 0 ]
//	[  0    0  0 1 ]
func RotationInto(dst *Mat4, angle float32) *Mat4 {
	sin, cos := math.Sincos(float64(angle))
	*dst = mgl32.Ident4()
	dst[0] = float32(cos)
	dst[1] = float32(sin)
	dst[4] = float32(-sin)
	dst[5] = float32(cos)
	return dst
}

// ScaleInto overwrites dst with a non-uniform scale by (sx, sy) and returns it.
// z and w are left at 1.
//
//	[ sx 0  0 0 ]
//	[ 0  sy 0 0 ]
//	[ 0  0  1 0 ]
//	[ 0  0  0 1 ]
func ScaleInto(dst *Mat4, sx, sy float32) *Mat4 {
	*dst = mgl32.Ident4()
	dst[0] = sx
	dst[5] = sy
	return dst
}

// Translation returns a translation by (tx, ty).
func Translation(tx, ty float32) Mat4 {
	var m Mat4
	return *TranslationInto(&m, tx, ty)
}

// Rotation returns a rotation about the z axis by angle radians.
func Rotation(angle float32) Mat4 {
	var m Mat4
	return *RotationInto(&m, angle)
}

// Scale returns a non-uniform scale by (sx, sy).
func Scale(sx, sy float32) Mat4 {
	var m Mat4
	return *ScaleInto(&m, sx, sy)
}

// Compose returns t·r·s: a vertex is scaled first, then rotated about the
// local origin, then translated.
func Compose(t, r, s Mat4) Mat4 {
	return t.Mul4(r).Mul4(s)
}

// TRS builds a model matrix from an offset, an angle in radians and per-axis
// scale factors.
func TRS(offset Vec2, angle float32, scale Vec2) Mat4 {
	return Compose(
		Translation(offset.X(), offset.Y()),
		Rotation(angle),
		Scale(scale.X(), scale.Y()),
	)
}

// Apply transforms the homogeneous point p by m.
func Apply(m Mat4, p Vec4) Vec4 {
	return m.Mul4x1(p)
}
