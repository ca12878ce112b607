package fixmath

import (
	"fmt"

	"github.com/phanxgames/fixmath/fixed"
)

// Affine2x3 is a 2D affine matrix stored as two rows of three columns:
//
//	| M00 M01 M02 |
//	| M10 M11 M12 |
//	|  0   0   1  |   (implicit)
//
// Column 2 is the translation.
type Affine2x3 struct {
	M00, M01, M02 fixed.F32
	M10, M11, M12 fixed.F32
}

// Affine3x3 is a full homogeneous 3x3 matrix. Matrices built from an
// Affine2x3 have the bottom row [0 0 1].
type Affine3x3 struct {
	M00, M01, M02 fixed.F32
	M10, M11, M12 fixed.F32
	M20, M21, M22 fixed.F32
}

// Identity2x3 returns the identity matrix.
func Identity2x3() Affine2x3 {
	return Affine2x3{M00: fixed.One, M11: fixed.One}
}

// Identity3x3 returns the identity matrix.
func Identity3x3() Affine3x3 {
	return Affine3x3{M00: fixed.One, M11: fixed.One, M22: fixed.One}
}

// FromTRS builds translate * rotate * scale.
func FromTRS(t Vec2, a Angle, s Vec2) Affine2x3 {
	return fromTRS(t, a.Right(), s)
}

// FromTRS3x3 is FromTRS with an explicit bottom row.
func FromTRS3x3(t Vec2, a Angle, s Vec2) Affine3x3 {
	return FromTRS(t, a, s).To3x3()
}

// fromTRS builds the matrix from a precomputed unit direction (cos, sin).
func fromTRS(t, right, s Vec2) Affine2x3 {
	c, sn := right.X, right.Y
	return Affine2x3{
		M00: fixed.Mul(c, s.X), M01: fixed.Mul(-sn, s.Y), M02: t.X,
		M10: fixed.Mul(sn, s.X), M11: fixed.Mul(c, s.Y), M12: t.Y,
	}
}

// --- Affine2x3 ---

// Column0 returns the transformed X axis.
func (m Affine2x3) Column0() Vec2 { return Vec2{m.M00, m.M10} }

// Column1 returns the transformed Y axis.
func (m Affine2x3) Column1() Vec2 { return Vec2{m.M01, m.M11} }

// Column2 returns the translation.
func (m Affine2x3) Column2() Vec2 { return Vec2{m.M02, m.M12} }

// SetColumn2 overwrites the translation.
func (m *Affine2x3) SetColumn2(v Vec2) {
	m.M02, m.M12 = v.X, v.Y
}

// Determinant returns the determinant of the linear part.
func (m Affine2x3) Determinant() fixed.F32 {
	return fixed.Dot2(m.M00, -m.M01, m.M11, m.M10)
}

// Mul returns m * o.
func (m Affine2x3) Mul(o Affine2x3) Affine2x3 {
	return Affine2x3{
		M00: fixed.Dot2(m.M00, m.M01, o.M00, o.M10),
		M01: fixed.Dot2(m.M00, m.M01, o.M01, o.M11),
		M02: fixed.Dot3(m.M00, m.M01, m.M02, o.M02, o.M12, fixed.One),
		M10: fixed.Dot2(m.M10, m.M11, o.M00, o.M10),
		M11: fixed.Dot2(m.M10, m.M11, o.M01, o.M11),
		M12: fixed.Dot3(m.M10, m.M11, m.M12, o.M02, o.M12, fixed.One),
	}
}

// Mul3x3 returns m * o as a full matrix.
func (m Affine2x3) Mul3x3(o Affine3x3) Affine3x3 {
	return Affine3x3{
		M00: fixed.Dot3(m.M00, m.M01, m.M02, o.M00, o.M10, o.M20),
		M01: fixed.Dot3(m.M00, m.M01, m.M02, o.M01, o.M11, o.M21),
		M02: fixed.Dot3(m.M00, m.M01, m.M02, o.M02, o.M12, o.M22),
		M10: fixed.Dot3(m.M10, m.M11, m.M12, o.M00, o.M10, o.M20),
		M11: fixed.Dot3(m.M10, m.M11, m.M12, o.M01, o.M11, o.M21),
		M12: fixed.Dot3(m.M10, m.M11, m.M12, o.M02, o.M12, o.M22),
		M20: o.M20, M21: o.M21, M22: o.M22,
	}
}

// Inverse returns the inverse matrix with bottom row exactly [0 0 1].
// A singular matrix yields saturated entries; see InverseChecked.
func (m Affine2x3) Inverse() Affine3x3 {
	det := m.Determinant()
	return Affine3x3{
		M00: fixed.Div(m.M11, det),
		M01: fixed.Div(-m.M01, det),
		M02: fixed.Div(fixed.Dot2(m.M01, -m.M02, m.M12, m.M11), det),
		M10: fixed.Div(-m.M10, det),
		M11: fixed.Div(m.M00, det),
		M12: fixed.Div(fixed.Dot2(m.M02, -m.M00, m.M10, m.M12), det),
		M22: fixed.One,
	}
}

// InverseChecked is Inverse but reports ErrSingular for a zero determinant.
func (m Affine2x3) InverseChecked() (Affine3x3, error) {
	if m.Determinant() == 0 {
		return Affine3x3{}, fmt.Errorf("invert %v: %w", m, ErrSingular)
	}
	return m.Inverse(), nil
}

// MultiplyPoint transforms a point, translation included.
func (m Affine2x3) MultiplyPoint(p Vec2) Vec2 {
	return Vec2{
		fixed.Dot3(m.M00, m.M01, m.M02, p.X, p.Y, fixed.One),
		fixed.Dot3(m.M10, m.M11, m.M12, p.X, p.Y, fixed.One),
	}
}

// MultiplyVector transforms a direction by the linear part only.
func (m Affine2x3) MultiplyVector(v Vec2) Vec2 {
	return Vec2{
		fixed.Dot2(m.M00, m.M01, v.X, v.Y),
		fixed.Dot2(m.M10, m.M11, v.X, v.Y),
	}
}

// To3x3 appends the bottom row [0 0 1].
func (m Affine2x3) To3x3() Affine3x3 {
	return Affine3x3{
		M00: m.M00, M01: m.M01, M02: m.M02,
		M10: m.M10, M11: m.M11, M12: m.M12,
		M22: fixed.One,
	}
}

func (m Affine2x3) String() string {
	return fmt.Sprintf("[%s %s %s; %s %s %s]", m.M00, m.M01, m.M02, m.M10, m.M11, m.M12)
}

// --- Affine3x3 ---

// IsAffine reports whether the bottom row is exactly [0 0 1].
func (m Affine3x3) IsAffine() bool {
	return m.M20 == 0 && m.M21 == 0 && m.M22 == fixed.One
}

// To2x3 drops the bottom row.
func (m Affine3x3) To2x3() Affine2x3 {
	return Affine2x3{
		M00: m.M00, M01: m.M01, M02: m.M02,
		M10: m.M10, M11: m.M11, M12: m.M12,
	}
}

// Column2 returns the first two entries of the third column.
func (m Affine3x3) Column2() Vec2 { return Vec2{m.M02, m.M12} }

// Transpose returns the transposed matrix.
func (m Affine3x3) Transpose() Affine3x3 {
	return Affine3x3{
		M00: m.M00, M01: m.M10, M02: m.M20,
		M10: m.M01, M11: m.M11, M12: m.M21,
		M20: m.M02, M21: m.M12, M22: m.M22,
	}
}

// Mul returns m * o.
func (m Affine3x3) Mul(o Affine3x3) Affine3x3 {
	return Affine3x3{
		M00: fixed.Dot3(m.M00, m.M01, m.M02, o.M00, o.M10, o.M20),
		M01: fixed.Dot3(m.M00, m.M01, m.M02, o.M01, o.M11, o.M21),
		M02: fixed.Dot3(m.M00, m.M01, m.M02, o.M02, o.M12, o.M22),
		M10: fixed.Dot3(m.M10, m.M11, m.M12, o.M00, o.M10, o.M20),
		M11: fixed.Dot3(m.M10, m.M11, m.M12, o.M01, o.M11, o.M21),
		M12: fixed.Dot3(m.M10, m.M11, m.M12, o.M02, o.M12, o.M22),
		M20: fixed.Dot3(m.M20, m.M21, m.M22, o.M00, o.M10, o.M20),
		M21: fixed.Dot3(m.M20, m.M21, m.M22, o.M01, o.M11, o.M21),
		M22: fixed.Dot3(m.M20, m.M21, m.M22, o.M02, o.M12, o.M22),
	}
}

// Mul2x3 returns m * o, treating o's bottom row as [0 0 1].
func (m Affine3x3) Mul2x3(o Affine2x3) Affine3x3 {
	return m.Mul(o.To3x3())
}

// Determinant returns the full 3x3 determinant.
func (m Affine3x3) Determinant() fixed.F32 {
	c0 := fixed.Dot2(m.M11, -m.M12, m.M22, m.M21)
	c1 := fixed.Dot2(m.M12, -m.M10, m.M20, m.M22)
	c2 := fixed.Dot2(m.M10, -m.M11, m.M21, m.M20)
	return fixed.Dot3(m.M00, m.M01, m.M02, c0, c1, c2)
}

// Inverse returns adjugate / determinant. A singular matrix yields
// saturated entries; see InverseChecked.
func (m Affine3x3) Inverse() Affine3x3 {
	// Cofactors, already transposed into adjugate order.
	a00 := fixed.Dot2(m.M11, -m.M12, m.M22, m.M21)
	a01 := fixed.Dot2(m.M02, -m.M01, m.M21, m.M22)
	a02 := fixed.Dot2(m.M01, -m.M02, m.M12, m.M11)
	a10 := fixed.Dot2(m.M12, -m.M10, m.M20, m.M22)
	a11 := fixed.Dot2(m.M00, -m.M02, m.M22, m.M20)
	a12 := fixed.Dot2(m.M02, -m.M00, m.M10, m.M12)
	a20 := fixed.Dot2(m.M10, -m.M11, m.M21, m.M20)
	a21 := fixed.Dot2(m.M01, -m.M00, m.M20, m.M21)
	a22 := fixed.Dot2(m.M00, -m.M01, m.M11, m.M10)

	det := fixed.Dot3(m.M00, m.M01, m.M02, a00, a10, a20)
	return Affine3x3{
		M00: fixed.Div(a00, det), M01: fixed.Div(a01, det), M02: fixed.Div(a02, det),
		M10: fixed.Div(a10, det), M11: fixed.Div(a11, det), M12: fixed.Div(a12, det),
		M20: fixed.Div(a20, det), M21: fixed.Div(a21, det), M22: fixed.Div(a22, det),
	}
}

// InverseChecked is Inverse but reports ErrSingular for a zero determinant.
func (m Affine3x3) InverseChecked() (Affine3x3, error) {
	if m.Determinant() == 0 {
		return Affine3x3{}, fmt.Errorf("invert %v: %w", m, ErrSingular)
	}
	return m.Inverse(), nil
}

// MultiplyPoint transforms a point. The perspective divide only happens
// when the bottom row is not [0 0 1].
func (m Affine3x3) MultiplyPoint(p Vec2) Vec2 {
	x := fixed.Dot3(m.M00, m.M01, m.M02, p.X, p.Y, fixed.One)
	y := fixed.Dot3(m.M10, m.M11, m.M12, p.X, p.Y, fixed.One)
	if m.IsAffine() {
		return Vec2{x, y}
	}
	w := fixed.Dot3(m.M20, m.M21, m.M22, p.X, p.Y, fixed.One)
	return Vec2{fixed.Div(x, w), fixed.Div(y, w)}
}

// MultiplyVector transforms a direction by the upper-left 2x2 block.
func (m Affine3x3) MultiplyVector(v Vec2) Vec2 {
	return Vec2{
		fixed.Dot2(m.M00, m.M01, v.X, v.Y),
		fixed.Dot2(m.M10, m.M11, v.X, v.Y),
	}
}

func (m Affine3x3) String() string {
	return fmt.Sprintf("[%s %s %s; %s %s %s; %s %s %s]",
		m.M00, m.M01, m.M02, m.M10, m.M11, m.M12, m.M20, m.M21, m.M22)
}
