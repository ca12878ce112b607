package fixmath

import (
	"fmt"

	"github.com/phanxgames/fixmath/fixed"
)

// Vec2 is a 2D vector of fixed-point components.
type Vec2 struct {
	X, Y fixed.F32
}

// Common vectors.
var (
	Vec2Zero  = Vec2{}
	Vec2One   = Vec2{fixed.One, fixed.One}
	Vec2Right = Vec2{fixed.One, 0}
	Vec2Up    = Vec2{0, fixed.One}
)

// V2 builds a vector from two scalars.
func V2(x, y fixed.F32) Vec2 { return Vec2{x, y} }

// V2i builds a vector from two integers.
func V2i(x, y int) Vec2 { return Vec2{fixed.FromInt(x), fixed.FromInt(y)} }

// V2f builds a vector from two floats. Edge use only (input, rendering).
func V2f(x, y float64) Vec2 { return Vec2{fixed.FromFloat64(x), fixed.FromFloat64(y)} }

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Neg() Vec2       { return Vec2{-v.X, -v.Y} }

// Mul multiplies componentwise.
func (v Vec2) Mul(o Vec2) Vec2 { return Vec2{fixed.Mul(v.X, o.X), fixed.Mul(v.Y, o.Y)} }

// Div divides componentwise.
func (v Vec2) Div(o Vec2) Vec2 { return Vec2{fixed.Div(v.X, o.X), fixed.Div(v.Y, o.Y)} }

// DivFast divides componentwise with truncation.
func (v Vec2) DivFast(o Vec2) Vec2 { return Vec2{fixed.DivFast(v.X, o.X), fixed.DivFast(v.Y, o.Y)} }

// Scale multiplies both components by s.
func (v Vec2) Scale(s fixed.F32) Vec2 { return Vec2{fixed.Mul(v.X, s), fixed.Mul(v.Y, s)} }

// DivScalar divides both components by s.
func (v Vec2) DivScalar(s fixed.F32) Vec2 { return Vec2{fixed.Div(v.X, s), fixed.Div(v.Y, s)} }

// Dot returns the dot product, rounded once.
func (v Vec2) Dot(o Vec2) fixed.F32 { return fixed.Dot2(v.X, v.Y, o.X, o.Y) }

// Cross returns the z component of the 3D cross product.
func (v Vec2) Cross(o Vec2) fixed.F32 { return fixed.Dot2(v.X, -v.Y, o.Y, o.X) }

// Perp returns v rotated by +90 degrees.
func (v Vec2) Perp() Vec2 { return Vec2{-v.Y, v.X} }

// Length returns the Euclidean length.
func (v Vec2) Length() fixed.F32 { return fixed.Hypot(v.X, v.Y) }

// LengthFast returns the Euclidean length, truncated.
func (v Vec2) LengthFast() fixed.F32 { return fixed.HypotFast(v.X, v.Y) }

// LengthSqr returns the squared length. Saturates for long vectors.
func (v Vec2) LengthSqr() fixed.F32 { return v.Dot(v) }

// Distance returns the length of o - v.
func (v Vec2) Distance(o Vec2) fixed.F32 { return o.Sub(v).Length() }

// Normalize returns v scaled to unit length. The zero vector stays zero.
func (v Vec2) Normalize() Vec2 {
	l := v.Length()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{fixed.Div(v.X, l), fixed.Div(v.Y, l)}
}

// NormalizeFast is Normalize using the truncating tiers.
func (v Vec2) NormalizeFast() Vec2 {
	l := v.LengthFast()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{fixed.DivFast(v.X, l), fixed.DivFast(v.Y, l)}
}

// Lerp interpolates from v to o. t is not clamped.
func (v Vec2) Lerp(o Vec2, t fixed.F32) Vec2 {
	return Vec2{fixed.Lerp(v.X, o.X, t), fixed.Lerp(v.Y, o.Y, t)}
}

func (v Vec2) Min(o Vec2) Vec2 { return Vec2{fixed.Min(v.X, o.X), fixed.Min(v.Y, o.Y)} }
func (v Vec2) Max(o Vec2) Vec2 { return Vec2{fixed.Max(v.X, o.X), fixed.Max(v.Y, o.Y)} }
func (v Vec2) Abs() Vec2       { return Vec2{fixed.Abs(v.X), fixed.Abs(v.Y)} }

// Clamp limits each component to [lo, hi].
func (v Vec2) Clamp(lo, hi Vec2) Vec2 {
	return Vec2{fixed.Clamp(v.X, lo.X, hi.X), fixed.Clamp(v.Y, lo.Y, hi.Y)}
}

// IsZero reports whether both components are zero.
func (v Vec2) IsZero() bool { return v.X == 0 && v.Y == 0 }

// Float64 returns the components as floats, for rendering.
func (v Vec2) Float64() (x, y float64) { return v.X.Float64(), v.Y.Float64() }

func (v Vec2) String() string {
	return fmt.Sprintf("(%s, %s)", v.X, v.Y)
}
