package fixmath

import "github.com/phanxgames/fixmath/fixed"

const (
	deg90  = fixed.F32(90 << fixed.Shift)
	deg180 = fixed.F32(180 << fixed.Shift)
	deg270 = fixed.F32(270 << fixed.Shift)
	deg360 = fixed.F32(360 << fixed.Shift)
)

// Angle is a rotation in degrees, always normalized to [0, 360).
// The zero value is 0 degrees.
type Angle struct {
	deg fixed.F32
}

// AngleFrom returns the angle for deg degrees, normalized to [0, 360).
func AngleFrom(deg fixed.F32) Angle {
	return Angle{deg: Adjust360(deg)}
}

// AngleFromInt returns the angle for a whole number of degrees.
func AngleFromInt(deg int) Angle {
	return Angle{deg: Adjust360(fixed.FromInt(deg % 360))}
}

// AngleFromRadians returns the angle for rad radians.
func AngleFromRadians(rad fixed.F32) Angle {
	return AngleFrom(fixed.RadToDeg(rad))
}

// AngleOf returns the direction angle of v, measured counter-clockwise from
// the +X axis. The zero vector yields 0. Axis-aligned vectors are exact.
func AngleOf(v Vec2) Angle {
	switch {
	case v.Y == 0 && v.X >= 0:
		return Angle{}
	case v.X == 0 && v.Y > 0:
		return Angle{deg: deg90}
	case v.Y == 0:
		return Angle{deg: deg180}
	case v.X == 0:
		return Angle{deg: deg270}
	}
	return AngleFromRadians(fixed.Atan2(v.Y, v.X))
}

// Degrees returns the angle in degrees, in [0, 360).
func (a Angle) Degrees() fixed.F32 { return a.deg }

// Signed returns the angle in degrees, in [-180, 180).
func (a Angle) Signed() fixed.F32 { return Adjust180(a.deg) }

// Radians returns the angle in radians, in [0, 2*Pi).
func (a Angle) Radians() fixed.F32 { return fixed.DegToRad(a.deg) }

func (a Angle) Add(b Angle) Angle { return AngleFrom(a.deg + b.deg) }
func (a Angle) Sub(b Angle) Angle { return AngleFrom(a.deg - b.deg) }
func (a Angle) Neg() Angle        { return AngleFrom(-a.deg) }

// AddDegrees rotates a by deg degrees.
func (a Angle) AddDegrees(deg fixed.F32) Angle { return AngleFrom(a.deg + deg) }

// Scale multiplies the angle by s and re-normalizes.
func (a Angle) Scale(s fixed.F32) Angle { return AngleFrom(fixed.Mul(a.deg, s)) }

// Delta returns the shortest signed rotation from a to b, in [-180, 180).
func (a Angle) Delta(b Angle) fixed.F32 { return Adjust180(b.deg - a.deg) }

// SinCos returns the sine and cosine of the angle. Quarter turns are exact.
func (a Angle) SinCos() (sin, cos fixed.F32) {
	switch a.deg {
	case 0:
		return 0, fixed.One
	case deg90:
		return fixed.One, 0
	case deg180:
		return 0, fixed.Neg1
	case deg270:
		return fixed.Neg1, 0
	}
	return fixed.SinCos(a.Radians())
}

// Right returns the unit direction (cos, sin) of the angle.
func (a Angle) Right() Vec2 {
	s, c := a.SinCos()
	return Vec2{X: c, Y: s}
}

// Up returns the unit direction perpendicular to Right, (-sin, cos).
func (a Angle) Up() Vec2 {
	s, c := a.SinCos()
	return Vec2{X: -s, Y: c}
}

// String returns the angle formatted in degrees.
func (a Angle) String() string {
	return a.deg.String() + "°"
}

// LerpAngle interpolates linearly from a to b along the shortest arc.
func LerpAngle(a, b Angle, t fixed.F32) Angle {
	return AngleFrom(a.deg + fixed.Mul(a.Delta(b), t))
}

// Adjust360 wraps v degrees into [0, 360).
func Adjust360(v fixed.F32) fixed.F32 {
	r := v % deg360
	if r < 0 {
		r += deg360
	}
	return r
}

// Adjust180 wraps v degrees into [-180, 180).
func Adjust180(v fixed.F32) fixed.F32 {
	r := Adjust360(v)
	if r >= deg180 {
		r -= deg360
	}
	return r
}
