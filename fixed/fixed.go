// Package fixed implements a deterministic signed 16.16 fixed-point scalar.
//
// Every operation is integer-only, so results are bit-identical on every
// platform and compiler. Operations that can leave the representable range
// follow one policy:
//
//   - Mul and Div saturate to [MaxValue] or [MinValue] instead of wrapping.
//   - Division by zero returns MaxValue for a non-negative numerator and
//     MinValue otherwise (0/0 is MaxValue).
//   - Plain + and - on F32 wrap like int32; callers keep values in range.
//
// Most operations come in a precise tier (round to nearest) and one or two
// cheaper tiers (truncation, fewer iterations). The caller picks the tier
// explicitly per call.
package fixed

import (
	"math"
	"strconv"
)

// F32 is a signed fixed-point number with 16 integer and 16 fractional bits.
//
// Range: approximately -32768 to +32768 with 1/65536 precision.
type F32 int32

// Format constants.
const (
	// Shift is the number of fractional bits.
	Shift = 16

	// One is 1.0.
	One F32 = 1 << Shift

	// Half is 0.5.
	Half F32 = 1 << (Shift - 1)

	// Zero is 0.0.
	Zero F32 = 0

	// Neg1 is -1.0.
	Neg1 F32 = -One

	// Two is 2.0.
	Two F32 = 2 << Shift

	// Epsilon is the smallest positive value (1/65536).
	Epsilon F32 = 1

	// MaxValue is the largest representable value, also the saturation
	// result for positive overflow and division by zero.
	MaxValue F32 = math.MaxInt32

	// MinValue is the smallest representable value.
	MinValue F32 = math.MinInt32

	fracMask = One - 1
)

// Angle constants in radians.
const (
	Pi     F32 = 205887
	HalfPi F32 = 102944
	TwoPi  F32 = 411775
)

// FromInt converts an integer. Values outside [-32768, 32767] wrap.
func FromInt(n int) F32 {
	return F32(int32(n) << Shift)
}

// FromRaw wraps a raw 16.16 bit pattern.
func FromRaw(raw int32) F32 {
	return F32(raw)
}

// FromFloat64 converts a float64, rounding to nearest and saturating.
// Only use this at the edges of a simulation (config, rendering);
// floating-point input is not guaranteed to be reproducible.
func FromFloat64(f float64) F32 {
	v := math.Round(f * float64(One))
	if v >= math.MaxInt32 {
		return MaxValue
	}
	if v <= math.MinInt32 {
		return MinValue
	}
	return F32(v)
}

// FromFloat32 converts a float32, rounding to nearest and saturating.
func FromFloat32(f float32) F32 {
	return FromFloat64(float64(f))
}

// Raw returns the raw 16.16 bit pattern.
func (f F32) Raw() int32 {
	return int32(f)
}

// Float64 converts to float64. The conversion is exact.
func (f F32) Float64() float64 {
	return float64(f) / float64(One)
}

// Float32 converts to float32.
func (f F32) Float32() float32 {
	return float32(f.Float64())
}

// Int returns the integer part rounded toward negative infinity.
func (f F32) Int() int {
	return int(f >> Shift)
}

// Round returns the nearest integer, rounding halves up.
func (f F32) Round() int {
	return int((int64(f) + int64(Half)) >> Shift)
}

// Frac returns the fractional part, always in [0, 1).
func (f F32) Frac() F32 {
	return f & fracMask
}

// String formats the exact decimal value.
func (f F32) String() string {
	return strconv.FormatFloat(f.Float64(), 'f', -1, 64)
}

// saturate narrows a 64-bit raw value to the F32 range.
func saturate(v int64) F32 {
	if v > math.MaxInt32 {
		return MaxValue
	}
	if v < math.MinInt32 {
		return MinValue
	}
	return F32(v)
}

// roundShift shifts right by s bits, rounding halves up.
func roundShift(v int64, s uint) int64 {
	return (v + 1<<(s-1)) >> s
}

// roundDiv divides rounding to nearest, halves away from zero.
func roundDiv(n, d int64) int64 {
	if (n < 0) != (d < 0) {
		return (n - d/2) / d
	}
	return (n + d/2) / d
}

// divZero is the division-by-zero result for numerator a.
func divZero(a F32) F32 {
	if a >= 0 {
		return MaxValue
	}
	return MinValue
}

// Mul multiplies two values, rounding to nearest and saturating.
func Mul(a, b F32) F32 {
	return saturate(roundShift(int64(a)*int64(b), Shift))
}

// MulFast multiplies two values, truncating toward negative infinity.
func MulFast(a, b F32) F32 {
	return saturate((int64(a) * int64(b)) >> Shift)
}

// Div divides a by b, rounding to nearest.
func Div(a, b F32) F32 {
	if b == 0 {
		return divZero(a)
	}
	return saturate(roundDiv(int64(a)<<Shift, int64(b)))
}

// DivFast divides a by b, truncating toward zero.
func DivFast(a, b F32) F32 {
	if b == 0 {
		return divZero(a)
	}
	return saturate((int64(a) << Shift) / int64(b))
}

// DivFastest multiplies a by the truncated reciprocal of b. Loses precision
// for large divisors.
func DivFastest(a, b F32) F32 {
	if b == 0 {
		return divZero(a)
	}
	return MulFast(a, RcpFast(b))
}

// Rcp returns 1/a, rounding to nearest.
func Rcp(a F32) F32 {
	return Div(One, a)
}

// RcpFast returns 1/a, truncated.
func RcpFast(a F32) F32 {
	return DivFast(One, a)
}

// Mod returns the remainder of a/b with the sign of a. Mod by zero returns
// zero.
func Mod(a, b F32) F32 {
	if b == 0 {
		return 0
	}
	return a % b
}

// Abs returns |a|. Abs(MinValue) saturates to MaxValue.
func Abs(a F32) F32 {
	if a < 0 {
		if a == MinValue {
			return MaxValue
		}
		return -a
	}
	return a
}

// Sign returns -1, 0 or 1 as an F32.
func Sign(a F32) F32 {
	switch {
	case a > 0:
		return One
	case a < 0:
		return Neg1
	}
	return 0
}

// Min returns the smaller of a and b.
func Min(a, b F32) F32 {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of a and b.
func Max(a, b F32) F32 {
	if a > b {
		return a
	}
	return b
}

// Clamp limits a to [lo, hi].
func Clamp(a, lo, hi F32) F32 {
	if a < lo {
		return lo
	}
	if a > hi {
		return hi
	}
	return a
}

// Lerp interpolates between a and b. t is not clamped.
func Lerp(a, b, t F32) F32 {
	ta := int64(One) - int64(t)
	return saturate(roundShift(int64(a)*ta+int64(b)*int64(t), Shift))
}

// Dot2 returns a0*b0 + a1*b1 with a single rounding step.
func Dot2(a0, a1, b0, b1 F32) F32 {
	return saturate(roundShift(int64(a0)*int64(b0)+int64(a1)*int64(b1), Shift))
}

// Dot3 returns a0*b0 + a1*b1 + a2*b2 with a single rounding step.
func Dot3(a0, a1, a2, b0, b1, b2 F32) F32 {
	return saturate(roundShift(int64(a0)*int64(b0)+int64(a1)*int64(b1)+int64(a2)*int64(b2), Shift))
}

// Sqrt returns the square root of a, rounded to nearest. Negative inputs
// return zero.
func Sqrt(a F32) F32 {
	if a <= 0 {
		return 0
	}
	n := uint64(a) << Shift
	r := isqrt(n)
	if n-r*r > r {
		r++
	}
	return saturate(int64(r))
}

// SqrtFast returns the square root of a, truncated. Negative inputs return
// zero.
func SqrtFast(a F32) F32 {
	if a <= 0 {
		return 0
	}
	return saturate(int64(isqrt(uint64(a) << Shift)))
}

// Hypot returns sqrt(x*x + y*y) rounded to nearest, without intermediate
// overflow.
func Hypot(x, y F32) F32 {
	n := uint64(int64(x)*int64(x)) + uint64(int64(y)*int64(y))
	r := isqrt(n)
	if n-r*r > r {
		r++
	}
	return saturate(int64(r))
}

// HypotFast returns sqrt(x*x + y*y), truncated.
func HypotFast(x, y F32) F32 {
	n := uint64(int64(x)*int64(x)) + uint64(int64(y)*int64(y))
	return saturate(int64(isqrt(n)))
}

// isqrt returns floor(sqrt(n)).
func isqrt(n uint64) uint64 {
	var res uint64
	bit := uint64(1) << 62
	for bit > n {
		bit >>= 2
	}
	for bit != 0 {
		if n >= res+bit {
			n -= res + bit
			res = res>>1 + bit
		} else {
			res >>= 1
		}
		bit >>= 2
	}
	return res
}

// DegToRad converts degrees to radians.
func DegToRad(deg F32) F32 {
	return saturate(roundDiv(int64(deg)*int64(Pi), 180<<Shift))
}

// RadToDeg converts radians to degrees.
func RadToDeg(rad F32) F32 {
	return saturate(roundDiv(int64(rad)*(180<<Shift), int64(Pi)))
}
