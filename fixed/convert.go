package fixed

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	xfixed "golang.org/x/image/math/fixed"
)

// ErrSyntax is returned by Parse for malformed input.
var ErrSyntax = errors.New("fixed: invalid syntax")

// ErrRange is returned by Parse for values outside the F32 range.
var ErrRange = errors.New("fixed: value out of range")

// maxFracDigits bounds the fractional digits Parse reads exactly; further
// digits cannot change a 16-bit fraction after rounding.
const maxFracDigits = 17

// Int26_6 converts to a 26.6 value, rounding to nearest.
func (f F32) Int26_6() xfixed.Int26_6 {
	return xfixed.Int26_6(roundShift(int64(f), Shift-6))
}

// Int52_12 converts to a 52.12 value, rounding to nearest.
func (f F32) Int52_12() xfixed.Int52_12 {
	return xfixed.Int52_12(roundShift(int64(f), Shift-12))
}

// FromInt26_6 converts a 26.6 value, saturating.
func FromInt26_6(v xfixed.Int26_6) F32 {
	return saturate(int64(v) << (Shift - 6))
}

// FromInt52_12 converts a 52.12 value, saturating.
func FromInt52_12(v xfixed.Int52_12) F32 {
	return saturate(int64(v) << (Shift - 12))
}

// Parse converts a decimal string such as "-12.375" to F32 without going
// through floating point, so the same text yields the same bits everywhere.
// The fraction is rounded to nearest.
func Parse(s string) (F32, error) {
	str := strings.TrimSpace(s)
	if str == "" {
		return 0, fmt.Errorf("parse %q: %w", s, ErrSyntax)
	}
	neg := false
	switch str[0] {
	case '-':
		neg = true
		str = str[1:]
	case '+':
		str = str[1:]
	}

	intPart, fracPart, _ := strings.Cut(str, ".")
	if intPart == "" && fracPart == "" {
		return 0, fmt.Errorf("parse %q: %w", s, ErrSyntax)
	}

	var whole int64
	if intPart != "" {
		if !allDigits(intPart) {
			return 0, fmt.Errorf("parse %q: %w", s, ErrSyntax)
		}
		v, err := strconv.ParseInt(intPart, 10, 64)
		if err != nil || v > 1<<15 {
			return 0, fmt.Errorf("parse %q: %w", s, ErrRange)
		}
		whole = v
	}

	var frac int64
	if fracPart != "" {
		if !allDigits(fracPart) {
			return 0, fmt.Errorf("parse %q: %w", s, ErrSyntax)
		}
		if len(fracPart) > maxFracDigits {
			fracPart = fracPart[:maxFracDigits]
		}
		digits, _ := strconv.ParseInt(fracPart, 10, 64)
		scale := int64(1)
		for range len(fracPart) {
			scale *= 10
		}
		frac = roundDivScaled(digits, scale)
	}

	raw := whole<<Shift + frac
	if neg {
		raw = -raw
	}
	if raw > int64(MaxValue) || raw < int64(MinValue) {
		return 0, fmt.Errorf("parse %q: %w", s, ErrRange)
	}
	return F32(raw), nil
}

// MustParse is like Parse but panics on error. Intended for constants in
// tests and examples.
func MustParse(s string) F32 {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// roundDivScaled returns round(digits * 2^16 / scale) for digits < scale.
func roundDivScaled(digits, scale int64) int64 {
	// Long division keeps every intermediate below 2^63.
	q := int64(0)
	r := digits
	for range Shift {
		r <<= 1
		q <<= 1
		if r >= scale {
			r -= scale
			q |= 1
		}
	}
	if 2*r >= scale {
		q++
	}
	return q
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
