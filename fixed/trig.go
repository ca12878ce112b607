package fixed

// CORDIC runs on 2.30 fixed-point angles and coordinates internally and
// rounds back to 16.16 at the end.
const cordicBits = 30

const (
	cordicPi     int64 = 3373259426
	cordicHalfPi int64 = cordicPi / 2
	cordicTwoPi  int64 = cordicPi * 2

	// cordicGain is the reciprocal of the CORDIC gain, prod 1/sqrt(1+2^-2i).
	cordicGain int64 = 652032874
)

// Iteration counts for the precise and fast tiers.
const (
	preciseIterations = 30
	fastIterations    = 16
)

// atanTable[i] = atan(2^-i) in 2.30 fixed point.
var atanTable = [...]int64{
	843314857, 497837829, 263043837, 133525159, 67021687, 33543516,
	16775851, 8388437, 4194283, 2097149, 1048576, 524288, 262144,
	131072, 65536, 32768, 16384, 8192, 4096, 2048, 1024, 512, 256,
	128, 64, 32, 16, 8, 4, 2, 1,
}

// Sin returns the sine of rad (radians).
func Sin(rad F32) F32 {
	s, _ := sinCos(rad, preciseIterations)
	return s
}

// Cos returns the cosine of rad (radians).
func Cos(rad F32) F32 {
	_, c := sinCos(rad, preciseIterations)
	return c
}

// SinCos returns the sine and cosine of rad in a single CORDIC pass.
func SinCos(rad F32) (sin, cos F32) {
	return sinCos(rad, preciseIterations)
}

// SinFast returns the sine of rad with reduced precision.
func SinFast(rad F32) F32 {
	s, _ := sinCos(rad, fastIterations)
	return s
}

// CosFast returns the cosine of rad with reduced precision.
func CosFast(rad F32) F32 {
	_, c := sinCos(rad, fastIterations)
	return c
}

// Atan2 returns the angle of (x, y) in radians, in [-Pi, Pi].
// Atan2(0, 0) is zero.
func Atan2(y, x F32) F32 {
	return atan2(y, x, preciseIterations)
}

// Atan2Fast is Atan2 with reduced precision.
func Atan2Fast(y, x F32) F32 {
	return atan2(y, x, fastIterations)
}

func sinCos(rad F32, iters int) (F32, F32) {
	theta := (int64(rad) << (cordicBits - Shift)) % cordicTwoPi
	if theta > cordicPi {
		theta -= cordicTwoPi
	} else if theta < -cordicPi {
		theta += cordicTwoPi
	}

	// Rotation mode converges for |theta| <= pi/2; fold the rest by pi.
	negate := false
	if theta > cordicHalfPi {
		theta -= cordicPi
		negate = true
	} else if theta < -cordicHalfPi {
		theta += cordicPi
		negate = true
	}

	x, y, z := cordicGain, int64(0), theta
	for i := 0; i < iters; i++ {
		dx, dy := y>>i, x>>i
		if z >= 0 {
			x -= dx
			y += dy
			z -= atanTable[i]
		} else {
			x += dx
			y -= dy
			z += atanTable[i]
		}
	}
	if negate {
		x, y = -x, -y
	}
	return saturate(roundShift(y, cordicBits-Shift)), saturate(roundShift(x, cordicBits-Shift))
}

func atan2(y, x F32, iters int) F32 {
	if x == 0 && y == 0 {
		return 0
	}
	xx, yy := int64(x), int64(y)

	// Normalize magnitude so the residual keeps enough bits.
	m := max(abs64(xx), abs64(yy))
	for m < 1<<(cordicBits-1) {
		xx <<= 1
		yy <<= 1
		m <<= 1
	}

	var z int64
	if xx < 0 {
		if yy >= 0 {
			xx, yy = yy, -xx
			z = cordicHalfPi
		} else {
			xx, yy = -yy, xx
			z = -cordicHalfPi
		}
	}

	for i := 0; i < iters; i++ {
		dx, dy := yy>>i, xx>>i
		if yy > 0 {
			xx += dx
			yy -= dy
			z += atanTable[i]
		} else {
			xx -= dx
			yy += dy
			z -= atanTable[i]
		}
	}
	return saturate(roundShift(z, cordicBits-Shift))
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
