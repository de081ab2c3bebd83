package calculator

import (
	"math"

	sdkmath "cosmossdk.io/math"
)

// Frac is the fixed-point representation of 1.0 for weight ratios and
// rental fractions.
const Frac = int64(1_000_000_000_000_000)

// MulDiv returns a*b/c truncated toward zero. The product is computed with
// arbitrary precision so it cannot overflow; a quotient outside the int64
// range saturates. c must not be zero.
func MulDiv(a, b, c int64) int64 {
	q := sdkmath.NewInt(a).Mul(sdkmath.NewInt(b)).Quo(sdkmath.NewInt(c))
	if q.IsInt64() {
		return q.Int64()
	}
	if q.IsNegative() {
		return math.MinInt64
	}
	return math.MaxInt64
}

// Interpolate moves linearly from initial at start to target at end and
// holds the end-points outside [start, end]. The step is truncated toward
// zero, so the result never passes target.
func Interpolate(initial, target, start, end, now int64) int64 {
	if now <= start {
		return initial
	}
	if now >= end || end <= start {
		return target
	}
	return initial + MulDiv(target-initial, now-start, end-start)
}

// Clamp bounds v to [lo, hi].
func Clamp[T int64 | float64](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// DecayGap shrinks gap by exp(-elapsed/decaySecs). The result is truncated
// and kept within [0, gap].
func DecayGap(gap, elapsed int64, decaySecs uint32) int64 {
	if gap <= 0 {
		return 0
	}
	if elapsed <= 0 || decaySecs == 0 {
		return gap
	}
	factor := math.Exp(-float64(elapsed) / float64(decaySecs))
	return Clamp(int64(float64(gap)*factor), 0, gap)
}
