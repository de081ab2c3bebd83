package calculator

import "math"

// Surcharge is the marginal price multiplier (1-x)^-exponent at utilization
// fraction x in [0, 1). It is 1 at x = 0 and diverges as x approaches 1.
func Surcharge(x, exponent float64) float64 {
	if x >= 1 {
		return math.Inf(1)
	}
	if x <= 0 {
		return 1
	}
	return math.Pow(1-x, -exponent)
}

// SurchargeIntegral integrates Surcharge over [x1, x2]. Renting the slice
// of capacity between two utilization fractions costs the base price times
// this integral.
func SurchargeIntegral(x1, x2, exponent float64) float64 {
	if x2 <= x1 {
		return 0
	}
	if x2 >= 1 {
		return math.Inf(1)
	}
	x1 = math.Max(x1, 0)
	if exponent == 1 {
		return math.Log((1 - x1) / (1 - x2))
	}
	e := 1 - exponent
	return (math.Pow(1-x2, e) - math.Pow(1-x1, e)) / (exponent - 1)
}

// CeilAmount rounds v up to an integer amount, saturating at limit.
func CeilAmount(v float64, limit int64) int64 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	c := math.Ceil(v)
	if c >= float64(limit) {
		return limit
	}
	return int64(c)
}
