package scoring

import (
	"math"
	"math/big"
)

// largest magnitude rounded digit-by-digit; beyond this a float64 has no
// fractional digits worth rounding.
const roundLimit = 1e15

// Round2 rounds x to two decimals, half away from zero, using the exact
// binary value of x. It matches Number(x.toFixed(2)) so that values such as
// 0.125 become 0.13 and 1.005 (stored as 1.00499...) becomes 1.
func Round2(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) || math.Abs(x) >= roundLimit {
		return x
	}
	neg := x < 0
	if neg {
		x = -x
	}
	// x*100 needs at most 60 significant bits, so 128 keeps every step exact.
	y := new(big.Float).SetPrec(128).SetFloat64(x)
	y.Mul(y, new(big.Float).SetPrec(128).SetInt64(100))
	y.Add(y, new(big.Float).SetPrec(128).SetFloat64(0.5))
	n, _ := y.Int(nil)

	r := float64(n.Int64()) / 100
	if neg && r != 0 {
		return -r
	}
	return r
}

// Average returns the arithmetic mean of values rounded to two decimals, or 0
// for an empty input.
func Average(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return Round2(sum / float64(len(values)))
}

// RoundPercent rounds a percentage to the nearest integer, halves upward.
func RoundPercent(x float64) int {
	return int(math.Floor(x + 0.5))
}
