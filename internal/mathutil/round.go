// Package mathutil holds small numeric helpers shared by the pricing packages.
package mathutil

import "math"

// Round rounds v to the given number of decimal places, half away from zero
func Round(v float64, places int) float64 {
	pow := math.Pow(10, float64(places))
	return math.Round(v*pow) / pow
}

// Round2 rounds v to cents
func Round2(v float64) float64 {
	return Round(v, 2)
}

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
