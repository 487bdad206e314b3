package slot

import "math"

const (
	// machineEpsilon is the gap between 1.0 and the next float64
	machineEpsilon = 0x1p-52

	// minPositive is the smallest positive normal float64
	minPositive = 0x1p-1022

	// relativeTolerance bounds the relative difference of two equal magnitudes
	relativeTolerance = 0.00001
)

// NearlyEqual reports whether two magnitudes are practically equal. It is
// meant for equality checks only, never for ordering or hashing.
func NearlyEqual(a, b float64) bool {
	absA := math.Abs(a)
	absB := math.Abs(b)
	diff := math.Abs(a - b)

	switch {
	case a == b:
		// covers matching infinities
		return true
	case a == 0 || b == 0 || diff < minPositive:
		// absolute error close to zero
		return diff < machineEpsilon*minPositive
	default:
		return diff/math.Min(absA+absB, math.MaxFloat64) < relativeTolerance
	}
}
