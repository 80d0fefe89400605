package systems

import "gonum.org/v1/gonum/spatial/r3"

// clampFloat clamps v between minVal and maxVal.
func clampFloat(v, minVal, maxVal float64) float64 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// clamp01 clamps v to the [0, 1] range.
func clamp01(v float64) float64 {
	return clampFloat(v, 0, 1)
}

// distance returns the Euclidean distance between two points.
func distance(a, b r3.Vec) float64 {
	return r3.Norm(r3.Sub(a, b))
}

// lerp interpolates between a and b.
func lerp(a, b r3.Vec, t float64) r3.Vec {
	return r3.Add(a, r3.Scale(t, r3.Sub(b, a)))
}
