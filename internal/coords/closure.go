package coords

import "math"

// DefaultEpsilon is the absolute tolerance used to decide whether the first
// and last vertices of a sequence coincide.
const DefaultEpsilon = 0.001

// IsClosed reports whether seq describes a closed ring: more than two
// vertices and first/last X and Y within eps of each other. Z is ignored.
// A zero eps requires an exact match; a negative or NaN eps selects
// DefaultEpsilon.
func IsClosed(seq []Coordinate, eps float64) bool {
	if len(seq) <= 2 {
		return false
	}
	if eps < 0 || math.IsNaN(eps) {
		eps = DefaultEpsilon
	}
	first, last := seq[0], seq[len(seq)-1]
	return math.Abs(first.X-last.X) <= eps && math.Abs(first.Y-last.Y) <= eps
}
