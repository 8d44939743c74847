// Package coords reads loosely formatted coordinate text into ordered
// coordinate sequences and named groups.
package coords

// Coordinate is a single vertex. Z is 0 when the source line had two fields.
type Coordinate struct {
	X float64
	Y float64
	Z float64
}

// XY returns the planar part of the coordinate.
func (c Coordinate) XY() [2]float64 { return [2]float64{c.X, c.Y} }

// Group is a named, ordered run of coordinates introduced by a marker line.
type Group struct {
	Name   string
	Coords []Coordinate
}

// Len returns the number of coordinates in the group.
func (g Group) Len() int { return len(g.Coords) }

// Is3D reports whether any member of seq carries a non-zero Z.
func Is3D(seq []Coordinate) bool {
	for _, c := range seq {
		if c.Z != 0 {
			return true
		}
	}
	return false
}
