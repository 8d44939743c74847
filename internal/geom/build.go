package geom

import "coord2cad/internal/coords"

// MaxDisplayVertices caps how many vertices of one group are drawn.
const MaxDisplayVertices = 500

// Style selects how a coordinate sequence is drawn.
type Style int

const (
	StylePoints Style = iota // discrete markers
	StyleSegments            // consecutive pairs joined
	StylePath                // polyline, filled when it closes
)

// FromGroups projects groups into drawable Data. Sequences closed within
// eps are drawn as polygons when style is StylePath.
func FromGroups(groups []coords.Group, style Style, eps float64) Data {
	var d Data
	var bb bboxBuilder
	for _, g := range groups {
		if len(g.Coords) == 0 {
			continue
		}
		d.Vertices += len(g.Coords)
		for _, c := range g.Coords {
			bb.add(c.X, c.Y)
		}
		pts := Decimate(g.Coords, MaxDisplayVertices)
		switch style {
		case StylePoints:
			d.Points = append(d.Points, pts...)
		case StyleSegments:
			d.Lines = append(d.Lines, pts)
		case StylePath:
			if coords.IsClosed(g.Coords, eps) {
				d.Polygons = append(d.Polygons, [][][2]float64{pts})
			} else {
				d.Lines = append(d.Lines, pts)
			}
		}
	}
	if bb.set {
		d.BBox = bb.b.Pad(0.1, 1)
	}
	return d
}

// Bounds returns the unpadded extent of seq. ok is false for an empty seq.
func Bounds(seq []coords.Coordinate) (b BBox, ok bool) {
	var bb bboxBuilder
	for _, c := range seq {
		bb.add(c.X, c.Y)
	}
	return bb.b, bb.set
}

// Decimate keeps every step-th vertex so that at most about max remain,
// always including the last one so closed outlines stay closed.
func Decimate(seq []coords.Coordinate, max int) [][2]float64 {
	step := 1
	if max > 0 && len(seq) > max {
		step = len(seq) / max
	}
	out := make([][2]float64, 0, len(seq)/step+1)
	for i := 0; i < len(seq); i += step {
		out = append(out, seq[i].XY())
	}
	if last := len(seq) - 1; last >= 0 && last%step != 0 {
		out = append(out, seq[last].XY())
	}
	return out
}
