// Package geom projects parsed coordinates for preview and converts other
// geometry formats into coordinate documents.
package geom

import "math"

type BBox struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// Data is a minimal geometry container for rendering
type Data struct {
	Points   [][2]float64
	Lines    [][][2]float64
	Polygons [][][][2]float64 // polygons with rings (first outer, following holes)
	BBox     BBox
	// Vertices counts the source coordinates before decimation.
	Vertices int
}

// Empty reports whether there is nothing to draw.
func (d Data) Empty() bool {
	return len(d.Points) == 0 && len(d.Lines) == 0 && len(d.Polygons) == 0
}

// Valid reports whether the box has a positive extent on both axes.
func (b BBox) Valid() bool {
	return b.MaxX > b.MinX && b.MaxY > b.MinY
}

func (b BBox) Width() float64  { return b.MaxX - b.MinX }
func (b BBox) Height() float64 { return b.MaxY - b.MinY }

// Pad grows the box by frac of its extent on every side, at least min
// units, so that single points and axis-aligned runs get a drawable area.
func (b BBox) Pad(frac, min float64) BBox {
	mx := math.Max(b.Width()*frac, min)
	my := math.Max(b.Height()*frac, min)
	return BBox{MinX: b.MinX - mx, MinY: b.MinY - my, MaxX: b.MaxX + mx, MaxY: b.MaxY + my}
}

type bboxBuilder struct {
	b   BBox
	set bool
}

func (bb *bboxBuilder) add(x, y float64) {
	if !bb.set {
		bb.b = BBox{MinX: x, MinY: y, MaxX: x, MaxY: y}
		bb.set = true
		return
	}
	if x < bb.b.MinX {
		bb.b.MinX = x
	}
	if y < bb.b.MinY {
		bb.b.MinY = y
	}
	if x > bb.b.MaxX {
		bb.b.MaxX = x
	}
	if y > bb.b.MaxY {
		bb.b.MaxY = y
	}
}
