package cadgen

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"coord2cad/internal/coords"
)

// DefaultTextHeight is the annotation text height used when none is set.
const DefaultTextHeight = 5.0

// ErrInvalidOptions is wrapped by Options.Validate.
var ErrInvalidOptions = errors.New("cadgen: invalid options")

// Options controls script rendering.
type Options struct {
	Primitive Primitive
	// Annotate adds a "Point N" text label at every vertex.
	Annotate   bool
	TextHeight float64
	// Epsilon is the closure tolerance for polylines.
	Epsilon float64
	// Comments emits the informational "# ..." header of each block.
	Comments bool
}

// DefaultOptions mirrors the converter's out-of-the-box settings.
func DefaultOptions() Options {
	return Options{
		Primitive:  Line,
		TextHeight: DefaultTextHeight,
		Epsilon:    coords.DefaultEpsilon,
		Comments:   true,
	}
}

// Validate checks the options before any generation happens.
func (o Options) Validate() error {
	if !o.Primitive.Valid() {
		return fmt.Errorf("%w: primitive %d", ErrInvalidOptions, int(o.Primitive))
	}
	if o.Annotate && (o.TextHeight <= 0 || math.IsNaN(o.TextHeight) || math.IsInf(o.TextHeight, 0)) {
		return fmt.Errorf("%w: text height %v", ErrInvalidOptions, o.TextHeight)
	}
	if o.Epsilon < 0 || math.IsNaN(o.Epsilon) {
		return fmt.Errorf("%w: closure epsilon %v", ErrInvalidOptions, o.Epsilon)
	}
	return nil
}

// Generator renders scripts for one set of Options. It holds no mutable
// state and may be shared.
type Generator struct {
	opts Options
}

// NewGenerator returns a generator for opts. Callers should Validate first.
func NewGenerator(opts Options) *Generator {
	return &Generator{opts: opts}
}

// Options returns the generator configuration.
func (g *Generator) Options() Options { return g.opts }

// Generate renders seq in order. An empty seq yields NoDataScript.
func (g *Generator) Generate(seq []coords.Coordinate) Script {
	if len(seq) == 0 {
		return NoDataScript()
	}
	is3D := coords.Is3D(seq)
	var s Script

	if g.opts.Comments {
		s.comment("CAD commands - " + strings.ToUpper(g.opts.Primitive.String()))
		s.comment(fmt.Sprintf("%d points", len(seq)))
		if is3D {
			s.comment("3D (X,Y,Z)")
		} else {
			s.comment("2D (X,Y)")
		}
		s.blank()
	}

	switch g.opts.Primitive {
	case Polyline:
		s.add(DirCommand, "pline")
		for _, c := range seq {
			s.add(DirVertex, FormatVertex(c, is3D))
		}
		if coords.IsClosed(seq, g.opts.Epsilon) {
			s.add(DirClose, "c")
		}
		// always leave the polyline prompt, closed or not
		s.add(DirEnd, "")
	case Line:
		if len(seq) < 2 {
			if g.opts.Comments {
				s.comment("single point, no line segment")
			}
			break
		}
		for i := 0; i+1 < len(seq); i++ {
			s.add(DirCommand, "line "+FormatVertex(seq[i], is3D)+" "+FormatVertex(seq[i+1], is3D))
		}
		s.add(DirEnd, "")
	case Point:
		for _, c := range seq {
			s.add(DirCommand, "point "+FormatVertex(c, is3D))
		}
		s.blank()
	}

	if g.opts.Annotate {
		s.blank()
		s.comment("text labels")
		h := FormatNumber(g.opts.TextHeight)
		for i, c := range seq {
			s.add(DirCommand, fmt.Sprintf("text j ml %s %s 0 Point %d", FormatVertex(c, is3D), h, i+1))
		}
		s.blank()
	}
	return s
}

// GenerateGrouped renders every non-empty group in order, each preceded by
// a header naming the group and its point count.
func (g *Generator) GenerateGrouped(groups []coords.Group) Script {
	var s Script
	n := 0
	for _, grp := range groups {
		if len(grp.Coords) == 0 {
			continue
		}
		n++
		s.comment(grp.Name)
		s.comment(fmt.Sprintf("%d points", len(grp.Coords)))
		s.blank()
		s.extend(g.Generate(grp.Coords))
		s.blank()
	}
	if n == 0 {
		return NoDataScript()
	}
	return s
}

// GenerateSelected is GenerateGrouped restricted to the named groups.
// Group order follows groups, not names.
func (g *Generator) GenerateSelected(groups []coords.Group, names []string) Script {
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	var picked []coords.Group
	for _, grp := range groups {
		if want[grp.Name] {
			picked = append(picked, grp)
		}
	}
	return g.GenerateGrouped(picked)
}

// FormatNumber prints v in the shortest form that parses back to v.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatVertex joins the coordinate fields with commas, including Z only
// when is3D is set.
func FormatVertex(c coords.Coordinate, is3D bool) string {
	if is3D {
		return FormatNumber(c.X) + "," + FormatNumber(c.Y) + "," + FormatNumber(c.Z)
	}
	return FormatNumber(c.X) + "," + FormatNumber(c.Y)
}
