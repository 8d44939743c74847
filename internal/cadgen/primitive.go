// Package cadgen renders coordinate sequences as CAD command-line scripts.
package cadgen

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownPrimitive is returned by ParsePrimitive for unrecognized names.
var ErrUnknownPrimitive = errors.New("cadgen: unknown primitive")

// Primitive selects the drawing object a script creates.
type Primitive int

const (
	Polyline Primitive = iota
	Line
	Point
)

// Primitives lists every primitive in display order.
var Primitives = []Primitive{Polyline, Line, Point}

// String returns the command keyword for p.
func (p Primitive) String() string {
	switch p {
	case Polyline:
		return "pline"
	case Line:
		return "line"
	case Point:
		return "point"
	default:
		return fmt.Sprintf("primitive(%d)", int(p))
	}
}

// Valid reports whether p is one of the known primitives.
func (p Primitive) Valid() bool { return p >= Polyline && p <= Point }

// ParsePrimitive accepts pline, polyline, line and point in any case.
func ParsePrimitive(s string) (Primitive, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pline", "polyline":
		return Polyline, nil
	case "line":
		return Line, nil
	case "point":
		return Point, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPrimitive, s)
}
