package geom

import (
	"errors"
	"strconv"
	"strings"

	"coord2cad/internal/coords"
)

// ParseWKT parses a subset of WKT into coordinate groups.
// Supported: POINT, MULTIPOINT, LINESTRING, POLYGON (one group per ring),
// optionally with Z values ("POINT Z (x y z)" or three numbers per tuple).
func ParseWKT(wkt string) ([]coords.Group, error) {
	s := strings.TrimSpace(wkt)
	if s == "" {
		return nil, errors.New("empty wkt")
	}
	up := strings.ToUpper(s)
	parseTuples := func(block string) []coords.Coordinate {
		var out []coords.Coordinate
		for _, tup := range strings.Split(block, ",") {
			tup = strings.Trim(strings.TrimSpace(tup), "()")
			parts := strings.Fields(tup)
			if len(parts) < 2 || len(parts) > 3 {
				continue
			}
			var c coords.Coordinate
			var e1, e2, e3 error
			c.X, e1 = strconv.ParseFloat(parts[0], 64)
			c.Y, e2 = strconv.ParseFloat(parts[1], 64)
			if len(parts) == 3 {
				c.Z, e3 = strconv.ParseFloat(parts[2], 64)
			}
			if e1 != nil || e2 != nil || e3 != nil {
				continue
			}
			out = append(out, c)
		}
		return out
	}
	body := func(open, close string) (string, error) {
		i := strings.Index(s, open)
		j := strings.LastIndex(s, close)
		if i < 0 || j <= i {
			return "", errors.New("wkt: unbalanced parentheses")
		}
		return s[i+len(open) : j], nil
	}
	var groups []coords.Group
	switch {
	case strings.HasPrefix(up, "MULTIPOINT"), strings.HasPrefix(up, "POINT"):
		b, err := body("(", ")")
		if err != nil {
			return nil, err
		}
		groups = append(groups, coords.Group{Name: "points", Coords: parseTuples(b)})
	case strings.HasPrefix(up, "LINESTRING"):
		b, err := body("(", ")")
		if err != nil {
			return nil, err
		}
		groups = append(groups, coords.Group{Name: "linestring", Coords: parseTuples(b)})
	case strings.HasPrefix(up, "POLYGON"):
		b, err := body("((", "))")
		if err != nil {
			return nil, err
		}
		// normalize spaces around ring separators
		norm := strings.ReplaceAll(b, "), (", "),(")
		norm = strings.ReplaceAll(norm, ") , (", "),(")
		for i, rp := range strings.Split(norm, "),(") {
			name := "outer ring"
			if i > 0 {
				name = "hole " + strconv.Itoa(i)
			}
			groups = append(groups, coords.Group{Name: name, Coords: parseTuples(rp)})
		}
	default:
		return nil, errors.New("unsupported wkt type")
	}
	n := 0
	for _, g := range groups {
		n += len(g.Coords)
	}
	if n == 0 {
		return nil, errors.New("wkt: no coordinates parsed")
	}
	return groups, nil
}
