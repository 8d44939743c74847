package geom

import (
	"errors"
	"path/filepath"
	"strconv"
	"strings"

	"coord2cad/internal/coords"
)

// Format names the source format Import recognised.
type Format string

const (
	FormatText    Format = "text"
	FormatCSV     Format = "csv"
	FormatWKT     Format = "wkt"
	FormatGeoJSON Format = "geojson"
	FormatKML     Format = "kml"
)

// ToDocument renders groups as a coordinate document: one "Group <name>"
// marker per group followed by one "x,y[,z]" line per vertex. Z is written
// for every line when any vertex carries one. Names are folded onto one
// line and repeated names get a numeric suffix, so each group survives
// parsing as its own group.
func ToDocument(groups []coords.Group) string {
	threeD := false
	for _, g := range groups {
		if coords.Is3D(g.Coords) {
			threeD = true
			break
		}
	}
	seen := make(map[string]bool)
	var b strings.Builder
	for _, g := range groups {
		if len(g.Coords) == 0 {
			continue
		}
		b.WriteString(uniqueMarker(g.Name, seen))
		b.WriteByte('\n')
		for _, c := range g.Coords {
			b.WriteString(strconv.FormatFloat(c.X, 'f', -1, 64))
			b.WriteByte(',')
			b.WriteString(strconv.FormatFloat(c.Y, 'f', -1, 64))
			if threeD {
				b.WriteByte(',')
				b.WriteString(strconv.FormatFloat(c.Z, 'f', -1, 64))
			}
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// uniqueMarker returns the "Group <name>" line for name. Whitespace runs,
// line breaks included, collapse to a single space.
func uniqueMarker(name string, seen map[string]bool) string {
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		name = "part"
	}
	marker := "Group " + name
	for n := 2; seen[marker]; n++ {
		marker = "Group " + name + " " + strconv.Itoa(n)
	}
	seen[marker] = true
	return marker
}

// Import turns the contents of the file name into a coordinate document.
// Structured formats are chosen by extension; anything else, and CSV
// without recognisable x/y headers, is returned unchanged as plain text.
func Import(name, text string) (string, Format, error) {
	var (
		groups []coords.Group
		format Format
		err    error
	)
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		format = FormatCSV
		groups, err = ReadCSV(strings.NewReader(text))
		if errors.Is(err, ErrNoColumns) {
			return text, FormatText, nil
		}
	case ".wkt":
		format = FormatWKT
		groups, err = ParseWKT(text)
	case ".geojson", ".json":
		format = FormatGeoJSON
		groups, err = ParseGeoJSON([]byte(text))
	case ".kml":
		format = FormatKML
		groups, err = ParseKML([]byte(text))
	default:
		return text, FormatText, nil
	}
	if err != nil {
		return "", format, err
	}
	return ToDocument(groups), format, nil
}
