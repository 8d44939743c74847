package geom

import (
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"strings"

	"coord2cad/internal/coords"
)

var ErrNoColumns = errors.New("csv: x/y columns not found")

// ReadCSV reads a CSV with a header row naming the coordinate columns and
// returns the rows as one group. Column detection (case-insensitive):
// x|easting|lon|lng|long|longitude, y|northing|lat|latitude and optionally
// z|elevation|height|alt. Rows with unparsable values are skipped.
func ReadCSV(r io.Reader) ([]coords.Group, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	recs, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, errors.New("empty csv")
	}
	idxX, idxY, idxZ := -1, -1, -1
	for i, h := range recs[0] {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "x", "easting", "lon", "lng", "long", "longitude":
			if idxX == -1 {
				idxX = i
			}
		case "y", "northing", "lat", "latitude":
			if idxY == -1 {
				idxY = i
			}
		case "z", "elevation", "height", "alt", "altitude":
			if idxZ == -1 {
				idxZ = i
			}
		}
	}
	if idxX == -1 || idxY == -1 {
		return nil, ErrNoColumns
	}
	field := func(row []string, i int) (float64, bool) {
		if i < 0 || i >= len(row) {
			return 0, false
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(row[i]), 64)
		return v, err == nil
	}
	g := coords.Group{Name: "csv"}
	for _, row := range recs[1:] {
		x, okX := field(row, idxX)
		y, okY := field(row, idxY)
		if !okX || !okY {
			continue
		}
		z, _ := field(row, idxZ)
		g.Coords = append(g.Coords, coords.Coordinate{X: x, Y: y, Z: z})
	}
	if len(g.Coords) == 0 {
		return nil, errors.New("csv: no valid points parsed")
	}
	return []coords.Group{g}, nil
}
