package geom

import (
	"errors"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"coord2cad/internal/coords"
)

// ParseKML extracts Placemark geometries at any depth: Point, LineString and
// Polygon rings (outer first, then holes). KML coordinates are
// "lon,lat[,alt]"; altitude becomes Z.
func ParseKML(data []byte) ([]coords.Group, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, err
	}
	points := coords.Group{Name: "points"}
	var groups []coords.Group
	for i, pm := range doc.FindElements("//Placemark") {
		name := ""
		if el := pm.FindElement("./name"); el != nil {
			name = strings.TrimSpace(el.Text())
		}
		if name == "" {
			name = "placemark " + strconv.Itoa(i+1)
		}
		for _, el := range pm.FindElements(".//Point/coordinates") {
			points.Coords = append(points.Coords, parseKMLCoords(el.Text())...)
		}
		parts := append(pm.FindElements(".//LineString/coordinates"),
			pm.FindElements(".//outerBoundaryIs/LinearRing/coordinates")...)
		for p, el := range parts {
			partName := name
			if len(parts) > 1 {
				partName += " part " + strconv.Itoa(p+1)
			}
			groups = append(groups, coords.Group{Name: partName, Coords: parseKMLCoords(el.Text())})
		}
		for h, el := range pm.FindElements(".//innerBoundaryIs/LinearRing/coordinates") {
			groups = append(groups, coords.Group{Name: name + " hole " + strconv.Itoa(h+1), Coords: parseKMLCoords(el.Text())})
		}
	}
	if len(points.Coords) > 0 {
		groups = append([]coords.Group{points}, groups...)
	}
	n := 0
	for _, g := range groups {
		n += len(g.Coords)
	}
	if n == 0 {
		return nil, errors.New("kml: no coordinates found")
	}
	return groups, nil
}

// parseKMLCoords reads whitespace separated "lon,lat[,alt]" tuples,
// skipping malformed ones.
func parseKMLCoords(block string) []coords.Coordinate {
	var out []coords.Coordinate
	for _, tuple := range strings.Fields(block) {
		vals := strings.Split(tuple, ",")
		if len(vals) < 2 || len(vals) > 3 {
			continue
		}
		var c coords.Coordinate
		var e1, e2, e3 error
		c.X, e1 = strconv.ParseFloat(vals[0], 64)
		c.Y, e2 = strconv.ParseFloat(vals[1], 64)
		if len(vals) == 3 {
			c.Z, e3 = strconv.ParseFloat(vals[2], 64)
		}
		if e1 != nil || e2 != nil || e3 != nil {
			continue
		}
		out = append(out, c)
	}
	return out
}
