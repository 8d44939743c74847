package geom

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	geojson "github.com/paulmach/go.geojson"

	"coord2cad/internal/coords"
)

// ParseGeoJSON reads a GeoJSON object (geometry, Feature or
// FeatureCollection). Points and MultiPoints are collected into one group;
// every line string and polygon ring becomes its own group.
func ParseGeoJSON(data []byte) ([]coords.Group, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, err
	}
	var geoms []*geojson.Geometry
	switch head.Type {
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return nil, err
		}
		for _, f := range fc.Features {
			geoms = append(geoms, f.Geometry)
		}
	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, err
		}
		geoms = append(geoms, f.Geometry)
	default:
		g, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return nil, fmt.Errorf("geojson: %w", err)
		}
		geoms = append(geoms, g)
	}

	points := coords.Group{Name: "points"}
	var groups []coords.Group
	addPart := func(kind string, pts [][]float64) {
		name := kind + " " + strconv.Itoa(len(groups)+1)
		groups = append(groups, coords.Group{Name: name, Coords: toCoords(pts)})
	}
	var walk func(g *geojson.Geometry)
	walk = func(g *geojson.Geometry) {
		if g == nil {
			return
		}
		switch g.Type {
		case geojson.GeometryPoint:
			points.Coords = append(points.Coords, toCoords([][]float64{g.Point})...)
		case geojson.GeometryMultiPoint:
			points.Coords = append(points.Coords, toCoords(g.MultiPoint)...)
		case geojson.GeometryLineString:
			addPart("line", g.LineString)
		case geojson.GeometryMultiLineString:
			for _, ls := range g.MultiLineString {
				addPart("line", ls)
			}
		case geojson.GeometryPolygon:
			for _, ring := range g.Polygon {
				addPart("ring", ring)
			}
		case geojson.GeometryMultiPolygon:
			for _, poly := range g.MultiPolygon {
				for _, ring := range poly {
					addPart("ring", ring)
				}
			}
		case geojson.GeometryCollection:
			for _, sub := range g.Geometries {
				walk(sub)
			}
		}
	}
	for _, g := range geoms {
		walk(g)
	}
	if len(points.Coords) > 0 {
		groups = append([]coords.Group{points}, groups...)
	}
	n := 0
	for _, g := range groups {
		n += len(g.Coords)
	}
	if n == 0 {
		return nil, errors.New("no geometries found")
	}
	return groups, nil
}

// toCoords converts GeoJSON positions; positions with fewer than two
// values are dropped.
func toCoords(pts [][]float64) []coords.Coordinate {
	out := make([]coords.Coordinate, 0, len(pts))
	for _, p := range pts {
		if len(p) < 2 {
			continue
		}
		c := coords.Coordinate{X: p[0], Y: p[1]}
		if len(p) > 2 {
			c.Z = p[2]
		}
		out = append(out, c)
	}
	return out
}
