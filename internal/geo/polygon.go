package geo

import (
	"encoding/json"
	"fmt"

	"github.com/roofsolar/planner/pkg/core"

	geom "github.com/peterstace/simplefeatures/geom"
)

// Polygon builds a simplefeatures polygon from outline vertices, closing the
// ring back to the first point. Fewer than three points give an empty polygon.
// The ring is not validated, so self-intersecting outlines pass through.
func Polygon(points []core.Point) (geom.Polygon, error) {
	if len(points) < 3 {
		return geom.Polygon{}, nil
	}
	flatCoords := make([]float64, 0, (len(points)+1)*2)
	for _, p := range points {
		flatCoords = append(flatCoords, p.X, p.Y)
	}
	flatCoords = append(flatCoords, points[0].X, points[0].Y)

	ring, err := geom.NewLineString(geom.NewSequence(flatCoords, geom.DimXY), geom.DisableAllValidations)
	if err != nil {
		return geom.Polygon{}, fmt.Errorf("failed to build outline ring: %w", err)
	}
	poly, err := geom.NewPolygon([]geom.LineString{ring}, geom.DisableAllValidations)
	if err != nil {
		return geom.Polygon{}, fmt.Errorf("failed to build outline polygon: %w", err)
	}
	return poly, nil
}

// WKT renders the outline as well-known text. An outline that cannot be
// built renders as an empty polygon.
func WKT(points []core.Point) string {
	poly, err := Polygon(points)
	if err != nil {
		return geom.Polygon{}.AsText()
	}
	return poly.AsText()
}

// Scale multiplies every vertex by factor, e.g. to turn pixels into metres.
func Scale(points []core.Point, factor float64) []core.Point {
	out := make([]core.Point, len(points))
	for i, p := range points {
		out[i] = core.Point{X: p.X * factor, Y: p.Y * factor}
	}
	return out
}

// ParsePoints parses a JSON array of pixel coordinates.
// Input format: "[[x1,y1],[x2,y2],...]"
func ParsePoints(input string) ([]core.Point, error) {
	var coords [][]float64
	if err := json.Unmarshal([]byte(input), &coords); err != nil {
		return nil, fmt.Errorf("failed to parse points JSON: %w", err)
	}

	points := make([]core.Point, len(coords))
	for i, coord := range coords {
		if len(coord) < 2 {
			return nil, fmt.Errorf("coordinate %d has insufficient values", i)
		}
		points[i] = core.Point{X: coord[0], Y: coord[1]}
	}
	return points, nil
}
