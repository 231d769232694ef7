// Package geo holds the roof outline geometry: closing-point detection,
// shoelace area and the fixed pixel to metre conversion.
package geo

import (
	"errors"
	"fmt"
	"math"

	"github.com/roofsolar/planner/pkg/core"

	geom "github.com/peterstace/simplefeatures/geom"
	"github.com/wroge/wgs84"
)

// DefaultMetersPerPixel is the ground size of one satellite image pixel.
// It is a fixed approximation: zoom level and latitude are ignored, so areas
// are only as good as this constant.
const DefaultMetersPerPixel = 0.05

// maxMercatorLat is the latitude limit of the Web Mercator projection.
const maxMercatorLat = 85.05112878

// ErrInvalidCoordinates is returned when the coordinates are invalid
var ErrInvalidCoordinates = errors.New("invalid coordinates provided")

// Distance returns the euclidean distance between two pixel points.
func Distance(a, b core.Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// WithinRadius reports whether p lies within radius of q, boundary included.
func WithinRadius(p, q core.Point, radius float64) bool {
	return Distance(p, q) <= radius
}

// Area returns the outline area in square pixels using the shoelace formula
// over the cyclic vertex sequence. Fewer than three points give 0. Clockwise
// and counter-clockwise outlines give the same magnitude.
//
// Self-intersecting outlines are not detected. For a bowtie the two lobes
// partially cancel and the result understates the covered area.
func Area(points []core.Point) float64 {
	if len(points) < 3 {
		return 0
	}
	var sum float64
	for i, p := range points {
		q := points[(i+1)%len(points)]
		sum += p.X*q.Y - q.X*p.Y
	}
	return math.Abs(sum) / 2
}

// ToRealArea converts square pixels to square metres with a constant
// metres-per-pixel scale.
func ToRealArea(pixelArea, scale float64) float64 {
	return pixelArea * scale * scale
}

// RealArea is Area followed by ToRealArea.
func RealArea(points []core.Point, scale float64) float64 {
	return ToRealArea(Area(points), scale)
}

// Coords3857From4326 projects a WGS84 longitude/latitude into a Web Mercator
// point. It is only used to georeference exports and never feeds the area
// conversion.
func Coords3857From4326(
	longitude float64,
	latitude float64,
) (
	point geom.Point,
	err error,
) {
	if math.IsNaN(longitude) || math.IsNaN(latitude) ||
		math.Abs(longitude) > 180 || math.Abs(latitude) > maxMercatorLat {
		return geom.NewEmptyPoint(geom.DimXY), ErrInvalidCoordinates
	}
	epsg := wgs84.EPSG()
	f := epsg.Transform(4326, 3857)
	x, y, _ := f(longitude, latitude, 0)
	point, err = geom.NewPoint(
		geom.Coordinates{
			XY:   geom.XY{X: x, Y: y},
			Type: geom.DimXY,
		},
	)
	if err != nil {
		return geom.NewEmptyPoint(geom.DimXY), fmt.Errorf("%w: %v", ErrInvalidCoordinates, err)
	}
	return point, nil
}

// MercatorXY returns the Web Mercator metres of a location.
func MercatorXY(loc core.Location) (x, y float64, err error) {
	point, err := Coords3857From4326(loc.Lng, loc.Lat)
	if err != nil {
		return 0, 0, err
	}
	coords, ok := point.Coordinates()
	if !ok {
		return 0, 0, ErrInvalidCoordinates
	}
	return coords.X, coords.Y, nil
}
