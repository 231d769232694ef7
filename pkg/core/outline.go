// pkg/core/outline.go
package core

// Point is a pixel coordinate in image space. X grows to the right and Y
// grows down the image, as clicked on the satellite picture.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Outline is a read-only snapshot of a traced roof boundary.
// Points are in traversal order; the last vertex implicitly connects to the
// first. A complete outline always holds at least three points.
type Outline struct {
	Points   []Point `json:"points"`
	Complete bool    `json:"complete"`
}

// First returns the first vertex, or the zero point for an empty outline.
func (o Outline) First() Point {
	if len(o.Points) == 0 {
		return Point{}
	}
	return o.Points[0]
}
