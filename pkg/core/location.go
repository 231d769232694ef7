// pkg/core/location.go
package core

// Location is a geocoded address.
type Location struct {
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

// View is the map window the satellite image was requested for.
type View struct {
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
	Zoom int     `json:"zoom"`
}

// ImageryRequest describes one satellite image fetch.
type ImageryRequest struct {
	Lat    float64
	Lng    float64
	Zoom   int
	Width  int
	Height int
}

// Image is an opaque satellite picture. Only its pixel dimensions matter to
// the planner, because clicks are expressed in its pixel space.
type Image struct {
	Data        []byte
	ContentType string
	Format      string
	Width       int
	Height      int
}
