// pkg/core/guidance.go
package core

// GuidanceKind tags the instruction a shell should show next.
type GuidanceKind string

const (
	GuidanceEnterAddress GuidanceKind = "enter_address"
	GuidanceStartOutline GuidanceKind = "start_outline"
	GuidanceNeedMore     GuidanceKind = "need_more_points"
	GuidanceCloseOutline GuidanceKind = "close_outline"
	GuidanceOutlineDone  GuidanceKind = "outline_complete"
	GuidanceExportReady  GuidanceKind = "export_complete"
)

// Guidance is a structured instruction: a tag plus the values a shell needs
// to render it. It never carries markup.
type Guidance struct {
	Kind         GuidanceKind `json:"kind"`
	Points       int          `json:"points"`
	Missing      int          `json:"missing,omitempty"`
	AreaSqMeters float64      `json:"areaSqMeters,omitempty"`
	Address      string       `json:"address,omitempty"`
}
