package influx

import (
	"time"

	influxdb2_write "github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/roofsolar/planner/pkg/core"
)

// Measurement is the measurement name of layout points.
const Measurement = "roof_layout"

// LayoutEvent is a computed layout worth recording, typically emitted when
// an outline closes or is exported.
type LayoutEvent struct {
	Time     time.Time
	Session  string
	Action   string
	Address  string
	Vertices int
	Panel    core.PanelConfig
	Result   core.LayoutResult
}

// LayoutPoint converts an event into a point. Address, session and action
// are tags; the numbers are fields.
func LayoutPoint(ev LayoutEvent) *influxdb2_write.Point {
	point := influxdb2_write.NewPointWithMeasurement(Measurement)
	if ev.Session != "" {
		point.AddTag("session", ev.Session)
	}
	if ev.Action != "" {
		point.AddTag("action", ev.Action)
	}
	if ev.Address != "" {
		point.AddTag("address", ev.Address)
	}

	point.AddField("vertices", ev.Vertices)
	point.AddField("area_m2", ev.Result.AreaSqMeters)
	point.AddField("panel_count", ev.Result.PanelCount)
	point.AddField("capacity_w", ev.Result.TotalCapacityWatts)
	point.AddField("annual_wh", ev.Result.AnnualProductionWh)
	point.AddField("panel_width_m", ev.Panel.Width)
	point.AddField("panel_height_m", ev.Panel.Height)
	point.AddField("panel_capacity_w", ev.Panel.CapacityWatts)

	if !ev.Time.IsZero() {
		point.SetTime(ev.Time)
	}
	return point
}
