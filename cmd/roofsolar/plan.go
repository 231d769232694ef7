package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/roofsolar/planner/internal/capture"
	"github.com/roofsolar/planner/internal/geo"
	"github.com/roofsolar/planner/internal/influx"
	"github.com/roofsolar/planner/internal/session"
	"github.com/roofsolar/planner/pkg/core"
)

// planFile is the input of the plan command. A bare JSON array of [x,y]
// pairs is accepted as well.
type planFile struct {
	Address string            `json:"address"`
	Lat     *float64          `json:"lat,omitempty"`
	Lng     *float64          `json:"lng,omitempty"`
	Panels  *core.PanelConfig `json:"panels,omitempty"`
	Clicks  []core.Point      `json:"clicks"`
}

// parsePlan reads a plan document.
func parsePlan(data []byte) (planFile, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		points, err := geo.ParsePoints(string(data))
		if err != nil {
			return planFile{}, err
		}
		return planFile{Clicks: points}, nil
	}

	var p planFile
	if err := json.Unmarshal(data, &p); err != nil {
		return planFile{}, fmt.Errorf("failed to parse plan: %w", err)
	}
	if (p.Lat == nil) != (p.Lng == nil) {
		return planFile{}, fmt.Errorf("plan needs both lat and lng")
	}
	return p, nil
}

// replay feeds the plan's clicks through a fresh session at loc.
func replay(settings session.Settings, loc core.Location, p planFile) (session.State, error) {
	st := session.New(settings).WithLocation(loc)
	if p.Panels != nil {
		st = st.WithPanels(*p.Panels)
	}
	for _, c := range p.Clicks {
		var err error
		if st, _, err = st.Apply(capture.Event{Kind: capture.EventClick, Point: c}); err != nil {
			return st, err
		}
	}
	if !st.Outline().Complete {
		g := st.Guidance()
		return st, fmt.Errorf("%w: %d points, guidance %s", session.ErrOutlineIncomplete, g.Points, g.Kind)
	}
	return st, nil
}

// printStatistics writes the statistics view.
func printStatistics(w io.Writer, st session.State) {
	stats := st.Layout().Statistics()
	loc, _ := st.Location()
	if loc.Address != "" {
		fmt.Fprintf(w, "Address:            %s\n", loc.Address)
	}
	fmt.Fprintf(w, "Roof area:          %.1f m2\n", stats.RoofAreaSqMeters)
	fmt.Fprintf(w, "Panels:             %d\n", stats.PanelCount)
	fmt.Fprintf(w, "Capacity:           %.1f kW\n", stats.TotalCapacityKW)
	fmt.Fprintf(w, "Annual production:  %.0f kWh\n", stats.AnnualProductionKWh)
}

// runPlan replays a plan file, prints the statistics and writes the export.
func runPlan(ctx context.Context, path string, out io.Writer) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read plan: %w", err)
	}
	p, err := parsePlan(data)
	if err != nil {
		return err
	}

	loc := core.Location{Address: p.Address}
	switch {
	case p.Lat != nil:
		loc.Lat, loc.Lng = *p.Lat, *p.Lng
	case p.Address != "":
		res, err := resolver(googleClient()).Resolve(ctx, p.Address)
		if err != nil {
			return fmt.Errorf("failed to resolve %q: %w", p.Address, err)
		}
		loc = res.Location
	}

	st, err := replay(sessionSettings(), loc, p)
	if err != nil {
		return err
	}
	printStatistics(out, st)

	now := time.Now().UTC()
	files, err := exporter().Write(st, now)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Script:             %s\n", files.LISP)
	if files.DXF != "" {
		fmt.Fprintf(out, "Drawing:            %s\n", files.DXF)
	}

	if InfluxManager != nil {
		ev := influx.LayoutEvent{
			Time:     now,
			Action:   "plan",
			Address:  loc.Address,
			Vertices: len(st.Outline().Points),
			Panel:    st.Panels(),
			Result:   st.Layout(),
		}
		if err := InfluxManager.RecordLayout(ctx, ev); err != nil {
			Logger.Warn("Failed to record layout", "error", err)
		}
	}
	return nil
}
