// Package grid builds the hour-by-hour comparison table of several time zones
// over a date range.
package grid

import (
	"time"

	"github.com/codeGROOVE-dev/tzgrid/pkg/daterange"
	"github.com/codeGROOVE-dev/tzgrid/pkg/tzconvert"
	"github.com/codeGROOVE-dev/tzgrid/pkg/zones"
)

// DayHeader is a calendar day on the reference clock and the number of hour
// columns that fall on it.
type DayHeader struct {
	Date string `json:"date"`
	Span int    `json:"span"`
}

// ZoneRow holds one zone's local times, aligned with Grid.Hours.
type ZoneRow struct {
	Zone   string   `json:"zone"`
	Offset string   `json:"offset"`
	Times  []string `json:"times"`
}

// Grid is the full table for one (range, zones) input.
type Grid struct {
	Hours     []time.Time `json:"hours"`
	Labels    []string    `json:"labels"`
	Dates     []DayHeader `json:"dates"`
	Rows      []ZoneRow   `json:"rows"`
	Reference string      `json:"reference"`
}

// Build computes the grid for r and zs on ref's wall clock (nil means UTC).
//
// The range is normalized first (see daterange.Range.Normalize), then every
// hour from the aligned start up to and including the last instant not after
// the end becomes a column. Columns are grouped into day headers by their
// calendar day on ref, and each zone gets one "HH:00" cell per column.
//
// Build has no upper bound on the number of columns: the table grows with the
// width of the range times the number of zones.
func Build(ref *time.Location, r daterange.Range, zs []zones.Zone) *Grid {
	if ref == nil {
		ref = time.UTC
	}
	norm := r.Normalize(ref)

	g := &Grid{Reference: ref.String()}
	for t := norm.Start; !t.After(norm.End); t = tzconvert.AddHours(t, 1) {
		g.Hours = append(g.Hours, t)
		g.Labels = append(g.Labels, tzconvert.HourLabel(t, ref))
	}

	g.Dates = dayHeaders(g.Hours, ref)

	g.Rows = make([]ZoneRow, 0, len(zs))
	for _, z := range zs {
		row := ZoneRow{
			Zone:   z.Name,
			Offset: tzconvert.OffsetLabel(norm.Start, z.Location),
			Times:  make([]string, len(g.Hours)),
		}
		for i, h := range g.Hours {
			row.Times[i] = tzconvert.HourLabel(h, z.Location)
		}
		g.Rows = append(g.Rows, row)
	}

	return g
}

// dayHeaders run-length encodes hours by calendar day. hours must be ascending.
func dayHeaders(hours []time.Time, ref *time.Location) []DayHeader {
	var out []DayHeader
	for _, h := range hours {
		day := tzconvert.DayLabel(h, ref)
		if n := len(out); n > 0 && out[n-1].Date == day {
			out[n-1].Span++
			continue
		}
		out = append(out, DayHeader{Date: day, Span: 1})
	}
	return out
}

// Columns returns the number of hour columns.
func (g *Grid) Columns() int {
	return len(g.Hours)
}
