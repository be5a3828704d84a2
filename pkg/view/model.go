// Package view holds the visualizer's view state and renders it as HTML.
package view

import (
	"time"

	"github.com/codeGROOVE-dev/tzgrid/pkg/daterange"
	"github.com/codeGROOVE-dev/tzgrid/pkg/grid"
	"github.com/codeGROOVE-dev/tzgrid/pkg/zones"
)

// Model is one visualizer instance: the active zones, the dropdown selection,
// the selected range and the grid derived from them. The grid is rebuilt in
// full whenever the zones or the range change.
//
// A Model is not safe for concurrent use.
type Model struct {
	provider zones.Provider
	ref      *time.Location
	zones    *zones.List
	grid     *grid.Grid
	selected string
	rng      daterange.Range
}

// NewModel returns a model in its initial state: zones ["UTC"], range two
// days before now through one day after.
func NewModel(p zones.Provider, ref *time.Location, now time.Time) *Model {
	if ref == nil {
		ref = time.UTC
	}
	m := &Model{
		provider: p,
		ref:      ref,
		zones:    zones.NewList(p),
		rng:      daterange.Default(now.In(ref)),
	}
	m.recompute()
	return m
}

// Select sets the dropdown selection without adding it.
func (m *Model) Select(name string) {
	m.selected = name
}

// Selected returns the current dropdown selection.
func (m *Model) Selected() string {
	return m.selected
}

// Add appends the current selection to the active zones. It is a no-op when
// nothing is selected or the zone is already active.
func (m *Model) Add() bool {
	if !m.zones.Add(m.selected) {
		return false
	}
	m.recompute()
	return true
}

// SetRange replaces the selected range.
func (m *Model) SetRange(r daterange.Range) {
	m.rng = r
	m.recompute()
}

// Apply reads a selection from p and, if the user made one, replaces the range.
func (m *Model) Apply(p daterange.Picker) error {
	r, ok, err := p.Pick(m.ref)
	if err != nil {
		return err
	}
	if ok {
		m.SetRange(r)
	}
	return nil
}

// Range returns the selected range as given, before normalization.
func (m *Model) Range() daterange.Range {
	return m.rng
}

// Zones returns the active zone identifiers in order.
func (m *Model) Zones() []string {
	return m.zones.Names()
}

// Options returns the selectable zone identifiers.
func (m *Model) Options() []string {
	return m.provider.Names()
}

// Reference returns the clock used for day boundaries and hour labels.
func (m *Model) Reference() *time.Location {
	return m.ref
}

// Grid returns the grid for the current zones and range.
func (m *Model) Grid() *grid.Grid {
	return m.grid
}

func (m *Model) recompute() {
	m.grid = grid.Build(m.ref, m.rng, m.zones.Zones())
}
