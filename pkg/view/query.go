package view

import (
	"net/url"
	"time"

	"github.com/codeGROOVE-dev/tzgrid/pkg/daterange"
	"github.com/codeGROOVE-dev/tzgrid/pkg/zones"
)

// Query parameter names. The page keeps its whole state in the URL so a
// request can rebuild the model without anything stored server side.
const (
	ParamZone  = "zone"
	ParamAdd   = "add"
	ParamStart = "start"
	ParamEnd   = "end"
)

const queryTimeLayout = "2006-01-02T15:04"

// FromQuery rebuilds a model from request parameters. Each "zone" value is
// added in order, then the "add" value, through the same idempotent add as
// the dropdown. A "start"/"end" pair replaces the default range.
func FromQuery(p zones.Provider, ref *time.Location, now time.Time, q url.Values) (*Model, error) {
	m := NewModel(p, ref, now)
	for _, name := range q[ParamZone] {
		m.Select(name)
		m.Add()
	}
	m.Select(q.Get(ParamAdd))
	m.Add()

	form := daterange.Form{Start: q.Get(ParamStart), End: q.Get(ParamEnd)}
	if err := m.Apply(form); err != nil {
		return nil, err
	}
	return m, nil
}

// Query encodes the model's zones and range so that FromQuery reproduces it.
// The range is written to the minute on the reference clock.
func (m *Model) Query() url.Values {
	q := url.Values{}
	for _, name := range m.Zones() {
		q.Add(ParamZone, name)
	}
	q.Set(ParamStart, m.rng.Start.In(m.ref).Format(queryTimeLayout))
	q.Set(ParamEnd, m.rng.End.In(m.ref).Format(queryTimeLayout))
	return q
}
