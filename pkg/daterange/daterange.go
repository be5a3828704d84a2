// Package daterange models the user's selected date range and the picker
// that produces it.
package daterange

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/codeGROOVE-dev/tzgrid/pkg/tzconvert"
)

// Range is a selected [Start, End] pair of instants.
type Range struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Default is the initial selection: two days before now through one day after.
func Default(now time.Time) Range {
	return Range{
		Start: now.AddDate(0, 0, -2),
		End:   now.AddDate(0, 0, 1),
	}
}

// Ordered returns r with Start and End swapped if End is before Start.
func (r Range) Ordered() Range {
	if r.End.Before(r.Start) {
		return Range{Start: r.End, End: r.Start}
	}
	return r
}

// Normalize aligns the range for slot enumeration on ref's wall clock.
// A reversed range is ordered first. Start drops to the top of its hour.
// When Start and End fall on the same calendar day the range becomes that
// whole day, midnight through 23:59:59.999, whatever the times of day were.
func (r Range) Normalize(ref *time.Location) Range {
	r = r.Ordered()
	if tzconvert.SameDay(r.Start, r.End, ref) {
		return Range{
			Start: tzconvert.StartOfDay(r.Start, ref),
			End:   tzconvert.EndOfDay(r.Start, ref),
		}
	}
	return Range{
		Start: tzconvert.StartOfHour(r.Start, ref),
		End:   r.End,
	}
}

// Picker is the date range control. ok is false when the user has not made
// a selection; err reports input that could not be read as a range.
type Picker interface {
	Pick(ref *time.Location) (r Range, ok bool, err error)
}

// ErrIncomplete is returned when only one end of a range was supplied.
var ErrIncomplete = errors.New("date range needs both start and end")

// Form is a Picker fed by two text fields, such as HTML date inputs or
// command-line flags.
type Form struct {
	Start string
	End   string
}

// Pick parses both fields on ref's wall clock. Two empty fields mean no
// selection. A reversed pair is returned in order.
func (f Form) Pick(ref *time.Location) (Range, bool, error) {
	start, end := strings.TrimSpace(f.Start), strings.TrimSpace(f.End)
	if start == "" && end == "" {
		return Range{}, false, nil
	}
	if start == "" || end == "" {
		return Range{}, false, ErrIncomplete
	}

	s, err := Parse(start, ref)
	if err != nil {
		return Range{}, false, fmt.Errorf("start: %w", err)
	}
	e, err := Parse(end, ref)
	if err != nil {
		return Range{}, false, fmt.Errorf("end: %w", err)
	}
	return Range{Start: s, End: e}.Ordered(), true, nil
}

var layouts = []string{
	time.DateOnly,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// Parse reads a date or date-time. Values without an explicit offset are read
// on ref's wall clock; a bare date means midnight.
// Accepted: "2024-01-31", "2024-01-31T15:04", "2024-01-31 15:04", RFC 3339.
func Parse(s string, ref *time.Location) (time.Time, error) {
	if ref == nil {
		ref = time.UTC
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, ref); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q (want YYYY-MM-DD, YYYY-MM-DDTHH:MM or RFC 3339)", s)
}
