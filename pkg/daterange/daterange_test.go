package daterange

import (
	"errors"
	"testing"
	"time"
	_ "time/tzdata"
)

func TestDefault(t *testing.T) {
	now := time.Date(2024, 5, 10, 14, 25, 0, 0, time.UTC)
	r := Default(now)

	if want := time.Date(2024, 5, 8, 14, 25, 0, 0, time.UTC); !r.Start.Equal(want) {
		t.Errorf("Default().Start = %v, want %v", r.Start, want)
	}
	if want := time.Date(2024, 5, 11, 14, 25, 0, 0, time.UTC); !r.End.Equal(want) {
		t.Errorf("Default().End = %v, want %v", r.End, want)
	}
}

func TestOrdered(t *testing.T) {
	a := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	b := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)

	if got := (Range{Start: b, End: a}).Ordered(); !got.Start.Equal(a) || !got.End.Equal(b) {
		t.Errorf("Ordered() of reversed range = %v", got)
	}
	if got := (Range{Start: a, End: b}).Ordered(); !got.Start.Equal(a) || !got.End.Equal(b) {
		t.Errorf("Ordered() of ordered range = %v", got)
	}
}

func TestNormalize(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		in        Range
		ref       *time.Location
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "same day widens to whole day",
			in:        Range{Start: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC), End: time.Date(2024, 1, 1, 15, 0, 0, 0, time.UTC)},
			ref:       time.UTC,
			wantStart: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 1, 1, 23, 59, 59, int(999*time.Millisecond), time.UTC),
		},
		{
			name:      "start truncated to hour",
			in:        Range{Start: time.Date(2024, 1, 1, 10, 45, 0, 0, time.UTC), End: time.Date(2024, 1, 3, 5, 30, 0, 0, time.UTC)},
			ref:       time.UTC,
			wantStart: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 1, 3, 5, 30, 0, 0, time.UTC),
		},
		{
			name:      "identical instants widen",
			in:        Range{Start: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), End: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)},
			ref:       time.UTC,
			wantStart: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 1, 1, 23, 59, 59, int(999*time.Millisecond), time.UTC),
		},
		{
			// Both instants are Jan 2 in Tokyo even though they straddle midnight UTC.
			name:      "same day judged on reference clock",
			in:        Range{Start: time.Date(2024, 1, 1, 20, 0, 0, 0, time.UTC), End: time.Date(2024, 1, 2, 2, 0, 0, 0, time.UTC)},
			ref:       tokyo,
			wantStart: time.Date(2024, 1, 2, 0, 0, 0, 0, tokyo),
			wantEnd:   time.Date(2024, 1, 2, 23, 59, 59, int(999*time.Millisecond), tokyo),
		},
		{
			name:      "reversed range is ordered",
			in:        Range{Start: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), End: time.Date(2024, 1, 1, 6, 20, 0, 0, time.UTC)},
			ref:       time.UTC,
			wantStart: time.Date(2024, 1, 1, 6, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "midnight to midnight is not widened",
			in:        Range{Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), End: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
			ref:       time.UTC,
			wantStart: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize(tt.ref)
			if !got.Start.Equal(tt.wantStart) {
				t.Errorf("Normalize().Start = %v, want %v", got.Start, tt.wantStart)
			}
			if !got.End.Equal(tt.wantEnd) {
				t.Errorf("Normalize().End = %v, want %v", got.End, tt.wantEnd)
			}
		})
	}
}

func TestParse(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		in      string
		ref     *time.Location
		want    time.Time
		wantErr bool
	}{
		{"2024-01-31", time.UTC, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), false},
		{"2024-01-31", ny, time.Date(2024, 1, 31, 0, 0, 0, 0, ny), false},
		{"2024-01-31T15:04", time.UTC, time.Date(2024, 1, 31, 15, 4, 0, 0, time.UTC), false},
		{"2024-01-31 15:04", ny, time.Date(2024, 1, 31, 15, 4, 0, 0, ny), false},
		{"2024-01-31T15:04:05+09:00", ny, time.Date(2024, 1, 31, 6, 4, 5, 0, time.UTC), false},
		{"2024-01-31", nil, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), false},
		{"31/01/2024", time.UTC, time.Time{}, true},
		{"tomorrow", time.UTC, time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in, tt.ref)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && !got.Equal(tt.want) {
				t.Errorf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormPick(t *testing.T) {
	t.Run("empty form means no selection", func(t *testing.T) {
		_, ok, err := Form{}.Pick(time.UTC)
		if ok || err != nil {
			t.Errorf("Pick() = ok %v, err %v; want false, nil", ok, err)
		}
	})

	t.Run("half-filled form is incomplete", func(t *testing.T) {
		_, ok, err := Form{Start: "2024-01-01"}.Pick(time.UTC)
		if ok || !errors.Is(err, ErrIncomplete) {
			t.Errorf("Pick() = ok %v, err %v; want false, ErrIncomplete", ok, err)
		}
	})

	t.Run("malformed end", func(t *testing.T) {
		_, ok, err := Form{Start: "2024-01-01", End: "soon"}.Pick(time.UTC)
		if ok || err == nil {
			t.Errorf("Pick() = ok %v, err %v; want false, error", ok, err)
		}
	})

	t.Run("reversed dates are ordered", func(t *testing.T) {
		r, ok, err := Form{Start: "2024-01-05", End: " 2024-01-02 "}.Pick(time.UTC)
		if !ok || err != nil {
			t.Fatalf("Pick() = ok %v, err %v", ok, err)
		}
		if want := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC); !r.Start.Equal(want) {
			t.Errorf("Start = %v, want %v", r.Start, want)
		}
		if want := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC); !r.End.Equal(want) {
			t.Errorf("End = %v, want %v", r.End, want)
		}
	})
}
