// Package tzconvert provides the calendar arithmetic the grid is built on.
// Instants are absolute; a *time.Location only decides which wall clock
// is used for truncation and display.
package tzconvert

import (
	"fmt"
	"time"
)

// StartOfHour truncates t down to the top of its hour on loc's wall clock.
// Example: StartOfHour(10:42 UTC, UTC) returns 10:00 UTC.
//
// time.Truncate works on absolute time, which is wrong for zones with
// non-hour offsets (e.g. Asia/Kolkata), so the wall clock is rebuilt instead.
func StartOfHour(t time.Time, loc *time.Location) time.Time {
	local := t.In(orUTC(loc))
	return time.Date(local.Year(), local.Month(), local.Day(), local.Hour(), 0, 0, 0, local.Location())
}

// StartOfDay returns midnight of t's calendar day on loc's wall clock.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(orUTC(loc))
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, local.Location())
}

// EndOfDay returns 23:59:59.999 of t's calendar day on loc's wall clock.
func EndOfDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(orUTC(loc))
	return time.Date(local.Year(), local.Month(), local.Day(), 23, 59, 59, int(999*time.Millisecond), local.Location())
}

// AddHours moves t by n absolute hours.
// Across a DST change the wall clock may repeat or skip an hour; the instant never does.
func AddHours(t time.Time, n int) time.Time {
	return t.Add(time.Duration(n) * time.Hour)
}

// SameDay reports whether a and b fall on the same calendar day on loc's wall clock.
func SameDay(a, b time.Time, loc *time.Location) bool {
	return StartOfDay(a, loc).Equal(StartOfDay(b, loc))
}

// HourLabel formats t as a zero-padded 24-hour "HH:00" on loc's wall clock.
// Minutes are not shown: a zone with a half-hour offset still reads "HH:00".
// Example: HourLabel(2024-01-01T00:00Z, Asia/Tokyo) returns "09:00".
func HourLabel(t time.Time, loc *time.Location) string {
	return fmt.Sprintf("%02d:00", t.In(orUTC(loc)).Hour())
}

// DayLabel formats the calendar day of t on loc's wall clock as "2006-01-02".
func DayLabel(t time.Time, loc *time.Location) string {
	return t.In(orUTC(loc)).Format(time.DateOnly)
}

// OffsetLabel describes loc's UTC offset at instant t.
// Examples:
//   - UTC at any instant returns "UTC+0"
//   - America/New_York in January returns "UTC-5"
//   - Asia/Kolkata returns "UTC+5:30"
func OffsetLabel(t time.Time, loc *time.Location) string {
	_, offset := t.In(orUTC(loc)).Zone()

	sign := "+"
	if offset < 0 {
		sign = "-"
		offset = -offset
	}

	hours := offset / 3600
	minutes := (offset % 3600) / 60
	if minutes == 0 {
		return fmt.Sprintf("UTC%s%d", sign, hours)
	}
	return fmt.Sprintf("UTC%s%d:%02d", sign, hours, minutes)
}

func orUTC(loc *time.Location) *time.Location {
	if loc == nil {
		return time.UTC
	}
	return loc
}
