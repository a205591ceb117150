package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/redland/registro/core/calendar"
)

const dateLayout = "2006-01-02"

// DateRange is an inclusive range of calendar days.
type DateRange struct {
	From, To time.Time // midnight UTC of each day
}

// ParseDateRange validates the bounds of a report. Both are required and from must not be after to.
func ParseDateRange(from, to string) (DateRange, error) {
	from, to = strings.TrimSpace(from), strings.TrimSpace(to)
	if from == "" || to == "" {
		return DateRange{}, &InvalidRangeError{From: from, To: to, msg: msgMissingRange}
	}
	f, err := ParseDay(from)
	if err != nil {
		return DateRange{}, &InvalidRangeError{From: from, To: to, msg: fmt.Sprintf(msgInvalidDate, from)}
	}
	t, err := ParseDay(to)
	if err != nil {
		return DateRange{}, &InvalidRangeError{From: from, To: to, msg: fmt.Sprintf(msgInvalidDate, to)}
	}
	if f.After(t) {
		return DateRange{}, &InvalidRangeError{From: from, To: to, msg: msgInvertedRange}
	}
	return DateRange{From: f, To: t}, nil
}

// ParseDay parses an ISO date, or an RFC 3339 timestamp, into the calendar day it names.
// A timestamp keeps the day of its own offset, so "2026-02-23T00:30:00-03:00" is the 23rd.
func ParseDay(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		if t, err = time.Parse(time.RFC3339, s); err != nil {
			return time.Time{}, err
		}
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
}

// Contains reports whether day falls within the range, both ends included.
func (r DateRange) Contains(day time.Time) bool {
	return !day.Before(r.From) && !day.After(r.To)
}

func (r DateRange) FromKey() string { return r.From.Format(dateLayout) }
func (r DateRange) ToKey() string   { return r.To.Format(dateLayout) }

// FilterDateRange returns the buckets of b whose day lies within r. Keys that are not dates are dropped.
func FilterDateRange[T any](b calendar.Buckets[T], r DateRange) calendar.Buckets[T] {
	out := make(calendar.Buckets[T])
	for key, secs := range b {
		day, err := ParseDay(key)
		if err != nil || !r.Contains(day) {
			continue
		}
		out[key] = secs
	}
	return out
}
