// Package dateutil provides date parsing and interval handling for
// harvest windows.
package dateutil

import (
	"fmt"
	"time"

	"github.com/araddon/dateparse"
	"github.com/jinzhu/now"
)

// Interval groups start and end.
type Interval struct {
	Start time.Time
	End   time.Time
}

// String renders an interval.
func (iv Interval) String() string {
	return fmt.Sprintf("%s %s", iv.Start.Format(time.RFC3339), iv.End.Format(time.RFC3339))
}

// Validate checks that the end does not precede the start.
func (iv Interval) Validate() error {
	if iv.End.Before(iv.Start) {
		return fmt.Errorf("invalid interval: end %v before start %v", iv.End, iv.Start)
	}
	return nil
}

type (
	// PadFunc moves a given time back or forth to an interval boundary.
	PadFunc func(t time.Time) time.Time
	// IntervalFunc chops a timespan into intervals.
	IntervalFunc func(s, e time.Time) []Interval
)

var (
	Daily   = makeIntervalFunc(padLDay, padRDay)
	Weekly  = makeIntervalFunc(padLWeek, padRWeek)
	Monthly = makeIntervalFunc(padLMonth, padRMonth)

	padLDay   = func(t time.Time) time.Time { return now.With(t).BeginningOfDay() }
	padRDay   = func(t time.Time) time.Time { return now.With(t).EndOfDay() }
	padLWeek  = func(t time.Time) time.Time { return now.With(t).BeginningOfWeek() }
	padRWeek  = func(t time.Time) time.Time { return now.With(t).EndOfWeek() }
	padLMonth = func(t time.Time) time.Time { return now.With(t).BeginningOfMonth() }
	padRMonth = func(t time.Time) time.Time { return now.With(t).EndOfMonth() }
)

// Parse turns a date string in one of many common layouts into a time.
func Parse(value string) (time.Time, error) {
	return dateparse.ParseStrict(value)
}

// MustParse is like Parse but panics on error.
func MustParse(value string) time.Time {
	t, err := dateparse.ParseStrict(value)
	if err != nil {
		panic(err)
	}
	return t
}

// makeIntervalFunc builds daily, weekly and other slicers from a pair of
// boundary funcs. The last interval covers the end value, intervals pad
// outwards to full boundaries.
func makeIntervalFunc(padLeft, padRight PadFunc) IntervalFunc {
	return func(start, end time.Time) (result []Interval) {
		if end.Before(start) || end.Equal(start) {
			return
		}
		end = end.Add(-1 * time.Second)
		var (
			l time.Time = start
			r time.Time
		)
		for {
			r = padRight(l)
			result = append(result, Interval{l, r})
			l = padLeft(r.Add(1 * time.Second))
			if l.After(end) {
				break
			}
		}
		return result
	}
}
