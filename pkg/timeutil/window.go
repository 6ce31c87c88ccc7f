// Package timeutil converts calendar dates into the window boundaries the
// flight providers accept: whole-second UTC epochs for the movement API and
// minute-resolution ISO strings, split at midday, for the schedule API.
package timeutil

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the expected layout of ingestion run dates.
const DateLayout = "2006-01-02"

// isoMinuteLayout is the minute-resolution layout both providers accept.
const isoMinuteLayout = "2006-01-02T15:04"

// ErrInvalidDate indicates the run date was empty or did not match the layout.
var ErrInvalidDate = errors.New("invalid date")

// DayWindow holds every boundary representation of one UTC calendar day.
type DayWindow struct {
	Date       string // the original date string, loaded alongside each row
	StartEpoch int64  // UTC midnight, seconds since epoch
	EndEpoch   int64  // StartEpoch + 86399, last full second of the day
	StartISO   string // 00:00 of the day
	MidISO     string // 12:00 of the day
	EndISO     string // 23:59 of the day, not 24:00
}

// HalfWindow is one of the two 12-hour sub-intervals of a day.
type HalfWindow struct {
	From string
	To   string
}

// ComputeDayWindow parses date strictly against layout and returns the UTC
// day boundaries. The epoch pair spans [midnight, midnight+86399]; the ISO
// strings are minute-resolution with the end pinned at 23:59.
func ComputeDayWindow(date, layout string) (DayWindow, error) {
	if date == "" {
		return DayWindow{}, fmt.Errorf("%w: date string is empty", ErrInvalidDate)
	}

	start, err := time.ParseInLocation(layout, date, time.UTC)
	if err != nil {
		return DayWindow{}, fmt.Errorf("%w: %q does not match layout %q: %v", ErrInvalidDate, date, layout, err)
	}

	nextMidnight := start.AddDate(0, 0, 1)

	return DayWindow{
		Date:       date,
		StartEpoch: start.Unix(),
		EndEpoch:   nextMidnight.Unix() - 1,
		StartISO:   start.Format(isoMinuteLayout),
		MidISO:     start.Add(12 * time.Hour).Format(isoMinuteLayout),
		EndISO:     nextMidnight.Add(-time.Minute).Format(isoMinuteLayout),
	}, nil
}

// HalfWindows splits the day into its two half-day ISO intervals. The
// schedule provider caps query spans at twelve hours, so callers issue one
// request per half.
func (w DayWindow) HalfWindows() [2]HalfWindow {
	return [2]HalfWindow{
		{From: w.StartISO, To: w.MidISO},
		{From: w.MidISO, To: w.EndISO},
	}
}
