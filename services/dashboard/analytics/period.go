// Copyright (C) 2026 Win Room Dashboard contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package analytics implements the risk-waterfall and portfolio-KPI
// computations. Everything in this package is a pure function of its
// inputs: no I/O, no caching, no shared state. Repeated invocations
// with the same inputs and reference time produce identical output.
package analytics

import "time"

// Mode selects the comparison window for the waterfall.
type Mode string

const (
	// ModeWeekOverWeek compares today against the state one week ago,
	// with a two-week snapshot window so a start-of-period snapshot is
	// available even when capture ran late.
	ModeWeekOverWeek Mode = "wow"

	// ModeYearToDate compares today against January 1 of the current
	// calendar year.
	ModeYearToDate Mode = "ytd"
)

// DefaultMode is the endpoint-level default when the period parameter
// is missing or unrecognized. Named policy, confirmed with product.
const DefaultMode = ModeWeekOverWeek

// Period is the resolved comparison window. WindowStart bounds the
// snapshots considered; Cutoff is the strict instant used to pick the
// start-of-period status; Today is the period-end reference.
type Period struct {
	WindowStart time.Time
	Cutoff      time.Time
	Today       time.Time
}

// ParseMode normalizes a request token to a Mode. Both the short form
// used by the dashboard ("wow", "ytd") and the long form ("week-over-week",
// "year-to-date") are accepted; anything else falls back to DefaultMode.
func ParseMode(s string) Mode {
	switch s {
	case "wow", "week-over-week":
		return ModeWeekOverWeek
	case "ytd", "year-to-date":
		return ModeYearToDate
	default:
		return DefaultMode
	}
}

// Resolve computes the comparison window for a mode relative to today.
// A Mode value Resolve does not recognize resolves as year-to-date;
// callers going through ParseMode never hit that path.
func Resolve(mode Mode, today time.Time) Period {
	switch mode {
	case ModeWeekOverWeek:
		return Period{
			WindowStart: today.AddDate(0, 0, -14),
			Cutoff:      today.AddDate(0, 0, -7),
			Today:       today,
		}
	default: // ModeYearToDate and unknown values
		jan1 := time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, today.Location())
		return Period{
			WindowStart: jan1,
			Cutoff:      jan1,
			Today:       today,
		}
	}
}
