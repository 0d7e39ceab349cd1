// Copyright (C) 2026 Win Room Dashboard contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package analytics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/sgericke98/winroom-dashboard/services/dashboard/datatypes"
)

// DefaultStartStatus is the start-of-period status assumed for an
// account with no snapshot history. Named policy, not a silent
// fallback: a brand-new account enters the waterfall as if it had been
// healthy, so a currently at-risk newcomer shows up as an escalation.
const DefaultStartStatus = datatypes.StatusGreen

// Waterfall row categories, in the fixed output order. The first and
// last rows are cumulative totals; the middle four are the mutually
// exclusive transition buckets.
const (
	CategoryStartingAtRisk = "Starting At-Risk"
	CategoryTermNotices    = "Term Notices"
	CategoryRenewals       = "Renewals"
	CategoryDeEscalations  = "Risk De-escalations"
	CategoryEscalations    = "Risk Escalations"
	CategoryEndingAtRisk   = "Ending At-Risk"
)

// WaterfallRow is one bar of the risk waterfall. ACV is in true dollars
// and signed: totals and escalations positive, reductions in the
// at-risk book (term notices, renewals, de-escalations) negative.
type WaterfallRow struct {
	Category     string  `json:"category"`
	LogoCount    int     `json:"logoCount"`
	ACV          float64 `json:"acv"`
	DisplayValue string  `json:"displayValue"`
}

// bucket identifies the transition an account is classified into.
type bucket int

const (
	bucketNone bucket = iota
	bucketTermNotice
	bucketRenewal
	bucketDeEscalation
	bucketEscalation
)

// transition is the per-account classification result.
type transition struct {
	bucket     bucket
	amount     float64 // true dollars, for the transition bucket
	wasAtRisk  bool
	isAtRisk   bool
	terminated bool
	startARR   float64 // true dollars
	endARR     float64 // true dollars
}

// BuildWaterfall classifies every account into the transition decision
// table for the given period and aggregates the six report rows.
//
// The account universe is the union of live accounts and accounts with
// at least one snapshot inside [period.WindowStart, period.Today]: a
// deleted account still contributes through its snapshot history, and a
// brand-new account contributes through its live record alone.
//
// Per account:
//   - start status/ARR come from the latest snapshot at or before the
//     period cutoff, falling back to the earliest snapshot in the
//     window, falling back to DefaultStartStatus with the live ARR;
//   - end status/ARR come from the live record, falling back to the
//     latest snapshot when the account no longer exists;
//   - termination means a subscription end date strictly before today.
//
// ARR is stored in thousands and converted to true dollars at the point
// of bucket accumulation.
func BuildWaterfall(accounts []datatypes.Account, snapshots []datatypes.HealthSnapshot, p Period) []WaterfallRow {
	bySummary := groupSnapshots(snapshots, p)

	// Account universe: live accounts plus snapshot-only (deleted) ones.
	live := make(map[string]*datatypes.Account, len(accounts))
	for i := range accounts {
		live[accounts[i].ID] = &accounts[i]
	}
	ids := make([]string, 0, len(live)+len(bySummary))
	for id := range live {
		ids = append(ids, id)
	}
	for id := range bySummary {
		if _, ok := live[id]; !ok {
			ids = append(ids, id)
		}
	}
	// Classify in a fixed order so the float ACV totals accumulate the
	// same way on every run, not in map iteration order.
	sort.Strings(ids)

	var (
		starting, termNotices, renewals, deEscalations, escalations, ending WaterfallRow
	)
	starting.Category = CategoryStartingAtRisk
	termNotices.Category = CategoryTermNotices
	renewals.Category = CategoryRenewals
	deEscalations.Category = CategoryDeEscalations
	escalations.Category = CategoryEscalations
	ending.Category = CategoryEndingAtRisk

	for _, id := range ids {
		tr := classify(live[id], bySummary[id], p)

		switch tr.bucket {
		case bucketTermNotice:
			termNotices.LogoCount++
			termNotices.ACV -= tr.amount
		case bucketRenewal:
			renewals.LogoCount++
			renewals.ACV -= tr.amount
		case bucketDeEscalation:
			deEscalations.LogoCount++
			deEscalations.ACV -= tr.amount
		case bucketEscalation:
			escalations.LogoCount++
			escalations.ACV += tr.amount
		}

		// Cumulative totals overlap the transition buckets by design:
		// the waterfall's outer bars are totals, the middle bars deltas.
		if tr.wasAtRisk {
			starting.LogoCount++
			starting.ACV += tr.startARR
		}
		if tr.isAtRisk && !tr.terminated {
			ending.LogoCount++
			ending.ACV += tr.endARR
		}
	}

	rows := []WaterfallRow{starting, termNotices, renewals, deEscalations, escalations, ending}
	for i := range rows {
		rows[i].DisplayValue = FormatACV(rows[i].ACV)
	}
	return rows
}

// classify runs the decision table for one account. acct is nil when
// the account no longer exists in the current-state store; snaps are
// the account's in-window snapshots sorted ascending by date.
func classify(acct *datatypes.Account, snaps []datatypes.HealthSnapshot, p Period) transition {
	var tr transition

	// Start status: latest snapshot at or before the cutoff, else the
	// earliest snapshot in the window, else the no-history default.
	startStatus := DefaultStartStatus
	startARR := 0.0
	if acct != nil {
		startARR = acct.ARRDollars()
	}
	if len(snaps) > 0 {
		start := snaps[0]
		for _, s := range snaps {
			if s.Date.After(p.Cutoff) {
				break
			}
			start = s
		}
		startStatus = start.Status
		startARR = start.ARRDollars()
	}

	// End status/ARR: live value, falling back to the latest snapshot
	// when the account has been deleted.
	endStatus := startStatus
	endARR := startARR
	switch {
	case acct != nil:
		endStatus = acct.Status
		endARR = acct.ARRDollars()
	case len(snaps) > 0:
		last := snaps[len(snaps)-1]
		endStatus = last.Status
		endARR = last.ARRDollars()
	}

	// Termination: subscription end strictly before today. An end date
	// equal to today does not count.
	var subEnd *time.Time
	if acct != nil {
		subEnd = acct.SubscriptionEnd
	}
	tr.terminated = subEnd != nil && subEnd.Before(p.Today)

	tr.wasAtRisk = startStatus.AtRisk()
	tr.isAtRisk = endStatus.AtRisk()
	tr.startARR = startARR
	tr.endARR = endARR

	// Mutually exclusive classification, first match wins.
	switch {
	case tr.wasAtRisk && tr.terminated:
		tr.bucket = bucketTermNotice
		tr.amount = startARR
	case tr.wasAtRisk && !tr.isAtRisk:
		if subEnd != nil && subEnd.After(p.Today) {
			tr.bucket = bucketRenewal
		} else {
			tr.bucket = bucketDeEscalation
		}
		tr.amount = startARR
	case !tr.wasAtRisk && tr.isAtRisk:
		tr.bucket = bucketEscalation
		tr.amount = endARR
	default:
		tr.bucket = bucketNone
	}
	return tr
}

// groupSnapshots filters snapshots to the period window and groups them
// per account, sorted ascending by date.
func groupSnapshots(snapshots []datatypes.HealthSnapshot, p Period) map[string][]datatypes.HealthSnapshot {
	grouped := make(map[string][]datatypes.HealthSnapshot)
	for _, s := range snapshots {
		if s.Date.Before(p.WindowStart) || s.Date.After(p.Today) {
			continue
		}
		grouped[s.AccountID] = append(grouped[s.AccountID], s)
	}
	for id := range grouped {
		snaps := grouped[id]
		sort.Slice(snaps, func(i, j int) bool { return snaps[i].Date.Before(snaps[j].Date) })
		grouped[id] = snaps
	}
	return grouped
}

// FormatACV renders a signed dollar amount the way the waterfall chart
// labels its bars: "$1.2M", "-$350K", "$980".
func FormatACV(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
	}
	abs := math.Abs(v)
	switch {
	case abs >= 1_000_000:
		return fmt.Sprintf("%s$%.1fM", sign, abs/1_000_000)
	case abs >= 1_000:
		return fmt.Sprintf("%s$%.0fK", sign, abs/1_000)
	default:
		return fmt.Sprintf("%s$%.0f", sign, abs)
	}
}
