// Copyright (C) 2026 Win Room Dashboard contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package analytics

import (
	"sort"
	"time"

	"github.com/sgericke98/winroom-dashboard/services/dashboard/datatypes"
)

const (
	// TopAtRiskLimit caps the "worst accounts" list.
	TopAtRiskLimit = 50

	// wowChangeWindow bounds the week-over-week change count.
	wowChangeWindow = 7 * 24 * time.Hour

	// winRoomCoverageWindow bounds the win-room coverage count.
	winRoomCoverageWindow = 30 * 24 * time.Hour
)

// KPISet is the portfolio summary returned by GET /kpis. ARR figures
// are in true dollars; the week-over-week percentage is 0-100.
type KPISet struct {
	TotalARRAtRisk         float64 `json:"total_arr_at_risk"`
	TotalARRTop50          float64 `json:"total_arr_top50"`
	AccountsAtRisk         int     `json:"accounts_at_risk"`
	AccountsTop50AtRisk    int     `json:"accounts_top50_at_risk"`
	WoWChangeCount         int     `json:"wow_change_count"`
	WoWChangePct           float64 `json:"wow_change_pct"`
	AccountsThroughWinRoom int     `json:"accounts_through_win_room"`
	OutstandingFollowups   int     `json:"outstanding_followups"`
}

// ComputeKPIs derives the portfolio-wide summary figures in a single
// pass over the current-state store, the win-room log, and the activity
// log. The figures are independent; no cross-validation is applied.
func ComputeKPIs(accounts []datatypes.Account, events []datatypes.WinRoomEvent, activities []datatypes.Activity, now time.Time) KPISet {
	var kpis KPISet

	atRisk := make([]datatypes.Account, 0, len(accounts))
	for _, a := range accounts {
		if a.AtRisk() {
			atRisk = append(atRisk, a)
		}
	}
	kpis.AccountsAtRisk = len(atRisk)
	for _, a := range atRisk {
		kpis.TotalARRAtRisk += a.ARRDollars()
	}

	// Worst accounts first: ascending health score, stable so equal
	// scores keep input order.
	top := make([]datatypes.Account, len(atRisk))
	copy(top, atRisk)
	sort.SliceStable(top, func(i, j int) bool { return top[i].HealthScore < top[j].HealthScore })
	if len(top) > TopAtRiskLimit {
		top = top[:TopAtRiskLimit]
	}
	kpis.AccountsTop50AtRisk = len(top)
	for _, a := range top {
		kpis.TotalARRTop50 += a.ARRDollars()
	}

	// Week-over-week change: at-risk accounts touched in the last week,
	// as a percentage of the current at-risk set. Zero when the at-risk
	// set is empty.
	changeSince := now.Add(-wowChangeWindow)
	for _, a := range atRisk {
		if a.UpdatedAt.After(changeSince) {
			kpis.WoWChangeCount++
		}
	}
	if len(atRisk) > 0 {
		kpis.WoWChangePct = float64(kpis.WoWChangeCount) / float64(len(atRisk)) * 100
	}

	// Distinct accounts through the win room in the last 30 days.
	coverageSince := now.Add(-winRoomCoverageWindow)
	seen := make(map[string]struct{})
	for _, e := range events {
		if e.Date.Before(coverageSince) || e.Date.After(now) {
			continue
		}
		seen[e.AccountID] = struct{}{}
	}
	kpis.AccountsThroughWinRoom = len(seen)

	// Outstanding follow-ups across the whole portfolio, not just the
	// at-risk set.
	for _, act := range activities {
		if act.Outstanding() {
			kpis.OutstandingFollowups++
		}
	}

	return kpis
}
