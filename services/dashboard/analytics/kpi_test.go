// Copyright (C) 2026 Win Room Dashboard contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Tests for kpi.go

package analytics

import (
	"fmt"
	"testing"

	"github.com/sgericke98/winroom-dashboard/services/dashboard/datatypes"
)

func TestComputeKPIs_AtRiskTotals(t *testing.T) {
	accounts := []datatypes.Account{
		testAccount("g", 1000, datatypes.StatusGreen),
		testAccount("y", 200, datatypes.StatusYellow),
		testAccount("r", 300, datatypes.StatusRed),
	}

	kpis := ComputeKPIs(accounts, nil, nil, testToday)

	if kpis.AccountsAtRisk != 2 {
		t.Errorf("AccountsAtRisk = %d, expected 2", kpis.AccountsAtRisk)
	}
	if kpis.TotalARRAtRisk != 500_000 {
		t.Errorf("TotalARRAtRisk = %.0f, expected 500000", kpis.TotalARRAtRisk)
	}
}

func TestComputeKPIs_Top50WorstByScore(t *testing.T) {
	// 60 at-risk accounts with ascending scores: the top-50 cut keeps the
	// 50 worst and their ARR only.
	var accounts []datatypes.Account
	for i := 0; i < 60; i++ {
		a := testAccount(fmt.Sprintf("a%02d", i), 10, datatypes.StatusRed)
		a.HealthScore = i
		accounts = append(accounts, a)
	}

	kpis := ComputeKPIs(accounts, nil, nil, testToday)

	if kpis.AccountsTop50AtRisk != 50 {
		t.Errorf("AccountsTop50AtRisk = %d, expected 50", kpis.AccountsTop50AtRisk)
	}
	if kpis.TotalARRTop50 != 500_000 {
		t.Errorf("TotalARRTop50 = %.0f, expected 500000", kpis.TotalARRTop50)
	}
	if kpis.TotalARRAtRisk != 600_000 {
		t.Errorf("TotalARRAtRisk = %.0f, expected 600000", kpis.TotalARRAtRisk)
	}
}

func TestComputeKPIs_WoWChange(t *testing.T) {
	recent := testAccount("a1", 100, datatypes.StatusRed)
	recent.UpdatedAt = testToday.AddDate(0, 0, -2)
	stale := testAccount("a2", 100, datatypes.StatusYellow)
	stale.UpdatedAt = testToday.AddDate(0, 0, -20)

	kpis := ComputeKPIs([]datatypes.Account{recent, stale}, nil, nil, testToday)

	if kpis.WoWChangeCount != 1 {
		t.Errorf("WoWChangeCount = %d, expected 1", kpis.WoWChangeCount)
	}
	if kpis.WoWChangePct != 50 {
		t.Errorf("WoWChangePct = %.1f, expected 50.0", kpis.WoWChangePct)
	}
}

func TestComputeKPIs_WoWChangePctZeroWhenNoAtRisk(t *testing.T) {
	accounts := []datatypes.Account{testAccount("g", 100, datatypes.StatusGreen)}

	kpis := ComputeKPIs(accounts, nil, nil, testToday)

	if kpis.WoWChangePct != 0 {
		t.Errorf("WoWChangePct = %.1f, expected 0 for empty at-risk set", kpis.WoWChangePct)
	}
}

func TestComputeKPIs_WinRoomCoverageIsDistinctAccounts(t *testing.T) {
	events := []datatypes.WinRoomEvent{
		{ID: "e1", AccountID: "a1", Date: testToday.AddDate(0, 0, -5)},
		{ID: "e2", AccountID: "a1", Date: testToday.AddDate(0, 0, -10)},
		{ID: "e3", AccountID: "a2", Date: testToday.AddDate(0, 0, -29)},
		{ID: "e4", AccountID: "a3", Date: testToday.AddDate(0, 0, -45)}, // outside 30d
	}

	kpis := ComputeKPIs(nil, events, nil, testToday)

	if kpis.AccountsThroughWinRoom != 2 {
		t.Errorf("AccountsThroughWinRoom = %d, expected 2", kpis.AccountsThroughWinRoom)
	}
}

func TestComputeKPIs_OutstandingFollowups(t *testing.T) {
	activities := []datatypes.Activity{
		{ID: "t1", Status: datatypes.ActivityNotStarted},
		{ID: "t2", Status: datatypes.ActivityInProgress},
		{ID: "t3", Status: datatypes.ActivityCompleted},
	}

	kpis := ComputeKPIs(nil, nil, activities, testToday)

	if kpis.OutstandingFollowups != 2 {
		t.Errorf("OutstandingFollowups = %d, expected 2", kpis.OutstandingFollowups)
	}
}
