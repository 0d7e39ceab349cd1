// Copyright (C) 2026 Win Room Dashboard contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/sgericke98/winroom-dashboard/services/dashboard/datatypes"
)

// CaptureSource is the slice of the record store the snapshot capture
// reads from and writes to.
type CaptureSource interface {
	ListAccounts(ctx context.Context) ([]datatypes.Account, error)
	ListAccountActivities(ctx context.Context, accountID string) ([]datatypes.Activity, error)
	UpsertSnapshot(ctx context.Context, s datatypes.HealthSnapshot) error
}

// CaptureSnapshots writes one health snapshot per live account, dated to
// now's calendar date. Re-running on the same day overwrites that day's
// snapshots, so the capture is safe to schedule and retry. Returns the
// number of snapshots written.
func CaptureSnapshots(ctx context.Context, src CaptureSource, now time.Time) (int, error) {
	accounts, err := src.ListAccounts(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list accounts for capture: %w", err)
	}

	date := datatypes.SnapshotDate(now)
	captured := 0
	for _, a := range accounts {
		activities, err := src.ListAccountActivities(ctx, a.ID)
		if err != nil {
			return captured, fmt.Errorf("failed to list activities for account %s: %w", a.ID, err)
		}
		open := 0
		for _, act := range activities {
			if act.Outstanding() {
				open++
			}
		}
		snap := datatypes.HealthSnapshot{
			AccountID:      a.ID,
			Date:           date,
			Status:         a.Status,
			ARRThousands:   a.ARRThousands,
			HealthScore:    a.HealthScore,
			OpenActivities: open,
		}
		if err := src.UpsertSnapshot(ctx, snap); err != nil {
			return captured, fmt.Errorf("failed to upsert snapshot for account %s: %w", a.ID, err)
		}
		captured++
	}
	return captured, nil
}
