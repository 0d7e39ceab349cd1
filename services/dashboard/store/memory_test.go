// Copyright (C) 2026 Win Room Dashboard contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Tests for memory.go

package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sgericke98/winroom-dashboard/services/dashboard/datatypes"
)

func TestMemory_AccountLifecycle(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()

	_, err := mem.GetAccount(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)

	acct := datatypes.Account{ID: "a1", Name: "First National", Status: datatypes.StatusGreen}
	require.NoError(t, mem.CreateAccount(ctx, acct))

	got, err := mem.GetAccount(ctx, "a1")
	require.NoError(t, err)
	require.Equal(t, "First National", got.Name)

	acct.Status = datatypes.StatusRed
	require.NoError(t, mem.UpdateAccount(ctx, acct))
	got, err = mem.GetAccount(ctx, "a1")
	require.NoError(t, err)
	require.Equal(t, datatypes.StatusRed, got.Status)

	require.NoError(t, mem.DeleteAccount(ctx, "a1"))
	require.ErrorIs(t, mem.DeleteAccount(ctx, "a1"), ErrNotFound)
}

func TestMemory_UpsertSnapshotOverwritesSameDay(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()
	morning := time.Date(2026, time.March, 15, 9, 0, 0, 0, time.UTC)
	evening := morning.Add(10 * time.Hour)

	require.NoError(t, mem.UpsertSnapshot(ctx, datatypes.HealthSnapshot{
		AccountID: "a1", Date: morning, Status: datatypes.StatusGreen, ARRThousands: 100,
	}))
	require.NoError(t, mem.UpsertSnapshot(ctx, datatypes.HealthSnapshot{
		AccountID: "a1", Date: evening, Status: datatypes.StatusRed, ARRThousands: 100,
	}))

	snaps, err := mem.ListAccountSnapshots(ctx, "a1")
	require.NoError(t, err)
	require.Len(t, snaps, 1)
	require.Equal(t, datatypes.StatusRed, snaps[0].Status)
	require.Equal(t, datatypes.SnapshotDate(morning), snaps[0].Date)
}

func TestMemory_ListSnapshotsBetweenIsInclusive(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()
	day := func(d int) time.Time {
		return time.Date(2026, time.March, d, 0, 0, 0, 0, time.UTC)
	}
	for _, d := range []int{1, 5, 10, 20} {
		require.NoError(t, mem.UpsertSnapshot(ctx, datatypes.HealthSnapshot{
			AccountID: "a1", Date: day(d), Status: datatypes.StatusGreen,
		}))
	}

	snaps, err := mem.ListSnapshotsBetween(ctx, day(5), day(10))
	require.NoError(t, err)
	require.Len(t, snaps, 2)
	require.Equal(t, day(5), snaps[0].Date)
	require.Equal(t, day(10), snaps[1].Date)
}

func TestMemory_EventsSince(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()
	base := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)

	require.NoError(t, mem.CreateEvent(ctx, datatypes.WinRoomEvent{
		ID: "e1", AccountID: "a1", Date: base.AddDate(0, 0, -40),
	}))
	require.NoError(t, mem.CreateEvent(ctx, datatypes.WinRoomEvent{
		ID: "e2", AccountID: "a1", Date: base.AddDate(0, 0, -5),
	}))

	events, err := mem.ListEventsSince(ctx, base.AddDate(0, 0, -30))
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Equal(t, "e2", events[0].ID)

	all, err := mem.ListAccountEvents(ctx, "a1")
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestMemory_ActivityUpdate(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()

	act := datatypes.Activity{ID: "t1", AccountID: "a1", Title: "Exec call", Status: datatypes.ActivityNotStarted}
	require.NoError(t, mem.CreateActivity(ctx, act))

	act.Status = datatypes.ActivityCompleted
	require.NoError(t, mem.UpdateActivity(ctx, act))

	got, err := mem.GetActivity(ctx, "t1")
	require.NoError(t, err)
	require.Equal(t, datatypes.ActivityCompleted, got.Status)

	require.ErrorIs(t, mem.UpdateActivity(ctx, datatypes.Activity{ID: "nope"}), ErrNotFound)
}
