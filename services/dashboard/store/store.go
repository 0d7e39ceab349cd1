// Copyright (C) 2026 Win Room Dashboard contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package store defines the record stores the dashboard reads and
// writes, with a Postgres implementation for production and an
// in-memory implementation for tests and lightweight mode.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/sgericke98/winroom-dashboard/services/dashboard/datatypes"
)

// ErrNotFound is returned when a record does not exist. Handlers map it
// to a 404; the analytics engine never sees it (empty result sets are
// not errors).
var ErrNotFound = errors.New("record not found")

// AccountStore is the current-state store of accounts.
type AccountStore interface {
	ListAccounts(ctx context.Context) ([]datatypes.Account, error)
	GetAccount(ctx context.Context, id string) (datatypes.Account, error)
	CreateAccount(ctx context.Context, a datatypes.Account) error
	UpdateAccount(ctx context.Context, a datatypes.Account) error
	DeleteAccount(ctx context.Context, id string) error
}

// SnapshotStore is the time-series store of daily health snapshots.
type SnapshotStore interface {
	// ListSnapshotsBetween returns all snapshots with a date in
	// [from, to], across all accounts.
	ListSnapshotsBetween(ctx context.Context, from, to time.Time) ([]datatypes.HealthSnapshot, error)
	ListAccountSnapshots(ctx context.Context, accountID string) ([]datatypes.HealthSnapshot, error)
	// UpsertSnapshot inserts the snapshot, overwriting any existing
	// snapshot for the same account and date.
	UpsertSnapshot(ctx context.Context, s datatypes.HealthSnapshot) error
}

// WinRoomStore is the win-room session log.
type WinRoomStore interface {
	ListEventsSince(ctx context.Context, since time.Time) ([]datatypes.WinRoomEvent, error)
	ListAccountEvents(ctx context.Context, accountID string) ([]datatypes.WinRoomEvent, error)
	CreateEvent(ctx context.Context, e datatypes.WinRoomEvent) error
}

// ActivityStore is the remediation task log.
type ActivityStore interface {
	ListActivities(ctx context.Context) ([]datatypes.Activity, error)
	ListAccountActivities(ctx context.Context, accountID string) ([]datatypes.Activity, error)
	GetActivity(ctx context.Context, id string) (datatypes.Activity, error)
	CreateActivity(ctx context.Context, a datatypes.Activity) error
	UpdateActivity(ctx context.Context, a datatypes.Activity) error
}

// Store is the full record store the dashboard service depends on.
type Store interface {
	AccountStore
	SnapshotStore
	WinRoomStore
	ActivityStore

	Ping(ctx context.Context) error
	Close() error
}
