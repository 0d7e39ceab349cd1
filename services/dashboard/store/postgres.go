// Copyright (C) 2026 Win Room Dashboard contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver

	"github.com/sgericke98/winroom-dashboard/services/dashboard/datatypes"
)

// Postgres is the production Store backed by PostgreSQL through the pgx
// stdlib driver.
type Postgres struct {
	db *sql.DB
}

var _ Store = (*Postgres)(nil) // Compile-time check

// NewPostgres opens a connection pool against connStr and verifies it
// with a ping. connStr uses the key=value or URL form pgx accepts.
func NewPostgres(ctx context.Context, connStr string) (*Postgres, error) {
	db, err := sql.Open("pgx", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open PostgreSQL store: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping PostgreSQL store: %w", err)
	}
	return &Postgres{db: db}, nil
}

func (p *Postgres) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

func (p *Postgres) Close() error {
	return p.db.Close()
}

// DB exposes the underlying handle for migrations.
func (p *Postgres) DB() *sql.DB {
	return p.db
}

const accountColumns = `id, name, arr_thousands, health_score, status, subscription_end, account_manager_id, executive_sponsor_id, created_at, updated_at`

func scanAccount(row interface{ Scan(...any) error }) (datatypes.Account, error) {
	var a datatypes.Account
	var subEnd sql.NullTime
	var mgr, sponsor sql.NullString
	err := row.Scan(&a.ID, &a.Name, &a.ARRThousands, &a.HealthScore, &a.Status,
		&subEnd, &mgr, &sponsor, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return datatypes.Account{}, err
	}
	if subEnd.Valid {
		t := subEnd.Time
		a.SubscriptionEnd = &t
	}
	if mgr.Valid {
		s := mgr.String
		a.AccountManagerID = &s
	}
	if sponsor.Valid {
		s := sponsor.String
		a.ExecutiveSponsorID = &s
	}
	return a, nil
}

func (p *Postgres) ListAccounts(ctx context.Context) ([]datatypes.Account, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT `+accountColumns+` FROM accounts ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var out []datatypes.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (p *Postgres) GetAccount(ctx context.Context, id string) (datatypes.Account, error) {
	row := p.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
	a, err := scanAccount(row)
	if errors.Is(err, sql.ErrNoRows) {
		return datatypes.Account{}, ErrNotFound
	}
	if err != nil {
		return datatypes.Account{}, fmt.Errorf("failed to get account %s: %w", id, err)
	}
	return a, nil
}

func (p *Postgres) CreateAccount(ctx context.Context, a datatypes.Account) error {
	_, err := p.db.ExecContext(ctx,
		`INSERT INTO accounts (`+accountColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		a.ID, a.Name, a.ARRThousands, a.HealthScore, a.Status,
		a.SubscriptionEnd, a.AccountManagerID, a.ExecutiveSponsorID, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

func (p *Postgres) UpdateAccount(ctx context.Context, a datatypes.Account) error {
	res, err := p.db.ExecContext(ctx,
		`UPDATE accounts SET name = $2, arr_thousands = $3, health_score = $4, status = $5,
			subscription_end = $6, account_manager_id = $7, executive_sponsor_id = $8, updated_at = $9
		 WHERE id = $1`,
		a.ID, a.Name, a.ARRThousands, a.HealthScore, a.Status,
		a.SubscriptionEnd, a.AccountManagerID, a.ExecutiveSponsorID, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update account %s: %w", a.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Postgres) DeleteAccount(ctx context.Context, id string) error {
	res, err := p.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete account %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

const snapshotColumns = `account_id, snapshot_date, status, arr_thousands, health_score, open_activities`

func scanSnapshot(row interface{ Scan(...any) error }) (datatypes.HealthSnapshot, error) {
	var s datatypes.HealthSnapshot
	err := row.Scan(&s.AccountID, &s.Date, &s.Status, &s.ARRThousands, &s.HealthScore, &s.OpenActivities)
	return s, err
}

func (p *Postgres) ListSnapshotsBetween(ctx context.Context, from, to time.Time) ([]datatypes.HealthSnapshot, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT `+snapshotColumns+` FROM health_snapshots
		 WHERE snapshot_date >= $1 AND snapshot_date <= $2
		 ORDER BY account_id, snapshot_date`,
		datatypes.SnapshotDate(from), datatypes.SnapshotDate(to))
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var out []datatypes.HealthSnapshot
	for rows.Next() {
		s, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (p *Postgres) ListAccountSnapshots(ctx context.Context, accountID string) ([]datatypes.HealthSnapshot, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT `+snapshotColumns+` FROM health_snapshots
		 WHERE account_id = $1 ORDER BY snapshot_date`, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots for account %s: %w", accountID, err)
	}
	defer rows.Close()

	var out []datatypes.HealthSnapshot
	for rows.Next() {
		s, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (p *Postgres) UpsertSnapshot(ctx context.Context, s datatypes.HealthSnapshot) error {
	_, err := p.db.ExecContext(ctx,
		`INSERT INTO health_snapshots (`+snapshotColumns+`) VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (account_id, snapshot_date) DO UPDATE SET
			status = EXCLUDED.status,
			arr_thousands = EXCLUDED.arr_thousands,
			health_score = EXCLUDED.health_score,
			open_activities = EXCLUDED.open_activities`,
		s.AccountID, datatypes.SnapshotDate(s.Date), s.Status, s.ARRThousands, s.HealthScore, s.OpenActivities)
	if err != nil {
		return fmt.Errorf("failed to upsert snapshot for account %s: %w", s.AccountID, err)
	}
	return nil
}

func scanEvent(row interface{ Scan(...any) error }) (datatypes.WinRoomEvent, error) {
	var e datatypes.WinRoomEvent
	var snapshot []byte
	err := row.Scan(&e.ID, &e.AccountID, &e.Date, &e.Outcome, &snapshot, &e.CreatedAt)
	if err != nil {
		return datatypes.WinRoomEvent{}, err
	}
	if len(snapshot) > 0 {
		var snap datatypes.AccountSnapshot
		if err := json.Unmarshal(snapshot, &snap); err != nil {
			return datatypes.WinRoomEvent{}, fmt.Errorf("failed to decode event snapshot: %w", err)
		}
		e.Snapshot = &snap
	}
	return e, nil
}

func (p *Postgres) ListEventsSince(ctx context.Context, since time.Time) ([]datatypes.WinRoomEvent, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT id, account_id, event_date, outcome, snapshot, created_at
		 FROM win_room_events WHERE event_date >= $1 ORDER BY event_date`, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list win room events: %w", err)
	}
	defer rows.Close()

	var out []datatypes.WinRoomEvent
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (p *Postgres) ListAccountEvents(ctx context.Context, accountID string) ([]datatypes.WinRoomEvent, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT id, account_id, event_date, outcome, snapshot, created_at
		 FROM win_room_events WHERE account_id = $1 ORDER BY event_date`, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list win room events for account %s: %w", accountID, err)
	}
	defer rows.Close()

	var out []datatypes.WinRoomEvent
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (p *Postgres) CreateEvent(ctx context.Context, e datatypes.WinRoomEvent) error {
	var snapshot []byte
	if e.Snapshot != nil {
		var err error
		snapshot, err = json.Marshal(e.Snapshot)
		if err != nil {
			return fmt.Errorf("failed to encode event snapshot: %w", err)
		}
	}
	_, err := p.db.ExecContext(ctx,
		`INSERT INTO win_room_events (id, account_id, event_date, outcome, snapshot, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		e.ID, e.AccountID, e.Date, e.Outcome, snapshot, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create win room event: %w", err)
	}
	return nil
}

const activityColumns = `id, account_id, title, status, due_date, owner_id, created_at, updated_at`

func scanActivity(row interface{ Scan(...any) error }) (datatypes.Activity, error) {
	var a datatypes.Activity
	var due sql.NullTime
	var owner sql.NullString
	err := row.Scan(&a.ID, &a.AccountID, &a.Title, &a.Status, &due, &owner, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return datatypes.Activity{}, err
	}
	if due.Valid {
		t := due.Time
		a.DueDate = &t
	}
	if owner.Valid {
		s := owner.String
		a.OwnerID = &s
	}
	return a, nil
}

func (p *Postgres) ListActivities(ctx context.Context) ([]datatypes.Activity, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT `+activityColumns+` FROM activities ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	defer rows.Close()

	var out []datatypes.Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (p *Postgres) ListAccountActivities(ctx context.Context, accountID string) ([]datatypes.Activity, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT `+activityColumns+` FROM activities WHERE account_id = $1 ORDER BY created_at`, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities for account %s: %w", accountID, err)
	}
	defer rows.Close()

	var out []datatypes.Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (p *Postgres) GetActivity(ctx context.Context, id string) (datatypes.Activity, error) {
	row := p.db.QueryRowContext(ctx,
		`SELECT `+activityColumns+` FROM activities WHERE id = $1`, id)
	a, err := scanActivity(row)
	if errors.Is(err, sql.ErrNoRows) {
		return datatypes.Activity{}, ErrNotFound
	}
	if err != nil {
		return datatypes.Activity{}, fmt.Errorf("failed to get activity %s: %w", id, err)
	}
	return a, nil
}

func (p *Postgres) CreateActivity(ctx context.Context, a datatypes.Activity) error {
	_, err := p.db.ExecContext(ctx,
		`INSERT INTO activities (`+activityColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		a.ID, a.AccountID, a.Title, a.Status, a.DueDate, a.OwnerID, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create activity: %w", err)
	}
	return nil
}

func (p *Postgres) UpdateActivity(ctx context.Context, a datatypes.Activity) error {
	res, err := p.db.ExecContext(ctx,
		`UPDATE activities SET title = $2, status = $3, due_date = $4, owner_id = $5, updated_at = $6
		 WHERE id = $1`,
		a.ID, a.Title, a.Status, a.DueDate, a.OwnerID, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update activity %s: %w", a.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
