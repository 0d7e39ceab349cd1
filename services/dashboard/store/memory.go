// Copyright (C) 2026 Win Room Dashboard contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/sgericke98/winroom-dashboard/services/dashboard/datatypes"
)

// Memory is an in-memory Store. It backs the handler tests and the
// service's lightweight mode when no database URL is configured.
type Memory struct {
	mu         sync.RWMutex
	accounts   map[string]datatypes.Account
	snapshots  map[string]map[time.Time]datatypes.HealthSnapshot // account id -> date -> snapshot
	events     []datatypes.WinRoomEvent
	activities map[string]datatypes.Activity
}

var _ Store = (*Memory)(nil) // Compile-time check

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		accounts:   make(map[string]datatypes.Account),
		snapshots:  make(map[string]map[time.Time]datatypes.HealthSnapshot),
		activities: make(map[string]datatypes.Activity),
	}
}

func (m *Memory) ListAccounts(_ context.Context) ([]datatypes.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]datatypes.Account, 0, len(m.accounts))
	for _, a := range m.accounts {
		out = append(out, a)
	}
	// Deterministic order for stable test output.
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) GetAccount(_ context.Context, id string) (datatypes.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.accounts[id]
	if !ok {
		return datatypes.Account{}, ErrNotFound
	}
	return a, nil
}

func (m *Memory) CreateAccount(_ context.Context, a datatypes.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[a.ID] = a
	return nil
}

func (m *Memory) UpdateAccount(_ context.Context, a datatypes.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[a.ID]; !ok {
		return ErrNotFound
	}
	m.accounts[a.ID] = a
	return nil
}

func (m *Memory) DeleteAccount(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[id]; !ok {
		return ErrNotFound
	}
	delete(m.accounts, id)
	return nil
}

func (m *Memory) ListSnapshotsBetween(_ context.Context, from, to time.Time) ([]datatypes.HealthSnapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []datatypes.HealthSnapshot
	for _, byDate := range m.snapshots {
		for _, s := range byDate {
			if s.Date.Before(from) || s.Date.After(to) {
				continue
			}
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AccountID != out[j].AccountID {
			return out[i].AccountID < out[j].AccountID
		}
		return out[i].Date.Before(out[j].Date)
	})
	return out, nil
}

func (m *Memory) ListAccountSnapshots(_ context.Context, accountID string) ([]datatypes.HealthSnapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	byDate := m.snapshots[accountID]
	out := make([]datatypes.HealthSnapshot, 0, len(byDate))
	for _, s := range byDate {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (m *Memory) UpsertSnapshot(_ context.Context, s datatypes.HealthSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	date := datatypes.SnapshotDate(s.Date)
	s.Date = date
	byDate, ok := m.snapshots[s.AccountID]
	if !ok {
		byDate = make(map[time.Time]datatypes.HealthSnapshot)
		m.snapshots[s.AccountID] = byDate
	}
	byDate[date] = s
	return nil
}

func (m *Memory) ListEventsSince(_ context.Context, since time.Time) ([]datatypes.WinRoomEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []datatypes.WinRoomEvent
	for _, e := range m.events {
		if e.Date.Before(since) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (m *Memory) ListAccountEvents(_ context.Context, accountID string) ([]datatypes.WinRoomEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []datatypes.WinRoomEvent
	for _, e := range m.events {
		if e.AccountID == accountID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *Memory) CreateEvent(_ context.Context, e datatypes.WinRoomEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, e)
	return nil
}

func (m *Memory) ListActivities(_ context.Context) ([]datatypes.Activity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]datatypes.Activity, 0, len(m.activities))
	for _, a := range m.activities {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) ListAccountActivities(_ context.Context, accountID string) ([]datatypes.Activity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []datatypes.Activity
	for _, a := range m.activities {
		if a.AccountID == accountID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) GetActivity(_ context.Context, id string) (datatypes.Activity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.activities[id]
	if !ok {
		return datatypes.Activity{}, ErrNotFound
	}
	return a, nil
}

func (m *Memory) CreateActivity(_ context.Context, a datatypes.Activity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.activities[a.ID] = a
	return nil
}

func (m *Memory) UpdateActivity(_ context.Context, a datatypes.Activity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.activities[a.ID]; !ok {
		return ErrNotFound
	}
	m.activities[a.ID] = a
	return nil
}

func (m *Memory) Ping(_ context.Context) error { return nil }

func (m *Memory) Close() error { return nil }
