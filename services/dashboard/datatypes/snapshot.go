// Copyright (C) 2026 Win Room Dashboard contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package datatypes

import (
	"encoding/json"
	"fmt"
	"time"
)

// HealthSnapshot is an immutable point-in-time copy of one account's key
// metrics, keyed by (account id, calendar date). At most one snapshot
// exists per account per day; a recapture on the same day overwrites.
// This is the sole historical record the waterfall reads.
type HealthSnapshot struct {
	AccountID      string       `json:"account_id"`
	Date           time.Time    `json:"date"`
	Status         HealthStatus `json:"status"`
	ARRThousands   float64      `json:"arr"`
	HealthScore    int          `json:"health_score"`
	OpenActivities int          `json:"open_activities"`
}

// ARRDollars converts the stored thousands-scaled ARR to true dollars.
func (s HealthSnapshot) ARRDollars() float64 {
	return s.ARRThousands * 1000
}

// SnapshotDate truncates t to its UTC calendar date, the snapshot key
// granularity.
func SnapshotDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AccountSnapshotVersion is the current schema version for embedded
// win-room snapshots. Bump it when the embedded shape changes and add a
// decode path for the old version.
const AccountSnapshotVersion = 1

// AccountSnapshot is the full point-in-time copy embedded in a win-room
// event for historical replay. It is a tagged, versioned record rather
// than an open map so replay stays type-safe as the live schema evolves.
type AccountSnapshot struct {
	Version      int           `json:"version"`
	CapturedAt   time.Time     `json:"captured_at"`
	Account      Account       `json:"account"`
	Stakeholders []Stakeholder `json:"stakeholders,omitempty"`
	Risks        []Risk        `json:"risks,omitempty"`
	Activities   []Activity    `json:"activities,omitempty"`
}

// UnmarshalJSON rejects snapshot payloads with an unknown version tag so
// a newer writer cannot silently produce a half-decoded replay record.
func (s *AccountSnapshot) UnmarshalJSON(data []byte) error {
	type alias AccountSnapshot
	var raw alias
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Version != AccountSnapshotVersion {
		return fmt.Errorf("unsupported account snapshot version %d (want %d)", raw.Version, AccountSnapshotVersion)
	}
	*s = AccountSnapshot(raw)
	return nil
}
