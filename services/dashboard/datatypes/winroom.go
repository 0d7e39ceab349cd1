// Copyright (C) 2026 Win Room Dashboard contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package datatypes

import "time"

// WinRoomEvent is a scheduled or completed remediation session for one
// account. Snapshot carries a full point-in-time copy of the account
// taken when the session was logged; a nil Snapshot marks a legacy
// record with reduced display fidelity.
type WinRoomEvent struct {
	ID        string           `json:"id"`
	AccountID string           `json:"account_id"`
	Date      time.Time        `json:"date"`
	Outcome   string           `json:"outcome"`
	Snapshot  *AccountSnapshot `json:"snapshot,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

// Legacy reports whether the event predates embedded snapshots.
func (e WinRoomEvent) Legacy() bool {
	return e.Snapshot == nil
}

// Stakeholder is a named contact attached to an account.
type Stakeholder struct {
	ID        string `json:"id"`
	AccountID string `json:"account_id"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	Email     string `json:"email,omitempty"`
}

// RiskSeverity grades an account risk.
type RiskSeverity string

const (
	RiskLow    RiskSeverity = "low"
	RiskMedium RiskSeverity = "medium"
	RiskHigh   RiskSeverity = "high"
)

// Risk is an identified threat to an account relationship.
type Risk struct {
	ID          string       `json:"id"`
	AccountID   string       `json:"account_id"`
	Description string       `json:"description"`
	Severity    RiskSeverity `json:"severity"`
	Status      string       `json:"status"` // open, mitigated, closed
	CreatedAt   time.Time    `json:"created_at"`
}
