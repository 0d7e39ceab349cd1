// Copyright (C) 2026 Win Room Dashboard contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package datatypes holds the record types shared by the store, the
// analytics engine, and the HTTP handlers.
package datatypes

import "time"

// HealthStatus is the three-valued account health enum. Yellow and red
// both count as "at risk".
type HealthStatus string

const (
	StatusGreen  HealthStatus = "green"
	StatusYellow HealthStatus = "yellow"
	StatusRed    HealthStatus = "red"
)

// Health score thresholds on the 0-1000 scale. Status is normally
// derived from the score via these cutoffs but is stored independently,
// so the two may diverge on records edited by hand.
const (
	GreenScoreThreshold  = 700
	YellowScoreThreshold = 500
)

// Valid reports whether s is one of the three known statuses.
func (s HealthStatus) Valid() bool {
	switch s {
	case StatusGreen, StatusYellow, StatusRed:
		return true
	}
	return false
}

// AtRisk reports whether the status counts toward the at-risk book.
func (s HealthStatus) AtRisk() bool {
	return s == StatusYellow || s == StatusRed
}

// StatusForScore maps a 0-1000 health score to its derived status.
func StatusForScore(score int) HealthStatus {
	switch {
	case score >= GreenScoreThreshold:
		return StatusGreen
	case score >= YellowScoreThreshold:
		return StatusYellow
	default:
		return StatusRed
	}
}

// Account is one customer/institution relationship. ARR is stored in
// thousands of dollars; use ARRDollars for the true-dollar figure.
type Account struct {
	ID                 string       `json:"id"`
	Name               string       `json:"name"`
	ARRThousands       float64      `json:"arr"`
	HealthScore        int          `json:"health_score"`
	Status             HealthStatus `json:"status"`
	SubscriptionEnd    *time.Time   `json:"subscription_end,omitempty"`
	AccountManagerID   *string      `json:"account_manager_id,omitempty"`
	ExecutiveSponsorID *string      `json:"executive_sponsor_id,omitempty"`
	CreatedAt          time.Time    `json:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at"`
}

// ARRDollars converts the stored thousands-scaled ARR to true dollars.
func (a Account) ARRDollars() float64 {
	return a.ARRThousands * 1000
}

// AtRisk reports whether the account's live status is yellow or red.
func (a Account) AtRisk() bool {
	return a.Status.AtRisk()
}
