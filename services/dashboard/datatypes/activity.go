// Copyright (C) 2026 Win Room Dashboard contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package datatypes

import "time"

// ActivityStatus is the remediation task state.
type ActivityStatus string

const (
	ActivityNotStarted ActivityStatus = "Not Started"
	ActivityInProgress ActivityStatus = "In Progress"
	ActivityCompleted  ActivityStatus = "Completed"
)

// Valid reports whether s is one of the three known activity states.
func (s ActivityStatus) Valid() bool {
	switch s {
	case ActivityNotStarted, ActivityInProgress, ActivityCompleted:
		return true
	}
	return false
}

// attentionWindow is how far ahead a due date counts as "due soon".
const attentionWindow = 7 * 24 * time.Hour

// Activity is a remediation task tied to an account.
type Activity struct {
	ID        string         `json:"id"`
	AccountID string         `json:"account_id"`
	Title     string         `json:"title"`
	Status    ActivityStatus `json:"status"`
	DueDate   *time.Time     `json:"due_date,omitempty"`
	OwnerID   *string        `json:"owner_id,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// Outstanding reports whether the activity still needs work.
func (a Activity) Outstanding() bool {
	return a.Status != ActivityCompleted
}

// NeedsAttention reports whether the activity lands in the dashboard's
// attention-required bucket: not completed, and past due, due within the
// next seven days, or never started.
func (a Activity) NeedsAttention(today time.Time) bool {
	if a.Status == ActivityCompleted {
		return false
	}
	if a.Status == ActivityNotStarted {
		return true
	}
	if a.DueDate == nil {
		return false
	}
	if a.DueDate.Before(today) {
		return true
	}
	return a.DueDate.Sub(today) <= attentionWindow
}
