// Copyright (C) 2026 Win Room Dashboard contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"

	"github.com/sgericke98/winroom-dashboard/services/dashboard/datatypes"
	"github.com/sgericke98/winroom-dashboard/services/dashboard/store"
)

// Create a new tracer
var winroomTracer = otel.Tracer("winroom.dashboard.handlers")

// WinRoomEventRequest is the create payload for a win-room session log
// entry. When Capture is true the service embeds a full point-in-time
// snapshot of the account into the event.
type WinRoomEventRequest struct {
	AccountID string     `json:"account_id" binding:"required"`
	Date      *time.Time `json:"date"`
	Outcome   string     `json:"outcome"`
	Capture   bool       `json:"capture"`
}

// HandleListWinRoomEvents serves GET /v1/winroom. An account_id query
// parameter narrows to one account's history; otherwise the last 30
// days across the portfolio are returned.
func HandleListWinRoomEvents(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := winroomTracer.Start(c.Request.Context(), "HandleListWinRoomEvents")
		defer span.End()

		var events []datatypes.WinRoomEvent
		var err error
		if accountID := c.Query("account_id"); accountID != "" {
			events, err = st.ListAccountEvents(ctx, accountID)
		} else {
			events, err = st.ListEventsSince(ctx, time.Now().UTC().Add(-30*24*time.Hour))
		}
		if err != nil {
			slog.Error("Failed to list win room events", "error", err)
			span.RecordError(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list win room events"})
			return
		}
		if events == nil {
			events = []datatypes.WinRoomEvent{}
		}
		c.JSON(http.StatusOK, gin.H{"events": events})
	}
}

// HandleCreateWinRoomEvent serves POST /v1/winroom.
func HandleCreateWinRoomEvent(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := winroomTracer.Start(c.Request.Context(), "HandleCreateWinRoomEvent")
		defer span.End()

		var req WinRoomEventRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid win room payload: " + err.Error()})
			return
		}

		account, err := st.GetAccount(ctx, req.AccountID)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
			return
		}
		if err != nil {
			slog.Error("Failed to load account for win room event", "account_id", req.AccountID, "error", err)
			span.RecordError(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create win room event"})
			return
		}

		now := time.Now().UTC()
		date := now
		if req.Date != nil {
			date = *req.Date
		}

		event := datatypes.WinRoomEvent{
			ID:        uuid.NewString(),
			AccountID: req.AccountID,
			Date:      date,
			Outcome:   req.Outcome,
			CreatedAt: now,
		}
		if req.Capture {
			activities, err := st.ListAccountActivities(ctx, req.AccountID)
			if err != nil {
				slog.Error("Failed to capture activities for win room event", "account_id", req.AccountID, "error", err)
				span.RecordError(err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create win room event"})
				return
			}
			event.Snapshot = &datatypes.AccountSnapshot{
				Version:    datatypes.AccountSnapshotVersion,
				CapturedAt: now,
				Account:    account,
				Activities: activities,
			}
		}

		if err := st.CreateEvent(ctx, event); err != nil {
			slog.Error("Failed to create win room event", "account_id", req.AccountID, "error", err)
			span.RecordError(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create win room event"})
			return
		}
		slog.Info("Created win room event", "event_id", event.ID, "account_id", event.AccountID,
			"captured", event.Snapshot != nil)
		c.JSON(http.StatusCreated, gin.H{"event": event})
	}
}
