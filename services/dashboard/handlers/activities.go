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
var activityTracer = otel.Tracer("winroom.dashboard.handlers")

// ActivityRequest is the create payload for a remediation task.
type ActivityRequest struct {
	AccountID string     `json:"account_id" binding:"required"`
	Title     string     `json:"title" binding:"required"`
	Status    string     `json:"status" binding:"omitempty,oneof='Not Started' 'In Progress' 'Completed'"`
	DueDate   *time.Time `json:"due_date"`
	OwnerID   *string    `json:"owner_id"`
}

// ActivityUpdateRequest is the update payload. Nil fields are left
// unchanged.
type ActivityUpdateRequest struct {
	Title   *string    `json:"title"`
	Status  *string    `json:"status" binding:"omitempty,oneof='Not Started' 'In Progress' 'Completed'"`
	DueDate *time.Time `json:"due_date"`
	OwnerID *string    `json:"owner_id"`
}

// HandleListActivities serves GET /v1/activities. The attention=true
// query parameter filters to tasks needing attention today.
func HandleListActivities(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := activityTracer.Start(c.Request.Context(), "HandleListActivities")
		defer span.End()

		var activities []datatypes.Activity
		var err error
		if accountID := c.Query("account_id"); accountID != "" {
			activities, err = st.ListAccountActivities(ctx, accountID)
		} else {
			activities, err = st.ListActivities(ctx)
		}
		if err != nil {
			slog.Error("Failed to list activities", "error", err)
			span.RecordError(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list activities"})
			return
		}

		if c.Query("attention") == "true" {
			today := time.Now().UTC()
			filtered := activities[:0]
			for _, a := range activities {
				if a.NeedsAttention(today) {
					filtered = append(filtered, a)
				}
			}
			activities = filtered
		}
		if activities == nil {
			activities = []datatypes.Activity{}
		}
		c.JSON(http.StatusOK, gin.H{"activities": activities})
	}
}

// HandleCreateActivity serves POST /v1/activities. The account must
// exist; status defaults to "Not Started".
func HandleCreateActivity(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := activityTracer.Start(c.Request.Context(), "HandleCreateActivity")
		defer span.End()

		var req ActivityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid activity payload: " + err.Error()})
			return
		}

		if _, err := st.GetAccount(ctx, req.AccountID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
				return
			}
			slog.Error("Failed to check account for activity", "account_id", req.AccountID, "error", err)
			span.RecordError(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create activity"})
			return
		}

		status := datatypes.ActivityStatus(req.Status)
		if req.Status == "" {
			status = datatypes.ActivityNotStarted
		}

		now := time.Now().UTC()
		activity := datatypes.Activity{
			ID:        uuid.NewString(),
			AccountID: req.AccountID,
			Title:     req.Title,
			Status:    status,
			DueDate:   req.DueDate,
			OwnerID:   req.OwnerID,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := st.CreateActivity(ctx, activity); err != nil {
			slog.Error("Failed to create activity", "error", err)
			span.RecordError(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create activity"})
			return
		}
		slog.Info("Created activity", "activity_id", activity.ID, "account_id", activity.AccountID)
		c.JSON(http.StatusCreated, gin.H{"activity": activity})
	}
}

// HandleUpdateActivity serves PATCH /v1/activities/:id.
func HandleUpdateActivity(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := activityTracer.Start(c.Request.Context(), "HandleUpdateActivity")
		defer span.End()

		var req ActivityUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid activity payload: " + err.Error()})
			return
		}

		activity, err := st.GetActivity(ctx, c.Param("id"))
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Activity not found"})
			return
		}
		if err != nil {
			slog.Error("Failed to load activity for update", "activity_id", c.Param("id"), "error", err)
			span.RecordError(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update activity"})
			return
		}

		if req.Title != nil {
			activity.Title = *req.Title
		}
		if req.Status != nil {
			activity.Status = datatypes.ActivityStatus(*req.Status)
		}
		if req.DueDate != nil {
			activity.DueDate = req.DueDate
		}
		if req.OwnerID != nil {
			activity.OwnerID = req.OwnerID
		}
		activity.UpdatedAt = time.Now().UTC()

		if err := st.UpdateActivity(ctx, activity); err != nil {
			slog.Error("Failed to update activity", "activity_id", activity.ID, "error", err)
			span.RecordError(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update activity"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"activity": activity})
	}
}
