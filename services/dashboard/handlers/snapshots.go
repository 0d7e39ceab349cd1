// Copyright (C) 2026 Win Room Dashboard contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"

	"github.com/sgericke98/winroom-dashboard/services/dashboard/analytics"
	"github.com/sgericke98/winroom-dashboard/services/dashboard/datatypes"
	"github.com/sgericke98/winroom-dashboard/services/dashboard/store"
)

// Create a new tracer
var snapshotTracer = otel.Tracer("winroom.dashboard.handlers")

// HandleCaptureSnapshots serves POST /v1/snapshots/capture: one health
// snapshot per live account, dated today. Idempotent within a day.
func HandleCaptureSnapshots(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := snapshotTracer.Start(c.Request.Context(), "HandleCaptureSnapshots")
		defer span.End()

		captured, err := analytics.CaptureSnapshots(ctx, st, time.Now().UTC())
		if err != nil {
			slog.Error("Snapshot capture failed", "captured", captured, "error", err)
			span.RecordError(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Snapshot capture failed"})
			return
		}
		slog.Info("Captured health snapshots", "count", captured)
		c.JSON(http.StatusOK, gin.H{"captured": captured})
	}
}

// HandleListAccountSnapshots serves GET /v1/accounts/:id/snapshots, the
// account's full daily history in ascending date order.
func HandleListAccountSnapshots(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := snapshotTracer.Start(c.Request.Context(), "HandleListAccountSnapshots")
		defer span.End()

		snapshots, err := st.ListAccountSnapshots(ctx, c.Param("id"))
		if err != nil {
			slog.Error("Failed to list snapshots", "account_id", c.Param("id"), "error", err)
			span.RecordError(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list snapshots"})
			return
		}
		if snapshots == nil {
			snapshots = []datatypes.HealthSnapshot{}
		}
		c.JSON(http.StatusOK, gin.H{"snapshots": snapshots})
	}
}
