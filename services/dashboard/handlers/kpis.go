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
	"golang.org/x/sync/errgroup"

	"github.com/sgericke98/winroom-dashboard/services/dashboard/analytics"
	"github.com/sgericke98/winroom-dashboard/services/dashboard/datatypes"
	"github.com/sgericke98/winroom-dashboard/services/dashboard/store"
)

// Create a new tracer
var kpiTracer = otel.Tracer("winroom.dashboard.handlers")

// HandleKPIs serves GET /kpis, the portfolio summary card row.
func HandleKPIs(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := kpiTracer.Start(c.Request.Context(), "HandleKPIs")
		defer span.End()

		now := time.Now().UTC()

		var accounts []datatypes.Account
		var events []datatypes.WinRoomEvent
		var activities []datatypes.Activity
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			accounts, err = st.ListAccounts(gctx)
			return err
		})
		g.Go(func() error {
			var err error
			events, err = st.ListEventsSince(gctx, now.Add(-30*24*time.Hour))
			return err
		})
		g.Go(func() error {
			var err error
			activities, err = st.ListActivities(gctx)
			return err
		})
		if err := g.Wait(); err != nil {
			slog.Error("Failed to load KPI inputs", "error", err)
			span.RecordError(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load KPI data"})
			return
		}

		kpis := analytics.ComputeKPIs(accounts, events, activities, now)
		c.JSON(http.StatusOK, gin.H{"kpis": kpis})
	}
}
