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
var waterfallTracer = otel.Tracer("winroom.dashboard.handlers")

// HandleWaterfall serves GET /analytics/waterfall. The period query
// parameter selects week-over-week ("wow", the default) or year-to-date
// ("ytd") analysis.
func HandleWaterfall(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := waterfallTracer.Start(c.Request.Context(), "HandleWaterfall")
		defer span.End()

		mode := analytics.ParseMode(c.Query("period"))
		period := analytics.Resolve(mode, time.Now().UTC())

		// Accounts and snapshots are independent reads.
		var accounts []datatypes.Account
		var snapshots []datatypes.HealthSnapshot
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			accounts, err = st.ListAccounts(gctx)
			return err
		})
		g.Go(func() error {
			var err error
			snapshots, err = st.ListSnapshotsBetween(gctx, period.WindowStart, period.Today)
			return err
		})
		if err := g.Wait(); err != nil {
			slog.Error("Failed to load waterfall inputs", "period", mode, "error", err)
			span.RecordError(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load waterfall data"})
			return
		}

		rows := analytics.BuildWaterfall(accounts, snapshots, period)
		c.JSON(http.StatusOK, gin.H{
			"period": string(mode),
			"data":   rows,
		})
	}
}
