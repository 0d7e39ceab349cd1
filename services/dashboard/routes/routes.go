// Copyright (C) 2026 Win Room Dashboard contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sgericke98/winroom-dashboard/services/dashboard/handlers"
	"github.com/sgericke98/winroom-dashboard/services/dashboard/middleware"
	"github.com/sgericke98/winroom-dashboard/services/dashboard/store"
)

func SetupRoutes(router *gin.Engine, st store.Store, validate middleware.TokenValidator) {
	router.GET("/health", handlers.HandleHealthCheck(st))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// The dashboard's two read surfaces. Session presence required, no
	// role enforcement beyond that.
	analytics := router.Group("/")
	analytics.Use(middleware.AuthMiddleware(validate))
	{
		analytics.GET("/analytics/waterfall", handlers.HandleWaterfall(st))
		analytics.GET("/kpis", handlers.HandleKPIs(st))
	}

	// API version 1 group: the record CRUD surface.
	v1 := router.Group("/v1")
	v1.Use(middleware.AuthMiddleware(validate))
	{
		accounts := v1.Group("/accounts")
		{
			accounts.GET("", handlers.HandleListAccounts(st))
			accounts.POST("", handlers.HandleCreateAccount(st))
			accounts.GET("/:id", handlers.HandleGetAccount(st))
			accounts.PUT("/:id", handlers.HandleUpdateAccount(st))
			accounts.DELETE("/:id", handlers.HandleDeleteAccount(st))
			accounts.GET("/:id/snapshots", handlers.HandleListAccountSnapshots(st))
		}

		activities := v1.Group("/activities")
		{
			activities.GET("", handlers.HandleListActivities(st))
			activities.POST("", handlers.HandleCreateActivity(st))
			activities.PATCH("/:id", handlers.HandleUpdateActivity(st))
		}

		winroom := v1.Group("/winroom")
		{
			winroom.GET("", handlers.HandleListWinRoomEvents(st))
			winroom.POST("", handlers.HandleCreateWinRoomEvent(st))
		}

		v1.POST("/snapshots/capture", handlers.HandleCaptureSnapshots(st))
	}
}
