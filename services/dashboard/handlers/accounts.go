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
var accountTracer = otel.Tracer("winroom.dashboard.handlers")

// AccountRequest is the create/update payload. ARR is in thousands of
// dollars, matching the stored representation.
type AccountRequest struct {
	Name               string     `json:"name" binding:"required"`
	ARRThousands       float64    `json:"arr" binding:"gte=0"`
	HealthScore        int        `json:"health_score" binding:"gte=0,lte=1000"`
	Status             string     `json:"status" binding:"omitempty,oneof=green yellow red"`
	SubscriptionEnd    *time.Time `json:"subscription_end"`
	AccountManagerID   *string    `json:"account_manager_id"`
	ExecutiveSponsorID *string    `json:"executive_sponsor_id"`
}

func (r AccountRequest) status() datatypes.HealthStatus {
	if r.Status == "" {
		return datatypes.StatusForScore(r.HealthScore)
	}
	return datatypes.HealthStatus(r.Status)
}

// HandleListAccounts serves GET /v1/accounts.
func HandleListAccounts(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := accountTracer.Start(c.Request.Context(), "HandleListAccounts")
		defer span.End()

		accounts, err := st.ListAccounts(ctx)
		if err != nil {
			slog.Error("Failed to list accounts", "error", err)
			span.RecordError(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list accounts"})
			return
		}
		if accounts == nil {
			accounts = []datatypes.Account{}
		}
		c.JSON(http.StatusOK, gin.H{"accounts": accounts})
	}
}

// HandleGetAccount serves GET /v1/accounts/:id.
func HandleGetAccount(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := accountTracer.Start(c.Request.Context(), "HandleGetAccount")
		defer span.End()

		account, err := st.GetAccount(ctx, c.Param("id"))
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
			return
		}
		if err != nil {
			slog.Error("Failed to get account", "account_id", c.Param("id"), "error", err)
			span.RecordError(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get account"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"account": account})
	}
}

// HandleCreateAccount serves POST /v1/accounts. When status is omitted
// it is derived from the health score.
func HandleCreateAccount(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := accountTracer.Start(c.Request.Context(), "HandleCreateAccount")
		defer span.End()

		var req AccountRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid account payload: " + err.Error()})
			return
		}

		now := time.Now().UTC()
		account := datatypes.Account{
			ID:                 uuid.NewString(),
			Name:               req.Name,
			ARRThousands:       req.ARRThousands,
			HealthScore:        req.HealthScore,
			Status:             req.status(),
			SubscriptionEnd:    req.SubscriptionEnd,
			AccountManagerID:   req.AccountManagerID,
			ExecutiveSponsorID: req.ExecutiveSponsorID,
			CreatedAt:          now,
			UpdatedAt:          now,
		}
		if err := st.CreateAccount(ctx, account); err != nil {
			slog.Error("Failed to create account", "error", err)
			span.RecordError(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
			return
		}
		slog.Info("Created account", "account_id", account.ID, "name", account.Name)
		c.JSON(http.StatusCreated, gin.H{"account": account})
	}
}

// HandleUpdateAccount serves PUT /v1/accounts/:id.
func HandleUpdateAccount(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := accountTracer.Start(c.Request.Context(), "HandleUpdateAccount")
		defer span.End()

		var req AccountRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid account payload: " + err.Error()})
			return
		}

		existing, err := st.GetAccount(ctx, c.Param("id"))
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
			return
		}
		if err != nil {
			slog.Error("Failed to load account for update", "account_id", c.Param("id"), "error", err)
			span.RecordError(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update account"})
			return
		}

		existing.Name = req.Name
		existing.ARRThousands = req.ARRThousands
		existing.HealthScore = req.HealthScore
		existing.Status = req.status()
		existing.SubscriptionEnd = req.SubscriptionEnd
		existing.AccountManagerID = req.AccountManagerID
		existing.ExecutiveSponsorID = req.ExecutiveSponsorID
		existing.UpdatedAt = time.Now().UTC()

		if err := st.UpdateAccount(ctx, existing); err != nil {
			slog.Error("Failed to update account", "account_id", existing.ID, "error", err)
			span.RecordError(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update account"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"account": existing})
	}
}

// HandleDeleteAccount serves DELETE /v1/accounts/:id. Snapshot history
// survives deletion so past periods still report the account.
func HandleDeleteAccount(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := accountTracer.Start(c.Request.Context(), "HandleDeleteAccount")
		defer span.End()

		err := st.DeleteAccount(ctx, c.Param("id"))
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
			return
		}
		if err != nil {
			slog.Error("Failed to delete account", "account_id", c.Param("id"), "error", err)
			span.RecordError(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete account"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "deleted"})
	}
}
