// Copyright (C) 2026 Win Room Dashboard contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package middleware provides HTTP middleware for the dashboard service.
//
// # Authentication Flow
//
// The auth middleware extracts a bearer token from the Authorization
// header, validates it with the configured TokenValidator, and stores
// the resulting user ID in the Gin context for downstream handlers.
//
// When no token is configured (local development), StaticTokenValidator("")
// accepts every request as "local-user".
package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// =============================================================================
// Token Validation
// =============================================================================

// ErrUnauthorized is returned by a TokenValidator when the presented
// token is missing or wrong.
var ErrUnauthorized = errors.New("unauthorized")

// TokenValidator checks a bearer token and returns the user ID it
// belongs to.
type TokenValidator func(ctx context.Context, token string) (string, error)

// StaticTokenValidator validates against a single shared token. An
// empty expected token disables authentication and attributes every
// request to "local-user", which keeps local development frictionless.
func StaticTokenValidator(expected string) TokenValidator {
	return func(_ context.Context, token string) (string, error) {
		if expected == "" {
			return "local-user", nil
		}
		if token != expected {
			return "", ErrUnauthorized
		}
		return "dashboard-user", nil
	}
}

// =============================================================================
// Context Helpers
// =============================================================================

// userIDKey is the context key for the authenticated user ID.
const userIDKey = "winroom_user_id"

// SetUserID stores the authenticated user ID in the Gin context.
func SetUserID(c *gin.Context, userID string) {
	c.Set(userIDKey, userID)
}

// GetUserID retrieves the authenticated user ID, or "" when the request
// was not authenticated.
func GetUserID(c *gin.Context) string {
	if v, exists := c.Get(userIDKey); exists {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

// =============================================================================
// Auth Middleware
// =============================================================================

// AuthMiddleware creates a Gin middleware that authenticates requests
// with the given validator. Failures abort with 401.
func AuthMiddleware(validate TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearerToken(c)

		userID, err := validate(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, ErrUnauthorized) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error": "unauthorized",
				})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "authentication failed",
			})
			return
		}

		SetUserID(c, userID)
		c.Next()
	}
}

// extractBearerToken parses "Authorization: Bearer <token>". The prefix
// is case-insensitive per RFC 7235; missing or malformed headers yield
// an empty token.
func extractBearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
