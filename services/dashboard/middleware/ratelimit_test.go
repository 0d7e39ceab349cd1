// Copyright (C) 2026 Win Room Dashboard contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Tests for ratelimit.go

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestRateLimitMiddleware_RejectsBeyondBurst(t *testing.T) {
	router := gin.New()
	// Near-zero refill so only the burst allowance passes.
	router.Use(RateLimitMiddleware(0.001, 2))
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		router.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Errorf("burst requests got %v, expected first two to pass", codes)
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Errorf("third request got %d, expected 429", codes[2])
	}
}

func TestRateLimitMiddleware_BudgetsArePerClient(t *testing.T) {
	router := gin.New()
	router.Use(RateLimitMiddleware(0.001, 1))
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	send := func(addr string) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = addr
		router.ServeHTTP(w, req)
		return w.Code
	}

	// First client burns its whole budget.
	if code := send("10.0.0.1:5000"); code != http.StatusOK {
		t.Fatalf("first request from client 1 got %d, expected 200", code)
	}
	if code := send("10.0.0.1:5000"); code != http.StatusTooManyRequests {
		t.Errorf("second request from client 1 got %d, expected 429", code)
	}

	// A different client still has a fresh budget.
	if code := send("10.0.0.2:5000"); code != http.StatusOK {
		t.Errorf("first request from client 2 got %d, expected 200", code)
	}
}

func TestRateLimitMiddleware_KeysByBearerToken(t *testing.T) {
	router := gin.New()
	router.Use(RateLimitMiddleware(0.001, 1))
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	send := func(token string) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)
		return w.Code
	}

	// Same source IP throughout; the token distinguishes the clients.
	if code := send("alpha"); code != http.StatusOK {
		t.Fatalf("first request with token alpha got %d, expected 200", code)
	}
	if code := send("alpha"); code != http.StatusTooManyRequests {
		t.Errorf("second request with token alpha got %d, expected 429", code)
	}
	if code := send("beta"); code != http.StatusOK {
		t.Errorf("first request with token beta got %d, expected 200", code)
	}
}
