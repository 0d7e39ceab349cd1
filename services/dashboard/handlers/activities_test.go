// Copyright (C) 2026 Win Room Dashboard contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Tests for activities.go handlers

package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sgericke98/winroom-dashboard/services/dashboard/datatypes"
	"github.com/sgericke98/winroom-dashboard/services/dashboard/store"
)

func activitiesRouter(st store.Store) *gin.Engine {
	router := gin.New()
	router.GET("/v1/activities", HandleListActivities(st))
	router.POST("/v1/activities", HandleCreateActivity(st))
	router.PATCH("/v1/activities/:id", HandleUpdateActivity(st))
	return router
}

func seedActivityAccount(t *testing.T, mem *store.Memory) {
	t.Helper()
	err := mem.CreateAccount(context.Background(), datatypes.Account{
		ID: "a1", Name: "First National", Status: datatypes.StatusRed,
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestHandleCreateActivity_DefaultsToNotStarted(t *testing.T) {
	mem := store.NewMemory()
	seedActivityAccount(t, mem)
	router := activitiesRouter(mem)

	body := `{"account_id": "a1", "title": "Schedule exec call"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/activities", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, expected 201, body: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Activity datatypes.Activity `json:"activity"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Activity.Status != datatypes.ActivityNotStarted {
		t.Errorf("status = %q, expected %q", resp.Activity.Status, datatypes.ActivityNotStarted)
	}
}

func TestHandleCreateActivity_UnknownAccount(t *testing.T) {
	router := activitiesRouter(store.NewMemory())

	body := `{"account_id": "ghost", "title": "Anything"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/activities", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, expected 404", w.Code)
	}
}

func TestHandleListActivities_AttentionFilter(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	seedActivityAccount(t, mem)
	now := time.Now().UTC()
	farOut := now.AddDate(0, 0, 60)

	if err := mem.CreateActivity(ctx, datatypes.Activity{
		ID: "t1", AccountID: "a1", Title: "Overdue remediation",
		Status: datatypes.ActivityNotStarted,
	}); err != nil {
		t.Fatal(err)
	}
	if err := mem.CreateActivity(ctx, datatypes.Activity{
		ID: "t2", AccountID: "a1", Title: "Far-future review",
		Status: datatypes.ActivityInProgress, DueDate: &farOut,
	}); err != nil {
		t.Fatal(err)
	}

	router := activitiesRouter(mem)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/activities?attention=true", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200", w.Code)
	}
	var resp struct {
		Activities []datatypes.Activity `json:"activities"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Activities) != 1 || resp.Activities[0].ID != "t1" {
		t.Errorf("attention filter returned %+v, expected only t1", resp.Activities)
	}
}

func TestHandleUpdateActivity_PartialUpdate(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	seedActivityAccount(t, mem)
	if err := mem.CreateActivity(ctx, datatypes.Activity{
		ID: "t1", AccountID: "a1", Title: "Exec call", Status: datatypes.ActivityInProgress,
	}); err != nil {
		t.Fatal(err)
	}

	router := activitiesRouter(mem)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/v1/activities/t1",
		bytes.NewBufferString(`{"status": "Completed"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200, body: %s", w.Code, w.Body.String())
	}
	got, err := mem.GetActivity(ctx, "t1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != datatypes.ActivityCompleted {
		t.Errorf("status = %q, expected Completed", got.Status)
	}
	if got.Title != "Exec call" {
		t.Errorf("title = %q, expected unchanged", got.Title)
	}
}
