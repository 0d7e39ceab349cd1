// Copyright (C) 2026 Win Room Dashboard contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Tests for winroom.go handlers

package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/sgericke98/winroom-dashboard/services/dashboard/datatypes"
	"github.com/sgericke98/winroom-dashboard/services/dashboard/store"
)

func winroomRouter(st store.Store) *gin.Engine {
	router := gin.New()
	router.GET("/v1/winroom", HandleListWinRoomEvents(st))
	router.POST("/v1/winroom", HandleCreateWinRoomEvent(st))
	return router
}

func TestHandleCreateWinRoomEvent_WithCapture(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	if err := mem.CreateAccount(ctx, datatypes.Account{
		ID: "a1", Name: "First National", ARRThousands: 400, Status: datatypes.StatusRed,
	}); err != nil {
		t.Fatal(err)
	}
	if err := mem.CreateActivity(ctx, datatypes.Activity{
		ID: "t1", AccountID: "a1", Title: "Exec call", Status: datatypes.ActivityInProgress,
	}); err != nil {
		t.Fatal(err)
	}

	router := winroomRouter(mem)
	body := `{"account_id": "a1", "outcome": "Escalated to exec sponsor", "capture": true}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/winroom", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, expected 201, body: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Event datatypes.WinRoomEvent `json:"event"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Event.Snapshot == nil {
		t.Fatal("expected embedded snapshot, got nil")
	}
	if resp.Event.Snapshot.Version != datatypes.AccountSnapshotVersion {
		t.Errorf("snapshot version = %d, expected %d", resp.Event.Snapshot.Version, datatypes.AccountSnapshotVersion)
	}
	if resp.Event.Snapshot.Account.Name != "First National" {
		t.Errorf("snapshot account = %q, expected First National", resp.Event.Snapshot.Account.Name)
	}
	if len(resp.Event.Snapshot.Activities) != 1 {
		t.Errorf("snapshot activities = %d, expected 1", len(resp.Event.Snapshot.Activities))
	}
}

func TestHandleCreateWinRoomEvent_WithoutCaptureIsLegacy(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	if err := mem.CreateAccount(ctx, datatypes.Account{
		ID: "a1", Name: "First National", Status: datatypes.StatusYellow,
	}); err != nil {
		t.Fatal(err)
	}

	router := winroomRouter(mem)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/winroom",
		bytes.NewBufferString(`{"account_id": "a1"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, expected 201, body: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Event datatypes.WinRoomEvent `json:"event"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Event.Legacy() {
		t.Error("event without capture should report Legacy() = true")
	}
}

func TestHandleCreateWinRoomEvent_UnknownAccount(t *testing.T) {
	router := winroomRouter(store.NewMemory())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/winroom",
		bytes.NewBufferString(`{"account_id": "ghost"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, expected 404", w.Code)
	}
}
