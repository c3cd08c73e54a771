// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/dateadvisor/models"
	"github.com/danielhkuo/dateadvisor/testutil"
)

func TestRegisterIdentity(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewIdentityHandler(db, cfg)

	headers := map[string]string{"X-Identity-Key": "device-uuid-1"}

	t.Run("new identity", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/identities/register",
			models.RegisterIdentityRequest{Platform: models.PlatformIOS}, headers)
		w := httptest.NewRecorder()

		handler.Register(w, req)

		testutil.AssertStatus(t, w, http.StatusCreated)

		var resp models.RegisterIdentityResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.IdentityID == "" {
			t.Error("Expected non-empty identity_id")
		}
		if !resp.IsNew {
			t.Error("Expected is_new true")
		}
	})

	t.Run("existing identity", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/identities/register",
			models.RegisterIdentityRequest{Platform: models.PlatformIOS}, headers)
		w := httptest.NewRecorder()

		handler.Register(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.RegisterIdentityResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.IsNew {
			t.Error("Expected is_new false for repeat registration")
		}
	})

	t.Run("missing header", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/identities/register",
			models.RegisterIdentityRequest{Platform: models.PlatformIOS}, nil)
		w := httptest.NewRecorder()

		handler.Register(w, req)

		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("invalid platform", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/identities/register",
			models.RegisterIdentityRequest{Platform: "vms"}, headers)
		w := httptest.NewRecorder()

		handler.Register(w, req)

		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})
}

func TestGetMe(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewIdentityHandler(db, cfg)

	headers := map[string]string{"X-Identity-Key": "device-uuid-2"}

	t.Run("not registered", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/identities/me", nil, headers)
		w := httptest.NewRecorder()

		handler.GetMe(w, req)

		testutil.AssertStatus(t, w, http.StatusNotFound)
	})

	t.Run("registered", func(t *testing.T) {
		regReq := testutil.MakeRequest("POST", "/identities/register",
			models.RegisterIdentityRequest{Platform: models.PlatformMacOS}, headers)
		regW := httptest.NewRecorder()
		handler.Register(regW, regReq)
		testutil.AssertStatus(t, regW, http.StatusCreated)

		req := testutil.MakeRequest("GET", "/identities/me", nil, headers)
		w := httptest.NewRecorder()

		handler.GetMe(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.IdentityInfo
		testutil.AssertJSON(t, w, &resp)
		if resp.Platform != models.PlatformMacOS {
			t.Errorf("Expected platform macos, got %s", resp.Platform)
		}
	})
}

func TestGetMyEvents(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	identityHandler := NewIdentityHandler(db, cfg)
	respondentHandler := NewRespondentHandler(db, cfg)

	headers := map[string]string{"X-Identity-Key": "device-uuid-3"}

	// Claim a respondent on an open event with this identity
	_, _, shareSlug := testutil.CreateTestEvent(t, db, cfg, "open")
	name := "Carol"
	claimReq := testutil.MakeRequest("POST", "/events/"+shareSlug+"/respondents",
		models.ClaimRespondentRequest{Name: &name}, headers)
	claimReq.SetPathValue("slug", shareSlug)
	claimW := httptest.NewRecorder()
	respondentHandler.ClaimRespondent(claimW, claimReq)
	testutil.AssertStatus(t, claimW, http.StatusCreated)

	t.Run("lists joined events", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/identities/my-events", nil, headers)
		w := httptest.NewRecorder()

		identityHandler.GetMyEvents(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.GetMyEventsResponse
		testutil.AssertJSON(t, w, &resp)
		if len(resp.Events) != 1 {
			t.Fatalf("Expected 1 event, got %d", len(resp.Events))
		}

		summary := resp.Events[0]
		if summary.Status != models.StatusOpen {
			t.Errorf("Expected status open, got %s", summary.Status)
		}
		if summary.RespondentName == nil || *summary.RespondentName != "Carol" {
			t.Error("Expected respondent name Carol")
		}
		if summary.ShareSlug == nil || *summary.ShareSlug != shareSlug {
			t.Error("Expected share slug on summary")
		}
	})

	t.Run("unknown identity", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/identities/my-events", nil,
			map[string]string{"X-Identity-Key": "never-seen"})
		w := httptest.NewRecorder()

		identityHandler.GetMyEvents(w, req)

		testutil.AssertStatus(t, w, http.StatusNotFound)
	})
}
