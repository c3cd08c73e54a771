// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/dateadvisor/models"
	"github.com/danielhkuo/dateadvisor/ranking"
	"github.com/danielhkuo/dateadvisor/testutil"
)

func TestGetEvent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewResultsHandler(db, cfg)

	eventID, _, shareSlug := testutil.CreateTestEvent(t, db, cfg, "open")
	testutil.AddTestOption(t, db, eventID, "2026-09-12")
	testutil.AddTestOption(t, db, eventID, "2026-09-19")

	t.Run("existing event", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/events/"+shareSlug, nil, nil)
		req.SetPathValue("slug", shareSlug)
		w := httptest.NewRecorder()

		handler.GetEvent(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.EventWithOptions
		testutil.AssertJSON(t, w, &resp)
		if resp.Event.ID != eventID {
			t.Errorf("Expected event ID %s, got %s", eventID, resp.Event.ID)
		}
		if len(resp.Options) != 2 {
			t.Errorf("Expected 2 options, got %d", len(resp.Options))
		}
	})

	t.Run("unknown slug", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/events/nope", nil, nil)
		req.SetPathValue("slug", "nope")
		w := httptest.NewRecorder()

		handler.GetEvent(w, req)

		testutil.AssertStatus(t, w, http.StatusNotFound)
	})
}

func TestGetRankings(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewResultsHandler(db, cfg)

	eventID, _, shareSlug := testutil.CreateTestEvent(t, db, cfg, "open")
	optionA := testutil.AddTestOption(t, db, eventID, "2026-09-12")
	optionB := testutil.AddTestOption(t, db, eventID, "2026-09-19")

	respondentID, _ := testutil.CreateTestRespondent(t, db, eventID, nil)
	testutil.SubmitTestResponse(t, db, eventID, respondentID, map[string]int{
		optionA: 4,
		optionB: 1,
	})

	t.Run("live rankings while open", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/events/"+shareSlug+"/rankings", nil, nil)
		req.SetPathValue("slug", shareSlug)
		w := httptest.NewRecorder()

		handler.GetRankings(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		var resp struct {
			Rankings      []models.OptionResult `json:"rankings"`
			ResponseCount int                   `json:"response_count"`
			Final         bool                  `json:"final"`
		}
		testutil.AssertJSON(t, w, &resp)

		if resp.Final {
			t.Error("Expected final=false for open event")
		}
		if resp.ResponseCount != 1 {
			t.Errorf("Expected response_count 1, got %d", resp.ResponseCount)
		}
		if len(resp.Rankings) != 2 {
			t.Fatalf("Expected 2 ranked options, got %d", len(resp.Rankings))
		}
		if resp.Rankings[0].OptionID != optionA {
			t.Errorf("Expected %s ranked first, got %s", optionA, resp.Rankings[0].OptionID)
		}
		if resp.Rankings[0].Label != ranking.LabelBestOverall {
			t.Errorf("Expected best_overall label, got %s", resp.Rankings[0].Label)
		}
		if resp.Rankings[0].Badge == nil {
			t.Error("Expected a badge on the best option")
		}
	})

	t.Run("draft event conflicts", func(t *testing.T) {
		// Draft events have no slug, so fake one directly
		draftID, _, _ := testutil.CreateTestEvent(t, db, cfg, "draft")
		if _, err := db.Exec(`UPDATE event SET share_slug = 'draft-slug' WHERE id = $1`, draftID); err != nil {
			t.Fatalf("Failed to set slug: %v", err)
		}

		req := testutil.MakeRequest("GET", "/events/draft-slug/rankings", nil, nil)
		req.SetPathValue("slug", "draft-slug")
		w := httptest.NewRecorder()

		handler.GetRankings(w, req)

		testutil.AssertStatus(t, w, http.StatusConflict)
	})

	t.Run("unknown slug", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/events/nope/rankings", nil, nil)
		req.SetPathValue("slug", "nope")
		w := httptest.NewRecorder()

		handler.GetRankings(w, req)

		testutil.AssertStatus(t, w, http.StatusNotFound)
	})
}

func TestGetRankings_SealedAfterClose(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	eventHandler := NewEventHandler(db, cfg)
	resultsHandler := NewResultsHandler(db, cfg)

	eventID, adminKey, shareSlug := testutil.CreateTestEvent(t, db, cfg, "open")
	optionA := testutil.AddTestOption(t, db, eventID, "2026-09-12")
	optionB := testutil.AddTestOption(t, db, eventID, "2026-09-19")

	respondentID, _ := testutil.CreateTestRespondent(t, db, eventID, nil)
	testutil.SubmitTestResponse(t, db, eventID, respondentID, map[string]int{
		optionA: 2,
		optionB: 3,
	})

	// Close the event to seal the snapshot
	closeReq := testutil.MakeRequest("POST", "/events/"+eventID+"/close", nil,
		map[string]string{"X-Admin-Key": adminKey})
	closeReq.SetPathValue("id", eventID)
	closeW := httptest.NewRecorder()
	eventHandler.CloseEvent(closeW, closeReq)
	testutil.AssertStatus(t, closeW, http.StatusOK)

	// A late response bypassing the API must not change sealed results
	lateRespondent, _ := testutil.CreateTestRespondent(t, db, eventID, nil)
	testutil.SubmitTestResponse(t, db, eventID, lateRespondent, map[string]int{
		optionA: 4,
		optionB: -1,
	})

	req := testutil.MakeRequest("GET", "/events/"+shareSlug+"/rankings", nil, nil)
	req.SetPathValue("slug", shareSlug)
	w := httptest.NewRecorder()

	resultsHandler.GetRankings(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp struct {
		Rankings []models.OptionResult `json:"rankings"`
		Final    bool                  `json:"final"`
	}
	testutil.AssertJSON(t, w, &resp)

	if !resp.Final {
		t.Error("Expected final=true for closed event")
	}
	if len(resp.Rankings) != 2 {
		t.Fatalf("Expected 2 ranked options, got %d", len(resp.Rankings))
	}
	// The snapshot still reflects the pre-close responses where B won
	if resp.Rankings[0].OptionID != optionB {
		t.Errorf("Expected sealed winner %s, got %s", optionB, resp.Rankings[0].OptionID)
	}
}

func TestGetPreview(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewResultsHandler(db, cfg)

	eventID, _, shareSlug := testutil.CreateTestEvent(t, db, cfg, "open")
	optionA := testutil.AddTestOption(t, db, eventID, "2026-09-12")
	testutil.AddTestOption(t, db, eventID, "2026-09-19")

	t.Run("no responses yet", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/events/"+shareSlug+"/preview", nil, nil)
		req.SetPathValue("slug", shareSlug)
		w := httptest.NewRecorder()

		handler.GetPreview(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.EventPreviewResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.OptionCount != 2 {
			t.Errorf("Expected option_count 2, got %d", resp.OptionCount)
		}
		if resp.ResponseCount != 0 {
			t.Errorf("Expected response_count 0, got %d", resp.ResponseCount)
		}
		if resp.LastActivity != "" {
			t.Errorf("Expected empty last_activity, got '%s'", resp.LastActivity)
		}
	})

	t.Run("with responses", func(t *testing.T) {
		respondentID, _ := testutil.CreateTestRespondent(t, db, eventID, nil)
		testutil.SubmitTestResponse(t, db, eventID, respondentID, map[string]int{optionA: 2})

		req := testutil.MakeRequest("GET", "/events/"+shareSlug+"/preview", nil, nil)
		req.SetPathValue("slug", shareSlug)
		w := httptest.NewRecorder()

		handler.GetPreview(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.EventPreviewResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.ResponseCount != 1 {
			t.Errorf("Expected response_count 1, got %d", resp.ResponseCount)
		}
		if resp.LastActivity == "" {
			t.Error("Expected a last_activity description")
		}
	})

	t.Run("unknown slug", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/events/nope/preview", nil, nil)
		req.SetPathValue("slug", "nope")
		w := httptest.NewRecorder()

		handler.GetPreview(w, req)

		testutil.AssertStatus(t, w, http.StatusNotFound)
	})
}
