// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/dateadvisor/auth"
	"github.com/danielhkuo/dateadvisor/cliparse"
	"github.com/danielhkuo/dateadvisor/db"
)

// SetupTestDB creates a fresh in-memory database with the full schema.
// Each call gets its own database; it disappears when the connection closes.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// A second connection would see a different empty :memory: database
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          3319,
		DatabaseURL:   ":memory:",
		DatabaseType:  "sqlite",
		AdminKeySalt:  "test-admin-salt",
		EventSlugSalt: "test-slug-salt",
	}
}

// CreateTestEvent creates an event in the database and returns its ID and admin key
// status should be "draft", "open", or "closed"
func CreateTestEvent(t *testing.T, conn *sql.DB, cfg cliparse.Config, status string) (eventID, adminKey, shareSlug string) {
	t.Helper()

	eventID, _ = auth.GenerateID(16)
	adminKey = auth.GenerateAdminKey(eventID, cfg.AdminKeySalt)

	var slug *string
	if status == "open" || status == "closed" {
		s := auth.GenerateShareSlug(eventID, cfg.EventSlugSalt)
		slug = &s
		shareSlug = s
	}

	var closedAt *time.Time
	if status == "closed" {
		now := time.Now()
		closedAt = &now
	}

	_, err := conn.Exec(`
		INSERT INTO event (id, title, description, creator_name, status, share_slug, closed_at, created_at)
		VALUES ($1, 'Test Event', 'A test event', 'TestUser', $2, $3, $4, $5)
	`, eventID, status, slug, closedAt, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test event: %v", err)
	}

	return eventID, adminKey, shareSlug
}

// AddTestOption adds a candidate date to an event and returns the option ID
func AddTestOption(t *testing.T, conn *sql.DB, eventID, date string) string {
	t.Helper()

	optionID, _ := auth.GenerateID(12)
	_, err := conn.Exec(`
		INSERT INTO option (id, event_id, option_date)
		VALUES ($1, $2, $3)
	`, optionID, eventID, date)
	if err != nil {
		t.Fatalf("Failed to create test option: %v", err)
	}

	return optionID
}

// CreateTestRespondent registers a respondent for an event and returns their
// ID and token
func CreateTestRespondent(t *testing.T, conn *sql.DB, eventID string, name *string) (respondentID, token string) {
	t.Helper()

	respondentID = uuid.NewString()
	token, _ = auth.GenerateRespondentToken()
	_, err := conn.Exec(`
		INSERT INTO respondent (id, event_id, name, token, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, respondentID, eventID, name, token, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test respondent: %v", err)
	}

	return respondentID, token
}

// SubmitTestResponse creates a response with preference entries for a respondent.
// preferences maps option ID to preference value; all entries are certain.
func SubmitTestResponse(t *testing.T, conn *sql.DB, eventID, respondentID string, preferences map[string]int) string {
	t.Helper()

	responseID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO response (id, event_id, respondent_id, submitted_at)
		VALUES ($1, $2, $3, $4)
	`, responseID, eventID, respondentID, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test response: %v", err)
	}

	for optionID, value := range preferences {
		_, err := conn.Exec(`
			INSERT INTO selected_option (response_id, option_id, preference, uncertain)
			VALUES ($1, $2, $3, 0)
		`, responseID, optionID, value)
		if err != nil {
			t.Fatalf("Failed to create test selection: %v", err)
		}
	}

	return responseID
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
