// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/dateadvisor/auth"
	"github.com/danielhkuo/dateadvisor/cliparse"
	"github.com/danielhkuo/dateadvisor/middleware"
	"github.com/danielhkuo/dateadvisor/models"
)

type RespondentHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewRespondentHandler(db *sql.DB, cfg cliparse.Config) *RespondentHandler {
	return &RespondentHandler{db: db, cfg: cfg}
}

// ClaimRespondent handles POST /events/:slug/respondents
// Registers a respondent for an event and returns their token. When the
// request carries an X-Identity-Key and that identity already has a
// respondent on the event, the existing one is returned instead of a
// duplicate being created.
func (h *RespondentHandler) ClaimRespondent(w http.ResponseWriter, r *http.Request) {
	shareSlug := r.PathValue("slug")
	if shareSlug == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "slug is required")
		return
	}

	// Parse request
	var req models.ClaimRespondentRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := models.ValidateRequest(req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	// Find event by share slug
	var eventID string
	var status string
	err := h.db.QueryRow(`
		SELECT id, status FROM event WHERE share_slug = $1
	`, shareSlug).Scan(&eventID, &status)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Event not found")
		return
	}
	if err != nil {
		slog.Error("failed to query event", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	// Can only join open events
	if status != models.StatusOpen {
		middleware.ErrorResponse(w, http.StatusConflict, "Event is not open")
		return
	}

	// Resolve the caller's identity, if any
	identityID, err := GetOrCreateIdentity(h.db, r)
	if err != nil {
		slog.Warn("failed to get/create identity", "error", err)
		// Non-fatal: respondent can still be created without identity linking
		identityID = ""
	}

	// An identity gets at most one respondent per event
	if identityID != "" {
		var existingID, existingToken string
		err := h.db.QueryRow(`
			SELECT id, token FROM respondent
			WHERE event_id = $1 AND identity_id = $2
		`, eventID, identityID).Scan(&existingID, &existingToken)

		if err == nil {
			slog.Info("respondent claim reused", "event_id", eventID, "respondent_id", existingID)
			middleware.JSONResponse(w, http.StatusOK, models.ClaimRespondentResponse{
				RespondentID:    existingID,
				RespondentToken: existingToken,
				IsNew:           false,
			})
			return
		}
		if err != sql.ErrNoRows {
			slog.Error("failed to query respondent", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
	}

	// Generate respondent token
	token, err := auth.GenerateRespondentToken()
	if err != nil {
		slog.Error("failed to generate respondent token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register respondent")
		return
	}

	respondentID := uuid.NewString()

	var identity *string
	if identityID != "" {
		identity = &identityID
	}

	_, err = h.db.Exec(`
		INSERT INTO respondent (id, event_id, name, identity_id, token, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, respondentID, eventID, req.Name, identity, token, time.Now())

	if err != nil {
		slog.Error("failed to insert respondent", "error", err, "event_id", eventID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register respondent")
		return
	}

	slog.Info("respondent registered", "event_id", eventID, "respondent_id", respondentID)

	middleware.JSONResponse(w, http.StatusCreated, models.ClaimRespondentResponse{
		RespondentID:    respondentID,
		RespondentToken: token,
		IsNew:           true,
	})
}

// SubmitResponse handles PUT /events/:slug/response
// Replaces the caller's full set of preference entries. Submitting again
// overwrites the previous response.
func (h *RespondentHandler) SubmitResponse(w http.ResponseWriter, r *http.Request) {
	shareSlug := r.PathValue("slug")
	if shareSlug == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "slug is required")
		return
	}

	// Get respondent token from header
	token := r.Header.Get("X-Respondent-Token")
	if token == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-Respondent-Token header required")
		return
	}

	// Parse request
	var req models.SubmitResponseRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := models.ValidateRequest(req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	// Reject duplicate option references up front
	seen := make(map[string]bool)
	for _, sel := range req.Selections {
		if seen[sel.OptionID] {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Duplicate option_id: "+sel.OptionID)
			return
		}
		seen[sel.OptionID] = true
	}

	// Find event by share slug
	var eventID string
	var status string
	err := h.db.QueryRow(`
		SELECT id, status FROM event WHERE share_slug = $1
	`, shareSlug).Scan(&eventID, &status)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Event not found")
		return
	}
	if err != nil {
		slog.Error("failed to query event", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	// Can only answer open events
	if status != models.StatusOpen {
		middleware.ErrorResponse(w, http.StatusConflict, "Event is not open")
		return
	}

	// Verify respondent token is valid for this event
	var respondentID string
	err = h.db.QueryRow(`
		SELECT id FROM respondent
		WHERE event_id = $1 AND token = $2
	`, eventID, token).Scan(&respondentID)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid respondent token for this event")
		return
	}
	if err != nil {
		slog.Error("failed to verify respondent token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	// Get all valid option IDs for this event
	rows, err := h.db.Query(`
		SELECT id FROM option WHERE event_id = $1
	`, eventID)
	if err != nil {
		slog.Error("failed to query options", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	validOptions := make(map[string]bool)
	for rows.Next() {
		var optionID string
		if err := rows.Scan(&optionID); err != nil {
			slog.Error("failed to scan option", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		validOptions[optionID] = true
	}

	// Verify all submitted selections are for valid options
	for _, sel := range req.Selections {
		if !validOptions[sel.OptionID] {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid option_id: "+sel.OptionID)
			return
		}
	}

	// Get IP hash for tracking
	clientIP := middleware.GetClientIP(r)
	ipHash := auth.HashIP(clientIP, h.cfg.AdminKeySalt) // Reuse admin salt for IP hashing
	userAgent := r.UserAgent()

	// Begin transaction for UPSERT
	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	// Check if response already exists
	var existingResponseID string
	err = tx.QueryRow(`
		SELECT id FROM response WHERE event_id = $1 AND respondent_id = $2
	`, eventID, respondentID).Scan(&existingResponseID)

	isUpdate := err != sql.ErrNoRows
	var responseID string

	if isUpdate {
		// Update existing response
		responseID = existingResponseID
		_, err = tx.Exec(`
			UPDATE response
			SET submitted_at = $1, ip_hash = $2, user_agent = $3
			WHERE id = $4
		`, time.Now(), ipHash, userAgent, responseID)

		if err != nil {
			slog.Error("failed to update response", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update response")
			return
		}

		// Delete old selections
		_, err = tx.Exec(`DELETE FROM selected_option WHERE response_id = $1`, responseID)
		if err != nil {
			slog.Error("failed to delete old selections", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update response")
			return
		}
	} else {
		// Create new response
		responseID = uuid.NewString()
		_, err = tx.Exec(`
			INSERT INTO response (id, event_id, respondent_id, submitted_at, ip_hash, user_agent)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, responseID, eventID, respondentID, time.Now(), ipHash, userAgent)

		if err != nil {
			slog.Error("failed to insert response", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit response")
			return
		}
	}

	// Insert selections
	for _, sel := range req.Selections {
		uncertain := 0
		if sel.Uncertain {
			uncertain = 1
		}
		_, err = tx.Exec(`
			INSERT INTO selected_option (response_id, option_id, preference, uncertain)
			VALUES ($1, $2, $3, $4)
		`, responseID, sel.OptionID, sel.Preference, uncertain)

		if err != nil {
			slog.Error("failed to insert selection", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save selections")
			return
		}
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit response")
		return
	}

	message := "Response submitted successfully"
	statusCode := http.StatusCreated
	if isUpdate {
		message = "Response updated successfully"
		statusCode = http.StatusOK
	}

	slog.Info("response submitted", "event_id", eventID, "response_id", responseID, "is_update", isUpdate)

	middleware.JSONResponse(w, statusCode, models.SubmitResponseResponse{
		ResponseID: responseID,
		Message:    message,
	})
}

// GetMyResponse handles GET /events/:slug/my-response
// Returns the caller's current response so clients can prefill edits.
func (h *RespondentHandler) GetMyResponse(w http.ResponseWriter, r *http.Request) {
	shareSlug := r.PathValue("slug")
	if shareSlug == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "slug is required")
		return
	}

	token := r.Header.Get("X-Respondent-Token")
	if token == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-Respondent-Token header required")
		return
	}

	// Find event by share slug
	var eventID string
	err := h.db.QueryRow(`
		SELECT id FROM event WHERE share_slug = $1
	`, shareSlug).Scan(&eventID)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Event not found")
		return
	}
	if err != nil {
		slog.Error("failed to query event", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	// Verify respondent token
	var respondentID string
	err = h.db.QueryRow(`
		SELECT id FROM respondent
		WHERE event_id = $1 AND token = $2
	`, eventID, token).Scan(&respondentID)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid respondent token for this event")
		return
	}
	if err != nil {
		slog.Error("failed to verify respondent token", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	// Find their response
	var myResponse models.MyResponse
	err = h.db.QueryRow(`
		SELECT id, submitted_at FROM response
		WHERE event_id = $1 AND respondent_id = $2
	`, eventID, respondentID).Scan(&myResponse.ResponseID, &myResponse.SubmittedAt)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "No response submitted yet")
		return
	}
	if err != nil {
		slog.Error("failed to query response", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	// Load selections
	rows, err := h.db.Query(`
		SELECT option_id, preference, uncertain
		FROM selected_option
		WHERE response_id = $1
		ORDER BY option_id
	`, myResponse.ResponseID)
	if err != nil {
		slog.Error("failed to query selections", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	myResponse.Selections = []models.SelectionInput{}
	for rows.Next() {
		var sel models.SelectionInput
		var uncertain int
		if err := rows.Scan(&sel.OptionID, &sel.Preference, &uncertain); err != nil {
			slog.Error("failed to scan selection", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		sel.Uncertain = uncertain != 0
		myResponse.Selections = append(myResponse.Selections, sel)
	}

	middleware.JSONResponse(w, http.StatusOK, myResponse)
}
