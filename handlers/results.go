// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/dateadvisor/cliparse"
	"github.com/danielhkuo/dateadvisor/middleware"
	"github.com/danielhkuo/dateadvisor/models"
)

type ResultsHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewResultsHandler(db *sql.DB, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{db: db, cfg: cfg}
}

// GetEvent handles GET /events/:slug
// Returns event details and candidate dates for anyone with the share link.
func (h *ResultsHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	shareSlug := r.PathValue("slug")
	if shareSlug == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "slug is required")
		return
	}

	// Get event by share slug
	var event models.Event
	err := h.db.QueryRow(`
		SELECT id, title, description, creator_name, method, status,
		       share_slug, closes_at, closed_at, final_snapshot_id, created_at
		FROM event
		WHERE share_slug = $1
	`, shareSlug).Scan(
		&event.ID, &event.Title, &event.Description, &event.CreatorName,
		&event.Method, &event.Status, &event.ShareSlug, &event.ClosesAt,
		&event.ClosedAt, &event.FinalSnapshotID, &event.CreatedAt,
	)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Event not found")
		return
	}
	if err != nil {
		slog.Error("failed to query event", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	options, err := loadEventOptions(h.db, event.ID)
	if err != nil {
		slog.Error("failed to query options", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	response := models.EventWithOptions{
		Event:   event,
		Options: options,
	}

	middleware.JSONResponse(w, http.StatusOK, response)
}

// GetRankings handles GET /events/:slug/rankings
// While the event is open the rankings are computed live from current
// responses. Once closed, the sealed final snapshot is served instead.
func (h *ResultsHandler) GetRankings(w http.ResponseWriter, r *http.Request) {
	shareSlug := r.PathValue("slug")
	if shareSlug == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "slug is required")
		return
	}

	var eventID, status string
	var snapshotID sql.NullString
	err := h.db.QueryRow(`
		SELECT id, status, final_snapshot_id
		FROM event
		WHERE share_slug = $1
	`, shareSlug).Scan(&eventID, &status, &snapshotID)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Event not found")
		return
	}
	if err != nil {
		slog.Error("failed to query event", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if status == models.StatusDraft {
		middleware.ErrorResponse(w, http.StatusConflict, "Event is not published")
		return
	}

	if status == models.StatusClosed {
		h.serveFinalSnapshot(w, eventID, snapshotID)
		return
	}

	// Live computation for open events
	results, responseCount, err := ComputeEventRankings(h.db, eventID)
	if err != nil {
		slog.Error("failed to compute rankings", "error", err, "event_id", eventID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to compute rankings")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]interface{}{
		"rankings":       results,
		"response_count": responseCount,
		"final":          false,
	})
}

// serveFinalSnapshot returns the sealed rankings of a closed event.
func (h *ResultsHandler) serveFinalSnapshot(w http.ResponseWriter, eventID string, snapshotID sql.NullString) {
	if !snapshotID.Valid {
		slog.Error("closed event has no snapshot", "event_id", eventID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Results not available")
		return
	}

	var payloadJSON []byte
	err := h.db.QueryRow(`
		SELECT payload FROM result_snapshot WHERE id = $1
	`, snapshotID.String).Scan(&payloadJSON)

	if err != nil {
		slog.Error("failed to query snapshot", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	var payload snapshotPayload
	if err := json.Unmarshal(payloadJSON, &payload); err != nil {
		slog.Error("failed to parse snapshot payload", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to parse results")
		return
	}

	var responseCount int
	err = h.db.QueryRow(`
		SELECT COUNT(*) FROM response WHERE event_id = $1
	`, eventID).Scan(&responseCount)
	if err != nil {
		slog.Error("failed to count responses", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]interface{}{
		"rankings":       payload.Rankings,
		"response_count": responseCount,
		"final":          true,
	})
}

// GetPreview handles GET /events/:slug/preview
// Returns compact event data for link-preview bubbles.
func (h *ResultsHandler) GetPreview(w http.ResponseWriter, r *http.Request) {
	shareSlug := r.PathValue("slug")
	if shareSlug == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "slug is required")
		return
	}

	// Get event info
	var eventID, title, status string
	err := h.db.QueryRow(`
		SELECT id, title, status FROM event WHERE share_slug = $1
	`, shareSlug).Scan(&eventID, &title, &status)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Event not found")
		return
	}
	if err != nil {
		slog.Error("failed to query event", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	// Get option count
	var optionCount int
	err = h.db.QueryRow(`
		SELECT COUNT(*) FROM option WHERE event_id = $1
	`, eventID).Scan(&optionCount)
	if err != nil {
		slog.Error("failed to count options", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	// Get response count
	var responseCount int
	err = h.db.QueryRow(`
		SELECT COUNT(*) FROM response WHERE event_id = $1
	`, eventID).Scan(&responseCount)
	if err != nil {
		slog.Error("failed to count responses", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	// Describe the most recent submission, if any
	var lastActivity string
	var lastSubmitted time.Time
	err = h.db.QueryRow(`
		SELECT submitted_at FROM response
		WHERE event_id = $1
		ORDER BY submitted_at DESC
		LIMIT 1
	`, eventID).Scan(&lastSubmitted)
	if err == nil {
		lastActivity = humanize.Time(lastSubmitted)
	} else if err != sql.ErrNoRows {
		slog.Error("failed to query last activity", "error", err)
	}

	middleware.JSONResponse(w, http.StatusOK, models.EventPreviewResponse{
		Title:         title,
		Status:        status,
		OptionCount:   optionCount,
		ResponseCount: responseCount,
		LastActivity:  lastActivity,
	})
}
