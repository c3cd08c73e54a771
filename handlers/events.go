// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/danielhkuo/dateadvisor/auth"
	"github.com/danielhkuo/dateadvisor/cliparse"
	"github.com/danielhkuo/dateadvisor/middleware"
	"github.com/danielhkuo/dateadvisor/models"
)

// maxRecurringOptions caps how many dates one recurrence rule may expand to.
// Rules without COUNT or UNTIL are infinite; the cap keeps them bounded.
const maxRecurringOptions = 50

type EventHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewEventHandler(db *sql.DB, cfg cliparse.Config) *EventHandler {
	return &EventHandler{db: db, cfg: cfg}
}

// CreateEvent handles POST /events
func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req models.CreateEventRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := models.ValidateRequest(req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	// Generate event ID
	eventID, err := auth.GenerateID(16)
	if err != nil {
		slog.Error("failed to generate event ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create event")
		return
	}

	// Generate admin key
	adminKey := auth.GenerateAdminKey(eventID, h.cfg.AdminKeySalt)

	// Insert event into database
	_, err = h.db.Exec(`
		INSERT INTO event (id, title, description, creator_name, method, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, eventID, req.Title, req.Description, req.CreatorName, models.MethodMultiCriterion, models.StatusDraft, time.Now())

	if err != nil {
		slog.Error("failed to insert event", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create event")
		return
	}

	slog.Info("event created", "event_id", eventID, "creator", req.CreatorName)

	// Return response
	middleware.JSONResponse(w, http.StatusCreated, models.CreateEventResponse{
		EventID:  eventID,
		AdminKey: adminKey,
	})
}

// AddOption handles POST /events/:id/options
func (h *EventHandler) AddOption(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("id")
	if eventID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "event_id is required")
		return
	}

	// Validate admin key
	adminKey := r.Header.Get("X-Admin-Key")
	if err := auth.ValidateAdminKey(eventID, adminKey, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	// Parse request
	var req models.AddOptionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := models.ValidateRequest(req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	// Check event exists and is in draft status
	var status string
	err := h.db.QueryRow("SELECT status FROM event WHERE id = $1", eventID).Scan(&status)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Event not found")
		return
	}
	if err != nil {
		slog.Error("failed to query event", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if status != models.StatusDraft {
		middleware.ErrorResponse(w, http.StatusConflict, "Cannot add options to non-draft event")
		return
	}

	// Reject duplicate dates before hitting the UNIQUE constraint
	var exists bool
	err = h.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM option WHERE event_id = $1 AND option_date = $2)
	`, eventID, req.Date).Scan(&exists)
	if err != nil {
		slog.Error("failed to check for duplicate date", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if exists {
		middleware.ErrorResponse(w, http.StatusConflict, "Date already added to this event")
		return
	}

	// Generate option ID
	optionID, err := auth.GenerateID(12)
	if err != nil {
		slog.Error("failed to generate option ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create option")
		return
	}

	// Insert option
	_, err = h.db.Exec(`
		INSERT INTO option (id, event_id, option_date)
		VALUES ($1, $2, $3)
	`, optionID, eventID, req.Date)

	if err != nil {
		slog.Error("failed to insert option", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create option")
		return
	}

	slog.Info("option added", "event_id", eventID, "option_id", optionID, "date", req.Date)

	middleware.JSONResponse(w, http.StatusCreated, models.AddOptionResponse{
		OptionID: optionID,
	})
}

// AddRecurringOptions handles POST /events/:id/options/recurring
// Expands an RFC 5545 recurrence rule into candidate dates, skipping any
// already on the event.
func (h *EventHandler) AddRecurringOptions(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("id")
	if eventID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "event_id is required")
		return
	}

	// Validate admin key
	adminKey := r.Header.Get("X-Admin-Key")
	if err := auth.ValidateAdminKey(eventID, adminKey, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	// Parse request
	var req models.AddRecurringOptionsRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := models.ValidateRequest(req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	// Check event exists and is in draft status
	var status string
	err := h.db.QueryRow("SELECT status FROM event WHERE id = $1", eventID).Scan(&status)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Event not found")
		return
	}
	if err != nil {
		slog.Error("failed to query event", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if status != models.StatusDraft {
		middleware.ErrorResponse(w, http.StatusConflict, "Cannot add options to non-draft event")
		return
	}

	dates, err := expandRecurrenceRule(req.Rule, req.StartOn)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(dates) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Recurrence rule produces no dates")
		return
	}

	// Collect dates already on the event so expansion is idempotent
	existing := make(map[string]bool)
	rows, err := h.db.Query(`SELECT option_date FROM option WHERE event_id = $1`, eventID)
	if err != nil {
		slog.Error("failed to query options", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()
	for rows.Next() {
		var date string
		if err := rows.Scan(&date); err != nil {
			slog.Error("failed to scan option date", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		existing[date] = true
	}

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	optionIDs := []string{}
	added := []string{}
	for _, date := range dates {
		if existing[date] {
			continue
		}

		optionID, err := auth.GenerateID(12)
		if err != nil {
			slog.Error("failed to generate option ID", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create options")
			return
		}

		_, err = tx.Exec(`
			INSERT INTO option (id, event_id, option_date)
			VALUES ($1, $2, $3)
		`, optionID, eventID, date)
		if err != nil {
			slog.Error("failed to insert option", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create options")
			return
		}

		optionIDs = append(optionIDs, optionID)
		added = append(added, date)
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create options")
		return
	}

	slog.Info("recurring options added", "event_id", eventID, "count", len(added))

	middleware.JSONResponse(w, http.StatusCreated, models.AddRecurringOptionsResponse{
		OptionIDs: optionIDs,
		Dates:     added,
	})
}

// expandRecurrenceRule expands an RFC 5545 rule body into calendar dates,
// anchored at startOn and capped at maxRecurringOptions occurrences.
func expandRecurrenceRule(ruleStr, startOn string) ([]string, error) {
	rule, err := rrule.StrToRRule(ruleStr)
	if err != nil {
		return nil, fmt.Errorf("invalid recurrence rule: %w", err)
	}

	start, err := time.Parse("2006-01-02", startOn)
	if err != nil {
		return nil, fmt.Errorf("invalid start_on date: %w", err)
	}
	rule.DTStart(start.UTC())

	seen := make(map[string]bool)
	dates := []string{}
	next := rule.Iterator()
	for len(dates) < maxRecurringOptions {
		occurrence, ok := next()
		if !ok {
			break
		}
		date := occurrence.Format("2006-01-02")
		if seen[date] {
			continue
		}
		seen[date] = true
		dates = append(dates, date)
	}

	return dates, nil
}

// PublishEvent handles POST /events/:id/publish
func (h *EventHandler) PublishEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("id")
	if eventID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "event_id is required")
		return
	}

	// Validate admin key
	adminKey := r.Header.Get("X-Admin-Key")
	if err := auth.ValidateAdminKey(eventID, adminKey, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	// Check event exists and is in draft status
	var status string
	var optionCount int
	err := h.db.QueryRow(`
		SELECT e.status, COUNT(o.id)
		FROM event e
		LEFT JOIN option o ON e.id = o.event_id
		WHERE e.id = $1
		GROUP BY e.status
	`, eventID).Scan(&status, &optionCount)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Event not found")
		return
	}
	if err != nil {
		slog.Error("failed to query event", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if status != models.StatusDraft {
		middleware.ErrorResponse(w, http.StatusConflict, "Event is not in draft status")
		return
	}

	if optionCount < 2 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Event must have at least 2 candidate dates")
		return
	}

	// Generate share slug
	shareSlug := auth.GenerateShareSlug(eventID, h.cfg.EventSlugSalt)

	// Update event to open status
	_, err = h.db.Exec(`
		UPDATE event
		SET status = $1, share_slug = $2
		WHERE id = $3
	`, models.StatusOpen, shareSlug, eventID)

	if err != nil {
		slog.Error("failed to publish event", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to publish event")
		return
	}

	slog.Info("event published", "event_id", eventID, "share_slug", shareSlug)

	// Build share URL (could be configurable)
	baseURL := "https://dateadvisor.app" // TODO: Make this configurable
	shareURL := baseURL + "/events/" + shareSlug

	middleware.JSONResponse(w, http.StatusOK, models.PublishEventResponse{
		ShareSlug: shareSlug,
		ShareURL:  shareURL,
	})
}

// GetEventAdmin handles GET /events/:id/admin
// Returns event details for admin access using event ID and admin key
func (h *EventHandler) GetEventAdmin(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("id")
	if eventID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "event_id is required")
		return
	}

	// Validate admin key
	adminKey := r.Header.Get("X-Admin-Key")
	if err := auth.ValidateAdminKey(eventID, adminKey, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	// Get event by ID
	var event models.Event
	err := h.db.QueryRow(`
		SELECT id, title, description, creator_name, method, status,
		       share_slug, closes_at, closed_at, final_snapshot_id, created_at
		FROM event
		WHERE id = $1
	`, eventID).Scan(
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

	// Get options ordered by date
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

// CloseEvent handles POST /events/:id/close
// Computes the final rankings and seals them in a snapshot.
func (h *EventHandler) CloseEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("id")
	if eventID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "event_id is required")
		return
	}

	// Validate admin key
	adminKey := r.Header.Get("X-Admin-Key")
	if err := auth.ValidateAdminKey(eventID, adminKey, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	// Check event exists and is open
	var status string
	err := h.db.QueryRow("SELECT status FROM event WHERE id = $1", eventID).Scan(&status)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Event not found")
		return
	}
	if err != nil {
		slog.Error("failed to query event", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if status != models.StatusOpen {
		middleware.ErrorResponse(w, http.StatusConflict, "Event is not open")
		return
	}

	// Compute final rankings
	results, responseCount, err := ComputeEventRankings(h.db, eventID)
	if err != nil {
		slog.Error("failed to compute rankings", "error", err, "event_id", eventID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to compute rankings")
		return
	}

	snapshotID, _ := auth.GenerateID(16)
	closedAt := time.Now()
	inputsHash := fmt.Sprintf("%d-responses", responseCount)

	payload, err := json.Marshal(snapshotPayload{
		Rankings:   results,
		InputsHash: inputsHash,
	})
	if err != nil {
		slog.Error("failed to marshal snapshot payload", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save results")
		return
	}

	// Begin transaction
	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	// Update event to closed
	_, err = tx.Exec(`
		UPDATE event
		SET status = $1, closed_at = $2, final_snapshot_id = $3
		WHERE id = $4
	`, models.StatusClosed, closedAt, snapshotID, eventID)

	if err != nil {
		slog.Error("failed to close event", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to close event")
		return
	}

	// Insert snapshot
	_, err = tx.Exec(`
		INSERT INTO result_snapshot (id, event_id, method, computed_at, payload)
		VALUES ($1, $2, $3, $4, $5)
	`, snapshotID, eventID, models.MethodMultiCriterion, closedAt, string(payload))

	if err != nil {
		slog.Error("failed to insert snapshot", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save results")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to close event")
		return
	}

	slog.Info("event closed", "event_id", eventID, "snapshot_id", snapshotID, "responses", responseCount)

	middleware.JSONResponse(w, http.StatusOK, models.CloseEventResponse{
		ClosedAt: closedAt,
		Snapshot: models.ResultSnapshot{
			ID:         snapshotID,
			EventID:    eventID,
			Method:     models.MethodMultiCriterion,
			ComputedAt: closedAt,
			Rankings:   results,
			InputsHash: inputsHash,
		},
	})
}

// loadEventOptions returns an event's candidate dates in chronological order.
func loadEventOptions(db *sql.DB, eventID string) ([]models.Option, error) {
	rows, err := db.Query(`
		SELECT id, event_id, option_date
		FROM option
		WHERE event_id = $1
		ORDER BY option_date
	`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	options := []models.Option{}
	for rows.Next() {
		var opt models.Option
		if err := rows.Scan(&opt.ID, &opt.EventID, &opt.Date); err != nil {
			return nil, err
		}
		options = append(options, opt)
	}

	return options, rows.Err()
}
