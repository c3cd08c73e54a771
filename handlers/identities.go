// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/dateadvisor/cliparse"
	"github.com/danielhkuo/dateadvisor/middleware"
	"github.com/danielhkuo/dateadvisor/models"
)

type IdentityHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewIdentityHandler(db *sql.DB, cfg cliparse.Config) *IdentityHandler {
	return &IdentityHandler{db: db, cfg: cfg}
}

// Register handles POST /identities/register
// Registers an identity and returns its identity_id (or finds existing)
func (h *IdentityHandler) Register(w http.ResponseWriter, r *http.Request) {
	identityKey := r.Header.Get("X-Identity-Key")
	if identityKey == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "X-Identity-Key header required")
		return
	}

	var req models.RegisterIdentityRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := models.ValidateRequest(req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	// Check if identity already exists
	var existingID string
	err := h.db.QueryRow(`
		SELECT id FROM identity WHERE identity_key = $1
	`, identityKey).Scan(&existingID)

	if err == nil {
		// Identity exists, update last_seen_at
		_, err = h.db.Exec(`
			UPDATE identity SET last_seen_at = $1 WHERE id = $2
		`, time.Now(), existingID)
		if err != nil {
			slog.Error("failed to update identity last_seen_at", "error", err)
		}

		slog.Info("identity registered (existing)", "identity_id", existingID)
		middleware.JSONResponse(w, http.StatusOK, models.RegisterIdentityResponse{
			IdentityID: existingID,
			IsNew:      false,
		})
		return
	}

	if err != sql.ErrNoRows {
		slog.Error("failed to query identity", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	// Create new identity
	identityID := uuid.NewString()

	now := time.Now()
	_, err = h.db.Exec(`
		INSERT INTO identity (id, identity_key, platform, created_at, last_seen_at)
		VALUES ($1, $2, $3, $4, $5)
	`, identityID, identityKey, req.Platform, now, now)

	if err != nil {
		slog.Error("failed to insert identity", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register identity")
		return
	}

	slog.Info("identity registered (new)", "identity_id", identityID, "platform", req.Platform)

	middleware.JSONResponse(w, http.StatusCreated, models.RegisterIdentityResponse{
		IdentityID: identityID,
		IsNew:      true,
	})
}

// GetMe handles GET /identities/me
// Returns current identity info
func (h *IdentityHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	identityKey := r.Header.Get("X-Identity-Key")
	if identityKey == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "X-Identity-Key header required")
		return
	}

	var identity models.IdentityInfo
	err := h.db.QueryRow(`
		SELECT id, platform, created_at, last_seen_at
		FROM identity
		WHERE identity_key = $1
	`, identityKey).Scan(&identity.ID, &identity.Platform, &identity.CreatedAt, &identity.LastSeenAt)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Identity not registered")
		return
	}
	if err != nil {
		slog.Error("failed to query identity", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	// Update last_seen_at
	_, err = h.db.Exec(`
		UPDATE identity SET last_seen_at = $1 WHERE id = $2
	`, time.Now(), identity.ID)
	if err != nil {
		slog.Error("failed to update identity last_seen_at", "error", err)
	}

	middleware.JSONResponse(w, http.StatusOK, identity)
}

// GetMyEvents handles GET /identities/my-events
// Returns events where this identity has a respondent
func (h *IdentityHandler) GetMyEvents(w http.ResponseWriter, r *http.Request) {
	identityKey := r.Header.Get("X-Identity-Key")
	if identityKey == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "X-Identity-Key header required")
		return
	}

	// Get identity ID
	var identityID string
	err := h.db.QueryRow(`
		SELECT id FROM identity WHERE identity_key = $1
	`, identityKey).Scan(&identityID)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Identity not registered")
		return
	}
	if err != nil {
		slog.Error("failed to query identity", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	// Update last_seen_at
	_, err = h.db.Exec(`
		UPDATE identity SET last_seen_at = $1 WHERE id = $2
	`, time.Now(), identityID)
	if err != nil {
		slog.Error("failed to update identity last_seen_at", "error", err)
	}

	// Events this identity joined, newest first. answered_at falls back to
	// the join time when no response has been submitted yet.
	rows, err := h.db.Query(`
		SELECT
			e.id,
			e.title,
			e.status,
			e.share_slug,
			p.name,
			p.created_at,
			r.submitted_at
		FROM respondent p
		JOIN event e ON p.event_id = e.id
		LEFT JOIN response r ON r.respondent_id = p.id
		WHERE p.identity_id = $1
		ORDER BY p.created_at DESC
	`, identityID)

	if err != nil {
		slog.Error("failed to query identity events", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	events := []models.IdentityEventSummary{}
	for rows.Next() {
		var summary models.IdentityEventSummary
		var joinedAt time.Time
		var submittedAt sql.NullTime

		if err := rows.Scan(
			&summary.EventID,
			&summary.Title,
			&summary.Status,
			&summary.ShareSlug,
			&summary.RespondentName,
			&joinedAt,
			&submittedAt,
		); err != nil {
			slog.Error("failed to scan event", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}

		summary.AnsweredAt = joinedAt
		if submittedAt.Valid {
			summary.AnsweredAt = submittedAt.Time
		}

		events = append(events, summary)
	}

	middleware.JSONResponse(w, http.StatusOK, models.GetMyEventsResponse{
		Events: events,
	})
}

// GetOrCreateIdentity looks up or creates an identity record from the
// X-Identity-Key header. Returns empty string if no header is present.
func GetOrCreateIdentity(db *sql.DB, r *http.Request) (string, error) {
	identityKey := r.Header.Get("X-Identity-Key")
	if identityKey == "" {
		return "", nil
	}

	// Check if identity exists
	var identityID string
	err := db.QueryRow(`
		SELECT id FROM identity WHERE identity_key = $1
	`, identityKey).Scan(&identityID)

	if err == nil {
		// Update last_seen_at
		_, _ = db.Exec(`UPDATE identity SET last_seen_at = $1 WHERE id = $2`, time.Now(), identityID)
		return identityID, nil
	}

	if err != sql.ErrNoRows {
		return "", err
	}

	// Create new identity with 'web' as default platform
	// (actual platform is set via /identities/register)
	identityID = uuid.NewString()

	now := time.Now()
	_, err = db.Exec(`
		INSERT INTO identity (id, identity_key, platform, created_at, last_seen_at)
		VALUES ($1, $2, $3, $4, $5)
	`, identityID, identityKey, models.PlatformWeb, now, now)

	if err != nil {
		return "", err
	}

	return identityID, nil
}
