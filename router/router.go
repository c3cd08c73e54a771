// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/dateadvisor/cliparse"
	"github.com/danielhkuo/dateadvisor/handlers"
	"github.com/danielhkuo/dateadvisor/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	eventHandler := handlers.NewEventHandler(db, cfg)
	respondentHandler := handlers.NewRespondentHandler(db, cfg)
	resultsHandler := handlers.NewResultsHandler(db, cfg)
	identityHandler := handlers.NewIdentityHandler(db, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Event management (admin operations)
	mux.HandleFunc("POST /events", middleware.WithLogging(eventHandler.CreateEvent))
	mux.HandleFunc("GET /events/{id}/admin", middleware.WithLogging(eventHandler.GetEventAdmin))
	mux.HandleFunc("POST /events/{id}/options", middleware.WithLogging(eventHandler.AddOption))
	mux.HandleFunc("POST /events/{id}/options/recurring", middleware.WithLogging(eventHandler.AddRecurringOptions))
	mux.HandleFunc("POST /events/{id}/publish", middleware.WithLogging(eventHandler.PublishEvent))
	mux.HandleFunc("POST /events/{id}/close", middleware.WithLogging(eventHandler.CloseEvent))

	// Respondent operations (public, via share slug)
	mux.HandleFunc("POST /events/{slug}/respondents", middleware.WithLogging(respondentHandler.ClaimRespondent))
	mux.HandleFunc("PUT /events/{slug}/response", middleware.WithLogging(respondentHandler.SubmitResponse))
	mux.HandleFunc("GET /events/{slug}/my-response", middleware.WithLogging(respondentHandler.GetMyResponse))

	// Event info and rankings (public)
	mux.HandleFunc("GET /events/{slug}", middleware.WithLogging(resultsHandler.GetEvent))
	mux.HandleFunc("GET /events/{slug}/rankings", middleware.WithLogging(resultsHandler.GetRankings))
	mux.HandleFunc("GET /events/{slug}/preview", middleware.WithLogging(resultsHandler.GetPreview))

	// Identity management
	mux.HandleFunc("POST /identities/register", middleware.WithLogging(identityHandler.Register))
	mux.HandleFunc("GET /identities/me", middleware.WithLogging(identityHandler.GetMe))
	mux.HandleFunc("GET /identities/my-events", middleware.WithLogging(identityHandler.GetMyEvents))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("dateadvisor API v1"))
	})

	return mux
}
