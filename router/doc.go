// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Date Advisor API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

# Endpoints

Health:

	GET /health

Event management (admin, requires X-Admin-Key):

	POST /events                        - Create event
	GET  /events/{id}/admin             - Get event details
	POST /events/{id}/options           - Add candidate date
	POST /events/{id}/options/recurring - Expand recurrence rule into dates
	POST /events/{id}/publish           - Open for responses
	POST /events/{id}/close             - Seal final rankings

Respondents (public, uses share slug):

	POST /events/{slug}/respondents - Register respondent
	PUT  /events/{slug}/response    - Submit/replace response
	GET  /events/{slug}/my-response - Get own response

Info and rankings (public):

	GET /events/{slug}          - Event info and candidate dates
	GET /events/{slug}/rankings - Rankings (live while open, sealed after close)
	GET /events/{slug}/preview  - Compact preview data

Identity management:

	POST /identities/register  - Register identity
	GET  /identities/me        - Get identity info
	GET  /identities/my-events - List identity's events

# Handler Initialization

The router creates handler instances with dependency injection:

	eventHandler := handlers.NewEventHandler(db, cfg)
	respondentHandler := handlers.NewRespondentHandler(db, cfg)
	resultsHandler := handlers.NewResultsHandler(db, cfg)
	identityHandler := handlers.NewIdentityHandler(db, cfg)

All handlers receive the database connection and configuration.
*/
package router
