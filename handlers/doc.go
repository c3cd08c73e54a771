// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Date Advisor API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - EventHandler: Event lifecycle (create, add dates, publish, close)
  - RespondentHandler: Respondent registration and response submission
  - ResultsHandler: Event info, rankings, and previews
  - IdentityHandler: Identity registration and event history

Handlers are created via constructor functions that accept *sql.DB and Config:

	eventHandler := handlers.NewEventHandler(db, cfg)

# Event Lifecycle

Events progress through three states: draft → open → closed

	POST /events                        → CreateEvent (returns admin_key)
	POST /events/{id}/options           → AddOption (draft only)
	POST /events/{id}/options/recurring → AddRecurringOptions (draft only)
	POST /events/{id}/publish           → PublishEvent (generates share_slug)
	POST /events/{id}/close             → CloseEvent (seals final rankings)

Admin operations require the X-Admin-Key header.

# Response Flow

Respondents interact via the share slug:

	POST /events/{slug}/respondents → ClaimRespondent (returns respondent_token)
	PUT /events/{slug}/response     → SubmitResponse (create or replace)
	GET /events/{slug}/my-response  → GetMyResponse

Respondent operations require the X-Respondent-Token header.

# Ranking Computation

The multi-criterion ranking engine lives in the ranking package; rankings.go
wires it to the database:

	results, responseCount, err := ComputeEventRankings(db, eventID)

Each option gets dense ranks on five criteria (fewest nos, fewest nos and
maybes, best score, overall, strict superiority) plus a display label and
badge. While an event is open, GET /events/{slug}/rankings computes live;
after close it serves the sealed snapshot.

# Identity Tracking

Optional identity tracking for native apps:

	POST /identities/register  → Register
	GET /identities/me         → GetMe
	GET /identities/my-events  → GetMyEvents

Identity operations require the X-Identity-Key header.
*/
package handlers
