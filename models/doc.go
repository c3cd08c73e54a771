// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON, with go-playground/validator struct tags:

  - CreateEventRequest: title, description, creator_name
  - AddOptionRequest: date (ISO-8601 calendar date)
  - AddRecurringOptionsRequest: rule, start_on
  - ClaimRespondentRequest: name (optional)
  - SubmitResponseRequest: selections (option_id, preference, uncertain)
  - RegisterIdentityRequest: platform

ValidateRequest runs tag validation on any parsed body.

# Response Types

Types for JSON responses:

  - CreateEventResponse: event_id, admin_key
  - AddOptionResponse / AddRecurringOptionsResponse
  - PublishEventResponse: share_slug, share_url
  - ClaimRespondentResponse: respondent_id, respondent_token, is_new
  - SubmitResponseResponse: response_id, message
  - CloseEventResponse: closed_at, snapshot
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - Event: event metadata and lifecycle state
  - Option: one candidate date
  - Respondent: a person answering for an event (optionally tied to an identity)
  - ResponseRecord: one respondent's submission
  - SelectedOption: one (option, preference, uncertain) entry
  - OptionResult: an option's rank tuple, label, and badge
  - ResultSnapshot: immutable result record

# Constants

Status values:

	StatusDraft  = "draft"
	StatusOpen   = "open"
	StatusClosed = "closed"

Ranking method:

	MethodMultiCriterion = "multi-criterion"

Platforms:

	PlatformIOS     = "ios"
	PlatformMacOS   = "macos"
	PlatformAndroid = "android"
	PlatformWeb     = "web"
*/
package models
