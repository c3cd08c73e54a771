// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The DDL sticks to the subset both drivers (modernc sqlite, lib/pq) accept.

# Tables

The schema includes:

  - event: Event metadata and lifecycle state
  - option: Candidate dates per event
  - respondent: People answering for an event, optionally tied to an identity
  - response: One submission per respondent per event
  - selected_option: Per-option preference entries (one per response/option)
  - result_snapshot: Immutable ranking results
  - identity: Registered authenticated identities

# Relationships

	event 1──* option
	event 1──* respondent
	event 1──* response
	response 1──* selected_option
	event 1──* result_snapshot
	identity 1──* respondent (at most one respondent per identity per event)

All foreign keys use ON DELETE CASCADE.

# Indexes

Performance indexes on:

  - event.share_slug (unique)
  - event.status
  - option.event_id (plus unique (event_id, option_date))
  - respondent.event_id (plus unique (event_id, token) and (event_id, identity_id))
  - response.event_id (plus unique (event_id, respondent_id))
  - selected_option.option_id
  - identity.identity_key (unique)
*/
package db
