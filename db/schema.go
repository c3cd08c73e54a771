// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS. The DDL is restricted to
// the dialect both supported drivers (sqlite, postgres) accept; timestamps
// are always supplied by the application, never by column defaults.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Events
CREATE TABLE IF NOT EXISTS event (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT,
    creator_name TEXT NOT NULL,
    method TEXT NOT NULL DEFAULT 'multi-criterion',
    status TEXT NOT NULL DEFAULT 'draft' CHECK (status IN ('draft', 'open', 'closed')),
    share_slug TEXT UNIQUE,
    closes_at TIMESTAMP,
    closed_at TIMESTAMP,
    final_snapshot_id TEXT,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_event_share_slug ON event(share_slug);
CREATE INDEX IF NOT EXISTS idx_event_status ON event(status);

-- Candidate dates
CREATE TABLE IF NOT EXISTS option (
    id TEXT PRIMARY KEY,
    event_id TEXT NOT NULL REFERENCES event(id) ON DELETE CASCADE,
    option_date TEXT NOT NULL,
    UNIQUE (event_id, option_date)
);

CREATE INDEX IF NOT EXISTS idx_option_event_id ON option(event_id);

-- Respondents
CREATE TABLE IF NOT EXISTS respondent (
    id TEXT PRIMARY KEY,
    event_id TEXT NOT NULL REFERENCES event(id) ON DELETE CASCADE,
    name TEXT,
    identity_id TEXT,
    token TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL,
    UNIQUE (event_id, token),
    UNIQUE (event_id, identity_id)
);

CREATE INDEX IF NOT EXISTS idx_respondent_event_id ON respondent(event_id);

-- Responses (one per respondent per event)
CREATE TABLE IF NOT EXISTS response (
    id TEXT PRIMARY KEY,
    event_id TEXT NOT NULL REFERENCES event(id) ON DELETE CASCADE,
    respondent_id TEXT NOT NULL REFERENCES respondent(id) ON DELETE CASCADE,
    submitted_at TIMESTAMP NOT NULL,
    ip_hash TEXT,
    user_agent TEXT,
    UNIQUE (event_id, respondent_id)
);

CREATE INDEX IF NOT EXISTS idx_response_event_id ON response(event_id);

-- Selected options (at most one per response/option pair)
CREATE TABLE IF NOT EXISTS selected_option (
    response_id TEXT NOT NULL REFERENCES response(id) ON DELETE CASCADE,
    option_id TEXT NOT NULL REFERENCES option(id) ON DELETE CASCADE,
    preference INTEGER NOT NULL,
    uncertain INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (response_id, option_id)
);

CREATE INDEX IF NOT EXISTS idx_selected_option_option_id ON selected_option(option_id);

-- Result snapshots
CREATE TABLE IF NOT EXISTS result_snapshot (
    id TEXT PRIMARY KEY,
    event_id TEXT NOT NULL REFERENCES event(id) ON DELETE CASCADE,
    method TEXT NOT NULL,
    computed_at TIMESTAMP NOT NULL,
    payload TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_result_snapshot_event_id ON result_snapshot(event_id);

-- Authenticated identities
CREATE TABLE IF NOT EXISTS identity (
    id TEXT PRIMARY KEY,
    identity_key TEXT NOT NULL UNIQUE,
    platform TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL,
    last_seen_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_identity_key ON identity(identity_key);
`
