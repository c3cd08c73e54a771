// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Date Advisor API server.

Date Advisor is a date-scheduling service: an organizer proposes candidate
dates, respondents grade each date on a preference scale, and a
multi-criterion ranking engine surfaces the best dates with tie-aware ranks
and a recommendation label per date.

# Starting the Server

The server runs on SQLite by default and needs only the two salts:

	ADMIN_KEY_SALT=... EVENT_SLUG_SALT=... go run main.go

Or against PostgreSQL:

	go run main.go -t postgres -d "postgres://..." --admin-salt ... --slug-salt ...

A .env file in the working directory is loaded automatically.

# Configuration

Required settings:

  - ADMIN_KEY_SALT (--admin-salt): Secret for admin key HMAC
  - EVENT_SLUG_SALT (--slug-salt): Secret for share slug generation

Optional settings:

  - PORT (-p): Server port (default: 3319)
  - DATABASE_TYPE (-t): "sqlite" (default) or "postgres"
  - DATABASE_URL (-d): SQLite file path (default: dateadvisor.db) or
    PostgreSQL connection string (required for postgres)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - ranking: Multi-criterion ranking engine (pure, no I/O)
  - handlers: HTTP request handlers (events, respondents, results, identities)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response types and validation
  - auth: Token generation and validation
  - db: Schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
