// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3319)
  - DatabaseURL: SQLite file path or PostgreSQL connection string
  - DatabaseType: "sqlite" (default) or "postgres"
  - AdminKeySalt: Secret for admin key HMAC (required)
  - EventSlugSalt: Secret for share slug generation (required)

# CLI Flags

	-p            Server port
	-d            Database URL or file path
	-t            Database type
	--admin-salt  Admin key salt
	--slug-salt   Event slug salt

# Environment Variables

Flags fall back to environment variables (a .env file is loaded by main
via godotenv before parsing):

	PORT            → -p
	DATABASE_URL    → -d
	DATABASE_TYPE   → -t
	ADMIN_KEY_SALT  → --admin-salt
	EVENT_SLUG_SALT → --slug-salt

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if required values are missing:

  - DATABASE_URL must be provided for postgres (sqlite defaults to
    dateadvisor.db)
  - DATABASE_TYPE must be sqlite or postgres
  - ADMIN_KEY_SALT must be provided
  - EVENT_SLUG_SALT must be provided
*/
package cliparse
