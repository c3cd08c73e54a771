// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides authentication and token generation utilities.

# Admin Keys

Admin keys use HMAC-SHA256 to create deterministic, verifiable keys:

	adminKey := auth.GenerateAdminKey(eventID, salt)
	err := auth.ValidateAdminKey(eventID, adminKey, salt)

The key is URL-safe base64 encoded without padding. Since it's deterministic,
the same event ID and salt always produce the same key, so validation needs
no database lookup.

# Respondent Tokens

Respondent tokens are random 24-byte (192-bit) secrets:

	token, err := auth.GenerateRespondentToken()

Tokens are URL-safe base64 encoded and authenticate response submissions and
updates. Each respondent gets a unique token when claiming their spot on an
event.

# Share Slugs

Share slugs create URL-friendly identifiers for published events:

	slug := auth.GenerateShareSlug(eventID, salt)

Slugs are base62 encoded (alphanumeric only) for easy sharing and, like admin
keys, deterministic from the event ID and salt.

# ID Generation

Random hex IDs for database records:

	id, err := auth.GenerateID(16)  // 32 hex characters

# IP Hashing

For privacy-preserving duplicate detection:

	hash := auth.HashIP(ipAddress, salt)

Returns the first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth
