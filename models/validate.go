// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "github.com/go-playground/validator/v10"

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateRequest runs struct tag validation on a parsed request body.
// Returns the first validation error, suitable for a 400 response message.
func ValidateRequest(v any) error {
	return validate.Struct(v)
}
