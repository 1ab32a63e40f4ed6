// Package services defines the business logic for managing radio hits.
// This file centralizes common service-level error values so that they can
// be consistently returned by service methods and checked by callers.
//
// Translation into user-facing messages or HTTP status codes is performed
// at the handler layer.
package services

import "errors"

var (
	// ErrHitNotFound indicates that no hit matches the requested slug.
	ErrHitNotFound = errors.New("hit not found")
)
