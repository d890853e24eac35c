// Package services contains the business rules for users and results
package services

import "errors"

// Sentinel errors surfaced to handlers, which map them onto HTTP statuses.
// All of them are terminal; nothing is retried locally.
var (
	// ErrUserNotFound is returned when the referenced user does not exist
	ErrUserNotFound = errors.New("user not found")
	// ErrResultNotFound is returned when the referenced result does not exist
	ErrResultNotFound = errors.New("result not found")
	// ErrNoResults is returned when a bulk operation matches zero results
	ErrNoResults = errors.New("no results found for this user")
	// ErrEmailTaken is returned when an email uniqueness check fails
	ErrEmailTaken = errors.New("email already in use")
	// ErrPreconditionFailed is returned when an optimistic-lock tag is absent or stale
	ErrPreconditionFailed = errors.New("precondition failed")
	// ErrRoleNotAllowed is returned when a non-admin caller tries to grant the admin role
	ErrRoleNotAllowed = errors.New("only admins may grant the admin role")
	// ErrInvalidCredentials is returned on login with an unknown email or wrong password
	ErrInvalidCredentials = errors.New("invalid credentials")
)
