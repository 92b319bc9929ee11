package repository

import "errors"

var (
	// ErrNotFound is returned by updates/deletes that matched no record.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateEmail is returned when a signup reuses an existing email
	// (matched case-insensitively).
	ErrDuplicateEmail = errors.New("email already exists")

	// ErrProfileExists is returned when a user already has an education
	// profile; at most one is allowed per user.
	ErrProfileExists = errors.New("education profile already exists")
)
