package domain

import "errors"

var (
	ErrPositionNotFound    = errors.New("position not found")
	ErrEmployeeNotFound    = errors.New("employee not found")
	ErrInvalidPositionName = errors.New("position name cannot be empty")
	ErrInvalidEmployeeName = errors.New("employee name cannot be empty")
	ErrInvalidID           = errors.New("invalid identifier")

	// ErrPositionReference is returned when an employee is created or moved to
	// a position that does not exist.
	ErrPositionReference = errors.New("position not found")

	// ErrRegistrationFailed covers duplicate usernames and storage failures alike.
	ErrRegistrationFailed = errors.New("username already exists or invalid data")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")

	// ErrIdempotencyConflict is returned when a key is held by a create whose
	// record never became readable.
	ErrIdempotencyConflict = errors.New("idempotency key is held by another request")
)
