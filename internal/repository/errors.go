package repository

import "errors"

// Common repository errors
var (
	// ErrNotFound is returned when a record does not exist or is soft-deleted
	ErrNotFound = errors.New("record not found")

	// ErrInvalidInput is returned when required input is missing or malformed
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmailMissing is returned when an identity-provider profile carries no email
	ErrEmailMissing = errors.New("email not provided by identity provider")

	// ErrIdentityPersistence is returned when the user upsert for an
	// identity-provider callback fails
	ErrIdentityPersistence = errors.New("failed to persist identity")

	// ErrDuplicateEmail is returned when registering with an email that is taken
	ErrDuplicateEmail = errors.New("user with this email already exists")
)
