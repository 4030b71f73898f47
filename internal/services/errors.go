package services

import (
	"errors"
)

// Caller-visible outcomes. All are recoverable: the caller corrects the
// condition and retries; nothing here is retried internally.
var (
	// ErrUnauthorized: the actor is not the content's writer, or lacks the
	// admin capability the operation needs.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound: the referenced article, comment or gallery does not resolve.
	ErrNotFound = errors.New("not found")

	// ErrNotAcceptable: a structural precondition failed (wrong comment count
	// for the delete mode, notice already in the requested state).
	ErrNotAcceptable = errors.New("not acceptable")

	// ErrConflict: an optimistic save lost against a concurrent writer.
	ErrConflict = errors.New("conflict")

	// ErrAlreadyExists: a conditional insert found the row already present.
	ErrAlreadyExists = errors.New("already exists")
)
