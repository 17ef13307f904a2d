package services

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a member or request identifier does not
// resolve. It replaces the silent no-ops of earlier revisions so callers can
// distinguish "succeeded" from "target not found".
var ErrNotFound = errors.New("not found")

// ErrAlreadyResolved is returned when approving or rejecting a request that
// has already reached a terminal status (approved/rejected).
var ErrAlreadyResolved = errors.New("request already resolved")

// ErrEmptyChanges is returned when an update request arrives with no actual
// field changes
var ErrEmptyChanges = errors.New("requested changes are empty")

// ErrInvalidInput represents an input validation error
var ErrInvalidInput = errors.New("invalid input")

// ErrInvalidCredentials is returned on a failed login attempt
var ErrInvalidCredentials = errors.New("invalid credentials")

// notFoundOr maps gorm's record-not-found onto the domain sentinel so the
// database implementation detail never leaks past the service layer.
func notFoundOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
