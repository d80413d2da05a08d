package repository

import "errors"

var (
	// ErrNotFound is returned when a requested row does not exist
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail is returned when the users.email unique constraint rejects an insert
	ErrDuplicateEmail = errors.New("duplicate email")
	// ErrConstraint is returned when stored data violates a schema constraint
	ErrConstraint = errors.New("constraint violation")
)
