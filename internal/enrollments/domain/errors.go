package domain

import (
	"github.com/healthdesk/healthinfo/internal/errors"
)

var (
	// ErrEnrollmentNotFound indicates the requested enrollment does not exist.
	ErrEnrollmentNotFound = errors.Wrap(errors.ErrNotFound, "enrollment not found")

	// ErrInvalidStatus indicates a status outside the known lifecycle states.
	ErrInvalidStatus = errors.Wrap(errors.ErrInvalidInput, "invalid enrollment status")

	// ErrRelatedNotFound indicates the referenced client or program does not
	// exist. Surfaced from foreign key violations on create.
	ErrRelatedNotFound = errors.Wrap(errors.ErrInvalidInput, "referenced client or program not found")
)
