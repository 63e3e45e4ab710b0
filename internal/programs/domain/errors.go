package domain

import (
	"github.com/healthdesk/healthinfo/internal/errors"
)

var (
	// ErrProgramNotFound indicates the requested program does not exist.
	ErrProgramNotFound = errors.Wrap(errors.ErrNotFound, "program not found")

	// ErrProgramNameTaken indicates a program with the same name already exists.
	ErrProgramNameTaken = errors.Wrap(errors.ErrConflict, "program name already taken")
)
