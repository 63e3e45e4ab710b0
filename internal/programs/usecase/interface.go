// Package usecase implements program business logic. Program metadata is not
// sensitive, so operations are a thin layer over the repository.
package usecase

import (
	"context"

	"github.com/google/uuid"

	programsDomain "github.com/healthdesk/healthinfo/internal/programs/domain"
)

// ProgramRepository persists programs.
type ProgramRepository interface {
	Create(ctx context.Context, program *programsDomain.Program) error
	Update(ctx context.Context, program *programsDomain.Program) error
	Get(ctx context.Context, programID uuid.UUID) (*programsDomain.Program, error)
	List(ctx context.Context, offset, limit int) ([]*programsDomain.Program, error)
	Delete(ctx context.Context, programID uuid.UUID) error
}

// ProgramUseCase defines program operations.
type ProgramUseCase interface {
	Create(ctx context.Context, input *programsDomain.CreateProgramInput) (*programsDomain.Program, error)
	Get(ctx context.Context, programID uuid.UUID) (*programsDomain.Program, error)
	List(ctx context.Context, offset, limit int) ([]*programsDomain.Program, error)
	Update(ctx context.Context, programID uuid.UUID, input *programsDomain.UpdateProgramInput) (*programsDomain.Program, error)
	Delete(ctx context.Context, programID uuid.UUID) error
}
