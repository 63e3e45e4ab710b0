package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	programsDomain "github.com/healthdesk/healthinfo/internal/programs/domain"
)

// programUseCase implements ProgramUseCase.
type programUseCase struct {
	repo ProgramRepository
}

// Create stores a new program. The name unique constraint surfaces as
// ErrProgramNameTaken.
func (p *programUseCase) Create(
	ctx context.Context,
	input *programsDomain.CreateProgramInput,
) (*programsDomain.Program, error) {
	now := time.Now().UTC()
	program := &programsDomain.Program{
		ID:          uuid.Must(uuid.NewV7()),
		Name:        input.Name,
		Description: input.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := p.repo.Create(ctx, program); err != nil {
		return nil, err
	}

	return program, nil
}

// Get fetches a single program.
func (p *programUseCase) Get(ctx context.Context, programID uuid.UUID) (*programsDomain.Program, error) {
	return p.repo.Get(ctx, programID)
}

// List fetches a page of programs ordered by name.
func (p *programUseCase) List(ctx context.Context, offset, limit int) ([]*programsDomain.Program, error) {
	return p.repo.List(ctx, offset, limit)
}

// Update replaces a program's name and description.
func (p *programUseCase) Update(
	ctx context.Context,
	programID uuid.UUID,
	input *programsDomain.UpdateProgramInput,
) (*programsDomain.Program, error) {
	program, err := p.repo.Get(ctx, programID)
	if err != nil {
		return nil, err
	}

	program.Name = input.Name
	program.Description = input.Description
	program.UpdatedAt = time.Now().UTC()

	if err := p.repo.Update(ctx, program); err != nil {
		return nil, err
	}

	return program, nil
}

// Delete removes a program; its enrollments cascade.
func (p *programUseCase) Delete(ctx context.Context, programID uuid.UUID) error {
	return p.repo.Delete(ctx, programID)
}

// NewProgramUseCase creates a new ProgramUseCase.
func NewProgramUseCase(repo ProgramRepository) ProgramUseCase {
	return &programUseCase{repo: repo}
}
