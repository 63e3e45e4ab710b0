package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/healthdesk/healthinfo/internal/metrics"
	programsDomain "github.com/healthdesk/healthinfo/internal/programs/domain"
)

// programUseCaseWithMetrics decorates ProgramUseCase with metrics instrumentation.
type programUseCaseWithMetrics struct {
	next    ProgramUseCase
	metrics metrics.BusinessMetrics
}

// NewProgramUseCaseWithMetrics wraps a ProgramUseCase with metrics recording.
func NewProgramUseCaseWithMetrics(useCase ProgramUseCase, m metrics.BusinessMetrics) ProgramUseCase {
	return &programUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// record emits the operation counter and duration histogram for one call.
func (p *programUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	p.metrics.RecordOperation(ctx, "programs", operation, status)
	p.metrics.RecordDuration(ctx, "programs", operation, time.Since(start), status)
}

func (p *programUseCaseWithMetrics) Create(
	ctx context.Context,
	input *programsDomain.CreateProgramInput,
) (*programsDomain.Program, error) {
	start := time.Now()
	program, err := p.next.Create(ctx, input)
	p.record(ctx, "create", start, err)
	return program, err
}

func (p *programUseCaseWithMetrics) Get(ctx context.Context, programID uuid.UUID) (*programsDomain.Program, error) {
	start := time.Now()
	program, err := p.next.Get(ctx, programID)
	p.record(ctx, "get", start, err)
	return program, err
}

func (p *programUseCaseWithMetrics) List(ctx context.Context, offset, limit int) ([]*programsDomain.Program, error) {
	start := time.Now()
	programs, err := p.next.List(ctx, offset, limit)
	p.record(ctx, "list", start, err)
	return programs, err
}

func (p *programUseCaseWithMetrics) Update(
	ctx context.Context,
	programID uuid.UUID,
	input *programsDomain.UpdateProgramInput,
) (*programsDomain.Program, error) {
	start := time.Now()
	program, err := p.next.Update(ctx, programID, input)
	p.record(ctx, "update", start, err)
	return program, err
}

func (p *programUseCaseWithMetrics) Delete(ctx context.Context, programID uuid.UUID) error {
	start := time.Now()
	err := p.next.Delete(ctx, programID)
	p.record(ctx, "delete", start, err)
	return err
}
