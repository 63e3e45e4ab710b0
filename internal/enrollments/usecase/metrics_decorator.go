package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	enrollmentsDomain "github.com/healthdesk/healthinfo/internal/enrollments/domain"
	"github.com/healthdesk/healthinfo/internal/metrics"
)

// enrollmentUseCaseWithMetrics decorates EnrollmentUseCase with metrics
// instrumentation.
type enrollmentUseCaseWithMetrics struct {
	next    EnrollmentUseCase
	metrics metrics.BusinessMetrics
}

// NewEnrollmentUseCaseWithMetrics wraps an EnrollmentUseCase with metrics recording.
func NewEnrollmentUseCaseWithMetrics(useCase EnrollmentUseCase, m metrics.BusinessMetrics) EnrollmentUseCase {
	return &enrollmentUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// record emits the operation counter and duration histogram for one call.
func (e *enrollmentUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	e.metrics.RecordOperation(ctx, "enrollments", operation, status)
	e.metrics.RecordDuration(ctx, "enrollments", operation, time.Since(start), status)
}

func (e *enrollmentUseCaseWithMetrics) Create(
	ctx context.Context,
	input *enrollmentsDomain.CreateEnrollmentInput,
) (*enrollmentsDomain.Enrollment, error) {
	start := time.Now()
	enrollment, err := e.next.Create(ctx, input)
	e.record(ctx, "create", start, err)
	return enrollment, err
}

func (e *enrollmentUseCaseWithMetrics) Get(
	ctx context.Context,
	enrollmentID uuid.UUID,
) (*enrollmentsDomain.Enrollment, error) {
	start := time.Now()
	enrollment, err := e.next.Get(ctx, enrollmentID)
	e.record(ctx, "get", start, err)
	return enrollment, err
}

func (e *enrollmentUseCaseWithMetrics) List(
	ctx context.Context,
	offset, limit int,
) ([]*enrollmentsDomain.EnrollmentWithDetails, error) {
	start := time.Now()
	enrollments, err := e.next.List(ctx, offset, limit)
	e.record(ctx, "list", start, err)
	return enrollments, err
}

func (e *enrollmentUseCaseWithMetrics) ListByClient(
	ctx context.Context,
	clientID uuid.UUID,
) ([]*enrollmentsDomain.EnrollmentWithDetails, error) {
	start := time.Now()
	enrollments, err := e.next.ListByClient(ctx, clientID)
	e.record(ctx, "list_by_client", start, err)
	return enrollments, err
}

func (e *enrollmentUseCaseWithMetrics) Update(
	ctx context.Context,
	enrollmentID uuid.UUID,
	input *enrollmentsDomain.UpdateEnrollmentInput,
) (*enrollmentsDomain.Enrollment, error) {
	start := time.Now()
	enrollment, err := e.next.Update(ctx, enrollmentID, input)
	e.record(ctx, "update", start, err)
	return enrollment, err
}

func (e *enrollmentUseCaseWithMetrics) Delete(ctx context.Context, enrollmentID uuid.UUID) error {
	start := time.Now()
	err := e.next.Delete(ctx, enrollmentID)
	e.record(ctx, "delete", start, err)
	return err
}
