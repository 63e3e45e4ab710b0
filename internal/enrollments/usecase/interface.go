// Package usecase implements enrollment business logic: encrypted notes,
// status lifecycle checks, and detail views joining decrypted client names.
package usecase

import (
	"context"

	"github.com/google/uuid"

	enrollmentsDomain "github.com/healthdesk/healthinfo/internal/enrollments/domain"
)

// EnrollmentRepository persists enrollment records. Notes columns hold opaque
// encrypted values.
type EnrollmentRepository interface {
	Create(ctx context.Context, record *enrollmentsDomain.EnrollmentRecord) error
	Update(ctx context.Context, record *enrollmentsDomain.EnrollmentRecord) error
	Get(ctx context.Context, enrollmentID uuid.UUID) (*enrollmentsDomain.EnrollmentRecord, error)
	ListWithDetails(ctx context.Context, offset, limit int) ([]*enrollmentsDomain.EnrollmentDetailRecord, error)
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]*enrollmentsDomain.EnrollmentDetailRecord, error)
	Delete(ctx context.Context, enrollmentID uuid.UUID) error
}

// EnrollmentUseCase defines enrollment operations over decrypted views.
type EnrollmentUseCase interface {
	// Create enrolls a client in a program. A status outside the known
	// lifecycle states is rejected with ErrInvalidStatus; a notes encryption
	// failure aborts the write.
	Create(ctx context.Context, input *enrollmentsDomain.CreateEnrollmentInput) (*enrollmentsDomain.Enrollment, error)

	// Get fetches a single enrollment with decrypted notes.
	Get(ctx context.Context, enrollmentID uuid.UUID) (*enrollmentsDomain.Enrollment, error)

	// List fetches a page of enrollments joined with decrypted client names
	// and program names, newest first.
	List(ctx context.Context, offset, limit int) ([]*enrollmentsDomain.EnrollmentWithDetails, error)

	// ListByClient fetches every enrollment of one client with details.
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]*enrollmentsDomain.EnrollmentWithDetails, error)

	// Update replaces the mutable fields of an enrollment.
	Update(ctx context.Context, enrollmentID uuid.UUID, input *enrollmentsDomain.UpdateEnrollmentInput) (*enrollmentsDomain.Enrollment, error)

	// Delete removes an enrollment.
	Delete(ctx context.Context, enrollmentID uuid.UUID) error
}
