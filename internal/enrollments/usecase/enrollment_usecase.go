package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	cryptoDomain "github.com/healthdesk/healthinfo/internal/crypto/domain"
	cryptoService "github.com/healthdesk/healthinfo/internal/crypto/service"
	enrollmentsDomain "github.com/healthdesk/healthinfo/internal/enrollments/domain"
)

// enrollmentUseCase implements EnrollmentUseCase.
type enrollmentUseCase struct {
	repo  EnrollmentRepository
	codec cryptoService.FieldCodec
}

// Create validates the status, encrypts the notes, and stores the enrollment.
func (e *enrollmentUseCase) Create(
	ctx context.Context,
	input *enrollmentsDomain.CreateEnrollmentInput,
) (*enrollmentsDomain.Enrollment, error) {
	if !input.Status.Valid() {
		return nil, enrollmentsDomain.ErrInvalidStatus
	}

	notes, err := e.codec.EncryptField(input.Notes)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	record := &enrollmentsDomain.EnrollmentRecord{
		ID:             uuid.Must(uuid.NewV7()),
		ClientID:       input.ClientID,
		ProgramID:      input.ProgramID,
		EnrollmentDate: input.EnrollmentDate,
		Status:         input.Status,
		Notes:          notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := e.repo.Create(ctx, record); err != nil {
		return nil, err
	}

	return e.decryptRecord(record), nil
}

// Get fetches an enrollment and decrypts its notes.
func (e *enrollmentUseCase) Get(ctx context.Context, enrollmentID uuid.UUID) (*enrollmentsDomain.Enrollment, error) {
	record, err := e.repo.Get(ctx, enrollmentID)
	if err != nil {
		return nil, err
	}
	return e.decryptRecord(record), nil
}

// List fetches a page of enrollments with decrypted client names and program
// names.
func (e *enrollmentUseCase) List(
	ctx context.Context,
	offset, limit int,
) ([]*enrollmentsDomain.EnrollmentWithDetails, error) {
	records, err := e.repo.ListWithDetails(ctx, offset, limit)
	if err != nil {
		return nil, err
	}
	return e.decryptDetails(records), nil
}

// ListByClient fetches every enrollment of one client with details.
func (e *enrollmentUseCase) ListByClient(
	ctx context.Context,
	clientID uuid.UUID,
) ([]*enrollmentsDomain.EnrollmentWithDetails, error) {
	records, err := e.repo.ListByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return e.decryptDetails(records), nil
}

// Update validates the status, re-encrypts the notes, and replaces the
// mutable fields of the enrollment. The client and program never change.
func (e *enrollmentUseCase) Update(
	ctx context.Context,
	enrollmentID uuid.UUID,
	input *enrollmentsDomain.UpdateEnrollmentInput,
) (*enrollmentsDomain.Enrollment, error) {
	if !input.Status.Valid() {
		return nil, enrollmentsDomain.ErrInvalidStatus
	}

	record, err := e.repo.Get(ctx, enrollmentID)
	if err != nil {
		return nil, err
	}

	notes, err := e.codec.EncryptField(input.Notes)
	if err != nil {
		return nil, err
	}

	record.EnrollmentDate = input.EnrollmentDate
	record.Status = input.Status
	record.Notes = notes
	record.UpdatedAt = time.Now().UTC()

	if err := e.repo.Update(ctx, record); err != nil {
		return nil, err
	}

	return e.decryptRecord(record), nil
}

// Delete removes an enrollment.
func (e *enrollmentUseCase) Delete(ctx context.Context, enrollmentID uuid.UUID) error {
	return e.repo.Delete(ctx, enrollmentID)
}

// decryptRecord maps a stored record to its decrypted view.
func (e *enrollmentUseCase) decryptRecord(record *enrollmentsDomain.EnrollmentRecord) *enrollmentsDomain.Enrollment {
	return &enrollmentsDomain.Enrollment{
		ID:             record.ID,
		ClientID:       record.ClientID,
		ProgramID:      record.ProgramID,
		EnrollmentDate: record.EnrollmentDate,
		Status:         record.Status,
		Notes:          e.decryptNotes(record.ID, record.Notes),
		CreatedAt:      record.CreatedAt,
		UpdatedAt:      record.UpdatedAt,
	}
}

// decryptDetails maps detail rows to their decrypted views. Client name
// fields decrypt independently; a corrupt one gets the placeholder without
// taking the row down.
func (e *enrollmentUseCase) decryptDetails(
	records []*enrollmentsDomain.EnrollmentDetailRecord,
) []*enrollmentsDomain.EnrollmentWithDetails {
	details := make([]*enrollmentsDomain.EnrollmentWithDetails, 0, len(records))
	for _, record := range records {
		details = append(details, &enrollmentsDomain.EnrollmentWithDetails{
			Enrollment:      *e.decryptRecord(&record.EnrollmentRecord),
			ClientFirstName: e.decryptName(record.ClientID, "first_name", record.ClientFirstName),
			ClientLastName:  e.decryptName(record.ClientID, "last_name", record.ClientLastName),
			ProgramName:     record.ProgramName,
		})
	}
	return details
}

// decryptNotes decrypts the optional notes field; nil stays nil, a corrupt
// value becomes the placeholder.
func (e *enrollmentUseCase) decryptNotes(enrollmentID uuid.UUID, encoded *string) *string {
	if encoded == nil {
		return nil
	}

	plaintext, err := e.codec.Decrypt(*encoded)
	if err != nil {
		slog.Warn("failed to decrypt enrollment notes",
			"enrollment_id", enrollmentID, "error", err)
		placeholder := cryptoDomain.DecryptionPlaceholder
		return &placeholder
	}
	return &plaintext
}

// decryptName decrypts a joined client name column.
func (e *enrollmentUseCase) decryptName(clientID uuid.UUID, field string, encoded *string) string {
	if encoded == nil {
		slog.Warn("required encrypted field is null",
			"client_id", clientID, "field", field)
		return cryptoDomain.DecryptionPlaceholder
	}

	plaintext, err := e.codec.Decrypt(*encoded)
	if err != nil {
		slog.Warn("failed to decrypt client field",
			"client_id", clientID, "field", field, "error", err)
		return cryptoDomain.DecryptionPlaceholder
	}
	return plaintext
}

// NewEnrollmentUseCase creates a new EnrollmentUseCase.
func NewEnrollmentUseCase(repo EnrollmentRepository, codec cryptoService.FieldCodec) EnrollmentUseCase {
	return &enrollmentUseCase{repo: repo, codec: codec}
}
