package dto

import (
	"time"

	"github.com/google/uuid"

	enrollmentsDomain "github.com/healthdesk/healthinfo/internal/enrollments/domain"
)

// EnrollmentResponse is the decrypted representation of an enrollment.
type EnrollmentResponse struct {
	ID             uuid.UUID `json:"id"`
	ClientID       uuid.UUID `json:"client_id"`
	ProgramID      uuid.UUID `json:"program_id"`
	EnrollmentDate string    `json:"enrollment_date"`
	Status         string    `json:"status"`
	Notes          *string   `json:"notes"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewEnrollmentResponse maps a domain enrollment to its response representation.
func NewEnrollmentResponse(enrollment *enrollmentsDomain.Enrollment) EnrollmentResponse {
	return EnrollmentResponse{
		ID:             enrollment.ID,
		ClientID:       enrollment.ClientID,
		ProgramID:      enrollment.ProgramID,
		EnrollmentDate: enrollment.EnrollmentDate,
		Status:         string(enrollment.Status),
		Notes:          enrollment.Notes,
		CreatedAt:      enrollment.CreatedAt,
		UpdatedAt:      enrollment.UpdatedAt,
	}
}

// EnrollmentDetailResponse is an enrollment joined with the decrypted client
// name and the program name.
type EnrollmentDetailResponse struct {
	EnrollmentResponse
	ClientFirstName string `json:"client_first_name"`
	ClientLastName  string `json:"client_last_name"`
	ProgramName     string `json:"program_name"`
}

// NewEnrollmentDetailResponse maps a detail view to its response representation.
func NewEnrollmentDetailResponse(detail *enrollmentsDomain.EnrollmentWithDetails) EnrollmentDetailResponse {
	return EnrollmentDetailResponse{
		EnrollmentResponse: NewEnrollmentResponse(&detail.Enrollment),
		ClientFirstName:    detail.ClientFirstName,
		ClientLastName:     detail.ClientLastName,
		ProgramName:        detail.ProgramName,
	}
}

// EnrollmentListResponse wraps a page of enrollment detail rows.
type EnrollmentListResponse struct {
	Enrollments []EnrollmentDetailResponse `json:"enrollments"`
	Offset      int                        `json:"offset"`
	Limit       int                        `json:"limit"`
}

// NewEnrollmentListResponse maps detail views to a list response.
func NewEnrollmentListResponse(details []*enrollmentsDomain.EnrollmentWithDetails, offset, limit int) EnrollmentListResponse {
	items := make([]EnrollmentDetailResponse, 0, len(details))
	for _, detail := range details {
		items = append(items, NewEnrollmentDetailResponse(detail))
	}
	return EnrollmentListResponse{
		Enrollments: items,
		Offset:      offset,
		Limit:       limit,
	}
}
