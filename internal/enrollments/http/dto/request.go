// Package dto provides data transfer objects for enrollment HTTP handling.
package dto

import (
	validation "github.com/jellydator/validation"

	enrollmentsDomain "github.com/healthdesk/healthinfo/internal/enrollments/domain"
	customValidation "github.com/healthdesk/healthinfo/internal/validation"
)

// statusRule accepts only the known enrollment lifecycle states.
var statusRule = validation.In(
	string(enrollmentsDomain.StatusActive),
	string(enrollmentsDomain.StatusCompleted),
	string(enrollmentsDomain.StatusWithdrawn),
)

// CreateEnrollmentRequest carries the fields for enrolling a client in a
// program.
type CreateEnrollmentRequest struct {
	ClientID       string `json:"client_id"`
	ProgramID      string `json:"program_id"`
	EnrollmentDate string `json:"enrollment_date"`
	Status         string `json:"status"`
	Notes          string `json:"notes"`
}

// Validate checks if the create enrollment request is valid.
func (r *CreateEnrollmentRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.ClientID,
			validation.Required,
			customValidation.NotBlank,
		),
		validation.Field(&r.ProgramID,
			validation.Required,
			customValidation.NotBlank,
		),
		validation.Field(&r.EnrollmentDate,
			validation.Required,
			customValidation.DateString,
		),
		validation.Field(&r.Status,
			validation.Required,
			statusRule,
		),
		validation.Field(&r.Notes,
			validation.Length(0, 4096),
		),
	)
}

// UpdateEnrollmentRequest carries the mutable enrollment fields.
type UpdateEnrollmentRequest struct {
	EnrollmentDate string `json:"enrollment_date"`
	Status         string `json:"status"`
	Notes          string `json:"notes"`
}

// Validate checks if the update enrollment request is valid.
func (r *UpdateEnrollmentRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.EnrollmentDate,
			validation.Required,
			customValidation.DateString,
		),
		validation.Field(&r.Status,
			validation.Required,
			statusRule,
		),
		validation.Field(&r.Notes,
			validation.Length(0, 4096),
		),
	)
}
