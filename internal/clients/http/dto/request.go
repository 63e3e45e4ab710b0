// Package dto provides data transfer objects for client HTTP handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/healthdesk/healthinfo/internal/validation"
)

// ClientRequest carries the client fields for create and full-update
// requests. Gender and address are optional.
type ClientRequest struct {
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	DateOfBirth   string `json:"date_of_birth"`
	Gender        string `json:"gender"`
	ContactNumber string `json:"contact_number"`
	Email         string `json:"email"`
	Address       string `json:"address"`
}

// Validate checks if the client request is valid.
func (r *ClientRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.FirstName,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.LastName,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.DateOfBirth,
			validation.Required,
			customValidation.DateString,
		),
		validation.Field(&r.Gender,
			validation.Length(0, 64),
		),
		validation.Field(&r.ContactNumber,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 64),
		),
		validation.Field(&r.Email,
			validation.Required,
			customValidation.NotBlank,
			customValidation.Email,
			validation.Length(1, 255),
		),
		validation.Field(&r.Address,
			validation.Length(0, 1024),
		),
	)
}
