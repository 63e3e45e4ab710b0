// Package dto provides data transfer objects for program HTTP handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/healthdesk/healthinfo/internal/validation"
)

// ProgramRequest carries the program fields for create and update requests.
type ProgramRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Validate checks if the program request is valid.
func (r *ProgramRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.Description,
			validation.Length(0, 2048),
		),
	)
}
