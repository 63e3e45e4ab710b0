package dto

import (
	"time"

	"github.com/google/uuid"

	programsDomain "github.com/healthdesk/healthinfo/internal/programs/domain"
)

// ProgramResponse is the public representation of a program.
type ProgramResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewProgramResponse maps a domain program to its response representation.
func NewProgramResponse(program *programsDomain.Program) ProgramResponse {
	return ProgramResponse{
		ID:          program.ID,
		Name:        program.Name,
		Description: program.Description,
		CreatedAt:   program.CreatedAt,
		UpdatedAt:   program.UpdatedAt,
	}
}

// ProgramListResponse wraps a page of programs.
type ProgramListResponse struct {
	Programs []ProgramResponse `json:"programs"`
	Offset   int               `json:"offset"`
	Limit    int               `json:"limit"`
}

// NewProgramListResponse maps a slice of domain programs to a list response.
func NewProgramListResponse(programs []*programsDomain.Program, offset, limit int) ProgramListResponse {
	items := make([]ProgramResponse, 0, len(programs))
	for _, program := range programs {
		items = append(items, NewProgramResponse(program))
	}
	return ProgramListResponse{
		Programs: items,
		Offset:   offset,
		Limit:    limit,
	}
}
