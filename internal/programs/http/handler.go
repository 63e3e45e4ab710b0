// Package http provides gin handlers for program endpoints.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/healthdesk/healthinfo/internal/httputil"
	programsDomain "github.com/healthdesk/healthinfo/internal/programs/domain"
	"github.com/healthdesk/healthinfo/internal/programs/http/dto"
	programsUseCase "github.com/healthdesk/healthinfo/internal/programs/usecase"
	customValidation "github.com/healthdesk/healthinfo/internal/validation"
)

// ProgramHandler handles HTTP requests for program operations.
type ProgramHandler struct {
	programUseCase programsUseCase.ProgramUseCase
	logger         *slog.Logger
}

// NewProgramHandler creates a new program handler with required dependencies.
func NewProgramHandler(
	programUC programsUseCase.ProgramUseCase,
	logger *slog.Logger,
) *ProgramHandler {
	return &ProgramHandler{
		programUseCase: programUC,
		logger:         logger,
	}
}

// CreateHandler creates a new program.
// POST /v1/programs - Requires authentication.
// Returns 201 Created, 409 Conflict for a duplicate name.
func (h *ProgramHandler) CreateHandler(c *gin.Context) {
	var req dto.ProgramRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	program, err := h.programUseCase.Create(c.Request.Context(), &programsDomain.CreateProgramInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.NewProgramResponse(program))
}

// ListHandler lists programs ordered by name.
// GET /v1/programs?offset=&limit= - Requires authentication.
func (h *ProgramHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	programs, err := h.programUseCase.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.NewProgramListResponse(programs, offset, limit))
}

// GetHandler fetches a single program.
// GET /v1/programs/:id - Requires authentication.
// Returns 200 OK, 404 when the program does not exist.
func (h *ProgramHandler) GetHandler(c *gin.Context) {
	programID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	program, err := h.programUseCase.Get(c.Request.Context(), programID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.NewProgramResponse(program))
}

// UpdateHandler replaces a program's name and description.
// PUT /v1/programs/:id - Requires authentication.
// Returns 200 OK, 404 when missing, 409 when the new name collides.
func (h *ProgramHandler) UpdateHandler(c *gin.Context) {
	programID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	var req dto.ProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	program, err := h.programUseCase.Update(c.Request.Context(), programID, &programsDomain.UpdateProgramInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.NewProgramResponse(program))
}

// DeleteHandler removes a program and its enrollments.
// DELETE /v1/programs/:id - Requires authentication.
// Returns 204 No Content, 404 when the program does not exist.
func (h *ProgramHandler) DeleteHandler(c *gin.Context) {
	programID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := h.programUseCase.Delete(c.Request.Context(), programID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}
