// Package http provides gin handlers for enrollment endpoints.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	enrollmentsDomain "github.com/healthdesk/healthinfo/internal/enrollments/domain"
	"github.com/healthdesk/healthinfo/internal/enrollments/http/dto"
	enrollmentsUseCase "github.com/healthdesk/healthinfo/internal/enrollments/usecase"
	"github.com/healthdesk/healthinfo/internal/httputil"
	customValidation "github.com/healthdesk/healthinfo/internal/validation"
)

// EnrollmentHandler handles HTTP requests for enrollment operations.
type EnrollmentHandler struct {
	enrollmentUseCase enrollmentsUseCase.EnrollmentUseCase
	logger            *slog.Logger
}

// NewEnrollmentHandler creates a new enrollment handler with required dependencies.
func NewEnrollmentHandler(
	enrollmentUC enrollmentsUseCase.EnrollmentUseCase,
	logger *slog.Logger,
) *EnrollmentHandler {
	return &EnrollmentHandler{
		enrollmentUseCase: enrollmentUC,
		logger:            logger,
	}
}

// CreateHandler enrolls a client in a program.
// POST /v1/enrollments - Requires authentication.
// Returns 201 Created, 422 for an unknown client or program.
func (h *EnrollmentHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateEnrollmentRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	programID, err := uuid.Parse(req.ProgramID)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	enrollment, err := h.enrollmentUseCase.Create(c.Request.Context(), &enrollmentsDomain.CreateEnrollmentInput{
		ClientID:       clientID,
		ProgramID:      programID,
		EnrollmentDate: req.EnrollmentDate,
		Status:         enrollmentsDomain.Status(req.Status),
		Notes:          req.Notes,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.NewEnrollmentResponse(enrollment))
}

// ListHandler lists enrollments with client and program details.
// GET /v1/enrollments?offset=&limit= - Requires authentication.
func (h *EnrollmentHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	details, err := h.enrollmentUseCase.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.NewEnrollmentListResponse(details, offset, limit))
}

// ListByClientHandler lists every enrollment of one client.
// GET /v1/clients/:id/enrollments - Requires authentication.
func (h *EnrollmentHandler) ListByClientHandler(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	details, err := h.enrollmentUseCase.ListByClient(c.Request.Context(), clientID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.NewEnrollmentListResponse(details, 0, len(details)))
}

// GetHandler fetches a single enrollment.
// GET /v1/enrollments/:id - Requires authentication.
// Returns 200 OK, 404 when the enrollment does not exist.
func (h *EnrollmentHandler) GetHandler(c *gin.Context) {
	enrollmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	enrollment, err := h.enrollmentUseCase.Get(c.Request.Context(), enrollmentID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.NewEnrollmentResponse(enrollment))
}

// UpdateHandler replaces the mutable fields of an enrollment.
// PUT /v1/enrollments/:id - Requires authentication.
// Returns 200 OK, 404 when the enrollment does not exist.
func (h *EnrollmentHandler) UpdateHandler(c *gin.Context) {
	enrollmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	var req dto.UpdateEnrollmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	enrollment, err := h.enrollmentUseCase.Update(c.Request.Context(), enrollmentID, &enrollmentsDomain.UpdateEnrollmentInput{
		EnrollmentDate: req.EnrollmentDate,
		Status:         enrollmentsDomain.Status(req.Status),
		Notes:          req.Notes,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.NewEnrollmentResponse(enrollment))
}

// DeleteHandler removes an enrollment.
// DELETE /v1/enrollments/:id - Requires authentication.
// Returns 204 No Content, 404 when the enrollment does not exist.
func (h *EnrollmentHandler) DeleteHandler(c *gin.Context) {
	enrollmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := h.enrollmentUseCase.Delete(c.Request.Context(), enrollmentID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}
