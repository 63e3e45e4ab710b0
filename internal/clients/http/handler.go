// Package http provides gin handlers for client endpoints.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	clientsDomain "github.com/healthdesk/healthinfo/internal/clients/domain"
	"github.com/healthdesk/healthinfo/internal/clients/http/dto"
	clientsUseCase "github.com/healthdesk/healthinfo/internal/clients/usecase"
	"github.com/healthdesk/healthinfo/internal/httputil"
	customValidation "github.com/healthdesk/healthinfo/internal/validation"
)

// ClientHandler handles HTTP requests for client record operations.
type ClientHandler struct {
	clientUseCase clientsUseCase.ClientUseCase
	logger        *slog.Logger
}

// NewClientHandler creates a new client handler with required dependencies.
func NewClientHandler(
	clientUC clientsUseCase.ClientUseCase,
	logger *slog.Logger,
) *ClientHandler {
	return &ClientHandler{
		clientUseCase: clientUC,
		logger:        logger,
	}
}

// CreateHandler creates a new client record.
// POST /v1/clients - Requires authentication.
// Returns 201 Created with the decrypted view of the stored client.
func (h *ClientHandler) CreateHandler(c *gin.Context) {
	var req dto.ClientRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	client, err := h.clientUseCase.Create(c.Request.Context(), &clientsDomain.CreateClientInput{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		DateOfBirth:   req.DateOfBirth,
		Gender:        req.Gender,
		ContactNumber: req.ContactNumber,
		Email:         req.Email,
		Address:       req.Address,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.NewClientResponse(client))
}

// ListHandler lists clients or dispatches a search.
// GET /v1/clients?offset=&limit=&q= - Requires authentication.
// A non-empty q always yields an empty list; client fields are encrypted at
// rest and cannot be matched server-side.
func (h *ClientHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	query := c.Query("q")
	if query != "" {
		clients, err := h.clientUseCase.Search(c.Request.Context(), query)
		if err != nil {
			httputil.HandleErrorGin(c, err, h.logger)
			return
		}
		c.JSON(http.StatusOK, dto.NewClientListResponse(clients, offset, limit))
		return
	}

	clients, err := h.clientUseCase.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.NewClientListResponse(clients, offset, limit))
}

// GetHandler fetches a single client.
// GET /v1/clients/:id - Requires authentication.
// Returns 200 OK with the decrypted view, 404 when the client does not exist.
func (h *ClientHandler) GetHandler(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	client, err := h.clientUseCase.Get(c.Request.Context(), clientID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.NewClientResponse(client))
}

// UpdateHandler replaces a client record.
// PUT /v1/clients/:id - Requires authentication.
// Returns 200 OK with the updated decrypted view, 404 when the client does
// not exist.
func (h *ClientHandler) UpdateHandler(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	var req dto.ClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	client, err := h.clientUseCase.Update(c.Request.Context(), clientID, &clientsDomain.UpdateClientInput{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		DateOfBirth:   req.DateOfBirth,
		Gender:        req.Gender,
		ContactNumber: req.ContactNumber,
		Email:         req.Email,
		Address:       req.Address,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.NewClientResponse(client))
}

// DeleteHandler removes a client and its enrollments.
// DELETE /v1/clients/:id - Requires authentication.
// Returns 204 No Content, 404 when the client does not exist.
func (h *ClientHandler) DeleteHandler(c *gin.Context) {
	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := h.clientUseCase.Delete(c.Request.Context(), clientID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}
