// Package handler contains the screen controllers. Each ERP module has
// one handler serving its list pages, modal mutations and status
// transitions.
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/erp/console/internal/infrastructure/erp"
	"github.com/erp/console/internal/infrastructure/intl"
	"github.com/erp/console/internal/interfaces/http/dto"
)

// RequestIDKey is the context key for request ID
const RequestIDKey = "request_id"

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getRequestID extracts the request ID from the context
func getRequestID(c *gin.Context) string {
	if id := c.GetString(RequestIDKey); id != "" {
		return id
	}
	return c.GetHeader("X-Request-ID")
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a success response with pagination meta
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data any, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page, pageSize))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 no content response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response with the appropriate status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, getRequestID(c)))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// Unauthorized sends a 401 unauthorized response
func (h *BaseHandler) Unauthorized(c *gin.Context, message string) {
	h.Error(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, message)
}

// NotFound sends a 404 not found response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, message)
}

// InvalidTransition sends the 422 the gateway answers when a row's
// current status does not allow the requested action
func (h *BaseHandler) InvalidTransition(c *gin.Context) {
	message := intl.T(c.Request.Context(), "error.invalid_transition")
	h.Error(c, http.StatusUnprocessableEntity, dto.ErrCodeInvalidTransition, message)
}

// ValidationError sends a 400 response listing the failed fields. The
// upstream client is never called for these requests.
func (h *BaseHandler) ValidationError(c *gin.Context, err error) {
	message := intl.T(c.Request.Context(), "error.validation")

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]dto.ValidationDetail, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, dto.ValidationDetail{
				Field:   fe.Field(),
				Rule:    fe.Tag(),
				Message: fe.Error(),
			})
		}
		c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(message, getRequestID(c), details))
		return
	}

	h.Error(c, http.StatusBadRequest, dto.ErrCodeInvalidJSON, message)
}

// HandleUpstreamError maps an ERP client failure onto the gateway's
// envelope. Server-provided messages pass through; when the backend
// gives none, the localized fallback is used so the modal always has
// something to show.
func (h *BaseHandler) HandleUpstreamError(c *gin.Context, err error) {
	ctx := c.Request.Context()

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		// The caller went away; nobody reads this response.
		c.AbortWithStatus(499)
		return
	}

	apiErr, ok := erp.AsAPIError(err)
	if !ok {
		h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, intl.T(ctx, "error.generic"))
		return
	}

	switch {
	case apiErr.StatusCode == 0:
		h.Error(c, http.StatusBadGateway, dto.ErrCodeUpstreamUnavailable, intl.T(ctx, "error.unavailable"))
	case apiErr.IsAuth():
		h.Unauthorized(c, intl.T(ctx, "error.unauthorized"))
	case apiErr.IsNotFound():
		h.NotFound(c, messageOr(apiErr, intl.T(ctx, "error.not_found")))
	case apiErr.StatusCode >= 400 && apiErr.StatusCode < 500:
		code := apiErr.Code
		if code == "" {
			code = dto.ErrCodeUpstream
		}
		h.Error(c, apiErr.StatusCode, code, messageOr(apiErr, intl.T(ctx, "error.generic")))
	default:
		h.Error(c, http.StatusBadGateway, dto.ErrCodeUpstream, messageOr(apiErr, intl.T(ctx, "error.generic")))
	}
}

func messageOr(apiErr *erp.APIError, fallback string) string {
	if apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
