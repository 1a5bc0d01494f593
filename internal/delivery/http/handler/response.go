package handler

import (
	"errors"
	"net/http"

	"github.com/gdugdh24/cofounders-backend/internal/delivery/http/middleware"
	"github.com/gdugdh24/cofounders-backend/internal/domain"
	"github.com/gdugdh24/cofounders-backend/internal/usecase/onboarding"
	"github.com/gin-gonic/gin"
)

// ErrorResponse represents error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse represents success response
type SuccessResponse struct {
	Message string `json:"message"`
}

// RedirectResponse tells the client where to navigate instead.
type RedirectResponse struct {
	RedirectTo string `json:"redirect_to"`
}

// currentIdentity returns the signed-in identity or writes a 401.
func currentIdentity(c *gin.Context) (domain.Identity, bool) {
	session, ok := middleware.SessionFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
		return domain.Identity{}, false
	}
	return session.Identity, true
}

// respondError maps domain and wizard errors to HTTP responses. Anything
// unrecognised becomes a 500 with fallback as its message.
func respondError(c *gin.Context, err error, fallback string) {
	var verr *onboarding.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, verr)
	case errors.Is(err, domain.ErrAlreadyComplete):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "redirect_to": onboarding.SuccessRedirect})
	case errors.Is(err, domain.ErrSubmissionInProgress),
		errors.Is(err, onboarding.ErrAtFirstStep),
		errors.Is(err, onboarding.ErrAtLastStep),
		errors.Is(err, onboarding.ErrNotAtFinalStep),
		errors.Is(err, onboarding.ErrSubmitted):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrProfileNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "profile not found"})
	case errors.Is(err, domain.ErrAIUnavailable):
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "bio suggestions are unavailable right now"})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: fallback})
	}
}
