package handler

import (
	"context"
	"net/http"

	"github.com/gdugdh24/cofounders-backend/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type profileUseCase interface {
	GetMyProfile(ctx context.Context, identityID uuid.UUID) (*domain.Profile, error)
}

type ProfileHandler struct {
	profileUseCase profileUseCase
}

func NewProfileHandler(profileUseCase profileUseCase) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase: profileUseCase,
	}
}

// GetMyProfile handles GET /api/profile/me
// @Summary Get my profile
// @Description Get current user's profile
// @Tags profile
// @Produce json
// @Success 200 {object} domain.Profile
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /profile/me [get]
func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	profile, err := h.profileUseCase.GetMyProfile(c.Request.Context(), identity.ID)
	if err != nil {
		respondError(c, err, "failed to get profile")
		return
	}

	c.JSON(http.StatusOK, profile)
}
