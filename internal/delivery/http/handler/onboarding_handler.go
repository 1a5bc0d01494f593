package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gdugdh24/cofounders-backend/internal/domain"
	"github.com/gdugdh24/cofounders-backend/internal/usecase/onboarding"
	"github.com/gin-gonic/gin"
)

type onboardingUseCase interface {
	Load(ctx context.Context, identity domain.Identity) (*domain.Draft, error)
	Update(ctx context.Context, identity domain.Identity, updates ...onboarding.Update) (*domain.Draft, error)
	Next(ctx context.Context, identity domain.Identity) (*domain.Draft, error)
	Prev(ctx context.Context, identity domain.Identity) (*domain.Draft, error)
	SaveProgress(ctx context.Context, identity domain.Identity) (*domain.Profile, error)
	Submit(ctx context.Context, identity domain.Identity) (*onboarding.SubmitResult, error)
	SuggestBios(ctx context.Context, identity domain.Identity) ([]string, error)
}

type OnboardingHandler struct {
	onboardingUseCase onboardingUseCase
}

func NewOnboardingHandler(onboardingUseCase onboardingUseCase) *OnboardingHandler {
	return &OnboardingHandler{
		onboardingUseCase: onboardingUseCase,
	}
}

// UpdateRequest is a batch of field edits applied together.
type UpdateRequest struct {
	Updates []onboarding.FieldUpdate `json:"updates" binding:"required,min=1,dive"`
}

// SubmitResponse is returned once the profile is saved.
type SubmitResponse struct {
	Profile         *domain.Profile `json:"profile"`
	RedirectTo      string          `json:"redirect_to"`
	RedirectAfterMS int64           `json:"redirect_after_ms"`
}

// OptionsResponse lists the choices each wizard control offers.
type OptionsResponse struct {
	Timezones    []domain.Option `json:"timezones"`
	FounderTypes []domain.Option `json:"founder_types"`
	WeeklyHours  []domain.Option `json:"weekly_hours"`
	HasIdea      []domain.Option `json:"has_idea"`
	Calendars    []domain.Option `json:"calendar_types"`
	Skills       []string        `json:"skills"`
}

// GetDraft handles GET /api/onboarding
// @Summary Get onboarding draft
// @Tags onboarding
// @Produce json
// @Success 200 {object} domain.Draft
// @Success 200 {object} RedirectResponse "onboarding already complete"
// @Failure 401 {object} ErrorResponse
// @Router /onboarding [get]
func (h *OnboardingHandler) GetDraft(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	draft, err := h.onboardingUseCase.Load(c.Request.Context(), identity)
	if errors.Is(err, domain.ErrAlreadyComplete) {
		c.JSON(http.StatusOK, RedirectResponse{RedirectTo: onboarding.SuccessRedirect})
		return
	}
	if err != nil {
		respondError(c, err, "failed to load onboarding")
		return
	}
	c.JSON(http.StatusOK, draft)
}

// UpdateDraft handles PATCH /api/onboarding
// @Summary Apply field edits
// @Tags onboarding
// @Accept json
// @Produce json
// @Param request body UpdateRequest true "Field edits"
// @Success 200 {object} domain.Draft
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /onboarding [patch]
func (h *OnboardingHandler) UpdateDraft(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid request body",
		})
		return
	}
	updates, err := onboarding.DecodeAll(req.Updates)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	draft, err := h.onboardingUseCase.Update(c.Request.Context(), identity, updates...)
	if err != nil {
		respondError(c, err, "failed to update onboarding")
		return
	}
	c.JSON(http.StatusOK, draft)
}

// Next handles POST /api/onboarding/next
// @Summary Advance to the next step
// @Tags onboarding
// @Produce json
// @Success 200 {object} domain.Draft
// @Failure 422 {object} onboarding.ValidationError
// @Router /onboarding/next [post]
func (h *OnboardingHandler) Next(c *gin.Context) {
	h.step(c, h.onboardingUseCase.Next)
}

// Prev handles POST /api/onboarding/prev
// @Summary Go back one step
// @Tags onboarding
// @Produce json
// @Success 200 {object} domain.Draft
// @Failure 409 {object} ErrorResponse
// @Router /onboarding/prev [post]
func (h *OnboardingHandler) Prev(c *gin.Context) {
	h.step(c, h.onboardingUseCase.Prev)
}

func (h *OnboardingHandler) step(c *gin.Context, move func(context.Context, domain.Identity) (*domain.Draft, error)) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	draft, err := move(c.Request.Context(), identity)
	if err != nil {
		respondError(c, err, "failed to change step")
		return
	}
	c.JSON(http.StatusOK, draft)
}

// SaveProgress handles POST /api/onboarding/save
// @Summary Save a partial profile
// @Tags onboarding
// @Produce json
// @Success 200 {object} domain.Profile
// @Router /onboarding/save [post]
func (h *OnboardingHandler) SaveProgress(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	profile, err := h.onboardingUseCase.SaveProgress(c.Request.Context(), identity)
	if err != nil {
		respondError(c, err, "failed to save progress")
		return
	}
	c.JSON(http.StatusOK, profile)
}

// Submit handles POST /api/onboarding/submit
// @Summary Complete onboarding
// @Tags onboarding
// @Produce json
// @Success 200 {object} SubmitResponse
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} onboarding.ValidationError
// @Failure 500 {object} ErrorResponse
// @Router /onboarding/submit [post]
func (h *OnboardingHandler) Submit(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	result, err := h.onboardingUseCase.Submit(c.Request.Context(), identity)
	if err != nil {
		respondError(c, err, "Failed to save profile. Please try again.")
		return
	}
	c.JSON(http.StatusOK, SubmitResponse{
		Profile:         result.Profile,
		RedirectTo:      result.RedirectTo,
		RedirectAfterMS: result.RedirectAfter.Milliseconds(),
	})
}

// SuggestBios handles POST /api/onboarding/bio-suggestions
// @Summary Suggest bios
// @Tags onboarding
// @Produce json
// @Success 200 {object} map[string][]string
// @Failure 503 {object} ErrorResponse
// @Router /onboarding/bio-suggestions [post]
func (h *OnboardingHandler) SuggestBios(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	bios, err := h.onboardingUseCase.SuggestBios(c.Request.Context(), identity)
	if err != nil {
		respondError(c, err, "failed to suggest bios")
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": bios})
}

// Options handles GET /api/onboarding/options
// @Summary List wizard choices
// @Tags onboarding
// @Produce json
// @Success 200 {object} OptionsResponse
// @Router /onboarding/options [get]
func (h *OnboardingHandler) Options(c *gin.Context) {
	c.JSON(http.StatusOK, OptionsResponse{
		Timezones:    domain.Timezones,
		FounderTypes: domain.FounderTypes,
		WeeklyHours:  domain.WeeklyHourBands,
		HasIdea:      domain.IdeaStatuses,
		Calendars:    domain.CalendarTypes,
		Skills:       domain.Skills,
	})
}
