package handler

import (
	"context"
	"net/http"

	"github.com/gdugdh24/cofounders-backend/internal/delivery/http/middleware"
	"github.com/gdugdh24/cofounders-backend/internal/logging"
	"github.com/gdugdh24/cofounders-backend/internal/usecase/auth"
	"github.com/gdugdh24/cofounders-backend/internal/usecase/profile"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type authUseCase interface {
	SignInURL(ctx context.Context) (string, error)
	ExchangeCodeForSession(ctx context.Context, code, state string) (*auth.AuthResponse, error)
	SignOut(ctx context.Context, token string) error
}

type redirectResolver interface {
	RedirectTarget(ctx context.Context, identityID uuid.UUID) string
}

type AuthHandler struct {
	authUseCase authUseCase
	profiles    redirectResolver
	cookie      middleware.SessionCookie
	logger      logging.Logger
}

func NewAuthHandler(authUseCase authUseCase, profiles redirectResolver, cookie middleware.SessionCookie, logger logging.Logger) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
		profiles:    profiles,
		cookie:      cookie,
		logger:      logger,
	}
}

// SignIn handles GET /api/auth/signin
// @Summary Sign in with LinkedIn
// @Tags auth
// @Success 302
// @Failure 500 {object} ErrorResponse
// @Router /auth/signin [get]
func (h *AuthHandler) SignIn(c *gin.Context) {
	url, err := h.authUseCase.SignInURL(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "failed to start sign in",
		})
		return
	}
	c.Redirect(http.StatusFound, url)
}

// Callback handles GET /api/auth/callback
// Every failure lands on the onboarding page, which the gate turns into a
// sign-in redirect when no session was created.
// @Summary OAuth callback
// @Tags auth
// @Param code query string false "authorization code"
// @Param state query string false "oauth state"
// @Success 302
// @Router /auth/callback [get]
func (h *AuthHandler) Callback(c *gin.Context) {
	ctx := c.Request.Context()
	if providerErr := c.Query("error"); providerErr != "" {
		h.logger.Warn(ctx, "identity provider returned an error", "error", providerErr,
			"description", c.Query("error_description"))
		c.Redirect(http.StatusFound, profile.OnboardingPath)
		return
	}

	resp, err := h.authUseCase.ExchangeCodeForSession(ctx, c.Query("code"), c.Query("state"))
	if err != nil {
		h.logger.Warn(ctx, "sign in failed", "error", err)
		c.Redirect(http.StatusFound, profile.OnboardingPath)
		return
	}

	h.cookie.Write(c, resp.Token, resp.ExpiresAt)
	c.Redirect(http.StatusFound, h.profiles.RedirectTarget(ctx, resp.Session.Identity.ID))
}

// SignOut handles POST /api/auth/signout
// @Summary Sign out
// @Tags auth
// @Produce json
// @Success 200 {object} SuccessResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/signout [post]
func (h *AuthHandler) SignOut(c *gin.Context) {
	token, ok := middleware.TokenFrom(c)
	if !ok {
		token, _ = h.cookie.Read(c)
	}

	if token != "" {
		if err := h.authUseCase.SignOut(c.Request.Context(), token); err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, ErrorResponse{
				Error: "sign out failed",
			})
			return
		}
	}

	h.cookie.Clear(c)
	c.JSON(http.StatusOK, SuccessResponse{
		Message: "signed out successfully",
	})
}

// Me returns current user info
// @Summary Get current user
// @Tags auth
// @Produce json
// @Success 200 {object} domain.Identity
// @Failure 401 {object} ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, identity)
}
