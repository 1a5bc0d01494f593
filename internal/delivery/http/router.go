package http

import (
	"slices"

	"github.com/gdugdh24/cofounders-backend/internal/delivery/http/handler"
	"github.com/gdugdh24/cofounders-backend/internal/delivery/http/middleware"
	"github.com/gdugdh24/cofounders-backend/internal/logging"
	"github.com/gdugdh24/cofounders-backend/internal/usecase/gate"
	"github.com/gin-gonic/gin"
)

// Pages lists the frontend routes served from the web root. The configured
// login path is served alongside them.
var Pages = []string{"/", "/signin", "/onboarding", "/dashboard", "/tos", "/privacy", "/privacy-policy", "/blog"}

// StaticMount exposes a local directory under a URL prefix.
type StaticMount struct {
	Prefix string
	Dir    string
}

type Router struct {
	authHandler       *handler.AuthHandler
	onboardingHandler *handler.OnboardingHandler
	profileHandler    *handler.ProfileHandler
	pageHandler       *handler.PageHandler
	sessions          *middleware.SessionMiddleware
	gate              *gate.GateUseCase
	status            gate.StatusReader
	logger            logging.Logger
	loginPath         string
	static            []StaticMount
}

func NewRouter(
	authHandler *handler.AuthHandler,
	onboardingHandler *handler.OnboardingHandler,
	profileHandler *handler.ProfileHandler,
	pageHandler *handler.PageHandler,
	sessions *middleware.SessionMiddleware,
	gateUseCase *gate.GateUseCase,
	status gate.StatusReader,
	logger logging.Logger,
	loginPath string,
	static ...StaticMount,
) *Router {
	return &Router{
		authHandler:       authHandler,
		onboardingHandler: onboardingHandler,
		profileHandler:    profileHandler,
		pageHandler:       pageHandler,
		sessions:          sessions,
		gate:              gateUseCase,
		status:            status,
		logger:            logger,
		loginPath:         loginPath,
		static:            static,
	}
}

func (r *Router) Setup() *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestLogger(r.logger),
		r.sessions.LoadSession(),
		middleware.AccessGate(r.gate, r.status, r.logger),
	)

	// Health check (supports both GET and HEAD)
	router.GET("/health", handler.Health)
	router.HEAD("/health", handler.Health)

	for _, mount := range r.static {
		router.Static(mount.Prefix, mount.Dir)
	}

	for _, page := range r.pages() {
		router.GET(page, r.pageHandler.Serve)
	}

	api := router.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.GET("/signin", r.authHandler.SignIn)
			auth.GET("/callback", r.authHandler.Callback)
			auth.POST("/signout", r.authHandler.SignOut)
			auth.GET("/me", r.sessions.RequireSession(), r.authHandler.Me)
		}

		api.GET("/onboarding/options", r.onboardingHandler.Options)

		// Protected routes
		protected := api.Group("")
		protected.Use(r.sessions.RequireSession())
		{
			onboarding := protected.Group("/onboarding")
			{
				onboarding.GET("", r.onboardingHandler.GetDraft)
				onboarding.PATCH("", r.onboardingHandler.UpdateDraft)
				onboarding.POST("/next", r.onboardingHandler.Next)
				onboarding.POST("/prev", r.onboardingHandler.Prev)
				onboarding.POST("/save", r.onboardingHandler.SaveProgress)
				onboarding.POST("/submit", r.onboardingHandler.Submit)
				onboarding.POST("/bio-suggestions", r.onboardingHandler.SuggestBios)
			}

			protected.GET("/profile/me", r.profileHandler.GetMyProfile)
		}
	}

	return router
}

func (r *Router) pages() []string {
	if r.loginPath == "" || slices.Contains(Pages, r.loginPath) {
		return Pages
	}
	return append(slices.Clone(Pages), r.loginPath)
}
