package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gdugdh24/cofounders-backend/internal/delivery/http/handler"
	"github.com/gdugdh24/cofounders-backend/internal/delivery/http/middleware"
	"github.com/gdugdh24/cofounders-backend/internal/domain"
	"github.com/gdugdh24/cofounders-backend/internal/logging"
	"github.com/gdugdh24/cofounders-backend/internal/usecase/auth"
	"github.com/gdugdh24/cofounders-backend/internal/usecase/gate"
	"github.com/gdugdh24/cofounders-backend/internal/usecase/onboarding"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSessions struct{ identity domain.Identity }

func (s stubSessions) Refresh(_ context.Context, token string) (*auth.AuthResponse, bool, error) {
	if token != "good" {
		return nil, false, domain.ErrInvalidToken
	}
	session := &domain.Session{ID: uuid.New(), Identity: s.identity, ExpiresAt: time.Now().Add(time.Hour)}
	return &auth.AuthResponse{Token: token, ExpiresAt: session.ExpiresAt, Session: session}, false, nil
}

type stubAuth struct{}

func (stubAuth) SignInURL(context.Context) (string, error) { return "https://idp.test/authorize", nil }
func (stubAuth) ExchangeCodeForSession(context.Context, string, string) (*auth.AuthResponse, error) {
	return nil, domain.ErrInvalidOAuthState
}
func (stubAuth) SignOut(context.Context, string) error { return nil }

type stubProfiles struct{ complete bool }

func (p stubProfiles) IsOnboardingComplete(context.Context, uuid.UUID) (bool, error) {
	return p.complete, nil
}

func (p stubProfiles) RedirectTarget(context.Context, uuid.UUID) string {
	if p.complete {
		return "/dashboard"
	}
	return "/onboarding"
}

func (p stubProfiles) GetMyProfile(_ context.Context, id uuid.UUID) (*domain.Profile, error) {
	return &domain.Profile{ID: id, OnboardingComplete: p.complete}, nil
}

type stubOnboarding struct{}

func (stubOnboarding) Load(_ context.Context, identity domain.Identity) (*domain.Draft, error) {
	return &domain.Draft{IdentityID: identity.ID, Step: domain.StepBasics, Authenticated: true}, nil
}
func (s stubOnboarding) Update(ctx context.Context, identity domain.Identity, _ ...onboarding.Update) (*domain.Draft, error) {
	return s.Load(ctx, identity)
}
func (s stubOnboarding) Next(ctx context.Context, identity domain.Identity) (*domain.Draft, error) {
	return s.Load(ctx, identity)
}
func (s stubOnboarding) Prev(context.Context, domain.Identity) (*domain.Draft, error) {
	return nil, onboarding.ErrAtFirstStep
}
func (stubOnboarding) SaveProgress(context.Context, domain.Identity) (*domain.Profile, error) {
	return &domain.Profile{}, nil
}
func (stubOnboarding) Submit(context.Context, domain.Identity) (*onboarding.SubmitResult, error) {
	return nil, domain.ErrSubmissionInProgress
}
func (stubOnboarding) SuggestBios(context.Context, domain.Identity) ([]string, error) {
	return nil, domain.ErrAIUnavailable
}

func newTestEngine(t *testing.T, complete bool) *gin.Engine {
	t.Helper()
	return newTestEngineWithLogin(t, complete, "/signin")
}

func newTestEngineWithLogin(t *testing.T, complete bool, loginPath string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	uploads := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(uploads, "avatars"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(uploads, "avatars", "a.png"), []byte("png"), 0o644))

	logger := logging.Nop()
	profiles := stubProfiles{complete: complete}
	cookie := middleware.SessionCookie{}
	identity := domain.Identity{ID: uuid.New(), GivenName: "Ada"}

	router := NewRouter(
		handler.NewAuthHandler(stubAuth{}, profiles, cookie, logger),
		handler.NewOnboardingHandler(stubOnboarding{}),
		handler.NewProfileHandler(profiles),
		handler.NewPageHandler(""),
		middleware.NewSessionMiddleware(stubSessions{identity: identity}, cookie, logger),
		gate.NewGateUseCase([]string{"/api/", "/static/"}, gate.DefaultPublicPaths, gate.Paths{SignIn: loginPath}),
		profiles,
		logger,
		loginPath,
		StaticMount{Prefix: "/static/uploads", Dir: uploads},
	)
	return router.Setup()
}

func serve(r http.Handler, method, path string, signedIn bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if signedIn {
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "good"})
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Health(t *testing.T) {
	r := newTestEngine(t, false)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/health", false).Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodHead, "/health", false).Code)
}

func TestRouter_Gate(t *testing.T) {
	tests := []struct {
		name     string
		complete bool
		path     string
		signedIn bool
		code     int
		location string
	}{
		{"landing", false, "/", false, http.StatusOK, ""},
		{"signin page", false, "/signin", false, http.StatusOK, ""},
		{"dashboard anonymous", false, "/dashboard", false, http.StatusTemporaryRedirect, "/signin"},
		{"dashboard incomplete", false, "/dashboard", true, http.StatusTemporaryRedirect, "/onboarding"},
		{"onboarding complete", true, "/onboarding", true, http.StatusTemporaryRedirect, "/dashboard"},
		{"dashboard complete", true, "/dashboard", true, http.StatusOK, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(newTestEngine(t, tt.complete), http.MethodGet, tt.path, tt.signedIn)
			assert.Equal(t, tt.code, rec.Code)
			assert.Equal(t, tt.location, rec.Header().Get("Location"))
		})
	}
}

func TestRouter_CustomLoginPath(t *testing.T) {
	r := newTestEngineWithLogin(t, false, "/login")

	rec := serve(r, http.MethodGet, "/login", false)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(r, http.MethodGet, "/dashboard", false)
	assert.Equal(t, http.StatusTemporaryRedirect, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/signin", false).Code)
}

func TestRouter_API(t *testing.T) {
	r := newTestEngine(t, false)

	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodGet, "/api/profile/me", false).Code)
	assert.Equal(t, http.StatusUnauthorized, serve(r, http.MethodGet, "/api/onboarding", false).Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/api/onboarding/options", false).Code)

	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/api/profile/me", true).Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/api/onboarding", true).Code)
	assert.Equal(t, http.StatusConflict, serve(r, http.MethodPost, "/api/onboarding/prev", true).Code)
	assert.Equal(t, http.StatusConflict, serve(r, http.MethodPost, "/api/onboarding/submit", true).Code)
	assert.Equal(t, http.StatusServiceUnavailable, serve(r, http.MethodPost, "/api/onboarding/bio-suggestions", true).Code)

	rec := serve(r, http.MethodGet, "/api/auth/callback?code=x&state=y", false)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/onboarding", rec.Header().Get("Location"))
}

func TestRouter_StaticUploads(t *testing.T) {
	rec := serve(newTestEngine(t, false), http.MethodGet, "/static/uploads/avatars/a.png", false)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "png", rec.Body.String())
}
