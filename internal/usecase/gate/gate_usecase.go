package gate

import (
	"context"
	"net/http"
	"strings"

	"github.com/gdugdh24/cofounders-backend/internal/domain"
	"github.com/google/uuid"
)

// RouteClass is the access category of a request path.
type RouteClass int

const (
	RouteUnmatched RouteClass = iota
	RouteBypass
	RoutePublic
	RouteOnboarding
	RouteDashboard
)

func (c RouteClass) String() string {
	switch c {
	case RouteBypass:
		return "bypass"
	case RoutePublic:
		return "public"
	case RouteOnboarding:
		return "onboarding"
	case RouteDashboard:
		return "dashboard"
	}
	return "unmatched"
}

// Protected reports whether the class requires a session.
func (c RouteClass) Protected() bool {
	return c == RouteOnboarding || c == RouteDashboard
}

type Outcome int

const (
	Pass Outcome = iota
	RedirectSignIn
	RedirectOnboarding
	RedirectDashboard
)

func (o Outcome) String() string {
	switch o {
	case RedirectSignIn:
		return "redirect_signin"
	case RedirectOnboarding:
		return "redirect_onboarding"
	case RedirectDashboard:
		return "redirect_dashboard"
	}
	return "pass"
}

// Decision is the gate verdict for one request. Location is empty for Pass.
type Decision struct {
	Outcome  Outcome
	Location string
	Status   int
}

func (d Decision) Redirects() bool {
	return d.Outcome != Pass
}

// StatusReader reports whether an identity finished onboarding.
type StatusReader interface {
	IsOnboardingComplete(ctx context.Context, identityID uuid.UUID) (bool, error)
}

type Paths struct {
	SignIn     string
	Onboarding string
	Dashboard  string
}

var DefaultPublicPaths = []string{"/", "/privacy-policy", "/privacy", "/tos", "/signin", "/blog"}

type GateUseCase struct {
	bypassPrefixes []string
	public         map[string]struct{}
	paths          Paths
}

// NewGateUseCase builds a gate. The sign-in path is always public so a
// redirect to it can never loop.
func NewGateUseCase(bypassPrefixes, publicPaths []string, paths Paths) *GateUseCase {
	if paths.Onboarding == "" {
		paths.Onboarding = "/onboarding"
	}
	if paths.Dashboard == "" {
		paths.Dashboard = "/dashboard"
	}
	if paths.SignIn == "" {
		paths.SignIn = "/signin"
	}

	public := make(map[string]struct{}, len(publicPaths)+1)
	for _, p := range publicPaths {
		public[normalize(p)] = struct{}{}
	}
	public[normalize(paths.SignIn)] = struct{}{}

	return &GateUseCase{
		bypassPrefixes: bypassPrefixes,
		public:         public,
		paths:          paths,
	}
}

// Classify maps a request path to its route class. Bypass prefixes win over
// every other rule.
func (uc *GateUseCase) Classify(path string) RouteClass {
	for _, prefix := range uc.bypassPrefixes {
		if strings.HasPrefix(path, prefix) {
			return RouteBypass
		}
	}

	path = normalize(path)
	if _, ok := uc.public[path]; ok {
		return RoutePublic
	}
	switch path {
	case uc.paths.Onboarding:
		return RouteOnboarding
	case uc.paths.Dashboard:
		return RouteDashboard
	}
	return RouteUnmatched
}

// Decide applies the protected-route table. complete is ignored when there
// is no session.
func (uc *GateUseCase) Decide(class RouteClass, hasSession, complete bool) Decision {
	if !class.Protected() {
		return Decision{Outcome: Pass}
	}
	if !hasSession {
		return uc.redirect(RedirectSignIn, uc.paths.SignIn)
	}

	switch class {
	case RouteOnboarding:
		if complete {
			return uc.redirect(RedirectDashboard, uc.paths.Dashboard)
		}
	case RouteDashboard:
		if !complete {
			return uc.redirect(RedirectOnboarding, uc.paths.Onboarding)
		}
	}
	return Decision{Outcome: Pass}
}

// Evaluate classifies path and decides for the given session. The status
// reader is consulted at most once and only for protected paths with a
// session. A lookup error yields the incomplete decision and is returned so
// the caller can log it.
func (uc *GateUseCase) Evaluate(ctx context.Context, path string, session *domain.Session, status StatusReader) (Decision, error) {
	class := uc.Classify(path)
	if !class.Protected() || session == nil {
		return uc.Decide(class, session != nil, false), nil
	}

	complete, err := status.IsOnboardingComplete(ctx, session.Identity.ID)
	if err != nil {
		return uc.Decide(class, true, false), err
	}
	return uc.Decide(class, true, complete), nil
}

func (uc *GateUseCase) redirect(outcome Outcome, location string) Decision {
	return Decision{Outcome: outcome, Location: location, Status: http.StatusTemporaryRedirect}
}

// normalize drops a trailing slash so "/dashboard/" matches "/dashboard".
func normalize(path string) string {
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			return "/"
		}
	}
	return path
}
