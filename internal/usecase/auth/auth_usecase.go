package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gdugdh24/cofounders-backend/internal/config"
	"github.com/gdugdh24/cofounders-backend/internal/domain"
	"github.com/gdugdh24/cofounders-backend/internal/logging"
	"github.com/gdugdh24/cofounders-backend/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

const stateTTL = 10 * time.Minute

// IdentityProvider is the external OAuth provider.
type IdentityProvider interface {
	AuthCodeURL(state, verifier string) string
	Exchange(ctx context.Context, code, verifier string) (*domain.Identity, error)
}

// Claims is the session token payload. Subject holds the identity id and
// ID the session id.
type Claims struct {
	jwt.RegisteredClaims
}

type AuthUseCase struct {
	provider      IdentityProvider
	sessionRepo   repository.SessionRepository
	stateRepo     repository.OAuthStateRepository
	jwtSecret     []byte
	sessionTTL    time.Duration
	refreshWithin time.Duration
	logger        logging.Logger
	now           func() time.Time
}

func NewAuthUseCase(
	provider IdentityProvider,
	sessionRepo repository.SessionRepository,
	stateRepo repository.OAuthStateRepository,
	cfg config.JWTConfig,
	logger logging.Logger,
) *AuthUseCase {
	return &AuthUseCase{
		provider:      provider,
		sessionRepo:   sessionRepo,
		stateRepo:     stateRepo,
		jwtSecret:     []byte(cfg.AccessSecret),
		sessionTTL:    cfg.SessionTTL,
		refreshWithin: cfg.RefreshWithin,
		logger:        logger,
		now:           time.Now,
	}
}

// AuthResponse carries a freshly issued session token
type AuthResponse struct {
	Token     string          `json:"-"`
	ExpiresAt time.Time       `json:"expires_at"`
	Session   *domain.Session `json:"session"`
}

// SignInURL starts the provider sign-in and returns the URL to send the
// browser to.
func (uc *AuthUseCase) SignInURL(ctx context.Context) (string, error) {
	state := &domain.OAuthState{
		State:     oauth2.GenerateVerifier(),
		Verifier:  oauth2.GenerateVerifier(),
		CreatedAt: uc.now(),
	}
	if err := uc.stateRepo.Save(ctx, state, stateTTL); err != nil {
		return "", fmt.Errorf("failed to save oauth state: %w", err)
	}
	return uc.provider.AuthCodeURL(state.State, state.Verifier), nil
}

// ExchangeCodeForSession completes the provider sign-in and opens a session.
func (uc *AuthUseCase) ExchangeCodeForSession(ctx context.Context, code, state string) (*AuthResponse, error) {
	if code == "" {
		return nil, domain.ErrMissingCode
	}
	pending, err := uc.stateRepo.Consume(ctx, state)
	if err != nil {
		return nil, err
	}

	identity, err := uc.provider.Exchange(ctx, code, pending.Verifier)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code: %w", err)
	}

	now := uc.now()
	session := &domain.Session{
		ID:        uuid.New(),
		Identity:  *identity,
		CreatedAt: now,
		ExpiresAt: now.Add(uc.sessionTTL),
	}
	if err := uc.sessionRepo.Save(ctx, session, uc.sessionTTL); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	token, err := uc.signToken(session)
	if err != nil {
		return nil, err
	}
	uc.logger.Info(ctx, "session created", "identity_id", identity.ID, "session_id", session.ID)

	return &AuthResponse{Token: token, ExpiresAt: session.ExpiresAt, Session: session}, nil
}

// GetUser resolves a session token to its live session.
func (uc *AuthUseCase) GetUser(ctx context.Context, token string) (*domain.Session, error) {
	claims, err := uc.parseToken(token)
	if err != nil {
		return nil, err
	}
	sessionID, err := uuid.Parse(claims.ID)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}

	session, err := uc.sessionRepo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Identity.ID.String() != claims.Subject {
		return nil, domain.ErrInvalidToken
	}
	if session.IsExpired(uc.now()) {
		return nil, domain.ErrSessionExpired
	}
	return session, nil
}

// Refresh validates token and, when the session is close to expiry,
// extends it and issues a new token. Renewed is false when token is still
// good as is.
func (uc *AuthUseCase) Refresh(ctx context.Context, token string) (resp *AuthResponse, renewed bool, err error) {
	session, err := uc.GetUser(ctx, token)
	if err != nil {
		return nil, false, err
	}

	now := uc.now()
	if session.ExpiresAt.Sub(now) > uc.refreshWithin {
		return &AuthResponse{Token: token, ExpiresAt: session.ExpiresAt, Session: session}, false, nil
	}

	session.ExpiresAt = now.Add(uc.sessionTTL)
	if err := uc.sessionRepo.Save(ctx, session, uc.sessionTTL); err != nil {
		return nil, false, fmt.Errorf("failed to extend session: %w", err)
	}
	newToken, err := uc.signToken(session)
	if err != nil {
		return nil, false, err
	}
	return &AuthResponse{Token: newToken, ExpiresAt: session.ExpiresAt, Session: session}, true, nil
}

// SignOut ends the session behind token. Tokens that no longer resolve
// have nothing to revoke.
func (uc *AuthUseCase) SignOut(ctx context.Context, token string) error {
	claims, err := uc.parseToken(token)
	if err != nil {
		return nil
	}
	sessionID, err := uuid.Parse(claims.ID)
	if err != nil {
		return nil
	}
	if err := uc.sessionRepo.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	uc.logger.Info(ctx, "session ended", "session_id", sessionID)
	return nil
}

func (uc *AuthUseCase) signToken(session *domain.Session) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        session.ID.String(),
			Subject:   session.Identity.ID.String(),
			IssuedAt:  jwt.NewNumericDate(uc.now()),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(uc.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}

func (uc *AuthUseCase) parseToken(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, domain.ErrInvalidToken
	}
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrInvalidToken
		}
		return uc.jwtSecret, nil
	}, jwt.WithTimeFunc(uc.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrSessionExpired
		}
		return nil, domain.ErrInvalidToken
	}
	if !token.Valid {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}
