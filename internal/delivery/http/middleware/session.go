package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gdugdh24/cofounders-backend/internal/domain"
	"github.com/gdugdh24/cofounders-backend/internal/logging"
	"github.com/gdugdh24/cofounders-backend/internal/usecase/auth"
	"github.com/gin-gonic/gin"
)

const (
	sessionKey = "session"
	tokenKey   = "session_token"
)

// SessionRefresher resolves a token to a live session, renewing it when it
// is close to expiry.
type SessionRefresher interface {
	Refresh(ctx context.Context, token string) (*auth.AuthResponse, bool, error)
}

type SessionMiddleware struct {
	sessions SessionRefresher
	cookie   SessionCookie
	logger   logging.Logger
}

func NewSessionMiddleware(sessions SessionRefresher, cookie SessionCookie, logger logging.Logger) *SessionMiddleware {
	return &SessionMiddleware{
		sessions: sessions,
		cookie:   cookie,
		logger:   logger,
	}
}

// LoadSession attaches the caller's session to the request context when the
// token resolves. Requests without a valid session continue anonymously.
func (m *SessionMiddleware) LoadSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := m.cookie.Read(c)
		if !ok {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		resp, renewed, err := m.sessions.Refresh(ctx, token)
		if err != nil {
			if isAuthError(err) {
				m.cookie.Clear(c)
			} else {
				m.logger.Warn(ctx, "failed to load session", "error", err)
			}
			c.Next()
			return
		}

		if renewed {
			m.cookie.Write(c, resp.Token, resp.ExpiresAt)
		}
		c.Set(sessionKey, resp.Session)
		c.Set(tokenKey, resp.Token)
		c.Next()
	}
}

// RequireSession rejects requests that LoadSession left anonymous.
func (m *SessionMiddleware) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := SessionFrom(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}

// SessionFrom returns the session loaded for this request.
func SessionFrom(c *gin.Context) (*domain.Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil, false
	}
	session, ok := v.(*domain.Session)
	return session, ok && session != nil
}

// TokenFrom returns the (possibly renewed) token of the loaded session.
func TokenFrom(c *gin.Context) (string, bool) {
	token := c.GetString(tokenKey)
	return token, token != ""
}

func isAuthError(err error) bool {
	return errors.Is(err, domain.ErrInvalidToken) ||
		errors.Is(err, domain.ErrSessionExpired) ||
		errors.Is(err, domain.ErrSessionNotFound)
}
