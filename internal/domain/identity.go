package domain

import (
	"time"

	"github.com/google/uuid"
)

// ProviderLinkedIn is the only supported identity provider.
const ProviderLinkedIn = "linkedin"

var identityNamespace = uuid.MustParse("6f1c2a9e-4b7d-5e3f-8a21-0c9d4e7b3f15")

// Identity is the authenticated user as reported by the identity provider.
type Identity struct {
	ID         uuid.UUID `json:"id"`
	Provider   string    `json:"provider"`
	Subject    string    `json:"subject"`
	GivenName  string    `json:"given_name"`
	FamilyName string    `json:"family_name"`
	Email      string    `json:"email"`
	Picture    string    `json:"picture"`
}

// IdentityID derives the stable user id for a provider account.
func IdentityID(provider, subject string) uuid.UUID {
	return uuid.NewSHA1(identityNamespace, []byte(provider+":"+subject))
}

// Session is a server-side login record referenced by the session token.
type Session struct {
	ID        uuid.UUID `json:"id"`
	Identity  Identity  `json:"identity"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (s *Session) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
