package repository

import (
	"context"
	"time"

	"github.com/gdugdh24/cofounders-backend/internal/domain"
	"github.com/google/uuid"
)

type SessionRepository interface {
	Save(ctx context.Context, session *domain.Session, ttl time.Duration) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type OAuthStateRepository interface {
	Save(ctx context.Context, state *domain.OAuthState, ttl time.Duration) error
	// Consume returns the state and removes it; a state can be used once.
	Consume(ctx context.Context, state string) (*domain.OAuthState, error)
}
