package repository

import (
	"context"
	"time"

	"github.com/gdugdh24/cofounders-backend/internal/domain"
	"github.com/google/uuid"
)

type DraftRepository interface {
	Get(ctx context.Context, identityID uuid.UUID) (*domain.Draft, error)
	Save(ctx context.Context, draft *domain.Draft, ttl time.Duration) error
	Delete(ctx context.Context, identityID uuid.UUID) error
}

// SubmitLock guards against two submissions of the same draft being in flight.
// Acquire hands out a token that Release must present, so a holder whose lock
// expired cannot drop a lock taken by someone else since.
type SubmitLock interface {
	Acquire(ctx context.Context, identityID uuid.UUID, ttl time.Duration) (token string, acquired bool, err error)
	Release(ctx context.Context, identityID uuid.UUID, token string) error
}
