package repository

import (
	"context"

	"github.com/gdugdh24/cofounders-backend/internal/domain"
	"github.com/google/uuid"
)

type ProfileRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
	// GetOnboardingStatus returns domain.ErrProfileNotFound when no row exists.
	GetOnboardingStatus(ctx context.Context, id uuid.UUID) (bool, error)
	// Upsert inserts or updates the row keyed by profile.ID in one statement.
	// member_since and created_at are only written on insert, and
	// onboarding_complete never goes from true back to false.
	Upsert(ctx context.Context, profile *domain.Profile) error
}
