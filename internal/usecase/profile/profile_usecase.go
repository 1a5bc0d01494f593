package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/gdugdh24/cofounders-backend/internal/domain"
	"github.com/gdugdh24/cofounders-backend/internal/logging"
	"github.com/gdugdh24/cofounders-backend/internal/repository"
	"github.com/google/uuid"
)

const (
	DashboardPath  = "/dashboard"
	OnboardingPath = "/onboarding"
)

type ProfileUseCase struct {
	profileRepo repository.ProfileRepository
	logger      logging.Logger
}

func NewProfileUseCase(profileRepo repository.ProfileRepository, logger logging.Logger) *ProfileUseCase {
	return &ProfileUseCase{
		profileRepo: profileRepo,
		logger:      logger,
	}
}

// IsOnboardingComplete reads the completion flag with a single store query.
// A missing profile counts as incomplete.
func (uc *ProfileUseCase) IsOnboardingComplete(ctx context.Context, identityID uuid.UUID) (bool, error) {
	complete, err := uc.profileRepo.GetOnboardingStatus(ctx, identityID)
	if errors.Is(err, domain.ErrProfileNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get onboarding status: %w", err)
	}
	return complete, nil
}

// RedirectTarget is where a freshly signed-in identity should land. Lookup
// failures send the user to onboarding.
func (uc *ProfileUseCase) RedirectTarget(ctx context.Context, identityID uuid.UUID) string {
	complete, err := uc.IsOnboardingComplete(ctx, identityID)
	if err != nil {
		uc.logger.Warn(ctx, "onboarding status lookup failed", "identity_id", identityID, "error", err)
		return OnboardingPath
	}
	if complete {
		return DashboardPath
	}
	return OnboardingPath
}

// GetMyProfile returns the profile owned by identityID.
func (uc *ProfileUseCase) GetMyProfile(ctx context.Context, identityID uuid.UUID) (*domain.Profile, error) {
	p, err := uc.profileRepo.GetByID(ctx, identityID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return p, nil
}
