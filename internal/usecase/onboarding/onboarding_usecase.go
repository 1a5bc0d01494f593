package onboarding

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gdugdh24/cofounders-backend/internal/domain"
	"github.com/gdugdh24/cofounders-backend/internal/infrastructure/gemini"
	"github.com/gdugdh24/cofounders-backend/internal/logging"
	"github.com/gdugdh24/cofounders-backend/internal/repository"
	"github.com/google/uuid"
)

const (
	DraftTTL      = 24 * time.Hour
	submitLockTTL = 30 * time.Second

	SuccessRedirect      = "/dashboard"
	SuccessRedirectDelay = 1500 * time.Millisecond
)

type AvatarMirror interface {
	Mirror(ctx context.Context, identityID uuid.UUID, sourceURL string) (string, error)
}

type BioGenerator interface {
	GenerateBios(ctx context.Context, founder gemini.FounderSummary) ([]string, error)
}

type OnboardingUseCase struct {
	profileRepo repository.ProfileRepository
	draftRepo   repository.DraftRepository
	submitLock  repository.SubmitLock
	avatars     AvatarMirror
	bios        BioGenerator
	logger      logging.Logger
	now         func() time.Time
}

type Option func(*OnboardingUseCase)

func WithAvatarMirror(m AvatarMirror) Option {
	return func(uc *OnboardingUseCase) { uc.avatars = m }
}

func WithBioGenerator(g BioGenerator) Option {
	return func(uc *OnboardingUseCase) { uc.bios = g }
}

func WithClock(now func() time.Time) Option {
	return func(uc *OnboardingUseCase) { uc.now = now }
}

func NewOnboardingUseCase(
	profileRepo repository.ProfileRepository,
	draftRepo repository.DraftRepository,
	submitLock repository.SubmitLock,
	logger logging.Logger,
	opts ...Option,
) *OnboardingUseCase {
	uc := &OnboardingUseCase{
		profileRepo: profileRepo,
		draftRepo:   draftRepo,
		submitLock:  submitLock,
		logger:      logger,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// SubmitResult tells the client where to go after a successful submission
// and how long to show the confirmation first.
type SubmitResult struct {
	Profile       *domain.Profile
	RedirectTo    string
	RedirectAfter time.Duration
}

// Load returns the identity's draft, creating it on first visit.
func (uc *OnboardingUseCase) Load(ctx context.Context, identity domain.Identity) (*domain.Draft, error) {
	existing, err := uc.profileRepo.GetByID(ctx, identity.ID)
	if err != nil && !errors.Is(err, domain.ErrProfileNotFound) {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if existing != nil && existing.OnboardingComplete {
		return nil, domain.ErrAlreadyComplete
	}

	draft, err := uc.draftRepo.Get(ctx, identity.ID)
	switch {
	case err == nil && !draft.Submitted:
		return draft, nil
	case err != nil && !errors.Is(err, domain.ErrDraftNotFound):
		return nil, fmt.Errorf("failed to get draft: %w", err)
	}

	draft = NewDraft(identity, true, existing)
	if err := uc.saveDraft(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// Update applies a batch of field edits. A rejected edit discards the batch.
func (uc *OnboardingUseCase) Update(ctx context.Context, identity domain.Identity, updates ...Update) (*domain.Draft, error) {
	return uc.mutate(ctx, identity, func(w *Wizard) error {
		return w.Apply(updates...)
	})
}

func (uc *OnboardingUseCase) Next(ctx context.Context, identity domain.Identity) (*domain.Draft, error) {
	return uc.mutate(ctx, identity, (*Wizard).Advance)
}

func (uc *OnboardingUseCase) Prev(ctx context.Context, identity domain.Identity) (*domain.Draft, error) {
	return uc.mutate(ctx, identity, (*Wizard).Retreat)
}

// SaveProgress persists the draft as a partial profile. It never marks
// onboarding complete.
func (uc *OnboardingUseCase) SaveProgress(ctx context.Context, identity domain.Identity) (*domain.Profile, error) {
	draft, err := uc.Load(ctx, identity)
	if err != nil {
		return nil, err
	}

	profile := NewWizard(draft).Profile(identity.ID, false, uc.now())
	if err := uc.profileRepo.Upsert(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}
	return profile, nil
}

// Submit validates the draft and writes the completed profile. Only one
// submission per identity may be in flight.
func (uc *OnboardingUseCase) Submit(ctx context.Context, identity domain.Identity) (*SubmitResult, error) {
	token, acquired, err := uc.submitLock.Acquire(ctx, identity.ID, submitLockTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire submit lock: %w", err)
	}
	if !acquired {
		return nil, domain.ErrSubmissionInProgress
	}
	defer func() {
		if err := uc.submitLock.Release(context.WithoutCancel(ctx), identity.ID, token); err != nil {
			uc.logger.Warn(ctx, "failed to release submit lock", "identity_id", identity.ID, "error", err)
		}
	}()

	draft, err := uc.Load(ctx, identity)
	if err != nil {
		return nil, err
	}
	w := NewWizard(draft)
	if err := w.Validate(); err != nil {
		return nil, err
	}

	profile := w.Profile(identity.ID, true, uc.now())
	if profile.AvatarURL == "" {
		profile.AvatarURL = identity.Picture
	}
	uc.mirrorAvatar(ctx, profile, identity.Picture)

	if err := uc.profileRepo.Upsert(ctx, profile); err != nil {
		uc.logger.Error(ctx, "failed to save onboarding profile", "identity_id", identity.ID, "error", err)
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}

	w.MarkSubmitted()
	if err := uc.draftRepo.Delete(ctx, identity.ID); err != nil {
		uc.logger.Warn(ctx, "failed to delete submitted draft", "identity_id", identity.ID, "error", err)
	}
	uc.logger.Info(ctx, "onboarding completed", "identity_id", identity.ID)

	return &SubmitResult{
		Profile:       profile,
		RedirectTo:    SuccessRedirect,
		RedirectAfter: SuccessRedirectDelay,
	}, nil
}

// SuggestBios asks the AI assistant for bio drafts based on the form so far.
func (uc *OnboardingUseCase) SuggestBios(ctx context.Context, identity domain.Identity) ([]string, error) {
	if uc.bios == nil {
		return nil, domain.ErrAIUnavailable
	}
	draft, err := uc.Load(ctx, identity)
	if err != nil {
		return nil, err
	}

	f := draft.Fields
	summary := gemini.FounderSummary{
		FirstName:   f.FirstName,
		FounderType: string(f.FounderType),
		Skills:      f.Skills,
		HasIdea:     string(f.HasIdea),
		Location:    f.Location,
		WeeklyHours: string(f.WeeklyHours),
	}
	for _, v := range f.LookingFor {
		summary.LookingFor = append(summary.LookingFor, string(v))
	}
	if f.HasIdea.CollectsDescription() {
		summary.Idea = f.IdeaDescription
	}

	bios, err := uc.bios.GenerateBios(ctx, summary)
	if err != nil {
		uc.logger.Warn(ctx, "bio suggestion failed", "identity_id", identity.ID, "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrAIUnavailable, err)
	}
	return bios, nil
}

func (uc *OnboardingUseCase) mutate(ctx context.Context, identity domain.Identity, fn func(*Wizard) error) (*domain.Draft, error) {
	draft, err := uc.Load(ctx, identity)
	if err != nil {
		return nil, err
	}
	w := NewWizard(draft)
	if err := fn(w); err != nil {
		return nil, err
	}
	if err := uc.saveDraft(ctx, w.Draft()); err != nil {
		return nil, err
	}
	return w.Draft(), nil
}

func (uc *OnboardingUseCase) saveDraft(ctx context.Context, draft *domain.Draft) error {
	draft.UpdatedAt = uc.now()
	if err := uc.draftRepo.Save(ctx, draft, DraftTTL); err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}
	return nil
}

// mirrorAvatar swaps the provider-issued picture for our stored copy. Any
// other avatar URL came from the client and is never fetched. Failures keep
// the original URL.
func (uc *OnboardingUseCase) mirrorAvatar(ctx context.Context, profile *domain.Profile, providerPicture string) {
	if uc.avatars == nil || profile.AvatarURL == "" || profile.AvatarURL != providerPicture {
		return
	}
	url, err := uc.avatars.Mirror(ctx, profile.ID, profile.AvatarURL)
	if err != nil {
		uc.logger.Warn(ctx, "failed to mirror avatar", "identity_id", profile.ID, "error", err)
		return
	}
	profile.AvatarURL = url
}
