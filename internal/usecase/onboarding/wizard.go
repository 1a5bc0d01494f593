package onboarding

import (
	"errors"
	"time"

	"github.com/gdugdh24/cofounders-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

var (
	ErrAtFirstStep    = errors.New("already at the first step")
	ErrAtLastStep     = errors.New("already at the last step, submit instead")
	ErrNotAtFinalStep = errors.New("submission is only allowed from the last step")
	ErrSubmitted      = errors.New("onboarding form was already submitted")
)

// Wizard drives a draft through the four onboarding steps. It does no I/O.
type Wizard struct {
	draft *domain.Draft
}

// NewDraft starts a form for identity, pre-filled from the provider metadata
// and from a partially saved profile when one exists.
func NewDraft(identity domain.Identity, authenticated bool, existing *domain.Profile) *domain.Draft {
	d := &domain.Draft{
		IdentityID:    identity.ID,
		Step:          domain.FirstStep,
		Authenticated: authenticated,
		Fields: domain.DraftFields{
			FirstName: identity.GivenName,
			LastName:  identity.FamilyName,
			Email:     identity.Email,
			AvatarURL: identity.Picture,
		},
	}
	if existing == nil {
		return d
	}

	f := &d.Fields
	f.FirstName = firstNonEmpty(existing.FirstName, f.FirstName)
	f.LastName = firstNonEmpty(existing.LastName, f.LastName)
	f.Email = firstNonEmpty(existing.Email, f.Email)
	f.AvatarURL = firstNonEmpty(existing.AvatarURL, f.AvatarURL)
	f.LinkedInURL = existing.LinkedInURL
	f.Location = existing.Location
	f.Timezone = existing.Timezone
	if existing.FounderType != nil {
		f.FounderType = *existing.FounderType
	}
	for _, v := range existing.LookingFor {
		f.LookingFor = append(f.LookingFor, domain.FounderType(v))
	}
	f.WeeklyHours = existing.WeeklyHours
	f.HasIdea = existing.HasIdea
	f.IdeaDescription = existing.IdeaDescription
	f.LookingToJoin = existing.LookingToJoin
	f.CalendarType = existing.CalendarType
	f.CalendarURL = existing.CalendarURL
	f.Bio = existing.Bio
	f.Skills = append([]string(nil), existing.Skills...)
	return d
}

func NewWizard(draft *domain.Draft) *Wizard {
	if draft.Step < domain.FirstStep || draft.Step > domain.LastStep {
		draft.Step = domain.FirstStep
	}
	return &Wizard{draft: draft}
}

func (w *Wizard) Draft() *domain.Draft {
	return w.draft
}

func (w *Wizard) Step() domain.Step {
	return w.draft.Step
}

// Apply edits the draft. Updates are applied in order and stop at the first
// rejected one; earlier updates stay applied.
func (w *Wizard) Apply(updates ...Update) error {
	if w.draft.Submitted {
		return ErrSubmitted
	}
	for _, u := range updates {
		if err := u.apply(&w.draft.Fields); err != nil {
			return err
		}
	}
	return nil
}

// Advance moves forward one step when the current step is complete.
func (w *Wizard) Advance() error {
	if w.draft.Submitted {
		return ErrSubmitted
	}
	if w.draft.Step >= domain.LastStep {
		return ErrAtLastStep
	}
	if err := checkStep(w.draft.Step, w.draft.Authenticated, &w.draft.Fields); err != nil {
		return err
	}
	w.draft.Step++
	return nil
}

// Retreat moves back one step without validating the step being left.
func (w *Wizard) Retreat() error {
	if w.draft.Submitted {
		return ErrSubmitted
	}
	if w.draft.Step <= domain.FirstStep {
		return ErrAtFirstStep
	}
	w.draft.Step--
	return nil
}

// StepComplete reports whether step's required fields are satisfied.
func (w *Wizard) StepComplete(step domain.Step) bool {
	return checkStep(step, w.draft.Authenticated, &w.draft.Fields) == nil
}

// Validate is the submission precondition.
func (w *Wizard) Validate() error {
	if w.draft.Submitted {
		return ErrSubmitted
	}
	if w.draft.Step != domain.LastStep {
		return ErrNotAtFinalStep
	}
	return checkSubmission(w.draft.Authenticated, &w.draft.Fields)
}

// MarkSubmitted moves the draft to its terminal state.
func (w *Wizard) MarkSubmitted() {
	w.draft.Submitted = true
}

// Profile maps the draft onto a profile row for id. complete marks the final
// submission: it sets the completion and online flags.
func (w *Wizard) Profile(id uuid.UUID, complete bool, now time.Time) *domain.Profile {
	f := w.draft.Fields
	p := &domain.Profile{
		ID:                 id,
		FirstName:          f.FirstName,
		LastName:           f.LastName,
		Email:              f.Email,
		LinkedInURL:        f.LinkedInURL,
		AvatarURL:          f.AvatarURL,
		Location:           f.Location,
		Timezone:           f.Timezone,
		LookingFor:         make(pq.StringArray, 0, len(f.LookingFor)),
		WeeklyHours:        f.WeeklyHours,
		HasIdea:            f.HasIdea,
		LookingToJoin:      f.LookingToJoin,
		CalendarType:       f.CalendarType,
		CalendarURL:        f.CalendarURL,
		Bio:                f.Bio,
		Skills:             append(pq.StringArray{}, f.Skills...),
		OnboardingComplete: complete,
		IsOnline:           complete,
		MemberSince:        domain.MemberSinceLabel(now),
		UpdatedAt:          now,
	}
	if f.FounderType != "" {
		ft := f.FounderType
		p.FounderType = &ft
	}
	for _, v := range f.LookingFor {
		p.LookingFor = append(p.LookingFor, string(v))
	}
	if f.HasIdea.CollectsDescription() {
		p.IdeaDescription = f.IdeaDescription
	}
	return p
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
