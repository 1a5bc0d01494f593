package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gdugdh24/cofounders-backend/internal/domain"
	"github.com/gdugdh24/cofounders-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

const profileColumns = `
	id, first_name, last_name, email, linkedin_url, avatar_url,
	location, timezone, founder_type, looking_for, weekly_hours, has_idea,
	idea_description, looking_to_join, calendar_type, calendar_url, bio, skills,
	onboarding_complete, is_online, member_since, created_at, updated_at`

func (r *profileRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	var profile domain.Profile
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	err := r.db.GetContext(ctx, &profile, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) GetOnboardingStatus(ctx context.Context, id uuid.UUID) (bool, error) {
	var complete bool
	query := `SELECT onboarding_complete FROM profiles WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&complete)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, domain.ErrProfileNotFound
		}
		return false, err
	}
	return complete, nil
}

// Upsert is a single statement so concurrent saves for the same id cannot
// both take the insert path. member_since and created_at keep their first
// values, and a completed profile stays completed.
func (r *profileRepository) Upsert(ctx context.Context, profile *domain.Profile) error {
	query := `
		INSERT INTO profiles (
			id, first_name, last_name, email, linkedin_url, avatar_url,
			location, timezone, founder_type, looking_for, weekly_hours, has_idea,
			idea_description, looking_to_join, calendar_type, calendar_url, bio, skills,
			onboarding_complete, is_online, member_since, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $22)
		ON CONFLICT (id) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			email = EXCLUDED.email,
			linkedin_url = EXCLUDED.linkedin_url,
			avatar_url = EXCLUDED.avatar_url,
			location = EXCLUDED.location,
			timezone = EXCLUDED.timezone,
			founder_type = EXCLUDED.founder_type,
			looking_for = EXCLUDED.looking_for,
			weekly_hours = EXCLUDED.weekly_hours,
			has_idea = EXCLUDED.has_idea,
			idea_description = EXCLUDED.idea_description,
			looking_to_join = EXCLUDED.looking_to_join,
			calendar_type = EXCLUDED.calendar_type,
			calendar_url = EXCLUDED.calendar_url,
			bio = EXCLUDED.bio,
			skills = EXCLUDED.skills,
			onboarding_complete = profiles.onboarding_complete OR EXCLUDED.onboarding_complete,
			is_online = profiles.is_online OR EXCLUDED.is_online,
			updated_at = EXCLUDED.updated_at
		RETURNING onboarding_complete, is_online, member_since, created_at, updated_at
	`
	return r.db.QueryRowContext(
		ctx, query,
		profile.ID, profile.FirstName, profile.LastName, profile.Email,
		profile.LinkedInURL, profile.AvatarURL,
		profile.Location, profile.Timezone, profile.FounderType,
		orEmpty(profile.LookingFor), profile.WeeklyHours, profile.HasIdea,
		profile.IdeaDescription, profile.LookingToJoin,
		profile.CalendarType, profile.CalendarURL, profile.Bio, orEmpty(profile.Skills),
		profile.OnboardingComplete, profile.IsOnline, profile.MemberSince, profile.UpdatedAt,
	).Scan(
		&profile.OnboardingComplete, &profile.IsOnline, &profile.MemberSince,
		&profile.CreatedAt, &profile.UpdatedAt,
	)
}

// orEmpty keeps NOT NULL array columns from receiving NULL.
func orEmpty(a pq.StringArray) pq.StringArray {
	if a == nil {
		return pq.StringArray{}
	}
	return a
}
