package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// FounderType is the self-described founder role (and the role being sought).
type FounderType string

const (
	FounderHacker  FounderType = "hacker"
	FounderHipster FounderType = "hipster"
	FounderHustler FounderType = "hustler"
)

func (f FounderType) Valid() bool {
	switch f {
	case FounderHacker, FounderHipster, FounderHustler:
		return true
	}
	return false
}

// WeeklyHours is the availability band a founder commits to.
type WeeklyHours string

const (
	Hours0To10  WeeklyHours = "0-10"
	Hours10To20 WeeklyHours = "10-20"
	Hours20To30 WeeklyHours = "20-30"
	Hours30To40 WeeklyHours = "30-40"
	Hours40Plus WeeklyHours = "40+"
)

func (w WeeklyHours) Valid() bool {
	switch w {
	case Hours0To10, Hours10To20, Hours20To30, Hours30To40, Hours40Plus:
		return true
	}
	return false
}

// HasIdea records whether the founder brings an idea, wants to join one, or both.
type HasIdea string

const (
	IdeaYes  HasIdea = "yes"
	IdeaNo   HasIdea = "no"
	IdeaBoth HasIdea = "both"
)

func (h HasIdea) Valid() bool {
	switch h {
	case IdeaYes, IdeaNo, IdeaBoth:
		return true
	}
	return false
}

// CollectsDescription reports whether an idea description is shown and kept.
func (h HasIdea) CollectsDescription() bool {
	return h == IdeaYes || h == IdeaBoth
}

type CalendarType string

const (
	CalendarCalendly CalendarType = "calendly"
	CalendarCal      CalendarType = "cal"
	CalendarGoogle   CalendarType = "google"
	CalendarOutlook  CalendarType = "outlook"
)

func (c CalendarType) Valid() bool {
	switch c {
	case CalendarCalendly, CalendarCal, CalendarGoogle, CalendarOutlook:
		return true
	}
	return false
}

// Profile is the persisted founder record. ID equals the identity id of its owner.
type Profile struct {
	ID              uuid.UUID      `json:"id" db:"id"`
	FirstName       string         `json:"first_name" db:"first_name"`
	LastName        string         `json:"last_name" db:"last_name"`
	Email           string         `json:"email" db:"email"`
	LinkedInURL     string         `json:"linkedin_url" db:"linkedin_url"`
	AvatarURL       string         `json:"avatar_url" db:"avatar_url"`
	Location        string         `json:"location" db:"location"`
	Timezone        string         `json:"timezone" db:"timezone"`
	FounderType     *FounderType   `json:"founder_type" db:"founder_type"`
	LookingFor      pq.StringArray `json:"looking_for" db:"looking_for"`
	WeeklyHours     WeeklyHours    `json:"weekly_hours" db:"weekly_hours"`
	HasIdea         HasIdea        `json:"has_idea" db:"has_idea"`
	IdeaDescription string         `json:"idea_description" db:"idea_description"`
	LookingToJoin   bool           `json:"looking_to_join" db:"looking_to_join"`
	CalendarType    CalendarType   `json:"calendar_type" db:"calendar_type"`
	CalendarURL     string         `json:"calendar_url" db:"calendar_url"`
	Bio             string         `json:"bio" db:"bio"`
	Skills          pq.StringArray `json:"skills" db:"skills"`

	OnboardingComplete bool      `json:"onboarding_complete" db:"onboarding_complete"`
	IsOnline           bool      `json:"is_online" db:"is_online"`
	MemberSince        string    `json:"member_since" db:"member_since"`
	CreatedAt          time.Time `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time `json:"updated_at" db:"updated_at"`
}

// FullName joins first and last name, skipping empty parts.
func (p *Profile) FullName() string {
	switch {
	case p.FirstName == "":
		return p.LastName
	case p.LastName == "":
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

// MemberSinceLabel formats the month/year snapshot stored at first creation.
func MemberSinceLabel(t time.Time) string {
	return t.Format("January 2006")
}
