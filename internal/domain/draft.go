package domain

import (
	"time"

	"github.com/google/uuid"
)

// Step is the wizard cursor. Steps run 1..4 in order, no skipping.
type Step int

const (
	StepBasics       Step = 1
	StepProfile      Step = 2
	StepAvailability Step = 3
	StepCalendar     Step = 4

	FirstStep = StepBasics
	LastStep  = StepCalendar
)

// DraftFields mirrors the Profile fields the onboarding wizard collects.
type DraftFields struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	LinkedInURL string `json:"linkedin_url"`
	AvatarURL   string `json:"avatar_url"`

	Location    string        `json:"location"`
	Timezone    string        `json:"timezone"`
	FounderType FounderType   `json:"founder_type"`
	LookingFor  []FounderType `json:"looking_for"`

	WeeklyHours     WeeklyHours `json:"weekly_hours"`
	HasIdea         HasIdea     `json:"has_idea"`
	IdeaDescription string      `json:"idea_description"`
	LookingToJoin   bool        `json:"looking_to_join"`

	CalendarType CalendarType `json:"calendar_type"`
	CalendarURL  string       `json:"calendar_url"`
	Bio          string       `json:"bio"`
	Skills       []string     `json:"skills"`
}

// Draft is the not-yet-persisted onboarding form of one identity.
type Draft struct {
	IdentityID    uuid.UUID   `json:"identity_id"`
	Step          Step        `json:"step"`
	Submitted     bool        `json:"submitted"`
	Authenticated bool        `json:"authenticated"`
	Fields        DraftFields `json:"fields"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// OAuthState is the server-side half of a pending provider sign-in.
type OAuthState struct {
	State     string    `json:"state"`
	Verifier  string    `json:"verifier"`
	CreatedAt time.Time `json:"created_at"`
}
