package onboarding

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gdugdh24/cofounders-backend/internal/domain"
)

// Update is one edit to the draft form. The set of implementations is closed.
type Update interface {
	Field() string
	apply(f *domain.DraftFields) error
}

type (
	SetFirstName       string
	SetLastName        string
	SetEmail           string
	SetLinkedInURL     string
	SetAvatarURL       string
	SetLocation        string
	SetTimezone        string
	SetFounderType     domain.FounderType
	ToggleLookingFor   domain.FounderType
	SetLookingFor      []domain.FounderType
	SetWeeklyHours     domain.WeeklyHours
	SetHasIdea         domain.HasIdea
	SetIdeaDescription string
	SetLookingToJoin   bool
	SetCalendarType    domain.CalendarType
	SetCalendarURL     string
	SetBio             string
	ToggleSkill        string
	SetSkills          []string
)

func (SetFirstName) Field() string       { return "first_name" }
func (SetLastName) Field() string        { return "last_name" }
func (SetEmail) Field() string           { return "email" }
func (SetLinkedInURL) Field() string     { return "linkedin_url" }
func (SetAvatarURL) Field() string       { return "avatar_url" }
func (SetLocation) Field() string        { return "location" }
func (SetTimezone) Field() string        { return "timezone" }
func (SetFounderType) Field() string     { return "founder_type" }
func (ToggleLookingFor) Field() string   { return "looking_for" }
func (SetLookingFor) Field() string      { return "looking_for" }
func (SetWeeklyHours) Field() string     { return "weekly_hours" }
func (SetHasIdea) Field() string         { return "has_idea" }
func (SetIdeaDescription) Field() string { return "idea_description" }
func (SetLookingToJoin) Field() string   { return "looking_to_join" }
func (SetCalendarType) Field() string    { return "calendar_type" }
func (SetCalendarURL) Field() string     { return "calendar_url" }
func (SetBio) Field() string             { return "bio" }
func (ToggleSkill) Field() string        { return "skills" }
func (SetSkills) Field() string          { return "skills" }

func (u SetFirstName) apply(f *domain.DraftFields) error {
	f.FirstName = strings.TrimSpace(string(u))
	return nil
}

func (u SetLastName) apply(f *domain.DraftFields) error {
	f.LastName = strings.TrimSpace(string(u))
	return nil
}

func (u SetEmail) apply(f *domain.DraftFields) error {
	f.Email = strings.TrimSpace(string(u))
	return nil
}

// LinkedIn and calendar URLs are checked at step boundaries, not while typing.
func (u SetLinkedInURL) apply(f *domain.DraftFields) error {
	f.LinkedInURL = strings.TrimSpace(string(u))
	return nil
}

func (u SetAvatarURL) apply(f *domain.DraftFields) error {
	f.AvatarURL = strings.TrimSpace(string(u))
	return nil
}

func (u SetLocation) apply(f *domain.DraftFields) error {
	f.Location = strings.TrimSpace(string(u))
	return nil
}

func (u SetTimezone) apply(f *domain.DraftFields) error {
	if u != "" && !domain.IsTimezone(string(u)) {
		return invalidValue(u.Field(), string(u))
	}
	f.Timezone = string(u)
	return nil
}

func (u SetFounderType) apply(f *domain.DraftFields) error {
	if u != "" && !domain.FounderType(u).Valid() {
		return invalidValue(u.Field(), string(u))
	}
	f.FounderType = domain.FounderType(u)
	return nil
}

func (u ToggleLookingFor) apply(f *domain.DraftFields) error {
	v := domain.FounderType(u)
	if !v.Valid() {
		return invalidValue(u.Field(), string(u))
	}
	for i, existing := range f.LookingFor {
		if existing == v {
			f.LookingFor = append(f.LookingFor[:i:i], f.LookingFor[i+1:]...)
			return nil
		}
	}
	f.LookingFor = append(f.LookingFor, v)
	return nil
}

func (u SetLookingFor) apply(f *domain.DraftFields) error {
	out := make([]domain.FounderType, 0, len(u))
	seen := make(map[domain.FounderType]bool, len(u))
	for _, v := range u {
		if !v.Valid() {
			return invalidValue(u.Field(), string(v))
		}
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	f.LookingFor = out
	return nil
}

func (u SetWeeklyHours) apply(f *domain.DraftFields) error {
	if u != "" && !domain.WeeklyHours(u).Valid() {
		return invalidValue(u.Field(), string(u))
	}
	f.WeeklyHours = domain.WeeklyHours(u)
	return nil
}

func (u SetHasIdea) apply(f *domain.DraftFields) error {
	if u != "" && !domain.HasIdea(u).Valid() {
		return invalidValue(u.Field(), string(u))
	}
	f.HasIdea = domain.HasIdea(u)
	return nil
}

func (u SetIdeaDescription) apply(f *domain.DraftFields) error {
	f.IdeaDescription = string(u)
	return nil
}

func (u SetLookingToJoin) apply(f *domain.DraftFields) error {
	f.LookingToJoin = bool(u)
	return nil
}

func (u SetCalendarType) apply(f *domain.DraftFields) error {
	if u != "" && !domain.CalendarType(u).Valid() {
		return invalidValue(u.Field(), string(u))
	}
	f.CalendarType = domain.CalendarType(u)
	return nil
}

func (u SetCalendarURL) apply(f *domain.DraftFields) error {
	f.CalendarURL = strings.TrimSpace(string(u))
	return nil
}

func (u SetBio) apply(f *domain.DraftFields) error {
	f.Bio = string(u)
	return nil
}

func (u ToggleSkill) apply(f *domain.DraftFields) error {
	if !domain.IsSkill(string(u)) {
		return invalidValue(u.Field(), string(u))
	}
	for i, existing := range f.Skills {
		if existing == string(u) {
			f.Skills = append(f.Skills[:i:i], f.Skills[i+1:]...)
			return nil
		}
	}
	f.Skills = append(f.Skills, string(u))
	return nil
}

func (u SetSkills) apply(f *domain.DraftFields) error {
	out := make([]string, 0, len(u))
	seen := make(map[string]bool, len(u))
	for _, s := range u {
		if !domain.IsSkill(s) {
			return invalidValue(u.Field(), s)
		}
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	f.Skills = out
	return nil
}

func invalidValue(field, value string) error {
	return fmt.Errorf("%w: %q is not a valid %s", domain.ErrInvalidInput, value, field)
}

// FieldUpdate is the wire form of an Update.
type FieldUpdate struct {
	Field  string          `json:"field" binding:"required"`
	Value  json.RawMessage `json:"value"`
	Toggle bool            `json:"toggle,omitempty"`
}

// Decode turns the wire form into its typed Update. Toggle selects the
// add-or-remove variant for the multi-value fields looking_for and skills.
func (u FieldUpdate) Decode() (Update, error) {
	switch u.Field {
	case "first_name":
		return decodeAs[SetFirstName](u)
	case "last_name":
		return decodeAs[SetLastName](u)
	case "email":
		return decodeAs[SetEmail](u)
	case "linkedin_url":
		return decodeAs[SetLinkedInURL](u)
	case "avatar_url":
		return decodeAs[SetAvatarURL](u)
	case "location":
		return decodeAs[SetLocation](u)
	case "timezone":
		return decodeAs[SetTimezone](u)
	case "founder_type":
		return decodeAs[SetFounderType](u)
	case "looking_for":
		if u.Toggle {
			return decodeAs[ToggleLookingFor](u)
		}
		return decodeAs[SetLookingFor](u)
	case "weekly_hours":
		return decodeAs[SetWeeklyHours](u)
	case "has_idea":
		return decodeAs[SetHasIdea](u)
	case "idea_description":
		return decodeAs[SetIdeaDescription](u)
	case "looking_to_join":
		return decodeAs[SetLookingToJoin](u)
	case "calendar_type":
		return decodeAs[SetCalendarType](u)
	case "calendar_url":
		return decodeAs[SetCalendarURL](u)
	case "bio":
		return decodeAs[SetBio](u)
	case "skills":
		if u.Toggle {
			return decodeAs[ToggleSkill](u)
		}
		return decodeAs[SetSkills](u)
	}
	return nil, fmt.Errorf("%w: unknown field %q", domain.ErrInvalidInput, u.Field)
}

func decodeAs[T Update](u FieldUpdate) (Update, error) {
	var v T
	if len(u.Value) == 0 {
		return nil, fmt.Errorf("%w: missing value for %s", domain.ErrInvalidInput, u.Field)
	}
	if err := json.Unmarshal(u.Value, &v); err != nil {
		return nil, fmt.Errorf("%w: bad value for %s", domain.ErrInvalidInput, u.Field)
	}
	return v, nil
}

// DecodeAll decodes a batch, failing on the first bad entry.
func DecodeAll(raw []FieldUpdate) ([]Update, error) {
	updates := make([]Update, 0, len(raw))
	for _, r := range raw {
		u, err := r.Decode()
		if err != nil {
			return nil, err
		}
		updates = append(updates, u)
	}
	return updates, nil
}
