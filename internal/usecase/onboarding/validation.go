package onboarding

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gdugdh24/cofounders-backend/internal/domain"
	"github.com/go-playground/validator/v10"
)

var (
	linkedInPattern = regexp.MustCompile(`^https?://(?i:(www\.)?linkedin\.com)/in/[A-Za-z0-9-]+/?$`)
	validate        = validator.New()
)

const (
	msgLinkedIn = "Please enter a valid LinkedIn profile URL (e.g., https://linkedin.com/in/username)"
	msgCalendar = "Please enter a valid calendar URL"
	msgSkills   = "Please select at least one skill"
)

// ValidLinkedInURL reports whether s is a LinkedIn profile URL.
func ValidLinkedInURL(s string) bool {
	return linkedInPattern.MatchString(s)
}

// ValidCalendarURL reports whether s parses as an absolute URL.
func ValidCalendarURL(s string) bool {
	return validate.Var(s, "required,url") == nil
}

// ValidationError describes why a step boundary or submission was refused.
type ValidationError struct {
	Step    domain.Step `json:"step"`
	Missing []string    `json:"missing,omitempty"`
	Invalid []string    `json:"invalid,omitempty"`
	Message string      `json:"error"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

func missingFieldsError(step domain.Step, missing []string) *ValidationError {
	return &ValidationError{
		Step:    step,
		Missing: missing,
		Message: fmt.Sprintf("Please fill in all required fields: %s", strings.Join(missing, ", ")),
	}
}

func invalidFieldError(step domain.Step, field, msg string) *ValidationError {
	return &ValidationError{Step: step, Invalid: []string{field}, Message: msg}
}

type requirement struct {
	field   string
	present func(f *domain.DraftFields) bool
}

func nonEmpty(get func(f *domain.DraftFields) string) func(f *domain.DraftFields) bool {
	return func(f *domain.DraftFields) bool { return strings.TrimSpace(get(f)) != "" }
}

// Required fields per step, in the order they are reported. Step 1 only
// applies to users without a provider identity.
var stepRequirements = map[domain.Step][]requirement{
	domain.StepBasics: {
		{"first_name", nonEmpty(func(f *domain.DraftFields) string { return f.FirstName })},
		{"last_name", nonEmpty(func(f *domain.DraftFields) string { return f.LastName })},
		{"email", nonEmpty(func(f *domain.DraftFields) string { return f.Email })},
		{"linkedin_url", nonEmpty(func(f *domain.DraftFields) string { return f.LinkedInURL })},
	},
	domain.StepProfile: {
		{"location", nonEmpty(func(f *domain.DraftFields) string { return f.Location })},
		{"timezone", nonEmpty(func(f *domain.DraftFields) string { return f.Timezone })},
		{"founder_type", nonEmpty(func(f *domain.DraftFields) string { return string(f.FounderType) })},
		{"looking_for", func(f *domain.DraftFields) bool { return len(f.LookingFor) > 0 }},
	},
	domain.StepAvailability: {
		{"weekly_hours", nonEmpty(func(f *domain.DraftFields) string { return string(f.WeeklyHours) })},
		{"has_idea", nonEmpty(func(f *domain.DraftFields) string { return string(f.HasIdea) })},
	},
	domain.StepCalendar: {
		{"calendar_url", nonEmpty(func(f *domain.DraftFields) string { return f.CalendarURL })},
		{"bio", nonEmpty(func(f *domain.DraftFields) string { return f.Bio })},
	},
}

func missingFor(step domain.Step, authenticated bool, f *domain.DraftFields) []string {
	if step == domain.StepBasics && authenticated {
		return nil
	}
	var missing []string
	for _, r := range stepRequirements[step] {
		if !r.present(f) {
			missing = append(missing, r.field)
		}
	}
	return missing
}

// checkStep is the completeness predicate guarding Advance out of step.
func checkStep(step domain.Step, authenticated bool, f *domain.DraftFields) error {
	if missing := missingFor(step, authenticated, f); len(missing) > 0 {
		return missingFieldsError(step, missing)
	}
	switch step {
	case domain.StepBasics:
		if !authenticated && !ValidLinkedInURL(f.LinkedInURL) {
			return invalidFieldError(step, "linkedin_url", msgLinkedIn)
		}
	case domain.StepCalendar:
		if !ValidCalendarURL(f.CalendarURL) {
			return invalidFieldError(step, "calendar_url", msgCalendar)
		}
	}
	return nil
}

// checkSubmission is the precondition for Submit: every step's required
// fields, well-formed URLs and at least one skill.
func checkSubmission(authenticated bool, f *domain.DraftFields) error {
	var missing []string
	for step := domain.FirstStep; step <= domain.LastStep; step++ {
		missing = append(missing, missingFor(step, authenticated, f)...)
	}
	if len(missing) > 0 {
		return missingFieldsError(domain.StepCalendar, missing)
	}
	if f.LinkedInURL != "" && !ValidLinkedInURL(f.LinkedInURL) {
		return invalidFieldError(domain.StepCalendar, "linkedin_url", msgLinkedIn)
	}
	if !ValidCalendarURL(f.CalendarURL) {
		return invalidFieldError(domain.StepCalendar, "calendar_url", msgCalendar)
	}
	if len(f.Skills) == 0 {
		return invalidFieldError(domain.StepCalendar, "skills", msgSkills)
	}
	return nil
}
