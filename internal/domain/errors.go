package domain

import "errors"

var (
	ErrProfileNotFound = errors.New("profile not found")

	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")
	ErrInvalidToken    = errors.New("invalid token")

	ErrInvalidOAuthState = errors.New("invalid oauth state")
	ErrMissingCode       = errors.New("missing authorization code")

	ErrDraftNotFound        = errors.New("draft not found")
	ErrAlreadyComplete      = errors.New("onboarding already complete")
	ErrSubmissionInProgress = errors.New("submission already in progress")

	ErrInvalidInput  = errors.New("invalid input")
	ErrAIUnavailable = errors.New("ai assistant is not configured")
)
