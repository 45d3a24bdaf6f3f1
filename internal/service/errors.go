package service

import "errors"

var (
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrRegistrationFailed   = errors.New("registration failed: username or email already exists")
	ErrDraftNotFound        = errors.New("draft not found")
	ErrDraftAccessDenied    = errors.New("access to draft denied")
	ErrDuplicateTitle       = errors.New("a draft with this title already exists")
	ErrInvalidInput         = errors.New("invalid input")
	ErrInternalServer       = errors.New("internal server error")
)
