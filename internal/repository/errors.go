package repository

import "errors"

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDraftNotFound  = errors.New("draft not found")
	ErrDuplicateEntry = errors.New("duplicate entry")
)
