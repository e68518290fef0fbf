package domain

import "errors"

var (
	ErrUnauthenticated    = errors.New("authentication required")
	ErrForbidden          = errors.New("access forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrConflict           = errors.New("user with this email already exists")
	ErrTooManyAttempts    = errors.New("too many login attempts")
	ErrSelfDeletion       = errors.New("cannot delete your own account")
	ErrInvalidInput       = errors.New("invalid input")

	ErrUserNotFound       = errors.New("user not found")
	ErrBlogNotFound       = errors.New("blog not found")
	ErrContactNotFound    = errors.New("contact inquiry not found")
	ErrTeamMemberNotFound = errors.New("team member not found")
)
