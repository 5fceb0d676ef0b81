package member

import "errors"

var (
	ErrNotFound           = errors.New("member not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotApproved        = errors.New("member registration not approved")
	ErrInvalidRefresh     = errors.New("invalid refresh token")
)
