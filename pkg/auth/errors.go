package auth

import "errors"

var (
	ErrMissingUser      = errors.New("response carries no user")
	ErrInvalidUser      = errors.New("malformed user payload")
	ErrNavigatorMissing = errors.New("observer needs a navigator")
)
