package core

import "errors"

var (
	// ErrNoRefreshToken is returned when a refresh is attempted with a
	// credential that carries no refresh token.
	ErrNoRefreshToken = errors.New("credential has no refresh token")
)
