package sessiontoken

import "errors"

var (
	ErrMissingSigningKey = errors.New("sessiontoken: missing signing key")
	ErrMissingSubject    = errors.New("sessiontoken: missing subject")
	ErrTokenInvalid      = errors.New("sessiontoken: invalid token")
	ErrTokenExpired      = errors.New("sessiontoken: token expired")
)
