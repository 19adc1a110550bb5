package secrethash

import "errors"

var (
	ErrEmptyPassword      = errors.New("secrethash: empty password")
	ErrHashingFailed      = errors.New("secrethash: hashing failed")
	ErrEntropyUnavailable = errors.New("secrethash: entropy source unavailable")
)
