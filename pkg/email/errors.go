package email

import "errors"

var (
	ErrInvalidConfig    = errors.New("email: invalid config")
	ErrInvalidRecipient = errors.New("email: invalid recipient")
	ErrInvalidMessage   = errors.New("email: invalid message")
	ErrSendFailed       = errors.New("email: send failed")
)
