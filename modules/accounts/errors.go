package accounts

import "errors"

// Domain errors. The HTTP layer maps these to status codes and stable
// machine-readable keys; storage implementations return the subset noted on
// the Storage interface.
var (
	ErrUnknownKind = errors.New("accounts: unknown account kind")
	ErrNotFound    = errors.New("accounts: account not found")

	// Creation conflicts. A duplicate public ID is a retry signal for the
	// identifier loop; a taken email is a terminal conflict.
	ErrEmailTaken        = errors.New("accounts: email already registered")
	ErrDuplicatePublicID = errors.New("accounts: public id already in use")

	// ErrIdentifierExhausted means the bounded generation loop ran out of
	// attempts. Operationally alarming: either the id space is too small or
	// the store keeps failing.
	ErrIdentifierExhausted = errors.New("accounts: public id generation exhausted")

	ErrInvalidCredentials = errors.New("accounts: invalid credentials")
	ErrNotVerified        = errors.New("accounts: email not verified")

	// Verification code lifecycle.
	ErrAlreadyVerified   = errors.New("accounts: already verified")
	ErrNoCodeOutstanding = errors.New("accounts: no verification code outstanding")
	ErrCodeMismatch      = errors.New("accounts: verification code mismatch")
	ErrCodeExpired       = errors.New("accounts: verification code expired")

	// ErrInvalidOrExpiredResetToken deliberately collapses "no such token"
	// and "expired" so responses cannot leak which case occurred.
	ErrInvalidOrExpiredResetToken = errors.New("accounts: invalid or expired reset token")

	// ErrEmailDeliveryFailed reports a mail transport failure distinctly
	// from store failures; persisted state is never rolled back because of
	// it.
	ErrEmailDeliveryFailed = errors.New("accounts: email delivery failed")
)
