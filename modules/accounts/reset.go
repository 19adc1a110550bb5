package accounts

import (
	"context"
	"fmt"

	"github.com/nexuscampus/authcore/pkg/sanitizer"
	"github.com/nexuscampus/authcore/pkg/secrethash"
	"github.com/nexuscampus/authcore/pkg/validator"
)

// ForgotPassword starts the reset handshake for whichever kind holds the
// email. A fresh opaque token is generated, only its digest is persisted
// (replacing any outstanding token, so earlier links die), and the raw
// token goes out by mail embedded in a link.
//
// The store write happens before the mail send on purpose: a failed send
// after a successful write leaves a valid outstanding reset the user can
// re-trigger. That window is accepted, not a bug.
//
// Returns ErrNotFound for unknown emails; the HTTP layer answers uniformly
// regardless to avoid account enumeration.
func (s *Service) ForgotPassword(ctx context.Context, emailAddr string) error {
	emailAddr = sanitizer.NormalizeEmail(emailAddr)
	if err := validator.Apply(validator.ValidEmail("email", emailAddr)); err != nil {
		return err
	}

	account, err := s.findByEmailAnyKind(ctx, emailAddr)
	if err != nil {
		return err
	}

	rawToken, err := secrethash.NewResetToken()
	if err != nil {
		return fmt.Errorf("generate reset token: %w", err)
	}

	expiresAt := s.now().Add(s.resetTTL)
	if err := s.storage.SetResetToken(ctx, account.ID, secrethash.DigestToken(rawToken), expiresAt); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}

	return s.mailer.SendPasswordResetLink(ctx, account.Email, rawToken, s.resetTTL)
}

// ResetPassword redeems a raw reset token and installs a new password.
// The lookup key is the token's digest; the storage clears the reset pair
// in the same atomic operation that replaces the password hash, so the
// token redeems at most once. Unknown and expired tokens are
// indistinguishable by design.
func (s *Service) ResetPassword(ctx context.Context, rawToken, newPassword string) error {
	if rawToken == "" {
		return ErrInvalidOrExpiredResetToken
	}
	if err := validator.Apply(validator.StrongPassword("password", newPassword)); err != nil {
		return err
	}

	newHash, err := s.hasher.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash new password: %w", err)
	}

	_, err = s.storage.ConsumeResetToken(ctx, secrethash.DigestToken(rawToken), newHash, s.now())
	return err
}
