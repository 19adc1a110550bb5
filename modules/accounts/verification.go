package accounts

import (
	"context"
	"errors"
	"fmt"

	"github.com/nexuscampus/authcore/pkg/secrethash"
	"github.com/nexuscampus/authcore/pkg/validator"
)

// verificationCodeLength matches secrethash.NewNumericCode output.
const verificationCodeLength = 6

// issueVerification generates a fresh one-time code, persists it with its
// expiry (replacing any outstanding code) and emails it. The code is
// returned to callers inside this package only; it never appears in a
// response payload or a log line.
func (s *Service) issueVerification(ctx context.Context, account *Account) (string, error) {
	code, err := secrethash.NewNumericCode()
	if err != nil {
		return "", fmt.Errorf("generate verification code: %w", err)
	}

	expiresAt := s.now().Add(s.verificationTTL)
	if err := s.storage.SetVerificationCode(ctx, account.ID, code, expiresAt); err != nil {
		return "", fmt.Errorf("store verification code: %w", err)
	}
	account.VerificationCode = &code
	account.VerificationCodeExpiresAt = &expiresAt

	if err := s.mailer.SendVerificationCode(ctx, account.Email, code, s.verificationTTL); err != nil {
		// The stored code stays valid; the caller decides how to degrade.
		return code, err
	}
	return code, nil
}

// VerifyEmail redeems a verification code for the account addressed by
// public ID. Redemption is single-use: the storage clears the code pair in
// the same atomic operation that marks the account verified, so a repeat
// attempt with the same code fails with ErrNoCodeOutstanding.
//
// The supplied code must match exactly; no normalization is applied.
func (s *Service) VerifyEmail(ctx context.Context, kind Kind, publicID, code string) error {
	if !kind.Valid() {
		return ErrUnknownKind
	}
	if err := validator.Apply(validator.ExactLength("code", code, verificationCodeLength)); err != nil {
		return err
	}

	account, err := s.storage.FindByPublicID(ctx, kind, publicID)
	if err != nil {
		return err
	}

	return s.storage.ConsumeVerificationCode(ctx, account.ID, code, s.now())
}

// ResendVerification issues a replacement code for a not-yet-verified
// account, invalidating whatever code was outstanding. Verified accounts
// are rejected with ErrAlreadyVerified.
func (s *Service) ResendVerification(ctx context.Context, kind Kind, publicID string) error {
	if !kind.Valid() {
		return ErrUnknownKind
	}

	account, err := s.storage.FindByPublicID(ctx, kind, publicID)
	if err != nil {
		return err
	}
	if account.IsVerified {
		return ErrAlreadyVerified
	}

	if _, err := s.issueVerification(ctx, account); err != nil {
		if errors.Is(err, ErrEmailDeliveryFailed) {
			return err
		}
		// A verification racing this resend may win between the read above
		// and the conditional store write; the store reports that as
		// ErrAlreadyVerified and no stale code is left behind.
		if errors.Is(err, ErrAlreadyVerified) {
			return ErrAlreadyVerified
		}
		return fmt.Errorf("reissue verification: %w", err)
	}
	return nil
}
