package accounts

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Storage is the persistence boundary. Implementations must make every
// mutation of the verification and reset pairs a single atomic conditional
// operation so two concurrent redemptions of the same secret cannot both
// succeed, and must let their uniqueness constraints arbitrate identifier
// races instead of pre-checking existence.
type Storage interface {
	// Insert persists a new account. Returns ErrDuplicatePublicID when the
	// (kind, public_id) constraint rejects the row and ErrEmailTaken when
	// (kind, email) does.
	Insert(ctx context.Context, account *Account) error

	// FindByEmail looks up by normalized email within a kind.
	// Returns ErrNotFound when absent.
	FindByEmail(ctx context.Context, kind Kind, email string) (*Account, error)

	// FindByPublicID looks up by public identifier within a kind.
	// Returns ErrNotFound when absent.
	FindByPublicID(ctx context.Context, kind Kind, publicID string) (*Account, error)

	// FindByID looks up by internal identifier across kinds.
	// Returns ErrNotFound when absent.
	FindByID(ctx context.Context, id uuid.UUID) (*Account, error)

	// SetVerificationCode stores a fresh code and expiry, replacing any
	// outstanding pair. The write is conditional on the account still being
	// unverified so a concurrent successful redemption can never leave a
	// verified account holding a code. Returns ErrNotFound when the account
	// is absent and ErrAlreadyVerified when it has been verified.
	SetVerificationCode(ctx context.Context, id uuid.UUID, code string, expiresAt time.Time) error

	// ConsumeVerificationCode atomically marks the account verified and
	// clears the code pair, but only where the stored code equals code and
	// has not expired at now. On failure it classifies: ErrNotFound,
	// ErrNoCodeOutstanding, ErrCodeMismatch or ErrCodeExpired.
	ConsumeVerificationCode(ctx context.Context, id uuid.UUID, code string, now time.Time) error

	// SetResetToken stores a reset token digest and expiry, replacing any
	// outstanding pair so only the most recent token redeems. Returns
	// ErrNotFound when the account is absent.
	SetResetToken(ctx context.Context, id uuid.UUID, tokenDigest string, expiresAt time.Time) error

	// ConsumeResetToken atomically replaces the password hash and clears
	// the reset pair on the single account whose stored digest equals
	// tokenDigest and has not expired at now. No match and expired both
	// collapse to ErrInvalidOrExpiredResetToken.
	ConsumeResetToken(ctx context.Context, tokenDigest, newPasswordHash string, now time.Time) (*Account, error)
}
