package pgstore

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nexuscampus/authcore/modules/accounts"
	"github.com/nexuscampus/authcore/pkg/pg"
)

// Store implements accounts.Storage over a pgx connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a Store. The pool must already be connected.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

const accountColumns = `id, kind, public_id, email, password_hash, is_verified,
	verification_code, verification_code_expires_at,
	reset_token_hash, reset_expires_at, created_at, updated_at`

// Insert persists a new account. The unique indexes arbitrate races; the
// violated constraint's name tells which conflict occurred.
func (s *Store) Insert(ctx context.Context, account *accounts.Account) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO accounts (id, kind, public_id, email, password_hash, is_verified, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		account.ID, account.Kind, account.PublicID, account.Email,
		account.PasswordHash, account.IsVerified, account.CreatedAt, account.UpdatedAt,
	)
	if err != nil {
		if pg.IsUniqueViolation(err) {
			switch pg.ConstraintName(err) {
			case "accounts_kind_public_id_key":
				return accounts.ErrDuplicatePublicID
			case "accounts_kind_email_key":
				return accounts.ErrEmailTaken
			}
		}
		return fmt.Errorf("pgstore: insert account: %w", err)
	}
	return nil
}

// FindByEmail looks up by normalized email within a kind.
func (s *Store) FindByEmail(ctx context.Context, kind accounts.Kind, email string) (*accounts.Account, error) {
	return s.findOne(ctx, `SELECT `+accountColumns+` FROM accounts WHERE kind = $1 AND email = $2`, kind, email)
}

// FindByPublicID looks up by public identifier within a kind.
func (s *Store) FindByPublicID(ctx context.Context, kind accounts.Kind, publicID string) (*accounts.Account, error) {
	return s.findOne(ctx, `SELECT `+accountColumns+` FROM accounts WHERE kind = $1 AND public_id = $2`, kind, publicID)
}

// FindByID looks up by internal identifier.
func (s *Store) FindByID(ctx context.Context, id uuid.UUID) (*accounts.Account, error) {
	return s.findOne(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
}

// SetVerificationCode replaces the outstanding verification pair in one
// conditional UPDATE. The is_verified guard keeps a concurrent winning
// redemption from being overwritten with a fresh code; a zero-row result is
// classified with a follow-up read.
func (s *Store) SetVerificationCode(ctx context.Context, id uuid.UUID, code string, expiresAt time.Time) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE accounts
		SET verification_code = $2, verification_code_expires_at = $3, updated_at = now()
		WHERE id = $1 AND is_verified = FALSE`,
		id, code, expiresAt,
	)
	if err != nil {
		return fmt.Errorf("pgstore: set verification code: %w", err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	if _, err := s.FindByID(ctx, id); err != nil {
		return err
	}
	return accounts.ErrAlreadyVerified
}

// ConsumeVerificationCode redeems a code in one conditional UPDATE. When no
// row matched, a follow-up read classifies the failure; by then the losing
// racer sees the already-cleared pair and reports ErrNoCodeOutstanding.
func (s *Store) ConsumeVerificationCode(ctx context.Context, id uuid.UUID, code string, now time.Time) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE accounts
		SET is_verified = TRUE,
		    verification_code = NULL,
		    verification_code_expires_at = NULL,
		    updated_at = now()
		WHERE id = $1
		  AND verification_code = $2
		  AND verification_code_expires_at >= $3`,
		id, code, now,
	)
	if err != nil {
		return fmt.Errorf("pgstore: consume verification code: %w", err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	account, err := s.FindByID(ctx, id)
	if err != nil {
		return err
	}
	switch {
	case account.VerificationCode == nil || account.VerificationCodeExpiresAt == nil:
		return accounts.ErrNoCodeOutstanding
	case *account.VerificationCode != code:
		return accounts.ErrCodeMismatch
	default:
		return accounts.ErrCodeExpired
	}
}

// SetResetToken replaces the outstanding reset pair.
func (s *Store) SetResetToken(ctx context.Context, id uuid.UUID, tokenDigest string, expiresAt time.Time) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE accounts
		SET reset_token_hash = $2, reset_expires_at = $3, updated_at = now()
		WHERE id = $1`,
		id, tokenDigest, expiresAt,
	)
	if err != nil {
		return fmt.Errorf("pgstore: set reset token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return accounts.ErrNotFound
	}
	return nil
}

// ConsumeResetToken installs the new password hash and clears the reset pair
// in one conditional UPDATE keyed by digest. Unknown, expired and already
// redeemed all surface as the same error.
func (s *Store) ConsumeResetToken(ctx context.Context, tokenDigest, newPasswordHash string, now time.Time) (*accounts.Account, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE accounts
		SET password_hash = $2,
		    reset_token_hash = NULL,
		    reset_expires_at = NULL,
		    updated_at = now()
		WHERE reset_token_hash = $1
		  AND reset_expires_at >= $3
		RETURNING `+accountColumns,
		tokenDigest, newPasswordHash, now,
	)

	account, err := scanAccount(row)
	if err != nil {
		if pg.IsNotFound(err) {
			return nil, accounts.ErrInvalidOrExpiredResetToken
		}
		return nil, fmt.Errorf("pgstore: consume reset token: %w", err)
	}
	return account, nil
}

func (s *Store) findOne(ctx context.Context, query string, args ...any) (*accounts.Account, error) {
	account, err := scanAccount(s.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if pg.IsNotFound(err) {
			return nil, accounts.ErrNotFound
		}
		return nil, fmt.Errorf("pgstore: query account: %w", err)
	}
	return account, nil
}

func scanAccount(row pgx.Row) (*accounts.Account, error) {
	var a accounts.Account
	err := row.Scan(
		&a.ID, &a.Kind, &a.PublicID, &a.Email, &a.PasswordHash, &a.IsVerified,
		&a.VerificationCode, &a.VerificationCodeExpiresAt,
		&a.ResetTokenHash, &a.ResetExpiresAt, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
