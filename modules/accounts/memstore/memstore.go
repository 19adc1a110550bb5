package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nexuscampus/authcore/modules/accounts"
)

// Store keeps accounts in a map guarded by a mutex.
type Store struct {
	mu       sync.Mutex
	accounts map[uuid.UUID]*accounts.Account
}

// New creates an empty store.
func New() *Store {
	return &Store{accounts: make(map[uuid.UUID]*accounts.Account)}
}

// Insert persists a new account, enforcing the per-kind uniqueness of
// email and public id the way the database constraints do.
func (s *Store) Insert(_ context.Context, account *accounts.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.accounts {
		if existing.Kind != account.Kind {
			continue
		}
		if existing.PublicID == account.PublicID {
			return accounts.ErrDuplicatePublicID
		}
		if existing.Email == account.Email {
			return accounts.ErrEmailTaken
		}
	}

	s.accounts[account.ID] = clone(account)
	return nil
}

// FindByEmail looks up by normalized email within a kind.
func (s *Store) FindByEmail(_ context.Context, kind accounts.Kind, email string) (*accounts.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.accounts {
		if a.Kind == kind && a.Email == email {
			return clone(a), nil
		}
	}
	return nil, accounts.ErrNotFound
}

// FindByPublicID looks up by public identifier within a kind.
func (s *Store) FindByPublicID(_ context.Context, kind accounts.Kind, publicID string) (*accounts.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.accounts {
		if a.Kind == kind && a.PublicID == publicID {
			return clone(a), nil
		}
	}
	return nil, accounts.ErrNotFound
}

// FindByID looks up by internal identifier.
func (s *Store) FindByID(_ context.Context, id uuid.UUID) (*accounts.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.accounts[id]
	if !ok {
		return nil, accounts.ErrNotFound
	}
	return clone(a), nil
}

// SetVerificationCode replaces the outstanding verification pair. The
// verified check happens under the same lock as the write, so a redemption
// that won the race is never overwritten with a fresh code.
func (s *Store) SetVerificationCode(_ context.Context, id uuid.UUID, code string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.accounts[id]
	if !ok {
		return accounts.ErrNotFound
	}
	if a.IsVerified {
		return accounts.ErrAlreadyVerified
	}
	a.VerificationCode = &code
	a.VerificationCodeExpiresAt = &expiresAt
	a.UpdatedAt = time.Now()
	return nil
}

// ConsumeVerificationCode redeems a code under the lock, so a concurrent
// second redemption observes the cleared pair and fails.
func (s *Store) ConsumeVerificationCode(_ context.Context, id uuid.UUID, code string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.accounts[id]
	if !ok {
		return accounts.ErrNotFound
	}
	if a.VerificationCode == nil || a.VerificationCodeExpiresAt == nil {
		return accounts.ErrNoCodeOutstanding
	}
	if *a.VerificationCode != code {
		return accounts.ErrCodeMismatch
	}
	if now.After(*a.VerificationCodeExpiresAt) {
		return accounts.ErrCodeExpired
	}

	a.IsVerified = true
	a.VerificationCode = nil
	a.VerificationCodeExpiresAt = nil
	a.UpdatedAt = time.Now()
	return nil
}

// SetResetToken replaces the outstanding reset pair.
func (s *Store) SetResetToken(_ context.Context, id uuid.UUID, tokenDigest string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.accounts[id]
	if !ok {
		return accounts.ErrNotFound
	}
	a.ResetTokenHash = &tokenDigest
	a.ResetExpiresAt = &expiresAt
	a.UpdatedAt = time.Now()
	return nil
}

// ConsumeResetToken installs a new password hash on the account holding the
// digest, clearing the pair in the same critical section.
func (s *Store) ConsumeResetToken(_ context.Context, tokenDigest, newPasswordHash string, now time.Time) (*accounts.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.accounts {
		if a.ResetTokenHash == nil || *a.ResetTokenHash != tokenDigest {
			continue
		}
		if a.ResetExpiresAt == nil || now.After(*a.ResetExpiresAt) {
			return nil, accounts.ErrInvalidOrExpiredResetToken
		}

		a.PasswordHash = newPasswordHash
		a.ResetTokenHash = nil
		a.ResetExpiresAt = nil
		a.UpdatedAt = time.Now()
		return clone(a), nil
	}
	return nil, accounts.ErrInvalidOrExpiredResetToken
}

func clone(a *accounts.Account) *accounts.Account {
	c := *a
	if a.VerificationCode != nil {
		v := *a.VerificationCode
		c.VerificationCode = &v
	}
	if a.VerificationCodeExpiresAt != nil {
		v := *a.VerificationCodeExpiresAt
		c.VerificationCodeExpiresAt = &v
	}
	if a.ResetTokenHash != nil {
		v := *a.ResetTokenHash
		c.ResetTokenHash = &v
	}
	if a.ResetExpiresAt != nil {
		v := *a.ResetExpiresAt
		c.ResetExpiresAt = &v
	}
	return &c
}
