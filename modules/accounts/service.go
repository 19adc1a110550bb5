package accounts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nexuscampus/authcore/pkg/logger"
	"github.com/nexuscampus/authcore/pkg/publicid"
	"github.com/nexuscampus/authcore/pkg/sanitizer"
	"github.com/nexuscampus/authcore/pkg/secrethash"
	"github.com/nexuscampus/authcore/pkg/sessiontoken"
	"github.com/nexuscampus/authcore/pkg/validator"

	"github.com/google/uuid"
)

// Service implements the credential lifecycle over a Storage, a Hasher, a
// session token service and a Mailer. It is stateless between requests.
type Service struct {
	storage Storage
	hasher  *secrethash.Hasher
	tokens  *sessiontoken.Service
	mailer  *Mailer
	log     *slog.Logger
	now     func() time.Time

	verificationTTL time.Duration
	resetTTL        time.Duration
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// WithClock injects a time source for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithVerificationTTL overrides the verification code lifetime.
func WithVerificationTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.verificationTTL = ttl
		}
	}
}

// WithResetTokenTTL overrides the reset token lifetime.
func WithResetTokenTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.resetTTL = ttl
		}
	}
}

// NewService wires the account service.
func NewService(storage Storage, hasher *secrethash.Hasher, tokens *sessiontoken.Service, mailer *Mailer, opts ...Option) *Service {
	s := &Service{
		storage:         storage,
		hasher:          hasher,
		tokens:          tokens,
		mailer:          mailer,
		log:             logger.NewDiscard(),
		now:             time.Now,
		verificationTTL: DefaultVerificationTTL,
		resetTTL:        DefaultResetTokenTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RegisterResult reports a completed signup. EmailSent is false when the
// account was created but the verification email could not be delivered;
// the caller should offer a resend path.
type RegisterResult struct {
	Account   *Account
	EmailSent bool
}

// Register creates an unverified account: normalizes and validates input,
// hashes the password, claims a unique public identifier through the
// store's uniqueness constraint, then issues and emails a verification
// code.
func (s *Service) Register(ctx context.Context, kind Kind, emailAddr, password string) (*RegisterResult, error) {
	if !kind.Valid() {
		return nil, ErrUnknownKind
	}

	emailAddr = sanitizer.NormalizeEmail(emailAddr)
	if err := validator.Apply(
		validator.ValidEmail("email", emailAddr),
		validator.StrongPassword("password", password),
	); err != nil {
		return nil, err
	}

	hash, err := s.hasher.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now()
	account := &Account{
		ID:           uuid.New(),
		Kind:         kind,
		Email:        emailAddr,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// The insert is the uniqueness check. A duplicate public id means we
	// lost the race and retry with a fresh candidate; any other conflict or
	// store error aborts.
	_, err = publicid.GenerateUnique(ctx, kind.Prefix(), func(ctx context.Context, candidate string) error {
		account.PublicID = candidate
		err := s.storage.Insert(ctx, account)
		if errors.Is(err, ErrDuplicatePublicID) {
			return publicid.ErrTaken
		}
		return err
	})
	if err != nil {
		if errors.Is(err, publicid.ErrExhausted) {
			s.log.ErrorContext(ctx, "public id space exhausted",
				logger.Component("accounts"),
				logger.Kind(kind),
			)
			return nil, ErrIdentifierExhausted
		}
		return nil, err
	}

	emailSent := true
	if _, err := s.issueVerification(ctx, account); err != nil {
		if !errors.Is(err, ErrEmailDeliveryFailed) {
			return nil, err
		}
		// The account exists and the code is stored; only delivery failed.
		emailSent = false
		s.log.WarnContext(ctx, "verification email not delivered",
			logger.Component("accounts"),
			logger.AccountID(account.ID),
			logger.Error(err),
		)
	}

	return &RegisterResult{Account: account, EmailSent: emailSent}, nil
}

// Authenticate verifies email and password for a kind and issues a session
// token. Unknown email and wrong password collapse to ErrInvalidCredentials
// to prevent account enumeration. Unverified accounts are rejected with
// ErrNotVerified so the caller can offer re-verification.
func (s *Service) Authenticate(ctx context.Context, kind Kind, emailAddr, password string) (*Account, string, error) {
	if !kind.Valid() {
		return nil, "", ErrUnknownKind
	}
	emailAddr = sanitizer.NormalizeEmail(emailAddr)

	account, err := s.storage.FindByEmail(ctx, kind, emailAddr)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !s.hasher.VerifyPassword(password, account.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	if !account.IsVerified {
		return nil, "", ErrNotVerified
	}

	token, err := s.tokens.Issue(account.ID.String(), string(account.Kind))
	if err != nil {
		return nil, "", fmt.Errorf("issue session token: %w", err)
	}

	return account, token, nil
}

// SessionTTL exposes the session token lifetime for cookie MaxAge.
func (s *Service) SessionTTL() time.Duration {
	return s.tokens.TTL()
}

// findByEmailAnyKind resolves an email across both kinds, institutes first.
// Emails are unique per kind, not globally; when both kinds hold the same
// address the institute account wins, matching the lookup order.
func (s *Service) findByEmailAnyKind(ctx context.Context, emailAddr string) (*Account, error) {
	for _, kind := range []Kind{KindInstitute, KindStudent} {
		account, err := s.storage.FindByEmail(ctx, kind, emailAddr)
		if err == nil {
			return account, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
	}
	return nil, ErrNotFound
}
