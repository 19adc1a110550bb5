package sessiontoken

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is the absolute lifetime of a login session token.
const DefaultTTL = 7 * 24 * time.Hour

// Claims is the JWT payload: registered claims plus the principal kind.
type Claims struct {
	Kind string `json:"knd"`
	jwt.RegisteredClaims
}

// Principal is the verified identity extracted from a valid token.
type Principal struct {
	AccountID string
	Kind      string
}

// Service signs and verifies session tokens with a single HS256 key.
type Service struct {
	signingKey []byte
	issuer     string
	ttl        time.Duration
	now        func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithTTL overrides the default token lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithIssuer sets the iss claim on issued tokens.
func WithIssuer(issuer string) Option {
	return func(s *Service) { s.issuer = issuer }
}

// WithClock injects a time source. Used by tests to simulate expiry.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a token service. An empty signing key is a configuration
// error and must abort startup.
func New(signingKey string, opts ...Option) (*Service, error) {
	if signingKey == "" {
		return nil, ErrMissingSigningKey
	}

	s := &Service{
		signingKey: []byte(signingKey),
		ttl:        DefaultTTL,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// TTL returns the configured token lifetime.
func (s *Service) TTL() time.Duration { return s.ttl }

// Issue signs a token for the given account and kind using the configured
// lifetime.
func (s *Service) Issue(accountID, kind string) (string, error) {
	return s.IssueWithTTL(accountID, kind, s.ttl)
}

// IssueWithTTL signs a token with an explicit lifetime, for intermediate
// flows that need shorter-lived sessions.
func (s *Service) IssueWithTTL(accountID, kind string, ttl time.Duration) (string, error) {
	if accountID == "" {
		return "", ErrMissingSubject
	}

	now := s.now()
	claims := Claims{
		Kind: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("sessiontoken: sign: %w", err)
	}
	return tok, nil
}

// Validate verifies signature and expiry, returning the embedded principal.
// Signature failures and malformed tokens map to ErrTokenInvalid; only a
// structurally valid, correctly signed but stale token maps to
// ErrTokenExpired. An unverified payload is never partially trusted.
func (s *Service) Validate(tokenString string) (Principal, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(tokenString, &claims,
		func(t *jwt.Token) (any, error) { return s.signingKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Principal{}, ErrTokenExpired
		}
		return Principal{}, ErrTokenInvalid
	}

	if claims.Subject == "" || claims.Kind == "" {
		return Principal{}, ErrTokenInvalid
	}

	return Principal{AccountID: claims.Subject, Kind: claims.Kind}, nil
}
