package secrethash

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

// resetTokenBytes is the raw entropy of an opaque reset token. 32 bytes
// gives 256 bits, enough that the SHA-256 digest can serve as a lookup key
// without a slow hash.
const resetTokenBytes = 32

// Hasher performs password hashing and verification with a configurable
// bcrypt cost. The zero value is not usable; construct with New.
type Hasher struct {
	bcryptCost int
}

// Option configures a Hasher.
type Option func(*Hasher)

// WithBcryptCost sets the bcrypt cost factor. Costs outside the range
// supported by bcrypt are ignored and the default is kept.
func WithBcryptCost(cost int) Option {
	return func(h *Hasher) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			h.bcryptCost = cost
		}
	}
}

// New creates a Hasher with bcrypt.DefaultCost unless overridden.
func New(opts ...Option) *Hasher {
	h := &Hasher{bcryptCost: bcrypt.DefaultCost}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// HashPassword returns a salted bcrypt hash of plaintext. The salt is random
// per call, so hashing the same input twice yields different outputs.
func (h *Hasher) HashPassword(plaintext string) (string, error) {
	if plaintext == "" {
		return "", ErrEmptyPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrHashingFailed, err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether plaintext matches the stored bcrypt hash.
// Malformed hashes verify as false rather than surfacing an error.
func (h *Hasher) VerifyPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// DigestToken returns the hex-encoded SHA-256 digest of a raw token.
// Deterministic by design: the digest is the stored lookup key for opaque
// reset tokens, the raw token is never persisted.
func DigestToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// DigestEqual compares two token digests in constant time.
func DigestEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// NewResetToken generates an opaque random token with 256 bits of entropy,
// base64url-encoded for safe embedding in links.
func NewResetToken() (string, error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("%w: %w", ErrEntropyUnavailable, err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// NewNumericCode generates a 6-digit verification code uniformly distributed
// over 100000..999999 using crypto/rand.
func NewNumericCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEntropyUnavailable, err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
