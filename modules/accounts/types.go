package accounts

import (
	"time"

	"github.com/google/uuid"
)

// Kind is the disjoint category of an account. It gates which routes a
// session token may access.
type Kind string

const (
	KindInstitute Kind = "institute"
	KindStudent   Kind = "student"
)

// Prefix returns the public-identifier prefix for the kind.
func (k Kind) Prefix() string {
	switch k {
	case KindInstitute:
		return "NXI"
	case KindStudent:
		return "STU"
	}
	return ""
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k == KindInstitute || k == KindStudent
}

// ParseKind converts a route segment into a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.Valid() {
		return "", ErrUnknownKind
	}
	return k, nil
}

// Default validity windows. Both secrets are single-use and short-lived.
const (
	DefaultVerificationTTL = 10 * time.Minute
	DefaultResetTokenTTL   = 10 * time.Minute
)

// Account is the persisted account entity. PasswordHash, VerificationCode
// and ResetTokenHash never leave the process in any response payload.
//
// The verification pair (code, expiry) and the reset pair (token hash,
// expiry) are either both nil or both set; a verified account always has a
// nil verification pair.
type Account struct {
	ID           uuid.UUID
	Kind         Kind
	PublicID     string
	Email        string
	PasswordHash string
	IsVerified   bool

	VerificationCode          *string
	VerificationCodeExpiresAt *time.Time

	ResetTokenHash *string
	ResetExpiresAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Profile is the caller-safe projection of an Account.
type Profile struct {
	PublicID   string `json:"public_id"`
	Email      string `json:"email"`
	Kind       Kind   `json:"kind"`
	IsVerified bool   `json:"is_verified"`
}

// Profile returns the projection safe to expose in API responses.
func (a *Account) Profile() Profile {
	return Profile{
		PublicID:   a.PublicID,
		Email:      a.Email,
		Kind:       a.Kind,
		IsVerified: a.IsVerified,
	}
}
