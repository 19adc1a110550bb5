package publicid

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// Alphabet is the unambiguous character set for the random part of an
// identifier. 31 characters over 6 positions gives ~887M identifiers per
// prefix.
const Alphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

const (
	// CodeLength is the length of the random part after the prefix.
	CodeLength = 6

	// MaxAttempts bounds the claim-retry loop in GenerateUnique.
	MaxAttempts = 10
)

var (
	// ErrTaken is returned by a claim function to signal that the candidate
	// collided with an existing identifier and another should be tried.
	ErrTaken = errors.New("publicid: identifier already taken")

	// ErrExhausted is returned when MaxAttempts candidates all collided.
	ErrExhausted = errors.New("publicid: attempts exhausted")

	// ErrEmptyPrefix is returned when no kind prefix is supplied.
	ErrEmptyPrefix = errors.New("publicid: empty prefix")
)

// ClaimFunc attempts to claim a candidate identifier, typically by inserting
// a row under a uniqueness constraint. It must return ErrTaken on a
// uniqueness conflict and any other error to abort generation.
type ClaimFunc func(ctx context.Context, candidate string) error

// New returns a fresh candidate identifier for the given kind prefix.
// The result is not guaranteed unique; use GenerateUnique for that.
func New(prefix string) (string, error) {
	if prefix == "" {
		return "", ErrEmptyPrefix
	}

	var sb strings.Builder
	sb.Grow(len(prefix) + 1 + CodeLength)
	sb.WriteString(prefix)
	sb.WriteByte('_')

	max := big.NewInt(int64(len(Alphabet)))
	for i := 0; i < CodeLength; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("publicid: entropy source unavailable: %w", err)
		}
		sb.WriteByte(Alphabet[n.Int64()])
	}

	return sb.String(), nil
}

// GenerateUnique produces candidates until claim accepts one or MaxAttempts
// candidates have collided. The claim function is the sole arbiter of
// uniqueness; a conflict reported by the underlying store is a retry signal,
// not a failure.
func GenerateUnique(ctx context.Context, prefix string, claim ClaimFunc) (string, error) {
	for i := 0; i < MaxAttempts; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		candidate, err := New(prefix)
		if err != nil {
			return "", err
		}

		err = claim(ctx, candidate)
		if err == nil {
			return candidate, nil
		}
		if errors.Is(err, ErrTaken) {
			continue
		}
		return "", err
	}

	return "", ErrExhausted
}

// Valid reports whether id is well-formed for the given prefix: the prefix,
// an underscore, and CodeLength characters from Alphabet.
func Valid(id, prefix string) bool {
	rest, ok := strings.CutPrefix(id, prefix+"_")
	if !ok || len(rest) != CodeLength {
		return false
	}
	for _, c := range rest {
		if !strings.ContainsRune(Alphabet, c) {
			return false
		}
	}
	return true
}
