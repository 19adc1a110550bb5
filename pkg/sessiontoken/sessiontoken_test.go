package sessiontoken_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexuscampus/authcore/pkg/sessiontoken"
)

const testKey = "test-signing-key-at-least-32-bytes!"

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("empty key rejected", func(t *testing.T) {
		t.Parallel()

		_, err := sessiontoken.New("")
		assert.ErrorIs(t, err, sessiontoken.ErrMissingSigningKey)
	})

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()

		svc, err := sessiontoken.New(testKey)
		require.NoError(t, err)
		assert.Equal(t, sessiontoken.DefaultTTL, svc.TTL())
	})
}

func TestIssueValidate(t *testing.T) {
	t.Parallel()

	svc, err := sessiontoken.New(testKey)
	require.NoError(t, err)

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		tok, err := svc.Issue("acc-123", "institute")
		require.NoError(t, err)
		require.Len(t, strings.Split(tok, "."), 3)

		p, err := svc.Validate(tok)
		require.NoError(t, err)
		assert.Equal(t, "acc-123", p.AccountID)
		assert.Equal(t, "institute", p.Kind)
	})

	t.Run("empty subject rejected", func(t *testing.T) {
		t.Parallel()

		_, err := svc.Issue("", "student")
		assert.ErrorIs(t, err, sessiontoken.ErrMissingSubject)
	})

	t.Run("garbage token invalid", func(t *testing.T) {
		t.Parallel()

		for _, tok := range []string{"", "abc", "a.b.c", "a.b", "a.b.c.d"} {
			_, err := svc.Validate(tok)
			assert.ErrorIs(t, err, sessiontoken.ErrTokenInvalid, "token %q", tok)
		}
	})

	t.Run("wrong key invalid", func(t *testing.T) {
		t.Parallel()

		tok, err := svc.Issue("acc-123", "student")
		require.NoError(t, err)

		other, err := sessiontoken.New("a-completely-different-signing-key!!")
		require.NoError(t, err)
		_, err = other.Validate(tok)
		assert.ErrorIs(t, err, sessiontoken.ErrTokenInvalid)
	})

	t.Run("tampered payload invalid", func(t *testing.T) {
		t.Parallel()

		tok, err := svc.Issue("acc-123", "student")
		require.NoError(t, err)

		parts := strings.Split(tok, ".")
		parts[1] = strings.ToUpper(parts[1][:1]) + parts[1][1:]
		_, err = svc.Validate(strings.Join(parts, "."))
		assert.ErrorIs(t, err, sessiontoken.ErrTokenInvalid)
	})
}

func TestExpiry(t *testing.T) {
	t.Parallel()

	t.Run("expired after lifetime", func(t *testing.T) {
		t.Parallel()

		current := time.Now()
		svc, err := sessiontoken.New(testKey,
			sessiontoken.WithTTL(time.Hour),
			sessiontoken.WithClock(func() time.Time { return current }),
		)
		require.NoError(t, err)

		tok, err := svc.Issue("acc-123", "institute")
		require.NoError(t, err)

		_, err = svc.Validate(tok)
		require.NoError(t, err)

		current = current.Add(time.Hour + time.Minute)
		_, err = svc.Validate(tok)
		assert.ErrorIs(t, err, sessiontoken.ErrTokenExpired)
	})

	t.Run("custom ttl per issue", func(t *testing.T) {
		t.Parallel()

		current := time.Now()
		svc, err := sessiontoken.New(testKey,
			sessiontoken.WithClock(func() time.Time { return current }),
		)
		require.NoError(t, err)

		tok, err := svc.IssueWithTTL("acc-123", "student", 10*time.Minute)
		require.NoError(t, err)

		current = current.Add(11 * time.Minute)
		_, err = svc.Validate(tok)
		assert.ErrorIs(t, err, sessiontoken.ErrTokenExpired)
	})
}
