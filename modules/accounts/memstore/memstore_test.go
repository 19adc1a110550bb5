package memstore_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexuscampus/authcore/modules/accounts"
	"github.com/nexuscampus/authcore/modules/accounts/memstore"
)

func newAccount(kind accounts.Kind, publicID, email string) *accounts.Account {
	now := time.Now()
	return &accounts.Account{
		ID:           uuid.New(),
		Kind:         kind,
		PublicID:     publicID,
		Email:        email,
		PasswordHash: "$2a$04$hash",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestInsertUniqueness(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := memstore.New()

	require.NoError(t, store.Insert(ctx, newAccount(accounts.KindStudent, "STU_AAAAAA", "a@example.com")))

	err := store.Insert(ctx, newAccount(accounts.KindStudent, "STU_AAAAAA", "b@example.com"))
	require.ErrorIs(t, err, accounts.ErrDuplicatePublicID)

	err = store.Insert(ctx, newAccount(accounts.KindStudent, "STU_BBBBBB", "a@example.com"))
	require.ErrorIs(t, err, accounts.ErrEmailTaken)

	// Uniqueness is per kind, not global.
	require.NoError(t, store.Insert(ctx, newAccount(accounts.KindInstitute, "STU_AAAAAA", "a@example.com")))
}

func TestInsertRaceOnSamePublicID(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := memstore.New()

	// Every racer claims the same candidate identifier; the store's
	// uniqueness check must admit exactly one and report the rest as
	// duplicates so the generation loop can retry them.
	const racers = 32
	var wg sync.WaitGroup
	results := make(chan error, racers)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			account := newAccount(accounts.KindStudent, "STU_SAMEID",
				fmt.Sprintf("racer%d@example.com", i))
			results <- store.Insert(ctx, account)
		}(i)
	}
	wg.Wait()
	close(results)

	var wins int
	for err := range results {
		if err == nil {
			wins++
		} else {
			require.ErrorIs(t, err, accounts.ErrDuplicatePublicID)
		}
	}
	assert.Equal(t, 1, wins, "exactly one claim of the candidate must win")
}

func TestFindReturnsCopies(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := memstore.New()

	account := newAccount(accounts.KindStudent, "STU_CCCCCC", "copy@example.com")
	require.NoError(t, store.Insert(ctx, account))

	got, err := store.FindByID(ctx, account.ID)
	require.NoError(t, err)
	got.Email = "mutated@example.com"

	again, err := store.FindByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, "copy@example.com", again.Email)
}

func TestConsumeVerificationCodeRace(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := memstore.New()

	account := newAccount(accounts.KindStudent, "STU_DDDDDD", "race@example.com")
	require.NoError(t, store.Insert(ctx, account))
	require.NoError(t, store.SetVerificationCode(ctx, account.ID, "123456", time.Now().Add(10*time.Minute)))

	const racers = 32
	var wg sync.WaitGroup
	results := make(chan error, racers)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- store.ConsumeVerificationCode(ctx, account.ID, "123456", time.Now())
		}()
	}
	wg.Wait()
	close(results)

	var wins, losses int
	for err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, accounts.ErrNoCodeOutstanding):
			losses++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, wins, "exactly one redemption must win")
	assert.Equal(t, racers-1, losses)
}

func TestConsumeResetTokenRace(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := memstore.New()

	account := newAccount(accounts.KindStudent, "STU_EEEEEE", "reset@example.com")
	require.NoError(t, store.Insert(ctx, account))
	require.NoError(t, store.SetResetToken(ctx, account.ID, "digest", time.Now().Add(10*time.Minute)))

	const racers = 32
	var wg sync.WaitGroup
	results := make(chan error, racers)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.ConsumeResetToken(ctx, "digest", "$2a$04$newhash", time.Now())
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var wins int
	for err := range results {
		if err == nil {
			wins++
		} else {
			require.ErrorIs(t, err, accounts.ErrInvalidOrExpiredResetToken)
		}
	}
	assert.Equal(t, 1, wins, "exactly one redemption must win")
}

func TestVerificationClassification(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := memstore.New()

	account := newAccount(accounts.KindStudent, "STU_FFFFFF", "class@example.com")
	require.NoError(t, store.Insert(ctx, account))

	err := store.ConsumeVerificationCode(ctx, account.ID, "123456", time.Now())
	require.ErrorIs(t, err, accounts.ErrNoCodeOutstanding)

	expiry := time.Now().Add(10 * time.Minute)
	require.NoError(t, store.SetVerificationCode(ctx, account.ID, "123456", expiry))

	err = store.ConsumeVerificationCode(ctx, account.ID, "654321", time.Now())
	require.ErrorIs(t, err, accounts.ErrCodeMismatch)

	err = store.ConsumeVerificationCode(ctx, account.ID, "123456", expiry.Add(time.Second))
	require.ErrorIs(t, err, accounts.ErrCodeExpired)

	// Boundary: a code is still valid at its exact expiry instant.
	require.NoError(t, store.ConsumeVerificationCode(ctx, account.ID, "123456", expiry))

	// A verified account never accepts a fresh code.
	err = store.SetVerificationCode(ctx, account.ID, "777777", time.Now().Add(10*time.Minute))
	require.ErrorIs(t, err, accounts.ErrAlreadyVerified)

	err = store.ConsumeVerificationCode(ctx, uuid.New(), "123456", time.Now())
	require.ErrorIs(t, err, accounts.ErrNotFound)

	err = store.SetVerificationCode(ctx, uuid.New(), "123456", time.Now().Add(10*time.Minute))
	require.ErrorIs(t, err, accounts.ErrNotFound)
}
