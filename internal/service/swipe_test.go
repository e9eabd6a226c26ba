package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cpreston123/core-swipe-service-Care2Share/internal/domain"
)

func TestSwipeService_DonateThenClaim(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.createUser(t, "donor", 5, 0)
	f.createUser(t, "recipient", 0, 0)

	donation, err := f.swipes.Donate(ctx, "donor", 3)
	require.NoError(t, err)
	assert.Len(t, donation.SwipeIDs, 3)

	donor := f.user(t, "donor")
	assert.Equal(t, 2, donor.CurrentSwipes)
	assert.Equal(t, 3, donor.SwipesGiven)
	f.requireOwnedMatchesBalance(t, "donor")

	pool, err := f.swipes.ListDonated(ctx)
	require.NoError(t, err)
	require.Len(t, pool, 3)

	size, err := f.swipes.PoolSize(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, size)

	claim, err := f.swipes.Claim(ctx, "recipient", 3)
	require.NoError(t, err)
	require.Len(t, claim.Transactions, 3)

	claimedIDs := make([]uint, 0, 3)
	for _, tr := range claim.Transactions {
		assert.Equal(t, domain.TransactionSwipe, tr.Kind)
		assert.Equal(t, "donor", tr.DonorID)
		assert.Equal(t, "recipient", tr.RecipientID)
		require.NotNil(t, tr.SwipeID)
		claimedIDs = append(claimedIDs, *tr.SwipeID)
	}
	assert.ElementsMatch(t, donation.SwipeIDs, claimedIDs)

	recipient := f.user(t, "recipient")
	assert.Equal(t, 3, recipient.CurrentSwipes)
	assert.Equal(t, 3, recipient.SwipesReceived)
	f.requireOwnedMatchesBalance(t, "recipient")

	// Donor counters are only touched at donation time.
	donor = f.user(t, "donor")
	assert.Equal(t, 3, donor.SwipesGiven)

	pool, err = f.swipes.ListDonated(ctx)
	require.NoError(t, err)
	assert.Empty(t, pool)

	size, err = f.swipes.PoolSize(ctx)
	require.NoError(t, err)
	assert.Zero(t, size)

	all, err := f.swipes.ListSwipes(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 5)

	history, err := f.transactions.History(ctx, "recipient", domain.NewPage(1, 10))
	require.NoError(t, err)
	assert.EqualValues(t, 3, history.Page.TotalItems)
}

func TestSwipeService_DonateMoreThanHeld(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.createUser(t, "donor", 2, 0)

	_, err := f.swipes.Donate(ctx, "donor", 3)
	require.ErrorIs(t, err, ErrInsufficientBalance)

	var insufficient *domain.InsufficientBalanceError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, 2, insufficient.Available)

	assert.Equal(t, 2, f.user(t, "donor").CurrentSwipes)
	f.requireOwnedMatchesBalance(t, "donor")

	_, err = f.swipes.Donate(ctx, "nobody", 1)
	require.ErrorIs(t, err, ErrUserNotFound)

	_, err = f.swipes.Donate(ctx, "donor", 0)
	require.ErrorIs(t, err, ErrInvalidAmount)
}

func TestSwipeService_OverClaimLeavesPoolUnchanged(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.createUser(t, "donor", 2, 0)
	f.createUser(t, "recipient", 0, 0)

	_, err := f.swipes.Donate(ctx, "donor", 2)
	require.NoError(t, err)

	_, err = f.swipes.Claim(ctx, "recipient", 3)
	require.ErrorIs(t, err, ErrInsufficientBalance)

	var insufficient *domain.InsufficientBalanceError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, 2, insufficient.Available)

	pool, err := f.swipes.ListDonated(ctx)
	require.NoError(t, err)
	assert.Len(t, pool, 2)
	assert.Zero(t, f.user(t, "recipient").CurrentSwipes)

	history, err := f.transactions.History(ctx, "recipient", domain.NewPage(1, 10))
	require.NoError(t, err)
	assert.Zero(t, history.Page.TotalItems)
}

func TestSwipeService_ClaimOldestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.createUser(t, "first", 1, 0)
	f.createUser(t, "second", 1, 0)
	f.createUser(t, "recipient", 0, 0)

	_, err := f.swipes.Donate(ctx, "first", 1)
	require.NoError(t, err)
	_, err = f.swipes.Donate(ctx, "second", 1)
	require.NoError(t, err)

	claim, err := f.swipes.Claim(ctx, "recipient", 1)
	require.NoError(t, err)
	require.Len(t, claim.Transactions, 1)
	assert.Equal(t, "first", claim.Transactions[0].DonorID)
}

func TestSwipeService_ClaimUnknownRecipient(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.createUser(t, "donor", 1, 0)

	_, err := f.swipes.Donate(ctx, "donor", 1)
	require.NoError(t, err)

	_, err = f.swipes.Claim(ctx, "nobody", 1)
	require.ErrorIs(t, err, ErrUserNotFound)

	pool, err := f.swipes.ListDonated(ctx)
	require.NoError(t, err)
	assert.Len(t, pool, 1)
}

func TestSwipeService_BalancesNeverNegative(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.createUser(t, "a", 2, 0)
	f.createUser(t, "b", 1, 0)

	steps := []func() error{
		func() error { _, err := f.swipes.Donate(ctx, "a", 2); return err },
		func() error { _, err := f.swipes.Donate(ctx, "a", 1); return err },
		func() error { _, err := f.swipes.Claim(ctx, "b", 1); return err },
		func() error { _, err := f.swipes.Donate(ctx, "b", 2); return err },
		func() error { _, err := f.swipes.Claim(ctx, "b", 5); return err },
		func() error { _, err := f.swipes.Donate(ctx, "b", 2); return err },
		func() error { _, err := f.swipes.Claim(ctx, "a", 2); return err },
	}

	for _, step := range steps {
		_ = step()
		for _, uni := range []string{"a", "b"} {
			u := f.user(t, uni)
			require.GreaterOrEqual(t, u.CurrentSwipes, 0)
			f.requireOwnedMatchesBalance(t, uni)
		}
	}

	// Three swipes existed at the start and none were created or destroyed.
	pool, err := f.swipes.ListDonated(ctx)
	require.NoError(t, err)
	total := len(pool) + f.user(t, "a").CurrentSwipes + f.user(t, "b").CurrentSwipes
	assert.Equal(t, 3, total)
}
