package service

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cpreston123/core-swipe-service-Care2Share/internal/domain"
)

func TestUserService_CreateUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.users.CreateUser(ctx, domain.User{Uni: "ab1234", CurrentSwipes: 4, CurrentPoints: 20})
	require.NoError(t, err)
	assert.Equal(t, 4, created.CurrentSwipes)
	f.requireOwnedMatchesBalance(t, "ab1234")

	_, err = f.users.CreateUser(ctx, domain.User{Uni: "ab1234"})
	require.ErrorIs(t, err, ErrUserExists)

	_, err = f.users.CreateUser(ctx, domain.User{Uni: "cd5678", CurrentSwipes: -1})
	require.ErrorIs(t, err, ErrNegativeBalance)

	_, err = f.users.CreateUser(ctx, domain.User{Uni: "cd5678", CurrentSwipes: domain.MaxBalance + 1})
	require.ErrorIs(t, err, ErrBalanceTooLarge)
}

func TestUserService_Login(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, created, err := f.users.Login(ctx, "ab1234")
	require.NoError(t, err)
	assert.True(t, created)
	assert.False(t, user.Initialized())
	assert.Zero(t, user.CurrentSwipes)
	assert.Zero(t, user.CurrentPoints)
	f.requireOwnedMatchesBalance(t, "ab1234")

	_, err = f.users.SetField(ctx, "ab1234", FieldCurrentSwipes, 2)
	require.NoError(t, err)

	user, created, err = f.users.Login(ctx, "ab1234")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, 2, user.CurrentSwipes)

	require.Eventually(t, func() bool {
		return len(f.notifier.subjects("ab1234")) == 2
	}, time.Second, 10*time.Millisecond)
}

func TestUserService_UpdateBalance_RelativeIncrementPastMaximum(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.createUser(t, "ab1234", 1, 1)

	_, err := f.users.UpdateBalance(ctx, "ab1234", domain.BalanceUpdate{Points: intPtr(math.MaxInt), Relative: true})
	require.ErrorIs(t, err, ErrBalanceTooLarge)

	_, err = f.users.UpdateBalance(ctx, "ab1234", domain.BalanceUpdate{Swipes: intPtr(domain.MaxBalance), Relative: true})
	require.ErrorIs(t, err, ErrBalanceTooLarge)

	u := f.user(t, "ab1234")
	assert.Equal(t, 1, u.CurrentSwipes)
	assert.Equal(t, 1, u.CurrentPoints)
	f.requireOwnedMatchesBalance(t, "ab1234")
}

func TestUserService_UpdateBalance_RelativeDecrementBeyondBalance(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.createUser(t, "ab1234", 3, 0)

	_, err := f.users.UpdateBalance(ctx, "ab1234", domain.BalanceUpdate{Swipes: intPtr(-5), Relative: true})
	require.ErrorIs(t, err, ErrInsufficientBalance)

	var insufficient *domain.InsufficientBalanceError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, 3, insufficient.Available)
	assert.Contains(t, insufficient.Error(), "3")

	assert.Equal(t, 3, f.user(t, "ab1234").CurrentSwipes)
	f.requireOwnedMatchesBalance(t, "ab1234")
}

func TestUserService_UpdateBalance_AbsoluteNegative(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.createUser(t, "ab1234", 3, 10)

	_, err := f.users.UpdateBalance(ctx, "ab1234", domain.BalanceUpdate{Swipes: intPtr(-1)})
	require.ErrorIs(t, err, ErrNegativeBalance)

	_, err = f.users.UpdateBalance(ctx, "ab1234", domain.BalanceUpdate{Points: intPtr(-1)})
	require.ErrorIs(t, err, ErrNegativeBalance)

	u := f.user(t, "ab1234")
	assert.Equal(t, 3, u.CurrentSwipes)
	assert.Equal(t, 10, u.CurrentPoints)
}

func TestUserService_UpdateBalance(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.createUser(t, "ab1234", 3, 10)

	u, err := f.users.UpdateBalance(ctx, "ab1234", domain.BalanceUpdate{Swipes: intPtr(-2), Points: intPtr(5), Relative: true})
	require.NoError(t, err)
	assert.Equal(t, 1, u.CurrentSwipes)
	assert.Equal(t, 2, u.SwipesGiven)
	assert.Equal(t, 15, u.CurrentPoints)
	assert.Zero(t, u.PointsGiven)
	f.requireOwnedMatchesBalance(t, "ab1234")

	u, err = f.users.UpdateBalance(ctx, "ab1234", domain.BalanceUpdate{Swipes: intPtr(6)})
	require.NoError(t, err)
	assert.Equal(t, 6, u.CurrentSwipes)
	f.requireOwnedMatchesBalance(t, "ab1234")

	_, err = f.users.UpdateBalance(ctx, "zz9999", domain.BalanceUpdate{Swipes: intPtr(1)})
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserService_SetField(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, _, err := f.users.Login(ctx, "ab1234")
	require.NoError(t, err)

	u, err := f.users.SetField(ctx, "ab1234", FieldCurrentSwipes, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, u.CurrentSwipes)
	assert.True(t, u.Initialized())
	f.requireOwnedMatchesBalance(t, "ab1234")

	u, err = f.users.SetField(ctx, "ab1234", FieldCurrentSwipes, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, u.CurrentSwipes)
	f.requireOwnedMatchesBalance(t, "ab1234")

	_, err = f.users.SetField(ctx, "ab1234", FieldCurrentPoints, -3)
	require.ErrorIs(t, err, ErrNegativeBalance)

	_, err = f.users.SetField(ctx, "ab1234", "swipes_given", 3)
	require.ErrorIs(t, err, ErrInvalidField)

	require.Eventually(t, func() bool {
		subjects := f.notifier.subjects("ab1234")
		initialized := 0
		for _, s := range subjects {
			if s == "Care2Share Account Initialized" {
				initialized++
			}
		}

		return initialized == 1
	}, time.Second, 10*time.Millisecond)
}

func TestUserService_ListUsers(t *testing.T) {
	f := newFixture(t)
	f.createUser(t, "cd5678", 0, 0)
	f.createUser(t, "ab1234", 0, 0)

	users, err := f.users.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "ab1234", users[0].Uni)
}
