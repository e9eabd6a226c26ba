package domain

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int {
	return &v
}

func TestUser_Apply(t *testing.T) {
	tests := []struct {
		name    string
		user    User
		update  BalanceUpdate
		want    User
		wantErr error
	}{
		{
			name:   "absolute set",
			user:   User{Uni: "ab1234", CurrentSwipes: 3, CurrentPoints: 10},
			update: BalanceUpdate{Swipes: intPtr(7), Points: intPtr(0)},
			want:   User{Uni: "ab1234", CurrentSwipes: 7, CurrentPoints: 0},
		},
		{
			name:    "absolute negative swipes",
			user:    User{Uni: "ab1234", CurrentSwipes: 3},
			update:  BalanceUpdate{Swipes: intPtr(-1)},
			want:    User{Uni: "ab1234", CurrentSwipes: 3},
			wantErr: ErrNegativeBalance,
		},
		{
			name:    "absolute negative points",
			user:    User{Uni: "ab1234", CurrentPoints: 3},
			update:  BalanceUpdate{Points: intPtr(-1)},
			want:    User{Uni: "ab1234", CurrentPoints: 3},
			wantErr: ErrNegativeBalance,
		},
		{
			name:   "relative increment",
			user:   User{Uni: "ab1234", CurrentSwipes: 3},
			update: BalanceUpdate{Swipes: intPtr(2), Relative: true},
			want:   User{Uni: "ab1234", CurrentSwipes: 5},
		},
		{
			name:   "relative decrement counts as given",
			user:   User{Uni: "ab1234", CurrentSwipes: 3, SwipesGiven: 1, CurrentPoints: 50},
			update: BalanceUpdate{Swipes: intPtr(-3), Points: intPtr(-20), Relative: true},
			want:   User{Uni: "ab1234", CurrentSwipes: 0, SwipesGiven: 4, CurrentPoints: 30, PointsGiven: 20},
		},
		{
			name:    "relative decrement beyond balance",
			user:    User{Uni: "ab1234", CurrentSwipes: 3},
			update:  BalanceUpdate{Swipes: intPtr(-5), Relative: true},
			want:    User{Uni: "ab1234", CurrentSwipes: 3},
			wantErr: ErrInsufficientBalance,
		},
		{
			name:    "invalid points leaves valid swipes unapplied",
			user:    User{Uni: "ab1234", CurrentSwipes: 3, CurrentPoints: 1},
			update:  BalanceUpdate{Swipes: intPtr(-1), Points: intPtr(-2), Relative: true},
			want:    User{Uni: "ab1234", CurrentSwipes: 3, CurrentPoints: 1},
			wantErr: ErrInsufficientBalance,
		},
		{
			name:    "relative increment overflowing int",
			user:    User{Uni: "ab1234", CurrentPoints: 1},
			update:  BalanceUpdate{Points: intPtr(math.MaxInt), Relative: true},
			want:    User{Uni: "ab1234", CurrentPoints: 1},
			wantErr: ErrBalanceTooLarge,
		},
		{
			name:    "relative increment past maximum",
			user:    User{Uni: "ab1234", CurrentSwipes: MaxBalance - 1},
			update:  BalanceUpdate{Swipes: intPtr(2), Relative: true},
			want:    User{Uni: "ab1234", CurrentSwipes: MaxBalance - 1},
			wantErr: ErrBalanceTooLarge,
		},
		{
			name:   "relative increment up to maximum",
			user:   User{Uni: "ab1234", CurrentSwipes: MaxBalance - 1},
			update: BalanceUpdate{Swipes: intPtr(1), Relative: true},
			want:   User{Uni: "ab1234", CurrentSwipes: MaxBalance},
		},
		{
			name:    "relative decrement of min int",
			user:    User{Uni: "ab1234", CurrentPoints: 5},
			update:  BalanceUpdate{Points: intPtr(math.MinInt), Relative: true},
			want:    User{Uni: "ab1234", CurrentPoints: 5},
			wantErr: ErrBalanceTooLarge,
		},
		{
			name:    "absolute above maximum",
			user:    User{Uni: "ab1234"},
			update:  BalanceUpdate{Swipes: intPtr(MaxBalance + 1)},
			want:    User{Uni: "ab1234"},
			wantErr: ErrBalanceTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := tt.user
			err := u.Apply(tt.update)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, u)
		})
	}
}

func TestUser_Apply_ErrorNamesAvailable(t *testing.T) {
	u := User{Uni: "ab1234", CurrentSwipes: 3}

	err := u.Apply(BalanceUpdate{Swipes: intPtr(-5), Relative: true})

	var insufficient *InsufficientBalanceError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, 3, insufficient.Available)
	assert.Equal(t, 2, insufficient.Shortfall())
	assert.Equal(t, "cannot decrement 5 swipes: user ab1234 has only 3 swipes available", err.Error())
}
