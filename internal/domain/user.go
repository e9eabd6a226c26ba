package domain

import (
	"errors"
	"fmt"
	"time"
)

// MaxBalance caps both current_swipes and current_points.
const MaxBalance = 1_000_000

var (
	ErrNegativeBalance = errors.New("balance cannot be negative")
	ErrBalanceTooLarge = errors.New("balance exceeds maximum")
)

type User struct {
	Uni            string     `json:"uni"`
	CurrentSwipes  int        `json:"current_swipes"`
	SwipesGiven    int        `json:"swipes_given"`
	SwipesReceived int        `json:"swipes_received"`
	CurrentPoints  int        `json:"current_points"`
	PointsGiven    int        `json:"points_given"`
	PointsReceived int        `json:"points_received"`
	InitializedAt  *time.Time `json:"initialized_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (u User) Initialized() bool {
	return u.InitializedAt != nil
}

// BalanceUpdate describes a change to a user's swipes and/or points.
// A nil field is left untouched.
type BalanceUpdate struct {
	Swipes   *int
	Points   *int
	Relative bool
}

// Apply validates every field of upd against u and applies them only if all are valid.
// Relative decrements add their magnitude to the matching "given" counter.
func (u *User) Apply(upd BalanceUpdate) error {
	swipes, swipesGiven, err := resolve("swipes", u.Uni, u.CurrentSwipes, upd.Swipes, upd.Relative)
	if err != nil {
		return err
	}
	points, pointsGiven, err := resolve("points", u.Uni, u.CurrentPoints, upd.Points, upd.Relative)
	if err != nil {
		return err
	}

	u.CurrentSwipes = swipes
	u.SwipesGiven += swipesGiven
	u.CurrentPoints = points
	u.PointsGiven += pointsGiven

	return nil
}

func resolve(resource, uni string, current int, value *int, relative bool) (next, given int, err error) {
	if value == nil {
		return current, 0, nil
	}

	v := *value
	if v > MaxBalance || v < -MaxBalance {
		return 0, 0, fmt.Errorf("%s value %d is out of range: %w", resource, v, ErrBalanceTooLarge)
	}

	if !relative {
		if v < 0 {
			return 0, 0, fmt.Errorf("%s count cannot be negative: %w", resource, ErrNegativeBalance)
		}

		return v, 0, nil
	}

	if v > MaxBalance-current {
		return 0, 0, fmt.Errorf("%s would exceed %d: %w", resource, MaxBalance, ErrBalanceTooLarge)
	}

	if v < 0 {
		if -v > current {
			return 0, 0, &InsufficientBalanceError{Resource: resource, Uni: uni, Requested: -v, Available: current}
		}

		return current + v, -v, nil
	}

	return current + v, 0, nil
}
