package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/cpreston123/core-swipe-service-Care2Share/internal/domain"
)

var ErrInvalidField = errors.New("field must be one of current_points, current_swipes")

const (
	FieldCurrentPoints = "current_points"
	FieldCurrentSwipes = "current_swipes"
)

type UserRepository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	FindByUni(ctx context.Context, uni string) (domain.User, error)
	FindByUniForUpdate(ctx context.Context, uni string) (domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, user domain.User) (domain.User, error)
}

type OwnedSwipeRepository interface {
	SyncOwned(ctx context.Context, uni string, target int) error
}

type UserService struct {
	tx       Transactor
	repo     UserRepository
	swipes   OwnedSwipeRepository
	notifier Notifier
}

func NewUserService(tx Transactor, repo UserRepository, swipes OwnedSwipeRepository, notifier Notifier) *UserService {
	return &UserService{
		tx:       tx,
		repo:     repo,
		swipes:   swipes,
		notifier: notifier,
	}
}

// CreateUser registers a user and issues one swipe row per swipe held.
func (s *UserService) CreateUser(ctx context.Context, user domain.User) (domain.User, error) {
	if user.CurrentSwipes < 0 || user.CurrentPoints < 0 {
		return domain.User{}, ErrNegativeBalance
	}
	if user.CurrentSwipes > domain.MaxBalance || user.CurrentPoints > domain.MaxBalance {
		return domain.User{}, ErrBalanceTooLarge
	}

	var created domain.User
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.repo.Create(ctx, user)
		if err != nil {
			return fmt.Errorf("s.repo.Create -> %w", err)
		}

		if err = s.swipes.SyncOwned(ctx, created.Uni, created.CurrentSwipes); err != nil {
			return fmt.Errorf("s.swipes.SyncOwned -> %w", err)
		}

		return nil
	})
	if err != nil {
		return domain.User{}, err
	}

	return created, nil
}

// Login returns the user registered under uni, creating it on first login.
// New users start at zero and stay uninitialized until an admin sets their balances.
// The boolean reports whether the user was created.
func (s *UserService) Login(ctx context.Context, uni string) (domain.User, bool, error) {
	user, err := s.repo.FindByUni(ctx, uni)
	if err == nil {
		return user, false, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return domain.User{}, false, fmt.Errorf("s.repo.FindByUni -> %w", err)
	}

	created, err := s.CreateUser(ctx, domain.User{Uni: uni})
	if errors.Is(err, ErrUserExists) {
		// Lost a race with a concurrent first login.
		user, err = s.repo.FindByUni(ctx, uni)
		if err != nil {
			return domain.User{}, false, fmt.Errorf("s.repo.FindByUni -> %w", err)
		}

		return user, false, nil
	}
	if err != nil {
		return domain.User{}, false, fmt.Errorf("s.CreateUser -> %w", err)
	}

	notifyAsync(s.notifier, uni, "Welcome to Care2Share",
		"Thanks for joining Care2Share! You can now donate and claim meal swipes and dining points.")

	return created, true, nil
}

func (s *UserService) GetUser(ctx context.Context, uni string) (domain.User, error) {
	user, err := s.repo.FindByUni(ctx, uni)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindByUni -> %w", err)
	}

	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return users, nil
}

// UpdateBalance applies upd to uni's balances. Nothing changes unless every field is valid.
func (s *UserService) UpdateBalance(ctx context.Context, uni string, upd domain.BalanceUpdate) (domain.User, error) {
	var updated domain.User
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		updated, _, err = s.applyLocked(ctx, uni, upd, false)

		return err
	})
	if err != nil {
		return domain.User{}, err
	}

	return updated, nil
}

// SetField sets one balance field to an absolute value. The first such update on a user
// marks the account initialized and notifies them.
func (s *UserService) SetField(ctx context.Context, uni, field string, value int) (domain.User, error) {
	upd := domain.BalanceUpdate{}
	switch field {
	case FieldCurrentPoints:
		upd.Points = &value
	case FieldCurrentSwipes:
		upd.Swipes = &value
	default:
		return domain.User{}, ErrInvalidField
	}

	var (
		updated     domain.User
		initialized bool
	)
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		updated, initialized, err = s.applyLocked(ctx, uni, upd, true)

		return err
	})
	if err != nil {
		return domain.User{}, err
	}

	if initialized {
		notifyAsync(s.notifier, uni, "Care2Share Account Initialized",
			fmt.Sprintf("Your account is ready: %d swipes and %d dining points.", updated.CurrentSwipes, updated.CurrentPoints))
	}

	return updated, nil
}

func (s *UserService) applyLocked(ctx context.Context, uni string, upd domain.BalanceUpdate, initialize bool) (domain.User, bool, error) {
	user, err := s.repo.FindByUniForUpdate(ctx, uni)
	if err != nil {
		return domain.User{}, false, fmt.Errorf("s.repo.FindByUniForUpdate -> %w", err)
	}

	if err = user.Apply(upd); err != nil {
		return domain.User{}, false, fmt.Errorf("user.Apply -> %w", err)
	}

	newlyInitialized := initialize && !user.Initialized()
	if newlyInitialized {
		t := now()
		user.InitializedAt = &t
	}

	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		return domain.User{}, false, fmt.Errorf("s.repo.Update -> %w", err)
	}

	if upd.Swipes != nil {
		if err = s.swipes.SyncOwned(ctx, uni, updated.CurrentSwipes); err != nil {
			return domain.User{}, false, fmt.Errorf("s.swipes.SyncOwned -> %w", err)
		}
	}

	return updated, newlyInitialized, nil
}
