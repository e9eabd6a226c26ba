package repository

import (
	"context"
	"fmt"

	"github.com/cpreston123/core-swipe-service-Care2Share/internal/domain"
	"github.com/cpreston123/core-swipe-service-Care2Share/internal/repository/dao"
)

var (
	ErrUserExists         = dao.ErrUserExists
	ErrUserNotFound       = dao.ErrUserNotFound
	ErrInsufficientSwipes = dao.ErrInsufficientSwipes
	ErrInsufficientPoints = dao.ErrInsufficientPoints
)

type UserDAO interface {
	Insert(ctx context.Context, user dao.User) (dao.User, error)
	FindByUni(ctx context.Context, uni string) (dao.User, error)
	FindByUniForUpdate(ctx context.Context, uni string) (dao.User, error)
	FindAll(ctx context.Context) ([]dao.User, error)
	Update(ctx context.Context, user dao.User) (dao.User, error)
	DebitSwipes(ctx context.Context, uni string, n int) error
	CreditSwipes(ctx context.Context, uni string, n int) error
	DebitPoints(ctx context.Context, uni string, n int) error
	CreditPoints(ctx context.Context, uni string, n int) error
}

type UserRepository struct {
	dao UserDAO
}

func NewUserRepository(dao UserDAO) *UserRepository {
	return &UserRepository{
		dao: dao,
	}
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	created, err := r.dao.Insert(ctx, r.domainToDAO(user))
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *UserRepository) FindByUni(ctx context.Context, uni string) (domain.User, error) {
	found, err := r.dao.FindByUni(ctx, uni)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByUni -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) FindByUniForUpdate(ctx context.Context, uni string) (domain.User, error) {
	found, err := r.dao.FindByUniForUpdate(ctx, uni)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByUniForUpdate -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	users := make([]domain.User, len(found))
	for i, u := range found {
		users[i] = r.daoToDomain(u)
	}

	return users, nil
}

func (r *UserRepository) Update(ctx context.Context, user domain.User) (domain.User, error) {
	updated, err := r.dao.Update(ctx, r.domainToDAO(user))
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

// DebitSwipes reports an *domain.InsufficientBalanceError when uni holds fewer than n swipes.
func (r *UserRepository) DebitSwipes(ctx context.Context, uni string, n int) error {
	if err := r.dao.DebitSwipes(ctx, uni, n); err != nil {
		return r.insufficient(ctx, "swipes", uni, n, fmt.Errorf("r.dao.DebitSwipes -> %w", err))
	}

	return nil
}

func (r *UserRepository) CreditSwipes(ctx context.Context, uni string, n int) error {
	if err := r.dao.CreditSwipes(ctx, uni, n); err != nil {
		return fmt.Errorf("r.dao.CreditSwipes -> %w", err)
	}

	return nil
}

// DebitPoints reports an *domain.InsufficientBalanceError when uni holds fewer than n points.
func (r *UserRepository) DebitPoints(ctx context.Context, uni string, n int) error {
	if err := r.dao.DebitPoints(ctx, uni, n); err != nil {
		return r.insufficient(ctx, "points", uni, n, fmt.Errorf("r.dao.DebitPoints -> %w", err))
	}

	return nil
}

func (r *UserRepository) CreditPoints(ctx context.Context, uni string, n int) error {
	if err := r.dao.CreditPoints(ctx, uni, n); err != nil {
		return fmt.Errorf("r.dao.CreditPoints -> %w", err)
	}

	return nil
}

func (r *UserRepository) insufficient(ctx context.Context, resource, uni string, requested int, err error) error {
	if !errorsIsAny(err, ErrInsufficientSwipes, ErrInsufficientPoints) {
		return err
	}

	u, findErr := r.dao.FindByUni(ctx, uni)
	if findErr != nil {
		return err
	}

	available := u.CurrentSwipes
	if resource == "points" {
		available = u.CurrentPoints
	}

	return fmt.Errorf("%w: %w", err, &domain.InsufficientBalanceError{
		Resource:  resource,
		Uni:       uni,
		Requested: requested,
		Available: available,
	})
}

func (r *UserRepository) domainToDAO(u domain.User) dao.User {
	return dao.User{
		Uni:            u.Uni,
		CurrentSwipes:  u.CurrentSwipes,
		SwipesGiven:    u.SwipesGiven,
		SwipesReceived: u.SwipesReceived,
		CurrentPoints:  u.CurrentPoints,
		PointsGiven:    u.PointsGiven,
		PointsReceived: u.PointsReceived,
		InitializedAt:  u.InitializedAt,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

func (r *UserRepository) daoToDomain(u dao.User) domain.User {
	return domain.User{
		Uni:            u.Uni,
		CurrentSwipes:  u.CurrentSwipes,
		SwipesGiven:    u.SwipesGiven,
		SwipesReceived: u.SwipesReceived,
		CurrentPoints:  u.CurrentPoints,
		PointsGiven:    u.PointsGiven,
		PointsReceived: u.PointsReceived,
		InitializedAt:  u.InitializedAt,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}
