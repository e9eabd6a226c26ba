package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/cpreston123/core-swipe-service-Care2Share/internal/domain"
	"github.com/cpreston123/core-swipe-service-Care2Share/internal/repository/dao"
)

var ErrInsufficientPoolPoints = dao.ErrInsufficientPoolPoints

type PointsPoolDAO interface {
	Get(ctx context.Context) (dao.PointsPool, error)
	Deposit(ctx context.Context, n int) (dao.PointsPool, error)
	Withdraw(ctx context.Context, n int) (dao.PointsPool, error)
}

type PointsPoolRepository struct {
	dao PointsPoolDAO
}

func NewPointsPoolRepository(dao PointsPoolDAO) *PointsPoolRepository {
	return &PointsPoolRepository{
		dao: dao,
	}
}

func (r *PointsPoolRepository) Get(ctx context.Context) (domain.PointsPool, error) {
	pool, err := r.dao.Get(ctx)
	if err != nil {
		return domain.PointsPool{}, fmt.Errorf("r.dao.Get -> %w", err)
	}

	return r.daoToDomain(pool), nil
}

func (r *PointsPoolRepository) Deposit(ctx context.Context, n int) (domain.PointsPool, error) {
	pool, err := r.dao.Deposit(ctx, n)
	if err != nil {
		return domain.PointsPool{}, fmt.Errorf("r.dao.Deposit -> %w", err)
	}

	return r.daoToDomain(pool), nil
}

// Withdraw reports an *domain.InsufficientBalanceError naming the pool balance when it cannot cover n.
func (r *PointsPoolRepository) Withdraw(ctx context.Context, n int) (domain.PointsPool, error) {
	pool, err := r.dao.Withdraw(ctx, n)
	if err != nil {
		err = fmt.Errorf("r.dao.Withdraw -> %w", err)
		if !errors.Is(err, ErrInsufficientPoolPoints) {
			return domain.PointsPool{}, err
		}

		current, getErr := r.dao.Get(ctx)
		if getErr != nil {
			return domain.PointsPool{}, err
		}

		return domain.PointsPool{}, fmt.Errorf("%w: %w", err, &domain.InsufficientBalanceError{
			Resource:  "points",
			Requested: n,
			Available: current.Balance,
		})
	}

	return r.daoToDomain(pool), nil
}

func (r *PointsPoolRepository) daoToDomain(p dao.PointsPool) domain.PointsPool {
	return domain.PointsPool{
		Balance:   p.Balance,
		Version:   p.Version,
		UpdatedAt: p.UpdatedAt,
	}
}
