package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/cpreston123/core-swipe-service-Care2Share/internal/domain"
	"github.com/cpreston123/core-swipe-service-Care2Share/internal/repository/dao"
)

var ErrSwipeClaimConflict = dao.ErrSwipeClaimConflict

type SwipeDAO interface {
	InsertOwned(ctx context.Context, uni string, n int) error
	CountOwned(ctx context.Context, uni string) (int64, error)
	LockOwned(ctx context.Context, uni string, n int) ([]dao.Swipe, error)
	DeleteOwned(ctx context.Context, uni string, n int) (int64, error)
	MarkDonated(ctx context.Context, ids []uint, donor string, at time.Time) (int64, error)
	FindDonated(ctx context.Context) ([]dao.Swipe, error)
	FindAll(ctx context.Context) ([]dao.Swipe, error)
	CountDonated(ctx context.Context) (int64, error)
	LockDonated(ctx context.Context, n int) ([]dao.Swipe, error)
	Claim(ctx context.Context, ids []uint, recipient string) error
}

type SwipeRepository struct {
	dao SwipeDAO
}

func NewSwipeRepository(dao SwipeDAO) *SwipeRepository {
	return &SwipeRepository{
		dao: dao,
	}
}

// SyncOwned creates or deletes uni's undonated swipes until exactly target remain.
func (r *SwipeRepository) SyncOwned(ctx context.Context, uni string, target int) error {
	count, err := r.dao.CountOwned(ctx, uni)
	if err != nil {
		return fmt.Errorf("r.dao.CountOwned -> %w", err)
	}

	switch diff := target - int(count); {
	case diff > 0:
		if err := r.dao.InsertOwned(ctx, uni, diff); err != nil {
			return fmt.Errorf("r.dao.InsertOwned -> %w", err)
		}
	case diff < 0:
		if _, err := r.dao.DeleteOwned(ctx, uni, -diff); err != nil {
			return fmt.Errorf("r.dao.DeleteOwned -> %w", err)
		}
	}

	return nil
}

// Donate moves n of donor's oldest undonated swipes into the pool.
func (r *SwipeRepository) Donate(ctx context.Context, donor string, n int, at time.Time) ([]uint, error) {
	owned, err := r.dao.LockOwned(ctx, donor, n)
	if err != nil {
		return nil, fmt.Errorf("r.dao.LockOwned -> %w", err)
	}
	if len(owned) < n {
		return nil, fmt.Errorf("donor %s holds %d swipe rows for %d requested: %w", donor, len(owned), n, ErrInsufficientSwipes)
	}

	ids := make([]uint, len(owned))
	for i, s := range owned {
		ids[i] = s.SwipeID
	}

	moved, err := r.dao.MarkDonated(ctx, ids, donor, at)
	if err != nil {
		return nil, fmt.Errorf("r.dao.MarkDonated -> %w", err)
	}
	if moved != int64(n) {
		return nil, fmt.Errorf("r.dao.MarkDonated moved %d of %d -> %w", moved, n, ErrSwipeClaimConflict)
	}

	return ids, nil
}

// LockDonated returns up to n pooled swipes, oldest donation first.
func (r *SwipeRepository) LockDonated(ctx context.Context, n int) ([]domain.Swipe, error) {
	found, err := r.dao.LockDonated(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("r.dao.LockDonated -> %w", err)
	}

	return r.daoToDomainList(found), nil
}

func (r *SwipeRepository) Claim(ctx context.Context, ids []uint, recipient string) error {
	if err := r.dao.Claim(ctx, ids, recipient); err != nil {
		return fmt.Errorf("r.dao.Claim -> %w", err)
	}

	return nil
}

func (r *SwipeRepository) FindDonated(ctx context.Context) ([]domain.Swipe, error) {
	found, err := r.dao.FindDonated(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindDonated -> %w", err)
	}

	return r.daoToDomainList(found), nil
}

func (r *SwipeRepository) FindAll(ctx context.Context) ([]domain.Swipe, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	return r.daoToDomainList(found), nil
}

func (r *SwipeRepository) CountDonated(ctx context.Context) (int, error) {
	count, err := r.dao.CountDonated(ctx)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountDonated -> %w", err)
	}

	return int(count), nil
}

func (r *SwipeRepository) CountOwned(ctx context.Context, uni string) (int, error) {
	count, err := r.dao.CountOwned(ctx, uni)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountOwned -> %w", err)
	}

	return int(count), nil
}

func (r *SwipeRepository) daoToDomainList(swipes []dao.Swipe) []domain.Swipe {
	out := make([]domain.Swipe, len(swipes))
	for i, s := range swipes {
		out[i] = domain.Swipe{
			ID:        s.SwipeID,
			Uni:       s.Uni,
			DonorID:   s.DonorID,
			IsDonated: s.IsDonated,
			DonatedAt: s.DonatedAt,
			CreatedAt: s.CreatedAt,
		}
	}

	return out
}
