package service

import (
	"context"
	"fmt"

	"github.com/cpreston123/core-swipe-service-Care2Share/internal/domain"
	"github.com/cpreston123/core-swipe-service-Care2Share/internal/metrics"
)

type PointsUserRepository interface {
	FindByUni(ctx context.Context, uni string) (domain.User, error)
	DebitPoints(ctx context.Context, uni string, n int) error
	CreditPoints(ctx context.Context, uni string, n int) error
}

type PointsPoolRepository interface {
	Get(ctx context.Context) (domain.PointsPool, error)
	Deposit(ctx context.Context, n int) (domain.PointsPool, error)
	Withdraw(ctx context.Context, n int) (domain.PointsPool, error)
}

type PointsService struct {
	tx           Transactor
	users        PointsUserRepository
	pool         PointsPoolRepository
	transactions TransactionRecorder
	notifier     Notifier
}

func NewPointsService(tx Transactor, users PointsUserRepository, pool PointsPoolRepository, transactions TransactionRecorder, notifier Notifier) *PointsService {
	return &PointsService{
		tx:           tx,
		users:        users,
		pool:         pool,
		transactions: transactions,
		notifier:     notifier,
	}
}

func (s *PointsService) Donate(ctx context.Context, donor string, points int) (domain.PointsDonation, error) {
	if points < 1 {
		return domain.PointsDonation{}, ErrInvalidAmount
	}

	var pool domain.PointsPool
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.users.DebitPoints(ctx, donor, points); err != nil {
			return fmt.Errorf("s.users.DebitPoints -> %w", err)
		}

		var err error
		pool, err = s.pool.Deposit(ctx, points)
		if err != nil {
			return fmt.Errorf("s.pool.Deposit -> %w", err)
		}

		return nil
	})
	if err != nil {
		recordRejection("donate_points", err)
		return domain.PointsDonation{}, err
	}

	metrics.RecordDonation("points", points)
	notifyAsync(s.notifier, donor, "Thank you for donating!",
		fmt.Sprintf("You donated %d dining points to fellow students. Thank you!", points))

	return domain.PointsDonation{DonorID: donor, Points: points, PoolBalance: pool.Balance}, nil
}

// Claim withdraws points from the pool for recipient and records one transaction.
func (s *PointsService) Claim(ctx context.Context, recipient string, points int) (domain.PointsClaim, error) {
	if points < 1 {
		return domain.PointsClaim{}, ErrInvalidAmount
	}

	var (
		pool     domain.PointsPool
		recorded []domain.Transaction
	)
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.users.FindByUni(ctx, recipient); err != nil {
			return fmt.Errorf("s.users.FindByUni -> %w", err)
		}

		var err error
		pool, err = s.pool.Withdraw(ctx, points)
		if err != nil {
			return fmt.Errorf("s.pool.Withdraw -> %w", err)
		}

		if err = s.users.CreditPoints(ctx, recipient, points); err != nil {
			return fmt.Errorf("s.users.CreditPoints -> %w", err)
		}

		recorded, err = s.transactions.CreateBatch(ctx, []domain.Transaction{{
			Kind:            domain.TransactionPoints,
			DonorID:         domain.PoolDonorID,
			RecipientID:     recipient,
			Amount:          points,
			TransactionDate: now(),
		}})
		if err != nil {
			return fmt.Errorf("s.transactions.CreateBatch -> %w", err)
		}

		return nil
	})
	if err != nil {
		recordRejection("claim_points", err)
		return domain.PointsClaim{}, err
	}

	metrics.RecordClaim("points", points)

	return domain.PointsClaim{
		RecipientID: recipient,
		Points:      points,
		PoolBalance: pool.Balance,
		Transaction: recorded[0],
	}, nil
}

func (s *PointsService) GetPool(ctx context.Context) (domain.PointsPool, error) {
	pool, err := s.pool.Get(ctx)
	if err != nil {
		return domain.PointsPool{}, fmt.Errorf("s.pool.Get -> %w", err)
	}

	return pool, nil
}
