package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cpreston123/core-swipe-service-Care2Share/internal/domain"
	"github.com/cpreston123/core-swipe-service-Care2Share/internal/metrics"
)

type SwipeUserRepository interface {
	FindByUni(ctx context.Context, uni string) (domain.User, error)
	DebitSwipes(ctx context.Context, uni string, n int) error
	CreditSwipes(ctx context.Context, uni string, n int) error
}

type SwipeRepository interface {
	Donate(ctx context.Context, donor string, n int, at time.Time) ([]uint, error)
	LockDonated(ctx context.Context, n int) ([]domain.Swipe, error)
	Claim(ctx context.Context, ids []uint, recipient string) error
	FindDonated(ctx context.Context) ([]domain.Swipe, error)
	FindAll(ctx context.Context) ([]domain.Swipe, error)
	CountDonated(ctx context.Context) (int, error)
}

type TransactionRecorder interface {
	CreateBatch(ctx context.Context, transactions []domain.Transaction) ([]domain.Transaction, error)
}

type SwipeService struct {
	tx           Transactor
	users        SwipeUserRepository
	swipes       SwipeRepository
	transactions TransactionRecorder
	notifier     Notifier
}

func NewSwipeService(tx Transactor, users SwipeUserRepository, swipes SwipeRepository, transactions TransactionRecorder, notifier Notifier) *SwipeService {
	return &SwipeService{
		tx:           tx,
		users:        users,
		swipes:       swipes,
		transactions: transactions,
		notifier:     notifier,
	}
}

// Donate moves n of donor's swipes into the pool. The donor's swipes_given counter is
// incremented here and never again when the swipes are claimed.
func (s *SwipeService) Donate(ctx context.Context, donor string, n int) (domain.SwipeDonation, error) {
	if n < 1 {
		return domain.SwipeDonation{}, ErrInvalidAmount
	}

	var ids []uint
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.users.DebitSwipes(ctx, donor, n); err != nil {
			return fmt.Errorf("s.users.DebitSwipes -> %w", err)
		}

		var err error
		ids, err = s.swipes.Donate(ctx, donor, n, now())
		if err != nil {
			return fmt.Errorf("s.swipes.Donate -> %w", err)
		}

		return nil
	})
	if err != nil {
		recordRejection("donate_swipes", err)
		return domain.SwipeDonation{}, err
	}

	metrics.RecordDonation("swipes", n)
	notifyAsync(s.notifier, donor, "Thank you for donating!",
		fmt.Sprintf("You donated %d meal swipe(s) to fellow students. Thank you!", n))

	return domain.SwipeDonation{DonorID: donor, Count: n, SwipeIDs: ids}, nil
}

// Claim gives recipient exactly m pooled swipes, oldest donations first, and records
// one transaction per swipe. If fewer than m are available nothing changes.
func (s *SwipeService) Claim(ctx context.Context, recipient string, m int) (domain.SwipeClaim, error) {
	if m < 1 {
		return domain.SwipeClaim{}, ErrInvalidAmount
	}

	var recorded []domain.Transaction
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.users.FindByUni(ctx, recipient); err != nil {
			return fmt.Errorf("s.users.FindByUni -> %w", err)
		}

		pooled, err := s.swipes.LockDonated(ctx, m)
		if err != nil {
			return fmt.Errorf("s.swipes.LockDonated -> %w", err)
		}
		if len(pooled) < m {
			return &domain.InsufficientBalanceError{Resource: "swipes", Requested: m, Available: len(pooled)}
		}

		ids := make([]uint, len(pooled))
		transactions := make([]domain.Transaction, len(pooled))
		at := now()
		for i, swipe := range pooled {
			ids[i] = swipe.ID
			donor := domain.PoolDonorID
			if swipe.DonorID != nil {
				donor = *swipe.DonorID
			}
			swipeID := swipe.ID
			transactions[i] = domain.Transaction{
				Kind:            domain.TransactionSwipe,
				SwipeID:         &swipeID,
				DonorID:         donor,
				RecipientID:     recipient,
				Amount:          1,
				TransactionDate: at,
			}
		}

		if err = s.swipes.Claim(ctx, ids, recipient); err != nil {
			return fmt.Errorf("s.swipes.Claim -> %w", err)
		}

		if err = s.users.CreditSwipes(ctx, recipient, m); err != nil {
			return fmt.Errorf("s.users.CreditSwipes -> %w", err)
		}

		recorded, err = s.transactions.CreateBatch(ctx, transactions)
		if err != nil {
			return fmt.Errorf("s.transactions.CreateBatch -> %w", err)
		}

		return nil
	})
	if err != nil {
		recordRejection("claim_swipes", err)
		return domain.SwipeClaim{}, err
	}

	metrics.RecordClaim("swipes", m)

	return domain.SwipeClaim{RecipientID: recipient, Count: m, Transactions: recorded}, nil
}

func (s *SwipeService) ListDonated(ctx context.Context) ([]domain.Swipe, error) {
	swipes, err := s.swipes.FindDonated(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.swipes.FindDonated -> %w", err)
	}

	return swipes, nil
}

func (s *SwipeService) ListSwipes(ctx context.Context) ([]domain.Swipe, error) {
	swipes, err := s.swipes.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.swipes.FindAll -> %w", err)
	}

	return swipes, nil
}

// PoolSize counts the swipes currently waiting in the pool.
func (s *SwipeService) PoolSize(ctx context.Context) (int, error) {
	n, err := s.swipes.CountDonated(ctx)
	if err != nil {
		return 0, fmt.Errorf("s.swipes.CountDonated -> %w", err)
	}

	return n, nil
}

func recordRejection(operation string, err error) {
	switch {
	case errors.Is(err, ErrInsufficientBalance):
		metrics.RecordRejection(operation, "insufficient")
	case errors.Is(err, ErrUserNotFound):
		metrics.RecordRejection(operation, "not_found")
	case errors.Is(err, ErrSwipeClaimConflict):
		metrics.RecordRejection(operation, "conflict")
	default:
		metrics.RecordRejection(operation, "error")
	}
}
