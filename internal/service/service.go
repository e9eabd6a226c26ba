package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/cpreston123/core-swipe-service-Care2Share/internal/domain"
	"github.com/cpreston123/core-swipe-service-Care2Share/internal/repository"
)

var (
	ErrUserExists          = repository.ErrUserExists
	ErrUserNotFound        = repository.ErrUserNotFound
	ErrSwipeClaimConflict  = repository.ErrSwipeClaimConflict
	ErrNegativeBalance     = domain.ErrNegativeBalance
	ErrBalanceTooLarge     = domain.ErrBalanceTooLarge
	ErrInsufficientBalance = domain.ErrInsufficientBalance

	ErrInvalidAmount = errors.New("amount must be a positive integer")
)

const notifyTimeout = 10 * time.Second

// Transactor runs fn in one database transaction. Repositories called with the
// context passed to fn take part in it.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type Notifier interface {
	Notify(ctx context.Context, uni, subject, body string) error
}

// notifyAsync delivers a notification in the background. Delivery is best effort and
// never affects the ledger operation that triggered it.
func notifyAsync(n Notifier, uni, subject, body string) {
	if n == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		if err := n.Notify(ctx, uni, subject, body); err != nil {
			zap.L().Warn("failed to send notification",
				zap.String("uni", uni),
				zap.String("subject", subject),
				zap.Error(err),
			)
		}
	}()
}

func now() time.Time {
	return time.Now().UTC()
}
