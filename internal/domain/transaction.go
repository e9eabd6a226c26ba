package domain

import (
	"errors"
	"time"
)

type TransactionKind string

const (
	TransactionSwipe  TransactionKind = "swipe"
	TransactionPoints TransactionKind = "points"
)

var ErrInvalidTransaction = errors.New("invalid transaction")

// PoolDonorID is recorded as the donor of points claims, pooled points are not attributed to a donor.
const PoolDonorID = "pool"

type Transaction struct {
	ID              uint            `json:"transaction_id"`
	Kind            TransactionKind `json:"kind"`
	SwipeID         *uint           `json:"swipe_id,omitempty"`
	DonorID         string          `json:"donor_id"`
	RecipientID     string          `json:"recipient_id"`
	Amount          int             `json:"amount"`
	TransactionDate time.Time       `json:"transaction_date"`
}

func (t *Transaction) IsValid() bool {
	if t.RecipientID == "" || t.DonorID == "" {
		return false
	}
	if t.Amount <= 0 {
		return false
	}
	if t.Kind == TransactionSwipe && (t.SwipeID == nil || t.Amount != 1) {
		return false
	}

	return t.Kind == TransactionSwipe || t.Kind == TransactionPoints
}

type TransactionSummary struct {
	Uni                 string     `json:"uni"`
	SwipesDonated       int64      `json:"swipes_donated"`
	SwipesReceived      int64      `json:"swipes_received"`
	PointsReceived      int64      `json:"points_received"`
	TotalTransactions   int64      `json:"total_transactions"`
	LastTransactionDate *time.Time `json:"last_transaction_date"`
}

type TransactionPage struct {
	Items []Transaction
	Page  Page
}
