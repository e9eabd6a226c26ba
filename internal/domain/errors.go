package domain

import (
	"errors"
	"fmt"
)

var ErrInsufficientBalance = errors.New("insufficient balance")

// InsufficientBalanceError is returned when a debit exceeds what is available.
// An empty Uni means the shared pool.
type InsufficientBalanceError struct {
	Resource  string
	Uni       string
	Requested int
	Available int
}

func (e *InsufficientBalanceError) Error() string {
	if e.Uni == "" {
		return fmt.Sprintf("cannot claim %d %s: only %d available in the pool", e.Requested, e.Resource, e.Available)
	}

	return fmt.Sprintf("cannot decrement %d %s: user %s has only %d %s available",
		e.Requested, e.Resource, e.Uni, e.Available, e.Resource)
}

func (e *InsufficientBalanceError) Is(target error) bool {
	return target == ErrInsufficientBalance
}

func (e *InsufficientBalanceError) Shortfall() int {
	return e.Requested - e.Available
}
