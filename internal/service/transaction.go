package service

import (
	"context"
	"fmt"

	"github.com/cpreston123/core-swipe-service-Care2Share/internal/domain"
)

type TransactionRepository interface {
	FindByUni(ctx context.Context, uni string, page domain.Page) (domain.TransactionPage, error)
	FindAll(ctx context.Context, page domain.Page) (domain.TransactionPage, error)
	Summarize(ctx context.Context, uni string) (domain.TransactionSummary, error)
}

type UserFinder interface {
	FindByUni(ctx context.Context, uni string) (domain.User, error)
}

type TransactionService struct {
	repo  TransactionRepository
	users UserFinder
}

func NewTransactionService(repo TransactionRepository, users UserFinder) *TransactionService {
	return &TransactionService{
		repo:  repo,
		users: users,
	}
}

// History returns one page of uni's transactions, newest first.
func (s *TransactionService) History(ctx context.Context, uni string, page domain.Page) (domain.TransactionPage, error) {
	if _, err := s.users.FindByUni(ctx, uni); err != nil {
		return domain.TransactionPage{}, fmt.Errorf("s.users.FindByUni -> %w", err)
	}

	result, err := s.repo.FindByUni(ctx, uni, page)
	if err != nil {
		return domain.TransactionPage{}, fmt.Errorf("s.repo.FindByUni -> %w", err)
	}

	return result, nil
}

func (s *TransactionService) List(ctx context.Context, page domain.Page) (domain.TransactionPage, error) {
	result, err := s.repo.FindAll(ctx, page)
	if err != nil {
		return domain.TransactionPage{}, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return result, nil
}

func (s *TransactionService) Summary(ctx context.Context, uni string) (domain.TransactionSummary, error) {
	if _, err := s.users.FindByUni(ctx, uni); err != nil {
		return domain.TransactionSummary{}, fmt.Errorf("s.users.FindByUni -> %w", err)
	}

	summary, err := s.repo.Summarize(ctx, uni)
	if err != nil {
		return domain.TransactionSummary{}, fmt.Errorf("s.repo.Summarize -> %w", err)
	}

	return summary, nil
}
