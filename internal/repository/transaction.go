package repository

import (
	"context"
	"fmt"

	"github.com/cpreston123/core-swipe-service-Care2Share/internal/domain"
	"github.com/cpreston123/core-swipe-service-Care2Share/internal/repository/dao"
)

type TransactionDAO interface {
	InsertBatch(ctx context.Context, transactions []dao.Transaction) ([]dao.Transaction, error)
	FindByUni(ctx context.Context, uni string, offset, limit int) ([]dao.Transaction, int64, error)
	FindAll(ctx context.Context, offset, limit int) ([]dao.Transaction, int64, error)
	Summarize(ctx context.Context, uni string) (dao.TransactionSummary, error)
}

type TransactionRepository struct {
	dao TransactionDAO
}

func NewTransactionRepository(dao TransactionDAO) *TransactionRepository {
	return &TransactionRepository{
		dao: dao,
	}
}

func (r *TransactionRepository) CreateBatch(ctx context.Context, transactions []domain.Transaction) ([]domain.Transaction, error) {
	rows := make([]dao.Transaction, len(transactions))
	for i, t := range transactions {
		if !t.IsValid() {
			return nil, fmt.Errorf("transaction %d of %d (%s %s -> %s): %w",
				i+1, len(transactions), t.Kind, t.DonorID, t.RecipientID, domain.ErrInvalidTransaction)
		}
		rows[i] = r.domainToDAO(t)
	}

	created, err := r.dao.InsertBatch(ctx, rows)
	if err != nil {
		return nil, fmt.Errorf("r.dao.InsertBatch -> %w", err)
	}

	return r.daoToDomainList(created), nil
}

func (r *TransactionRepository) FindByUni(ctx context.Context, uni string, page domain.Page) (domain.TransactionPage, error) {
	found, total, err := r.dao.FindByUni(ctx, uni, page.Offset(), page.Limit())
	if err != nil {
		return domain.TransactionPage{}, fmt.Errorf("r.dao.FindByUni -> %w", err)
	}

	page.TotalItems = total

	return domain.TransactionPage{Items: r.daoToDomainList(found), Page: page}, nil
}

func (r *TransactionRepository) FindAll(ctx context.Context, page domain.Page) (domain.TransactionPage, error) {
	found, total, err := r.dao.FindAll(ctx, page.Offset(), page.Limit())
	if err != nil {
		return domain.TransactionPage{}, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	page.TotalItems = total

	return domain.TransactionPage{Items: r.daoToDomainList(found), Page: page}, nil
}

func (r *TransactionRepository) Summarize(ctx context.Context, uni string) (domain.TransactionSummary, error) {
	s, err := r.dao.Summarize(ctx, uni)
	if err != nil {
		return domain.TransactionSummary{}, fmt.Errorf("r.dao.Summarize -> %w", err)
	}

	return domain.TransactionSummary{
		Uni:                 uni,
		SwipesDonated:       s.SwipesDonated,
		SwipesReceived:      s.SwipesReceived,
		PointsReceived:      s.PointsReceived,
		TotalTransactions:   s.TotalTransactions,
		LastTransactionDate: s.LastTransactionDate,
	}, nil
}

func (r *TransactionRepository) domainToDAO(t domain.Transaction) dao.Transaction {
	return dao.Transaction{
		TransactionID:   t.ID,
		Kind:            string(t.Kind),
		SwipeID:         t.SwipeID,
		DonorID:         t.DonorID,
		RecipientID:     t.RecipientID,
		Amount:          t.Amount,
		TransactionDate: t.TransactionDate,
	}
}

func (r *TransactionRepository) daoToDomainList(rows []dao.Transaction) []domain.Transaction {
	out := make([]domain.Transaction, len(rows))
	for i, t := range rows {
		out[i] = domain.Transaction{
			ID:              t.TransactionID,
			Kind:            domain.TransactionKind(t.Kind),
			SwipeID:         t.SwipeID,
			DonorID:         t.DonorID,
			RecipientID:     t.RecipientID,
			Amount:          t.Amount,
			TransactionDate: t.TransactionDate,
		}
	}

	return out
}
