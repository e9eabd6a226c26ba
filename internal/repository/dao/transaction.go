package dao

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Transaction struct {
	TransactionID uint `gorm:"primaryKey;autoIncrement"`

	Kind        string `gorm:"size:16;not null"`
	SwipeID     *uint  `gorm:"index"`
	DonorID     string `gorm:"size:50;not null;index"`
	RecipientID string `gorm:"size:50;not null;index"`
	Amount      int    `gorm:"not null"`

	TransactionDate time.Time `gorm:"not null;index"`
}

func (Transaction) TableName() string {
	return "transactions"
}

type TransactionSummary struct {
	SwipesDonated       int64
	SwipesReceived      int64
	PointsReceived      int64
	TotalTransactions   int64
	LastTransactionDate *time.Time
}

type TransactionDAO struct {
	db *gorm.DB
}

func NewTransactionDAO(db *gorm.DB) *TransactionDAO {
	return &TransactionDAO{
		db: db,
	}
}

func (d *TransactionDAO) InsertBatch(ctx context.Context, transactions []Transaction) ([]Transaction, error) {
	if len(transactions) == 0 {
		return transactions, nil
	}

	result := conn(ctx, d.db).CreateInBatches(&transactions, 100)
	if result.Error != nil {
		return nil, result.Error
	}

	return transactions, nil
}

// FindByUni returns one page of the transactions uni took part in, newest first, with the total count.
func (d *TransactionDAO) FindByUni(ctx context.Context, uni string, offset, limit int) ([]Transaction, int64, error) {
	return d.page(ctx, conn(ctx, d.db).Where("donor_id = ? OR recipient_id = ?", uni, uni), offset, limit)
}

func (d *TransactionDAO) FindAll(ctx context.Context, offset, limit int) ([]Transaction, int64, error) {
	return d.page(ctx, conn(ctx, d.db), offset, limit)
}

func (d *TransactionDAO) page(ctx context.Context, q *gorm.DB, offset, limit int) ([]Transaction, int64, error) {
	var total int64
	if err := q.Session(&gorm.Session{}).Model(&Transaction{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var transactions []Transaction
	result := q.Session(&gorm.Session{}).
		Order("transaction_date DESC, transaction_id DESC").
		Offset(offset).
		Limit(limit).
		Find(&transactions)
	if result.Error != nil {
		return nil, 0, result.Error
	}

	return transactions, total, nil
}

func (d *TransactionDAO) Summarize(ctx context.Context, uni string) (TransactionSummary, error) {
	db := conn(ctx, d.db)
	var summary TransactionSummary

	if err := db.Model(&Transaction{}).
		Where("kind = ? AND donor_id = ?", "swipe", uni).
		Count(&summary.SwipesDonated).Error; err != nil {
		return TransactionSummary{}, err
	}

	if err := db.Model(&Transaction{}).
		Where("kind = ? AND recipient_id = ?", "swipe", uni).
		Count(&summary.SwipesReceived).Error; err != nil {
		return TransactionSummary{}, err
	}

	if err := db.Model(&Transaction{}).
		Where("kind = ? AND recipient_id = ?", "points", uni).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&summary.PointsReceived).Error; err != nil {
		return TransactionSummary{}, err
	}

	var last Transaction
	result := db.Where("donor_id = ? OR recipient_id = ?", uni, uni).
		Order("transaction_date DESC, transaction_id DESC").
		Limit(1).
		Find(&last)
	if result.Error != nil {
		return TransactionSummary{}, result.Error
	}
	if result.RowsAffected > 0 {
		if err := db.Model(&Transaction{}).
			Where("donor_id = ? OR recipient_id = ?", uni, uni).
			Count(&summary.TotalTransactions).Error; err != nil {
			return TransactionSummary{}, err
		}
		summary.LastTransactionDate = &last.TransactionDate
	}

	return summary, nil
}
