package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrInsufficientPoolPoints = errors.New("insufficient points in pool")

const pointsPoolID = 1

type PointsPool struct {
	ID        uint      `gorm:"primaryKey;autoIncrement:false"`
	Balance   int       `gorm:"not null;default:0"`
	Version   uint      `gorm:"not null;default:0"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (PointsPool) TableName() string {
	return "points_pool"
}

type PointsPoolDAO struct {
	db *gorm.DB
}

func NewPointsPoolDAO(db *gorm.DB) *PointsPoolDAO {
	return &PointsPoolDAO{
		db: db,
	}
}

// Get returns the pool row, creating it empty on first use.
func (d *PointsPoolDAO) Get(ctx context.Context) (PointsPool, error) {
	var pool PointsPool

	result := conn(ctx, d.db).FirstOrCreate(&pool, PointsPool{ID: pointsPoolID})
	if result.Error != nil {
		return PointsPool{}, result.Error
	}

	return pool, nil
}

func (d *PointsPoolDAO) Deposit(ctx context.Context, n int) (PointsPool, error) {
	if _, err := d.Get(ctx); err != nil {
		return PointsPool{}, err
	}

	result := conn(ctx, d.db).Model(&PointsPool{}).
		Where("id = ?", pointsPoolID).
		Updates(map[string]any{
			"balance": gorm.Expr("balance + ?", n),
			"version": gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return PointsPool{}, result.Error
	}

	return d.Get(ctx)
}

// Withdraw takes n points out of the pool, only if the balance covers them.
func (d *PointsPoolDAO) Withdraw(ctx context.Context, n int) (PointsPool, error) {
	if _, err := d.Get(ctx); err != nil {
		return PointsPool{}, err
	}

	result := conn(ctx, d.db).Model(&PointsPool{}).
		Where("id = ? AND balance >= ?", pointsPoolID, n).
		Updates(map[string]any{
			"balance": gorm.Expr("balance - ?", n),
			"version": gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return PointsPool{}, result.Error
	}
	if result.RowsAffected == 0 {
		return PointsPool{}, ErrInsufficientPoolPoints
	}

	return d.Get(ctx)
}
