package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrSwipeClaimConflict = errors.New("donated swipes were claimed concurrently")

type Swipe struct {
	SwipeID uint `gorm:"primaryKey;autoIncrement"`

	// Uni is the current holder. While IsDonated is set the swipe is in the pool.
	Uni       string     `gorm:"size:50;not null;index:idx_swipes_owner"`
	DonorID   *string    `gorm:"size:50;index"`
	IsDonated bool       `gorm:"not null;default:false;index:idx_swipes_owner;index:idx_swipes_pool"`
	DonatedAt *time.Time `gorm:"index:idx_swipes_pool"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type SwipeDAO struct {
	db *gorm.DB
}

func NewSwipeDAO(db *gorm.DB) *SwipeDAO {
	return &SwipeDAO{
		db: db,
	}
}

// InsertOwned creates n undonated swipes held by uni.
func (d *SwipeDAO) InsertOwned(ctx context.Context, uni string, n int) error {
	if n <= 0 {
		return nil
	}

	swipes := make([]Swipe, n)
	for i := range swipes {
		swipes[i] = Swipe{Uni: uni}
	}

	return conn(ctx, d.db).CreateInBatches(&swipes, 100).Error
}

func (d *SwipeDAO) CountOwned(ctx context.Context, uni string) (int64, error) {
	var count int64

	result := conn(ctx, d.db).Model(&Swipe{}).Where("uni = ? AND is_donated = ?", uni, false).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

// LockOwned returns up to n of uni's oldest undonated swipes, locked for update.
func (d *SwipeDAO) LockOwned(ctx context.Context, uni string, n int) ([]Swipe, error) {
	var swipes []Swipe

	result := conn(ctx, d.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("uni = ? AND is_donated = ?", uni, false).
		Order("created_at, swipe_id").
		Limit(n).
		Find(&swipes)
	if result.Error != nil {
		return nil, result.Error
	}

	return swipes, nil
}

// DeleteOwned removes up to n of uni's oldest undonated swipes and reports how many were removed.
func (d *SwipeDAO) DeleteOwned(ctx context.Context, uni string, n int) (int64, error) {
	swipes, err := d.LockOwned(ctx, uni, n)
	if err != nil {
		return 0, err
	}
	if len(swipes) == 0 {
		return 0, nil
	}

	result := conn(ctx, d.db).Where("is_donated = ?", false).Delete(&Swipe{}, swipeIDs(swipes))

	return result.RowsAffected, result.Error
}

// MarkDonated moves the given undonated swipes into the pool on behalf of donor.
func (d *SwipeDAO) MarkDonated(ctx context.Context, ids []uint, donor string, at time.Time) (int64, error) {
	result := conn(ctx, d.db).Model(&Swipe{}).
		Where("swipe_id IN ? AND uni = ? AND is_donated = ?", ids, donor, false).
		Updates(map[string]any{
			"is_donated": true,
			"donor_id":   donor,
			"donated_at": at,
		})

	return result.RowsAffected, result.Error
}

// FindDonated lists the pool, oldest donation first.
func (d *SwipeDAO) FindDonated(ctx context.Context) ([]Swipe, error) {
	var swipes []Swipe

	result := conn(ctx, d.db).Where("is_donated = ?", true).Order("donated_at, swipe_id").Find(&swipes)
	if result.Error != nil {
		return nil, result.Error
	}

	return swipes, nil
}

// FindAll lists every swipe row, owned, pooled and claimed alike.
func (d *SwipeDAO) FindAll(ctx context.Context) ([]Swipe, error) {
	var swipes []Swipe

	result := conn(ctx, d.db).Order("swipe_id").Find(&swipes)
	if result.Error != nil {
		return nil, result.Error
	}

	return swipes, nil
}

func (d *SwipeDAO) CountDonated(ctx context.Context) (int64, error) {
	var count int64

	result := conn(ctx, d.db).Model(&Swipe{}).Where("is_donated = ?", true).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

// LockDonated returns up to n of the oldest pooled swipes. Rows locked by another
// claim are skipped rather than waited on.
func (d *SwipeDAO) LockDonated(ctx context.Context, n int) ([]Swipe, error) {
	var swipes []Swipe

	result := conn(ctx, d.db).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("is_donated = ?", true).
		Order("donated_at, swipe_id").
		Limit(n).
		Find(&swipes)
	if result.Error != nil {
		return nil, result.Error
	}

	return swipes, nil
}

// Claim hands the given pooled swipes to recipient. Every swipe must still be in the pool,
// otherwise ErrSwipeClaimConflict is returned and the caller must roll back.
func (d *SwipeDAO) Claim(ctx context.Context, ids []uint, recipient string) error {
	result := conn(ctx, d.db).Model(&Swipe{}).
		Where("swipe_id IN ? AND is_donated = ?", ids, true).
		Updates(map[string]any{
			"uni":        recipient,
			"is_donated": false,
			"donor_id":   nil,
			"donated_at": nil,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected != int64(len(ids)) {
		return ErrSwipeClaimConflict
	}

	return nil
}

func swipeIDs(swipes []Swipe) []uint {
	ids := make([]uint, len(swipes))
	for i, s := range swipes {
		ids[i] = s.SwipeID
	}

	return ids
}
