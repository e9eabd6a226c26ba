package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInsufficientSwipes = errors.New("insufficient swipes")
	ErrInsufficientPoints = errors.New("insufficient points")
)

type User struct {
	Uni string `gorm:"primaryKey;size:50"`

	CurrentSwipes  int `gorm:"not null;default:0"`
	SwipesGiven    int `gorm:"not null;default:0"`
	SwipesReceived int `gorm:"not null;default:0"`
	CurrentPoints  int `gorm:"not null;default:0"`
	PointsGiven    int `gorm:"not null;default:0"`
	PointsReceived int `gorm:"not null;default:0"`

	InitializedAt *time.Time

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type UserDAO struct {
	db *gorm.DB
}

func NewUserDAO(db *gorm.DB) *UserDAO {
	return &UserDAO{
		db: db,
	}
}

func (d *UserDAO) Insert(ctx context.Context, user User) (User, error) {
	result := conn(ctx, d.db).Create(&user)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return User{}, ErrUserExists
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindByUni(ctx context.Context, uni string) (User, error) {
	var user User

	result := conn(ctx, d.db).First(&user, "uni = ?", uni)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

// FindByUniForUpdate locks the user row until the surrounding transaction ends.
func (d *UserDAO) FindByUniForUpdate(ctx context.Context, uni string) (User, error) {
	var user User

	result := conn(ctx, d.db).Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, "uni = ?", uni)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindAll(ctx context.Context) ([]User, error) {
	var users []User

	result := conn(ctx, d.db).Order("uni").Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}

	return users, nil
}

// Update writes every balance column of user.
func (d *UserDAO) Update(ctx context.Context, user User) (User, error) {
	result := conn(ctx, d.db).Model(&User{Uni: user.Uni}).
		Select("CurrentSwipes", "SwipesGiven", "SwipesReceived", "CurrentPoints", "PointsGiven", "PointsReceived", "InitializedAt", "UpdatedAt").
		Updates(&user)
	if result.Error != nil {
		return User{}, result.Error
	}
	if result.RowsAffected == 0 {
		return User{}, ErrUserNotFound
	}

	return d.FindByUni(ctx, user.Uni)
}

// DebitSwipes moves n swipes from current to given, only if at least n are available.
func (d *UserDAO) DebitSwipes(ctx context.Context, uni string, n int) error {
	return d.guardedUpdate(ctx, uni, "current_swipes", n, map[string]any{
		"current_swipes": gorm.Expr("current_swipes - ?", n),
		"swipes_given":   gorm.Expr("swipes_given + ?", n),
	}, ErrInsufficientSwipes)
}

func (d *UserDAO) CreditSwipes(ctx context.Context, uni string, n int) error {
	return d.guardedUpdate(ctx, uni, "", 0, map[string]any{
		"current_swipes":  gorm.Expr("current_swipes + ?", n),
		"swipes_received": gorm.Expr("swipes_received + ?", n),
	}, nil)
}

// DebitPoints moves n points from current to given, only if at least n are available.
func (d *UserDAO) DebitPoints(ctx context.Context, uni string, n int) error {
	return d.guardedUpdate(ctx, uni, "current_points", n, map[string]any{
		"current_points": gorm.Expr("current_points - ?", n),
		"points_given":   gorm.Expr("points_given + ?", n),
	}, ErrInsufficientPoints)
}

func (d *UserDAO) CreditPoints(ctx context.Context, uni string, n int) error {
	return d.guardedUpdate(ctx, uni, "", 0, map[string]any{
		"current_points":  gorm.Expr("current_points + ?", n),
		"points_received": gorm.Expr("points_received + ?", n),
	}, nil)
}

// guardedUpdate applies updates to the user row. When guardColumn is set the row must hold
// at least floor in that column, otherwise errInsufficient is returned and nothing changes.
func (d *UserDAO) guardedUpdate(ctx context.Context, uni, guardColumn string, floor int, updates map[string]any, errInsufficient error) error {
	db := conn(ctx, d.db)

	q := db.Model(&User{}).Where("uni = ?", uni)
	if guardColumn != "" {
		q = q.Where(guardColumn+" >= ?", floor)
	}

	result := q.Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 1 {
		return nil
	}

	if _, err := d.FindByUni(ctx, uni); err != nil {
		return err
	}

	return errInsufficient
}
