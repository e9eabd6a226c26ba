package dao

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InitTables migrates the schema and seeds the points pool row.
func InitTables(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&User{},
		&Swipe{},
		&PointsPool{},
		&Transaction{},
	); err != nil {
		return fmt.Errorf("db.AutoMigrate -> %w", err)
	}

	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&PointsPool{ID: pointsPoolID}).Error; err != nil {
		return fmt.Errorf("seed points pool -> %w", err)
	}

	return nil
}
