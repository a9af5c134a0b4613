package rounds

import (
	"round-tracker/internal/domain/rounds"

	"gorm.io/gorm"
)

func userRoundsQuery(db *gorm.DB, userID uint) *gorm.DB {
	return db.Model(&rounds.Round{}).Where("user_id = ?", userID)
}

// ownedRounds loads the caller's rounds with nested parcel types, the shape
// both the dedicated listing and the reference cache serve.
func ownedRounds(db *gorm.DB, userID uint) ([]rounds.Round, error) {
	var list []rounds.Round
	err := userRoundsQuery(db, userID).
		Preload("ParcelTypes", func(db *gorm.DB) *gorm.DB {
			return db.Order("parcel_types.id ASC")
		}).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}
