package parceltypes

import (
	"round-tracker/internal/domain/activities"
	"round-tracker/internal/domain/rounds"

	"gorm.io/gorm"
)

// deleteParcelTypeCascade removes a parcel type with the activities recorded
// against it and those activities' images. Caller supplies the transaction.
func deleteParcelTypeCascade(tx *gorm.DB, parcelTypeID uint) error {
	var actIDs []uint
	if err := tx.Model(&activities.Activity{}).Where("parcel_type_id = ?", parcelTypeID).Pluck("id", &actIDs).Error; err != nil {
		return err
	}
	if len(actIDs) > 0 {
		if err := tx.Where("activity_id IN ?", actIDs).Delete(&activities.ActivityImage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("id IN ?", actIDs).Delete(&activities.Activity{}).Error; err != nil {
			return err
		}
	}
	return tx.Delete(&rounds.ParcelType{}, parcelTypeID).Error
}
