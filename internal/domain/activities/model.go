package activities

import (
	"time"

	"round-tracker/internal/domain/rounds"
)

// Activity records how many parcels of one type a user handled on one date.
// UserID is assigned at creation from the acting principal, never updated.
type Activity struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;index" json:"-"`

	ParcelTypeID uint   `gorm:"not null;index" json:"parcel_type_id"`
	ActivityDate string `gorm:"type:date;not null" json:"activity_date"`
	Quantity     int    `gorm:"not null" json:"quantity"`

	ParcelType *rounds.ParcelType `json:"parcel_type,omitempty"`

	Images []ActivityImage `gorm:"foreignKey:ActivityID;constraint:OnDelete:CASCADE;" json:"images,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ActivityImage is an end-of-day proof photo attached to an activity.
// ImagePath is the key returned by the blob store.
type ActivityImage struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	ActivityID uint   `gorm:"not null;index" json:"activity_id"`
	ImagePath  string `gorm:"not null" json:"image_path"`

	Activity *Activity `json:"activity,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
