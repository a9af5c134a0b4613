package rounds

import "time"

// Round is a delivery route. UserID is set once at creation from the acting
// principal and is never reassigned; every ownership check on rounds and
// their parcel types resolves to this field.
type Round struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;index" json:"-"`

	Name        string  `gorm:"not null" json:"name"`
	Description *string `json:"description,omitempty"`
	Active      bool    `gorm:"not null;default:true" json:"active"`

	ParcelTypes []ParcelType `gorm:"foreignKey:RoundID;constraint:OnDelete:CASCADE;" json:"parcel_types,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
