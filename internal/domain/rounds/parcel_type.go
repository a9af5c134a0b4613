package rounds

import "time"

// ParcelType is a parcel category within a round, carrying the limits that
// classify a parcel and the per-unit payable rate. Monetary values in GBP.
type ParcelType struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	RoundID uint `gorm:"not null;index" json:"round_id"`

	Name      string  `gorm:"not null" json:"name"`
	MaxWeight float64 `gorm:"type:decimal(8,2);not null" json:"max_weight"`
	MaxLength float64 `gorm:"type:decimal(8,2);not null" json:"max_length"`
	Rate      float64 `gorm:"type:decimal(8,2);not null" json:"rate"`

	Round *Round `json:"round,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
