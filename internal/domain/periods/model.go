package periods

import "time"

// DatePeriod is a named reporting window. Periods are not owned by anyone:
// every authenticated user sees and edits the same set.
type DatePeriod struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"not null" json:"name"`

	// Stored as DATE, handled as "2006-01-02" strings end to end.
	StartDate string `gorm:"type:date;not null" json:"start_date"`
	EndDate   string `gorm:"type:date;not null" json:"end_date"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
