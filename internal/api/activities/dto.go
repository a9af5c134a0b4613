package activities

import (
	"round-tracker/internal/domain/activities"
)

// The listing deliberately projects only the columns the activity table
// view needs: the parcel type's name and rate and the round's name, not
// the full entities.

type RoundRefDTO struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type ParcelTypeRefDTO struct {
	ID    uint        `json:"id"`
	Name  string      `json:"name"`
	Rate  float64     `json:"rate"`
	Round RoundRefDTO `json:"round"`
}

type ActivityDTO struct {
	ID           uint             `json:"id"`
	ActivityDate string           `json:"activity_date"`
	Quantity     int              `json:"quantity"`
	ParcelType   ParcelTypeRefDTO `json:"parcel_type"`
}

type PageDTO struct {
	Data        []ActivityDTO `json:"data"`
	CurrentPage int           `json:"current_page"`
	PerPage     int           `json:"per_page"`
	Total       int64         `json:"total"`
	LastPage    int           `json:"last_page"`
}

func toActivityDTO(a activities.Activity) ActivityDTO {
	dto := ActivityDTO{
		ID:           a.ID,
		ActivityDate: a.ActivityDate,
		Quantity:     a.Quantity,
	}
	if a.ParcelType != nil {
		dto.ParcelType = ParcelTypeRefDTO{
			ID:   a.ParcelType.ID,
			Name: a.ParcelType.Name,
			Rate: a.ParcelType.Rate,
		}
		if a.ParcelType.Round != nil {
			dto.ParcelType.Round = RoundRefDTO{
				ID:   a.ParcelType.Round.ID,
				Name: a.ParcelType.Round.Name,
			}
		}
	}
	return dto
}
