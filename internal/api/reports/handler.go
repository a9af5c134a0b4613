package reports

import (
	"net/http"

	"round-tracker/database"
	"round-tracker/internal/app/http/middleware"
	"round-tracker/internal/domain/activities"
	"round-tracker/internal/domain/periods"
	"round-tracker/internal/domain/rounds"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GET /reports
//
// Unpaginated joined payload for the reports page. No aggregation happens
// here; the consumer sums quantity x rate. Everything except date periods
// is scoped to the caller's own rounds.
func GetReport(c *gin.Context) {
	userID, ok := middleware.MustUserID(c)
	if !ok {
		return
	}

	var acts []activities.Activity
	err := database.DB.
		Where("user_id = ?", userID).
		Preload("ParcelType").
		Order("activity_date ASC, id ASC").
		Find(&acts).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load activities"})
		return
	}

	var parcelTypes []rounds.ParcelType
	err = database.DB.Model(&rounds.ParcelType{}).
		Joins("JOIN rounds ON rounds.id = parcel_types.round_id").
		Where("rounds.user_id = ?", userID).
		Order("parcel_types.id ASC").
		Find(&parcelTypes).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load parcel types"})
		return
	}

	var ownedRounds []rounds.Round
	err = database.DB.Where("user_id = ?", userID).
		Preload("ParcelTypes", func(db *gorm.DB) *gorm.DB {
			return db.Order("parcel_types.id ASC")
		}).
		Order("created_at DESC").
		Find(&ownedRounds).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load rounds"})
		return
	}

	var datePeriods []periods.DatePeriod
	if err := database.DB.Order("start_date ASC").Find(&datePeriods).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load date periods"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"activities":   gin.H{"data": acts},
		"parcel_types": parcelTypes,
		"rounds":       ownedRounds,
		"date_periods": datePeriods,
	})
}
