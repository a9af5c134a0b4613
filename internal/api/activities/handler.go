package activities

import (
	"net/http"
	"strconv"

	"round-tracker/database"
	"round-tracker/internal/app/http/middleware"
	"round-tracker/internal/domain/access"
	"round-tracker/internal/domain/activities"
	"round-tracker/internal/domain/periods"
	"round-tracker/internal/domain/rounds"
	"round-tracker/internal/refcache"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const activitiesPerPage = 50

type activityRequest struct {
	ParcelTypeID uint   `json:"parcel_type_id" binding:"required"`
	ActivityDate string `json:"activity_date" binding:"required,datetime=2006-01-02"`
	Quantity     *int   `json:"quantity" binding:"required,gte=0"`
}

type bulkQuantity struct {
	ParcelTypeID uint `json:"parcel_type_id" binding:"required"`
	Quantity     *int `json:"quantity" binding:"required,gte=0"`
}

type bulkActivitiesRequest struct {
	ActivityDate string         `json:"activity_date" binding:"required,datetime=2006-01-02"`
	RoundID      uint           `json:"round_id" binding:"required"`
	Quantities   []bulkQuantity `json:"quantities" binding:"required,min=1,dive"`
}

// mustOwnedParcelType resolves the parcel type FK (400 when unresolved) and
// checks the caller owns its round (403 otherwise).
func mustOwnedParcelType(c *gin.Context, id, userID uint) (rounds.ParcelType, bool) {
	var pt rounds.ParcelType
	if err := database.DB.Preload("Round").First(&pt, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusBadRequest, gin.H{"error": "parcel_type_id does not reference an existing parcel type"})
			return rounds.ParcelType{}, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load parcel type"})
		return rounds.ParcelType{}, false
	}
	if !access.CanManageParcelType(userID, pt) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return rounds.ParcelType{}, false
	}
	return pt, true
}

// GET /activities?page=N
//
// Returns a fixed page of 50 activity rows plus the reference data the
// entry form needs. Rounds and date periods are served through the 24h
// reference cache.
func ListActivities(c *gin.Context) {
	userID, ok := middleware.MustUserID(c)
	if !ok {
		return
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	base := database.DB.Model(&activities.Activity{}).Where("user_id = ?", userID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count activities"})
		return
	}

	var rows []activities.Activity
	err = database.DB.
		Where("user_id = ?", userID).
		Preload("ParcelType", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "rate", "round_id")
		}).
		Preload("ParcelType.Round", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name")
		}).
		Order("id ASC").
		Limit(activitiesPerPage).
		Offset((page - 1) * activitiesPerPage).
		Find(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load activities"})
		return
	}

	pageDTO := PageDTO{
		Data:        make([]ActivityDTO, 0, len(rows)),
		CurrentPage: page,
		PerPage:     activitiesPerPage,
		Total:       total,
		LastPage:    int((total + activitiesPerPage - 1) / activitiesPerPage),
	}
	for _, a := range rows {
		pageDTO.Data = append(pageDTO.Data, toActivityDTO(a))
	}

	cachedRounds, err := refcache.Ref.Remember(refcache.RoundsKey(userID), func() (interface{}, error) {
		var list []rounds.Round
		e := database.DB.Where("user_id = ?", userID).
			Preload("ParcelTypes", func(db *gorm.DB) *gorm.DB {
				return db.Order("parcel_types.id ASC")
			}).
			Order("created_at DESC").
			Find(&list).Error
		return list, e
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load rounds"})
		return
	}

	cachedPeriods, err := refcache.Ref.Remember(refcache.KeyDatePeriods, func() (interface{}, error) {
		var list []periods.DatePeriod
		e := database.DB.Order("start_date ASC").Find(&list).Error
		return list, e
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load date periods"})
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

	c.JSON(http.StatusOK, gin.H{
		"activities":   pageDTO,
		"parcel_types": parcelTypes,
		"rounds":       cachedRounds.([]rounds.Round),
		"date_periods": cachedPeriods.([]periods.DatePeriod),
	})
}

// POST /activities
func CreateActivity(c *gin.Context) {
	var req activityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := middleware.MustUserID(c)
	if !ok {
		return
	}
	if _, ok := mustOwnedParcelType(c, req.ParcelTypeID, userID); !ok {
		return
	}

	a := activities.Activity{
		UserID:       userID,
		ParcelTypeID: req.ParcelTypeID,
		ActivityDate: req.ActivityDate,
		Quantity:     *req.Quantity,
	}
	if err := database.DB.Create(&a).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create activity"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": a.ID})
}

// POST /activities/bulk
//
// Records a whole day's counts for a round. Entries with quantity 0 are
// skipped silently; the rest are created in one all-or-nothing transaction.
func CreateActivitiesBulk(c *gin.Context) {
	var req bulkActivitiesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := middleware.MustUserID(c)
	if !ok {
		return
	}

	var r rounds.Round
	if err := database.DB.First(&r, "id = ?", req.RoundID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusBadRequest, gin.H{"error": "round_id does not reference an existing round"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load round"})
		return
	}
	if !access.CanManageRound(userID, r) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	// every referenced parcel type must exist and belong to the round
	var ptIDs []uint
	if err := database.DB.Model(&rounds.ParcelType{}).Where("round_id = ?", r.ID).Pluck("id", &ptIDs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load parcel types"})
		return
	}
	known := make(map[uint]bool, len(ptIDs))
	for _, id := range ptIDs {
		known[id] = true
	}
	for _, entry := range req.Quantities {
		if !known[entry.ParcelTypeID] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "parcel_type_id does not reference a parcel type of this round"})
			return
		}
	}

	created := 0
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		for _, entry := range req.Quantities {
			if *entry.Quantity == 0 {
				continue
			}
			a := activities.Activity{
				UserID:       userID,
				ParcelTypeID: entry.ParcelTypeID,
				ActivityDate: req.ActivityDate,
				Quantity:     *entry.Quantity,
			}
			if err := tx.Create(&a).Error; err != nil {
				return err
			}
			created++
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record activities"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"created": created})
}

// PUT /activities/:id
func UpdateActivity(c *gin.Context) {
	id := c.Param("id")

	var req activityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := middleware.MustUserID(c)
	if !ok {
		return
	}

	var a activities.Activity
	if err := database.DB.First(&a, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Activity not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load activity"})
		return
	}
	if !access.CanManageActivity(userID, a) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	if _, ok := mustOwnedParcelType(c, req.ParcelTypeID, userID); !ok {
		return
	}

	// user_id is never part of an update
	if err := database.DB.Model(&activities.Activity{}).
		Where("id = ?", a.ID).
		Updates(map[string]interface{}{
			"parcel_type_id": req.ParcelTypeID,
			"activity_date":  req.ActivityDate,
			"quantity":       *req.Quantity,
		}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update activity"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// DELETE /activities/:id
func DeleteActivity(c *gin.Context) {
	id := c.Param("id")

	userID, ok := middleware.MustUserID(c)
	if !ok {
		return
	}

	var a activities.Activity
	if err := database.DB.First(&a, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Activity not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load activity"})
		return
	}
	if !access.CanManageActivity(userID, a) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("activity_id = ?", a.ID).Delete(&activities.ActivityImage{}).Error; err != nil {
			return err
		}
		return tx.Delete(&activities.Activity{}, a.ID).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete activity"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
