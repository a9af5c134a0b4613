package periods

import (
	"net/http"
	"time"

	"round-tracker/database"
	"round-tracker/internal/domain/periods"
	"round-tracker/internal/refcache"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type datePeriodRequest struct {
	Name      string `json:"name" binding:"required,max=255"`
	StartDate string `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" binding:"required,datetime=2006-01-02"`
}

// end_date must be strictly after start_date; an equal pair is rejected.
func validateWindow(req datePeriodRequest) bool {
	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return false
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return false
	}
	return end.After(start)
}

// GET /date-periods
func ListDatePeriods(c *gin.Context) {
	v, err := refcache.Ref.Remember(refcache.KeyDatePeriods, func() (interface{}, error) {
		var list []periods.DatePeriod
		if err := database.DB.Order("start_date ASC").Find(&list).Error; err != nil {
			return nil, err
		}
		return list, nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load date periods"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"date_periods": v.([]periods.DatePeriod)})
}

// POST /date-periods
func CreateDatePeriod(c *gin.Context) {
	var req datePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !validateWindow(req) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end_date must be after start_date"})
		return
	}

	p := periods.DatePeriod{
		Name:      req.Name,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}
	if err := database.DB.Create(&p).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create date period"})
		return
	}

	refcache.Ref.Invalidate(refcache.KeyDatePeriods)
	c.JSON(http.StatusCreated, gin.H{"id": p.ID})
}

// PUT /date-periods/:id
func UpdateDatePeriod(c *gin.Context) {
	id := c.Param("id")

	var req datePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !validateWindow(req) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "end_date must be after start_date"})
		return
	}

	var p periods.DatePeriod
	if err := database.DB.First(&p, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Date period not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load date period"})
		return
	}

	if err := database.DB.Model(&periods.DatePeriod{}).
		Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"name":       req.Name,
			"start_date": req.StartDate,
			"end_date":   req.EndDate,
		}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update date period"})
		return
	}

	refcache.Ref.Invalidate(refcache.KeyDatePeriods)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// DELETE /date-periods/:id
func DeleteDatePeriod(c *gin.Context) {
	id := c.Param("id")

	res := database.DB.Delete(&periods.DatePeriod{}, "id = ?", id)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete date period"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Date period not found"})
		return
	}

	refcache.Ref.Invalidate(refcache.KeyDatePeriods)
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
