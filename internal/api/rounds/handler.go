package rounds

import (
	"net/http"

	"round-tracker/database"
	"round-tracker/internal/app/http/middleware"
	"round-tracker/internal/domain/access"
	"round-tracker/internal/domain/activities"
	"round-tracker/internal/domain/rounds"
	"round-tracker/internal/refcache"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type roundRequest struct {
	Name        string  `json:"name" binding:"required,max=255"`
	Description *string `json:"description"`
	Active      bool    `json:"active"`
}

// GET /rounds
func ListRounds(c *gin.Context) {
	userID, ok := middleware.MustUserID(c)
	if !ok {
		return
	}

	v, err := refcache.Ref.Remember(refcache.RoundsKey(userID), func() (interface{}, error) {
		return ownedRounds(database.DB, userID)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load rounds"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"rounds": v.([]rounds.Round)})
}

// POST /rounds
func CreateRound(c *gin.Context) {
	var req roundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := middleware.MustUserID(c)
	if !ok {
		return
	}

	r := rounds.Round{
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		Active:      req.Active,
	}
	if err := database.DB.Create(&r).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create round"})
		return
	}

	refcache.Ref.Invalidate(refcache.RoundsKey(userID))
	c.JSON(http.StatusCreated, gin.H{"id": r.ID})
}

// PUT /rounds/:id
func UpdateRound(c *gin.Context) {
	id := c.Param("id")

	var req roundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := middleware.MustUserID(c)
	if !ok {
		return
	}

	var r rounds.Round
	if err := database.DB.First(&r, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Round not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load round"})
		return
	}
	if !access.CanManageRound(userID, r) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	// user_id is never part of an update
	if err := database.DB.Model(&rounds.Round{}).
		Where("id = ?", r.ID).
		Updates(map[string]interface{}{
			"name":        req.Name,
			"description": req.Description,
			"active":      req.Active,
		}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update round"})
		return
	}

	refcache.Ref.Invalidate(refcache.RoundsKey(userID))
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// DELETE /rounds/:id
//
// Cascade is explicit: parcel types of the round, their activities, and
// those activities' images all go inside one transaction.
func DeleteRound(c *gin.Context) {
	id := c.Param("id")

	userID, ok := middleware.MustUserID(c)
	if !ok {
		return
	}

	var r rounds.Round
	if err := database.DB.First(&r, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Round not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load round"})
		return
	}
	if !access.CanManageRound(userID, r) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var ptIDs []uint
		if err := tx.Model(&rounds.ParcelType{}).Where("round_id = ?", r.ID).Pluck("id", &ptIDs).Error; err != nil {
			return err
		}

		if len(ptIDs) > 0 {
			var actIDs []uint
			if err := tx.Model(&activities.Activity{}).Where("parcel_type_id IN ?", ptIDs).Pluck("id", &actIDs).Error; err != nil {
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
			if err := tx.Where("round_id = ?", r.ID).Delete(&rounds.ParcelType{}).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&rounds.Round{}, r.ID).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete round"})
		return
	}

	refcache.Ref.Invalidate(refcache.RoundsKey(userID))
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
