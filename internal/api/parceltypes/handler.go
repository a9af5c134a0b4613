package parceltypes

import (
	"net/http"

	"round-tracker/database"
	"round-tracker/internal/app/http/middleware"
	"round-tracker/internal/domain/access"
	"round-tracker/internal/domain/rounds"
	"round-tracker/internal/refcache"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type parcelTypeFields struct {
	Name      string   `json:"name" binding:"required,max=255"`
	MaxWeight *float64 `json:"max_weight" binding:"required,gte=0"`
	MaxLength *float64 `json:"max_length" binding:"required,gte=0"`
	Rate      *float64 `json:"rate" binding:"required,gte=0"`
}

type createParcelTypeRequest struct {
	RoundID uint `json:"round_id" binding:"required"`
	parcelTypeFields
}

type bulkParcelTypesRequest struct {
	RoundID     uint               `json:"round_id" binding:"required"`
	ParcelTypes []parcelTypeFields `json:"parcel_types" binding:"required,min=1,dive"`
}

// mustOwnedRound resolves the round FK and the caller's ownership of it.
// A missing round is a validation failure (400), a foreign one is 403.
func mustOwnedRound(c *gin.Context, id, userID uint) (rounds.Round, bool) {
	var r rounds.Round
	if err := database.DB.First(&r, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusBadRequest, gin.H{"error": "round_id does not reference an existing round"})
			return rounds.Round{}, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load round"})
		return rounds.Round{}, false
	}
	if !access.CanManageRound(userID, r) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return rounds.Round{}, false
	}
	return r, true
}

// GET /parcel-types
func ListParcelTypes(c *gin.Context) {
	userID, ok := middleware.MustUserID(c)
	if !ok {
		return
	}

	var parcelTypes []rounds.ParcelType
	err := database.DB.Model(&rounds.ParcelType{}).
		Joins("JOIN rounds ON rounds.id = parcel_types.round_id").
		Where("rounds.user_id = ?", userID).
		Preload("Round").
		Order("parcel_types.id ASC").
		Find(&parcelTypes).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load parcel types"})
		return
	}

	var ownedRounds []rounds.Round
	if err := database.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&ownedRounds).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load rounds"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"parcel_types": parcelTypes,
		"rounds":       ownedRounds,
	})
}

// POST /parcel-types
func CreateParcelType(c *gin.Context) {
	var req createParcelTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := middleware.MustUserID(c)
	if !ok {
		return
	}
	if _, ok := mustOwnedRound(c, req.RoundID, userID); !ok {
		return
	}

	pt := rounds.ParcelType{
		RoundID:   req.RoundID,
		Name:      req.Name,
		MaxWeight: *req.MaxWeight,
		MaxLength: *req.MaxLength,
		Rate:      *req.Rate,
	}
	if err := database.DB.Create(&pt).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create parcel type"})
		return
	}

	refcache.Ref.Invalidate(refcache.RoundsKey(userID))
	c.JSON(http.StatusCreated, gin.H{"id": pt.ID})
}

// POST /parcel-types/bulk
//
// One transaction: either every entry lands or none do.
func CreateParcelTypesBulk(c *gin.Context) {
	var req bulkParcelTypesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := middleware.MustUserID(c)
	if !ok {
		return
	}
	if _, ok := mustOwnedRound(c, req.RoundID, userID); !ok {
		return
	}

	ids := make([]uint, 0, len(req.ParcelTypes))
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		for _, fields := range req.ParcelTypes {
			pt := rounds.ParcelType{
				RoundID:   req.RoundID,
				Name:      fields.Name,
				MaxWeight: *fields.MaxWeight,
				MaxLength: *fields.MaxLength,
				Rate:      *fields.Rate,
			}
			if err := tx.Create(&pt).Error; err != nil {
				return err
			}
			ids = append(ids, pt.ID)
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create parcel types"})
		return
	}

	refcache.Ref.Invalidate(refcache.RoundsKey(userID))
	c.JSON(http.StatusCreated, gin.H{"ids": ids})
}

// PUT /parcel-types/:id
func UpdateParcelType(c *gin.Context) {
	id := c.Param("id")

	var req createParcelTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := middleware.MustUserID(c)
	if !ok {
		return
	}

	var pt rounds.ParcelType
	if err := database.DB.Preload("Round").First(&pt, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Parcel type not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load parcel type"})
		return
	}
	if !access.CanManageParcelType(userID, pt) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	// moving the parcel type re-validates the target round
	if req.RoundID != pt.RoundID {
		if _, ok := mustOwnedRound(c, req.RoundID, userID); !ok {
			return
		}
	}

	if err := database.DB.Model(&rounds.ParcelType{}).
		Where("id = ?", pt.ID).
		Updates(map[string]interface{}{
			"round_id":   req.RoundID,
			"name":       req.Name,
			"max_weight": *req.MaxWeight,
			"max_length": *req.MaxLength,
			"rate":       *req.Rate,
		}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update parcel type"})
		return
	}

	refcache.Ref.Invalidate(refcache.RoundsKey(userID))
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// DELETE /parcel-types/:id
func DeleteParcelType(c *gin.Context) {
	id := c.Param("id")

	userID, ok := middleware.MustUserID(c)
	if !ok {
		return
	}

	var pt rounds.ParcelType
	if err := database.DB.Preload("Round").First(&pt, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Parcel type not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load parcel type"})
		return
	}
	if !access.CanManageParcelType(userID, pt) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		return deleteParcelTypeCascade(tx, pt.ID)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete parcel type"})
		return
	}

	refcache.Ref.Invalidate(refcache.RoundsKey(userID))
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
