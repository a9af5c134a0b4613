package images

import (
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"round-tracker/database"
	"round-tracker/internal/app/http/middleware"
	"round-tracker/internal/domain/access"
	"round-tracker/internal/domain/activities"
	"round-tracker/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	imagesPerPage = 10
	maxImageBytes = 2 << 20 // 2 MB
	uploadDir     = "activity_images"
)

var allowedExtensions = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
}

// POST /activity-images (multipart: image, activity_id)
func UploadActivityImage(c *gin.Context) {
	userID, ok := middleware.MustUserID(c)
	if !ok {
		return
	}

	activityID, err := strconv.ParseUint(c.PostForm("activity_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "activity_id is required"})
		return
	}

	var a activities.Activity
	if err := database.DB.First(&a, "id = ?", uint(activityID)).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusBadRequest, gin.H{"error": "activity_id does not reference an existing activity"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load activity"})
		return
	}
	if !access.CanManageActivity(userID, a) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	header, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	if header.Size > maxImageBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image must be 2MB or smaller"})
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	contentType := header.Header.Get("Content-Type")
	if !allowedExtensions[ext] || !strings.HasPrefix(contentType, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image must be jpeg, png, jpg or gif"})
		return
	}

	f, err := header.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read upload"})
		return
	}
	defer f.Close()

	name := uuid.NewString() + ext
	path, err := storage.Default.Save(c.Request.Context(), uploadDir, name, contentType, f, header.Size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store image"})
		return
	}

	img := activities.ActivityImage{
		ActivityID: a.ID,
		ImagePath:  path,
	}
	if err := database.DB.Create(&img).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save image record"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Image uploaded successfully",
		"data":    img,
	})
}

// GET /activity-images?page=N
func ListActivityImages(c *gin.Context) {
	userID, ok := middleware.MustUserID(c)
	if !ok {
		return
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	base := database.DB.Model(&activities.ActivityImage{}).
		Joins("JOIN activities ON activities.id = activity_images.activity_id").
		Where("activities.user_id = ?", userID)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count images"})
		return
	}

	var imgs []activities.ActivityImage
	err = base.
		Order("activity_images.created_at DESC, activity_images.id DESC").
		Limit(imagesPerPage).
		Offset((page - 1) * imagesPerPage).
		Find(&imgs).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load images"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"activity_images": gin.H{
			"data":         imgs,
			"current_page": page,
			"per_page":     imagesPerPage,
			"total":        total,
			"last_page":    int((total + imagesPerPage - 1) / imagesPerPage),
		},
	})
}
