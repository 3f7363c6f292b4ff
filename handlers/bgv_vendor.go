package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"talenthub-backend/database"
	"talenthub-backend/models"
)

// AddBGVVendor registers a background-verification vendor.
func AddBGVVendor(c *gin.Context) {
	var vendor models.BGVVendor
	if err := c.ShouldBindJSON(&vendor); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "invalid request body",
			"error":   err.Error(),
		})
		return
	}

	if vendor.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "name is required"})
		return
	}

	var existing models.BGVVendor
	if err := database.DB.Where("name = ?", vendor.Name).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "vendor already exists"})
		return
	}

	vendor.CreatedBy = c.GetUint("user_id")
	vendor.WorkflowStage = "onboarding"
	vendor.IsActive = true
	if vendor.TATDays <= 0 {
		vendor.TATDays = 7
	}

	if err := database.DB.Create(&vendor).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to create vendor"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "vendor created", "data": &vendor})
}

// GetBGVVendors lists vendors.
func GetBGVVendors(c *gin.Context) {
	page, pageSize, offset := pagination(c)

	query := database.DB.Model(&models.BGVVendor{})
	if search := c.Query("search"); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}
	if active := c.Query("active"); active != "" {
		query = query.Where("is_active = ?", active == "true")
	}

	var total int64
	query.Count(&total)

	var vendors []models.BGVVendor
	if err := query.Offset(offset).Limit(pageSize).Order("created_at DESC").Find(&vendors).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to list vendors"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"vendors":   vendors,
			"total":     total,
			"page":      page,
			"page_size": pageSize,
		},
	})
}

// GetBGVVendor returns one vendor.
func GetBGVVendor(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid vendor ID"})
		return
	}

	var vendor models.BGVVendor
	if err := database.DB.First(&vendor, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "vendor not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": &vendor})
}

// UpdateBGVVendor updates fields; stage moves are validated in place.
func UpdateBGVVendor(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid vendor ID"})
		return
	}

	var vendor models.BGVVendor
	if err := database.DB.First(&vendor, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "vendor not found"})
		return
	}

	var updates models.BGVVendor
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "invalid request body",
			"error":   err.Error(),
		})
		return
	}

	if updates.WorkflowStage != "" && updates.WorkflowStage != vendor.WorkflowStage {
		if !models.CanTransition(models.EntityBGVVendor, vendor.WorkflowStage, updates.WorkflowStage) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "invalid stage transition",
				"data": gin.H{
					"current": vendor.WorkflowStage,
					"allowed": models.NextStages(models.EntityBGVVendor, vendor.WorkflowStage),
				},
			})
			return
		}
	}

	updates.ID = vendor.ID
	updates.CreatedBy = vendor.CreatedBy
	updates.CreatedAt = vendor.CreatedAt

	if err := database.DB.Model(&vendor).Updates(&updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to update vendor"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "vendor updated", "data": &vendor})
}

// DeleteBGVVendor soft-deletes.
func DeleteBGVVendor(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid vendor ID"})
		return
	}

	if err := database.DB.Delete(&models.BGVVendor{}, id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to delete vendor"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "vendor deleted"})
}
