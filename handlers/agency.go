package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"talenthub-backend/database"
	"talenthub-backend/models"
)

// AddAgency registers a partner sourcing agency.
func AddAgency(c *gin.Context) {
	var agency models.Agency
	if err := c.ShouldBindJSON(&agency); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "invalid request body",
			"error":   err.Error(),
		})
		return
	}

	if agency.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "name is required"})
		return
	}

	var existing models.Agency
	if err := database.DB.Where("name = ?", agency.Name).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "agency already exists"})
		return
	}

	agency.CreatedBy = c.GetUint("user_id")
	agency.WorkflowStage = "onboarding"
	agency.IsActive = true

	if err := database.DB.Create(&agency).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to create agency"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "agency created", "data": &agency})
}

// GetAgencies lists agencies.
func GetAgencies(c *gin.Context) {
	page, pageSize, offset := pagination(c)

	query := database.DB.Model(&models.Agency{})
	if search := c.Query("search"); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}

	var total int64
	query.Count(&total)

	var agencies []models.Agency
	if err := query.Offset(offset).Limit(pageSize).Order("created_at DESC").Find(&agencies).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to list agencies"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"agencies":  agencies,
			"total":     total,
			"page":      page,
			"page_size": pageSize,
		},
	})
}

// GetAgency returns one agency.
func GetAgency(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid agency ID"})
		return
	}

	var agency models.Agency
	if err := database.DB.First(&agency, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "agency not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": &agency})
}

// UpdateAgency updates fields; stage moves are validated in place.
func UpdateAgency(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid agency ID"})
		return
	}

	var agency models.Agency
	if err := database.DB.First(&agency, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "agency not found"})
		return
	}

	var updates models.Agency
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "invalid request body",
			"error":   err.Error(),
		})
		return
	}

	if updates.WorkflowStage != "" && updates.WorkflowStage != agency.WorkflowStage {
		if !models.CanTransition(models.EntityAgency, agency.WorkflowStage, updates.WorkflowStage) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "invalid stage transition",
				"data": gin.H{
					"current": agency.WorkflowStage,
					"allowed": models.NextStages(models.EntityAgency, agency.WorkflowStage),
				},
			})
			return
		}
	}

	updates.ID = agency.ID
	updates.CreatedBy = agency.CreatedBy
	updates.CreatedAt = agency.CreatedAt

	if err := database.DB.Model(&agency).Updates(&updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to update agency"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "agency updated", "data": &agency})
}

// DeleteAgency soft-deletes.
func DeleteAgency(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid agency ID"})
		return
	}

	if err := database.DB.Delete(&models.Agency{}, id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to delete agency"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "agency deleted"})
}
