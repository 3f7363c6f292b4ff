package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"talenthub-backend/database"
	"talenthub-backend/models"
)

// AddRequirement creates an open position for a client.
func AddRequirement(c *gin.Context) {
	var req models.Requirement
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "invalid request body",
			"error":   err.Error(),
		})
		return
	}

	if req.Title == "" || req.ClientID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "title and client_id are required"})
		return
	}

	var client models.Client
	if err := database.DB.First(&client, req.ClientID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "client does not exist"})
		return
	}

	req.CreatedBy = c.GetUint("user_id")
	req.WorkflowStage = "open"
	if req.Openings <= 0 {
		req.Openings = 1
	}

	if err := database.DB.Create(&req).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to create requirement"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "requirement created", "data": &req})
}

// GetRequirements lists requirements.
func GetRequirements(c *gin.Context) {
	page, pageSize, offset := pagination(c)

	query := database.DB.Model(&models.Requirement{})
	if clientID := c.Query("client_id"); clientID != "" {
		query = query.Where("client_id = ?", clientID)
	}
	if stage := c.Query("stage"); stage != "" {
		query = query.Where("workflow_stage = ?", stage)
	}

	var total int64
	query.Count(&total)

	var requirements []models.Requirement
	if err := query.Preload("Client").Offset(offset).Limit(pageSize).Order("created_at DESC").Find(&requirements).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to list requirements"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"requirements": requirements,
			"total":        total,
			"page":         page,
			"page_size":    pageSize,
		},
	})
}

// GetRequirement returns one requirement.
func GetRequirement(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid requirement ID"})
		return
	}

	var req models.Requirement
	if err := database.DB.Preload("Client").First(&req, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "requirement not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": &req})
}

// UpdateRequirement updates fields; stage moves via AdvanceRequirementStage.
func UpdateRequirement(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid requirement ID"})
		return
	}

	var req models.Requirement
	if err := database.DB.First(&req, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "requirement not found"})
		return
	}

	var updates models.Requirement
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "invalid request body",
			"error":   err.Error(),
		})
		return
	}

	updates.ID = req.ID
	updates.CreatedBy = req.CreatedBy
	updates.WorkflowStage = req.WorkflowStage
	updates.CreatedAt = req.CreatedAt

	if err := database.DB.Model(&req).Updates(&updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to update requirement"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "requirement updated", "data": &req})
}

// DeleteRequirement soft-deletes.
func DeleteRequirement(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid requirement ID"})
		return
	}

	if err := database.DB.Delete(&models.Requirement{}, id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to delete requirement"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "requirement deleted"})
}

// AdvanceRequirementStage moves the requirement along the workflow table.
func AdvanceRequirementStage(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid requirement ID"})
		return
	}

	var body StageRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
		return
	}

	var req models.Requirement
	if err := database.DB.First(&req, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "requirement not found"})
		return
	}

	if !models.CanTransition(models.EntityRequirement, req.WorkflowStage, body.Stage) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "invalid stage transition",
			"data": gin.H{
				"current": req.WorkflowStage,
				"allowed": models.NextStages(models.EntityRequirement, req.WorkflowStage),
			},
		})
		return
	}

	if err := database.DB.Model(&req).Update("workflow_stage", body.Stage).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to update stage"})
		return
	}

	req.WorkflowStage = body.Stage
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "stage updated", "data": &req})
}
