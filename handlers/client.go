package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"talenthub-backend/database"
	"talenthub-backend/models"
)

// AddClient creates a client company.
func AddClient(c *gin.Context) {
	var client models.Client
	if err := c.ShouldBindJSON(&client); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "invalid request body",
			"error":   err.Error(),
		})
		return
	}

	if client.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "name is required"})
		return
	}

	var existing models.Client
	if err := database.DB.Where("name = ?", client.Name).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "client already exists"})
		return
	}

	client.CreatedBy = c.GetUint("user_id")
	client.WorkflowStage = "prospect"

	if err := database.DB.Create(&client).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to create client"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "client created", "data": &client})
}

// GetClients lists clients.
func GetClients(c *gin.Context) {
	page, pageSize, offset := pagination(c)

	query := database.DB.Model(&models.Client{})
	if stage := c.Query("stage"); stage != "" {
		query = query.Where("workflow_stage = ?", stage)
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}

	var total int64
	query.Count(&total)

	var clients []models.Client
	if err := query.Offset(offset).Limit(pageSize).Order("created_at DESC").Find(&clients).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to list clients"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"clients":   clients,
			"total":     total,
			"page":      page,
			"page_size": pageSize,
		},
	})
}

// GetClient returns one client.
func GetClient(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid client ID"})
		return
	}

	var client models.Client
	if err := database.DB.First(&client, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "client not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": &client})
}

// UpdateClient updates profile fields; stage moves via AdvanceClientStage.
func UpdateClient(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid client ID"})
		return
	}

	var client models.Client
	if err := database.DB.First(&client, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "client not found"})
		return
	}

	var updates models.Client
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "invalid request body",
			"error":   err.Error(),
		})
		return
	}

	updates.ID = client.ID
	updates.CreatedBy = client.CreatedBy
	updates.WorkflowStage = client.WorkflowStage
	updates.CreatedAt = client.CreatedAt

	if err := database.DB.Model(&client).Updates(&updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to update client"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "client updated", "data": &client})
}

// DeleteClient soft-deletes.
func DeleteClient(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid client ID"})
		return
	}

	if err := database.DB.Delete(&models.Client{}, id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to delete client"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "client deleted"})
}

// AdvanceClientStage moves the client along the workflow table.
func AdvanceClientStage(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid client ID"})
		return
	}

	var req StageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request body"})
		return
	}

	var client models.Client
	if err := database.DB.First(&client, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "client not found"})
		return
	}

	if !models.CanTransition(models.EntityClient, client.WorkflowStage, req.Stage) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "invalid stage transition",
			"data": gin.H{
				"current": client.WorkflowStage,
				"allowed": models.NextStages(models.EntityClient, client.WorkflowStage),
			},
		})
		return
	}

	if err := database.DB.Model(&client).Update("workflow_stage", req.Stage).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to update stage"})
		return
	}

	client.WorkflowStage = req.Stage
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "stage updated", "data": &client})
}
