package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"talenthub-backend/database"
	"talenthub-backend/models"
	"talenthub-backend/services"
)

var notifier *services.NotificationService

// InitCandidateHandler injects the notification service.
func InitCandidateHandler(n *services.NotificationService) {
	notifier = n
}

// AddCandidate creates a candidate and notifies the assigned recruiter.
func AddCandidate(c *gin.Context) {
	var candidate models.Candidate
	if err := c.ShouldBindJSON(&candidate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "invalid request body",
			"error":   err.Error(),
		})
		return
	}

	if candidate.FirstName == "" || candidate.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "first name and email are required",
		})
		return
	}

	var existing models.Candidate
	if err := database.DB.Where("email = ?", candidate.Email).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"message": "candidate with this email already exists",
		})
		return
	}

	candidate.CreatedBy = c.GetUint("user_id")
	candidate.WorkflowStage = "sourced"

	if err := database.DB.Create(&candidate).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "failed to create candidate",
		})
		return
	}

	if notifier != nil && candidate.AssignedTo != 0 {
		var assignee models.User
		if err := database.DB.First(&assignee, candidate.AssignedTo).Error; err == nil {
			notifier.Send("candidate_created", assignee.Email, &candidate)
		}
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "candidate created",
		"data":    &candidate,
	})
}

// GetCandidates lists candidates with optional filters.
func GetCandidates(c *gin.Context) {
	page, pageSize, offset := pagination(c)

	query := database.DB.Model(&models.Candidate{})
	if stage := c.Query("stage"); stage != "" {
		query = query.Where("workflow_stage = ?", stage)
	}
	if reqID := c.Query("requirement_id"); reqID != "" {
		query = query.Where("requirement_id = ?", reqID)
	}
	if assigned := c.Query("assigned_to"); assigned != "" {
		query = query.Where("assigned_to = ?", assigned)
	}
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("first_name LIKE ? OR last_name LIKE ? OR email LIKE ? OR skills LIKE ?", like, like, like, like)
	}

	var total int64
	query.Count(&total)

	var candidates []models.Candidate
	if err := query.Offset(offset).Limit(pageSize).Order("created_at DESC").Find(&candidates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "failed to list candidates",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"candidates": candidates,
			"total":      total,
			"page":       page,
			"page_size":  pageSize,
		},
	})
}

// GetCandidate returns one candidate.
func GetCandidate(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid candidate ID"})
		return
	}

	var candidate models.Candidate
	if err := database.DB.First(&candidate, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "candidate not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": &candidate})
}

// UpdateCandidate updates profile fields. The workflow stage only moves
// through AdvanceCandidateStage.
func UpdateCandidate(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid candidate ID"})
		return
	}

	var candidate models.Candidate
	if err := database.DB.First(&candidate, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "candidate not found"})
		return
	}

	var updates models.Candidate
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "invalid request body",
			"error":   err.Error(),
		})
		return
	}

	// immutable fields
	updates.ID = candidate.ID
	updates.CreatedBy = candidate.CreatedBy
	updates.WorkflowStage = candidate.WorkflowStage
	updates.CreatedAt = candidate.CreatedAt

	if err := database.DB.Model(&candidate).Updates(&updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "failed to update candidate",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "candidate updated", "data": &candidate})
}

// DeleteCandidate soft-deletes via gorm.
func DeleteCandidate(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid candidate ID"})
		return
	}

	if err := database.DB.Delete(&models.Candidate{}, id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "failed to delete candidate",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "candidate deleted"})
}

type StageRequest struct {
	Stage string `json:"stage" binding:"required"`
}

// AdvanceCandidateStage moves the candidate along the workflow table.
func AdvanceCandidateStage(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid candidate ID"})
		return
	}

	var req StageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "invalid request body",
			"error":   err.Error(),
		})
		return
	}

	var candidate models.Candidate
	if err := database.DB.First(&candidate, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "candidate not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "database error"})
		return
	}

	if !models.CanTransition(models.EntityCandidate, candidate.WorkflowStage, req.Stage) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "invalid stage transition",
			"data": gin.H{
				"current": candidate.WorkflowStage,
				"allowed": models.NextStages(models.EntityCandidate, candidate.WorkflowStage),
			},
		})
		return
	}

	if err := database.DB.Model(&candidate).Update("workflow_stage", req.Stage).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "failed to update stage",
		})
		return
	}

	candidate.WorkflowStage = req.Stage
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "stage updated", "data": &candidate})
}
