package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"talenthub-backend/database"
	"talenthub-backend/models"
)

// GetDashboardStats returns collection counts and the candidate pipeline.
func GetDashboardStats(c *gin.Context) {
	var candidates, clients, requirements, agencies, vendors, files int64

	database.DB.Model(&models.Candidate{}).Count(&candidates)
	database.DB.Model(&models.Client{}).Count(&clients)
	database.DB.Model(&models.Requirement{}).Count(&requirements)
	database.DB.Model(&models.Agency{}).Count(&agencies)
	database.DB.Model(&models.BGVVendor{}).Count(&vendors)
	database.DB.Model(&models.FileDocument{}).Where("is_deleted = ?", false).Count(&files)

	type stageCount struct {
		WorkflowStage string `json:"stage"`
		Count         int64  `json:"count"`
	}
	var pipeline []stageCount
	database.DB.Model(&models.Candidate{}).
		Select("workflow_stage, count(*) as count").
		Group("workflow_stage").
		Scan(&pipeline)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"candidates":   candidates,
			"clients":      clients,
			"requirements": requirements,
			"agencies":     agencies,
			"bgv_vendors":  vendors,
			"files":        files,
			"pipeline":     pipeline,
		},
	})
}

// ExportCandidates streams the candidate list as CSV.
func ExportCandidates(c *gin.Context) {
	query := database.DB.Model(&models.Candidate{})
	if stage := c.Query("stage"); stage != "" {
		query = query.Where("workflow_stage = ?", stage)
	}

	var candidates []models.Candidate
	if err := query.Order("created_at DESC").Find(&candidates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to load candidates"})
		return
	}

	filename := fmt.Sprintf("candidates_%s.csv", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Header("Content-Type", "text/csv")

	w := csv.NewWriter(c.Writer)
	defer w.Flush()

	w.Write([]string{"ID", "First Name", "Last Name", "Email", "Phone", "Stage", "Location", "Skills", "Source", "Created At"})
	for _, cand := range candidates {
		w.Write([]string{
			strconv.FormatUint(uint64(cand.ID), 10),
			cand.FirstName,
			cand.LastName,
			cand.Email,
			cand.Phone,
			cand.WorkflowStage,
			cand.Location,
			cand.Skills,
			cand.Source,
			cand.CreatedAt.Format(time.RFC3339),
		})
	}
}
