package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"talenthub-backend/services"
)

type JobsHandler struct {
	scheduler *services.SchedulerService
	notifier  *services.NotificationService
}

func NewJobsHandler(scheduler *services.SchedulerService, notifier *services.NotificationService) *JobsHandler {
	return &JobsHandler{scheduler: scheduler, notifier: notifier}
}

// GetJobExecutions lists recent sweep runs.
func (h *JobsHandler) GetJobExecutions(c *gin.Context) {
	page, pageSize, offset := pagination(c)

	executions, total, err := h.scheduler.GetExecutions(c.Query("name"), offset, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to list executions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"executions": executions,
			"total":      total,
			"page":       page,
			"page_size":  pageSize,
		},
	})
}

// RunPurgeNow triggers the purge sweep outside its schedule.
func (h *JobsHandler) RunPurgeNow(c *gin.Context) {
	h.scheduler.RunPurgeNow()
	c.JSON(http.StatusAccepted, gin.H{"success": true, "message": "purge sweep scheduled"})
}

// GetEmailLogs lists notification delivery attempts.
func (h *JobsHandler) GetEmailLogs(c *gin.Context) {
	page, pageSize, offset := pagination(c)

	logs, total, err := h.notifier.GetLogs(offset, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to list email logs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"logs":      logs,
			"total":     total,
			"page":      page,
			"page_size": pageSize,
		},
	})
}
