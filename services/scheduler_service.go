package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"talenthub-backend/models"
)

// SchedulerService runs the background sweeps on a cron schedule and records
// every run. The sweeps read their work out of the database (pending scan
// status, expired soft deletes), so a restart never loses scheduled work.
type SchedulerService struct {
	db      *gorm.DB
	files   *FileService
	cron    *cron.Cron
	mutex   sync.Mutex
	running bool
}

func NewSchedulerService(db *gorm.DB, files *FileService) *SchedulerService {
	return &SchedulerService{
		db:    db,
		files: files,
		cron:  cron.New(cron.WithSeconds()),
	}
}

// Start registers the sweeps and starts the scheduler.
func (s *SchedulerService) Start() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.running {
		return fmt.Errorf("scheduler already running")
	}

	// virus-scan sweep, every 30 seconds
	if _, err := s.cron.AddFunc("*/30 * * * * *", func() {
		s.runJob("virus_scan_sweep", s.files.ScanPendingFiles)
	}); err != nil {
		return fmt.Errorf("failed to register scan sweep: %w", err)
	}

	// purge sweep, daily at 03:00
	if _, err := s.cron.AddFunc("0 0 3 * * *", func() {
		s.runJob("file_purge_sweep", s.files.CleanupDeletedFiles)
	}); err != nil {
		return fmt.Errorf("failed to register purge sweep: %w", err)
	}

	s.cron.Start()
	s.running = true

	log.Printf("scheduler started: scan sweep every 30s, purge sweep daily at 03:00")
	return nil
}

// Stop stops the scheduler and waits for in-flight jobs.
func (s *SchedulerService) Stop() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if !s.running {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.running = false
	log.Printf("scheduler stopped")
}

// RunPurgeNow triggers the purge sweep outside its schedule (admin action).
func (s *SchedulerService) RunPurgeNow() {
	go s.runJob("file_purge_sweep", s.files.CleanupDeletedFiles)
}

// runJob wraps a sweep with a persisted execution record.
func (s *SchedulerService) runJob(name string, fn func(context.Context) (string, error)) {
	execution := &models.JobExecution{
		Name:      name,
		Status:    models.JobStatusRunning,
		StartedAt: time.Now(),
	}
	if err := s.db.Create(execution).Error; err != nil {
		log.Printf("failed to create execution record for %s: %v", name, err)
		return
	}

	output, err := fn(context.Background())

	endTime := time.Now()
	updates := map[string]interface{}{
		"ended_at": &endTime,
		"duration": endTime.Sub(execution.StartedAt).Milliseconds(),
		"output":   output,
	}
	if err != nil {
		updates["status"] = models.JobStatusFailed
		updates["error"] = err.Error()
		log.Printf("job %s failed: %v", name, err)
	} else {
		updates["status"] = models.JobStatusSuccess
	}

	if err := s.db.Model(execution).Updates(updates).Error; err != nil {
		log.Printf("failed to update execution record for %s: %v", name, err)
	}
}

// GetExecutions lists recent runs of a job (or all jobs when name is empty).
func (s *SchedulerService) GetExecutions(name string, offset, limit int) ([]models.JobExecution, int64, error) {
	var executions []models.JobExecution
	var total int64

	query := s.db.Model(&models.JobExecution{})
	if name != "" {
		query = query.Where("name = ?", name)
	}
	query.Count(&total)

	err := query.Offset(offset).Limit(limit).Order("started_at DESC").Find(&executions).Error
	return executions, total, err
}
