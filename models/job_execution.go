package models

import (
	"time"
)

// JobStatus is the outcome of one background sweep run.
type JobStatus string

const (
	JobStatusRunning JobStatus = "running"
	JobStatusSuccess JobStatus = "success"
	JobStatusFailed  JobStatus = "failed"
)

// JobExecution records one run of a scheduled sweep (virus scan, purge).
type JobExecution struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	Name      string     `json:"name" gorm:"type:varchar(100);not null;index"`
	Status    JobStatus  `json:"status" gorm:"type:varchar(20);not null"`
	StartedAt time.Time  `json:"started_at" gorm:"not null"`
	EndedAt   *time.Time `json:"ended_at"`
	Duration  int64      `json:"duration"` // milliseconds
	Output    string     `json:"output" gorm:"type:text"`
	Error     string     `json:"error" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
}

func (JobExecution) TableName() string {
	return "job_executions"
}
