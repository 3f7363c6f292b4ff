package models

import (
	"time"

	"gorm.io/gorm"
)

// Candidate is an applicant moving through the hiring pipeline.
type Candidate struct {
	ID            uint   `json:"id" gorm:"primaryKey"`
	FirstName     string `json:"first_name" gorm:"type:varchar(100);not null"`
	LastName      string `json:"last_name" gorm:"type:varchar(100)"`
	Email         string `json:"email" gorm:"type:varchar(255);uniqueIndex"`
	Phone         string `json:"phone" gorm:"type:varchar(30)"`
	CurrentTitle  string `json:"current_title" gorm:"type:varchar(150)"`
	CurrentCTC    string `json:"current_ctc" gorm:"type:varchar(50)"`
	ExpectedCTC   string `json:"expected_ctc" gorm:"type:varchar(50)"`
	NoticePeriod  string `json:"notice_period" gorm:"type:varchar(50)"`
	Location      string `json:"location" gorm:"type:varchar(150)"`
	Skills        string `json:"skills" gorm:"type:text"`
	Source        string `json:"source" gorm:"type:varchar(100)"` // portal, referral, agency...
	RequirementID uint   `json:"requirement_id" gorm:"index"`

	WorkflowStage string `json:"workflow_stage" gorm:"type:varchar(40);default:'sourced';index"`

	CreatedBy  uint `json:"created_by" gorm:"index"`
	AssignedTo uint `json:"assigned_to" gorm:"index"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
