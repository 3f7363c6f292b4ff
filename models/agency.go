package models

import (
	"time"

	"gorm.io/gorm"
)

// Agency is a partner sourcing agency.
type Agency struct {
	ID            uint   `json:"id" gorm:"primaryKey"`
	Name          string `json:"name" gorm:"type:varchar(150);not null;uniqueIndex"`
	ContactPerson string `json:"contact_person" gorm:"type:varchar(100)"`
	ContactEmail  string `json:"contact_email" gorm:"type:varchar(255)"`
	ContactPhone  string `json:"contact_phone" gorm:"type:varchar(30)"`
	CommissionPct float64 `json:"commission_pct"`
	IsActive      bool   `json:"is_active" gorm:"default:true"`

	WorkflowStage string `json:"workflow_stage" gorm:"type:varchar(40);default:'onboarding'"`

	CreatedBy uint `json:"created_by" gorm:"index"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
