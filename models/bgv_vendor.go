package models

import (
	"time"

	"gorm.io/gorm"
)

// BGVVendor is a background-verification vendor.
type BGVVendor struct {
	ID            uint   `json:"id" gorm:"primaryKey"`
	Name          string `json:"name" gorm:"type:varchar(150);not null;uniqueIndex"`
	ContactPerson string `json:"contact_person" gorm:"type:varchar(100)"`
	ContactEmail  string `json:"contact_email" gorm:"type:varchar(255)"`
	ContactPhone  string `json:"contact_phone" gorm:"type:varchar(30)"`
	Services      string `json:"services" gorm:"type:text"` // comma separated: criminal, education, employment...
	TATDays       int    `json:"tat_days" gorm:"default:7"`
	IsActive      bool   `json:"is_active" gorm:"default:true"`

	WorkflowStage string `json:"workflow_stage" gorm:"type:varchar(40);default:'onboarding'"`

	CreatedBy uint `json:"created_by" gorm:"index"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (BGVVendor) TableName() string {
	return "bgv_vendors"
}
