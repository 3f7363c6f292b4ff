package models

import (
	"time"

	"gorm.io/gorm"
)

// Client is a hiring company served by the agency.
type Client struct {
	ID            uint   `json:"id" gorm:"primaryKey"`
	Name          string `json:"name" gorm:"type:varchar(150);not null;uniqueIndex"`
	Industry      string `json:"industry" gorm:"type:varchar(100)"`
	ContactPerson string `json:"contact_person" gorm:"type:varchar(100)"`
	ContactEmail  string `json:"contact_email" gorm:"type:varchar(255)"`
	ContactPhone  string `json:"contact_phone" gorm:"type:varchar(30)"`
	Address       string `json:"address" gorm:"type:text"`
	GSTNumber     string `json:"gst_number" gorm:"type:varchar(30)"`

	WorkflowStage string `json:"workflow_stage" gorm:"type:varchar(40);default:'prospect'"`

	CreatedBy uint `json:"created_by" gorm:"index"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
