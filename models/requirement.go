package models

import (
	"time"

	"gorm.io/gorm"
)

// Requirement is an open position raised by a client.
type Requirement struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Title       string `json:"title" gorm:"type:varchar(150);not null"`
	ClientID    uint   `json:"client_id" gorm:"not null;index"`
	Client      Client `json:"client" gorm:"foreignKey:ClientID"`
	Description string `json:"description" gorm:"type:text"`
	Skills      string `json:"skills" gorm:"type:text"`
	MinExpYears int    `json:"min_exp_years"`
	MaxExpYears int    `json:"max_exp_years"`
	BudgetCTC   string `json:"budget_ctc" gorm:"type:varchar(50)"`
	Location    string `json:"location" gorm:"type:varchar(150)"`
	Openings    int    `json:"openings" gorm:"default:1"`

	WorkflowStage string `json:"workflow_stage" gorm:"type:varchar(40);default:'open';index"`

	CreatedBy uint `json:"created_by" gorm:"index"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
