package models

import (
	"time"

	"gorm.io/gorm"
)

// EmailTemplate holds a named text/template body used for notification mails.
type EmailTemplate struct {
	ID      uint   `json:"id" gorm:"primaryKey"`
	Name    string `json:"name" gorm:"type:varchar(100);uniqueIndex;not null"`
	Subject string `json:"subject" gorm:"type:varchar(255);not null"`
	Body    string `json:"body" gorm:"type:text;not null"`
	Enabled bool   `json:"enabled" gorm:"default:true"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// EmailLog records one delivery attempt.
type EmailLog struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Template   string    `json:"template" gorm:"type:varchar(100);index"`
	Recipient  string    `json:"recipient" gorm:"type:varchar(255)"`
	Subject    string    `json:"subject" gorm:"type:varchar(255)"`
	Status     string    `json:"status" gorm:"type:varchar(20)"` // success, failed
	Error      string    `json:"error" gorm:"type:text"`
	SentAt     time.Time `json:"sent_at"`

	CreatedAt time.Time `json:"created_at"`
}
