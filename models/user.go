package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleSuperAdmin = "super_admin"
	RoleAdmin      = "admin"
	RoleRecruiter  = "recruiter"
	RoleClient     = "client"
	RoleVendor     = "vendor"
	RoleUser       = "user"
)

type User struct {
	ID        uint           `json:"id" gorm:"primarykey"`
	Username  string         `json:"username" gorm:"unique;not null"`
	Password  string         `json:"-" gorm:"not null"` // bcrypt hash
	Email     string         `json:"email" gorm:"unique"`
	FullName  string         `json:"full_name" gorm:"type:varchar(100)"`
	Role      string         `json:"role" gorm:"default:user"` // super_admin, admin, recruiter, client, vendor, user
	IsActive  bool           `json:"is_active" gorm:"default:true"`
	LastLogin time.Time      `json:"last_login"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
