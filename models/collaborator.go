package models

import (
	"time"

	"gorm.io/gorm"
)

// Collaborator is the HR registry entry behind a login user. Time
// records and adjustment requests hang off the collaborator, not the
// user, so registry data can change without touching the punch stream.
type Collaborator struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
	UserID         uint           `gorm:"uniqueIndex;not null" json:"user_id"`
	User           *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	FullName       string         `gorm:"not null;size:200" json:"full_name"`
	CorporateEmail string         `gorm:"size:200" json:"corporate_email"`
	RegistrationNo string         `gorm:"size:50" json:"registration_no"`
	Department     string         `gorm:"size:100" json:"department"`
	Position       string         `gorm:"size:100" json:"position"`
	AdmissionDate  *time.Time     `gorm:"type:date" json:"admission_date"`
	Active         bool           `gorm:"default:true" json:"active"`
}
