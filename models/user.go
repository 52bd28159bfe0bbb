package models

import (
	"time"

	"gorm.io/gorm"
)

type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleHR       Role = "HR"
	RoleManager  Role = "MANAGER"
	RoleEmployee Role = "EMPLOYEE"
)

func ValidRole(r Role) bool {
	switch r {
	case RoleAdmin, RoleHR, RoleManager, RoleEmployee:
		return true
	}
	return false
}

type User struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
	Username           string         `gorm:"uniqueIndex;not null;size:100" json:"username"`
	PasswordHash       string         `gorm:"not null" json:"-"`
	Role               Role           `gorm:"not null;size:20" json:"role"`
	MustChangePassword bool           `gorm:"default:true" json:"must_change_password"`
	IsActive           bool           `gorm:"default:true" json:"is_active"`
	FailedAttempts     int            `gorm:"default:0" json:"failed_attempts"`
	LockedUntil        *time.Time     `json:"locked_until"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u *User) IsHR() bool {
	return u.Role == RoleHR
}

func (u *User) IsManager() bool {
	return u.Role == RoleManager
}

// CanReviewAdjustments reports whether the user may see the pending
// queue and decide adjustment requests.
func (u *User) CanReviewAdjustments() bool {
	return u.IsAdmin() || u.IsHR() || u.IsManager()
}

func (u *User) CanViewAllRecords() bool {
	return u.IsAdmin() || u.IsHR()
}

func (u *User) CanManageCollaborators() bool {
	return u.IsAdmin() || u.IsHR()
}

func (u *User) CanManageUsers() bool {
	return u.IsAdmin()
}

// Locked reports whether the account is currently locked out after
// repeated failed logins.
func (u *User) Locked(now time.Time) bool {
	return u.LockedUntil != nil && now.Before(*u.LockedUntil)
}
