package models

import (
	"time"

	"gorm.io/gorm"
)

// CalendarEvent is an HR-entered absence, holiday or similar period
// attached to a collaborator. It does not affect punch validation;
// monitoring views read it alongside the summaries.
type CalendarEvent struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
	CollaboratorID uint           `gorm:"not null;index" json:"collaborator_id"`
	Collaborator   *Collaborator  `gorm:"foreignKey:CollaboratorID" json:"collaborator,omitempty"`
	Type           string         `gorm:"not null;size:50" json:"type"`
	StartsAt       time.Time      `gorm:"not null" json:"starts_at"`
	EndsAt         time.Time      `gorm:"not null" json:"ends_at"`
	Description    string         `gorm:"size:500" json:"description"`
	CreatedBy      uint           `gorm:"not null" json:"created_by"`
}
