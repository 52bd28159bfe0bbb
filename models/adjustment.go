package models

import (
	"time"
)

type AdjustmentStatus string

const (
	AdjustmentPending  AdjustmentStatus = "PENDING"
	AdjustmentApproved AdjustmentStatus = "APPROVED"
	AdjustmentRejected AdjustmentStatus = "REJECTED"
)

// AdjustmentRequest is a collaborator-submitted correction proposing a
// punch that should have existed. It references the original record
// when one exists but never mutates it; materializing an approved
// request into the punch stream is a separate, explicit step.
type AdjustmentRequest struct {
	ID              uint             `gorm:"primaryKey" json:"id"`
	CreatedAt       time.Time        `json:"created_at"`
	CollaboratorID  uint             `gorm:"not null;index" json:"collaborator_id"`
	Collaborator    *Collaborator    `gorm:"foreignKey:CollaboratorID" json:"collaborator,omitempty"`
	RecordID        *uint            `json:"record_id"`
	Kind            PunchKind        `gorm:"not null;size:20" json:"kind"`
	RequestedAt     time.Time        `gorm:"not null" json:"requested_at"`
	Justification   string           `gorm:"not null;size:500" json:"justification"`
	Status          AdjustmentStatus `gorm:"not null;size:20;default:PENDING;index" json:"status"`
	ReviewerID      *uint            `json:"reviewer_id"`
	Reviewer        *User            `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`
	DecisionComment string           `gorm:"size:500" json:"decision_comment"`
	DecidedAt       *time.Time       `json:"decided_at"`
}
