package models

import (
	"time"
)

// PunchKind is one of the four canonical clock actions, in the order
// they are expected to occur within a day.
type PunchKind string

const (
	PunchEntry      PunchKind = "ENTRY"
	PunchBreakStart PunchKind = "BREAK_START"
	PunchBreakEnd   PunchKind = "BREAK_END"
	PunchExit       PunchKind = "EXIT"
)

func ValidPunchKind(k PunchKind) bool {
	switch k {
	case PunchEntry, PunchBreakStart, PunchBreakEnd, PunchExit:
		return true
	}
	return false
}

// GeofenceVerdict classifies where a punch happened relative to the
// configured geofence. UNDETERMINED means the device had no fix and is
// a valid outcome, not an error.
type GeofenceVerdict string

const (
	GeofenceInside       GeofenceVerdict = "INSIDE"
	GeofenceOutside      GeofenceVerdict = "OUTSIDE"
	GeofenceUndetermined GeofenceVerdict = "UNDETERMINED"
)

// TimeRecord is a single punch. Rows are append-only: corrections go
// through the adjustment workflow, never through an UPDATE here.
type TimeRecord struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time       `json:"created_at"`
	CollaboratorID uint            `gorm:"not null;index" json:"collaborator_id"`
	Collaborator   *Collaborator   `gorm:"foreignKey:CollaboratorID" json:"collaborator,omitempty"`
	Kind           PunchKind       `gorm:"not null;size:20" json:"kind"`
	PunchedAt      time.Time       `gorm:"not null;index" json:"punched_at"`
	Latitude       *float64        `json:"latitude"`
	Longitude      *float64        `json:"longitude"`
	Geofence       GeofenceVerdict `gorm:"not null;size:20" json:"geofence"`
	SequenceValid  bool            `gorm:"not null" json:"sequence_valid"`
	Note           string          `gorm:"size:500" json:"note"`
	OriginIP       string          `gorm:"size:64" json:"origin_ip"`
	UserAgent      string          `gorm:"size:300" json:"-"`
}
