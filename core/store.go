package core

import (
	"time"

	"timeclock/models"
)

// RecordStore is the persistence boundary for the punch stream. The
// engine re-reads the day's records on every registration instead of
// caching them, so concurrent punches race only at the store.
type RecordStore interface {
	// RecordsForDay returns the collaborator's records for the UTC
	// calendar day containing ts, ordered by punch time ascending.
	RecordsForDay(collaboratorID uint, ts time.Time) ([]models.TimeRecord, error)

	// RecordsInRange returns one collaborator's records with
	// from <= punched_at < to, ordered by punch time ascending.
	RecordsInRange(collaboratorID uint, from, to time.Time) ([]models.TimeRecord, error)

	// RecordsForAllInRange returns every collaborator's records in the
	// range with the collaborator loaded, ordered by collaborator name,
	// collaborator id, then punch time ascending.
	RecordsForAllInRange(from, to time.Time) ([]models.TimeRecord, error)

	Create(rec *models.TimeRecord) error
}

// AdjustmentStore persists adjustment requests. Decide must be a
// conditional update: the transition only happens when the stored
// status is still PENDING.
type AdjustmentStore interface {
	Create(req *models.AdjustmentRequest) error

	// ByCollaborator returns the collaborator's requests newest first.
	ByCollaborator(collaboratorID uint) ([]models.AdjustmentRequest, error)

	// Pending returns all PENDING requests oldest first.
	Pending() ([]models.AdjustmentRequest, error)

	// Decide atomically moves the request from PENDING to status and
	// records the reviewer, comment and decision time. It returns false
	// when the request was not PENDING (or does not exist).
	Decide(id uint, status models.AdjustmentStatus, reviewerID uint, comment string, decidedAt time.Time) (bool, error)
}
