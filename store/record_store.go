package store

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"timeclock/models"
)

// RecordStore is the GORM-backed punch stream. Rows are append-only;
// nothing here updates or deletes a record.
type RecordStore struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewRecordStore(db *gorm.DB, logger *zap.Logger) *RecordStore {
	return &RecordStore{db: db, logger: logger}
}

// utcDayBounds returns the [start, end) window of the UTC calendar day
// containing ts.
func utcDayBounds(ts time.Time) (time.Time, time.Time) {
	t := ts.UTC()
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}

func (s *RecordStore) RecordsForDay(collaboratorID uint, ts time.Time) ([]models.TimeRecord, error) {
	start, end := utcDayBounds(ts)
	return s.RecordsInRange(collaboratorID, start, end)
}

func (s *RecordStore) RecordsInRange(collaboratorID uint, from, to time.Time) ([]models.TimeRecord, error) {
	var records []models.TimeRecord
	err := s.db.
		Where("collaborator_id = ? AND punched_at >= ? AND punched_at < ?", collaboratorID, from, to).
		Order("punched_at asc").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("query records in range: %w", err)
	}
	return records, nil
}

func (s *RecordStore) RecordsForAllInRange(from, to time.Time) ([]models.TimeRecord, error) {
	var records []models.TimeRecord
	err := s.db.
		Preload("Collaborator").
		Joins("JOIN collaborators ON collaborators.id = time_records.collaborator_id").
		Where("time_records.punched_at >= ? AND time_records.punched_at < ?", from, to).
		Order("collaborators.full_name asc, time_records.collaborator_id asc, time_records.punched_at asc").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("query records for all collaborators: %w", err)
	}
	return records, nil
}

// RecordsForCollaborator returns the collaborator's records newest
// first, optionally bounded by from/to, for the history view.
func (s *RecordStore) RecordsForCollaborator(collaboratorID uint, from, to *time.Time) ([]models.TimeRecord, error) {
	query := s.db.Where("collaborator_id = ?", collaboratorID)
	if from != nil {
		query = query.Where("punched_at >= ?", *from)
	}
	if to != nil {
		query = query.Where("punched_at < ?", *to)
	}

	var records []models.TimeRecord
	if err := query.Order("punched_at desc").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("query collaborator records: %w", err)
	}
	return records, nil
}

func (s *RecordStore) Create(rec *models.TimeRecord) error {
	if err := s.db.Create(rec).Error; err != nil {
		return fmt.Errorf("insert time record: %w", err)
	}
	return nil
}
