package store

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"timeclock/models"
)

type AdjustmentStore struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewAdjustmentStore(db *gorm.DB, logger *zap.Logger) *AdjustmentStore {
	return &AdjustmentStore{db: db, logger: logger}
}

func (s *AdjustmentStore) Create(req *models.AdjustmentRequest) error {
	if err := s.db.Create(req).Error; err != nil {
		return fmt.Errorf("insert adjustment request: %w", err)
	}
	return nil
}

func (s *AdjustmentStore) ByCollaborator(collaboratorID uint) ([]models.AdjustmentRequest, error) {
	var requests []models.AdjustmentRequest
	err := s.db.
		Where("collaborator_id = ?", collaboratorID).
		Order("created_at desc, id desc").
		Find(&requests).Error
	if err != nil {
		return nil, fmt.Errorf("query adjustment requests: %w", err)
	}
	return requests, nil
}

func (s *AdjustmentStore) Pending() ([]models.AdjustmentRequest, error) {
	var requests []models.AdjustmentRequest
	err := s.db.
		Preload("Collaborator").
		Where("status = ?", models.AdjustmentPending).
		Order("created_at asc, id asc").
		Find(&requests).Error
	if err != nil {
		return nil, fmt.Errorf("query pending requests: %w", err)
	}
	return requests, nil
}

// Decide performs the PENDING -> terminal transition as a single
// conditional UPDATE. RowsAffected tells the racing loser apart from
// the winner without any lock held across a read-then-write.
func (s *AdjustmentStore) Decide(id uint, status models.AdjustmentStatus, reviewerID uint, comment string, decidedAt time.Time) (bool, error) {
	result := s.db.Model(&models.AdjustmentRequest{}).
		Where("id = ? AND status = ?", id, models.AdjustmentPending).
		Updates(map[string]interface{}{
			"status":           status,
			"reviewer_id":      reviewerID,
			"decision_comment": comment,
			"decided_at":       decidedAt,
		})
	if result.Error != nil {
		return false, fmt.Errorf("update adjustment request: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}
