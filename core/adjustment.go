package core

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"timeclock/models"
)

// AdjustmentWorkflow manages correction requests: PENDING on creation,
// exactly one transition to APPROVED or REJECTED, terminal thereafter.
// Approving a request does not touch the punch stream; materializing
// the approved punch is a separate step so the audit trail keeps both
// the decision and the mutation.
type AdjustmentWorkflow struct {
	store  AdjustmentStore
	logger *zap.Logger
	now    func() time.Time
}

func NewAdjustmentWorkflow(store AdjustmentStore, logger *zap.Logger) *AdjustmentWorkflow {
	return &AdjustmentWorkflow{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// SubmitRequest is a new correction proposal. RequestedAt arrives in
// the collaborator's local time and is stored in UTC.
type SubmitRequest struct {
	CollaboratorID uint
	RecordID       *uint
	Kind           models.PunchKind
	RequestedAt    time.Time
	Justification  string
}

func (w *AdjustmentWorkflow) Submit(req SubmitRequest) (*models.AdjustmentRequest, error) {
	if !models.ValidPunchKind(req.Kind) {
		return nil, ErrInvalidPunchKind
	}
	if strings.TrimSpace(req.Justification) == "" {
		return nil, ErrEmptyJustification
	}

	adj := &models.AdjustmentRequest{
		CollaboratorID: req.CollaboratorID,
		RecordID:       req.RecordID,
		Kind:           req.Kind,
		RequestedAt:    req.RequestedAt.UTC(),
		Justification:  req.Justification,
		Status:         models.AdjustmentPending,
	}

	if err := w.store.Create(adj); err != nil {
		return nil, systemErr("persist adjustment request", err)
	}

	return adj, nil
}

// ListForCollaborator returns the collaborator's requests newest first.
func (w *AdjustmentWorkflow) ListForCollaborator(collaboratorID uint) ([]models.AdjustmentRequest, error) {
	requests, err := w.store.ByCollaborator(collaboratorID)
	if err != nil {
		return nil, systemErr("load adjustment requests", err)
	}
	return requests, nil
}

// ListPending returns every PENDING request oldest first, so the
// earliest submissions are reviewed first.
func (w *AdjustmentWorkflow) ListPending() ([]models.AdjustmentRequest, error) {
	requests, err := w.store.Pending()
	if err != nil {
		return nil, systemErr("load pending requests", err)
	}
	return requests, nil
}

// Decide moves a PENDING request to APPROVED or REJECTED. The store
// applies the transition conditionally on the stored status, so two
// reviewers racing on the same request produce exactly one winner; the
// loser gets ErrNotPending.
func (w *AdjustmentWorkflow) Decide(requestID uint, outcome models.AdjustmentStatus, reviewerID uint, comment string) error {
	if outcome != models.AdjustmentApproved && outcome != models.AdjustmentRejected {
		return ErrInvalidOutcome
	}

	decided, err := w.store.Decide(requestID, outcome, reviewerID, comment, w.now().UTC())
	if err != nil {
		return systemErr("decide adjustment request", err)
	}
	if !decided {
		return ErrNotPending
	}

	w.logger.Info("adjustment request decided",
		zap.Uint("request_id", requestID),
		zap.String("outcome", string(outcome)),
		zap.Uint("reviewer_id", reviewerID),
	)

	return nil
}
