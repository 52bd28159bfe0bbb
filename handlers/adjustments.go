package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"timeclock/core"
	"timeclock/middleware"
	"timeclock/models"
)

type AdjustmentHandler struct {
	workflow *core.AdjustmentWorkflow
	logger   *zap.Logger
}

func NewAdjustmentHandler(workflow *core.AdjustmentWorkflow, logger *zap.Logger) *AdjustmentHandler {
	return &AdjustmentHandler{workflow: workflow, logger: logger}
}

type submitAdjustmentRequest struct {
	RecordID      *uint  `json:"record_id"`
	Kind          string `json:"kind" validate:"required,oneof=ENTRY BREAK_START BREAK_END EXIT"`
	RequestedAt   string `json:"requested_at" validate:"required"`
	Justification string `json:"justification" validate:"required,max=500"`
}

// Create submits a correction request for the authenticated
// collaborator. requested_at is local wall-clock time (YYYY-MM-DDTHH:MM)
// and is normalized to UTC before storage.
func (h *AdjustmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	var req submitAdjustmentRequest
	if !bindJSON(w, r, &req) {
		return
	}

	requestedAt, err := time.ParseInLocation("2006-01-02T15:04", req.RequestedAt, time.Local)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "requested_at must be YYYY-MM-DDTHH:MM")
		return
	}

	collaborator, err := collaboratorForUser(user.ID)
	if err != nil {
		h.logger.Error("collaborator lookup failed", zap.Error(err))
		respondMessage(w, http.StatusInternalServerError, "internal error")
		return
	}
	if collaborator == nil {
		respondMessage(w, http.StatusBadRequest, "no collaborator profile for this account")
		return
	}

	request, err := h.workflow.Submit(core.SubmitRequest{
		CollaboratorID: collaborator.ID,
		RecordID:       req.RecordID,
		Kind:           models.PunchKind(req.Kind),
		RequestedAt:    requestedAt,
		Justification:  req.Justification,
	})
	if err != nil {
		respondCoreError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "adjustment request created",
		"request": request,
	})
}

// ListMine returns the caller's requests newest first.
func (h *AdjustmentHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	collaborator, err := collaboratorForUser(user.ID)
	if err != nil {
		h.logger.Error("collaborator lookup failed", zap.Error(err))
		respondMessage(w, http.StatusInternalServerError, "internal error")
		return
	}
	if collaborator == nil {
		respondJSON(w, http.StatusOK, []models.AdjustmentRequest{})
		return
	}

	requests, err := h.workflow.ListForCollaborator(collaborator.ID)
	if err != nil {
		respondCoreError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, requests)
}

// ListPending returns the review queue oldest first. Role gating
// happens at the router.
func (h *AdjustmentHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	requests, err := h.workflow.ListPending()
	if err != nil {
		respondCoreError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, requests)
}

type decideRequest struct {
	Status  string `json:"status" validate:"required,oneof=APPROVED REJECTED"`
	Comment string `json:"comment" validate:"max=500"`
}

// Decide approves or rejects a pending request. A request that already
// left PENDING answers 409.
func (h *AdjustmentHandler) Decide(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid request ID")
		return
	}

	var req decideRequest
	if !bindJSON(w, r, &req) {
		return
	}

	err = h.workflow.Decide(uint(id), models.AdjustmentStatus(req.Status), user.ID, req.Comment)
	if err != nil {
		respondCoreError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "decision recorded"})
}
