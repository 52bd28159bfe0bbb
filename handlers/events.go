package handlers

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"timeclock/database"
	"timeclock/middleware"
	"timeclock/models"
)

type EventHandler struct {
	logger *zap.Logger
}

func NewEventHandler(logger *zap.Logger) *EventHandler {
	return &EventHandler{logger: logger}
}

// List returns calendar events: HR and admins see everyone's, other
// users only their own.
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	db := database.GetDB()

	var events []models.CalendarEvent

	if user.CanViewAllRecords() {
		err := db.Preload("Collaborator").Order("starts_at desc").Find(&events).Error
		if err != nil {
			h.logger.Error("event query failed", zap.Error(err))
			respondMessage(w, http.StatusInternalServerError, "internal error")
			return
		}
		respondJSON(w, http.StatusOK, events)
		return
	}

	collaborator, err := collaboratorForUser(user.ID)
	if err != nil {
		h.logger.Error("collaborator lookup failed", zap.Error(err))
		respondMessage(w, http.StatusInternalServerError, "internal error")
		return
	}
	if collaborator == nil {
		respondJSON(w, http.StatusOK, []models.CalendarEvent{})
		return
	}

	err = db.Where("collaborator_id = ?", collaborator.ID).Order("starts_at desc").Find(&events).Error
	if err != nil {
		h.logger.Error("event query failed", zap.Error(err))
		respondMessage(w, http.StatusInternalServerError, "internal error")
		return
	}

	respondJSON(w, http.StatusOK, events)
}

type createEventRequest struct {
	CollaboratorID uint   `json:"collaborator_id" validate:"required"`
	Type           string `json:"type" validate:"required,max=50"`
	StartsAt       string `json:"starts_at" validate:"required"`
	EndsAt         string `json:"ends_at" validate:"required"`
	Description    string `json:"description" validate:"max=500"`
}

// Create records an absence/holiday period for a collaborator.
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	var req createEventRequest
	if !bindJSON(w, r, &req) {
		return
	}

	startsAt, err := time.Parse(time.RFC3339, req.StartsAt)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "starts_at must be RFC 3339")
		return
	}
	endsAt, err := time.Parse(time.RFC3339, req.EndsAt)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "ends_at must be RFC 3339")
		return
	}
	if !endsAt.After(startsAt) {
		respondMessage(w, http.StatusBadRequest, "ends_at must be after starts_at")
		return
	}

	db := database.GetDB()

	var collaborator models.Collaborator
	if err := db.First(&collaborator, req.CollaboratorID).Error; err != nil {
		respondMessage(w, http.StatusBadRequest, "collaborator not found")
		return
	}

	event := models.CalendarEvent{
		CollaboratorID: collaborator.ID,
		Type:           req.Type,
		StartsAt:       startsAt.UTC(),
		EndsAt:         endsAt.UTC(),
		Description:    req.Description,
		CreatedBy:      user.ID,
	}

	if err := db.Create(&event).Error; err != nil {
		h.logger.Error("event creation failed", zap.Error(err))
		respondMessage(w, http.StatusInternalServerError, "failed to create event")
		return
	}

	respondJSON(w, http.StatusCreated, event)
}
