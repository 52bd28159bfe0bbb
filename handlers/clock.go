package handlers

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"timeclock/core"
	"timeclock/middleware"
	"timeclock/models"
	"timeclock/store"
)

type ClockHandler struct {
	engine    *core.ClockEngine
	summaries *core.SummaryAggregator
	records   *store.RecordStore
	logger    *zap.Logger
}

func NewClockHandler(engine *core.ClockEngine, summaries *core.SummaryAggregator, records *store.RecordStore, logger *zap.Logger) *ClockHandler {
	return &ClockHandler{
		engine:    engine,
		summaries: summaries,
		records:   records,
		logger:    logger,
	}
}

type clockRequest struct {
	Kind      string   `json:"kind" validate:"required,oneof=ENTRY BREAK_START BREAK_END EXIT"`
	Latitude  *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude *float64 `json:"longitude" validate:"omitempty,longitude"`
	Note      string   `json:"note" validate:"max=500"`
}

// CreateRecord registers a punch for the authenticated collaborator.
func (h *ClockHandler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	var req clockRequest
	if !bindJSON(w, r, &req) {
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

	record, err := h.engine.RegisterEvent(core.ClockRequest{
		CollaboratorID: collaborator.ID,
		Kind:           models.PunchKind(req.Kind),
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		Note:           req.Note,
		OriginIP:       clientIP(r),
		UserAgent:      r.UserAgent(),
	})
	if err != nil {
		respondCoreError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "punch recorded",
		"record":  record,
	})
}

// ListRecords returns the collaborator's punch history newest first,
// optionally bounded by from/to dates (YYYY-MM-DD).
func (h *ClockHandler) ListRecords(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	collaborator, err := collaboratorForUser(user.ID)
	if err != nil {
		h.logger.Error("collaborator lookup failed", zap.Error(err))
		respondMessage(w, http.StatusInternalServerError, "internal error")
		return
	}
	if collaborator == nil {
		respondJSON(w, http.StatusOK, []models.TimeRecord{})
		return
	}

	var from, to *time.Time
	if s := r.URL.Query().Get("from"); s != "" {
		t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
		if err != nil {
			respondMessage(w, http.StatusBadRequest, "invalid from date")
			return
		}
		from = &t
	}
	if s := r.URL.Query().Get("to"); s != "" {
		t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
		if err != nil {
			respondMessage(w, http.StatusBadRequest, "invalid to date")
			return
		}
		// inclusive end date
		end := t.AddDate(0, 0, 1)
		to = &end
	}

	records, err := h.records.RecordsForCollaborator(collaborator.ID, from, to)
	if err != nil {
		h.logger.Error("record query failed", zap.Error(err))
		respondMessage(w, http.StatusInternalServerError, "internal error")
		return
	}

	respondJSON(w, http.StatusOK, records)
}

// Today returns the current UTC day's punches and the kind that would
// continue the sequence, for the clock screen.
func (h *ClockHandler) Today(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

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

	records, err := h.records.RecordsForDay(collaborator.ID, time.Now().UTC())
	if err != nil {
		h.logger.Error("record query failed", zap.Error(err))
		respondMessage(w, http.StatusInternalServerError, "internal error")
		return
	}

	var next interface{}
	if kind, ok := core.NextExpectedKind(records); ok {
		next = kind
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"records":            records,
		"next_expected_kind": next,
	})
}

// DailySummaries returns the collaborator's per-day summaries for a
// date range, defaulting to the last 30 days.
func (h *ClockHandler) DailySummaries(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	collaborator, err := collaboratorForUser(user.ID)
	if err != nil {
		h.logger.Error("collaborator lookup failed", zap.Error(err))
		respondMessage(w, http.StatusInternalServerError, "internal error")
		return
	}
	if collaborator == nil {
		respondJSON(w, http.StatusOK, []core.DailySummary{})
		return
	}

	from, to, err := summaryRange(r, 30)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	summaries, err := h.summaries.RangeSummary(collaborator.ID, from, to)
	if err != nil {
		respondCoreError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, summaries)
}
