package handlers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"timeclock/core"
)

type HRHandler struct {
	summaries *core.SummaryAggregator
	logger    *zap.Logger
}

func NewHRHandler(summaries *core.SummaryAggregator, logger *zap.Logger) *HRHandler {
	return &HRHandler{summaries: summaries, logger: logger}
}

// summaryRange reads start/end query dates (YYYY-MM-DD, end inclusive)
// and falls back to the trailing defaultDays window.
func summaryRange(r *http.Request, defaultDays int) (time.Time, time.Time, error) {
	now := time.Now().UTC()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -defaultDays)
	to := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)

	if s := r.URL.Query().Get("start"); s != "" {
		t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
		if err != nil {
			return time.Time{}, time.Time{}, errors.New("invalid start date")
		}
		from = t
	}
	if s := r.URL.Query().Get("end"); s != "" {
		t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
		if err != nil {
			return time.Time{}, time.Time{}, errors.New("invalid end date")
		}
		to = t.AddDate(0, 0, 1)
	}
	if !to.After(from) {
		return time.Time{}, time.Time{}, errors.New("end date is before start date")
	}
	return from, to, nil
}

// Summary returns per-collaborator, per-day summaries over a date
// range, defaulting to the last 7 days, ordered by collaborator name
// then day.
func (h *HRHandler) Summary(w http.ResponseWriter, r *http.Request) {
	from, to, err := summaryRange(r, 7)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	summaries, err := h.summaries.RangeSummary(0, from, to)
	if err != nil {
		respondCoreError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, summaries)
}

// SummaryCSV downloads the same range summary as a CSV report.
func (h *HRHandler) SummaryCSV(w http.ResponseWriter, r *http.Request) {
	from, to, err := summaryRange(r, 7)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	summaries, err := h.summaries.RangeSummary(0, from, to)
	if err != nil {
		respondCoreError(w, h.logger, err)
		return
	}

	filename := fmt.Sprintf("timeclock_summary_%s_%s.csv",
		from.Format("2006-01-02"), to.AddDate(0, 0, -1).Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))

	writer := csv.NewWriter(w)
	defer writer.Flush()

	writer.Write([]string{
		"Employee", "Registration", "Department", "Date",
		"First In", "Last Out", "Worked Minutes",
		"Outside Geofence", "Sequence Alerts", "Punches",
	})

	for _, s := range summaries {
		firstIn := ""
		if s.FirstIn != nil {
			firstIn = s.FirstIn.UTC().Format("15:04")
		}
		lastOut := ""
		if s.LastOut != nil {
			lastOut = s.LastOut.UTC().Format("15:04")
		}
		writer.Write([]string{
			s.CollaboratorName,
			s.RegistrationNo,
			s.Department,
			s.Date,
			firstIn,
			lastOut,
			strconv.Itoa(s.WorkedMinutes),
			strconv.Itoa(s.OutsideCount),
			strconv.Itoa(s.SequenceAlerts),
			strconv.Itoa(s.TotalPunches),
		})
	}
}
