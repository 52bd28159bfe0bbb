package core

import (
	"time"

	"timeclock/models"
)

// DailySummary is the derived aggregate for one collaborator on one
// UTC calendar day. It is computed on demand, never stored. FirstIn
// and LastOut stay nil on partial days instead of erroring.
type DailySummary struct {
	CollaboratorID   uint       `json:"collaborator_id"`
	CollaboratorName string     `json:"collaborator_name,omitempty"`
	RegistrationNo   string     `json:"registration_no,omitempty"`
	Department       string     `json:"department,omitempty"`
	Date             string     `json:"date"`
	FirstIn          *time.Time `json:"first_in"`
	LastOut          *time.Time `json:"last_out"`
	OutsideCount     int        `json:"geofence_outside_count"`
	SequenceAlerts   int        `json:"sequence_alert_count"`
	TotalPunches     int        `json:"total_punches"`
	WorkedMinutes    int        `json:"worked_minutes"`
}

// SummaryAggregator reduces the punch stream into daily summaries. It
// is a pure read-side reducer over the RecordStore.
type SummaryAggregator struct {
	store RecordStore
	cfg   Config
}

func NewSummaryAggregator(store RecordStore, cfg Config) *SummaryAggregator {
	return &SummaryAggregator{store: store, cfg: cfg}
}

// DailySummary reduces a single collaborator's records for the UTC day
// containing ts.
func (a *SummaryAggregator) DailySummary(collaboratorID uint, ts time.Time) (DailySummary, error) {
	records, err := a.store.RecordsForDay(collaboratorID, ts)
	if err != nil {
		return DailySummary{}, systemErr("load day's records", err)
	}
	s := a.reduceDay(records)
	s.CollaboratorID = collaboratorID
	s.Date = ts.UTC().Format("2006-01-02")
	return s, nil
}

// RangeSummary returns one summary per (collaborator, day) pair with at
// least one record in [from, to). collaboratorID 0 means all
// collaborators; that variant is ordered by collaborator name then day
// and carries the registry fields for the reviewer view.
func (a *SummaryAggregator) RangeSummary(collaboratorID uint, from, to time.Time) ([]DailySummary, error) {
	var records []models.TimeRecord
	var err error
	if collaboratorID == 0 {
		records, err = a.store.RecordsForAllInRange(from, to)
	} else {
		records, err = a.store.RecordsInRange(collaboratorID, from, to)
	}
	if err != nil {
		return nil, systemErr("load records in range", err)
	}
	return a.groupByDay(records), nil
}

// groupByDay splits records into per-(collaborator, day) runs and
// reduces each. The store returns records already ordered, so a single
// sequential pass preserves the required output order.
func (a *SummaryAggregator) groupByDay(records []models.TimeRecord) []DailySummary {
	summaries := []DailySummary{}
	var day []models.TimeRecord

	flush := func() {
		if len(day) == 0 {
			return
		}
		s := a.reduceDay(day)
		s.CollaboratorID = day[0].CollaboratorID
		s.Date = day[0].PunchedAt.UTC().Format("2006-01-02")
		if c := day[0].Collaborator; c != nil {
			s.CollaboratorName = c.FullName
			s.RegistrationNo = c.RegistrationNo
			s.Department = c.Department
		}
		summaries = append(summaries, s)
		day = day[:0:0]
	}

	for _, rec := range records {
		if len(day) > 0 {
			prev := day[len(day)-1]
			sameDay := prev.PunchedAt.UTC().Format("2006-01-02") == rec.PunchedAt.UTC().Format("2006-01-02")
			if prev.CollaboratorID != rec.CollaboratorID || !sameDay {
				flush()
			}
		}
		day = append(day, rec)
	}
	flush()

	return summaries
}

// reduceDay folds one day's records (ordered by time ascending) into a
// summary. First-in is the earliest ENTRY or BREAK_END, last-out the
// latest EXIT or BREAK_START, matching how the monitoring views read a
// broken day: any return from a break still counts as being in.
func (a *SummaryAggregator) reduceDay(records []models.TimeRecord) DailySummary {
	var s DailySummary
	s.TotalPunches = len(records)

	for i := range records {
		rec := records[i]
		switch rec.Kind {
		case models.PunchEntry, models.PunchBreakEnd:
			if s.FirstIn == nil || rec.PunchedAt.Before(*s.FirstIn) {
				ts := rec.PunchedAt
				s.FirstIn = &ts
			}
		case models.PunchExit, models.PunchBreakStart:
			if s.LastOut == nil || rec.PunchedAt.After(*s.LastOut) {
				ts := rec.PunchedAt
				s.LastOut = &ts
			}
		}
		if rec.Geofence == models.GeofenceOutside {
			s.OutsideCount++
		}
		if !rec.SequenceValid {
			s.SequenceAlerts++
		}
	}

	s.WorkedMinutes = a.workedMinutes(records, s.FirstIn, s.LastOut)
	return s
}

// workedMinutes is first-in to last-out elapsed time, minus the lunch
// deduction only when the day is a complete canonical 4-punch
// sequence. Days without both endpoints report zero.
func (a *SummaryAggregator) workedMinutes(records []models.TimeRecord, firstIn, lastOut *time.Time) int {
	if firstIn == nil || lastOut == nil {
		return 0
	}
	minutes := int(lastOut.Sub(*firstIn).Minutes())
	if canonicalDay(records) {
		minutes -= a.cfg.LunchDeductionMinutes
	}
	if minutes < 0 {
		return 0
	}
	return minutes
}

// canonicalDay reports whether the records are exactly the four
// canonical punches in order.
func canonicalDay(records []models.TimeRecord) bool {
	if len(records) != len(punchOrder) {
		return false
	}
	for i, rec := range records {
		if rec.Kind != punchOrder[i] {
			return false
		}
	}
	return true
}
