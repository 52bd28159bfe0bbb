package core

import (
	"time"

	"go.uber.org/zap"

	"timeclock/models"
)

// Config carries the clock policy. It is built once from the
// environment and injected, so tests can run arbitrary geofences and
// caps.
type Config struct {
	Geofence              GeofenceConfig
	DailyPunchCap         int
	LunchDeductionMinutes int
}

// ClockEngine accepts or rejects punches. Sequence and geofence
// violations are recorded as anomaly flags and never block, because the
// clock has to stay usable when GPS or network conditions degrade; the
// only hard rule is the daily punch cap.
type ClockEngine struct {
	store  RecordStore
	cfg    Config
	logger *zap.Logger
	now    func() time.Time
}

func NewClockEngine(store RecordStore, cfg Config, logger *zap.Logger) *ClockEngine {
	return &ClockEngine{
		store:  store,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

// ClockRequest is one punch attempt.
type ClockRequest struct {
	CollaboratorID uint
	Kind           models.PunchKind
	Latitude       *float64
	Longitude      *float64
	Note           string
	OriginIP       string
	UserAgent      string
}

// RegisterEvent validates and persists a punch. It re-reads today's
// records on every call; two near-simultaneous punches from the same
// collaborator may therefore both pass the cap check and one of them
// end up flagged out of sequence, which is accepted and logged rather
// than serialized behind a lock.
func (e *ClockEngine) RegisterEvent(req ClockRequest) (*models.TimeRecord, error) {
	if !models.ValidPunchKind(req.Kind) {
		return nil, ErrInvalidPunchKind
	}

	now := e.now().UTC()

	today, err := e.store.RecordsForDay(req.CollaboratorID, now)
	if err != nil {
		return nil, systemErr("load today's records", err)
	}

	if len(today) >= e.cfg.DailyPunchCap {
		return nil, ErrDailyCapReached
	}

	seqValid := ValidSequence(today, req.Kind)
	verdict := ClassifyLocation(req.Latitude, req.Longitude, e.cfg.Geofence)

	rec := &models.TimeRecord{
		CollaboratorID: req.CollaboratorID,
		Kind:           req.Kind,
		PunchedAt:      now,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		Geofence:       verdict,
		SequenceValid:  seqValid,
		Note:           req.Note,
		OriginIP:       req.OriginIP,
		UserAgent:      req.UserAgent,
	}

	if err := e.store.Create(rec); err != nil {
		return nil, systemErr("persist punch", err)
	}

	if !seqValid || verdict == models.GeofenceOutside {
		e.logger.Warn("punch recorded with anomaly",
			zap.Uint("collaborator_id", req.CollaboratorID),
			zap.String("kind", string(req.Kind)),
			zap.Bool("sequence_valid", seqValid),
			zap.String("geofence", string(verdict)),
		)
	}

	return rec, nil
}
