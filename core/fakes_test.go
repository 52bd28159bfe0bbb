package core

import (
	"sort"
	"sync"
	"time"

	"timeclock/models"
)

// fakeRecordStore is an in-memory RecordStore for engine and
// aggregator tests.
type fakeRecordStore struct {
	mu        sync.Mutex
	records   []models.TimeRecord
	nextID    uint
	createErr error
	listErr   error
}

func (f *fakeRecordStore) RecordsForDay(collaboratorID uint, ts time.Time) ([]models.TimeRecord, error) {
	day := ts.UTC().Format("2006-01-02")
	start, _ := time.Parse("2006-01-02", day)
	return f.RecordsInRange(collaboratorID, start, start.AddDate(0, 0, 1))
}

func (f *fakeRecordStore) RecordsInRange(collaboratorID uint, from, to time.Time) ([]models.TimeRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.TimeRecord
	for _, rec := range f.records {
		if rec.CollaboratorID != collaboratorID {
			continue
		}
		if rec.PunchedAt.Before(from) || !rec.PunchedAt.Before(to) {
			continue
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].PunchedAt.Before(out[j].PunchedAt)
	})
	return out, nil
}

func (f *fakeRecordStore) RecordsForAllInRange(from, to time.Time) ([]models.TimeRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.TimeRecord
	for _, rec := range f.records {
		if rec.PunchedAt.Before(from) || !rec.PunchedAt.Before(to) {
			continue
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		nameA, nameB := "", ""
		if a.Collaborator != nil {
			nameA = a.Collaborator.FullName
		}
		if b.Collaborator != nil {
			nameB = b.Collaborator.FullName
		}
		if nameA != nameB {
			return nameA < nameB
		}
		if a.CollaboratorID != b.CollaboratorID {
			return a.CollaboratorID < b.CollaboratorID
		}
		return a.PunchedAt.Before(b.PunchedAt)
	})
	return out, nil
}

func (f *fakeRecordStore) Create(rec *models.TimeRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	rec.ID = f.nextID
	f.records = append(f.records, *rec)
	return nil
}

// fakeAdjustmentStore is an in-memory AdjustmentStore whose Decide is
// a mutex-guarded compare-and-set, mirroring the conditional UPDATE of
// the real store.
type fakeAdjustmentStore struct {
	mu       sync.Mutex
	requests map[uint]*models.AdjustmentRequest
	order    []uint
	nextID   uint
}

func newFakeAdjustmentStore() *fakeAdjustmentStore {
	return &fakeAdjustmentStore{requests: map[uint]*models.AdjustmentRequest{}}
}

func (f *fakeAdjustmentStore) Create(req *models.AdjustmentRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	req.ID = f.nextID
	req.CreatedAt = time.Now().UTC().Add(time.Duration(f.nextID) * time.Millisecond)
	clone := *req
	f.requests[req.ID] = &clone
	f.order = append(f.order, req.ID)
	return nil
}

func (f *fakeAdjustmentStore) ByCollaborator(collaboratorID uint) ([]models.AdjustmentRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.AdjustmentRequest
	for i := len(f.order) - 1; i >= 0; i-- {
		req := f.requests[f.order[i]]
		if req.CollaboratorID == collaboratorID {
			out = append(out, *req)
		}
	}
	return out, nil
}

func (f *fakeAdjustmentStore) Pending() ([]models.AdjustmentRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.AdjustmentRequest
	for _, id := range f.order {
		req := f.requests[id]
		if req.Status == models.AdjustmentPending {
			out = append(out, *req)
		}
	}
	return out, nil
}

func (f *fakeAdjustmentStore) Decide(id uint, status models.AdjustmentStatus, reviewerID uint, comment string, decidedAt time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	req, ok := f.requests[id]
	if !ok || req.Status != models.AdjustmentPending {
		return false, nil
	}
	req.Status = status
	req.ReviewerID = &reviewerID
	req.DecisionComment = comment
	req.DecidedAt = &decidedAt
	return true, nil
}
