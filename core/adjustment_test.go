package core

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"timeclock/models"
)

func newTestWorkflow() (*AdjustmentWorkflow, *fakeAdjustmentStore) {
	store := newFakeAdjustmentStore()
	return NewAdjustmentWorkflow(store, zap.NewNop()), store
}

func TestSubmit_Validation(t *testing.T) {
	workflow, _ := newTestWorkflow()

	_, err := workflow.Submit(SubmitRequest{
		CollaboratorID: 1,
		Kind:           "LUNCH",
		RequestedAt:    time.Now(),
		Justification:  "forgot to punch",
	})
	assert.ErrorIs(t, err, ErrInvalidPunchKind)

	_, err = workflow.Submit(SubmitRequest{
		CollaboratorID: 1,
		Kind:           models.PunchEntry,
		RequestedAt:    time.Now(),
		Justification:  "   ",
	})
	assert.ErrorIs(t, err, ErrEmptyJustification)
}

func TestSubmit_NormalizesToUTC(t *testing.T) {
	workflow, _ := newTestWorkflow()

	local := time.FixedZone("BRT", -3*60*60)
	requestedAt := time.Date(2025, 8, 25, 8, 0, 0, 0, local)

	req, err := workflow.Submit(SubmitRequest{
		CollaboratorID: 1,
		Kind:           models.PunchEntry,
		RequestedAt:    requestedAt,
		Justification:  "forgot to punch",
	})

	require.NoError(t, err)
	assert.Equal(t, models.AdjustmentPending, req.Status)
	assert.Equal(t, time.UTC, req.RequestedAt.Location())
	assert.Equal(t, time.Date(2025, 8, 25, 11, 0, 0, 0, time.UTC), req.RequestedAt)
	assert.Nil(t, req.ReviewerID)
}

func TestSubmitThenList_NewestFirst(t *testing.T) {
	workflow, _ := newTestWorkflow()

	first, err := workflow.Submit(SubmitRequest{
		CollaboratorID: 1, Kind: models.PunchEntry,
		RequestedAt: time.Now(), Justification: "first",
	})
	require.NoError(t, err)

	second, err := workflow.Submit(SubmitRequest{
		CollaboratorID: 1, Kind: models.PunchExit,
		RequestedAt: time.Now(), Justification: "second",
	})
	require.NoError(t, err)

	requests, err := workflow.ListForCollaborator(1)
	require.NoError(t, err)
	require.Len(t, requests, 2)
	assert.Equal(t, second.ID, requests[0].ID)
	assert.Equal(t, first.ID, requests[1].ID)
	assert.Equal(t, models.AdjustmentPending, requests[0].Status)
	assert.Nil(t, requests[0].ReviewerID)
}

func TestListPending_OldestFirstAndExcludesDecided(t *testing.T) {
	workflow, _ := newTestWorkflow()

	first, _ := workflow.Submit(SubmitRequest{
		CollaboratorID: 1, Kind: models.PunchEntry,
		RequestedAt: time.Now(), Justification: "first",
	})
	second, _ := workflow.Submit(SubmitRequest{
		CollaboratorID: 2, Kind: models.PunchExit,
		RequestedAt: time.Now(), Justification: "second",
	})
	third, _ := workflow.Submit(SubmitRequest{
		CollaboratorID: 1, Kind: models.PunchExit,
		RequestedAt: time.Now(), Justification: "third",
	})

	require.NoError(t, workflow.Decide(second.ID, models.AdjustmentApproved, 42, "ok"))

	pending, err := workflow.ListPending()
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, first.ID, pending[0].ID)
	assert.Equal(t, third.ID, pending[1].ID)
}

func TestDecide_InvalidOutcome(t *testing.T) {
	workflow, _ := newTestWorkflow()

	req, _ := workflow.Submit(SubmitRequest{
		CollaboratorID: 1, Kind: models.PunchEntry,
		RequestedAt: time.Now(), Justification: "x",
	})

	err := workflow.Decide(req.ID, models.AdjustmentPending, 42, "")
	assert.ErrorIs(t, err, ErrInvalidOutcome)
}

func TestDecide_SetsReviewerFields(t *testing.T) {
	workflow, store := newTestWorkflow()

	req, _ := workflow.Submit(SubmitRequest{
		CollaboratorID: 1, Kind: models.PunchEntry,
		RequestedAt: time.Now(), Justification: "x",
	})

	require.NoError(t, workflow.Decide(req.ID, models.AdjustmentRejected, 42, "no evidence"))

	decided := store.requests[req.ID]
	assert.Equal(t, models.AdjustmentRejected, decided.Status)
	require.NotNil(t, decided.ReviewerID)
	assert.Equal(t, uint(42), *decided.ReviewerID)
	assert.Equal(t, "no evidence", decided.DecisionComment)
	assert.NotNil(t, decided.DecidedAt)
}

func TestDecide_TerminalRequestCannotBeRedecided(t *testing.T) {
	workflow, _ := newTestWorkflow()

	req, _ := workflow.Submit(SubmitRequest{
		CollaboratorID: 1, Kind: models.PunchEntry,
		RequestedAt: time.Now(), Justification: "x",
	})

	require.NoError(t, workflow.Decide(req.ID, models.AdjustmentApproved, 42, "ok"))

	err := workflow.Decide(req.ID, models.AdjustmentRejected, 43, "changed my mind")
	assert.ErrorIs(t, err, ErrNotPending)

	err = workflow.Decide(99, models.AdjustmentApproved, 42, "")
	assert.ErrorIs(t, err, ErrNotPending)
}

func TestDecide_ConcurrentReviewersProduceOneWinner(t *testing.T) {
	workflow, store := newTestWorkflow()

	req, _ := workflow.Submit(SubmitRequest{
		CollaboratorID: 1, Kind: models.PunchEntry,
		RequestedAt: time.Now(), Justification: "x",
	})

	outcomes := []models.AdjustmentStatus{models.AdjustmentApproved, models.AdjustmentRejected}
	errs := make([]error, len(outcomes))

	var wg sync.WaitGroup
	for i, outcome := range outcomes {
		wg.Add(1)
		go func(i int, outcome models.AdjustmentStatus) {
			defer wg.Done()
			errs[i] = workflow.Decide(req.ID, outcome, uint(100+i), "race")
		}(i, outcome)
	}
	wg.Wait()

	var winners []models.AdjustmentStatus
	for i, err := range errs {
		if err == nil {
			winners = append(winners, outcomes[i])
		} else {
			assert.ErrorIs(t, err, ErrNotPending)
		}
	}
	require.Len(t, winners, 1)
	assert.Equal(t, winners[0], store.requests[req.ID].Status)
}
