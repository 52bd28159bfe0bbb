package store

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"timeclock/models"
)

func setupMockDB(t *testing.T) (sqlmock.Sqlmock, *gorm.DB) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return mock, gdb
}

func TestAdjustmentStoreCreate_AssignsID(t *testing.T) {
	mock, gdb := setupMockDB(t)
	store := NewAdjustmentStore(gdb, zap.NewNop())

	mock.ExpectQuery(`INSERT INTO "adjustment_requests"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	req := &models.AdjustmentRequest{
		CollaboratorID: 1,
		Kind:           models.PunchEntry,
		RequestedAt:    time.Date(2025, 8, 25, 8, 0, 0, 0, time.UTC),
		Justification:  "forgot to punch",
		Status:         models.AdjustmentPending,
	}

	require.NoError(t, store.Create(req))
	assert.Equal(t, uint(7), req.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdjustmentStorePending_FiltersAndPreloads(t *testing.T) {
	mock, gdb := setupMockDB(t)
	store := NewAdjustmentStore(gdb, zap.NewNop())

	requestRows := sqlmock.NewRows([]string{"id", "collaborator_id", "kind", "status", "justification"}).
		AddRow(1, 3, "ENTRY", "PENDING", "forgot to punch").
		AddRow(2, 3, "EXIT", "PENDING", "left early")

	mock.ExpectQuery(`SELECT \* FROM "adjustment_requests" WHERE status = \$1 ORDER BY created_at asc, id asc`).
		WithArgs("PENDING").
		WillReturnRows(requestRows)
	mock.ExpectQuery(`SELECT \* FROM "collaborators"`).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"id", "full_name"}).AddRow(3, "Alice"))

	requests, err := store.Pending()

	require.NoError(t, err)
	require.Len(t, requests, 2)
	assert.Equal(t, models.AdjustmentPending, requests[0].Status)
	require.NotNil(t, requests[0].Collaborator)
	assert.Equal(t, "Alice", requests[0].Collaborator.FullName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdjustmentStoreByCollaborator_NewestFirst(t *testing.T) {
	mock, gdb := setupMockDB(t)
	store := NewAdjustmentStore(gdb, zap.NewNop())

	rows := sqlmock.NewRows([]string{"id", "collaborator_id", "status"}).
		AddRow(9, 3, "PENDING").
		AddRow(4, 3, "APPROVED")

	mock.ExpectQuery(`SELECT \* FROM "adjustment_requests" WHERE collaborator_id = \$1 ORDER BY created_at desc, id desc`).
		WithArgs(3).
		WillReturnRows(rows)

	requests, err := store.ByCollaborator(3)

	require.NoError(t, err)
	require.Len(t, requests, 2)
	assert.Equal(t, uint(9), requests[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdjustmentStoreDecide_Winner(t *testing.T) {
	mock, gdb := setupMockDB(t)
	store := NewAdjustmentStore(gdb, zap.NewNop())

	mock.ExpectExec(`UPDATE "adjustment_requests" SET .+ WHERE id = \$\d+ AND status = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	won, err := store.Decide(1, models.AdjustmentApproved, 42, "ok", time.Now().UTC())

	require.NoError(t, err)
	assert.True(t, won)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdjustmentStoreDecide_AlreadyDecided(t *testing.T) {
	mock, gdb := setupMockDB(t)
	store := NewAdjustmentStore(gdb, zap.NewNop())

	// the conditional WHERE matched no row: someone else got there first
	mock.ExpectExec(`UPDATE "adjustment_requests"`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	won, err := store.Decide(1, models.AdjustmentRejected, 42, "", time.Now().UTC())

	require.NoError(t, err)
	assert.False(t, won)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAdjustmentStoreDecide_DBError(t *testing.T) {
	mock, gdb := setupMockDB(t)
	store := NewAdjustmentStore(gdb, zap.NewNop())

	mock.ExpectExec(`UPDATE "adjustment_requests"`).
		WillReturnError(errors.New("connection refused"))

	won, err := store.Decide(1, models.AdjustmentApproved, 42, "", time.Now().UTC())

	assert.Error(t, err)
	assert.False(t, won)
	assert.NoError(t, mock.ExpectationsWereMet())
}
