package store

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"timeclock/models"
)

func TestUTCDayBounds(t *testing.T) {
	// 23:30 in UTC-3 is already the next day in UTC
	local := time.FixedZone("BRT", -3*60*60)
	ts := time.Date(2025, 8, 25, 23, 30, 0, 0, local)

	start, end := utcDayBounds(ts)

	assert.Equal(t, time.Date(2025, 8, 26, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 8, 27, 0, 0, 0, 0, time.UTC), end)
}

func TestRecordStoreRecordsForDay_QueriesDayWindow(t *testing.T) {
	mock, gdb := setupMockDB(t)
	store := NewRecordStore(gdb, zap.NewNop())

	day := time.Date(2025, 8, 25, 14, 0, 0, 0, time.UTC)
	start, end := utcDayBounds(day)

	rows := sqlmock.NewRows([]string{"id", "collaborator_id", "kind", "sequence_valid", "geofence"}).
		AddRow(1, 3, "ENTRY", true, "INSIDE").
		AddRow(2, 3, "EXIT", false, "OUTSIDE")

	mock.ExpectQuery(`SELECT \* FROM "time_records" WHERE collaborator_id = \$1 AND punched_at >= \$2 AND punched_at < \$3 ORDER BY punched_at asc`).
		WithArgs(3, start, end).
		WillReturnRows(rows)

	records, err := store.RecordsForDay(3, day)

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, models.PunchEntry, records[0].Kind)
	assert.False(t, records[1].SequenceValid)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordStoreRecordsForCollaborator_OptionalBounds(t *testing.T) {
	mock, gdb := setupMockDB(t)
	store := NewRecordStore(gdb, zap.NewNop())

	mock.ExpectQuery(`SELECT \* FROM "time_records" WHERE collaborator_id = \$1 ORDER BY punched_at desc`).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"id", "collaborator_id", "kind"}).AddRow(2, 3, "EXIT"))

	records, err := store.RecordsForCollaborator(3, nil, nil)

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, models.PunchExit, records[0].Kind)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordStoreCreate_AssignsID(t *testing.T) {
	mock, gdb := setupMockDB(t)
	store := NewRecordStore(gdb, zap.NewNop())

	mock.ExpectQuery(`INSERT INTO "time_records"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))

	rec := &models.TimeRecord{
		CollaboratorID: 3,
		Kind:           models.PunchEntry,
		PunchedAt:      time.Date(2025, 8, 25, 8, 0, 0, 0, time.UTC),
		Geofence:       models.GeofenceInside,
		SequenceValid:  true,
	}

	require.NoError(t, store.Create(rec))
	assert.Equal(t, uint(11), rec.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
