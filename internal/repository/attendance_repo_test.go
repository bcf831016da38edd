package repository

import (
	"context"
	"testing"
	"time"

	"church_membership/internal/model"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAttendanceRepoMock(t *testing.T) (AttendanceRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewAttendanceRepository(mock), mock
}

func attendanceRow(mock pgxmock.PgxPoolIface, a model.Attendance) *pgxmock.Rows {
	return mock.NewRows([]string{
		"id", "user_id", "date", "is_present", "service_type", "notes", "created_at", "updated_at",
	}).AddRow(a.ID, a.UserID, a.Date, a.IsPresent, a.ServiceType, a.Notes, a.CreatedAt, a.UpdatedAt)
}

func TestAttendanceRepository_Create(t *testing.T) {
	repo, mock := newAttendanceRepoMock(t)

	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	record := &model.Attendance{
		ID:        "a1b2c3d4-0000-0000-0000-000000000001",
		UserID:    "4f3a2b1c-0000-0000-0000-000000000001",
		Date:      day,
		IsPresent: true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	mock.ExpectExec("INSERT INTO attendance").
		WithArgs(record.ID, record.UserID, record.Date, record.IsPresent,
			record.ServiceType, record.Notes, record.CreatedAt, record.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, repo.Create(context.Background(), record))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepository_CreateDuplicateDay(t *testing.T) {
	repo, mock := newAttendanceRepoMock(t)

	record := &model.Attendance{
		ID:     "a1b2c3d4-0000-0000-0000-000000000001",
		UserID: "4f3a2b1c-0000-0000-0000-000000000001",
		Date:   time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
	}

	mock.ExpectExec("INSERT INTO attendance").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "attendance_user_id_date_key"})

	err := repo.Create(context.Background(), record)
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepository_CreateUnknownUser(t *testing.T) {
	repo, mock := newAttendanceRepoMock(t)

	record := &model.Attendance{
		ID:     "a1b2c3d4-0000-0000-0000-000000000001",
		UserID: "missing",
		Date:   time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
	}

	mock.ExpectExec("INSERT INTO attendance").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23503"})

	err := repo.Create(context.Background(), record)
	assert.ErrorIs(t, err, ErrForeignKey)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepository_FindForDate(t *testing.T) {
	repo, mock := newAttendanceRepoMock(t)

	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	want := model.Attendance{
		ID:        "a1b2c3d4-0000-0000-0000-000000000001",
		UserID:    "4f3a2b1c-0000-0000-0000-000000000001",
		Date:      day,
		IsPresent: true,
	}

	mock.ExpectQuery("FROM attendance WHERE user_id = .. AND date").
		WithArgs(want.UserID, day).
		WillReturnRows(attendanceRow(mock, want))

	got, err := repo.FindForDate(context.Background(), want.UserID, day)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want.ID, got.ID)

	mock.ExpectQuery("FROM attendance WHERE user_id = .. AND date").
		WithArgs(want.UserID, day.AddDate(0, 0, 1)).
		WillReturnRows(mock.NewRows([]string{
			"id", "user_id", "date", "is_present", "service_type", "notes", "created_at", "updated_at",
		}))

	got, err = repo.FindForDate(context.Background(), want.UserID, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepository_CountByUser(t *testing.T) {
	repo, mock := newAttendanceRepoMock(t)

	userID := "4f3a2b1c-0000-0000-0000-000000000001"

	mock.ExpectQuery("FROM attendance WHERE user_id").
		WithArgs(userID).
		WillReturnRows(mock.NewRows([]string{"total", "present"}).AddRow(int64(12), int64(9)))

	total, present, err := repo.CountByUser(context.Background(), userID, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(12), total)
	assert.Equal(t, int64(9), present)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepository_CountByUserWindow(t *testing.T) {
	repo, mock := newAttendanceRepoMock(t)

	userID := "4f3a2b1c-0000-0000-0000-000000000001"
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC)

	mock.ExpectQuery("AND date >= .. AND date <=").
		WithArgs(userID, start, end).
		WillReturnRows(mock.NewRows([]string{"total", "present"}).AddRow(int64(4), int64(3)))

	total, present, err := repo.CountByUser(context.Background(), userID, &start, &end)
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	assert.Equal(t, int64(3), present)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepository_OverallStats(t *testing.T) {
	repo, mock := newAttendanceRepoMock(t)

	mock.ExpectQuery("FROM attendance").
		WillReturnRows(mock.NewRows([]string{"records", "users"}).AddRow(int64(40), int64(8)))

	records, users, err := repo.OverallStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(40), records)
	assert.Equal(t, int64(8), users)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepository_DeleteNotFound(t *testing.T) {
	repo, mock := newAttendanceRepoMock(t)

	mock.ExpectExec("DELETE FROM attendance").
		WithArgs("missing").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Delete(context.Background(), "missing")
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
