package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"church_membership/internal/model"

	"github.com/jackc/pgx/v5"
)

// AttendanceRepository defines operations for attendance data
type AttendanceRepository interface {
	Create(ctx context.Context, record *model.Attendance) error
	Update(ctx context.Context, record *model.Attendance) error
	FindByID(ctx context.Context, id string) (*model.Attendance, error)
	FindForDate(ctx context.Context, userID string, date time.Time) (*model.Attendance, error)
	FindByUser(ctx context.Context, userID string, limit int) ([]model.Attendance, error)
	FindByDateRange(ctx context.Context, userID string, start, end time.Time) ([]model.Attendance, error)
	FindByServiceType(ctx context.Context, userID, serviceType string) ([]model.Attendance, error)
	Delete(ctx context.Context, id string) error
	CountByUser(ctx context.Context, userID string, start, end *time.Time) (total, present int64, err error)
	OverallStats(ctx context.Context) (totalRecords, totalUsers int64, err error)
}

type attendanceRepository struct {
	db DB
}

// NewAttendanceRepository creates a new AttendanceRepository
func NewAttendanceRepository(db DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `id, user_id, date, is_present, service_type, notes, created_at, updated_at`

func scanAttendance(row pgx.Row) (*model.Attendance, error) {
	a := &model.Attendance{}
	err := row.Scan(
		&a.ID, &a.UserID, &a.Date, &a.IsPresent,
		&a.ServiceType, &a.Notes, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Create inserts a new attendance record. A concurrent insert for the same
// (user, date) hits the unique constraint and comes back as ErrDuplicate.
func (r *attendanceRepository) Create(ctx context.Context, a *model.Attendance) error {
	sql := `INSERT INTO attendance (id, user_id, date, is_present, service_type, notes, created_at, updated_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.Exec(ctx, sql,
		a.ID, a.UserID, a.Date, a.IsPresent, a.ServiceType, a.Notes,
		a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create attendance record: %w", translateError(err))
	}
	return nil
}

// Update rewrites presence, service type and notes of an existing record
func (r *attendanceRepository) Update(ctx context.Context, a *model.Attendance) error {
	sql := `UPDATE attendance
            SET is_present = $1, service_type = $2, notes = $3, updated_at = NOW()
            WHERE id = $4 RETURNING updated_at`
	err := r.db.QueryRow(ctx, sql, a.IsPresent, a.ServiceType, a.Notes, a.ID).Scan(&a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("attendance record not found for update")
		}
		return fmt.Errorf("failed to update attendance record: %w", err)
	}
	return nil
}

// FindByID retrieves an attendance record by its ID
func (r *attendanceRepository) FindByID(ctx context.Context, id string) (*model.Attendance, error) {
	sql := `SELECT ` + attendanceColumns + ` FROM attendance WHERE id = $1`
	a, err := scanAttendance(r.db.QueryRow(ctx, sql, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find attendance by ID: %w", err)
	}
	return a, nil
}

// FindForDate retrieves the single record for a (user, day), if any
func (r *attendanceRepository) FindForDate(ctx context.Context, userID string, date time.Time) (*model.Attendance, error) {
	sql := `SELECT ` + attendanceColumns + ` FROM attendance WHERE user_id = $1 AND date = $2`
	a, err := scanAttendance(r.db.QueryRow(ctx, sql, userID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find attendance for date: %w", err)
	}
	return a, nil
}

func (r *attendanceRepository) queryRecords(ctx context.Context, sql string, args ...interface{}) ([]model.Attendance, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance: %w", err)
	}
	defer rows.Close()

	var records []model.Attendance
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance row: %w", err)
		}
		records = append(records, *a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating attendance rows: %w", err)
	}
	return records, nil
}

// FindByUser retrieves a user's records, newest first
func (r *attendanceRepository) FindByUser(ctx context.Context, userID string, limit int) ([]model.Attendance, error) {
	sql := `SELECT ` + attendanceColumns + ` FROM attendance
            WHERE user_id = $1 ORDER BY date DESC LIMIT $2`
	return r.queryRecords(ctx, sql, userID, limit)
}

// FindByDateRange retrieves a user's records within [start, end], newest first
func (r *attendanceRepository) FindByDateRange(ctx context.Context, userID string, start, end time.Time) ([]model.Attendance, error) {
	sql := `SELECT ` + attendanceColumns + ` FROM attendance
            WHERE user_id = $1 AND date >= $2 AND date <= $3 ORDER BY date DESC`
	return r.queryRecords(ctx, sql, userID, start, end)
}

// FindByServiceType retrieves a user's records for one service type, newest first
func (r *attendanceRepository) FindByServiceType(ctx context.Context, userID, serviceType string) ([]model.Attendance, error) {
	sql := `SELECT ` + attendanceColumns + ` FROM attendance
            WHERE user_id = $1 AND service_type = $2 ORDER BY date DESC`
	return r.queryRecords(ctx, sql, userID, serviceType)
}

// Delete removes an attendance record
func (r *attendanceRepository) Delete(ctx context.Context, id string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM attendance WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete attendance record: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("attendance record not found for deletion")
	}
	return nil
}

// CountByUser returns total and present counts for a user, optionally
// bounded to [start, end]
func (r *attendanceRepository) CountByUser(ctx context.Context, userID string, start, end *time.Time) (int64, int64, error) {
	sql := `SELECT COUNT(*),
                   COALESCE(SUM(CASE WHEN is_present THEN 1 ELSE 0 END), 0)
            FROM attendance WHERE user_id = $1`
	args := []interface{}{userID}
	argCount := 2

	if start != nil {
		sql += fmt.Sprintf(" AND date >= $%d", argCount)
		args = append(args, *start)
		argCount++
	}
	if end != nil {
		sql += fmt.Sprintf(" AND date <= $%d", argCount)
		args = append(args, *end)
	}

	var total, present int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&total, &present); err != nil {
		return 0, 0, fmt.Errorf("failed to count attendance: %w", err)
	}
	return total, present, nil
}

// OverallStats returns the record count and distinct user count across all users
func (r *attendanceRepository) OverallStats(ctx context.Context) (int64, int64, error) {
	var totalRecords, totalUsers int64
	sql := `SELECT COUNT(*), COUNT(DISTINCT user_id) FROM attendance`
	if err := r.db.QueryRow(ctx, sql).Scan(&totalRecords, &totalUsers); err != nil {
		return 0, 0, fmt.Errorf("failed to get overall attendance stats: %w", err)
	}
	return totalRecords, totalUsers, nil
}
