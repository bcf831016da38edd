package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"church_membership/internal/model"
	"church_membership/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrAttendanceNotFound    = errors.New("attendance record not found")
	ErrInvalidDate           = errors.New("invalid date format")
	ErrDuplicateAttendance   = errors.New("attendance already marked for this date")
	ErrAttendanceUserUnknown = errors.New("user does not exist")
)

const defaultAttendanceLimit = 50

// AttendanceService provides attendance marking, queries and aggregation
type AttendanceService interface {
	Mark(ctx context.Context, req model.MarkAttendanceRequest) (*model.Attendance, error)
	GetByUser(ctx context.Context, userID string, limit int) ([]model.Attendance, error)
	GetRecent(ctx context.Context, userID string, days int) ([]model.Attendance, error)
	GetByDateRange(ctx context.Context, userID string, start, end time.Time) ([]model.Attendance, error)
	GetByServiceType(ctx context.Context, userID, serviceType string) ([]model.Attendance, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context, userID string) (*model.AttendanceStats, error)
	MonthlyStats(ctx context.Context, userID string, year, month int) (*model.AttendanceStats, error)
	OverallStats(ctx context.Context) (*model.OverallAttendanceStats, error)
}

type attendanceService struct {
	repo repository.AttendanceRepository
}

// NewAttendanceService creates a new AttendanceService
func NewAttendanceService(repo repository.AttendanceRepository) AttendanceService {
	return &attendanceService{repo: repo}
}

// parseDay accepts a calendar date or a full timestamp and truncates it to
// the UTC day, which is the attendance uniqueness key.
func parseDay(value string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		t, err = time.Parse(time.RFC3339, value)
		if err != nil {
			return time.Time{}, ErrInvalidDate
		}
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// Mark upserts the presence record keyed on (user, day). The lookup-then-
// write sequence is not transactional; a concurrent insert for the same key
// is stopped by the unique constraint and surfaced as a Conflict.
func (s *attendanceService) Mark(ctx context.Context, req model.MarkAttendanceRequest) (*model.Attendance, error) {
	day, err := parseDay(req.Date)
	if err != nil {
		return nil, err
	}

	isPresent := true
	if req.IsPresent != nil {
		isPresent = *req.IsPresent
	}

	existing, err := s.repo.FindForDate(ctx, req.UserID, day)
	if err != nil {
		return nil, fmt.Errorf("failed to look up attendance for date: %w", err)
	}

	if existing != nil {
		existing.IsPresent = isPresent
		if req.ServiceType != nil {
			existing.ServiceType = req.ServiceType
		}
		if req.Notes != nil {
			existing.Notes = req.Notes
		}
		if err := s.repo.Update(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	now := time.Now()
	record := &model.Attendance{
		ID:          uuid.NewString(),
		UserID:      req.UserID,
		Date:        day,
		IsPresent:   isPresent,
		ServiceType: req.ServiceType,
		Notes:       req.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, record); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateAttendance
		}
		if errors.Is(err, repository.ErrForeignKey) {
			return nil, ErrAttendanceUserUnknown
		}
		return nil, err
	}
	return record, nil
}

func (s *attendanceService) GetByUser(ctx context.Context, userID string, limit int) ([]model.Attendance, error) {
	if limit <= 0 {
		limit = defaultAttendanceLimit
	}
	return s.repo.FindByUser(ctx, userID, limit)
}

func (s *attendanceService) GetRecent(ctx context.Context, userID string, days int) ([]model.Attendance, error) {
	if days <= 0 {
		days = 30
	}
	now := time.Now().UTC()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -days)
	return s.repo.FindByDateRange(ctx, userID, start, now)
}

func (s *attendanceService) GetByDateRange(ctx context.Context, userID string, start, end time.Time) ([]model.Attendance, error) {
	return s.repo.FindByDateRange(ctx, userID, start, end)
}

func (s *attendanceService) GetByServiceType(ctx context.Context, userID, serviceType string) ([]model.Attendance, error) {
	return s.repo.FindByServiceType(ctx, userID, serviceType)
}

func (s *attendanceService) Delete(ctx context.Context, id string) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrAttendanceNotFound
	}
	return s.repo.Delete(ctx, id)
}

func buildStats(total, present int64) *model.AttendanceStats {
	stats := &model.AttendanceStats{
		Total:   total,
		Present: present,
		Absent:  total - present,
	}
	if total > 0 {
		stats.Percentage = int(math.Round(float64(present) / float64(total) * 100))
	}
	return stats
}

// Stats computes overall presence counters for a user. Zero records yield
// percentage 0 rather than a division error.
func (s *attendanceService) Stats(ctx context.Context, userID string) (*model.AttendanceStats, error) {
	total, present, err := s.repo.CountByUser(ctx, userID, nil, nil)
	if err != nil {
		return nil, err
	}
	return buildStats(total, present), nil
}

// MonthWindow returns the inclusive bounds of a calendar month:
// the first day at midnight through the last day at 23:59:59.
func MonthWindow(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Second)
	return start, end
}

func (s *attendanceService) MonthlyStats(ctx context.Context, userID string, year, month int) (*model.AttendanceStats, error) {
	start, end := MonthWindow(year, month)
	total, present, err := s.repo.CountByUser(ctx, userID, &start, &end)
	if err != nil {
		return nil, err
	}
	return buildStats(total, present), nil
}

func (s *attendanceService) OverallStats(ctx context.Context) (*model.OverallAttendanceStats, error) {
	totalRecords, totalUsers, err := s.repo.OverallStats(ctx)
	if err != nil {
		return nil, err
	}
	stats := &model.OverallAttendanceStats{
		TotalRecords: totalRecords,
		TotalUsers:   totalUsers,
	}
	if totalUsers > 0 {
		stats.AverageAttendance = int64(math.Round(float64(totalRecords) / float64(totalUsers)))
	}
	return stats, nil
}
