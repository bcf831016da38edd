package repository

import (
	"context"
	"errors"
	"fmt"

	"church_membership/internal/model"

	"github.com/jackc/pgx/v5"
)

// PrayerRequestRepository defines operations for prayer request data
type PrayerRequestRepository interface {
	Create(ctx context.Context, pr *model.PrayerRequest) error
	FindByID(ctx context.Context, id string) (*model.PrayerRequest, error)
	FindAll(ctx context.Context) ([]model.PrayerRequest, error)
	FindByStatus(ctx context.Context, status string) ([]model.PrayerRequest, error)
	Update(ctx context.Context, pr *model.PrayerRequest) error
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*model.PrayerRequestStats, error)
}

type prayerRequestRepository struct {
	db DB
}

// NewPrayerRequestRepository creates a new PrayerRequestRepository
func NewPrayerRequestRepository(db DB) PrayerRequestRepository {
	return &prayerRequestRepository{db: db}
}

const prayerRequestColumns = `id, name, email, phone, prayer_request, status, is_anonymous, notes, created_at, updated_at`

func scanPrayerRequest(row pgx.Row) (*model.PrayerRequest, error) {
	pr := &model.PrayerRequest{}
	err := row.Scan(
		&pr.ID, &pr.Name, &pr.Email, &pr.Phone, &pr.PrayerRequest,
		&pr.Status, &pr.IsAnonymous, &pr.Notes, &pr.CreatedAt, &pr.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return pr, nil
}

// Create inserts a new prayer request
func (r *prayerRequestRepository) Create(ctx context.Context, pr *model.PrayerRequest) error {
	sql := `INSERT INTO prayer_requests (id, name, email, phone, prayer_request, status, is_anonymous, notes, created_at, updated_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.db.Exec(ctx, sql,
		pr.ID, pr.Name, pr.Email, pr.Phone, pr.PrayerRequest,
		pr.Status, pr.IsAnonymous, pr.Notes, pr.CreatedAt, pr.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create prayer request: %w", translateError(err))
	}
	return nil
}

// FindByID retrieves a prayer request by its ID
func (r *prayerRequestRepository) FindByID(ctx context.Context, id string) (*model.PrayerRequest, error) {
	sql := `SELECT ` + prayerRequestColumns + ` FROM prayer_requests WHERE id = $1`
	pr, err := scanPrayerRequest(r.db.QueryRow(ctx, sql, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find prayer request by ID: %w", err)
	}
	return pr, nil
}

func (r *prayerRequestRepository) queryRequests(ctx context.Context, sql string, args ...interface{}) ([]model.PrayerRequest, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query prayer requests: %w", err)
	}
	defer rows.Close()

	var requests []model.PrayerRequest
	for rows.Next() {
		pr, err := scanPrayerRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan prayer request row: %w", err)
		}
		requests = append(requests, *pr)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating prayer request rows: %w", err)
	}
	return requests, nil
}

// FindAll retrieves all prayer requests, newest first
func (r *prayerRequestRepository) FindAll(ctx context.Context) ([]model.PrayerRequest, error) {
	return r.queryRequests(ctx, `SELECT `+prayerRequestColumns+` FROM prayer_requests ORDER BY created_at DESC`)
}

// FindByStatus retrieves prayer requests with the given status, newest first
func (r *prayerRequestRepository) FindByStatus(ctx context.Context, status string) ([]model.PrayerRequest, error) {
	sql := `SELECT ` + prayerRequestColumns + ` FROM prayer_requests WHERE status = $1 ORDER BY created_at DESC`
	return r.queryRequests(ctx, sql, status)
}

// Update persists all mutable fields of an already-fetched prayer request
func (r *prayerRequestRepository) Update(ctx context.Context, pr *model.PrayerRequest) error {
	sql := `UPDATE prayer_requests
            SET name = $1, email = $2, phone = $3, prayer_request = $4,
                status = $5, is_anonymous = $6, notes = $7, updated_at = NOW()
            WHERE id = $8 RETURNING updated_at`
	err := r.db.QueryRow(ctx, sql,
		pr.Name, pr.Email, pr.Phone, pr.PrayerRequest,
		pr.Status, pr.IsAnonymous, pr.Notes, pr.ID,
	).Scan(&pr.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("prayer request not found for update")
		}
		return fmt.Errorf("failed to update prayer request: %w", err)
	}
	return nil
}

// Delete removes a prayer request
func (r *prayerRequestRepository) Delete(ctx context.Context, id string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM prayer_requests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete prayer request: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("prayer request not found for deletion")
	}
	return nil
}

// Stats counts prayer requests per lifecycle status
func (r *prayerRequestRepository) Stats(ctx context.Context) (*model.PrayerRequestStats, error) {
	stats := &model.PrayerRequestStats{}
	sql := `SELECT COUNT(*),
                   COALESCE(SUM(CASE WHEN status = 'Pending' THEN 1 ELSE 0 END), 0),
                   COALESCE(SUM(CASE WHEN status = 'In Progress' THEN 1 ELSE 0 END), 0),
                   COALESCE(SUM(CASE WHEN status = 'Answered' THEN 1 ELSE 0 END), 0),
                   COALESCE(SUM(CASE WHEN status = 'Closed' THEN 1 ELSE 0 END), 0)
            FROM prayer_requests`
	err := r.db.QueryRow(ctx, sql).Scan(
		&stats.Total, &stats.Pending, &stats.InProgress, &stats.Answered, &stats.Closed,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get prayer request stats: %w", err)
	}
	return stats, nil
}
