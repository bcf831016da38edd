package service

import (
	"context"
	"errors"
	"time"

	"church_membership/internal/model"
	"church_membership/internal/repository"

	"github.com/google/uuid"
)

var ErrPrayerRequestNotFound = errors.New("prayer request not found")

// PrayerRequestService manages the prayer request lifecycle
type PrayerRequestService interface {
	Create(ctx context.Context, req model.CreatePrayerRequestRequest) (*model.PrayerRequest, error)
	GetAll(ctx context.Context) ([]model.PrayerRequest, error)
	GetByStatus(ctx context.Context, status string) ([]model.PrayerRequest, error)
	GetByID(ctx context.Context, id string) (*model.PrayerRequest, error)
	Update(ctx context.Context, id string, req model.UpdatePrayerRequestRequest) (*model.PrayerRequest, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*model.PrayerRequestStats, error)
}

type prayerRequestService struct {
	repo repository.PrayerRequestRepository
}

// NewPrayerRequestService creates a new PrayerRequestService
func NewPrayerRequestService(repo repository.PrayerRequestRepository) PrayerRequestService {
	return &prayerRequestService{repo: repo}
}

func (s *prayerRequestService) Create(ctx context.Context, req model.CreatePrayerRequestRequest) (*model.PrayerRequest, error) {
	now := time.Now()
	pr := &model.PrayerRequest{
		ID:            uuid.NewString(),
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		PrayerRequest: req.PrayerRequest,
		Status:        model.PrayerStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if req.IsAnonymous != nil {
		pr.IsAnonymous = *req.IsAnonymous
	}

	if err := s.repo.Create(ctx, pr); err != nil {
		return nil, err
	}
	return pr, nil
}

func (s *prayerRequestService) GetAll(ctx context.Context) ([]model.PrayerRequest, error) {
	return s.repo.FindAll(ctx)
}

func (s *prayerRequestService) GetByStatus(ctx context.Context, status string) ([]model.PrayerRequest, error) {
	return s.repo.FindByStatus(ctx, status)
}

func (s *prayerRequestService) GetByID(ctx context.Context, id string) (*model.PrayerRequest, error) {
	pr, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pr == nil {
		return nil, ErrPrayerRequestNotFound
	}
	return pr, nil
}

// Update merges the patch field-by-field. Any status in the enum is accepted
// regardless of the current one; transitions are deliberately unconstrained.
func (s *prayerRequestService) Update(ctx context.Context, id string, req model.UpdatePrayerRequestRequest) (*model.PrayerRequest, error) {
	pr, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		pr.Name = *req.Name
	}
	if req.Email != nil {
		pr.Email = req.Email
	}
	if req.Phone != nil {
		pr.Phone = req.Phone
	}
	if req.PrayerRequest != nil {
		pr.PrayerRequest = *req.PrayerRequest
	}
	if req.Status != nil {
		pr.Status = *req.Status
	}
	if req.IsAnonymous != nil {
		pr.IsAnonymous = *req.IsAnonymous
	}
	if req.Notes != nil {
		pr.Notes = req.Notes
	}

	if err := s.repo.Update(ctx, pr); err != nil {
		return nil, err
	}
	return pr, nil
}

func (s *prayerRequestService) Delete(ctx context.Context, id string) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *prayerRequestService) Stats(ctx context.Context) (*model.PrayerRequestStats, error) {
	return s.repo.Stats(ctx)
}
